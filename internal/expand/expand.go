package expand

import (
	"fmt"

	"github.com/paulocustodio/bfpp/internal/diag"
	"github.com/paulocustodio/bfpp/internal/expr"
	"github.com/paulocustodio/bfpp/internal/macrotab"
	"github.com/paulocustodio/bfpp/internal/output"
	"github.com/paulocustodio/bfpp/internal/scanner"
	"github.com/paulocustodio/bfpp/internal/tape"
	"github.com/paulocustodio/bfpp/internal/token"
)

// Expander holds everything a built-in or user-macro expansion needs to
// synthesise and push new source: the macro table, the tape allocator
// (for addresses built-ins allocate directly, like alloc_cell8, and for
// push8/pop8's stack bookkeeping and enter_frame16), the output buffer
// (held here but not read by any built-in, which all emit through spliced
// source), diagnostics, the recursion guard for user macros, and the struct-stack
// used by if/while/repeat to match their closing built-in.
type Expander struct {
	Macros *macrotab.Table
	Tape   *tape.Allocator
	Out    *output.Buffer
	Diags  *diag.Reporter

	expanding   map[string]bool
	structStack []structLevel
	tempCounter int
}

// New builds an Expander. All four arguments must be non-nil.
func New(macros *macrotab.Table, tp *tape.Allocator, out *output.Buffer, diags *diag.Reporter) *Expander {
	return &Expander{
		Macros:    macros,
		Tape:      tp,
		Out:       out,
		Diags:     diags,
		expanding: make(map[string]bool),
	}
}

// ClearExpanding releases the recursion guard for name. Pass this as the
// onPop callback when constructing the Source that drives this Expander.
func (e *Expander) ClearExpanding(name string) {
	delete(e.expanding, name)
}

// IsBuiltinName reports whether name names one of the built-in operators.
func IsBuiltinName(name string) bool {
	_, ok := builtins[name]
	return ok
}

var reservedDirectiveNames = map[string]bool{
	"if": true, "elsif": true, "else": true, "endif": true,
	"include": true, "define": true, "undef": true,
}

// IsReservedName reports whether name cannot be used as a user macro name:
// it collides with a directive keyword or a built-in operator.
func IsReservedName(name string) bool {
	return reservedDirectiveNames[name] || IsBuiltinName(name)
}

// TryExpand attempts to expand tok (the current token of s, an
// Identifier) as a built-in or a user macro, pushing the result as a new
// frame on s. It reports false only when tok names neither — the caller
// must then treat it as an error (an undefined bare identifier in BF
// position).
func (e *Expander) TryExpand(s *Source, tok token.Token) bool {
	if fn, ok := builtins[tok.Text]; ok {
		fn(e, s, tok)
		return true
	}

	m := e.Macros.Lookup(tok.Text)
	if m == nil {
		return false
	}
	if e.expanding[tok.Text] {
		e.Diags.Error(tok.Loc, "recursive expansion of macro '%s'", tok.Text)
		s.Advance()
		return true
	}

	args, ok := e.collectArgs(s, m.Name, m.Params, tok)
	if !ok {
		return true
	}
	body := substituteBody(m, args)
	body = append(body, token.Token{Kind: token.EndOfInput, Loc: tok.Loc})

	e.expanding[tok.Text] = true
	s.PushFrame(tok.Text, body)
	return true
}

// collectArgs advances past the macro/built-in name and, if paramNames is
// non-empty, parses a parenthesised, comma-separated argument list,
// respecting nested parentheses within each argument. It reports its own
// diagnostics; only a malformed separator also skips to end-of-line.
func (e *Expander) collectArgs(s *Source, name string, paramNames []string, tok token.Token) ([][]token.Token, bool) {
	s.Advance() // consume the name

	if len(paramNames) == 0 {
		return nil, true
	}

	if s.Current().Kind != token.LParen {
		e.Diags.Error(tok.Loc, "macro '%s' requires an argument list", name)
		return nil, false
	}
	s.Advance() // consume '('

	var args [][]token.Token
	for {
		var argToks []token.Token
		depth := 0
		for {
			cur := s.Current()
			if cur.Kind == token.EndOfInput {
				e.Diags.Error(tok.Loc, "unterminated argument list for macro '%s'", name)
				return nil, false
			}
			if depth == 0 && (cur.Kind == token.RParen || cur.IsComma()) {
				break
			}
			if cur.Kind == token.LParen {
				depth++
			} else if cur.Kind == token.RParen {
				depth--
			}
			argToks = append(argToks, cur)
			s.Advance()
		}
		args = append(args, argToks)

		cur := s.Current()
		if cur.IsComma() {
			s.Advance()
			continue
		}
		if cur.Kind == token.RParen {
			s.Advance()
			break
		}
		e.Diags.Error(cur.Loc, "expected ',' or ')' in argument list for macro '%s'", name)
		e.consumeToEOL(s)
		return nil, false
	}

	if len(args) != len(paramNames) {
		e.Diags.Error(tok.Loc, "macro '%s' expects %d argument%s, got %d",
			name, len(paramNames), plural(len(paramNames)), len(args))
		return nil, false
	}
	return args, true
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func (e *Expander) consumeToEOL(s *Source) {
	for {
		cur := s.Current()
		if cur.Kind == token.EndOfLine || cur.Kind == token.EndOfInput {
			return
		}
		s.Advance()
	}
}

// substituteBody splices args into macro's body wherever an Identifier
// token matches one of macro's formal parameter names.
func substituteBody(macro *macrotab.Macro, args [][]token.Token) []token.Token {
	var result []token.Token
	for _, tok := range macro.Body {
		if tok.Kind == token.Identifier {
			if idx := paramIndex(macro.Params, tok.Text); idx >= 0 {
				result = append(result, args[idx]...)
				continue
			}
		}
		result = append(result, tok)
	}
	return result
}

func paramIndex(params []string, name string) int {
	for i, p := range params {
		if p == name {
			return i
		}
	}
	return -1
}

// exprArgs collects len(paramNames) comma-separated arguments and
// evaluates each as a constant expression (built-in arguments always use
// ErrorOnUndefined mode), returning their values in order.
func (e *Expander) exprArgs(s *Source, tok token.Token, paramNames ...string) ([]int, bool) {
	argToks, ok := e.collectArgs(s, tok.Text, paramNames, tok)
	if !ok {
		return nil, false
	}
	vals := make([]int, len(argToks))
	for i, toks := range argToks {
		toks = append(append([]token.Token{}, toks...), token.Token{Kind: token.EndOfInput, Loc: tok.Loc})
		ev := expr.New(e.Macros, e.Tape, expr.ErrorOnUndefined, e.Diags)
		vals[i] = ev.Eval(expr.NewSliceSource(toks))
	}
	return vals, true
}

// identArg collects a single argument that must be exactly one bare
// identifier token (used by alloc_cell8/alloc_cell16 to bind a name to the
// address they allocate).
func (e *Expander) identArg(s *Source, tok token.Token) (string, bool) {
	argToks, ok := e.collectArgs(s, tok.Text, []string{"name"}, tok)
	if !ok {
		return "", false
	}
	if len(argToks[0]) != 1 || argToks[0][0].Kind != token.Identifier {
		e.Diags.Error(tok.Loc, "macro '%s' expects a single identifier argument", tok.Text)
		return "", false
	}
	return argToks[0][0].Text, true
}

// stringArg collects a single argument that must be exactly one string
// literal token.
func (e *Expander) stringArg(s *Source, tok token.Token) (string, bool) {
	argToks, ok := e.collectArgs(s, tok.Text, []string{"string"}, tok)
	if !ok {
		return "", false
	}
	if len(argToks[0]) != 1 || argToks[0][0].Kind != token.String {
		e.Diags.Error(tok.Loc, "macro '%s' expects a single string literal argument", tok.Text)
		return "", false
	}
	return argToks[0][0].Str, true
}

// cellMacro resolves an identifier previously bound by alloc_cell8 or
// alloc_cell16 back to the address it was defined to, reporting a
// diagnostic if name isn't such a binding.
func (e *Expander) cellMacro(tok token.Token, name string) (addr int, ok bool) {
	m := e.Macros.Lookup(name)
	if m == nil {
		e.Diags.Error(tok.Loc, "'%s' is not defined", name)
		return 0, false
	}
	if m.IsFunctionLike() || len(m.Body) != 1 || m.Body[0].Kind != token.Integer {
		e.Diags.Error(tok.Loc, "'%s' was not bound by alloc_cell8/alloc_cell16", name)
		return 0, false
	}
	return m.Body[0].Int, true
}

// tempName returns a fresh identifier of the form _tN_suffix (N counts up
// per call), for the scratch cells a built-in's synthesised source
// allocates for itself.
func (e *Expander) tempName(suffix string) string {
	e.tempCounter++
	return fmt.Sprintf("_t%d_%s", e.tempCounter, suffix)
}

// splice scans src under mockFilename and pushes the result as a new,
// unnamed (not recursion-guarded) expansion frame — the core code-reuse
// mechanism every built-in uses to build itself out of smaller built-ins
// and raw BF.
func (e *Expander) splice(s *Source, mockFilename, src string) {
	toks := scanner.ScanString(src, mockFilename)
	s.PushFrame("", toks)
}

// clearMemoryArea returns the source for zeroing count16 16-bit cells
// starting at addr, used by alloc_global16/alloc_temp16 to guarantee their
// region starts at zero.
func clearMemoryArea(addr, count16 int) string {
	var b []byte
	b = append(b, fmt.Sprintf("{ >%d ", addr)...)
	for i := 0; i < count16*2; i++ {
		b = append(b, "[-] > "...)
	}
	b = append(b, '}')
	return string(b)
}

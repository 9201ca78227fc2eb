package parser

import (
	"strings"

	"github.com/paulocustodio/bfpp/internal/expand"
	"github.com/paulocustodio/bfpp/internal/expr"
	"github.com/paulocustodio/bfpp/internal/macrotab"
	"github.com/paulocustodio/bfpp/internal/token"
)

// parseDirective dispatches on a Directive token's text (e.g. "#define"),
// consuming the keyword itself before handing off.
func (p *Parser) parseDirective(tok token.Token) {
	p.src.Advance() // consume the directive keyword

	switch tok.Text {
	case "#include":
		p.parseInclude(tok)
	case "#define":
		p.parseDefine(tok)
	case "#undef":
		p.parseUndef(tok)
	case "#if":
		p.parseIf(tok)
	case "#elsif":
		p.parseElsif(tok)
	case "#else":
		p.parseElse(tok)
	case "#endif":
		p.parseEndif(tok)
	case "#end":
		p.Diags.Error(tok.Loc, "'#end' without matching multi-line #define")
		p.skipToEOL()
	default:
		p.Diags.Error(tok.Loc, "unknown directive '%s'", tok.Text)
		p.skipToEOL()
	}
}

func (p *Parser) parseInclude(tok token.Token) {
	cur := p.src.Current()
	if cur.Kind != token.String {
		p.Diags.Error(cur.Loc, "expected string literal after #include")
		p.skipToEOL()
		return
	}
	filename := cur.Str
	p.src.Advance()
	p.checkLineEnd("#include")

	ok, isCycle := p.Files.PushFile(filename)
	if !ok {
		if isCycle {
			p.Diags.Error(tok.Loc, "#include cycle detected for '%s'", filename)
		} else {
			p.Diags.Error(tok.Loc, "cannot open included file '%s'", filename)
		}
	}
}

func (p *Parser) parseUndef(tok token.Token) {
	cur := p.src.Current()
	if cur.Kind != token.Identifier {
		p.Diags.Error(cur.Loc, "expected macro name after #undef")
		p.skipToEOL()
		return
	}
	name := cur.Text
	p.src.Advance()
	p.checkLineEnd("#undef")

	if reservedKeywords[name] || expand.IsReservedName(name) {
		p.Diags.Error(cur.Loc, "cannot undefine reserved name '%s'", name)
		return
	}
	p.Macros.Undef(name)
}

// parseDefine grounds on the original's three-way split: a parenthesised
// name is always function-like (body runs until a matching #end); a bare
// name's body is single-line if its first token shares the name's source
// line, multi-line (until #end) otherwise.
func (p *Parser) parseDefine(tok token.Token) {
	nameTok := p.src.Current()
	if nameTok.Kind != token.Identifier {
		p.Diags.Error(nameTok.Loc, "expected macro name after #define")
		p.skipToEOL()
		return
	}
	name := nameTok.Text
	p.src.Advance()

	if reservedKeywords[name] || expand.IsReservedName(name) {
		p.Diags.Error(nameTok.Loc, "cannot define macro '%s': reserved name", name)
		p.skipToEOL()
		return
	}

	var params []string
	functionLike := p.src.Current().Kind == token.LParen
	if functionLike {
		p.src.Advance() // consume '('
		if p.src.Current().Kind != token.RParen {
			for {
				pt := p.src.Current()
				if pt.Kind != token.Identifier {
					p.Diags.Error(pt.Loc, "expected parameter name")
					p.skipToEOL()
					return
				}
				params = append(params, pt.Text)
				p.src.Advance()
				if p.src.Current().Kind == token.RParen {
					break
				}
				if !p.src.Current().IsComma() {
					p.Diags.Error(p.src.Current().Loc, "expected ',' or ')' in parameter list")
					p.skipToEOL()
					return
				}
				p.src.Advance()
			}
		}
		p.src.Advance() // consume ')'
	}
	if dup := duplicateParam(params); dup != "" {
		p.Diags.Error(nameTok.Loc, "duplicate parameter name '%s' in macro '%s'", dup, name)
		p.skipToEOL()
		return
	}

	var body []token.Token
	if functionLike {
		body = p.collectUntilEnd(nameTok, name)
	} else {
		firstBodyTok := p.src.Current()
		singleLine := firstBodyTok.Kind != token.EndOfLine && firstBodyTok.Kind != token.EndOfInput &&
			firstBodyTok.Loc.Line == nameTok.Loc.Line
		if singleLine {
			for p.src.Current().Kind != token.EndOfInput && p.src.Current().Loc.Line == nameTok.Loc.Line {
				body = append(body, p.src.Current())
				p.src.Advance()
			}
			body = reinterpretAsBF(body)
		} else {
			body = p.collectUntilEnd(nameTok, name)
		}
	}
	if body == nil {
		return // unterminated #end already reported
	}

	if prev := p.Macros.Define(&macrotab.Macro{Name: name, Params: params, Body: body, Loc: nameTok.Loc}); prev != nil {
		p.Diags.Error(nameTok.Loc, "macro '%s' redefined", name)
		p.Diags.Note(prev.Loc, "previous definition of '%s' is here", name)
	}
}

// collectUntilEnd gathers tokens up to (and consuming) a matching "#end"
// directive, reporting an unterminated-macro error at EndOfInput.
func (p *Parser) collectUntilEnd(nameTok token.Token, name string) []token.Token {
	var body []token.Token
	for {
		cur := p.src.Current()
		if cur.Kind == token.EndOfInput {
			p.Diags.Error(nameTok.Loc, "unterminated macro '%s': missing #end", name)
			return nil
		}
		if cur.Kind == token.Directive && cur.Text == "#end" {
			p.src.Advance()
			return body
		}
		body = append(body, cur)
		p.src.Advance()
	}
}

// bfChars lists the characters the scanner treats as Operator tokens while
// inside a directive line (so "#if a<b" parses as a comparison), but which
// must be reinterpreted as BF opcodes when they are a single-line object-like
// macro's body: that body is invoked outside directive mode, where the same
// characters are BFInstr tokens, and a pasted Operator token would not match
// the statement grammar.
const bfChars = "+-<>[].,"

// reinterpretAsBF rewrites single-character Operator and Comma tokens whose
// text is a BF opcode back into BFInstr tokens, leaving everything else (in
// particular multi-character operators like "==", and anything inside a
// parenthesised sub-expression that legitimately wants operator semantics)
// untouched.
func reinterpretAsBF(toks []token.Token) []token.Token {
	out := make([]token.Token, len(toks))
	depth := 0
	for i, t := range toks {
		switch t.Kind {
		case token.LParen:
			depth++
		case token.RParen:
			if depth > 0 {
				depth--
			}
		}
		if depth > 0 {
			out[i] = t
			continue
		}
		if t.Kind == token.Comma && t.Text == "," {
			out[i] = token.Token{Kind: token.BFInstr, Text: ",", Loc: t.Loc}
			continue
		}
		if t.Kind == token.Operator && len(t.Text) == 1 && strings.Contains(bfChars, t.Text) {
			out[i] = token.Token{Kind: token.BFInstr, Text: t.Text, Loc: t.Loc}
			continue
		}
		out[i] = t
	}
	return out
}

func duplicateParam(params []string) string {
	seen := make(map[string]bool, len(params))
	for _, p := range params {
		if seen[p] {
			return p
		}
		seen[p] = true
	}
	return ""
}

// evalDirectiveExpr evaluates one constant expression from the live
// token stream (undefined identifiers count as 0), checking the line
// ends cleanly afterward.
func (p *Parser) evalDirectiveExpr(directiveText string) int {
	ev := expr.New(p.Macros, p.Tape, expr.UndefinedAsZero, p.Diags)
	val := ev.Eval(p.src)
	p.checkLineEnd(directiveText)
	return val
}

func (p *Parser) parseIf(tok token.Token) {
	cond := p.evalDirectiveExpr("#if") != 0
	p.ifStack = append(p.ifStack, ifState{loc: tok.Loc, conditionTrue: cond, branchTaken: cond})
	if !cond {
		p.skipUntilElseOrEndif()
	}
}

func (p *Parser) parseElsif(tok token.Token) {
	if len(p.ifStack) == 0 {
		p.Diags.Error(tok.Loc, "#elsif without matching #if")
		p.skipToEOL()
		return
	}
	top := &p.ifStack[len(p.ifStack)-1]
	if top.inElse {
		p.Diags.Error(tok.Loc, "#elsif after #else")
		p.skipToEOL()
		return
	}
	if top.branchTaken {
		p.skipToEOL()
		top.conditionTrue = false
		p.skipUntilElseOrEndif()
		return
	}
	cond := p.evalDirectiveExpr("#elsif") != 0
	top.conditionTrue = cond
	if cond {
		top.branchTaken = true
	} else {
		p.skipUntilElseOrEndif()
	}
}

func (p *Parser) parseElse(tok token.Token) {
	if len(p.ifStack) == 0 {
		p.Diags.Error(tok.Loc, "#else without matching #if")
		p.skipToEOL()
		return
	}
	top := &p.ifStack[len(p.ifStack)-1]
	if top.inElse {
		p.Diags.Error(tok.Loc, "multiple #else in the same #if")
		p.skipToEOL()
		return
	}
	top.inElse = true
	p.checkLineEnd("#else")
	if !top.branchTaken {
		top.conditionTrue = true
		top.branchTaken = true
	} else {
		top.conditionTrue = false
		p.skipUntilEndif()
	}
}

func (p *Parser) parseEndif(tok token.Token) {
	if len(p.ifStack) == 0 {
		p.Diags.Error(tok.Loc, "#endif without matching #if")
		p.skipToEOL()
		return
	}
	p.checkLineEnd("#endif")
	p.ifStack = p.ifStack[:len(p.ifStack)-1]
}

// skipUntilElseOrEndif advances raw tokens, counting nested #if/#endif
// opaquely (never evaluating their conditions), until it lands on this
// chain's own #else/#elsif/#endif — leaving that directive token
// unconsumed so the normal dispatch in Run processes it next.
func (p *Parser) skipUntilElseOrEndif() {
	depth := 0
	for {
		cur := p.src.Current()
		if cur.Kind == token.EndOfInput {
			return
		}
		if cur.Kind != token.Directive {
			p.src.Advance()
			continue
		}
		switch cur.Text {
		case "#if":
			depth++
		case "#endif":
			if depth == 0 {
				return
			}
			depth--
		case "#else", "#elsif":
			if depth == 0 {
				return
			}
		}
		p.src.Advance()
	}
}

// skipUntilEndif is skipUntilElseOrEndif's #else-branch counterpart: once
// inside a taken #else, any further #elsif/#else at this nesting level
// would be a user error elsewhere, not something to stop for here.
func (p *Parser) skipUntilEndif() {
	depth := 0
	for {
		cur := p.src.Current()
		if cur.Kind == token.EndOfInput {
			return
		}
		if cur.Kind != token.Directive {
			p.src.Advance()
			continue
		}
		switch cur.Text {
		case "#if":
			depth++
		case "#endif":
			if depth == 0 {
				return
			}
			depth--
		}
		p.src.Advance()
	}
}

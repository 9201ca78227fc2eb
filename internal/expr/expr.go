// Package expr implements the preprocessor's constant-expression evaluator:
// a recursive-descent, 32-bit signed two's-complement evaluator shared by
// "#if"/"#elsif" and by built-in argument parsing.
package expr

import (
	"github.com/paulocustodio/bfpp/internal/diag"
	"github.com/paulocustodio/bfpp/internal/macrotab"
	"github.com/paulocustodio/bfpp/internal/token"
)

// UndefinedMode selects how an undefined identifier is treated: #if/#elsif
// conditions treat an undefined identifier as 0, while built-in argument
// parsing treats it as an error.
type UndefinedMode int

const (
	// UndefinedAsZero is used for "#if"/"#elsif" conditions.
	UndefinedAsZero UndefinedMode = iota
	// ErrorOnUndefined is used for built-in argument expressions.
	ErrorOnUndefined
)

// Addresser resolves the address-helper function calls
// global/temp/arg/local/local_temp that may appear as primaries in an
// expression. It is implemented by internal/tape.Allocator; expr depends
// only on this interface so the two packages don't need to know about each
// other's concrete types.
type Addresser interface {
	GlobalAddr(n int) (int, error)
	TempAddr(n int) (int, error)
	FrameArgAddr(n int) (int, error)
	FrameLocalAddr(n int) (int, error)
	FrameLocalTempAddr(n int) (int, error)
}

// Evaluator parses and evaluates expressions against a fixed macro table
// snapshot and an optional Addresser (nil is fine when no built-in address
// helpers appear; with a nil Addresser a helper call is reported as an
// error).
type Evaluator struct {
	macros *macrotab.Table
	addr   Addresser
	mode   UndefinedMode
	diags  *diag.Reporter

	source    Source
	expanding map[string]bool // recursion guard for object-like macros
}

// New builds an Evaluator. macros and diags must be non-nil; addr may be
// nil.
func New(macros *macrotab.Table, addr Addresser, mode UndefinedMode, diags *diag.Reporter) *Evaluator {
	return &Evaluator{macros: macros, addr: addr, mode: mode, diags: diags, expanding: make(map[string]bool)}
}

// Eval parses one expression from source and returns its value. It stops as
// soon as the expression grammar is satisfied; the caller is responsible
// for checking that source is positioned where it expects afterwards (e.g.
// at EndOfLine or a closing paren).
func (e *Evaluator) Eval(source Source) int {
	e.source = source
	return e.parseLogicalOr()
}

func (e *Evaluator) cur() token.Token  { return e.source.Current() }
func (e *Evaluator) adv()              { e.source.Advance() }
func (e *Evaluator) isOp(s string) bool {
	t := e.cur()
	return t.Kind == token.Operator && t.Text == s
}

func (e *Evaluator) parseLogicalOr() int {
	left := e.parseLogicalAnd()
	for e.isOp("||") {
		e.adv()
		right := e.parseLogicalAnd()
		left = boolInt(left != 0 || right != 0)
	}
	return left
}

func (e *Evaluator) parseLogicalAnd() int {
	left := e.parseBitwiseOr()
	for e.isOp("&&") {
		e.adv()
		right := e.parseBitwiseOr()
		left = boolInt(left != 0 && right != 0)
	}
	return left
}

func (e *Evaluator) parseBitwiseOr() int {
	left := e.parseBitwiseXor()
	for e.isOp("|") {
		e.adv()
		left = left | e.parseBitwiseXor()
	}
	return left
}

func (e *Evaluator) parseBitwiseXor() int {
	left := e.parseBitwiseAnd()
	for e.isOp("^") {
		e.adv()
		left = left ^ e.parseBitwiseAnd()
	}
	return left
}

func (e *Evaluator) parseBitwiseAnd() int {
	left := e.parseEquality()
	for e.isOp("&") {
		e.adv()
		left = left & e.parseEquality()
	}
	return left
}

func (e *Evaluator) parseEquality() int {
	left := e.parseRelational()
	for {
		t := e.cur()
		if t.Kind != token.Operator || (t.Text != "==" && t.Text != "!=") {
			break
		}
		op := t.Text
		e.adv()
		right := e.parseRelational()
		if op == "==" {
			left = boolInt(left == right)
		} else {
			left = boolInt(left != right)
		}
	}
	return left
}

func (e *Evaluator) parseRelational() int {
	left := e.parseShift()
	for {
		t := e.cur()
		if t.Kind != token.Operator {
			break
		}
		op := t.Text
		if op != "<" && op != "<=" && op != ">" && op != ">=" {
			break
		}
		e.adv()
		right := e.parseShift()
		switch op {
		case "<":
			left = boolInt(left < right)
		case "<=":
			left = boolInt(left <= right)
		case ">":
			left = boolInt(left > right)
		default:
			left = boolInt(left >= right)
		}
	}
	return left
}

func (e *Evaluator) parseShift() int {
	left := e.parseAdditive()
	for {
		t := e.cur()
		if t.Kind != token.Operator || (t.Text != "<<" && t.Text != ">>") {
			break
		}
		op := t.Text
		loc := t.Loc
		e.adv()
		right := e.parseAdditive()
		if right < 0 {
			e.diags.Error(loc, "negative shift count")
			continue
		}
		if op == "<<" {
			left = int(int32(left) << uint(right))
		} else {
			left = int(int32(left) >> uint(right))
		}
	}
	return left
}

func (e *Evaluator) parseAdditive() int {
	left := e.parseMultiplicative()
	for {
		t := e.cur()
		if t.Kind != token.Operator || (t.Text != "+" && t.Text != "-") {
			break
		}
		op := t.Text
		e.adv()
		right := e.parseMultiplicative()
		if op == "+" {
			left = int(int32(left) + int32(right))
		} else {
			left = int(int32(left) - int32(right))
		}
	}
	return left
}

func (e *Evaluator) parseMultiplicative() int {
	left := e.parseUnary()
	for {
		t := e.cur()
		if t.Kind != token.Operator || (t.Text != "*" && t.Text != "/" && t.Text != "%") {
			break
		}
		op := t.Text
		loc := t.Loc
		e.adv()
		right := e.parseUnary()
		switch op {
		case "*":
			left = int(int32(left) * int32(right))
		case "/":
			if right == 0 {
				e.diags.Error(loc, "division by zero")
				left = 0
			} else {
				left = int(int32(left) / int32(right))
			}
		default: // %
			if right == 0 {
				e.diags.Error(loc, "modulo by zero")
				left = 0
			} else {
				left = int(int32(left) % int32(right))
			}
		}
	}
	return left
}

func (e *Evaluator) parseUnary() int {
	t := e.cur()
	// "defined" is scanned as a plain Identifier (the scanner has no
	// keyword table), so it must be recognised by text before falling
	// into the token.Operator-only switch below.
	if t.Kind == token.Identifier && t.Text == "defined" {
		return e.parseDefined()
	}
	if t.Kind == token.Operator {
		switch t.Text {
		case "!":
			e.adv()
			return boolInt(e.parseUnary() == 0)
		case "+":
			e.adv()
			return e.parseUnary()
		case "-":
			e.adv()
			return int(-int32(e.parseUnary()))
		case "~":
			e.adv()
			return int(^int32(e.parseUnary()))
		}
	}
	return e.parsePrimary()
}

func (e *Evaluator) parseDefined() int {
	e.adv() // consume "defined"
	paren := false
	if e.cur().Kind == token.LParen {
		paren = true
		e.adv()
	}
	if e.cur().Kind != token.Identifier {
		e.diags.Error(e.cur().Loc, "expected identifier after defined")
		return 0
	}
	isDef := e.macros.Has(e.cur().Text)
	e.adv()
	if paren {
		if e.cur().Kind != token.RParen {
			e.diags.Error(e.cur().Loc, "expected ')'")
		} else {
			e.adv()
		}
	}
	return boolInt(isDef)
}

var addressFuncs = map[string]func(a Addresser, n int) (int, error){
	"global":     func(a Addresser, n int) (int, error) { return a.GlobalAddr(n) },
	"temp":       func(a Addresser, n int) (int, error) { return a.TempAddr(n) },
	"arg":        func(a Addresser, n int) (int, error) { return a.FrameArgAddr(n) },
	"local":      func(a Addresser, n int) (int, error) { return a.FrameLocalAddr(n) },
	"local_temp": func(a Addresser, n int) (int, error) { return a.FrameLocalTempAddr(n) },
}

func (e *Evaluator) parsePrimary() int {
	t := e.cur()

	switch t.Kind {
	case token.Integer:
		e.adv()
		return t.Int

	case token.Identifier:
		if fn, ok := addressFuncs[t.Text]; ok {
			funcTok := t
			e.adv()
			if e.cur().Kind != token.LParen {
				e.diags.Error(e.cur().Loc, "expected '(' after function name '%s'", funcTok.Text)
				return 0
			}
			e.adv()
			arg := e.parseLogicalOr()
			if e.cur().Kind != token.RParen {
				e.diags.Error(e.cur().Loc, "expected ')'")
			} else {
				e.adv()
			}
			if e.addr == nil {
				e.diags.Error(funcTok.Loc, "'%s' used outside of an active compilation", funcTok.Text)
				return 0
			}
			v, err := fn(e.addr, arg)
			if err != nil {
				e.diags.Error(funcTok.Loc, "%s", err)
				return 0
			}
			return v
		}
		v := e.valueOfIdentifier(t)
		e.adv()
		return v

	case token.LParen:
		e.adv()
		v := e.parseLogicalOr()
		if e.cur().Kind != token.RParen {
			e.diags.Error(e.cur().Loc, "expected ')'")
		} else {
			e.adv()
		}
		return v
	}

	e.diags.Error(t.Loc, "unexpected token in expression")
	e.adv()
	return 0
}

func (e *Evaluator) valueOfIdentifier(t token.Token) int {
	return e.evalMacroRecursive(t)
}

func (e *Evaluator) evalMacroRecursive(t token.Token) int {
	name := t.Text
	m := e.macros.Lookup(name)
	if m == nil {
		if e.mode == UndefinedAsZero {
			return 0
		}
		e.diags.Error(t.Loc, "macro '%s' is not defined", name)
		return 0
	}
	if m.IsFunctionLike() {
		e.diags.Error(t.Loc, "macro '%s' is not an object-like macro", name)
		e.diags.Note(m.Loc, "macro '%s' defined here", name)
		return 0
	}
	if e.expanding[name] {
		e.diags.Error(m.Loc, "circular macro expansion in expression")
		return 0
	}

	e.expanding[name] = true
	sub := &Evaluator{macros: e.macros, addr: e.addr, mode: e.mode, diags: e.diags, expanding: e.expanding}
	val := sub.Eval(NewSliceSource(m.Body))
	delete(e.expanding, name)
	return val
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

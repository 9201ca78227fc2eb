package parser

import (
	"strings"

	"github.com/paulocustodio/bfpp/internal/expr"
	"github.com/paulocustodio/bfpp/internal/token"
)

// parseStatement handles one non-directive token: an Identifier is first
// offered to the expander (built-in or user macro); anything it doesn't
// recognise falls through to the BF-instruction grammar, and anything
// that's neither is an error.
func (p *Parser) parseStatement(tok token.Token) {
	if tok.Kind == token.Identifier {
		if p.Expander.TryExpand(p.src, tok) {
			return
		}
		p.Diags.Error(tok.Loc, "undefined identifier '%s'", tok.Text)
		p.src.Advance()
		return
	}

	// A BF opcode scanned inside a macro argument list arrives as an
	// Operator token; substituted into statement position it is a BF
	// instruction.
	if tok.Kind == token.Operator && len(tok.Text) == 1 && strings.Contains(bfChars, tok.Text) {
		tok.Kind = token.BFInstr
	}

	switch tok.Kind {
	case token.BFInstr:
		p.parseBFInstr(tok)
	case token.LBrace:
		p.parseLeftBrace(tok)
	case token.RBrace:
		p.parseRightBrace(tok)
	default:
		p.Diags.Error(tok.Loc, "unexpected token '%s'", tok.Text)
		p.src.Advance()
	}
}

// parseBFInstr dispatches a raw Brainfuck instruction token, handling the
// optional positional/count argument each opcode accepts.
func (p *Parser) parseBFInstr(tok token.Token) {
	p.src.Advance() // consume the opcode

	switch tok.Text {
	case "+", "-":
		p.parsePlusMinus(tok)
	case "<", ">":
		p.parseLeftRight(tok)
	case "[":
		p.parseLoopStart(tok)
	case "]":
		p.parseLoopEnd(tok)
	case ".", ",":
		p.Out.Put(tok)
	}
}

// parseOptionalArg parses an optional parenthesised or bare argument
// following a BF opcode: "(expr)", a single bare identifier evaluated as
// an expression, a bare integer literal, or nothing at all (defaultVal).
func (p *Parser) parseOptionalArg(defaultVal int) int {
	cur := p.src.Current()
	switch {
	case cur.Kind == token.LParen:
		p.src.Advance()
		ev := expr.New(p.Macros, p.Tape, expr.ErrorOnUndefined, p.Diags)
		val := ev.Eval(p.src)
		if p.src.Current().Kind != token.RParen {
			p.Diags.Error(p.src.Current().Loc, "expected ')'")
		} else {
			p.src.Advance()
		}
		return val
	case cur.Kind == token.Integer:
		p.src.Advance()
		return cur.Int
	case cur.Kind == token.Identifier:
		ev := expr.New(p.Macros, p.Tape, expr.ErrorOnUndefined, p.Diags)
		return ev.Eval(p.src)
	default:
		return defaultVal
	}
}

// parsePlusMinus handles a '+' or '-' with an optional repeat count; a
// negative count inverts the opcode, matching the original's treatment of
// "-5" after '+' as five '-' instructions.
func (p *Parser) parsePlusMinus(tok token.Token) {
	count := p.parseOptionalArg(1)
	opcode := tok.Text[0]
	if count < 0 {
		count = -count
		if opcode == '+' {
			opcode = '-'
		} else {
			opcode = '+'
		}
	}
	for i := 0; i < count; i++ {
		p.Out.Put(token.MakeBF(opcode, tok.Loc))
	}
}

// parseLeftRight handles '<'/'>' with an optional absolute target tape
// position, converting it to the relative run of moves needed to reach
// it; with no argument it behaves as a single move in the written
// direction.
func (p *Parser) parseLeftRight(tok token.Token) {
	cur := p.src.Current()
	hasArg := cur.Kind == token.LParen || cur.Kind == token.Integer || cur.Kind == token.Identifier
	if !hasArg {
		p.Out.Put(tok)
		return
	}
	target := p.parseOptionalArg(0)
	delta := target - p.Out.TapePtr()
	opcode := byte('>')
	if delta < 0 {
		opcode = '<'
		delta = -delta
	}
	for i := 0; i < delta; i++ {
		p.Out.Put(token.MakeBF(opcode, tok.Loc))
	}
}

// parseLoopStart handles '[' with an optional target tape position:
// compensating moves are emitted first so the loop always opens at the
// pointer it claims to, then the frame recording that pointer is pushed.
func (p *Parser) parseLoopStart(tok token.Token) {
	cur := p.src.Current()
	if cur.Kind == token.LParen || cur.Kind == token.Integer || cur.Kind == token.Identifier {
		target := p.parseOptionalArg(p.Out.TapePtr())
		delta := target - p.Out.TapePtr()
		opcode := byte('>')
		if delta < 0 {
			opcode = '<'
			delta = -delta
		}
		for i := 0; i < delta; i++ {
			p.Out.Put(token.MakeBF(opcode, tok.Loc))
		}
	}
	p.loopStack = append(p.loopStack, loopFrame{loc: tok.Loc, tapePtrAtOpen: p.Out.TapePtr()})
	p.Out.Put(tok)
}

// parseLoopEnd pops the matching '[' frame and checks the tape pointer
// returned to the position it was opened at.
func (p *Parser) parseLoopEnd(tok token.Token) {
	p.Out.Put(tok)
	if len(p.loopStack) == 0 {
		return // output.Buffer already reported the unmatched ']'
	}
	top := p.loopStack[len(p.loopStack)-1]
	p.loopStack = p.loopStack[:len(p.loopStack)-1]
	if p.Out.TapePtr() != top.tapePtrAtOpen {
		p.Diags.Error(tok.Loc, "tape pointer at ']' (%d) does not match pointer at matching '[' (%d)",
			p.Out.TapePtr(), top.tapePtrAtOpen)
		p.Diags.Note(top.loc, "loop opened here")
	}
}

// parseLeftBrace pushes a tape-pointer checkpoint; braces never emit BF
// output themselves.
func (p *Parser) parseLeftBrace(tok token.Token) {
	p.src.Advance()
	p.braceStack = append(p.braceStack, braceFrame{loc: tok.Loc, tapePtrAtOpen: p.Out.TapePtr()})
}

// parseRightBrace pops the checkpoint and reports a mismatch if the tape
// pointer didn't return to where it was when the brace opened.
func (p *Parser) parseRightBrace(tok token.Token) {
	p.src.Advance()
	if len(p.braceStack) == 0 {
		p.Diags.Error(tok.Loc, "unmatched '}'")
		return
	}
	top := p.braceStack[len(p.braceStack)-1]
	p.braceStack = p.braceStack[:len(p.braceStack)-1]
	if p.Out.TapePtr() != top.tapePtrAtOpen {
		p.Diags.Error(tok.Loc, "tape pointer at '}' (%d) does not match pointer at matching '{' (%d)",
			p.Out.TapePtr(), top.tapePtrAtOpen)
		p.Diags.Note(top.loc, "checkpoint opened here")
	}
}

// Package parser implements the top-level driver loop: directive
// dispatch, BF-instruction interpretation with optional positional
// arguments, and the interaction between macro expansion and output
// emission. It owns every stack in the preprocessor (file stack, loop
// stack, #if stack) except the expansion-frame stack, which belongs to
// expand.Source, and the if/while/repeat struct stack, which belongs to
// expand.Expander.
package parser

import (
	"github.com/paulocustodio/bfpp/internal/comment"
	"github.com/paulocustodio/bfpp/internal/diag"
	"github.com/paulocustodio/bfpp/internal/expand"
	"github.com/paulocustodio/bfpp/internal/expr"
	"github.com/paulocustodio/bfpp/internal/macrotab"
	"github.com/paulocustodio/bfpp/internal/output"
	"github.com/paulocustodio/bfpp/internal/scanner"
	"github.com/paulocustodio/bfpp/internal/source"
	"github.com/paulocustodio/bfpp/internal/tape"
	"github.com/paulocustodio/bfpp/internal/token"
)

// loopFrame records the tape pointer position a '[' was opened at, so the
// matching ']' can report a pointer mismatch.
type loopFrame struct {
	loc          token.Location
	tapePtrAtOpen int
}

// ifState is one level of the #if/#elsif/#else/#endif stack.
type ifState struct {
	loc           token.Location
	conditionTrue bool
	branchTaken   bool
	inElse        bool
}

var reservedKeywords = map[string]bool{
	"include": true, "define": true, "undef": true,
	"if": true, "elsif": true, "else": true, "endif": true, "end": true,
}

// Parser drives one preprocessor run: it owns the file stack, the
// comment stripper, the lexer, the macro-expansion source, and every
// bookkeeping stack the directive/statement grammar needs.
type Parser struct {
	Files    *source.FileStack
	Macros   *macrotab.Table
	Tape     *tape.Allocator
	Out      *output.Buffer
	Diags    *diag.Reporter
	Expander *expand.Expander

	stripper *comment.Stripper
	lexer    *scanner.Lexer
	src      *expand.Source

	loopStack  []loopFrame
	ifStack    []ifState
	braceStack []braceFrame
}

// braceFrame records the tape pointer a '{' checkpoint saved, so the
// matching '}' can restore it.
type braceFrame struct {
	loc           token.Location
	tapePtrAtOpen int
}

// New builds a Parser reading from files (already primed with the first
// input), sharing macros/tp/out/diags with the rest of the pipeline.
func New(files *source.FileStack, macros *macrotab.Table, tp *tape.Allocator, out *output.Buffer, diags *diag.Reporter) *Parser {
	stripper := comment.New(files)
	p := &Parser{
		Files:    files,
		Macros:   macros,
		Tape:     tp,
		Out:      out,
		Diags:    diags,
		Expander: expand.New(macros, tp, out, diags),
		stripper: stripper,
	}
	p.lexer = scanner.NewLexer(stripper, files.Filename)
	p.src = expand.NewSource(p.lexer, p.Expander.ClearExpanding)
	return p
}

// Run drives the parser to completion: directives are dispatched, BF
// statements are expanded and emitted, and every open structure
// (loops, if-chain, struct-stack, braces) is checked at end of input.
func (p *Parser) Run() {
	for {
		tok := p.src.Current()
		switch tok.Kind {
		case token.EndOfInput:
			p.checkUnclosed()
			return
		case token.EndOfLine:
			p.src.Advance()
		case token.Directive:
			p.parseDirective(tok)
		default:
			if !p.ifActive() {
				p.src.Advance()
				continue
			}
			p.parseStatement(tok)
		}
	}
}

func (p *Parser) checkUnclosed() {
	p.Out.CheckLoops()
	p.Expander.CheckStructStack()
	for _, lvl := range p.ifStack {
		p.Diags.Error(lvl.loc, "unterminated #if (missing #endif)")
	}
	for _, fr := range p.braceStack {
		p.Diags.Error(fr.loc, "unterminated '{' checkpoint")
	}
}

// ifActive reports whether the current #if/#elsif/#else chain (if any) is
// in a branch that should be expanded and emitted.
func (p *Parser) ifActive() bool {
	if len(p.ifStack) == 0 {
		return true
	}
	return p.ifStack[len(p.ifStack)-1].conditionTrue
}

func (p *Parser) skipToEOL() {
	for {
		cur := p.src.Current()
		if cur.Kind == token.EndOfLine || cur.Kind == token.EndOfInput {
			return
		}
		p.src.Advance()
	}
}

// checkLineEnd reports a trailing-token error if the directive line has
// more than expected after the directive's own arguments, then always
// skips any remainder to end of line.
func (p *Parser) checkLineEnd(directiveText string) {
	cur := p.src.Current()
	if cur.Kind != token.EndOfLine && cur.Kind != token.EndOfInput {
		p.Diags.Error(cur.Loc, "unexpected token after %s: '%s'", directiveText, cur.Text)
	}
	p.skipToEOL()
}

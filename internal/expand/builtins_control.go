package expand

import (
	"fmt"

	"github.com/paulocustodio/bfpp/internal/token"
)

// structKind identifies which control-flow builtin opened a structStack
// entry, so its matching closer can be checked for agreement (an "else"
// can only close an "if", etc.) and so CheckStructStack can report the
// right diagnostic for whatever is left open at end of input.
type structKind int

const (
	structIf structKind = iota
	structElse
	structWhile
	structRepeat
)

// structLevel is one entry of the if/while/repeat nesting stack. tempIf
// and tempElse name the scratch cells if/else/endif thread through their
// partial splices; cond is the condition cell while/endwhile re-test each
// iteration.
type structLevel struct {
	kind     structKind
	loc      token.Location
	tempIf   string
	tempElse string
	cond     int
}

// handleIf opens an if/else/endif group: it copies the condition cell,
// negates it twice into tempIf (so tempIf ends up 0 or 1 regardless of
// what nonzero value cond held), then emits a dangling "[ {" that the
// matching else or endif splice closes later.
func handleIf(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr")
	if !ok {
		return
	}
	cond := vals[0]
	level := structLevel{
		kind:     structIf,
		loc:      tok.Loc,
		tempIf:   e.tempName("temp_if"),
		tempElse: e.tempName("temp_else"),
	}
	e.splice(s, "(if)", fmt.Sprintf(
		"{ alloc_cell8(%s) alloc_cell8(%s) "+
			"copy8(%d, %s) not8(%s) "+
			"copy8(%s, %s) not8(%s) "+
			">%s [ {",
		level.tempIf, level.tempElse,
		cond, level.tempElse, level.tempElse,
		level.tempElse, level.tempIf, level.tempIf,
		level.tempIf))
	e.structStack = append(e.structStack, level)
}

func handleElse(e *Expander, s *Source, tok token.Token) {
	s.Advance()
	if len(e.structStack) == 0 {
		e.Diags.Error(tok.Loc, "else without matching if")
		return
	}
	top := &e.structStack[len(e.structStack)-1]
	if top.kind != structIf {
		e.Diags.Error(tok.Loc, "else without if")
		return
	}
	top.kind = structElse
	e.splice(s, "(else)", fmt.Sprintf("} - ] >%s [ {", top.tempElse))
}

func handleEndif(e *Expander, s *Source, tok token.Token) {
	s.Advance()
	if len(e.structStack) == 0 {
		e.Diags.Error(tok.Loc, "endif without matching if")
		return
	}
	top := e.structStack[len(e.structStack)-1]
	if top.kind != structIf && top.kind != structElse {
		e.Diags.Error(tok.Loc, "endif without if")
		return
	}
	e.splice(s, "(endif)", fmt.Sprintf(
		"} - ] free_cell8(%s) free_cell8(%s) }", top.tempIf, top.tempElse))
	e.structStack = e.structStack[:len(e.structStack)-1]
}

// handleWhile opens a while/endwhile loop. cond is re-evaluated (by
// re-copying the condition cell) both on entry and at the top of
// endwhile's splice, so the loop body can freely clobber cond's cell
// between iterations.
func handleWhile(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr")
	if !ok {
		return
	}
	cond := vals[0]
	level := structLevel{
		kind:   structWhile,
		loc:    tok.Loc,
		tempIf: e.tempName("temp_if"),
		cond:   cond,
	}
	e.splice(s, "(while)", fmt.Sprintf(
		"{ alloc_cell8(%s) copy8(%d, %s) not8(%s) not8(%s) >%s [ {",
		level.tempIf, level.cond, level.tempIf, level.tempIf, level.tempIf, level.tempIf))
	e.structStack = append(e.structStack, level)
}

func handleEndwhile(e *Expander, s *Source, tok token.Token) {
	s.Advance()
	if len(e.structStack) == 0 {
		e.Diags.Error(tok.Loc, "endwhile without matching while")
		return
	}
	top := e.structStack[len(e.structStack)-1]
	if top.kind != structWhile {
		e.Diags.Error(tok.Loc, "endwhile without matching while")
		return
	}
	e.splice(s, "(endwhile)", fmt.Sprintf(
		"} copy8(%d, %s) not8(%s) not8(%s) >%s ] free_cell8(%s) }",
		top.cond, top.tempIf, top.tempIf, top.tempIf, top.tempIf, top.tempIf))
	e.structStack = e.structStack[:len(e.structStack)-1]
}

// handleRepeat opens a repeat/endrepeat loop that runs as many iterations
// as the count cell holds at run time: the cell is decremented in place by
// the closing endrepeat, so the argument expression is evaluated exactly once, unlike
// while's re-evaluated condition.
func handleRepeat(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr")
	if !ok {
		return
	}
	count := vals[0]
	level := structLevel{kind: structRepeat, loc: tok.Loc}
	e.splice(s, "(repeat)", fmt.Sprintf("{ >%d [ { ", count))
	e.structStack = append(e.structStack, level)
}

func handleEndrepeat(e *Expander, s *Source, tok token.Token) {
	s.Advance()
	if len(e.structStack) == 0 {
		e.Diags.Error(tok.Loc, "endrepeat without matching repeat")
		return
	}
	top := e.structStack[len(e.structStack)-1]
	if top.kind != structRepeat {
		e.Diags.Error(tok.Loc, "endrepeat without matching repeat")
		return
	}
	e.splice(s, "(endrepeat)", "} - ] }")
	e.structStack = e.structStack[:len(e.structStack)-1]
}

// CheckStructStack reports a diagnostic for every if/while/repeat left
// open at end of input, naming the opener so the user can find it
// without cross-referencing line numbers of a no-longer-existing closer.
func (e *Expander) CheckStructStack() {
	for _, level := range e.structStack {
		switch level.kind {
		case structIf, structElse:
			e.Diags.Error(level.loc, "if without matching endif")
		case structWhile:
			e.Diags.Error(level.loc, "while without matching endwhile")
		case structRepeat:
			e.Diags.Error(level.loc, "repeat without matching endrepeat")
		}
	}
}

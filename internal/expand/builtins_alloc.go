package expand

import (
	"fmt"

	"github.com/paulocustodio/bfpp/internal/macrotab"
	"github.com/paulocustodio/bfpp/internal/token"
)

func handleAllocCell8(e *Expander, s *Source, tok token.Token) {
	name, ok := e.identArg(s, tok)
	if !ok {
		return
	}
	addr := e.Tape.AllocCells(1)
	e.Macros.Define(&macrotab.Macro{Name: name, Body: []token.Token{token.MakeInt(addr, tok.Loc)}, Loc: tok.Loc})
	e.splice(s, "(alloc_cell8)", fmt.Sprintf("{ >%d [-] }", addr))
}

func handleAllocCell16(e *Expander, s *Source, tok token.Token) {
	name, ok := e.identArg(s, tok)
	if !ok {
		return
	}
	addr := e.Tape.AllocCells(2)
	e.Macros.Define(&macrotab.Macro{Name: name, Body: []token.Token{token.MakeInt(addr, tok.Loc)}, Loc: tok.Loc})
	e.splice(s, "(alloc_cell16)", fmt.Sprintf("{ >%d [-] >%d [-] }", addr, addr+1))
}

func handleFreeCell8(e *Expander, s *Source, tok token.Token) {
	name, ok := e.identArg(s, tok)
	if !ok {
		return
	}
	addr, ok := e.cellMacro(tok, name)
	if !ok {
		return
	}
	if err := e.Tape.FreeCells(addr); err != nil {
		e.Diags.Error(tok.Loc, "free_cell8: %s", err)
	}
	e.Macros.Undef(name)
	e.splice(s, "(free_cell8)", fmt.Sprintf("{ >%d [-] }", addr))
}

func handleFreeCell16(e *Expander, s *Source, tok token.Token) {
	name, ok := e.identArg(s, tok)
	if !ok {
		return
	}
	addr, ok := e.cellMacro(tok, name)
	if !ok {
		return
	}
	if err := e.Tape.FreeCells(addr); err != nil {
		e.Diags.Error(tok.Loc, "free_cell16: %s", err)
	}
	e.Macros.Undef(name)
	e.splice(s, "(free_cell16)", fmt.Sprintf("{ >%d [-] >%d [-] }", addr, addr+1))
}

func handleClear8(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr")
	if !ok {
		return
	}
	e.splice(s, "(clear8)", fmt.Sprintf("{ >%d [-] }", vals[0]))
}

func handleClear16(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr")
	if !ok {
		return
	}
	a := vals[0]
	e.splice(s, "(clear16)", fmt.Sprintf("{ >%d [-] >%d [-] }", a, a+1))
}

func handleSet8(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "a", "b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]&0xFF
	e.splice(s, "(set8)", fmt.Sprintf("{ >%d [-] +%d }", a, b))
}

func handleSet16(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "a", "b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	lo, hi := b&0xFF, (b>>8)&0xFF
	e.splice(s, "(set16)", fmt.Sprintf("{ >%d [-] +%d >%d [-] +%d }", a, lo, a+1, hi))
}

func handleMove8(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "a", "b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	e.splice(s, "(move8)", fmt.Sprintf("{ >%d [-] >%d [ - >%d + >%d ] }", b, a, b, a))
}

func handleMove16(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "a", "b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	e.splice(s, "(move16)", fmt.Sprintf("move8(%d, %d) move8(%d, %d)", a, b, a+1, b+1))
}

func handleCopy8(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "a", "b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	t := e.tempName("copy8")
	e.splice(s, "(copy8)", fmt.Sprintf(
		"{ alloc_cell8(%s) >%d [-] >%d [ - >%d + >%s + >%d ] >%s [ - >%d + >%s ] free_cell8(%s) }",
		t, b, a, b, t, a, t, a, t, t))
}

func handleCopy16(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "a", "b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	e.splice(s, "(copy16)", fmt.Sprintf("copy8(%d, %d) copy8(%d, %d)", a, b, a+1, b+1))
}

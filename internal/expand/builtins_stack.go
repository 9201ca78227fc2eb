package expand

import (
	"fmt"

	"github.com/paulocustodio/bfpp/internal/token"
)

func handlePush8(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "source_cell")
	if !ok {
		return
	}
	source := vals[0]
	target := e.Tape.AllocStack(2)
	e.splice(s, "(push8)", fmt.Sprintf("copy8(%d, %d) ", source, target))
}

func handlePush16(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "source_cell")
	if !ok {
		return
	}
	source := vals[0]
	target := e.Tape.AllocStack(2)
	e.splice(s, "(push16)", fmt.Sprintf("copy16(%d, %d) ", source, target))
}

func handlePush8i(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "value")
	if !ok {
		return
	}
	value := vals[0]
	target := e.Tape.AllocStack(2)
	e.splice(s, "(push8i)", fmt.Sprintf("set8(%d, %d) ", target, value))
}

func handlePush16i(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "value")
	if !ok {
		return
	}
	value := vals[0]
	target := e.Tape.AllocStack(2)
	e.splice(s, "(push16i)", fmt.Sprintf("set16(%d, %d) ", target, value))
}

func handlePop8(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "target_cell")
	if !ok {
		return
	}
	target := vals[0]
	source := e.Tape.StackPtr()
	e.Tape.FreeStack(2)
	e.splice(s, "(pop8)", fmt.Sprintf("move8(%d, %d) ", source, target))
}

func handlePop16(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "target_cell")
	if !ok {
		return
	}
	target := vals[0]
	source := e.Tape.StackPtr()
	e.Tape.FreeStack(2)
	e.splice(s, "(pop16)", fmt.Sprintf("move16(%d, %d) ", source, target))
}

func handleAllocGlobal16(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "count")
	if !ok {
		return
	}
	count16 := vals[0]
	addr, err := e.Tape.AllocGlobal(count16)
	if err != nil {
		e.Diags.Error(tok.Loc, "alloc_global16: %s", err)
		return
	}
	e.splice(s, "(alloc_global16)", clearMemoryArea(addr, count16))
}

func handleFreeGlobal16(e *Expander, s *Source, tok token.Token) {
	s.Advance()
	if err := e.Tape.FreeGlobal(); err != nil {
		e.Diags.Error(tok.Loc, "free_global16: %s", err)
	}
}

func handleAllocTemp16(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "count")
	if !ok {
		return
	}
	count16 := vals[0]
	addr, err := e.Tape.AllocTemp(count16)
	if err != nil {
		e.Diags.Error(tok.Loc, "alloc_temp16: %s", err)
		return
	}
	e.splice(s, "(alloc_temp16)", clearMemoryArea(addr, count16))
}

func handleFreeTemp16(e *Expander, s *Source, tok token.Token) {
	s.Advance()
	if err := e.Tape.FreeTemp(); err != nil {
		e.Diags.Error(tok.Loc, "free_temp16: %s", err)
	}
}

func handleEnterFrame16(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "args16", "locals16")
	if !ok {
		return
	}
	e.Tape.EnterFrame(vals[0], vals[1])
}

func handleLeaveFrame16(e *Expander, s *Source, tok token.Token) {
	s.Advance()
	if err := e.Tape.LeaveFrame(); err != nil {
		e.Diags.Error(tok.Loc, "leave_frame16: %s", err)
	}
}

func handleFrameAllocTemp16(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "temp16")
	if !ok {
		return
	}
	if err := e.Tape.FrameAllocTemp(vals[0]); err != nil {
		e.Diags.Error(tok.Loc, "frame_alloc_temp16: %s", err)
	}
}

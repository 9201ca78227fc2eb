// Package expand implements macro expansion: the decision between a
// user-defined macro and a built-in, argument collection, parameter
// substitution, and the roughly one hundred built-in operators that
// synthesise their own preprocessor source and push it as a new expansion
// frame.
package expand

import (
	"github.com/paulocustodio/bfpp/internal/scanner"
	"github.com/paulocustodio/bfpp/internal/token"
)

// frame is one pushed token list, consumed before the underlying lexer is
// touched again. name is non-empty only for frames that back a user-macro
// expansion, so the recursion guard can be cleared exactly when that frame
// is exhausted; built-in splices push an empty name since built-ins are
// never subject to the guard.
type frame struct {
	name string
	toks []token.Token
	pos  int
}

// Source combines the underlying lexer with a LIFO stack of expansion
// frames: frames are always consumed first, and the lexer is only touched
// once every frame is empty. It implements expr.Source directly.
type Source struct {
	lexer  *scanner.Lexer
	frames []*frame
	onPop  func(name string)
}

// NewSource wraps lexer for macro expansion. onPop, if non-nil, is called
// with the name of every named frame as it is popped (used to release the
// recursion guard for user-macro expansions).
func NewSource(lexer *scanner.Lexer, onPop func(name string)) *Source {
	return &Source{lexer: lexer, onPop: onPop}
}

// compact pops any exhausted frames off the top of the stack. A frame is
// exhausted either when its tokens are fully consumed, or when its current
// token is the synthetic EndOfInput each frame is built with as a
// terminator: that sentinel marks the frame's own end, not the end of the
// whole input, so it must never reach the caller — it just triggers the pop
// down to whatever frame (or the real lexer) lies beneath.
func (s *Source) compact() {
	for len(s.frames) > 0 {
		top := s.frames[len(s.frames)-1]
		if top.pos < len(top.toks) && top.toks[top.pos].Kind != token.EndOfInput {
			return
		}
		s.frames = s.frames[:len(s.frames)-1]
		if top.name != "" && s.onPop != nil {
			s.onPop(top.name)
		}
	}
}

// Current returns the next token to be consumed, without consuming it.
func (s *Source) Current() token.Token {
	s.compact()
	if len(s.frames) > 0 {
		top := s.frames[len(s.frames)-1]
		return top.toks[top.pos]
	}
	return s.lexer.Peek(0)
}

// Advance consumes the current token.
func (s *Source) Advance() {
	s.compact()
	if len(s.frames) > 0 {
		s.frames[len(s.frames)-1].pos++
		return
	}
	s.lexer.Get()
}

// PushFrame pushes toks as a new expansion frame, to be fully drained
// before the Source falls back to whatever was being read before.
func (s *Source) PushFrame(name string, toks []token.Token) {
	s.frames = append(s.frames, &frame{name: name, toks: toks})
}

// Depth reports how many expansion frames are currently open, for
// diagnosing runaway recursion independent of the named-macro guard (e.g.
// a built-in whose own synthesised source calls itself indirectly through
// a long chain of other built-ins).
func (s *Source) Depth() int { return len(s.frames) }

// AtTopLevel reports whether no expansion frame is currently open.
func (s *Source) AtTopLevel() bool { return len(s.frames) == 0 }

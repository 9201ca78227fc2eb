package expr

import "github.com/paulocustodio/bfpp/internal/token"

// Source is the single interface the expression evaluator pulls tokens
// from. Two implementations serve the two input contexts this evaluator is
// used in: a live Source backed by the parser's token stream for
// "#if"/"#elsif" conditions, and a SliceSource over one captured
// argument's tokens for built-in arguments.
type Source interface {
	Current() token.Token
	Advance()
}

// SliceSource is a Source over a fixed, already-scanned token slice —
// equivalent to the original's ArrayTokenSource.
type SliceSource struct {
	toks []token.Token
	pos  int
}

// NewSliceSource wraps toks for expression evaluation.
func NewSliceSource(toks []token.Token) *SliceSource {
	return &SliceSource{toks: toks}
}

func (s *SliceSource) Current() token.Token {
	if s.pos < len(s.toks) {
		return s.toks[s.pos]
	}
	return token.Token{Kind: token.EndOfInput}
}

func (s *SliceSource) Advance() {
	if s.pos < len(s.toks) {
		s.pos++
	}
}

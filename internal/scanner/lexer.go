package scanner

import (
	"github.com/paulocustodio/bfpp/internal/comment"
	"github.com/paulocustodio/bfpp/internal/token"
)

// Lexer turns a stream of comment-stripped lines into a token stream with
// arbitrary lookahead, lazily extending its buffer by reading additional
// lines as needed. Once the underlying source is exhausted it returns
// EndOfInput forever.
type Lexer struct {
	stripper *comment.Stripper
	filename func() string

	buf []token.Token
	pos int
	eof bool
}

// NewLexer builds a Lexer reading lines from stripper; filename is called
// lazily for each scanned line so it always reflects the current top of the
// file stack (which may change between calls as #include pushes files).
func NewLexer(stripper *comment.Stripper, filename func() string) *Lexer {
	return &Lexer{stripper: stripper, filename: filename}
}

func (l *Lexer) fill() bool {
	if l.eof {
		return false
	}
	line, ok := l.stripper.GetLine()
	if !ok {
		l.eof = true
		return false
	}
	l.buf = append(l.buf, ScanLine(line.Text, l.filename(), line.Num)...)
	return true
}

// Get consumes and returns the next token.
func (l *Lexer) Get() token.Token {
	for l.pos >= len(l.buf) {
		if l.pos > 100 {
			l.buf = l.buf[l.pos:]
			l.pos = 0
		}
		if !l.fill() {
			return token.Token{Kind: token.EndOfInput, Loc: token.Location{Filename: l.filename()}}
		}
	}
	t := l.buf[l.pos]
	l.pos++
	return t
}

// Peek returns the token `offset` positions ahead without consuming it.
func (l *Lexer) Peek(offset int) token.Token {
	for l.pos+offset >= len(l.buf) {
		if !l.fill() {
			return token.Token{Kind: token.EndOfInput, Loc: token.Location{Filename: l.filename()}}
		}
	}
	return l.buf[l.pos+offset]
}

// AtEnd reports whether the lexer has nothing left to give but EndOfInput.
func (l *Lexer) AtEnd() bool {
	return l.pos >= len(l.buf) && l.eof
}

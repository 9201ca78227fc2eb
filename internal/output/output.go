// Package output implements the emitted-token buffer: it validates BF
// opcodes as they are appended, tracks the virtual tape pointer, balances
// loop brackets, offers an optional run-coalescing optimisation pass, and
// pretty-prints the final stream.
package output

import (
	"strings"

	"github.com/paulocustodio/bfpp/internal/diag"
	"github.com/paulocustodio/bfpp/internal/token"
)

// Buffer accumulates validated BF tokens.
type Buffer struct {
	diags *diag.Reporter

	tapePtr   int
	loopStack []token.Location
	toks      []token.Token
}

// New returns an empty Buffer reporting diagnostics to diags.
func New(diags *diag.Reporter) *Buffer {
	return &Buffer{diags: diags}
}

// TapePtr returns the virtual tape pointer after every token appended so
// far.
func (b *Buffer) TapePtr() int { return b.tapePtr }

// Put validates and appends one BF instruction token. Non-BFInstr tokens
// are rejected (the parser must never attempt to emit anything else).
func (b *Buffer) Put(tok token.Token) {
	if tok.Kind != token.BFInstr {
		b.diags.Error(tok.Loc, "non-BF instruction token in output: '%s'", tok.Text)
		return
	}

	switch tok.Text {
	case ">":
		b.tapePtr++
	case "<":
		if b.tapePtr == 0 {
			b.diags.Error(tok.Loc, "tape pointer moved to negative position")
			return
		}
		b.tapePtr--
	case "[":
		b.loopStack = append(b.loopStack, tok.Loc)
	case "]":
		if len(b.loopStack) == 0 {
			b.diags.Error(tok.Loc, "unmatched ']' instruction")
			return
		}
		b.loopStack = b.loopStack[:len(b.loopStack)-1]
	}

	b.toks = append(b.toks, tok)
}

// CheckLoops reports every "[" left unmatched at end-of-input.
func (b *Buffer) CheckLoops() {
	for _, loc := range b.loopStack {
		b.diags.Error(loc, "unmatched '[' instruction")
	}
}

// Tokens returns the raw emitted token slice (after any optimisation pass
// applied so far).
func (b *Buffer) Tokens() []token.Token { return b.toks }

// Len returns how many tokens have been emitted, for property-testing the
// "emitted length equals requested emit count" invariant.
func (b *Buffer) Len() int { return len(b.toks) }

// OptimizeTapeMovements folds runs of consecutive '<'/'>' into their net
// displacement between any two non-movement instructions. It is idempotent:
// running it again on its own output changes nothing, because after the
// first pass there are no adjacent movement tokens left to fold.
func (b *Buffer) OptimizeTapeMovements() {
	optimized := make([]token.Token, 0, len(b.toks))
	net := 0
	flush := func(loc token.Location) {
		if net > 0 {
			for i := 0; i < net; i++ {
				optimized = append(optimized, token.MakeBF('>', loc))
			}
		} else if net < 0 {
			for i := 0; i < -net; i++ {
				optimized = append(optimized, token.MakeBF('<', loc))
			}
		}
		net = 0
	}

	for _, t := range b.toks {
		switch t.Text {
		case ">":
			net++
		case "<":
			net--
		default:
			flush(t.Loc)
			optimized = append(optimized, t)
		}
	}
	flush(token.Location{})
	b.toks = optimized
}

// Reset clears the buffer back to its initial state.
func (b *Buffer) Reset() {
	b.tapePtr = 0
	b.loopStack = nil
	b.toks = nil
}

// PrettyPrint renders the buffer with indentation and 80-column wrapping:
// "[" and "]" are always placed on their own line (adjusting indent before
// or after), and any other run of tokens wraps once it would exceed 80
// columns including the current indentation.
func (b *Buffer) PrettyPrint() string {
	var out strings.Builder
	indent := 0
	atLineStart := true
	lineLen := 0

	newline := func() {
		out.WriteByte('\n')
		atLineStart = true
		lineLen = 0
	}
	writeIndent := func(level int) {
		spaces := level * 2
		out.WriteString(strings.Repeat(" ", spaces))
		lineLen += spaces
	}
	ensureWrap := func(needed, indentSpaces int) {
		if lineLen+needed > 80 {
			newline()
			writeIndent(indentSpaces / 2)
		}
	}

	for _, t := range b.toks {
		switch t.Text {
		case "[":
			if !atLineStart {
				newline()
			}
			writeIndent(indent)
			out.WriteString("[\n")
			indent++
			atLineStart = true
			lineLen = 0

		case "]":
			if !atLineStart {
				newline()
			}
			indent--
			if indent < 0 {
				indent = 0
			}
			writeIndent(indent)
			out.WriteString("]\n")
			atLineStart = true
			lineLen = 0

		default:
			if atLineStart {
				indentSpaces := indent * 2
				needed := indentSpaces + len(t.Text)
				if needed > 80 {
					writeIndent(indent)
					out.WriteString(t.Text)
					lineLen += len(t.Text)
					atLineStart = false
				} else {
					ensureWrap(needed, indentSpaces)
					if lineLen == 0 && indentSpaces > 0 {
						writeIndent(indent)
					}
					out.WriteString(t.Text)
					lineLen += len(t.Text)
					atLineStart = false
				}
			} else {
				ensureWrap(len(t.Text), indent*2)
				out.WriteString(t.Text)
				lineLen += len(t.Text)
			}
		}
	}
	if !atLineStart {
		out.WriteByte('\n')
	}
	return out.String()
}

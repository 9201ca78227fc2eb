// Package token defines the lexical tokens produced by the scanner and
// consumed by the parser, expander and expression evaluator.
package token

import "fmt"

// Kind identifies the lexical category of a Token.
type Kind int8

//nolint:revive
const (
	Illegal Kind = iota
	EndOfInput
	EndOfLine

	Directive  // #define, #include, #if, #else, #endif, ...
	Identifier // foo, _bar99
	Integer    // 123, 'c'
	String     // "..."

	LParen // (
	RParen // )
	LBrace // {
	RBrace // }

	BFInstr  // + - < > [ ] . ,
	Operator // "+", "-", "*", "/", "<<", "&&", "==", ...
	Comma    // ,

	maxKind
)

func (k Kind) String() string { return kindNames[k] }

var kindNames = [...]string{
	Illegal:    "illegal token",
	EndOfInput: "end of input",
	EndOfLine:  "end of line",
	Directive:  "directive",
	Identifier: "identifier",
	Integer:    "integer literal",
	String:     "string literal",
	LParen:     "'('",
	RParen:     "')'",
	LBrace:     "'{'",
	RBrace:     "'}'",
	BFInstr:    "BF instruction",
	Operator:   "operator",
	Comma:      "','",
}

// Location is attached to every token and to every diagnostic. It is
// created by the scanner and never mutated afterwards.
type Location struct {
	Filename string
	Line     int
	Column   int
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.Filename, l.Line, l.Column)
}

// IsZero reports whether the location was never set.
func (l Location) IsZero() bool { return l.Line == 0 && l.Column == 0 }

// Token is a value-like lexical unit: it is freely copied.
type Token struct {
	Kind Kind
	Text string // original spelling, e.g. "+=" or "foo" or the BF char "+"
	Int  int    // populated only when Kind == Integer
	Str  string // populated only when Kind == String (quotes stripped)
	Loc  Location
}

// IsComma reports whether this token is a top-level argument separator.
func (t Token) IsComma() bool { return t.Kind == Comma }

// MakeBF builds a BFInstr token for one of "+-<>[].,".
func MakeBF(c byte, loc Location) Token {
	return Token{Kind: BFInstr, Text: string(c), Loc: loc}
}

// MakeInt builds a synthetic Integer token, used by built-ins that bind a
// macro name directly to a numeric tape address.
func MakeInt(v int, loc Location) Token {
	return Token{Kind: Integer, Text: fmt.Sprintf("%d", v), Int: v, Loc: loc}
}

// MakeIdent builds a synthetic Identifier token.
func MakeIdent(name string, loc Location) Token {
	return Token{Kind: Identifier, Text: name, Loc: loc}
}

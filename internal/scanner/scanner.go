// Package scanner converts comment-stripped logical lines into a flat token
// buffer. Scanning state distinguishes "inside a directive line" and
// "inside an expression" (where +-<>[].,  are Operator tokens) from the
// default mode (where they are BFInstr tokens). Scanning is per logical
// line: both the directive flag and the paren-depth counter reset at the
// start of every line, matching the one-line-at-a-time nature of
// directives, built-in calls and macro argument lists in this language.
package scanner

import (
	"strings"

	"github.com/paulocustodio/bfpp/internal/token"
)

// twoCharOps lists the greedily-recognised two-character operator forms.
var twoCharOps = []string{"==", "!=", "<=", ">=", "&&", "||", "<<", ">>"}

const singleCharOps = "+-*/%&|^~!<>="

const bfChars = "+-<>[].,"

// ScanLine tokenizes one logical line (with its EndOfLine terminator
// appended) into tokens, using filename for locations. Whether
// in-directive mode is active (the first non-space token on the line is a
// '#name') is resolved here so no scanner state needs to be threaded
// through the caller between lines.
func ScanLine(text string, filename string, lineNum int) []token.Token {
	var toks []token.Token
	inDirective := false
	exprDepth := 0
	firstToken := true

	i := 0
	n := len(text)
	for i < n {
		c := text[i]
		if c == ' ' || c == '\t' {
			i++
			continue
		}

		col := i + 1
		loc := token.Location{Filename: filename, Line: lineNum, Column: col}

		switch {
		case firstToken && c == '#' && i+1 < n && isAlpha(text[i+1]):
			start := i
			i++
			for i < n && isAlpha(text[i]) {
				i++
			}
			inDirective = true
			toks = append(toks, token.Token{Kind: token.Directive, Text: text[start:i], Loc: loc})

		case isAlpha(c) || c == '_':
			start := i
			for i < n && (isAlnum(text[i]) || text[i] == '_') {
				i++
			}
			toks = append(toks, token.Token{Kind: token.Identifier, Text: text[start:i], Loc: loc})

		case isDigit(c):
			v := 0
			start := i
			for i < n && isDigit(text[i]) {
				v = v*10 + int(text[i]-'0')
				i++
			}
			toks = append(toks, token.Token{Kind: token.Integer, Text: text[start:i], Int: v, Loc: loc})

		case c == '"':
			i++
			start := i
			for i < n && text[i] != '"' {
				i++
			}
			if i >= n {
				toks = append(toks, token.Token{Kind: token.Illegal, Text: "unterminated string literal", Loc: loc})
				i = n
				break
			}
			str := text[start:i]
			i++ // closing quote
			toks = append(toks, token.Token{Kind: token.String, Text: text[start-1 : i], Str: str, Loc: loc})

		case c == '\'' && i+2 < n && text[i+2] == '\'':
			v := int(text[i+1])
			toks = append(toks, token.Token{Kind: token.Integer, Text: text[i : i+3], Int: v, Loc: loc})
			i += 3

		case c == '(':
			exprDepth++
			toks = append(toks, token.Token{Kind: token.LParen, Text: "(", Loc: loc})
			i++

		case c == ')':
			if exprDepth > 0 {
				exprDepth--
			}
			toks = append(toks, token.Token{Kind: token.RParen, Text: ")", Loc: loc})
			i++

		case c == ',' && (inDirective || exprDepth > 0):
			toks = append(toks, token.Token{Kind: token.Comma, Text: ",", Loc: loc})
			i++

		case c == '{':
			toks = append(toks, token.Token{Kind: token.LBrace, Text: "{", Loc: loc})
			i++

		case c == '}':
			toks = append(toks, token.Token{Kind: token.RBrace, Text: "}", Loc: loc})
			i++

		case (inDirective || exprDepth > 0) && strings.ContainsRune(bfChars, rune(c)):
			// directives and expressions always use operator semantics for the
			// characters that double as BF instructions.
			tok, adv := scanOperator(text, i)
			tok.Loc = loc
			toks = append(toks, tok)
			i += adv

		case strings.IndexByte(bfChars, c) >= 0:
			toks = append(toks, token.Token{Kind: token.BFInstr, Text: string(c), Loc: loc})
			i++

		case (inDirective || exprDepth > 0) && strings.IndexByte(singleCharOps, c) >= 0:
			tok, adv := scanOperator(text, i)
			tok.Loc = loc
			toks = append(toks, tok)
			i += adv

		default:
			toks = append(toks, token.Token{Kind: token.Illegal, Text: string(c), Loc: loc})
			i++
		}

		firstToken = false
	}

	toks = append(toks, token.Token{Kind: token.EndOfLine, Loc: token.Location{Filename: filename, Line: lineNum, Column: n + 1}})
	return toks
}

// scanOperator scans the operator starting at text[i], recognising the
// two-character forms greedily, and returns the token plus how many bytes
// it consumed.
func scanOperator(text string, i int) (token.Token, int) {
	if i+1 < len(text) {
		two := text[i : i+2]
		for _, op := range twoCharOps {
			if op == two {
				return token.Token{Kind: token.Operator, Text: two}, 2
			}
		}
	}
	return token.Token{Kind: token.Operator, Text: text[i : i+1]}, 1
}

func isAlpha(c byte) bool { return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isAlnum(c byte) bool { return isAlpha(c) || isDigit(c) }

// ScanString tokenizes a single-line string of preprocessor source under a
// synthetic filename (e.g. "(add8)"), used by built-in handlers to rescan
// the source text they synthesise. Multi-statement built-in bodies are
// written on one logical line, so a single ScanLine call suffices; the
// final EndOfLine token is dropped and replaced with EndOfInput so the
// expansion frame terminates cleanly without introducing a spurious blank
// statement boundary.
func ScanString(text, filename string) []token.Token {
	toks := ScanLine(text, filename, 1)
	if n := len(toks); n > 0 && toks[n-1].Kind == token.EndOfLine {
		toks = toks[:n-1]
	}
	toks = append(toks, token.Token{Kind: token.EndOfInput, Loc: token.Location{Filename: filename, Line: 1}})
	return toks
}

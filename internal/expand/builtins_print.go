package expand

import (
	"fmt"
	"strings"

	"github.com/paulocustodio/bfpp/internal/token"
)

func handlePrintChar(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "char")
	if !ok {
		return
	}
	ch := vals[0]
	t := e.tempName("print_char")
	e.splice(s, "(print_char)", fmt.Sprintf(
		"{ alloc_cell8(%s) set8(%s, %d) >%s . free_cell8(%s) }", t, t, ch, t, t))
}

func handlePrintChar8(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "cell")
	if !ok {
		return
	}
	cell := vals[0]
	e.splice(s, "(print_char8)", fmt.Sprintf("{ >%d . }", cell))
}

func handlePrintString(e *Expander, s *Source, tok token.Token) {
	text, ok := e.stringArg(s, tok)
	if !ok {
		return
	}
	var b strings.Builder
	b.WriteString("{ ")
	for _, c := range []byte(text) {
		fmt.Fprintf(&b, "print_char(%d) ", c)
	}
	b.WriteString("}")
	e.splice(s, "(print_string)", b.String())
}

func handlePrintNewline(e *Expander, s *Source, tok token.Token) {
	s.Advance()
	e.splice(s, "(print_newline)", "print_char(10)")
}

// handlePrintCellX prints a cell as an unsigned decimal number followed by
// a trailing space, extracting digits least-significant-first via
// repeated mod/div by 10 into a fixed-size buffer, then printing the
// buffer back out most-significant-first. Since there's no general
// array indexing in the target instruction set, both "store into
// buffer[idx]" and "print buffer[idx]" are unrolled into an if-chain over
// every possible index.
func handlePrintCellX(e *Expander, s *Source, tok token.Token, width, maxDigits int) {
	vals, ok := e.exprArgs(s, tok, "cell")
	if !ok {
		return
	}
	a := vals[0]
	X := fmt.Sprintf("%d", width)

	tA := e.tempName("pcx_a")
	tDigit := e.tempName("pcx_digit")
	tCond := e.tempName("pcx_cond")
	t10 := e.tempName("pcx_10")
	t0Char := e.tempName("pcx_0char")
	tIdx := e.tempName("pcx_idx")

	numbers := make([]string, maxDigits)
	buffer := make([]string, maxDigits)
	for i := 0; i < maxDigits; i++ {
		numbers[i] = e.tempName(fmt.Sprintf("pcx_number%d", i))
		buffer[i] = e.tempName(fmt.Sprintf("pcx_buffer%d", i))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "{ alloc_cell%s(%s) alloc_cell%s(%s) alloc_cell%s(%s) alloc_cell%s(%s) set%s(%s, 10) alloc_cell%s(%s) set%s(%s, 48) ",
		X, tA, X, tDigit, X, tCond, X, t10, X, t10, X, t0Char, X, t0Char)
	for i := 0; i < maxDigits; i++ {
		fmt.Fprintf(&b, "alloc_cell%s(%s) set%s(%s, %d) ", X, numbers[i], X, numbers[i], i)
	}
	fmt.Fprintf(&b, "alloc_cell8(%s) ", tIdx)
	for i := 0; i < maxDigits; i++ {
		fmt.Fprintf(&b, "alloc_cell8(%s) ", buffer[i])
	}

	fmt.Fprintf(&b, "copy%s(%d, %s) ", X, a, tA)

	fmt.Fprintf(&b, "set%s(%s, 1) while(%s) ", X, tCond, tCond)
	fmt.Fprintf(&b, "copy%s(%s, %s) mod%s(%s, %s) add%s(%s, %s) ", X, tA, tDigit, X, tDigit, t10, X, tDigit, t0Char)
	for i := 0; i < maxDigits; i++ {
		fmt.Fprintf(&b, "copy8(%s, %s) eq8(%s, %s) if(%s) copy8(%s, %s) endif ",
			tIdx, tCond, tCond, numbers[i], tCond, tDigit, buffer[i])
	}
	fmt.Fprintf(&b, "add8(%s, %s) ", tIdx, numbers[1])
	fmt.Fprintf(&b, "div%s(%s, %s) copy%s(%s, %s) ne%s(%s, %s) ", X, tA, t10, X, tA, tCond, X, tCond, numbers[0])
	b.WriteString("endwhile ")

	fmt.Fprintf(&b, "sub8(%s, %s) set8(%s, 1) while(%s) ", tIdx, numbers[1], tCond, tCond)
	for i := 0; i < maxDigits; i++ {
		fmt.Fprintf(&b, "copy8(%s, %s) eq8(%s, %s) if(%s) print_char8(%s) endif ",
			tIdx, tCond, tCond, numbers[i], tCond, buffer[i])
	}
	fmt.Fprintf(&b, "copy8(%s, %s) ne8(%s, %s) sub8(%s, %s) ", tIdx, tCond, tCond, numbers[0], tIdx, numbers[1])
	b.WriteString("endwhile ")
	b.WriteString("print_char(32) ")

	fmt.Fprintf(&b, "free_cell%s(%s) free_cell%s(%s) free_cell%s(%s) free_cell%s(%s) free_cell%s(%s) ",
		X, tA, X, tDigit, X, tCond, X, t10, X, t0Char)
	for i := 0; i < maxDigits; i++ {
		fmt.Fprintf(&b, "free_cell%s(%s) ", X, numbers[i])
	}
	fmt.Fprintf(&b, "free_cell8(%s) ", tIdx)
	for i := 0; i < maxDigits; i++ {
		fmt.Fprintf(&b, "free_cell8(%s) ", buffer[i])
	}
	b.WriteString("}")

	e.splice(s, fmt.Sprintf("(print_cell%s)", X), b.String())
}

func handlePrintCell8(e *Expander, s *Source, tok token.Token)  { handlePrintCellX(e, s, tok, 8, 3) }
func handlePrintCell16(e *Expander, s *Source, tok token.Token) { handlePrintCellX(e, s, tok, 16, 5) }

// handlePrintCellXs wraps handlePrintCellX with a leading "-" when the
// cell's value is negative, printing the absolute value afterward.
func handlePrintCellXs(e *Expander, s *Source, tok token.Token, width int) {
	vals, ok := e.exprArgs(s, tok, "cell")
	if !ok {
		return
	}
	a := vals[0]
	X := fmt.Sprintf("%d", width)
	tA := e.tempName("pcxs_a")
	tSign := e.tempName("pcxs_sign")
	e.splice(s, fmt.Sprintf("(print_cell%ss)", X), fmt.Sprintf(
		"{ alloc_cell%s(%s) alloc_cell%s(%s) "+
			"copy%s(%d, %s) "+
			"copy%s(%d, %s) sign%s(%s) "+
			"if(%s) print_char(45) abs%s(%s) endif "+
			"print_cell%s(%s) "+
			"free_cell%s(%s) free_cell%s(%s) }",
		X, tA, X, tSign,
		X, a, tA,
		X, a, tSign, X, tSign,
		tSign, X, tA,
		X, tA,
		X, tA, X, tSign))
}

func handlePrintCell8s(e *Expander, s *Source, tok token.Token)  { handlePrintCellXs(e, s, tok, 8) }
func handlePrintCell16s(e *Expander, s *Source, tok token.Token) { handlePrintCellXs(e, s, tok, 16) }

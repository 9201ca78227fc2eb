package expand

import (
	"fmt"

	"github.com/paulocustodio/bfpp/internal/token"
)

// shr8/shr16 shift right by repeated halving: each repetition subtracts 2
// from a running copy while it's still >= 2, counting how many times that
// happened, then writes the count back as the shifted value.
func handleShr8(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	half, cmp, one, two, count := e.tempName("shr8_half"), e.tempName("shr8_cmp"), e.tempName("shr8_one"), e.tempName("shr8_two"), e.tempName("shr8_count")
	e.splice(s, "(shr8)", fmt.Sprintf(
		"{ alloc_cell8(%s) alloc_cell8(%s) "+
			"alloc_cell8(%s) >%s + alloc_cell8(%s) >%s ++ "+
			"alloc_cell8(%s) "+
			"copy8(%d, %s) "+
			"repeat(%s) "+
			"  copy8(%d, %s) ge8(%s, %s) "+
			"  while(%s) "+
			"    sub8(%d, %s) add8(%s, %s) "+
			"    copy8(%d, %s) ge8(%s, %s) "+
			"  endwhile "+
			"  move8(%s, %d) "+
			"endrepeat "+
			"free_cell8(%s) free_cell8(%s) free_cell8(%s) free_cell8(%s) free_cell8(%s) }",
		half, cmp, one, one, two, two, count,
		b, count,
		count,
		a, cmp, cmp, two,
		cmp,
		a, two, half, one,
		a, cmp, cmp, two,
		half, a,
		half, cmp, one, two, count))
}

func handleShr16(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	half, cmp, one, two, count := e.tempName("shr16_half"), e.tempName("shr16_cmp"), e.tempName("shr16_one"), e.tempName("shr16_two"), e.tempName("shr16_count")
	e.splice(s, "(shr16)", fmt.Sprintf(
		"{ alloc_cell16(%s) alloc_cell16(%s) "+
			"alloc_cell16(%s) >%s + alloc_cell16(%s) >%s ++ "+
			"alloc_cell16(%s) "+
			"copy16(%d, %s) "+
			"repeat(%s) "+
			"  copy16(%d, %s) ge16(%s, %s) "+
			"  while(%s) "+
			"    sub16(%d, %s) add16(%s, %s) "+
			"    copy16(%d, %s) ge16(%s, %s) "+
			"  endwhile "+
			"  move16(%s, %d) "+
			"endrepeat "+
			"free_cell16(%s) free_cell16(%s) free_cell16(%s) free_cell16(%s) free_cell16(%s) }",
		half, cmp, one, one, two, two, count,
		b, count,
		count,
		a, cmp, cmp, two,
		cmp,
		a, two, half, one,
		a, cmp, cmp, two,
		half, a,
		half, cmp, one, two, count))
}

// shl8/shl16 shift left by repeated doubling: each repetition adds a onto
// itself, count times.
func handleShl8(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	val, count := e.tempName("shl8_val"), e.tempName("shl8_count")
	e.splice(s, "(shl8)", fmt.Sprintf(
		"{ alloc_cell8(%s) alloc_cell8(%s) "+
			"copy8(%d, %s) "+
			"repeat(%s) "+
			"  copy8(%d, %s) add8(%d, %s) "+
			"endrepeat "+
			"free_cell8(%s) free_cell8(%s) }",
		val, count,
		b, count,
		count,
		a, val, a, val,
		val, count))
}

func handleShl16(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	val, count := e.tempName("shl16_val"), e.tempName("shl16_count")
	e.splice(s, "(shl16)", fmt.Sprintf(
		"{ alloc_cell16(%s) alloc_cell16(%s) "+
			"copy16(%d, %s) "+
			"repeat(%s) "+
			"  copy16(%d, %s) add16(%d, %s) "+
			"endrepeat "+
			"free_cell16(%s) free_cell16(%s) }",
		val, count,
		b, count,
		count,
		a, val, a, val,
		val, count))
}

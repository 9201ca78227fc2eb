package expand

import (
	"fmt"

	"github.com/paulocustodio/bfpp/internal/token"
)

// not8 implements boolean negation by moving the operand to a scratch
// cell and stepping a flag down while it does, so the result ends up 1
// exactly when the original value was zero.
func handleNot8(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr")
	if !ok {
		return
	}
	x := vals[0]
	t, f := e.tempName("not_t"), e.tempName("not_f")
	e.splice(s, "(not8)", fmt.Sprintf(
		"{ alloc_cell8(%s) alloc_cell8(%s) move8(%d, %s) >%d + >%s + "+
			">%s [ - >%s [ - >%d - >%s ] >%s ] "+
			"free_cell8(%s) free_cell8(%s) }",
		t, f, x, t, x, f, t, f, x, f, t, t, f))
}

func handleNot16(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr")
	if !ok {
		return
	}
	a := vals[0]
	t1, t2 := e.tempName("not16_1"), e.tempName("not16_2")
	e.splice(s, "(not16)", fmt.Sprintf(
		"{ alloc_cell8(%s) alloc_cell8(%s) "+
			"copy8(%d, %s) not8(%s) copy8(%d, %s) not8(%s) and8(%s, %s) "+
			"if(%s) set16(%d, 1) else clear16(%d) endif "+
			"free_cell8(%s) free_cell8(%s) }",
		t1, t2, a, t1, t1, a+1, t2, t2, t1, t2, t1, a, a, t1, t2))
}

func handleAnd8(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	ta, tb, tr := e.tempName("and8_a"), e.tempName("and8_b"), e.tempName("and8_r")
	e.splice(s, "(and8)", fmt.Sprintf(
		"{ alloc_cell8(%s) alloc_cell8(%s) alloc_cell8(%s) "+
			"move8(%d, %s) not8(%s) not8(%s) "+
			"copy8(%d, %s) not8(%s) not8(%s) "+
			">%s [ - move8(%s, %s) ] "+
			"move8(%s, %d) "+
			"free_cell8(%s) free_cell8(%s) free_cell8(%s) }",
		ta, tb, tr, a, ta, ta, ta, b, tb, tb, tb, ta, tb, tr, tr, a, ta, tb, tr))
}

func handleAnd16(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	t1, t2 := e.tempName("and16_1"), e.tempName("and16_2")
	e.splice(s, "(and16)", fmt.Sprintf(
		"{ alloc_cell8(%s) alloc_cell8(%s) "+
			"copy8(%d, %s) or8(%s, %d) "+
			"copy8(%d, %s) or8(%s, %d) "+
			"and8(%s, %s) "+
			"if(%s) set16(%d, 1) else clear16(%d) endif "+
			"free_cell8(%s) free_cell8(%s) }",
		t1, t2, a, t1, t1, a+1, b, t2, t2, b+1, t1, t2, t1, a, a, t1, t2))
}

func handleOr8(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	ta, tb, tr := e.tempName("or8_a"), e.tempName("or8_b"), e.tempName("or8_r")
	e.splice(s, "(or8)", fmt.Sprintf(
		"{ alloc_cell8(%s) alloc_cell8(%s) alloc_cell8(%s) "+
			"move8(%d, %s) not8(%s) not8(%s) "+
			"copy8(%d, %s) not8(%s) not8(%s) "+
			">%s [ - >%s + >%s ] "+
			">%s [ - >%s + >%s ] "+
			"not8(%s) not8(%s) "+
			"move8(%s, %d) "+
			"free_cell8(%s) free_cell8(%s) free_cell8(%s) }",
		ta, tb, tr, a, ta, ta, ta, b, tb, tb, tb,
		ta, tr, ta, tb, tr, tb, tr, tr, tr, a, ta, tb, tr))
}

func handleOr16(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	t := e.tempName("or16")
	e.splice(s, "(or16)", fmt.Sprintf(
		"{ alloc_cell8(%s) copy8(%d, %s) or8(%s, %d) or8(%s, %d) or8(%s, %d) "+
			"if(%s) set16(%d, 1) else clear16(%d) endif free_cell8(%s) }",
		t, a, t, t, a+1, t, b, t, b+1, t, a, a, t))
}

func handleXor8(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	t1, t2 := e.tempName("xor8_1"), e.tempName("xor8_2")
	e.splice(s, "(xor8)", fmt.Sprintf(
		"{ alloc_cell8(%s) alloc_cell8(%s) "+
			"copy8(%d, %s) or8(%s, %d) "+
			"copy8(%d, %s) and8(%s, %d) not8(%s) "+
			"copy8(%s, %d) and8(%d, %s) "+
			"free_cell8(%s) free_cell8(%s) }",
		t1, t2, a, t1, t1, b, a, t2, t2, b, t2, t1, a, a, t2, t1, t2))
}

func handleXor16(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	t1, t2 := e.tempName("xor16_1"), e.tempName("xor16_2")
	e.splice(s, "(xor16)", fmt.Sprintf(
		"{ alloc_cell16(%s) alloc_cell16(%s) "+
			"copy16(%d, %s) or16(%s, %d) "+
			"copy16(%d, %s) and16(%s, %d) not16(%s) "+
			"and16(%s, %s) "+
			"if(%s) set16(%d, 1) else clear16(%d) endif "+
			"free_cell16(%s) free_cell16(%s) }",
		t1, t2, a, t1, t1, b, a, t2, t2, b, t2, t1, t2, t1, a, a, t1, t2))
}

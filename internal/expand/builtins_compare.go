package expand

import (
	"fmt"

	"github.com/paulocustodio/bfpp/internal/token"
)

func handleEq8(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	e.splice(s, "(eq8)", fmt.Sprintf("sub8(%d, %d) not8(%d) ", a, b, a))
}

func handleEq16(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	t1, t2 := e.tempName("eq16_1"), e.tempName("eq16_2")
	e.splice(s, "(eq16)", fmt.Sprintf(
		"{ alloc_cell8(%s) alloc_cell8(%s) "+
			"copy8(%d, %s) eq8(%s, %d) "+
			"copy8(%d, %s) eq8(%s, %d) "+
			"and8(%s, %s) "+
			"if(%s) set16(%d, 1) else clear16(%d) endif "+
			"free_cell8(%s) free_cell8(%s) }",
		t1, t2,
		a, t1, t1, b,
		a+1, t2, t2, b+1,
		t1, t2,
		t1, a, a,
		t1, t2))
}

func handleNe8(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	e.splice(s, "(ne8)", fmt.Sprintf("eq8(%d, %d) not8(%d) ", a, b, a))
}

func handleNe16(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	e.splice(s, "(ne16)", fmt.Sprintf("eq16(%d, %d) not16(%d) ", a, b, a))
}

// lt8 decrements a scratch copy of each operand in lockstep until one
// reaches zero; whichever ran out first, if any, identifies the smaller
// value. Ties (both reach zero together) are neither.
func handleLt8(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	ta, tb, tab, tlt := e.tempName("lt8_a"), e.tempName("lt8_b"), e.tempName("lt8_ab"), e.tempName("lt8_lt")
	e.splice(s, "(lt8)", fmt.Sprintf(
		"{ alloc_cell8(%s) alloc_cell8(%s) alloc_cell8(%s) alloc_cell8(%s) "+
			"copy8(%d, %s) copy8(%d, %s) "+
			"copy8(%s, %s) and8(%s, %s) "+
			"while(%s) "+
			"  >%s - >%s - "+
			"  copy8(%s, %s) and8(%s, %s) "+
			"endwhile "+
			"clear8(%d) "+
			"copy8(%s, %s) not8(%s) and8(%s, %s) "+
			"if(%s) >%d + endif "+
			"free_cell8(%s) free_cell8(%s) free_cell8(%s) free_cell8(%s) }",
		ta, tb, tab, tlt,
		a, ta, b, tb,
		ta, tab, tab, tb,
		tab,
		ta, tb,
		ta, tab, tab, tb,
		a,
		ta, tlt, tlt, tlt, tb,
		tlt, a,
		ta, tb, tab, tlt))
}

func handleLt16(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	t1, t2 := e.tempName("lt16_1"), e.tempName("lt16_2")
	e.splice(s, "(lt16)", fmt.Sprintf(
		"{ alloc_cell8(%s) alloc_cell8(%s) "+
			"copy8(%d, %s) lt8(%s, %d) "+
			"copy8(%d, %s) eq8(%s, %d) "+
			"if(%s) "+
			"  copy8(%d, %s) lt8(%s, %d) "+
			"endif "+
			"if(%s) set16(%d, 1) else clear16(%d) endif "+
			"free_cell8(%s) free_cell8(%s) }",
		t1, t2,
		a+1, t1, t1, b+1,
		a+1, t2, t2, b+1,
		t2,
		a, t1, t1, b,
		t1, a, a,
		t1, t2))
}

func handleSlt8(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	sa, sb, tmp := e.tempName("slt8_sa"), e.tempName("slt8_sb"), e.tempName("slt8_tmp")
	e.splice(s, "(slt8)", fmt.Sprintf(
		"{ alloc_cell8(%s) alloc_cell8(%s) alloc_cell8(%s) "+
			"copy8(%d, %s) sign8(%s) copy8(%d, %s) sign8(%s) "+
			"copy8(%s, %s) xor8(%s, %s) "+
			"if(%s) "+
			"  copy8(%s, %d) "+
			"else "+
			"  lt8(%d, %d) "+
			"endif "+
			"free_cell8(%s) free_cell8(%s) free_cell8(%s) }",
		sa, sb, tmp,
		a, sa, sa, b, sb, sb,
		sa, tmp, tmp, sb,
		tmp,
		sa, a,
		a, b,
		sa, sb, tmp))
}

func handleSlt16(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	sa, sb, tmp := e.tempName("slt16_sa"), e.tempName("slt16_sb"), e.tempName("slt16_tmp")
	e.splice(s, "(slt16)", fmt.Sprintf(
		"{ alloc_cell16(%s) alloc_cell16(%s) alloc_cell16(%s) "+
			"copy16(%d, %s) sign16(%s) copy16(%d, %s) sign16(%s) "+
			"copy16(%s, %s) xor16(%s, %s) "+
			"if(%s) "+
			"  copy16(%s, %d) "+
			"else "+
			"  lt16(%d, %d) "+
			"endif "+
			"free_cell16(%s) free_cell16(%s) free_cell16(%s) }",
		sa, sb, tmp,
		a, sa, sa, b, sb, sb,
		sa, tmp, tmp, sb,
		tmp,
		sa, a,
		a, b,
		sa, sb, tmp))
}

func handleGt8(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	ta, tb, tab, tgt := e.tempName("gt8_a"), e.tempName("gt8_b"), e.tempName("gt8_ab"), e.tempName("gt8_gt")
	e.splice(s, "(gt8)", fmt.Sprintf(
		"{ alloc_cell8(%s) alloc_cell8(%s) alloc_cell8(%s) alloc_cell8(%s) "+
			"copy8(%d, %s) copy8(%d, %s) "+
			"copy8(%s, %s) and8(%s, %s) "+
			"while(%s) "+
			"  >%s - >%s - "+
			"  copy8(%s, %s) and8(%s, %s) "+
			"endwhile "+
			"clear8(%d) "+
			"copy8(%s, %s) not8(%s) and8(%s, %s) "+
			"if(%s) >%d + endif "+
			"free_cell8(%s) free_cell8(%s) free_cell8(%s) free_cell8(%s) }",
		ta, tb, tab, tgt,
		a, ta, b, tb,
		ta, tab, tab, tb,
		tab,
		ta, tb,
		ta, tab, tab, tb,
		a,
		tb, tgt, tgt, tgt, ta,
		tgt, a,
		ta, tb, tab, tgt))
}

func handleGt16(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	t1, t2 := e.tempName("gt16_1"), e.tempName("gt16_2")
	e.splice(s, "(gt16)", fmt.Sprintf(
		"{ alloc_cell8(%s) alloc_cell8(%s) "+
			"copy8(%d, %s) gt8(%s, %d) "+
			"copy8(%d, %s) eq8(%s, %d) "+
			"if(%s) "+
			"  copy8(%d, %s) gt8(%s, %d) "+
			"endif "+
			"if(%s) set16(%d, 1) else clear16(%d) endif "+
			"free_cell8(%s) free_cell8(%s) }",
		t1, t2,
		a+1, t1, t1, b+1,
		a+1, t2, t2, b+1,
		t2,
		a, t1, t1, b,
		t1, a, a,
		t1, t2))
}

func handleSgt8(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	sa, sb, tmp := e.tempName("sgt8_sa"), e.tempName("sgt8_sb"), e.tempName("sgt8_tmp")
	e.splice(s, "(sgt8)", fmt.Sprintf(
		"{ alloc_cell8(%s) alloc_cell8(%s) alloc_cell8(%s) "+
			"copy8(%d, %s) sign8(%s) copy8(%d, %s) sign8(%s) "+
			"copy8(%s, %s) xor8(%s, %s) "+
			"if(%s) "+
			"  copy8(%s, %d) "+
			"else "+
			"  gt8(%d, %d) "+
			"endif "+
			"free_cell8(%s) free_cell8(%s) free_cell8(%s) }",
		sa, sb, tmp,
		a, sa, sa, b, sb, sb,
		sa, tmp, tmp, sb,
		tmp,
		sb, a,
		a, b,
		sa, sb, tmp))
}

func handleSgt16(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	sa, sb, tmp := e.tempName("sgt16_sa"), e.tempName("sgt16_sb"), e.tempName("sgt16_tmp")
	e.splice(s, "(sgt16)", fmt.Sprintf(
		"{ alloc_cell16(%s) alloc_cell16(%s) alloc_cell16(%s) "+
			"copy16(%d, %s) sign16(%s) copy16(%d, %s) sign16(%s) "+
			"copy16(%s, %s) xor16(%s, %s) "+
			"if(%s) "+
			"  copy16(%s, %d) "+
			"else "+
			"  gt16(%d, %d) "+
			"endif "+
			"free_cell16(%s) free_cell16(%s) free_cell16(%s) }",
		sa, sb, tmp,
		a, sa, sa, b, sb, sb,
		sa, tmp, tmp, sb,
		tmp,
		sb, a,
		a, b,
		sa, sb, tmp))
}

func handleLe8(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	e.splice(s, "(le8)", fmt.Sprintf("gt8(%d, %d) not8(%d) ", a, b, a))
}

func handleLe16(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	e.splice(s, "(le16)", fmt.Sprintf("gt16(%d, %d) not16(%d) ", a, b, a))
}

func handleSle8(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	sa, sb, tmp := e.tempName("sle8_sa"), e.tempName("sle8_sb"), e.tempName("sle8_tmp")
	e.splice(s, "(sle8)", fmt.Sprintf(
		"{ alloc_cell8(%s) alloc_cell8(%s) alloc_cell8(%s) "+
			"copy8(%d, %s) sign8(%s) copy8(%d, %s) sign8(%s) "+
			"copy8(%s, %s) xor8(%s, %s) "+
			"if(%s) "+
			"  copy8(%s, %d) "+
			"else "+
			"  le8(%d, %d) "+
			"endif "+
			"free_cell8(%s) free_cell8(%s) free_cell8(%s) }",
		sa, sb, tmp,
		a, sa, sa, b, sb, sb,
		sa, tmp, tmp, sb,
		tmp,
		sa, a,
		a, b,
		sa, sb, tmp))
}

func handleSle16(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	sa, sb, tmp := e.tempName("sle16_sa"), e.tempName("sle16_sb"), e.tempName("sle16_tmp")
	e.splice(s, "(sle16)", fmt.Sprintf(
		"{ alloc_cell16(%s) alloc_cell16(%s) alloc_cell16(%s) "+
			"copy16(%d, %s) sign16(%s) copy16(%d, %s) sign16(%s) "+
			"copy16(%s, %s) xor16(%s, %s) "+
			"if(%s) "+
			"  copy16(%s, %d) "+
			"else "+
			"  le16(%d, %d) "+
			"endif "+
			"free_cell16(%s) free_cell16(%s) free_cell16(%s) }",
		sa, sb, tmp,
		a, sa, sa, b, sb, sb,
		sa, tmp, tmp, sb,
		tmp,
		sa, a,
		a, b,
		sa, sb, tmp))
}

func handleGe8(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	e.splice(s, "(ge8)", fmt.Sprintf("lt8(%d, %d) not8(%d) ", a, b, a))
}

func handleGe16(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	e.splice(s, "(ge16)", fmt.Sprintf("lt16(%d, %d) not16(%d) ", a, b, a))
}

func handleSge8(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	sa, sb, tmp := e.tempName("sge8_sa"), e.tempName("sge8_sb"), e.tempName("sge8_tmp")
	e.splice(s, "(sge8)", fmt.Sprintf(
		"{ alloc_cell8(%s) alloc_cell8(%s) alloc_cell8(%s) "+
			"copy8(%d, %s) sign8(%s) copy8(%d, %s) sign8(%s) "+
			"copy8(%s, %s) xor8(%s, %s) "+
			"if(%s) "+
			"  copy8(%s, %d) "+
			"else "+
			"  ge8(%d, %d) "+
			"endif "+
			"free_cell8(%s) free_cell8(%s) free_cell8(%s) }",
		sa, sb, tmp,
		a, sa, sa, b, sb, sb,
		sa, tmp, tmp, sb,
		tmp,
		sb, a,
		a, b,
		sa, sb, tmp))
}

func handleSge16(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	sa, sb, tmp := e.tempName("sge16_sa"), e.tempName("sge16_sb"), e.tempName("sge16_tmp")
	e.splice(s, "(sge16)", fmt.Sprintf(
		"{ alloc_cell16(%s) alloc_cell16(%s) alloc_cell16(%s) "+
			"copy16(%d, %s) sign16(%s) copy16(%d, %s) sign16(%s) "+
			"copy16(%s, %s) xor16(%s, %s) "+
			"if(%s) "+
			"  copy16(%s, %d) "+
			"else "+
			"  ge16(%d, %d) "+
			"endif "+
			"free_cell16(%s) free_cell16(%s) free_cell16(%s) }",
		sa, sb, tmp,
		a, sa, sa, b, sb, sb,
		sa, tmp, tmp, sb,
		tmp,
		sb, a,
		a, b,
		sa, sb, tmp))
}

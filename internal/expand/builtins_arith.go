package expand

import (
	"fmt"

	"github.com/paulocustodio/bfpp/internal/token"
)

func handleAdd8(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	t := e.tempName("add8")
	e.splice(s, "(add8)", fmt.Sprintf(
		"{ alloc_cell8(%s) copy8(%d, %s) >%s [ - >%d + >%s ] free_cell8(%s) }", t, b, t, t, a, t, t))
}

func handleAdd16(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	old, carry := e.tempName("add16_old"), e.tempName("add16_carry")
	e.splice(s, "(add16)", fmt.Sprintf(
		"{ alloc_cell8(%s) alloc_cell8(%s) "+
			"copy8(%d, %s) add8(%d, %d) copy8(%d, %s) lt8(%s, %s) "+
			"add8(%d, %d) add8(%d, %s) "+
			"free_cell8(%s) free_cell8(%s) }",
		old, carry, a, old, a, b, a, carry, carry, old, a+1, b+1, a+1, carry, old, carry))
}

func handleSub8(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	t := e.tempName("sub8")
	e.splice(s, "(sub8)", fmt.Sprintf(
		"{ alloc_cell8(%s) copy8(%d, %s) >%s [ - >%d - >%s ] free_cell8(%s) }", t, b, t, t, a, t, t))
}

func handleSub16(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	old, borrow := e.tempName("sub16_old"), e.tempName("sub16_borrow")
	e.splice(s, "(sub16)", fmt.Sprintf(
		"{ alloc_cell8(%s) alloc_cell8(%s) "+
			"copy8(%d, %s) sub8(%d, %d) copy8(%d, %s) gt8(%s, %s) "+
			"sub8(%d, %d) sub8(%d, %s) "+
			"free_cell8(%s) free_cell8(%s) }",
		old, borrow, a, old, a, b, a, borrow, borrow, old, a+1, b+1, a+1, borrow, old, borrow))
}

func handleNeg8(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr")
	if !ok {
		return
	}
	a := vals[0]
	z := e.tempName("neg8_zero")
	e.splice(s, "(neg8)", fmt.Sprintf(
		"{ alloc_cell8(%s) sub8(%s, %d) move8(%s, %d) free_cell8(%s) }", z, z, a, z, a, z))
}

func handleNeg16(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr")
	if !ok {
		return
	}
	a := vals[0]
	z := e.tempName("neg16_zero")
	e.splice(s, "(neg16)", fmt.Sprintf(
		"{ alloc_cell16(%s) sub16(%s, %d) move16(%s, %d) free_cell16(%s) }", z, z, a, z, a, z))
}

func handleSign8(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr")
	if !ok {
		return
	}
	x := vals[0]
	t := e.tempName("sign8")
	e.splice(s, "(sign8)", fmt.Sprintf(
		"{ alloc_cell8(%s) set8(%s, 128) ge8(%d, %s) free_cell8(%s) }", t, t, x, t, t))
}

func handleSign16(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr")
	if !ok {
		return
	}
	x := vals[0]
	t := e.tempName("sign16")
	e.splice(s, "(sign16)", fmt.Sprintf(
		"{ alloc_cell16(%s) set16(%s, 32768) ge16(%d, %s) free_cell16(%s) }", t, t, x, t, t))
}

func handleAbs8(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr")
	if !ok {
		return
	}
	x := vals[0]
	t := e.tempName("abs8")
	e.splice(s, "(abs8)", fmt.Sprintf(
		"{ alloc_cell8(%s) copy8(%d, %s) sign8(%s) if(%s) neg8(%d) endif free_cell8(%s) }", t, x, t, t, t, x, t))
}

func handleAbs16(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr")
	if !ok {
		return
	}
	x := vals[0]
	t := e.tempName("abs16")
	e.splice(s, "(abs16)", fmt.Sprintf(
		"{ alloc_cell16(%s) copy16(%d, %s) sign16(%s) if(%s) neg16(%d) endif free_cell16(%s) }", t, x, t, t, t, x, t))
}

func handleMul8(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	res, tb, tmp, one, two := e.tempName("mul8_res"), e.tempName("mul8_b"), e.tempName("mul8_tmp"), e.tempName("mul8_one"), e.tempName("mul8_two")
	e.splice(s, "(mul8)", fmt.Sprintf(
		"{ alloc_cell8(%s) alloc_cell8(%s) alloc_cell8(%s) "+
			"alloc_cell8(%s) >%s + alloc_cell8(%s) >%s ++ "+
			"copy8(%d, %s) "+
			"while(%s) "+
			"  copy8(%s, %s) mod8(%s, %s) if(%s) add8(%s, %d) endif "+
			"  shr8(%s, %s) shl8(%d, %s) "+
			"endwhile "+
			"move8(%s, %d) "+
			"free_cell8(%s) free_cell8(%s) free_cell8(%s) free_cell8(%s) free_cell8(%s) }",
		res, tb, tmp, one, one, two, two,
		b, tb,
		tb,
		tb, tmp, tmp, two, tmp, res, a,
		tb, one, a, one,
		res, a,
		res, tb, tmp, one, two))
}

func handleMul16(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	acc := e.tempName("mul16_acc")
	mul := e.tempName("mul16_mul")
	mcand := e.tempName("mul16_mcand")
	tmp := e.tempName("mul16_tmp")
	one := e.tempName("mul16_one")
	two := e.tempName("mul16_two")
	e.splice(s, "(mul16)", fmt.Sprintf(
		"{ alloc_cell16(%s) alloc_cell16(%s) alloc_cell16(%s) alloc_cell16(%s) "+
			"alloc_cell16(%s) >%s + alloc_cell16(%s) >%s ++ "+
			"clear16(%s) copy16(%d, %s) copy16(%d, %s) "+
			"copy16(%s, %s) ge16(%s, %s) "+
			"while(%s) "+
			"  copy16(%s, %s) mod16(%s, %s) if(%s) add16(%s, %s) endif "+
			"  shr16(%s, %s) shl16(%s, %s) "+
			"  copy16(%s, %s) ge16(%s, %s) "+
			"endwhile "+
			"move16(%s, %d) "+
			"free_cell16(%s) free_cell16(%s) free_cell16(%s) free_cell16(%s) free_cell16(%s) free_cell16(%s) }",
		acc, mul, mcand, tmp, one, one, two, two,
		acc, a, mcand, b, mul,
		mul, tmp, tmp, one,
		tmp,
		mul, tmp, tmp, two, tmp, acc, mcand,
		mul, one, mcand, one,
		mul, tmp, tmp, one,
		acc, a,
		acc, mul, mcand, tmp, one, two))
}

func handleSmul8(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	sa, sb, fs, bc := e.tempName("smul8_sa"), e.tempName("smul8_sb"), e.tempName("smul8_fs"), e.tempName("smul8_bc")
	e.splice(s, "(smul8)", fmt.Sprintf(
		"{ alloc_cell8(%s) alloc_cell8(%s) alloc_cell8(%s) alloc_cell8(%s) "+
			"copy8(%d, %s) sign8(%s) copy8(%d, %s) sign8(%s) "+
			"copy8(%s, %s) xor8(%s, %s) "+
			"abs8(%d) copy8(%d, %s) abs8(%s) "+
			"mul8(%d, %s) "+
			"if(%s) neg8(%d) endif "+
			"free_cell8(%s) free_cell8(%s) free_cell8(%s) free_cell8(%s) }",
		sa, sb, fs, bc,
		a, sa, sa, b, sb, sb,
		sa, fs, fs, sb,
		a, b, bc, bc,
		a, bc,
		fs, a,
		sa, sb, fs, bc))
}

func handleSmul16(e *Expander, s *Source, tok token.Token) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	sa, sb, fs, bc := e.tempName("smul16_sa"), e.tempName("smul16_sb"), e.tempName("smul16_fs"), e.tempName("smul16_bc")
	e.splice(s, "(smul16)", fmt.Sprintf(
		"{ alloc_cell16(%s) alloc_cell16(%s) alloc_cell16(%s) alloc_cell16(%s) "+
			"copy16(%d, %s) sign16(%s) copy16(%d, %s) sign16(%s) "+
			"copy16(%s, %s) xor16(%s, %s) "+
			"abs16(%d) copy16(%d, %s) abs16(%s) "+
			"mul16(%d, %s) "+
			"if(%s) neg16(%d) endif "+
			"free_cell16(%s) free_cell16(%s) free_cell16(%s) free_cell16(%s) }",
		sa, sb, fs, bc,
		a, sa, sa, b, sb, sb,
		sa, fs, fs, sb,
		a, b, bc, bc,
		a, bc,
		fs, a,
		sa, sb, fs, bc))
}

// divMod8 implements both div8 and mod8 via an 8-iteration shift-subtract
// binary long-division, the returnRemainder parameter choosing which of the
// running quotient/remainder registers is written back into a.
func divMod8(e *Expander, s *Source, tok token.Token, returnRemainder bool) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	quot := e.tempName("divmod8_quot")
	rem := e.tempName("divmod8_rem")
	bit := e.tempName("divmod8_bit")
	tmp := e.tempName("divmod8_tmp")
	one := e.tempName("divmod8_one")
	seven := e.tempName("divmod8_seven")
	eight := e.tempName("divmod8_eight")
	moveTarget := quot
	mockName := "(div8)"
	if returnRemainder {
		moveTarget = rem
		mockName = "(mod8)"
	}
	e.splice(s, mockName, fmt.Sprintf(
		"{ alloc_cell8(%s) alloc_cell8(%s) alloc_cell8(%s) alloc_cell8(%s) "+
			"alloc_cell8(%s) >%s + alloc_cell8(%s) >%s +7 alloc_cell8(%s) >%s +8 "+
			"if(%d) "+
			"  repeat(%s) "+
			"    copy8(%d, %s) shr8(%s, %s) shl8(%d, %s) shl8(%s, %s) add8(%s, %s) "+
			"    copy8(%s, %s) ge8(%s, %d) "+
			"    if(%s) sub8(%s, %d) shl8(%s, %s) add8(%s, %s) else shl8(%s, %s) endif "+
			"  endrepeat "+
			"  move8(%s, %d) "+
			"endif "+
			"free_cell8(%s) free_cell8(%s) free_cell8(%s) free_cell8(%s) free_cell8(%s) free_cell8(%s) free_cell8(%s) }",
		quot, rem, bit, tmp, one, one, seven, seven, eight, eight,
		b,
		eight,
		a, bit, bit, seven, a, one, rem, one, rem, bit,
		rem, tmp, tmp, b,
		tmp, rem, b, quot, one, quot, one, quot, one,
		moveTarget, a,
		quot, rem, bit, tmp, one, seven, eight))
}

func handleDiv8(e *Expander, s *Source, tok token.Token) { divMod8(e, s, tok, false) }
func handleMod8(e *Expander, s *Source, tok token.Token) { divMod8(e, s, tok, true) }

// divMod16 implements div16/mod16 via restoring binary long-division,
// doubling a scaled copy of the divisor until it would exceed the running
// remainder, then subtracting the largest chunk that fits.
func divMod16(e *Expander, s *Source, tok token.Token, returnRemainder bool) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	work := e.tempName("divmod16_work")
	quot := e.tempName("divmod16_quot")
	scale := e.tempName("divmod16_scale")
	bit := e.tempName("divmod16_bit")
	tmp := e.tempName("divmod16_tmp")
	cond := e.tempName("divmod16_cond")
	guard := e.tempName("divmod16_guard")
	one := e.tempName("divmod16_one")
	moveTarget := quot
	mockName := "(div16)"
	if returnRemainder {
		moveTarget = work
		mockName = "(mod16)"
	}
	e.splice(s, mockName, fmt.Sprintf(
		"{ alloc_cell16(%s) alloc_cell16(%s) alloc_cell16(%s) alloc_cell16(%s) "+
			"alloc_cell16(%s) alloc_cell16(%s) alloc_cell16(%s) "+
			"alloc_cell16(%s) set16(%s, 1) "+
			"copy16(%d, %s) ge16(%s, %s) "+
			"if(%s) "+
			"  copy16(%d, %s) "+
			"  copy16(%s, %s) ge16(%s, %d) "+
			"  while(%s) "+
			"    copy16(%d, %s) clear16(%s) add16(%s, %s) "+
			"    copy16(%s, %s) shl16(%s, %s) "+
			"    copy16(%s, %s) ge16(%s, %s) "+
			"    copy16(%s, %s) gt16(%s, %s) and16(%s, %s) "+
			"    while(%s) "+
			"      shl16(%s, %s) shl16(%s, %s) "+
			"      copy16(%s, %s) shl16(%s, %s) "+
			"      copy16(%s, %s) ge16(%s, %s) "+
			"      copy16(%s, %s) gt16(%s, %s) and16(%s, %s) "+
			"    endwhile "+
			"    sub16(%s, %s) add16(%s, %s) "+
			"    copy16(%s, %s) ge16(%s, %d) "+
			"  endwhile "+
			"  move16(%s, %d) "+
			"endif "+
			"free_cell16(%s) free_cell16(%s) free_cell16(%s) free_cell16(%s) free_cell16(%s) free_cell16(%s) free_cell16(%s) free_cell16(%s) }",
		work, quot, scale, bit, tmp, cond, guard,
		one, one,
		b, cond, cond, one,
		cond,
		a, work,
		work, cond, cond, b,
		cond,
		b, scale, bit, bit, one,
		scale, tmp, tmp, one,
		work, cond, cond, tmp,
		tmp, guard, guard, scale, cond, guard,
		cond,
		scale, one, bit, one,
		scale, tmp, tmp, one,
		work, cond, cond, tmp,
		tmp, guard, guard, scale, cond, guard,
		work, scale,
		quot, bit,
		work, cond, cond, b,
		moveTarget, a,
		work, quot, scale, bit, tmp, cond, guard, one))
}

func handleDiv16(e *Expander, s *Source, tok token.Token) { divMod16(e, s, tok, false) }
func handleMod16(e *Expander, s *Source, tok token.Token) { divMod16(e, s, tok, true) }

// sdivSmod8 wraps div8/mod8 with sign handling: the operands are made
// unsigned via abs8, the unsigned operation runs, and the sign of the
// result is restored (XOR of operand signs for division, sign of the
// dividend alone for remainder, matching C's truncating-toward-zero
// semantics).
func sdivSmod8(e *Expander, s *Source, tok token.Token, returnRemainder bool) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	sa, sb, fs, babs := e.tempName("sdm8_sa"), e.tempName("sdm8_sb"), e.tempName("sdm8_fs"), e.tempName("sdm8_babs")
	op := "div8"
	mockName := "(sdiv8)"
	finalSign := fmt.Sprintf("copy8(%s, %s) xor8(%s, %s) ", sa, fs, fs, sb)
	if returnRemainder {
		op = "mod8"
		mockName = "(smod8)"
		finalSign = fmt.Sprintf("copy8(%s, %s) ", sa, fs)
	}
	e.splice(s, mockName, fmt.Sprintf(
		"{ alloc_cell8(%s) alloc_cell8(%s) alloc_cell8(%s) alloc_cell8(%s) "+
			"copy8(%d, %s) sign8(%s) copy8(%d, %s) sign8(%s) "+
			"%s"+
			"abs8(%d) copy8(%d, %s) abs8(%s) "+
			"%s(%d, %s) "+
			"if(%s) neg8(%d) endif "+
			"free_cell8(%s) free_cell8(%s) free_cell8(%s) free_cell8(%s) }",
		sa, sb, fs, babs,
		a, sa, sa, b, sb, sb,
		finalSign,
		a, b, babs, babs,
		op, a, babs,
		fs, a,
		sa, sb, fs, babs))
}

func handleSdiv8(e *Expander, s *Source, tok token.Token) { sdivSmod8(e, s, tok, false) }
func handleSmod8(e *Expander, s *Source, tok token.Token) { sdivSmod8(e, s, tok, true) }

func sdivSmod16(e *Expander, s *Source, tok token.Token, returnRemainder bool) {
	vals, ok := e.exprArgs(s, tok, "expr_a", "expr_b")
	if !ok {
		return
	}
	a, b := vals[0], vals[1]
	sa, sb, fs, babs := e.tempName("sdm16_sa"), e.tempName("sdm16_sb"), e.tempName("sdm16_fs"), e.tempName("sdm16_babs")
	op := "div16"
	mockName := "(sdiv16)"
	finalSign := fmt.Sprintf("copy16(%s, %s) xor16(%s, %s) ", sa, fs, fs, sb)
	if returnRemainder {
		op = "mod16"
		mockName = "(smod16)"
		finalSign = fmt.Sprintf("copy16(%s, %s) ", sa, fs)
	}
	e.splice(s, mockName, fmt.Sprintf(
		"{ alloc_cell16(%s) alloc_cell16(%s) alloc_cell16(%s) alloc_cell16(%s) "+
			"copy16(%d, %s) sign16(%s) copy16(%d, %s) sign16(%s) "+
			"%s"+
			"abs16(%d) copy16(%d, %s) abs16(%s) "+
			"%s(%d, %s) "+
			"if(%s) neg16(%d) endif "+
			"free_cell16(%s) free_cell16(%s) free_cell16(%s) free_cell16(%s) }",
		sa, sb, fs, babs,
		a, sa, sa, b, sb, sb,
		finalSign,
		a, b, babs, babs,
		op, a, babs,
		fs, a,
		sa, sb, fs, babs))
}

func handleSdiv16(e *Expander, s *Source, tok token.Token) { sdivSmod16(e, s, tok, false) }
func handleSmod16(e *Expander, s *Source, tok token.Token) { sdivSmod16(e, s, tok, true) }

package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/paulocustodio/bfpp/internal/diag"
	"github.com/paulocustodio/bfpp/internal/macrotab"
	"github.com/paulocustodio/bfpp/internal/token"
)

// fakeAddresser is a minimal Addresser stub for tests that exercise the
// global/temp/arg/local/local_temp primaries.
type fakeAddresser struct{}

func (fakeAddresser) GlobalAddr(n int) (int, error)     { return 100 + n, nil }
func (fakeAddresser) TempAddr(n int) (int, error)        { return 200 + n, nil }
func (fakeAddresser) FrameArgAddr(n int) (int, error)     { return 300 + n, nil }
func (fakeAddresser) FrameLocalAddr(n int) (int, error)   { return 400 + n, nil }
func (fakeAddresser) FrameLocalTempAddr(n int) (int, error) { return 500 + n, nil }

func loc() token.Location { return token.Location{Filename: "t", Line: 1} }

func tok(k token.Kind, text string) token.Token {
	return token.Token{Kind: k, Text: text, Loc: loc()}
}

func intTok(v int) token.Token {
	return token.MakeInt(v, loc())
}

func opTok(s string) token.Token { return tok(token.Operator, s) }

func evalToks(t *testing.T, macros *macrotab.Table, addr Addresser, mode UndefinedMode, toks []token.Token) (int, *diag.Reporter) {
	t.Helper()
	toks = append(append([]token.Token{}, toks...), token.Token{Kind: token.EndOfInput, Loc: loc()})
	diags := &diag.Reporter{}
	ev := New(macros, addr, mode, diags)
	val := ev.Eval(NewSliceSource(toks))
	return val, diags
}

func TestArithmeticPrecedence(t *testing.T) {
	// 2 + 3 * 4 == 14
	toks := []token.Token{intTok(2), opTok("+"), intTok(3), opTok("*"), intTok(4)}
	val, diags := evalToks(t, macrotab.New(), nil, ErrorOnUndefined, toks)
	assert.Equal(t, 14, val)
	assert.False(t, diags.HasErrors())
}

func TestParenthesesOverridePrecedence(t *testing.T) {
	// (2 + 3) * 4 == 20
	toks := []token.Token{
		tok(token.LParen, "("), intTok(2), opTok("+"), intTok(3), tok(token.RParen, ")"),
		opTok("*"), intTok(4),
	}
	val, _ := evalToks(t, macrotab.New(), nil, ErrorOnUndefined, toks)
	assert.Equal(t, 20, val)
}

func TestLogicalAndShortCircuitValue(t *testing.T) {
	toks := []token.Token{intTok(0), opTok("&&"), intTok(1)}
	val, _ := evalToks(t, macrotab.New(), nil, ErrorOnUndefined, toks)
	assert.Equal(t, 0, val)
}

func TestDivisionByZeroReportsErrorAndYieldsZero(t *testing.T) {
	toks := []token.Token{intTok(5), opTok("/"), intTok(0)}
	val, diags := evalToks(t, macrotab.New(), nil, ErrorOnUndefined, toks)
	assert.Equal(t, 0, val)
	assert.True(t, diags.HasErrors())
}

func TestDefinedOperator(t *testing.T) {
	macros := macrotab.New()
	macros.Define(&macrotab.Macro{Name: "FOO"})

	// "defined" is scanned as a plain Identifier, not an Operator — these
	// tokens must match what the real scanner produces.
	toks := []token.Token{tok(token.Identifier, "defined"), tok(token.LParen, "("), tok(token.Identifier, "FOO"), tok(token.RParen, ")")}
	val, _ := evalToks(t, macros, nil, ErrorOnUndefined, toks)
	assert.Equal(t, 1, val)

	toks2 := []token.Token{tok(token.Identifier, "defined"), tok(token.LParen, "("), tok(token.Identifier, "BAR"), tok(token.RParen, ")")}
	val2, _ := evalToks(t, macros, nil, ErrorOnUndefined, toks2)
	assert.Equal(t, 0, val2)
}

func TestUndefinedIdentifierModes(t *testing.T) {
	macros := macrotab.New()
	toks := []token.Token{tok(token.Identifier, "UNSET")}

	zero, diagsZero := evalToks(t, macros, nil, UndefinedAsZero, toks)
	assert.Equal(t, 0, zero)
	assert.False(t, diagsZero.HasErrors())

	_, diagsErr := evalToks(t, macros, nil, ErrorOnUndefined, toks)
	assert.True(t, diagsErr.HasErrors())
}

func TestObjectLikeMacroExpandsRecursively(t *testing.T) {
	macros := macrotab.New()
	macros.Define(&macrotab.Macro{Name: "TWO", Body: []token.Token{intTok(2)}})
	macros.Define(&macrotab.Macro{Name: "DOUBLE", Body: []token.Token{tok(token.Identifier, "TWO"), opTok("*"), intTok(2)}})

	toks := []token.Token{tok(token.Identifier, "DOUBLE")}
	val, diags := evalToks(t, macros, nil, ErrorOnUndefined, toks)
	assert.Equal(t, 4, val)
	assert.False(t, diags.HasErrors())
}

func TestAddressHelpers(t *testing.T) {
	toks := []token.Token{
		tok(token.Identifier, "global"), tok(token.LParen, "("), intTok(3), tok(token.RParen, ")"),
	}
	val, diags := evalToks(t, macrotab.New(), fakeAddresser{}, ErrorOnUndefined, toks)
	assert.Equal(t, 103, val)
	assert.False(t, diags.HasErrors())
}

func TestAddressHelperWithoutAddresserIsError(t *testing.T) {
	toks := []token.Token{
		tok(token.Identifier, "arg"), tok(token.LParen, "("), intTok(0), tok(token.RParen, ")"),
	}
	_, diags := evalToks(t, macrotab.New(), nil, ErrorOnUndefined, toks)
	assert.True(t, diags.HasErrors())
}

func TestShiftAndBitwise(t *testing.T) {
	// (1 << 3) | 1 == 9
	toks := []token.Token{intTok(1), opTok("<<"), intTok(3), opTok("|"), intTok(1)}
	val, _ := evalToks(t, macrotab.New(), nil, ErrorOnUndefined, toks)
	assert.Equal(t, 9, val)
}

func TestUnaryOperators(t *testing.T) {
	toks := []token.Token{opTok("!"), intTok(0)}
	val, _ := evalToks(t, macrotab.New(), nil, ErrorOnUndefined, toks)
	assert.Equal(t, 1, val)

	toks2 := []token.Token{opTok("-"), intTok(5)}
	val2, _ := evalToks(t, macrotab.New(), nil, ErrorOnUndefined, toks2)
	assert.Equal(t, -5, val2)
}

package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulocustodio/bfpp/internal/diag"
	"github.com/paulocustodio/bfpp/internal/macrotab"
	"github.com/paulocustodio/bfpp/internal/output"
	"github.com/paulocustodio/bfpp/internal/source"
	"github.com/paulocustodio/bfpp/internal/tape"
)

func run(t *testing.T, src string) (*output.Buffer, *diag.Reporter) {
	t.Helper()
	fs := source.NewFileStack()
	fs.PushStream(strings.NewReader(src), "test.bfpp")

	macros := macrotab.New()
	tp := tape.New()
	diags := &diag.Reporter{}
	out := output.New(diags)

	p := New(fs, macros, tp, out, diags)
	p.Run()
	return out, diags
}

func bfText(out *output.Buffer) string {
	var sb strings.Builder
	for _, tok := range out.Tokens() {
		sb.WriteString(tok.Text)
	}
	return sb.String()
}

func TestPlainBFPassesThrough(t *testing.T) {
	out, diags := run(t, "+++>-<.\n")
	require.False(t, diags.HasErrors(), diags.String())
	assert.Equal(t, "+++>-<.", bfText(out))
}

func TestPlusMinusWithCount(t *testing.T) {
	out, diags := run(t, "+5 -2\n")
	require.False(t, diags.HasErrors(), diags.String())
	assert.Equal(t, "+++++--", bfText(out))
}

func TestNegativeCountInvertsOpcode(t *testing.T) {
	out, diags := run(t, "+(-3)\n")
	require.False(t, diags.HasErrors(), diags.String())
	assert.Equal(t, "---", bfText(out))
}

func TestMoveToAbsolutePosition(t *testing.T) {
	out, diags := run(t, ">3 <1\n")
	require.False(t, diags.HasErrors(), diags.String())
	assert.Equal(t, ">>><<", bfText(out))
}

func TestLoopPointerMismatchReportsError(t *testing.T) {
	_, diags := run(t, "[>+]\n")
	assert.True(t, diags.HasErrors(), "pointer must return to its '[' position before ']'")
}

func TestLoopPointerBalancedIsClean(t *testing.T) {
	out, diags := run(t, "[>+<-]\n")
	require.False(t, diags.HasErrors(), diags.String())
	assert.Equal(t, "[>+<-]", bfText(out))
}

func TestBraceCheckpointMismatchReportsError(t *testing.T) {
	_, diags := run(t, "{>}\n")
	assert.True(t, diags.HasErrors(), "pointer must return to its '{' position before '}'")
}

func TestBraceCheckpointBalancedEmitsNoOutput(t *testing.T) {
	out, diags := run(t, "{>+<}\n")
	require.False(t, diags.HasErrors(), diags.String())
	assert.Equal(t, ">+<", bfText(out))
}

func TestObjectLikeSingleLineMacro(t *testing.T) {
	out, diags := run(t, "#define FIVE +++++\nFIVE\n")
	require.False(t, diags.HasErrors(), diags.String())
	assert.Equal(t, "+++++", bfText(out))
}

func TestObjectLikeMultiLineMacro(t *testing.T) {
	out, diags := run(t, "#define GREET\n+++\n---\n#end\nGREET\n")
	require.False(t, diags.HasErrors(), diags.String())
	assert.Equal(t, "+++---", bfText(out))
}

func TestFunctionLikeMacroSubstitutesArgs(t *testing.T) {
	out, diags := run(t, "#define TWICE(x) x x\n#end\nTWICE(+)\n")
	require.False(t, diags.HasErrors(), diags.String())
	assert.Equal(t, "++", bfText(out))
}

func TestUndefRemovesMacro(t *testing.T) {
	_, diags := run(t, "#define FOO +\n#undef FOO\nFOO\n")
	assert.True(t, diags.HasErrors(), "FOO must be undefined after #undef")
}

func TestIfTrueBranchTaken(t *testing.T) {
	out, diags := run(t, "#if 1\n+\n#else\n-\n#endif\n")
	require.False(t, diags.HasErrors(), diags.String())
	assert.Equal(t, "+", bfText(out))
}

func TestIfFalseBranchSkipsToElse(t *testing.T) {
	out, diags := run(t, "#if 0\n+\n#else\n-\n#endif\n")
	require.False(t, diags.HasErrors(), diags.String())
	assert.Equal(t, "-", bfText(out))
}

func TestIfElsifChain(t *testing.T) {
	out, diags := run(t, "#if 0\n+\n#elsif 1\n-\n#else\n.\n#endif\n")
	require.False(t, diags.HasErrors(), diags.String())
	assert.Equal(t, "-", bfText(out))
}

func TestNestedIfInsideSkippedBranchIsIgnored(t *testing.T) {
	out, diags := run(t, "#if 0\n#if 1\n+\n#endif\n-\n#else\n.\n#endif\n")
	require.False(t, diags.HasErrors(), diags.String())
	assert.Equal(t, ".", bfText(out))
}

func TestUnterminatedIfReportsError(t *testing.T) {
	_, diags := run(t, "#if 1\n+\n")
	assert.True(t, diags.HasErrors())
}

func TestUndefinedIdentifierInBFPositionIsError(t *testing.T) {
	_, diags := run(t, "nosuchmacro\n")
	assert.True(t, diags.HasErrors())
}

func TestDefinedExpressionInIf(t *testing.T) {
	out, diags := run(t, "#define FOO 1\n#if defined(FOO)\n+\n#endif\n")
	require.False(t, diags.HasErrors(), diags.String())
	assert.Equal(t, "+", bfText(out))
}

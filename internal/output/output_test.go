package output

import (
	"testing"

	"github.com/kylelemons/godebug/diff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulocustodio/bfpp/internal/diag"
	"github.com/paulocustodio/bfpp/internal/token"
)

func bf(c byte) token.Token { return token.MakeBF(c, token.Location{Filename: "t", Line: 1}) }

func TestPutTracksTapePointer(t *testing.T) {
	diags := &diag.Reporter{}
	b := New(diags)
	b.Put(bf('>'))
	b.Put(bf('>'))
	b.Put(bf('<'))
	assert.Equal(t, 1, b.TapePtr())
	assert.False(t, diags.HasErrors())
}

func TestPutRejectsNegativeTapePointer(t *testing.T) {
	diags := &diag.Reporter{}
	b := New(diags)
	b.Put(bf('<'))
	assert.True(t, diags.HasErrors())
}

func TestLoopBalance(t *testing.T) {
	diags := &diag.Reporter{}
	b := New(diags)
	b.Put(bf('['))
	b.Put(bf('+'))
	b.CheckLoops()
	assert.True(t, diags.HasErrors(), "an unmatched '[' must be reported at end of input")
}

func TestUnmatchedCloseBracket(t *testing.T) {
	diags := &diag.Reporter{}
	b := New(diags)
	b.Put(bf(']'))
	assert.True(t, diags.HasErrors())
}

func TestOptimizeTapeMovementsFoldsRuns(t *testing.T) {
	diags := &diag.Reporter{}
	b := New(diags)
	b.Put(bf('>'))
	b.Put(bf('<'))
	b.Put(bf('>'))
	b.Put(bf('>'))
	b.Put(bf('+'))
	b.Put(bf('<'))
	b.OptimizeTapeMovements()

	var got []string
	for _, tok := range b.Tokens() {
		got = append(got, tok.Text)
	}
	// net displacement before '+' is +2 (>,<,>,> == +1-1+1+1), collapsing
	// four tokens into two.
	require.Equal(t, []string{">", ">", "+", "<"}, got)
}

func TestOptimizeTapeMovementsIsIdempotent(t *testing.T) {
	diags := &diag.Reporter{}
	b := New(diags)
	b.Put(bf('>'))
	b.Put(bf('>'))
	b.Put(bf('<'))
	b.Put(bf('.'))
	b.OptimizeTapeMovements()
	first := b.Tokens()
	b.OptimizeTapeMovements()
	assert.Equal(t, len(first), len(b.Tokens()))
}

func TestPrettyPrintIndentsLoopBody(t *testing.T) {
	diags := &diag.Reporter{}
	b := New(diags)
	b.Put(bf('['))
	b.Put(bf('-'))
	b.Put(bf(']'))

	want := "[\n  -\n]\n"
	got := b.PrettyPrint()
	if patch := diff.Diff(want, got); patch != "" {
		t.Errorf("PrettyPrint output differs:\n%s", patch)
	}
}

func TestResetClearsState(t *testing.T) {
	diags := &diag.Reporter{}
	b := New(diags)
	b.Put(bf('>'))
	b.Reset()
	assert.Equal(t, 0, b.TapePtr())
	assert.Equal(t, 0, b.Len())
}

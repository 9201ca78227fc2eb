package macrotab

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/paulocustodio/bfpp/internal/token"
)

func TestDefineLookupUndef(t *testing.T) {
	tb := New()
	assert.False(t, tb.Has("foo"))
	assert.Nil(t, tb.Lookup("foo"))

	m := &Macro{Name: "foo", Body: []token.Token{token.MakeInt(3, token.Location{})}}
	prev := tb.Define(m)
	assert.Nil(t, prev)
	assert.True(t, tb.Has("foo"))
	assert.Same(t, m, tb.Lookup("foo"))

	tb.Undef("foo")
	assert.False(t, tb.Has("foo"))
	// undefining an already-undefined name is a no-op, not an error
	tb.Undef("foo")
}

func TestDefineReportsPreviousDefinition(t *testing.T) {
	tb := New()
	first := &Macro{Name: "n", Loc: token.Location{Line: 1}}
	second := &Macro{Name: "n", Loc: token.Location{Line: 2}}

	assert.Nil(t, tb.Define(first))
	prev := tb.Define(second)
	assert.Same(t, first, prev)
	assert.Same(t, second, tb.Lookup("n"))
}

func TestIsFunctionLike(t *testing.T) {
	obj := &Macro{Name: "x"}
	fn := &Macro{Name: "f", Params: []string{"a"}}
	assert.False(t, obj.IsFunctionLike())
	assert.True(t, fn.IsFunctionLike())
}

func TestClear(t *testing.T) {
	tb := New()
	tb.Define(&Macro{Name: "a"})
	tb.Clear()
	assert.False(t, tb.Has("a"))
}

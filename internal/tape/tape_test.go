package tape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocCellsFirstFit(t *testing.T) {
	a := New()
	x := a.AllocCells(1)
	y := a.AllocCells(2)
	assert.Equal(t, 0, x)
	assert.Equal(t, 1, y)
	assert.Equal(t, 3, a.HeapSize())

	require.NoError(t, a.FreeCells(x))
	z := a.AllocCells(1)
	assert.Equal(t, 0, z, "a freed single cell should be reused first-fit")
}

func TestFreeCellsUnknownAddress(t *testing.T) {
	a := New()
	err := a.FreeCells(42)
	assert.Error(t, err)
}

func TestHeapCoalescesAdjacentFreeBlocks(t *testing.T) {
	a := New()
	x := a.AllocCells(2)
	y := a.AllocCells(2)
	require.NoError(t, a.FreeCells(x))
	require.NoError(t, a.FreeCells(y))

	// the coalesced block reaches the high-water mark, so the heap should
	// shrink back to empty rather than leaving a dangling free interval.
	assert.Equal(t, 0, a.HeapSize())
}

func TestStackGrowsDownwardFromBase(t *testing.T) {
	a := New()
	a.SetStackBase(1000)
	p1 := a.AllocStack(4)
	assert.Equal(t, 996, p1)
	assert.Equal(t, 996, a.MinStackPtr())
	a.FreeStack(4)
	assert.Equal(t, 1000, a.StackPtr())
	assert.Equal(t, 4, a.MaxStackDepth())
}

func TestGlobalsRegionAllocatedOnce(t *testing.T) {
	a := New()
	base, err := a.AllocGlobal(3)
	require.NoError(t, err)
	_, err = a.AllocGlobal(1)
	assert.Error(t, err, "allocating globals twice must fail")

	addr, err := a.GlobalAddr(1)
	require.NoError(t, err)
	assert.Equal(t, base+2, addr)

	_, err = a.GlobalAddr(3)
	assert.Error(t, err, "out-of-range global index must fail")
}

func TestFrameAddresses(t *testing.T) {
	a := New()
	a.SetStackBase(100)
	a.EnterFrame(2, 3)

	argAddr, err := a.FrameArgAddr(0)
	require.NoError(t, err)
	assert.Equal(t, 98, argAddr)

	localAddr, err := a.FrameLocalAddr(0)
	require.NoError(t, err)
	assert.Equal(t, 94, localAddr)

	require.NoError(t, a.FrameAllocTemp(1))
	tempAddr, err := a.FrameLocalTempAddr(0)
	require.NoError(t, err)
	assert.Equal(t, 88, tempAddr)

	require.NoError(t, a.LeaveFrame())
	assert.Equal(t, 100, a.StackPtr())
	assert.Equal(t, 0, a.FrameDepth())
}

func TestLeaveFrameWithoutEnter(t *testing.T) {
	a := New()
	assert.Error(t, a.LeaveFrame())
}

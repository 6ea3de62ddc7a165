package arena_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arenadoc/cdom/internal/arena"
)

// testNode stands in for arena.Node (a cdom-level type, not arena's own) so
// these tests can exercise Arena[T] without importing upward.
type testNode struct{ W0, W1, W2 uint64 }

func TestArenaAllocIsZeroed(t *testing.T) {
	var a arena.Arena[testNode]

	n := a.Alloc()
	require.NotNil(t, n)
	assert.Zero(t, n.W0)
	assert.Zero(t, n.W1)
	assert.Zero(t, n.W2)
}

func TestArenaGrowthKeepsOldPointersStable(t *testing.T) {
	var a arena.Arena[testNode]

	first := a.Alloc()
	first.W0 = 0xDEAD

	var last *testNode
	for i := 0; i < 10000; i++ {
		last = a.Alloc()
		last.W1 = uint64(i)
	}

	assert.EqualValues(t, 0xDEAD, first.W0, "growth must not relocate earlier nodes")
	assert.EqualValues(t, 9999, last.W1)
	assert.Equal(t, 10001, a.Count())
}

func TestArenaReserve(t *testing.T) {
	var a arena.Arena[testNode]

	a.Reserve(10000)
	before := a.Count()
	for i := 0; i < 100; i++ {
		a.Alloc()
	}
	assert.Equal(t, before+100, a.Count())
}

func TestNewArenaAllocates(t *testing.T) {
	a := arena.New[testNode](1000)
	require.NotNil(t, a)

	first := a.Alloc()
	assert.NotNil(t, first)
}

func TestStringArenaAllocHasTrailingByte(t *testing.T) {
	var a arena.StringArena

	region := a.Alloc(5)
	require.Len(t, region, 6)
	copy(region, "hello")
	region[5] = 0

	assert.Equal(t, "hello\x00", string(region))
	assert.Equal(t, 5, a.Count())
}

func TestStringArenaGrowthKeepsOldBytesStable(t *testing.T) {
	var a arena.StringArena

	first := a.Alloc(4)
	copy(first, "abcd")

	for i := 0; i < 20000; i++ {
		r := a.Alloc(4)
		copy(r, "wxyz")
	}

	assert.Equal(t, "abcd", string(first[:4]), "growth must not relocate earlier strings")
}

package clinic

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDAllocator_DistinctWithinRange(t *testing.T) {
	a := NewIDAllocatorWithSource(rand.NewPCG(1, 2))
	used := map[int]struct{}{}

	for i := 0; i < 2000; i++ {
		id, err := a.Allocate(func(c int) bool { _, ok := used[c]; return ok })
		require.NoError(t, err)
		require.GreaterOrEqual(t, id, MinID)
		require.LessOrEqual(t, id, MaxID)
		_, dup := used[id]
		require.False(t, dup, "duplicate id %d", id)
		used[id] = struct{}{}
	}
}

func TestIDAllocator_FindsLastFreeValue(t *testing.T) {
	a := NewIDAllocatorWithSource(rand.NewPCG(7, 7))
	a.Min, a.Max = 1, 50

	id, err := a.Allocate(func(c int) bool { return c != 37 })
	require.NoError(t, err)
	assert.Equal(t, 37, id)
}

func TestIDAllocator_Exhausted(t *testing.T) {
	a := NewIDAllocatorWithSource(rand.NewPCG(3, 4))
	a.Min, a.Max = 1, 10

	_, err := a.Allocate(func(int) bool { return true })
	assert.ErrorIs(t, err, ErrIdentifierExhausted)
}

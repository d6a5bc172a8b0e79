package testutil

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValues(t *testing.T) {
	rng := NewRNG(4711)

	v := Values[int64](rng, 100, 10)

	assert.Len(t, v, 100)
	for _, x := range v {
		assert.GreaterOrEqual(t, x, int64(0))
		assert.Less(t, x, int64(10))
	}
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	v1 := Values[uint32](rng, 10, 1000)

	rng.Reset()
	v2 := Values[uint32](rng, 10, 1000)

	assert.Equal(t, v1, v2)
	assert.Equal(t, int64(4711), rng.Seed())
}

func TestZipfValues(t *testing.T) {
	rng := NewRNG(4711)

	v := ZipfValues[int32](rng, 1000, 50, 1.5)

	counts := make(map[int32]int)
	for _, x := range v {
		assert.GreaterOrEqual(t, x, int32(0))
		assert.Less(t, x, int32(50))
		counts[x]++
	}
	// Rank 0 dominates a skewed distribution.
	assert.Greater(t, counts[0], counts[49])
}

func TestChoose(t *testing.T) {
	rng := NewRNG(1)

	for range 100 {
		assert.Equal(t, 1, rng.Choose(0, 5, 0))
	}
}

func TestRefSet(t *testing.T) {
	s := NewRefSet[int64]()

	assert.True(t, s.Add(3))
	assert.True(t, s.Add(1))
	assert.False(t, s.Add(3))
	assert.True(t, s.Contains(1))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []int64{1, 3}, s.Sorted())

	assert.True(t, s.Remove(1))
	assert.False(t, s.Remove(1))
	assert.True(t, slices.Equal([]int64{3}, s.Sorted()))
}

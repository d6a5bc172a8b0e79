package sortedset

import (
	"iter"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seqOf(vals ...int64) iter.Seq[int64] { return slices.Values(vals) }

func TestUnion(t *testing.T) {
	got := slices.Collect(Union(
		seqOf(1, 4, 7),
		seqOf(2, 4, 8),
		seqOf(),
		seqOf(4, 7, 9),
	))
	assert.Equal(t, []int64{1, 2, 4, 7, 8, 9}, got)

	assert.Empty(t, slices.Collect(Union[int64]()))
}

func TestIntersection(t *testing.T) {
	got := slices.Collect(Intersection(
		seqOf(1, 3, 4, 7, 9),
		seqOf(3, 4, 5, 9),
		seqOf(0, 3, 9, 10),
	))
	assert.Equal(t, []int64{3, 9}, got)

	assert.Empty(t, slices.Collect(Intersection(seqOf(1, 2), seqOf())))
	assert.Empty(t, slices.Collect(Intersection[int64]()))
}

func TestMinus(t *testing.T) {
	got := slices.Collect(Minus(
		seqOf(1, 2, 3, 4, 5, 6),
		seqOf(2, 5),
		seqOf(0, 6, 7),
	))
	assert.Equal(t, []int64{1, 3, 4}, got)

	assert.Equal(t, []int64{1, 2}, slices.Collect(Minus(seqOf(1, 2))))
	assert.Empty(t, slices.Collect(Minus(seqOf(), seqOf(1))))
}

func TestMerge_EarlyStop(t *testing.T) {
	var got []int64
	for v := range Union(seqOf(1, 3, 5), seqOf(2, 4, 6)) {
		got = append(got, v)
		if v == 3 {
			break
		}
	}
	assert.Equal(t, []int64{1, 2, 3}, got)
}

func TestMerge_Sets(t *testing.T) {
	a, err := FromValues([]int64{1, 2, 3, 4})
	require.NoError(t, err)
	b, err := New[int64]()
	require.NoError(t, err)
	b.AddAll(3, 4, 5)

	assert.Equal(t, []int64{1, 2, 3, 4, 5}, slices.Collect(Union(a.All(), b.All())))
	assert.Equal(t, []int64{3, 4}, slices.Collect(Intersection(a.All(), b.Snapshot().All())))
	assert.Equal(t, []int64{1, 2}, slices.Collect(Minus(a.All(), b.All())))
}

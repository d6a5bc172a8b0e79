package segarray

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/segcoll"
	"github.com/hupe1980/segcoll/testutil"
)

func seq(n int) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(i)
	}
	return out
}

func TestNew_Options(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		a, err := New[int64]()
		require.NoError(t, err)
		assert.Equal(t, 0, a.Len())
		assert.Equal(t, 0, a.Cap())
		assert.Equal(t, 16, a.SegmentSize())
		assert.Nil(t, a.Index())
	})

	t.Run("invalid initial bits", func(t *testing.T) {
		_, err := New[int64](WithInitialSegmentBits(0))
		require.ErrorIs(t, err, segcoll.ErrInvalidArgument)
	})

	t.Run("max below initial", func(t *testing.T) {
		_, err := New[int64](WithMaxSegmentBits(3))
		require.ErrorIs(t, err, segcoll.ErrInvalidArgument)

		var iae *segcoll.IllegalArgumentError
		require.ErrorAs(t, err, &iae)
		assert.Equal(t, "maxSegmentBits", iae.Name)
	})

	t.Run("nil env", func(t *testing.T) {
		_, err := NewWithEnv[int64](nil)
		require.ErrorIs(t, err, segcoll.ErrInvalidArgument)
	})
}

func TestArray_Growth(t *testing.T) {
	a, err := New[int32](WithInvariantChecks(true))
	require.NoError(t, err)

	for i := range 16 {
		a.Add(int32(i))
	}
	assert.Equal(t, 16, a.SegmentSize())
	assert.Equal(t, 1, a.Index().Len())

	a.Add(16)
	assert.Equal(t, 32, a.SegmentSize())
	assert.Equal(t, 1, a.Index().Len())

	for i := 17; i < 1024; i++ {
		a.Add(int32(i))
	}
	assert.Equal(t, 1024, a.SegmentSize())
	assert.Equal(t, 1, a.Index().Len())

	for i := 1024; i < 3000; i++ {
		a.Add(int32(i))
	}
	assert.Equal(t, 1024, a.SegmentSize())
	assert.Equal(t, 3, a.Index().Len())
	assert.Equal(t, 3072, a.Cap())
	require.NoError(t, a.Verify())

	for i := range 3000 {
		v, err := a.Get(i)
		require.NoError(t, err)
		require.Equal(t, int32(i), v)
	}
}

func TestArray_InsertFront(t *testing.T) {
	a, err := New[int64](WithInvariantChecks(true))
	require.NoError(t, err)

	for i := range 10000 {
		require.NoError(t, a.Insert(0, int64(i)))
	}

	require.Equal(t, 10000, a.Len())
	for i := range 10000 {
		v, err := a.Get(i)
		require.NoError(t, err)
		require.Equal(t, int64(9999-i), v)
	}
}

func TestArray_AddFirstAndRemove(t *testing.T) {
	a, err := New[uint64](WithInvariantChecks(true))
	require.NoError(t, err)

	a.AddFirst(2)
	a.AddFirst(1)
	a.Add(3)
	assert.Equal(t, "(1, 2, 3)", a.String())

	v, err := a.RemoveFirst()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)

	v, err = a.RemoveLast()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), v)

	v, err = a.RemoveAt(0)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), v)
	assert.Equal(t, "()", a.String())

	_, err = a.RemoveFirst()
	require.ErrorIs(t, err, segcoll.ErrOutOfBounds)
}

func TestArray_Bounds(t *testing.T) {
	a, err := FromSlice([]int64{1, 2, 3})
	require.NoError(t, err)

	_, err = a.Get(3)
	require.ErrorIs(t, err, segcoll.ErrOutOfBounds)

	var be *segcoll.BoundsError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, 3, be.Index)
	assert.Equal(t, 3, be.Size)

	require.ErrorIs(t, a.Set(-1, 0), segcoll.ErrOutOfBounds)
	require.ErrorIs(t, a.Insert(4, 0), segcoll.ErrOutOfBounds)
	require.ErrorIs(t, a.RemoveRange(2, 1), segcoll.ErrOutOfBounds)
	require.ErrorIs(t, a.RemoveRange(0, 4), segcoll.ErrOutOfBounds)

	_, err = a.CloneRange(1, 5)
	require.ErrorIs(t, err, segcoll.ErrOutOfBounds)

	// Insert at Len appends.
	require.NoError(t, a.Insert(3, 4))
	assert.Equal(t, []int64{1, 2, 3, 4}, a.ToSlice())
}

func TestArray_RemoveRange(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
	}{
		{"prefix", 0, 700},
		{"suffix", 2300, 3000},
		{"middle near front", 10, 1500},
		{"middle near back", 1500, 2990},
		{"single", 1024, 1025},
		{"empty", 5, 5},
		{"all", 0, 3000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := NewCountingEnv[int64](nil)
			a, err := NewWithEnv(env, WithInvariantChecks(true))
			require.NoError(t, err)
			a.AddAll(seq(3000)...)

			require.NoError(t, a.RemoveRange(tt.from, tt.to))

			want := slices.Delete(seq(3000), tt.from, tt.to)
			assert.Equal(t, want, a.ToSlice())
			assert.LessOrEqual(t, env.Stats().LiveSegments(), len(want)/1024+2)
		})
	}
}

func TestArray_InsertAll(t *testing.T) {
	a, err := New[int64](WithInvariantChecks(true), WithInitialSegmentBits(2), WithMaxSegmentBits(4))
	require.NoError(t, err)
	a.AddAll(seq(40)...)

	require.NoError(t, a.InsertAll(13, 100, 101, 102, 103, 104, 105, 106, 107, 108, 109, 110, 111, 112, 113, 114, 115, 116, 117))
	require.NoError(t, a.InsertAll(a.Len()))

	want := slices.Insert(seq(40), 13, 100, 101, 102, 103, 104, 105, 106, 107, 108, 109, 110, 111, 112, 113, 114, 115, 116, 117)
	assert.Equal(t, want, a.ToSlice())
}

// TestArray_RandomOps replays random operations against a plain slice.
func TestArray_RandomOps(t *testing.T) {
	for _, seed := range []int64{1, 42, 4711} {
		rng := testutil.NewRNG(seed)
		a, err := New[int64](WithInvariantChecks(true), WithInitialSegmentBits(2), WithMaxSegmentBits(4))
		require.NoError(t, err)
		var ref []int64

		for step := range 5000 {
			v := int64(step)
			switch rng.Choose(4, 3, 3, 3, 1, 2, 1) {
			case 0:
				a.Add(v)
				ref = append(ref, v)
			case 1:
				a.AddFirst(v)
				ref = slices.Insert(ref, 0, v)
			case 2:
				i := rng.Intn(len(ref) + 1)
				require.NoError(t, a.Insert(i, v))
				ref = slices.Insert(ref, i, v)
			case 3:
				if len(ref) == 0 {
					continue
				}
				i := rng.Intn(len(ref))
				got, err := a.RemoveAt(i)
				require.NoError(t, err)
				require.Equal(t, ref[i], got)
				ref = slices.Delete(ref, i, i+1)
			case 4:
				from := rng.Intn(len(ref) + 1)
				to := from + rng.Intn(len(ref)-from+1)
				require.NoError(t, a.RemoveRange(from, to))
				ref = slices.Delete(ref, from, to)
			case 5:
				if len(ref) == 0 {
					continue
				}
				i := rng.Intn(len(ref))
				require.NoError(t, a.Set(i, -v))
				ref[i] = -v
			case 6:
				vals := testutil.Values[int64](rng, rng.Intn(40), 1000)
				i := rng.Intn(len(ref) + 1)
				require.NoError(t, a.InsertAll(i, vals...))
				ref = slices.Insert(ref, i, vals...)
			}
			require.Equal(t, len(ref), a.Len(), "seed %d step %d", seed, step)
		}
		assert.Equal(t, ref, a.ToSlice(), "seed %d", seed)
	}
}

func TestArray_CloneIndependence(t *testing.T) {
	a, err := FromSlice(seq(5000), WithInvariantChecks(true))
	require.NoError(t, err)
	c := a.Clone()
	assert.True(t, a.Equal(c))
	assert.Equal(t, 2, a.Index().Refs())

	require.NoError(t, c.Set(0, -1))
	c.Add(5000)
	_, err = c.RemoveAt(2500)
	require.NoError(t, err)

	assert.Equal(t, seq(5000), a.ToSlice())
	require.NoError(t, a.Verify())
	require.NoError(t, c.Verify())

	a.AddFirst(-2)
	v, err := c.Get(0)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), v)
	assert.False(t, a.Equal(c))
}

func TestArray_CloneSetAllocatesOneSegment(t *testing.T) {
	env := NewCountingEnv[int64](nil)
	metrics := &segcoll.BasicMetricsCollector{}
	a, err := NewWithEnv(env, WithMetrics(metrics))
	require.NoError(t, err)
	a.AddAll(seq(4096)...)
	env.Reset()

	c := a.Clone()
	assert.Equal(t, 0, env.Stats().SegmentAllocs)

	require.NoError(t, c.Set(2000, 7))

	stats := env.Stats()
	assert.Equal(t, 1, stats.SegmentAllocs)
	assert.Equal(t, 1, stats.TableAllocs)
	assert.Equal(t, 1024, stats.CopiedElements)

	assert.Equal(t, int64(1), metrics.GetStats().SegmentCopies)
	assert.Equal(t, int64(1), metrics.GetStats().IndexCopies)

	assert.Equal(t, 1, a.Index().Refs())
	assert.Equal(t, 2, a.Index().Segment(0).Refs())
	assert.Equal(t, 1, a.Index().Segment(1).Refs())
	assert.Same(t, a.Index().Segment(3), c.Index().Segment(3))

	v, _ := a.Get(2000)
	assert.Equal(t, int64(2000), v)
	v, _ = c.Get(2000)
	assert.Equal(t, int64(7), v)
}

func TestArray_CloneRange(t *testing.T) {
	env := NewCountingEnv[int64](nil)
	a, err := NewWithEnv(env, WithInvariantChecks(true))
	require.NoError(t, err)
	a.AddAll(seq(4096)...)
	env.Reset()

	c, err := a.CloneRange(1000, 2100)
	require.NoError(t, err)

	assert.Equal(t, 0, env.Stats().SegmentAllocs)
	assert.Equal(t, seq(4096)[1000:2100], c.ToSlice())
	assert.Equal(t, 3, c.Index().Len())
	for i := range 3 {
		assert.Equal(t, 2, a.Index().Segment(i).Refs())
	}
	assert.Equal(t, 1, a.Index().Segment(3).Refs())

	require.NoError(t, c.Set(0, -1))
	assert.Equal(t, 1, env.Stats().SegmentAllocs)
	v, _ := a.Get(1000)
	assert.Equal(t, int64(1000), v)

	empty, err := a.CloneRange(7, 7)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
}

func TestArray_Release(t *testing.T) {
	env := NewCountingEnv[int64](nil)
	a, err := NewWithEnv(env)
	require.NoError(t, err)
	a.AddAll(seq(5000)...)

	c := a.Clone()
	require.NoError(t, c.Set(10, 10))
	r, err := a.CloneRange(100, 3000)
	require.NoError(t, err)

	a.Release()
	assert.Equal(t, 0, a.Len())
	assert.Positive(t, env.Stats().LiveSegments())

	c.Release()
	r.Release()

	stats := env.Stats()
	assert.Equal(t, 0, stats.LiveSegments())
	assert.Equal(t, 0, stats.LiveTables())

	// A released array is usable again.
	a.Add(1)
	assert.Equal(t, []int64{1}, a.ToSlice())
}

func TestArray_InsertFrontMovesNoElements(t *testing.T) {
	env := NewCountingEnv[int64](nil)
	a, err := NewWithEnv(env, WithInvariantChecks(true))
	require.NoError(t, err)
	a.AddAll(seq(4096)...)
	env.Reset()

	require.NoError(t, a.Insert(0, -1))

	stats := env.Stats()
	assert.Equal(t, 0, stats.CopiedElements)
	assert.Equal(t, 1, stats.SegmentAllocs)

	require.NoError(t, a.Insert(0, -2))
	assert.Equal(t, 0, env.Stats().CopiedElements)
	assert.Equal(t, 1, env.Stats().SegmentAllocs)
	assert.Equal(t, append([]int64{-2, -1}, seq(4096)...), a.ToSlice())
}

func TestArray_ClearAndString(t *testing.T) {
	a, err := FromSlice([]int32{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, "(1, 2, 3)", a.String())

	a.Clear()
	assert.Equal(t, 0, a.Len())
	assert.Equal(t, 0, a.Cap())
	assert.Equal(t, "()", a.String())
	require.NoError(t, a.Verify())
}

func TestArray_OffHeapEnv(t *testing.T) {
	env := NewOffHeapEnv[int64]()
	a, err := NewWithEnv[int64](env, WithInvariantChecks(true))
	require.NoError(t, err)

	a.AddAll(seq(5000)...)
	c := a.Clone()
	require.NoError(t, c.Set(0, -1))

	assert.Equal(t, seq(5000), a.ToSlice())
	assert.Positive(t, env.Live())

	a.Release()
	c.Release()
	assert.Equal(t, 0, env.Live())
}

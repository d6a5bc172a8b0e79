package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocOffHeap(t *testing.T) {
	sizes := []int{1, 16, 1000, 1024, 4097}

	for _, size := range sizes {
		buf, err := AllocOffHeap[int64](size)
		require.NoError(t, err)

		s := buf.Slice()
		require.Len(t, s, size)
		for i := range s {
			require.Zero(t, s[i])
			s[i] = int64(i)
		}
		assert.Equal(t, int64(size-1), s[size-1])

		require.NoError(t, buf.Free())
		assert.Nil(t, buf.Slice())
		assert.ErrorIs(t, buf.Free(), ErrFreed)
	}
}

func TestAllocOffHeap_Invalid(t *testing.T) {
	_, err := AllocOffHeap[uint32](0)
	assert.Error(t, err)

	_, err = AllocOffHeap[uint32](-5)
	assert.Error(t, err)
}

func BenchmarkAllocOffHeap(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		buf, err := AllocOffHeap[int32](1024)
		if err != nil {
			b.Fatal(err)
		}
		_ = buf.Free()
	}
}

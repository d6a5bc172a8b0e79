package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToUint32(t *testing.T) {
	t.Run("valid zero", func(t *testing.T) {
		got, err := ToUint32(int64(0))
		assert.NoError(t, err)
		assert.Equal(t, uint32(0), got)
	})

	t.Run("valid max uint32 from int64", func(t *testing.T) {
		got, err := ToUint32(int64(math.MaxUint32))
		assert.NoError(t, err)
		assert.Equal(t, uint32(math.MaxUint32), got)
	})

	t.Run("valid int32", func(t *testing.T) {
		got, err := ToUint32(int32(123))
		assert.NoError(t, err)
		assert.Equal(t, uint32(123), got)
	})

	t.Run("invalid negative", func(t *testing.T) {
		_, err := ToUint32(int32(-1))
		assert.Error(t, err)
	})

	t.Run("invalid too large", func(t *testing.T) {
		_, err := ToUint32(uint64(math.MaxUint32) + 1)
		assert.Error(t, err)
	})
}

func TestFromUint32(t *testing.T) {
	t.Run("int64 always fits", func(t *testing.T) {
		got, err := FromUint32[int64](math.MaxUint32)
		assert.NoError(t, err)
		assert.Equal(t, int64(math.MaxUint32), got)
	})

	t.Run("int32 fits", func(t *testing.T) {
		got, err := FromUint32[int32](math.MaxInt32)
		assert.NoError(t, err)
		assert.Equal(t, int32(math.MaxInt32), got)
	})

	t.Run("int32 overflow", func(t *testing.T) {
		_, err := FromUint32[int32](math.MaxInt32 + 1)
		assert.Error(t, err)
	})

	t.Run("uint32 identity", func(t *testing.T) {
		got, err := FromUint32[uint32](42)
		assert.NoError(t, err)
		assert.Equal(t, uint32(42), got)
	})
}

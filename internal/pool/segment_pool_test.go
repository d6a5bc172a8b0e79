package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegments_GetPut(t *testing.T) {
	p := New[int64]()

	buf := p.Get(16)
	assert.Len(t, buf, 16)
	buf[3] = 7
	p.Put(buf)

	// sync.Pool may drop entries at any time, so only the contents of a
	// returned buffer are checked.
	again := p.Get(16)
	assert.Len(t, again, 16)
	assert.Equal(t, make([]int64, 16), again)

	stats := p.Stats()
	assert.Equal(t, int64(2), stats.Hits+stats.Misses)
}

func TestSegments_OddSizes(t *testing.T) {
	p := New[uint32]()

	buf := p.Get(10)
	assert.Len(t, buf, 10)
	p.Put(buf)
	p.Put(nil)
	assert.Equal(t, int64(1), p.Stats().Misses)
}

func TestClass(t *testing.T) {
	c, ok := class(1024)
	assert.True(t, ok)
	assert.Equal(t, 10, c)

	_, ok = class(12)
	assert.False(t, ok)
	_, ok = class(0)
	assert.False(t, ok)
	_, ok = class(1 << (MaxClass + 1))
	assert.False(t, ok)
}

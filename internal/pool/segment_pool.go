// Package pool recycles segment buffers through per-size sync.Pools.
package pool

import (
	"math/bits"
	"sync"
	"sync/atomic"

	"github.com/hupe1980/segcoll/core"
)

// MaxClass is the largest pooled buffer size exponent.
const MaxClass = 24

// Segments pools power-of-two sized buffers. Buffers of any other size are
// allocated and dropped normally.
type Segments[T core.Integer] struct {
	classes [MaxClass + 1]sync.Pool

	hits   atomic.Int64
	misses atomic.Int64
}

// New creates an empty pool.
func New[T core.Integer]() *Segments[T] {
	return &Segments[T]{}
}

func class(size int) (int, bool) {
	if size <= 0 || size&(size-1) != 0 {
		return 0, false
	}
	c := bits.Len(uint(size)) - 1
	return c, c <= MaxClass
}

// Get returns a zeroed buffer of length size.
func (p *Segments[T]) Get(size int) []T {
	if c, ok := class(size); ok {
		if v := p.classes[c].Get(); v != nil {
			p.hits.Add(1)
			buf := *(v.(*[]T))
			clear(buf)
			return buf
		}
	}
	p.misses.Add(1)
	return make([]T, size)
}

// Put hands buf back for reuse. The caller must not touch buf afterwards.
func (p *Segments[T]) Put(buf []T) {
	c, ok := class(len(buf))
	if !ok {
		return
	}
	buf = buf[:len(buf):len(buf)]
	p.classes[c].Put(&buf)
}

// Stats reports how many Get calls were served from the pool.
type Stats struct {
	Hits   int64
	Misses int64
}

// Stats returns the hit and miss counters.
func (p *Segments[T]) Stats() Stats {
	return Stats{Hits: p.hits.Load(), Misses: p.misses.Load()}
}

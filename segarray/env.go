package segarray

import (
	"unsafe"

	"github.com/hupe1980/segcoll/core"
	"github.com/hupe1980/segcoll/internal/mem"
	"github.com/hupe1980/segcoll/internal/pool"
)

// Environment is the allocation capability an Array draws its storage from.
//
// FreeSegment and FreeTable are called exactly once for every buffer whose
// last reference is dropped; callers never touch a buffer after freeing it.
type Environment[T core.Integer] interface {
	AllocSegment(size int) []T
	FreeSegment(buf []T)
	AllocTable(slots int) []*Segment[T]
	FreeTable(table []*Segment[T])
	Copy(dst, src []T) int
}

// HeapEnv allocates from the Go heap with no pooling.
type HeapEnv[T core.Integer] struct{}

func (HeapEnv[T]) AllocSegment(size int) []T { return make([]T, size) }

func (HeapEnv[T]) FreeSegment([]T) {}

func (HeapEnv[T]) AllocTable(slots int) []*Segment[T] { return make([]*Segment[T], slots) }

func (HeapEnv[T]) FreeTable(table []*Segment[T]) { clear(table) }

func (HeapEnv[T]) Copy(dst, src []T) int { return copy(dst, src) }

// EnvStats is a point-in-time view of CountingEnv counters.
type EnvStats struct {
	SegmentAllocs  int
	SegmentFrees   int
	TableAllocs    int
	TableFrees     int
	CopyCalls      int
	CopiedElements int
}

// LiveSegments returns the number of allocated but not yet freed segments.
func (s EnvStats) LiveSegments() int { return s.SegmentAllocs - s.SegmentFrees }

// LiveTables returns the number of allocated but not yet freed tables.
func (s EnvStats) LiveTables() int { return s.TableAllocs - s.TableFrees }

// CountingEnv wraps another Environment and counts every call.
// Used to verify sharing and release behavior in tests.
type CountingEnv[T core.Integer] struct {
	inner Environment[T]
	stats EnvStats
}

// NewCountingEnv wraps inner. If inner is nil, HeapEnv is used.
func NewCountingEnv[T core.Integer](inner Environment[T]) *CountingEnv[T] {
	if inner == nil {
		inner = HeapEnv[T]{}
	}
	return &CountingEnv[T]{inner: inner}
}

func (c *CountingEnv[T]) AllocSegment(size int) []T {
	c.stats.SegmentAllocs++
	return c.inner.AllocSegment(size)
}

func (c *CountingEnv[T]) FreeSegment(buf []T) {
	c.stats.SegmentFrees++
	c.inner.FreeSegment(buf)
}

func (c *CountingEnv[T]) AllocTable(slots int) []*Segment[T] {
	c.stats.TableAllocs++
	return c.inner.AllocTable(slots)
}

func (c *CountingEnv[T]) FreeTable(table []*Segment[T]) {
	c.stats.TableFrees++
	c.inner.FreeTable(table)
}

func (c *CountingEnv[T]) Copy(dst, src []T) int {
	c.stats.CopyCalls++
	n := c.inner.Copy(dst, src)
	c.stats.CopiedElements += n
	return n
}

// Stats returns the counters collected so far.
func (c *CountingEnv[T]) Stats() EnvStats { return c.stats }

// Reset zeroes all counters.
func (c *CountingEnv[T]) Reset() { c.stats = EnvStats{} }

// OffHeapEnv places segment buffers in anonymous memory mappings.
//
// Tables hold Go pointers and stay on the heap. If a mapping cannot be
// created the segment falls back to a heap buffer, which FreeSegment then
// leaves to the garbage collector.
type OffHeapEnv[T core.Integer] struct {
	buffers map[*T]*mem.OffHeap[T]
}

// NewOffHeapEnv creates an empty off-heap environment.
func NewOffHeapEnv[T core.Integer]() *OffHeapEnv[T] {
	return &OffHeapEnv[T]{buffers: make(map[*T]*mem.OffHeap[T])}
}

func (e *OffHeapEnv[T]) AllocSegment(size int) []T {
	buf, err := mem.AllocOffHeap[T](size)
	if err != nil {
		return make([]T, size)
	}
	data := buf.Slice()
	e.buffers[unsafe.SliceData(data)] = buf
	return data
}

func (e *OffHeapEnv[T]) FreeSegment(data []T) {
	key := unsafe.SliceData(data)
	buf, ok := e.buffers[key]
	if !ok {
		return
	}
	delete(e.buffers, key)
	_ = buf.Free()
}

func (e *OffHeapEnv[T]) AllocTable(slots int) []*Segment[T] { return make([]*Segment[T], slots) }

func (e *OffHeapEnv[T]) FreeTable(table []*Segment[T]) { clear(table) }

func (e *OffHeapEnv[T]) Copy(dst, src []T) int { return copy(dst, src) }

// Live returns the number of mapped segments not yet freed.
func (e *OffHeapEnv[T]) Live() int { return len(e.buffers) }

// PooledEnv recycles segment buffers through a sync.Pool per segment size.
// Freed segments are reused by later allocations of the same size.
type PooledEnv[T core.Integer] struct {
	segments *pool.Segments[T]
}

// NewPooledEnv creates a pooled environment.
func NewPooledEnv[T core.Integer]() *PooledEnv[T] {
	return &PooledEnv[T]{segments: pool.New[T]()}
}

func (e *PooledEnv[T]) AllocSegment(size int) []T { return e.segments.Get(size) }

func (e *PooledEnv[T]) FreeSegment(buf []T) { e.segments.Put(buf) }

func (e *PooledEnv[T]) AllocTable(slots int) []*Segment[T] { return make([]*Segment[T], slots) }

func (e *PooledEnv[T]) FreeTable(table []*Segment[T]) { clear(table) }

func (e *PooledEnv[T]) Copy(dst, src []T) int { return copy(dst, src) }

// Reused returns how many segment allocations were served from the pool.
func (e *PooledEnv[T]) Reused() int64 { return e.segments.Stats().Hits }

package segarray

import "github.com/hupe1980/segcoll/core"

// Segment is a fixed-size buffer plus the number of tables referencing it.
// It is the unit of sharing between arrays.
type Segment[T core.Integer] struct {
	data []T
	refs int
}

// Len returns the segment size.
func (s *Segment[T]) Len() int { return len(s.data) }

// Refs returns the number of tables referencing the segment.
func (s *Segment[T]) Refs() int { return s.refs }

// SegmentIndex is the ordered table of segment slots. Slots beyond count are
// unused capacity. refs counts the arrays sharing this table and is
// independent of the segment reference counts.
type SegmentIndex[T core.Integer] struct {
	slots []*Segment[T]
	count int
	refs  int
}

// Len returns the number of active slots.
func (ix *SegmentIndex[T]) Len() int { return ix.count }

// Refs returns the number of arrays sharing the table.
func (ix *SegmentIndex[T]) Refs() int { return ix.refs }

// Segment returns the segment in slot i.
func (ix *SegmentIndex[T]) Segment(i int) *Segment[T] { return ix.slots[i] }

func (a *Array[T]) newSegment(size int) *Segment[T] {
	a.metrics.RecordSegmentAlloc(size)
	return &Segment[T]{data: a.env.AllocSegment(size), refs: 1}
}

func (a *Array[T]) releaseSegment(s *Segment[T]) {
	s.refs--
	if s.refs == 0 {
		a.env.FreeSegment(s.data)
		s.data = nil
	}
}

func (a *Array[T]) releaseIndex(ix *SegmentIndex[T]) {
	ix.refs--
	if ix.refs > 0 {
		return
	}
	for _, s := range ix.slots[:ix.count] {
		a.releaseSegment(s)
	}
	a.env.FreeTable(ix.slots)
	ix.slots = nil
	ix.count = 0
}

// ensureIndexUnique gives the array a private table before any slot is rebound.
func (a *Array[T]) ensureIndexUnique() {
	ix := a.index
	if ix == nil || ix.refs == 1 {
		return
	}
	slots := a.env.AllocTable(len(ix.slots))
	copy(slots, ix.slots[:ix.count])
	for _, s := range slots[:ix.count] {
		s.refs++
	}
	ix.refs--
	a.index = &SegmentIndex[T]{slots: slots, count: ix.count, refs: 1}
	a.metrics.RecordCopyOnWrite("index")
}

// writable returns the data of segment si, copying it first if it is shared.
func (a *Array[T]) writable(si int) []T {
	a.ensureIndexUnique()
	s := a.index.slots[si]
	if s.refs == 1 {
		return s.data
	}
	c := a.newSegment(len(s.data))
	a.env.Copy(c.data, s.data)
	s.refs--
	a.index.slots[si] = c
	a.layout.Bump()
	a.metrics.RecordCopyOnWrite("segment")
	return c.data
}

// writableRange makes every segment overlapping absolute positions [from, to) private.
func (a *Array[T]) writableRange(from, to int) {
	if to <= from {
		return
	}
	for si := from >> a.bits; si <= (to-1)>>a.bits; si++ {
		a.writable(si)
	}
}

// growTable makes room for need active slots, keeping existing slots at
// offset shift in the new table.
func (a *Array[T]) growTable(need, shift int) {
	ix := a.index
	if need <= len(ix.slots) {
		if shift > 0 {
			copy(ix.slots[shift:shift+ix.count], ix.slots[:ix.count])
		}
		return
	}
	grown := a.env.AllocTable(max(need, 2*len(ix.slots)))
	copy(grown[shift:], ix.slots[:ix.count])
	a.env.FreeTable(ix.slots)
	ix.slots = grown
}

func (a *Array[T]) appendSegments(k int) {
	if k == 0 {
		return
	}
	a.ensureIndexUnique()
	ix := a.index
	need := ix.count + k
	a.growTable(need, 0)
	for i := ix.count; i < need; i++ {
		ix.slots[i] = a.newSegment(a.segSize())
	}
	ix.count = need
	a.right += k << a.bits
	a.layout.Bump()
}

func (a *Array[T]) prependSegments(k int) {
	if k == 0 {
		return
	}
	a.ensureIndexUnique()
	ix := a.index
	need := ix.count + k
	a.growTable(need, k)
	for i := 0; i < k; i++ {
		ix.slots[i] = a.newSegment(a.segSize())
	}
	ix.count = need
	a.left += k << a.bits
	a.layout.Bump()
}

func (a *Array[T]) dropFront(k int) {
	if k == 0 {
		return
	}
	a.ensureIndexUnique()
	ix := a.index
	for _, s := range ix.slots[:k] {
		a.releaseSegment(s)
	}
	copy(ix.slots, ix.slots[k:ix.count])
	clear(ix.slots[ix.count-k : ix.count])
	ix.count -= k
	a.left -= k << a.bits
	a.layout.Bump()
}

func (a *Array[T]) dropBack(k int) {
	if k == 0 {
		return
	}
	a.ensureIndexUnique()
	ix := a.index
	for _, s := range ix.slots[ix.count-k : ix.count] {
		a.releaseSegment(s)
	}
	clear(ix.slots[ix.count-k : ix.count])
	ix.count -= k
	a.right -= k << a.bits
	a.layout.Bump()
}

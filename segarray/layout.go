package segarray

import (
	"context"

	"github.com/hupe1980/segcoll/core"
)

func ceilDiv(a, b int) int { return (a + b - 1) / b }

// spanSegments counts the segments overlapping absolute positions [from, to).
func (a *Array[T]) spanSegments(from, to int) int {
	if to <= from {
		return 0
	}
	return (to-1)>>a.bits - from>>a.bits + 1
}

// shiftPlan is the cost of opening or closing a gap from one side.
type shiftPlan struct {
	touched int // segments read or written
	allocs  int // new segments required
	moved   int // elements moved
}

func (p shiftPlan) cheaper(q shiftPlan) bool {
	if p.touched != q.touched {
		return p.touched < q.touched
	}
	if p.allocs != q.allocs {
		return p.allocs < q.allocs
	}
	return p.moved < q.moved
}

// planExpand reports whether opening n slots at index should shift the
// prefix to the left, and how many segments the chosen side needs.
func (a *Array[T]) planExpand(index, n int) (left bool, allocs int) {
	S := a.segSize()

	needR := ceilDiv(max(0, n-a.right), S)
	right := shiftPlan{
		touched: a.spanSegments(a.left+index, a.left+a.size+n),
		allocs:  needR,
		moved:   a.size - index,
	}

	needL := ceilDiv(max(0, n-a.left), S)
	start := a.left + needL*S - n
	leftPlan := shiftPlan{
		touched: a.spanSegments(start, start+index+n),
		allocs:  needL,
		moved:   index,
	}

	// Ties default to a right shift.
	if leftPlan.cheaper(right) {
		return true, needL
	}
	return false, needR
}

// expand opens n uninitialized slots at logical index and grows the size.
func (a *Array[T]) expand(index, n int) {
	if n == 0 {
		return
	}
	if a.index == nil || (a.bits < a.maxBits && a.size+n > a.Cap()) {
		bits := a.bits
		for bits < a.maxBits && a.size+n > 1<<bits {
			bits++
		}
		a.relayout(bits, index, n)
		return
	}

	toLeft, allocs := a.planExpand(index, n)
	if toLeft {
		a.prependSegments(allocs)
		start := a.left - n
		a.writableRange(start, start+index+n)
		a.moveAbs(start, a.left, index)
		a.left = start
	} else {
		a.appendSegments(allocs)
		a.writableRange(a.left+index, a.left+a.size+n)
		a.moveAbs(a.left+index+n, a.left+index, a.size-index)
		a.right -= n
	}
	a.size += n
	a.mod.Bump()
}

// shrink closes the gap [from, to) from whichever side moves fewer segments
// and releases segments that became pure slack.
func (a *Array[T]) shrink(from, to int) {
	n := to - from
	if n == 0 {
		return
	}
	if n == a.size {
		a.reset()
		return
	}

	var prefix, suffix shiftPlan
	if from > 0 {
		prefix = shiftPlan{touched: a.spanSegments(a.left, a.left+to), moved: from}
	}
	if to < a.size {
		suffix = shiftPlan{touched: a.spanSegments(a.left+from, a.left+a.size), moved: a.size - to}
	}

	if prefix.cheaper(suffix) {
		a.writableRange(a.left+n, a.left+to)
		a.moveAbs(a.left+n, a.left, from)
		a.left += n
		a.size -= n
		a.dropFront(a.left >> a.bits)
	} else {
		a.writableRange(a.left+from, a.left+a.size-n)
		a.moveAbs(a.left+from, a.left+to, a.size-to)
		a.right += n
		a.size -= n
		a.dropBack(a.right >> a.bits)
	}
	a.mod.Bump()
}

// relayout rebuilds the array with segments of 1<<bits elements and a gap of
// n slots at index. With a segment size large enough for all elements the
// result is a single segment.
func (a *Array[T]) relayout(bits uint, index, n int) {
	oldCap := a.Cap()
	S := 1 << bits
	total := a.size + n
	count := ceilDiv(total, S)
	slack := count*S - total

	left := 0
	if index == 0 && a.size > 0 {
		// Front-heavy growth keeps the slack where the next insert lands.
		left = slack
	}

	slots := a.env.AllocTable(count)
	for i := range slots[:count] {
		slots[i] = a.newSegment(S)
	}
	dst := &SegmentIndex[T]{slots: slots, count: count, refs: 1}

	if a.index != nil {
		copyRuns(a.env,
			runs[T]{ix: dst, bits: bits, left: left}, 0,
			runs[T]{ix: a.index, bits: a.bits, left: a.left}, 0,
			index)
		copyRuns(a.env,
			runs[T]{ix: dst, bits: bits, left: left}, index+n,
			runs[T]{ix: a.index, bits: a.bits, left: a.left}, index,
			a.size-index)
		a.releaseIndex(a.index)
	}

	a.index = dst
	a.bits = bits
	a.size = total
	a.left = left
	a.right = count*S - total - left
	a.mod.Bump()
	a.layout.Bump()

	a.metrics.RecordGrow("segarray", a.Cap())
	a.logger.WithSize(a.size).LogGrow(context.Background(), "segment_size", oldCap, a.Cap())
}

// moveAbs moves n elements between absolute positions, handling overlap.
// Destination segments must already be writable.
func (a *Array[T]) moveAbs(dst, src, n int) {
	if n == 0 || dst == src {
		return
	}
	mask := a.mask()
	slots := a.index.slots

	if dst > src {
		for n > 0 {
			se, de := src+n, dst+n
			sOff := (se-1)&mask + 1
			dOff := (de-1)&mask + 1
			c := min(n, sOff, dOff)
			a.env.Copy(slots[(de-1)>>a.bits].data[dOff-c:dOff], slots[(se-1)>>a.bits].data[sOff-c:sOff])
			n -= c
		}
		return
	}

	S := a.segSize()
	for n > 0 {
		sOff := src & mask
		dOff := dst & mask
		c := min(n, S-sOff, S-dOff)
		a.env.Copy(slots[dst>>a.bits].data[dOff:dOff+c], slots[src>>a.bits].data[sOff:sOff+c])
		src += c
		dst += c
		n -= c
	}
}

// writeRun stores vals at logical index, segment by segment.
func (a *Array[T]) writeRun(index int, vals []T) {
	mask := a.mask()
	for len(vals) > 0 {
		abs := a.left + index
		seg := a.writable(abs >> a.bits)[abs&mask:]
		c := a.env.Copy(seg, vals)
		vals = vals[c:]
		index += c
	}
}

// readRun copies elements starting at logical index into buf.
func (a *Array[T]) readRun(index int, buf []T) {
	r := runs[T]{ix: a.index, bits: a.bits, left: a.left}
	for len(buf) > 0 {
		c := a.env.Copy(buf, r.at(index))
		buf = buf[c:]
		index += c
	}
}

// runs addresses a table as contiguous per-segment slices.
type runs[T core.Integer] struct {
	ix   *SegmentIndex[T]
	bits uint
	left int
}

// at returns the slice from logical pos to the end of its segment.
func (r runs[T]) at(pos int) []T {
	abs := r.left + pos
	return r.ix.slots[abs>>r.bits].data[abs&(1<<r.bits-1):]
}

// copyRuns copies n elements between two layouts. dst segments must be private.
func copyRuns[T core.Integer](env Environment[T], dst runs[T], dstPos int, src runs[T], srcPos int, n int) {
	for n > 0 {
		d := dst.at(dstPos)
		s := src.at(srcPos)
		c := min(n, len(d), len(s))
		env.Copy(d[:c], s[:c])
		dstPos += c
		srcPos += c
		n -= c
	}
}

package window

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/hupe1980/segcoll"
	"github.com/hupe1980/segcoll/core"
)

// Window is a FIFO queue over a circular buffer.
type Window[T core.Integer] struct {
	buf  []T // len(buf) == capacity+1
	head int
	tail int

	// removed counts every element ever taken from the head. Together with
	// a logical offset it gives each element a stable sequence number.
	removed int

	mod core.Generation // structural changes, checked by All
	gen core.Generation // buffer reallocations, checked by Attach

	pinned []*PinnedIterator[T]

	logger  *segcoll.Logger
	metrics segcoll.MetricsCollector
	checks  bool
}

// New creates a window holding up to capacity elements before it grows.
// A capacity of 0 selects DefaultCapacity.
func New[T core.Integer](capacity int, optFns ...Option) (*Window[T], error) {
	if capacity < 0 {
		return nil, segcoll.NewIllegalArgumentError("capacity", capacity, "must not be negative")
	}
	if capacity == 0 {
		capacity = DefaultCapacity
	}
	o := options{
		logger:  segcoll.NoopLogger(),
		metrics: segcoll.NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(&o)
	}
	return &Window[T]{
		buf:     make([]T, capacity+1),
		logger:  o.logger.WithStructure("window"),
		metrics: o.metrics,
		checks:  o.checks,
	}, nil
}

func (w *Window[T]) slots() int { return len(w.buf) }

// abs maps a logical offset (which may be -1) to a buffer position.
func (w *Window[T]) abs(offset int) int {
	n := w.slots()
	return ((w.head+offset)%n + n) % n
}

// dist returns the forward distance from head to the buffer position p.
func (w *Window[T]) dist(p int) int {
	n := w.slots()
	return (p - w.head + n) % n
}

// Len returns the number of elements.
func (w *Window[T]) Len() int { return w.dist(w.tail) }

// Cap returns the number of elements the window holds before it grows.
func (w *Window[T]) Cap() int { return w.slots() - 1 }

// Peek returns the head element.
func (w *Window[T]) Peek() (T, error) {
	if w.head == w.tail {
		return 0, segcoll.ErrNotFound
	}
	return w.buf[w.head], nil
}

// Get returns the element at logical offset i from the head.
func (w *Window[T]) Get(i int) (T, error) {
	if err := segcoll.CheckIndex(i, w.Len()); err != nil {
		return 0, err
	}
	return w.buf[w.abs(i)], nil
}

// Add appends v at the tail, doubling the buffer if it is full.
func (w *Window[T]) Add(v T) {
	w.reserve(1)
	w.push(v)
	w.verify("add")
}

// AddAll appends vals in order, growing at most once.
func (w *Window[T]) AddAll(vals ...T) {
	if len(vals) == 0 {
		return
	}
	w.reserve(len(vals))
	for _, v := range vals {
		w.push(v)
	}
	w.verify("add_all")
}

func (w *Window[T]) push(v T) {
	w.buf[w.tail] = v
	w.tail = (w.tail + 1) % w.slots()
	w.mod.Bump()
}

// reserve grows the buffer until n more elements fit.
func (w *Window[T]) reserve(n int) {
	size := w.Len()
	if size+n <= w.Cap() {
		return
	}
	capacity := w.Cap()
	for size+n > capacity {
		capacity *= 2
	}
	w.grow(capacity)
}

// grow moves the elements to the start of a buffer for capacity elements and
// rebases attached iterators through their logical offsets.
func (w *Window[T]) grow(capacity int) {
	oldCap := w.Cap()
	size := w.Len()

	offsets := make([]int, len(w.pinned))
	for i, it := range w.pinned {
		offsets[i] = it.offset()
	}

	buf := make([]T, capacity+1)
	if w.head <= w.tail {
		copy(buf, w.buf[w.head:w.tail])
	} else {
		n := copy(buf, w.buf[w.head:])
		copy(buf[n:], w.buf[:w.tail])
	}

	w.buf = buf
	w.head = 0
	w.tail = size
	w.mod.Bump()
	w.gen.Bump()

	for i, it := range w.pinned {
		it.pos = w.abs(offsets[i])
		it.gen = w.gen
	}

	w.metrics.RecordGrow("window", capacity)
	w.logger.WithSize(size).LogGrow(context.Background(), "window_capacity", oldCap, capacity)
}

// RemoveFirst removes and returns the head element.
func (w *Window[T]) RemoveFirst() (T, error) {
	if w.head == w.tail {
		return 0, segcoll.ErrNotFound
	}
	if err := w.guard("remove_first", 1); err != nil {
		return 0, err
	}
	v := w.buf[w.head]
	w.advance(1)
	w.verify("remove_first")
	return v, nil
}

// RemoveFirstN removes the n head elements. The call is all or nothing.
func (w *Window[T]) RemoveFirstN(n int) error {
	if n < 0 {
		return segcoll.NewIllegalArgumentError("n", n, "must not be negative")
	}
	if n == 0 {
		return nil
	}
	size := w.Len()
	if size == 0 {
		return segcoll.ErrNotFound
	}
	if n > size {
		return segcoll.NewBoundsError(n, size+1)
	}
	if err := w.guard("remove_first_n", n); err != nil {
		return err
	}
	w.advance(n)
	w.verify("remove_first_n")
	return nil
}

// Clear removes all elements. It is refused like RemoveFirstN(Len()).
func (w *Window[T]) Clear() error {
	size := w.Len()
	if size == 0 {
		return nil
	}
	if err := w.guard("clear", size); err != nil {
		return err
	}
	w.advance(size)
	w.verify("clear")
	return nil
}

func (w *Window[T]) advance(k int) {
	w.head = (w.head + k) % w.slots()
	w.removed += k
	w.mod.Bump()
}

// guard refuses the removal of k head elements if an attached iterator holds
// one of them, or would return one of them next. Positions are compared by
// forward distance from the head, so a wrapped buffer needs no special case.
func (w *Window[T]) guard(op string, k int) error {
	for _, it := range w.pinned {
		next := (it.pos + 1) % w.slots()
		if w.dist(it.pos) < k || w.dist(next) < k {
			blocker := max(it.offset(), 0)
			w.metrics.RecordBlockedRemoval()
			w.logger.LogBlocked(context.Background(), op, k, blocker)
			return &segcoll.StateError{
				Op:      op,
				Reason:  "element is held by a pinned iterator",
				Blocker: blocker,
			}
		}
	}
	return nil
}

// PinnedIterator creates an attached iterator positioned on the element at
// offset, or before the first element when offset is -1.
func (w *Window[T]) PinnedIterator(offset int) (*PinnedIterator[T], error) {
	if offset < -1 || offset >= w.Len() {
		return nil, segcoll.NewBoundsError(offset, w.Len())
	}
	it := &PinnedIterator[T]{
		w:        w,
		pos:      w.abs(offset),
		age:      offset + 1,
		gen:      w.gen,
		attached: true,
	}
	w.pinned = append(w.pinned, it)
	w.verify("pinned_iterator")
	return it, nil
}

func (w *Window[T]) unpin(it *PinnedIterator[T]) {
	w.pinned = slices.DeleteFunc(w.pinned, func(p *PinnedIterator[T]) bool { return p == it })
}

// ToSlice returns the elements from head to tail.
func (w *Window[T]) ToSlice() []T {
	out := make([]T, 0, w.Len())
	for i := w.head; i != w.tail; i = (i + 1) % w.slots() {
		out = append(out, w.buf[i])
	}
	return out
}

// All returns an iterator over the elements from head to tail.
// It panics with ErrConcurrentModification if the window is modified
// during iteration.
func (w *Window[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		mod := w.mod
		for i := 0; i < w.Len(); i++ {
			if w.mod != mod {
				panic(segcoll.ErrConcurrentModification)
			}
			if !yield(w.buf[w.abs(i)]) {
				return
			}
		}
	}
}

// String renders the elements as "(10, 11, 12*)", where * marks elements
// held by an attached pinned iterator.
func (w *Window[T]) String() string {
	held := make(map[int]bool, len(w.pinned))
	for _, it := range w.pinned {
		if it.age > 0 {
			held[it.pos] = true
		}
	}

	var sb strings.Builder
	sb.WriteByte('(')
	for i := 0; i < w.Len(); i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		p := w.abs(i)
		fmt.Fprintf(&sb, "%d", w.buf[p])
		if held[p] {
			sb.WriteByte('*')
		}
	}
	sb.WriteByte(')')
	return sb.String()
}

// Verify checks the buffer and pinned iterator invariants.
func (w *Window[T]) Verify() error {
	fail := func(format string, args ...any) error {
		return &segcoll.InvariantError{Structure: "window", Detail: fmt.Sprintf(format, args...)}
	}
	n := w.slots()
	if n < 2 {
		return fail("buffer has %d slots", n)
	}
	if w.head < 0 || w.head >= n || w.tail < 0 || w.tail >= n {
		return fail("head=%d tail=%d slots=%d", w.head, w.tail, n)
	}
	size := w.Len()
	for _, it := range w.pinned {
		if !it.attached {
			return fail("detached iterator in pinned list")
		}
		if it.gen != w.gen {
			return fail("iterator generation %d, window %d", it.gen, w.gen)
		}
		if it.age == 0 {
			if it.pos != w.abs(-1) {
				return fail("unadvanced iterator at %d, head=%d", it.pos, w.head)
			}
			continue
		}
		if off := it.offset(); off < 0 || off >= size {
			return fail("iterator offset %d outside [0, %d)", off, size)
		}
	}
	return nil
}

func (w *Window[T]) verify(op string) {
	if !w.checks {
		return
	}
	if err := w.Verify(); err != nil {
		err = fmt.Errorf("after %s: %w", op, err)
		w.logger.LogInvariant(context.Background(), err)
		panic(err)
	}
}

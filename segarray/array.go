package segarray

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/segcoll"
	"github.com/hupe1980/segcoll/core"
)

// Array is a segmented growable deque of integers.
// The zero value is not usable; create arrays with New or NewWithEnv.
type Array[T core.Integer] struct {
	env   Environment[T]
	index *SegmentIndex[T]

	bits    uint
	maxBits uint

	size  int
	left  int
	right int

	// mod counts structural changes and invalidates foreign iterators.
	mod core.Generation
	// layout counts slot rebinding so iterators can drop cached segments.
	layout core.Generation

	logger  *segcoll.Logger
	metrics segcoll.MetricsCollector
	checks  bool
}

// New creates an empty Array backed by the Go heap.
func New[T core.Integer](optFns ...Option) (*Array[T], error) {
	return NewWithEnv[T](HeapEnv[T]{}, optFns...)
}

// NewWithEnv creates an empty Array drawing storage from env.
func NewWithEnv[T core.Integer](env Environment[T], optFns ...Option) (*Array[T], error) {
	if env == nil {
		return nil, segcoll.NewIllegalArgumentError("env", env, "must not be nil")
	}
	o, err := buildOptions(optFns)
	if err != nil {
		return nil, err
	}
	return &Array[T]{
		env:     env,
		bits:    o.initialBits,
		maxBits: o.maxBits,
		logger:  o.logger.WithStructure("segarray"),
		metrics: o.metrics,
		checks:  o.checks,
	}, nil
}

// FromSlice creates an Array holding a copy of vals.
func FromSlice[T core.Integer](vals []T, optFns ...Option) (*Array[T], error) {
	a, err := New[T](optFns...)
	if err != nil {
		return nil, err
	}
	a.AddAll(vals...)
	return a, nil
}

func (a *Array[T]) segSize() int { return 1 << a.bits }

func (a *Array[T]) mask() int { return a.segSize() - 1 }

func (a *Array[T]) segCount() int {
	if a.index == nil {
		return 0
	}
	return a.index.count
}

// Len returns the number of elements.
func (a *Array[T]) Len() int { return a.size }

// Cap returns the number of element slots currently allocated.
func (a *Array[T]) Cap() int { return a.segCount() << a.bits }

// SegmentSize returns the current segment size.
func (a *Array[T]) SegmentSize() int { return a.segSize() }

// Index returns the segment table, or nil for an array without segments.
func (a *Array[T]) Index() *SegmentIndex[T] { return a.index }

func (a *Array[T]) at(i int) T {
	abs := a.left + i
	return a.index.slots[abs>>a.bits].data[abs&a.mask()]
}

func (a *Array[T]) store(i int, v T) {
	abs := a.left + i
	a.writable(abs >> a.bits)[abs&a.mask()] = v
}

// Get returns the element at index i.
func (a *Array[T]) Get(i int) (T, error) {
	if err := segcoll.CheckIndex(i, a.size); err != nil {
		return 0, err
	}
	return a.at(i), nil
}

// Set overwrites the element at index i, copying the touched segment first
// if it is shared with another array.
func (a *Array[T]) Set(i int, v T) error {
	if err := segcoll.CheckIndex(i, a.size); err != nil {
		return err
	}
	a.store(i, v)
	a.verify("set")
	return nil
}

// Add appends v.
func (a *Array[T]) Add(v T) {
	a.expand(a.size, 1)
	a.store(a.size-1, v)
	a.verify("add")
}

// AddFirst prepends v.
func (a *Array[T]) AddFirst(v T) {
	a.expand(0, 1)
	a.store(0, v)
	a.verify("add_first")
}

// AddAll appends vals in order.
func (a *Array[T]) AddAll(vals ...T) {
	_ = a.InsertAll(a.size, vals...)
}

// Insert places v at index, shifting later elements up by one.
func (a *Array[T]) Insert(index int, v T) error {
	if err := segcoll.CheckIndex(index, a.size+1); err != nil {
		return err
	}
	a.expand(index, 1)
	a.store(index, v)
	a.verify("insert")
	return nil
}

// InsertAll places vals starting at index.
func (a *Array[T]) InsertAll(index int, vals ...T) error {
	if err := segcoll.CheckIndex(index, a.size+1); err != nil {
		return err
	}
	if len(vals) == 0 {
		return nil
	}
	a.expand(index, len(vals))
	a.writeRun(index, vals)
	a.verify("insert_all")
	return nil
}

// RemoveAt removes and returns the element at index i.
func (a *Array[T]) RemoveAt(i int) (T, error) {
	if err := segcoll.CheckIndex(i, a.size); err != nil {
		return 0, err
	}
	v := a.at(i)
	a.shrink(i, i+1)
	a.verify("remove_at")
	return v, nil
}

// RemoveFirst removes and returns the first element.
func (a *Array[T]) RemoveFirst() (T, error) { return a.RemoveAt(0) }

// RemoveLast removes and returns the last element.
func (a *Array[T]) RemoveLast() (T, error) { return a.RemoveAt(a.size - 1) }

// RemoveRange removes the elements in [from, to).
func (a *Array[T]) RemoveRange(from, to int) error {
	if err := segcoll.CheckRange(from, to, a.size); err != nil {
		return err
	}
	a.shrink(from, to)
	a.verify("remove_range")
	return nil
}

// Clear removes all elements and releases all storage.
func (a *Array[T]) Clear() {
	a.reset()
}

// Release drops this array's references to its table and segments,
// freeing those no other array shares. The array is empty afterwards.
func (a *Array[T]) Release() {
	a.reset()
}

func (a *Array[T]) reset() {
	if a.index != nil {
		a.releaseIndex(a.index)
		a.index = nil
	}
	a.size, a.left, a.right = 0, 0, 0
	a.mod.Bump()
	a.layout.Bump()
}

// Clone returns an array sharing this array's table. The call is O(1);
// segments are copied lazily by whichever array writes first.
func (a *Array[T]) Clone() *Array[T] {
	c := a.emptyLike()
	if a.index != nil {
		a.index.refs++
		c.index = a.index
	}
	c.size, c.left, c.right = a.size, a.left, a.right
	return c
}

// CloneRange returns an array holding elements [from, to). It shares the
// overlapping segments, adjusting offsets and reference counts.
func (a *Array[T]) CloneRange(from, to int) (*Array[T], error) {
	if err := segcoll.CheckRange(from, to, a.size); err != nil {
		return nil, err
	}
	c := a.emptyLike()
	if from == to {
		return c, nil
	}
	first := (a.left + from) >> a.bits
	last := (a.left + to - 1) >> a.bits
	count := last - first + 1

	slots := a.env.AllocTable(count)
	copy(slots, a.index.slots[first:last+1])
	for _, s := range slots {
		s.refs++
	}
	c.index = &SegmentIndex[T]{slots: slots, count: count, refs: 1}
	c.size = to - from
	c.left = a.left + from - first<<a.bits
	c.right = count<<a.bits - c.left - c.size
	c.verify("clone_range")
	return c, nil
}

func (a *Array[T]) emptyLike() *Array[T] {
	return &Array[T]{
		env:     a.env,
		bits:    a.bits,
		maxBits: a.maxBits,
		logger:  a.logger,
		metrics: a.metrics,
		checks:  a.checks,
	}
}

// Equal reports whether both arrays hold the same elements in the same order.
func (a *Array[T]) Equal(other *Array[T]) bool {
	if a.size != other.size {
		return false
	}
	if a.index == other.index && a.left == other.left {
		return true
	}
	for i := 0; i < a.size; i++ {
		if a.at(i) != other.at(i) {
			return false
		}
	}
	return true
}

// String renders the elements as "(1, 2, 3)".
func (a *Array[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i := 0; i < a.size; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%d", a.at(i))
	}
	sb.WriteByte(')')
	return sb.String()
}

func (a *Array[T]) verify(op string) {
	if !a.checks {
		return
	}
	if err := a.Verify(); err != nil {
		err = fmt.Errorf("after %s: %w", op, err)
		a.logger.LogInvariant(context.Background(), err)
		panic(err)
	}
}

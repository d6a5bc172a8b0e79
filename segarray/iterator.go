package segarray

import (
	"iter"

	"github.com/hupe1980/segcoll"
	"github.com/hupe1980/segcoll/core"
)

// Iterator walks an Array in logical index order.
//
// It caches the current segment and offset and only recomputes them from the
// absolute position when it crosses a segment boundary. Structural changes to
// the array not made through the iterator invalidate it.
type Iterator[T core.Integer] struct {
	a    *Array[T]
	pos  int // logical index of the next element
	last int // logical index of the last returned element, -1 if none

	seg    []T
	off    int
	mod    core.Generation
	layout core.Generation
}

// Iterator returns an iterator positioned before element from.
func (a *Array[T]) Iterator(from int) (*Iterator[T], error) {
	if err := segcoll.CheckIndex(from, a.size+1); err != nil {
		return nil, err
	}
	return &Iterator[T]{a: a, pos: from, last: -1, mod: a.mod}, nil
}

func (it *Iterator[T]) check() error {
	if it.mod != it.a.mod {
		return segcoll.ErrConcurrentModification
	}
	return nil
}

// HasNext reports whether Next would return an element.
func (it *Iterator[T]) HasNext() bool {
	return it.mod == it.a.mod && it.pos < it.a.size
}

// Index returns the logical index of the next element.
func (it *Iterator[T]) Index() int { return it.pos }

// Next returns the next element.
func (it *Iterator[T]) Next() (T, error) {
	if err := it.check(); err != nil {
		return 0, err
	}
	a := it.a
	if it.pos >= a.size {
		return 0, segcoll.NewStateError("next", "iterator exhausted")
	}
	if it.seg == nil || it.layout != a.layout {
		abs := a.left + it.pos
		it.seg = a.index.slots[abs>>a.bits].data
		it.off = abs & a.mask()
		it.layout = a.layout
	}
	v := it.seg[it.off]
	it.last = it.pos
	it.pos++
	it.off++
	if it.off == len(it.seg) {
		it.seg = nil
	}
	return v, nil
}

// Set overwrites the element last returned by Next.
func (it *Iterator[T]) Set(v T) error {
	if err := it.check(); err != nil {
		return err
	}
	if it.last < 0 {
		return segcoll.NewStateError("set", "no current element")
	}
	it.a.store(it.last, v)
	return nil
}

// Remove deletes the element last returned by Next. The iterator stays valid.
func (it *Iterator[T]) Remove() error {
	if err := it.check(); err != nil {
		return err
	}
	if it.last < 0 {
		return segcoll.NewStateError("remove", "no current element")
	}
	it.a.shrink(it.last, it.last+1)
	it.a.verify("iterator_remove")
	it.pos = it.last
	it.last = -1
	it.seg = nil
	it.mod = it.a.mod
	return nil
}

// All returns an iterator over all elements in order.
// It panics with ErrConcurrentModification if the array is structurally
// modified during iteration.
func (a *Array[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		it := &Iterator[T]{a: a, last: -1, mod: a.mod}
		for {
			if err := it.check(); err != nil {
				panic(err)
			}
			if it.pos >= a.size {
				return
			}
			v, _ := it.Next()
			if !yield(v) {
				return
			}
		}
	}
}

// Backward returns an iterator over index/value pairs from last to first.
// It panics with ErrConcurrentModification if the array is structurally
// modified during iteration.
func (a *Array[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		mod := a.mod
		for i := a.size - 1; i >= 0; i-- {
			if a.mod != mod {
				panic(segcoll.ErrConcurrentModification)
			}
			if !yield(i, a.at(i)) {
				return
			}
		}
	}
}

package window

import (
	"github.com/hupe1980/segcoll"
	"github.com/hupe1980/segcoll/core"
)

// PinnedIterator walks a Window from head to tail and, while attached,
// prevents removal of the element it holds and the one it returns next.
type PinnedIterator[T core.Integer] struct {
	w   *Window[T]
	pos int // absolute buffer position of the current element
	age int // forward steps taken; 0 means before the first element
	gen core.Generation

	attached bool
	// seq is the sequence number of the guarded element, recorded on Detach.
	seq int
}

// offset returns the logical index of the current element, or -1 before
// the first element.
func (it *PinnedIterator[T]) offset() int {
	if it.age == 0 {
		return -1
	}
	return it.w.dist(it.pos)
}

// Index returns the logical index of the current element, or -1 if the
// iterator has not advanced yet.
func (it *PinnedIterator[T]) Index() int { return it.offset() }

// Age returns the number of forward steps, counting the creation offset.
func (it *PinnedIterator[T]) Age() int { return it.age }

// Attached reports whether the iterator currently guards its element.
func (it *PinnedIterator[T]) Attached() bool { return it.attached }

// HasValue reports whether the iterator holds an element.
func (it *PinnedIterator[T]) HasValue() bool { return it.age > 0 }

// HasNext reports whether Next would return an element.
func (it *PinnedIterator[T]) HasNext() bool {
	return it.attached && it.offset()+1 < it.w.Len()
}

// Value returns the current element.
func (it *PinnedIterator[T]) Value() (T, error) {
	if !it.attached {
		return 0, segcoll.NewStateError("value", "iterator is detached")
	}
	if it.age == 0 {
		return 0, segcoll.NewStateError("value", "iterator has not advanced")
	}
	return it.w.buf[it.pos], nil
}

// Next advances to and returns the next element.
func (it *PinnedIterator[T]) Next() (T, error) {
	if !it.attached {
		return 0, segcoll.NewStateError("next", "iterator is detached")
	}
	if it.offset()+1 >= it.w.Len() {
		return 0, segcoll.NewStateError("next", "no next element")
	}
	it.pos = (it.pos + 1) % it.w.slots()
	it.age++
	return it.w.buf[it.pos], nil
}

// Detach stops guarding the current element. Detaching twice is a no-op.
func (it *PinnedIterator[T]) Detach() {
	if !it.attached {
		return
	}
	it.seq = it.w.removed + it.offset()
	if it.age == 0 {
		// Before the first element the next element is the guarded one.
		it.seq++
	}
	it.attached = false
	it.w.unpin(it)
}

// Attach guards the current element again. It fails if the window was
// reallocated or the guarded element was removed while detached.
func (it *PinnedIterator[T]) Attach() error {
	if it.attached {
		return nil
	}
	w := it.w
	if it.gen != w.gen {
		return segcoll.NewStateError("attach", "window was reallocated while detached")
	}
	if it.seq < w.removed {
		return segcoll.NewStateError("attach", "element was removed while detached")
	}
	it.attached = true
	w.pinned = append(w.pinned, it)
	w.verify("attach")
	return nil
}

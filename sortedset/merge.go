package sortedset

import (
	"iter"

	"github.com/hupe1980/segcoll/core"
	"github.com/hupe1980/segcoll/internal/queue"
)

// merger pulls from several strictly ascending sources through a min-heap
// keyed by each source's current head.
type merger[T core.Integer] struct {
	next  []func() (T, bool)
	stops []func()
	done  []bool
	heap  *queue.MinHeap[T]
}

func newMerger[T core.Integer](sources []iter.Seq[T]) *merger[T] {
	m := &merger[T]{
		next:  make([]func() (T, bool), len(sources)),
		stops: make([]func(), len(sources)),
		done:  make([]bool, len(sources)),
		heap:  queue.NewMin[T](len(sources)),
	}
	for i, src := range sources {
		m.next[i], m.stops[i] = iter.Pull(src)
		if v, ok := m.next[i](); ok {
			m.heap.Push(queue.Item[T]{Source: i, Value: v})
		} else {
			m.done[i] = true
		}
	}
	return m
}

func (m *merger[T]) stop() {
	for _, stop := range m.stops {
		stop()
	}
}

// pop takes the smallest value and advances every source currently holding
// it. It returns the value, how many sources held it, and the lowest index
// among them.
func (m *merger[T]) pop() (v T, tied, first int) {
	top, _ := m.heap.Top()
	v, first = top.Value, top.Source
	for m.heap.Len() > 0 {
		top, _ = m.heap.Top()
		if top.Value != v {
			break
		}
		tied++
		if nv, ok := m.next[top.Source](); ok {
			m.heap.ReplaceTop(queue.Item[T]{Source: top.Source, Value: nv})
		} else {
			m.done[top.Source] = true
			m.heap.Pop()
		}
	}
	return v, tied, first
}

// Union yields every value present in at least one source, once, in
// ascending order. Each source must be strictly ascending.
func Union[T core.Integer](sources ...iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		m := newMerger(sources)
		defer m.stop()
		for m.heap.Len() > 0 {
			v, _, _ := m.pop()
			if !yield(v) {
				return
			}
		}
	}
}

// Intersection yields the values present in every source, in ascending
// order. Each source must be strictly ascending.
func Intersection[T core.Integer](sources ...iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		k := len(sources)
		if k == 0 {
			return
		}
		m := newMerger(sources)
		defer m.stop()
		for m.heap.Len() == k {
			v, tied, _ := m.pop()
			if tied == k && !yield(v) {
				return
			}
		}
	}
}

// Minus yields the values of from that appear in none of the subtracted
// sources, in ascending order. All sources must be strictly ascending.
func Minus[T core.Integer](from iter.Seq[T], subtract ...iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		m := newMerger(append([]iter.Seq[T]{from}, subtract...))
		defer m.stop()
		for !m.done[0] {
			v, tied, first := m.pop()
			if first == 0 && tied == 1 && !yield(v) {
				return
			}
		}
	}
}

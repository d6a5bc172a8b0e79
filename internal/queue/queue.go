// Package queue provides value-based heaps used by k-way merges.
package queue

import "github.com/hupe1980/segcoll/core"

// Item is a heap entry: the current head Value of merge source Source.
type Item[T core.Integer] struct {
	Source int
	Value  T
}

// MinHeap keeps Items ordered by Value, then by Source.
// Value-based storage: no pointer indirection and no per-push allocation.
type MinHeap[T core.Integer] struct {
	items []Item[T]
}

// NewMin initializes a new min-heap with the given capacity.
func NewMin[T core.Integer](capacity int) *MinHeap[T] {
	return &MinHeap[T]{
		items: make([]Item[T], 0, capacity),
	}
}

// Len returns the number of elements in the heap.
func (h *MinHeap[T]) Len() int { return len(h.items) }

// Top returns the smallest element of the heap.
func (h *MinHeap[T]) Top() (Item[T], bool) {
	if len(h.items) == 0 {
		return Item[T]{}, false
	}
	return h.items[0], true
}

// Push inserts an item while maintaining the heap invariant.
func (h *MinHeap[T]) Push(item Item[T]) {
	h.items = append(h.items, item)
	h.siftUp(len(h.items) - 1)
}

// Pop removes and returns the smallest element.
func (h *MinHeap[T]) Pop() (Item[T], bool) {
	n := len(h.items)
	if n == 0 {
		return Item[T]{}, false
	}
	root := h.items[0]
	h.items[0] = h.items[n-1]
	h.items = h.items[:n-1]
	if n-1 > 0 {
		h.siftDown(0)
	}
	return root, true
}

// ReplaceTop overwrites the smallest element and restores the heap.
// Cheaper than Pop followed by Push when a merge source advances.
func (h *MinHeap[T]) ReplaceTop(item Item[T]) {
	h.items[0] = item
	h.siftDown(0)
}

// Reset clears the heap for reuse.
func (h *MinHeap[T]) Reset() {
	h.items = h.items[:0]
}

func (h *MinHeap[T]) less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if a.Value != b.Value {
		return a.Value < b.Value
	}
	return a.Source < b.Source
}

func (h *MinHeap[T]) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !h.less(i, p) {
			return
		}
		h.items[i], h.items[p] = h.items[p], h.items[i]
		i = p
	}
}

func (h *MinHeap[T]) siftDown(i int) {
	n := len(h.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		r := l + 1
		if r < n && h.less(r, l) {
			best = r
		}
		if !h.less(best, i) {
			return
		}
		h.items[i], h.items[best] = h.items[best], h.items[i]
		i = best
	}
}

// Package window implements a cyclic FIFO window of integers with pinned iterators.
//
// A Window appends at the tail and removes at the head of a circular buffer
// of capacity+1 slots. The buffer doubles only when full. Get and Peek are
// O(1) relative to the head.
//
// # Pinned iterators
//
// A PinnedIterator stores an absolute buffer position instead of a logical
// index, so it stays valid while other code adds and removes elements. While
// attached it also protects its element: a removal that would consume the
// element it holds, or the element it would return next, is refused as a
// whole with a *segcoll.StateError and the window is left untouched.
//
//	w, _ := window.New[int64](5)
//	w.AddAll(10, 11, 12, 13)
//	it, _ := w.PinnedIterator(-1)
//	it.Next() // 10
//	it.Next() // 11
//	w.RemoveFirst() // ok, removes 10
//	w.RemoveFirst() // refused: it holds 11
//
// Detach releases the protection. Attach re-arms it, and fails if the held
// element was removed or the buffer was reallocated in the meantime.
package window

// Package segcoll provides primitive-integer collections built for bulk edits
// and cheap structural sharing.
//
// The root package holds what the collection packages share: the error
// taxonomy, the structured Logger and the MetricsCollector hooks. The
// collections live in sub-packages:
//
//   - segarray: a segmented growable deque with copy-on-write segment sharing
//   - window: a cyclic FIFO window whose pinned iterators block removals
//   - sortedset: a sorted set that buffers edits in deltas and coalesces them
//
// # Quick Start
//
//	arr, _ := segarray.New[int64]()
//	arr.AddAll(1, 2, 3)
//	snap := arr.Clone()   // O(1), shares all segments
//	_ = arr.Set(0, 42)    // copies exactly one segment
//
//	w, _ := window.New[int32](4)
//	w.AddAll(10, 11, 12)
//	it, _ := w.PinnedIterator(-1)
//	_, _ = it.Next()      // 10 is now pinned
//	_, err := w.RemoveFirst()
//	errors.Is(err, segcoll.ErrInvalidState) // true
//
//	s, _ := sortedset.New[uint32]()
//	s.Add(7)
//	s.Contains(7)         // true, no coalesce needed
//
// # Errors
//
// Every failure is returned as one of the typed errors in this package and can
// be matched with errors.Is against ErrOutOfBounds, ErrInvalidState,
// ErrConcurrentModification, ErrInvalidArgument or ErrNotFound.
//
// # Concurrency
//
// No collection is safe for concurrent use. "Concurrent modification" refers
// to interleaving mutation and iteration on a single goroutine.
package segcoll

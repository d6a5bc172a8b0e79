// Package sortedset provides sorted unique integer collections.
//
// # Set
//
// Set keeps a sorted base slice plus two small sorted delta buffers, added
// and removed. Add and Remove only touch the deltas; once the deltas reach
// the coalesce threshold (512 by default) they are folded into the base in
// one linear pass. Membership is a binary search over at most three slices.
//
//	s, _ := sortedset.New[int64](sortedset.WithCoalesceThreshold(4))
//	s.Add(2)
//	s.Add(4)
//	s.Contains(4) // true, without coalescing
//
// The deltas keep two invariants: added never overlaps base, and removed is
// a subset of base. Len is therefore O(1).
//
// Iterators survive Coalesce: they re-seek into the new base just after the
// last value they returned. Adding or removing elements during iteration
// invalidates them with segcoll.ErrConcurrentModification.
//
// # MergeBuilder
//
// MergeBuilder accepts values in any order, with duplicates, and produces an
// immutable Sorted view. Input is buffered, sorted and deduplicated in
// batches, and merged into the accumulated result.
//
// # Merging sequences
//
// Union, Intersection and Minus combine sorted iter.Seq sources through a
// min-heap and emit every distinct value once.
package sortedset

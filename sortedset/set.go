package sortedset

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/hupe1980/segcoll"
	"github.com/hupe1980/segcoll/core"
)

// Set is a mutable sorted set that buffers edits in small delta slices and
// folds them into a sorted base on Coalesce.
//
// Invariants: base, added and removed are strictly ascending, added and
// base are disjoint, and removed is a subset of base.
type Set[T core.Integer] struct {
	base    []T
	added   []T
	removed []T

	// shared marks a base published through Snapshot or adopted from a
	// Sorted view. It is never written in place.
	shared bool

	threshold int

	mod core.Generation // element changes
	gen core.Generation // coalesces

	logger  *segcoll.Logger
	metrics segcoll.MetricsCollector
	checks  bool
}

// New creates an empty set.
func New[T core.Integer](optFns ...Option) (*Set[T], error) {
	o, err := buildOptions(optFns)
	if err != nil {
		return nil, err
	}
	return newSet[T](o), nil
}

func newSet[T core.Integer](o options) *Set[T] {
	return &Set[T]{
		threshold: o.threshold,
		logger:    o.logger.WithStructure("sortedset"),
		metrics:   o.metrics,
		checks:    o.checks,
	}
}

// FromSorted creates a set whose base is the given view. The view is shared,
// not copied, and stays unchanged.
func FromSorted[T core.Integer](sorted *Sorted[T], optFns ...Option) (*Set[T], error) {
	o, err := buildOptions(optFns)
	if err != nil {
		return nil, err
	}
	s := newSet[T](o)
	s.base = sorted.vals
	s.shared = true
	return s, nil
}

// FromValues creates a set holding vals, given in any order and possibly
// with duplicates.
func FromValues[T core.Integer](vals []T, optFns ...Option) (*Set[T], error) {
	b, err := NewMergeBuilder[T](optFns...)
	if err != nil {
		return nil, err
	}
	if err := b.AddAll(vals...); err != nil {
		return nil, err
	}
	sorted, err := b.Finish()
	if err != nil {
		return nil, err
	}
	s, err := FromSorted(sorted, optFns...)
	if err != nil {
		return nil, err
	}
	// Nobody else holds the builder's result.
	s.shared = false
	return s, nil
}

// Len returns the number of elements in O(1).
func (s *Set[T]) Len() int { return len(s.base) + len(s.added) - len(s.removed) }

// Pending returns the number of buffered edits.
func (s *Set[T]) Pending() int { return len(s.added) + len(s.removed) }

// Contains reports whether v is in the set, taking pending edits into account.
func (s *Set[T]) Contains(v T) bool {
	if _, ok := slices.BinarySearch(s.added, v); ok {
		return true
	}
	if _, ok := slices.BinarySearch(s.base, v); !ok {
		return false
	}
	_, gone := slices.BinarySearch(s.removed, v)
	return !gone
}

// Add inserts v and reports whether it was absent.
func (s *Set[T]) Add(v T) bool {
	if i, ok := slices.BinarySearch(s.removed, v); ok {
		s.removed = slices.Delete(s.removed, i, i+1)
		s.changed("add")
		return true
	}
	if _, ok := slices.BinarySearch(s.base, v); ok {
		return false
	}
	i, ok := slices.BinarySearch(s.added, v)
	if ok {
		return false
	}
	s.added = slices.Insert(s.added, i, v)
	s.changed("add")
	return true
}

// AddAll inserts vals and returns how many were absent.
func (s *Set[T]) AddAll(vals ...T) int {
	n := 0
	for _, v := range vals {
		if s.Add(v) {
			n++
		}
	}
	return n
}

// Remove deletes v and reports whether it was present.
func (s *Set[T]) Remove(v T) bool {
	if i, ok := slices.BinarySearch(s.added, v); ok {
		s.added = slices.Delete(s.added, i, i+1)
		s.changed("remove")
		return true
	}
	if _, ok := slices.BinarySearch(s.base, v); !ok {
		return false
	}
	i, ok := slices.BinarySearch(s.removed, v)
	if ok {
		return false
	}
	s.removed = slices.Insert(s.removed, i, v)
	s.changed("remove")
	return true
}

func (s *Set[T]) changed(op string) {
	s.mod.Bump()
	if s.Pending() >= s.threshold {
		s.Coalesce()
	}
	s.verify(op)
}

// Clear removes all elements.
func (s *Set[T]) Clear() {
	s.base = nil
	s.shared = false
	s.added = s.added[:0]
	s.removed = s.removed[:0]
	s.mod.Bump()
}

// Coalesce folds the pending edits into the base.
//
// Removed values are located in the base by binary search and compacted out
// in one pass, then added values are merged high to low. Both steps run in
// place when the base is private and has room; otherwise a new base is
// built in a single forward merge.
func (s *Set[T]) Coalesce() {
	if s.Pending() == 0 {
		return
	}
	start := time.Now()
	nAdded, nRemoved := len(s.added), len(s.removed)
	n := s.Len()

	inPlace := !s.shared && cap(s.base) >= n
	if inPlace {
		s.base = mergeDown(compact(s.base, s.removed), s.added)
	} else {
		s.base = s.rebuild(make([]T, 0, n+s.threshold))
		s.shared = false
	}
	s.added = s.added[:0]
	s.removed = s.removed[:0]
	s.gen.Bump()

	s.metrics.RecordCoalesce(nAdded, nRemoved, len(s.base), time.Since(start))
	s.logger.LogCoalesce(context.Background(), nAdded, nRemoved, len(s.base), inPlace)
	s.verify("coalesce")
}

// compact deletes the removed values, all present in base, from base.
func compact[T core.Integer](base, removed []T) []T {
	if len(removed) == 0 {
		return base
	}
	w, prev, lo := -1, 0, 0
	for _, r := range removed {
		p, _ := slices.BinarySearch(base[lo:], r)
		p += lo
		if w < 0 {
			w = p
		} else {
			w += copy(base[w:], base[prev:p])
		}
		prev, lo = p+1, p+1
	}
	w += copy(base[w:], base[prev:])
	return base[:w]
}

// mergeDown merges added, disjoint from base, into base from the top.
// cap(base) must hold both.
func mergeDown[T core.Integer](base, added []T) []T {
	i, j := len(base)-1, len(added)-1
	base = base[:len(base)+len(added)]
	for k := len(base) - 1; j >= 0; k-- {
		if i >= 0 && base[i] > added[j] {
			base[k] = base[i]
			i--
		} else {
			base[k] = added[j]
			j--
		}
	}
	return base
}

func (s *Set[T]) rebuild(out []T) []T {
	ri, ai := 0, 0
	for _, v := range s.base {
		if ri < len(s.removed) && s.removed[ri] == v {
			ri++
			continue
		}
		for ai < len(s.added) && s.added[ai] < v {
			out = append(out, s.added[ai])
			ai++
		}
		out = append(out, v)
	}
	return append(out, s.added[ai:]...)
}

// Snapshot coalesces and returns the base as an immutable view. Later edits
// to the set never show through the view.
func (s *Set[T]) Snapshot() *Sorted[T] {
	s.Coalesce()
	s.shared = true
	return &Sorted[T]{vals: s.base[:len(s.base):len(s.base)]}
}

// Min returns the smallest element without coalescing.
//
// Leading base values that are pending removal are skipped one by one, so
// the cost grows with the number of removed values at the low end.
func (s *Set[T]) Min() (T, bool) {
	var (
		v  T
		ok bool
	)
	for i, ri := 0, 0; i < len(s.base); i++ {
		if ri < len(s.removed) && s.removed[ri] == s.base[i] {
			ri++
			continue
		}
		v, ok = s.base[i], true
		break
	}
	if len(s.added) > 0 && (!ok || s.added[0] < v) {
		v, ok = s.added[0], true
	}
	return v, ok
}

// Max returns the largest element without coalescing. Like Min it scans
// past trailing base values that are pending removal.
func (s *Set[T]) Max() (T, bool) {
	var (
		v  T
		ok bool
	)
	for i, ri := len(s.base)-1, len(s.removed)-1; i >= 0; i-- {
		if ri >= 0 && s.removed[ri] == s.base[i] {
			ri--
			continue
		}
		v, ok = s.base[i], true
		break
	}
	if n := len(s.added); n > 0 && (!ok || s.added[n-1] > v) {
		v, ok = s.added[n-1], true
	}
	return v, ok
}

// ToSlice returns the elements in ascending order.
func (s *Set[T]) ToSlice() []T {
	out := make([]T, 0, s.Len())
	for v := range s.All() {
		out = append(out, v)
	}
	return out
}

// All returns an iterator over the elements in ascending order. It keeps
// going across Coalesce and panics with ErrConcurrentModification if
// elements are added or removed during iteration.
func (s *Set[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		it := s.Iterator()
		for {
			if err := it.sync(); err != nil {
				panic(err)
			}
			if !it.HasNext() {
				return
			}
			v, _ := it.Next()
			if !yield(v) {
				return
			}
		}
	}
}

// Equal reports whether both sets hold the same elements.
func (s *Set[T]) Equal(other *Set[T]) bool {
	if s.Len() != other.Len() {
		return false
	}
	a, b := s.Iterator(), other.Iterator()
	for a.HasNext() {
		x, _ := a.Next()
		y, _ := b.Next()
		if x != y {
			return false
		}
	}
	return true
}

// String renders the elements as "(1, 2, 3)".
func (s *Set[T]) String() string {
	return render(s.All())
}

// Verify checks the ordering and delta invariants.
func (s *Set[T]) Verify() error {
	fail := func(format string, args ...any) error {
		return &segcoll.InvariantError{Structure: "sortedset", Detail: fmt.Sprintf(format, args...)}
	}
	if !strictlyAscending(s.base) {
		return fail("base not strictly ascending")
	}
	if !strictlyAscending(s.added) {
		return fail("added not strictly ascending")
	}
	if !strictlyAscending(s.removed) {
		return fail("removed not strictly ascending")
	}
	for _, v := range s.added {
		if _, ok := slices.BinarySearch(s.base, v); ok {
			return fail("added value %d is in base", v)
		}
	}
	for _, v := range s.removed {
		if _, ok := slices.BinarySearch(s.base, v); !ok {
			return fail("removed value %d is not in base", v)
		}
	}
	if s.Pending() >= s.threshold {
		return fail("%d pending edits, threshold %d", s.Pending(), s.threshold)
	}
	return nil
}

func (s *Set[T]) verify(op string) {
	if !s.checks {
		return
	}
	if err := s.Verify(); err != nil {
		err = fmt.Errorf("after %s: %w", op, err)
		s.logger.LogInvariant(context.Background(), err)
		panic(err)
	}
}

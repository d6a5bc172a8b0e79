package sortedset

import (
	"github.com/hupe1980/segcoll"
	"github.com/hupe1980/segcoll/core"
)

// Iterator walks a Set in ascending order by merging the base, minus the
// removed values, with the added values.
type Iterator[T core.Integer] struct {
	s *Set[T]

	bi, ai, ri int

	last    T
	started bool

	mod core.Generation
	gen core.Generation
}

// Iterator returns an iterator positioned before the smallest element.
func (s *Set[T]) Iterator() *Iterator[T] {
	return &Iterator[T]{s: s, mod: s.mod, gen: s.gen}
}

// sync fails on element changes and re-seeks after a coalesce.
func (it *Iterator[T]) sync() error {
	s := it.s
	if it.mod != s.mod {
		return segcoll.ErrConcurrentModification
	}
	if it.gen == s.gen {
		return nil
	}
	if it.started {
		it.bi = upperBound(s.base, it.last)
		it.ai = upperBound(s.added, it.last)
		it.ri = upperBound(s.removed, it.last)
	} else {
		it.bi, it.ai, it.ri = 0, 0, 0
	}
	it.gen = s.gen
	return nil
}

// skipRemoved moves bi past base values that are pending removal.
func (it *Iterator[T]) skipRemoved() {
	s := it.s
	for it.bi < len(s.base) && it.ri < len(s.removed) {
		b, r := s.base[it.bi], s.removed[it.ri]
		switch {
		case r < b:
			it.ri++
		case r == b:
			it.bi++
			it.ri++
		default:
			return
		}
	}
}

// HasNext reports whether Next would return an element.
func (it *Iterator[T]) HasNext() bool {
	if it.sync() != nil {
		return false
	}
	it.skipRemoved()
	return it.bi < len(it.s.base) || it.ai < len(it.s.added)
}

// Next returns the next element.
func (it *Iterator[T]) Next() (T, error) {
	if err := it.sync(); err != nil {
		return 0, err
	}
	it.skipRemoved()

	s := it.s
	hasBase := it.bi < len(s.base)
	hasAdded := it.ai < len(s.added)

	var v T
	switch {
	case hasBase && (!hasAdded || s.base[it.bi] < s.added[it.ai]):
		v = s.base[it.bi]
		it.bi++
	case hasAdded:
		v = s.added[it.ai]
		it.ai++
	default:
		return 0, segcoll.NewStateError("next", "iterator exhausted")
	}
	it.last = v
	it.started = true
	return v, nil
}

package sortedset

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/hupe1980/segcoll"
	"github.com/hupe1980/segcoll/core"
)

// Sorted is an immutable ascending sequence of unique values.
type Sorted[T core.Integer] struct {
	vals []T
}

// Len returns the number of values.
func (s *Sorted[T]) Len() int { return len(s.vals) }

// At returns the i-th smallest value.
func (s *Sorted[T]) At(i int) (T, error) {
	if err := segcoll.CheckIndex(i, len(s.vals)); err != nil {
		return 0, err
	}
	return s.vals[i], nil
}

// Search returns the position of v, or the position where v would be
// inserted, and whether v is present.
func (s *Sorted[T]) Search(v T) (int, bool) {
	return slices.BinarySearch(s.vals, v)
}

// Contains reports whether v is present.
func (s *Sorted[T]) Contains(v T) bool {
	_, ok := slices.BinarySearch(s.vals, v)
	return ok
}

// Min returns the smallest value.
func (s *Sorted[T]) Min() (T, bool) {
	if len(s.vals) == 0 {
		return 0, false
	}
	return s.vals[0], true
}

// Max returns the largest value.
func (s *Sorted[T]) Max() (T, bool) {
	if len(s.vals) == 0 {
		return 0, false
	}
	return s.vals[len(s.vals)-1], true
}

// All returns an iterator over the values in ascending order.
func (s *Sorted[T]) All() iter.Seq[T] {
	return slices.Values(s.vals)
}

// ToSlice returns a copy of the values.
func (s *Sorted[T]) ToSlice() []T { return slices.Clone(s.vals) }

// Equal reports whether both views hold the same values.
func (s *Sorted[T]) Equal(other *Sorted[T]) bool {
	return slices.Equal(s.vals, other.vals)
}

// String renders the values as "(1, 2, 3)".
func (s *Sorted[T]) String() string {
	return render(s.All())
}

func render[T core.Integer](seq iter.Seq[T]) string {
	var sb strings.Builder
	sb.WriteByte('(')
	first := true
	for v := range seq {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&sb, "%d", v)
	}
	sb.WriteByte(')')
	return sb.String()
}

// upperBound returns the index of the first element of vals greater than v.
func upperBound[T core.Integer](vals []T, v T) int {
	i, found := slices.BinarySearch(vals, v)
	if found {
		i++
	}
	return i
}

func strictlyAscending[T core.Integer](vals []T) bool {
	for i := 1; i < len(vals); i++ {
		if vals[i-1] >= vals[i] {
			return false
		}
	}
	return true
}

// Package core holds the element constraints shared by all collections.
package core

// Integer is the set of element types the collections store.
// Values are kept unboxed in flat buffers; there is no per-element allocation.
type Integer interface {
	~int32 | ~int64 | ~uint32 | ~uint64
}

// Generation is a monotonically increasing modification counter.
// Iterators capture it on creation and compare it on every step.
type Generation uint64

// Bump advances the generation and returns the new value.
func (g *Generation) Bump() Generation {
	*g++
	return *g
}

package testutil

import (
	"math"
	"math/rand"
	"slices"
	"sync"

	"github.com/hupe1980/segcoll/core"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Int63n returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Int63n(n int64) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Int63n(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Choose returns an index in [0, len(weights)) with probability
// proportional to its weight. Used to draw operation kinds.
func (r *RNG) Choose(weights ...int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	pick := r.Intn(total)
	for i, w := range weights {
		if pick < w {
			return i
		}
		pick -= w
	}
	return len(weights) - 1
}

// Zipf generates a Zipf-distributed integer in [0, n).
// s is the skew parameter (s > 1 means more skewed). Small ranks repeat
// often, which exercises duplicate handling.
func (r *RNG) Zipf(n int, s float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zipfLocked(n, s)
}

func (r *RNG) zipfLocked(n int, s float64) int {
	if n <= 1 {
		return 0
	}
	// Inverse transform over the unnormalized harmonic weights.
	var norm float64
	for k := 1; k <= n; k++ {
		norm += 1.0 / math.Pow(float64(k), s)
	}
	target := r.rand.Float64() * norm
	var acc float64
	for k := 1; k <= n; k++ {
		acc += 1.0 / math.Pow(float64(k), s)
		if acc >= target {
			return k - 1
		}
	}
	return n - 1
}

// Values returns n uniform values in [0, bound).
func Values[T core.Integer](r *RNG, n int, bound int64) []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, n)
	for i := range out {
		out[i] = T(r.rand.Int63n(bound))
	}
	return out
}

// ZipfValues returns n Zipf-distributed values in [0, bound).
func ZipfValues[T core.Integer](r *RNG, n, bound int, s float64) []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, n)
	for i := range out {
		out[i] = T(r.zipfLocked(bound, s))
	}
	return out
}

// RefSet is a map-backed reference model of a sorted set.
type RefSet[T core.Integer] struct {
	m map[T]struct{}
}

// NewRefSet creates an empty reference set.
func NewRefSet[T core.Integer]() *RefSet[T] {
	return &RefSet[T]{m: make(map[T]struct{})}
}

// Add inserts v and reports whether it was absent.
func (s *RefSet[T]) Add(v T) bool {
	if _, ok := s.m[v]; ok {
		return false
	}
	s.m[v] = struct{}{}
	return true
}

// Remove deletes v and reports whether it was present.
func (s *RefSet[T]) Remove(v T) bool {
	if _, ok := s.m[v]; !ok {
		return false
	}
	delete(s.m, v)
	return true
}

// Contains reports whether v is present.
func (s *RefSet[T]) Contains(v T) bool {
	_, ok := s.m[v]
	return ok
}

// Len returns the number of values.
func (s *RefSet[T]) Len() int { return len(s.m) }

// Sorted returns the values in ascending order.
func (s *RefSet[T]) Sorted() []T {
	out := make([]T, 0, len(s.m))
	for v := range s.m {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

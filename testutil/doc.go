// Package testutil provides testing utilities for the collections.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded generator for values and operation sequences, and
// plain reference models the collections are replayed against.
//
// # Random Values
//
//	rng := testutil.NewRNG(seed)
//	vals := testutil.Values[int64](rng, 100, 1000) // uniform [0, 1000)
//	skew := testutil.ZipfValues[uint32](rng, 100, 50, 1.2)
//
// # Reference Models
//
//	ref := testutil.NewRefSet[int64]()
//	ref.Add(5)
//	ref.Sorted() // ascending unique values
package testutil

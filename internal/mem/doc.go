// Package mem provides memory allocation utilities.
//
// # Off-heap Allocation
//
// AllocOffHeap places flat slices of pointer-free element types in anonymous
// mappings. The memory is invisible to the garbage collector and is returned
// to the OS only by an explicit Free.
package mem

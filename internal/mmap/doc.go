// Package mmap provides anonymous memory mappings for off-heap buffers.
//
// MapAnon() creates read-write anonymous mappings outside the Go garbage
// collector's control. Segment buffers of integer collections can live there
// when their owner releases them explicitly.
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with madvise(2) for access hints
//   - Windows: VirtualAlloc/VirtualFree (advice is a no-op)
//
// # Thread Safety
//
// Close() is idempotent and protected by atomic operations. Callers must
// ensure nobody accesses Bytes() after Close() returns.
package mmap

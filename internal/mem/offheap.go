package mem

import (
	"errors"
	"unsafe"

	"github.com/hupe1980/segcoll/internal/mmap"
)

// ErrFreed is returned when an off-heap buffer is freed twice.
var ErrFreed = errors.New("mem: buffer already freed")

// OffHeap is a typed slice living in an anonymous mapping.
//
// T must not contain Go pointers; the garbage collector never scans the
// mapped memory.
type OffHeap[T any] struct {
	data    []T
	mapping *mmap.Mapping
}

// AllocOffHeap allocates a zeroed slice of n elements outside the Go heap.
func AllocOffHeap[T any](n int) (*OffHeap[T], error) {
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	if n <= 0 || elemSize == 0 {
		return nil, mmap.ErrInvalidSize
	}

	m, err := mmap.MapAnon(n * elemSize)
	if err != nil {
		return nil, err
	}

	// Page-aligned mappings satisfy every integer alignment.
	raw := m.Bytes()
	ptr := unsafe.Pointer(&raw[0])     //nolint:gosec // unsafe is required for off-heap typed views
	data := unsafe.Slice((*T)(ptr), n) //nolint:gosec // unsafe is required for off-heap typed views

	return &OffHeap[T]{data: data, mapping: m}, nil
}

// Slice returns the typed view. It is valid until Free.
func (o *OffHeap[T]) Slice() []T {
	return o.data
}

// Free unmaps the buffer.
func (o *OffHeap[T]) Free() error {
	if o.data == nil {
		return ErrFreed
	}
	o.data = nil
	return o.mapping.Close()
}

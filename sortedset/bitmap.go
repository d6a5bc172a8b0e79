package sortedset

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/segcoll/core"
	"github.com/hupe1980/segcoll/internal/conv"
)

// ToBitmap returns the elements as a roaring bitmap.
// It fails if an element is negative or does not fit in uint32.
func (s *Set[T]) ToBitmap() (*roaring.Bitmap, error) {
	vals := make([]uint32, 0, s.Len())
	for v := range s.All() {
		u, err := conv.ToUint32(v)
		if err != nil {
			return nil, err
		}
		vals = append(vals, u)
	}
	bm := roaring.New()
	bm.AddMany(vals)
	return bm, nil
}

// FromBitmap creates a set holding the values of bm. The bitmap is already
// sorted, so the values become the base without a merge.
func FromBitmap[T core.Integer](bm *roaring.Bitmap, optFns ...Option) (*Set[T], error) {
	o, err := buildOptions(optFns)
	if err != nil {
		return nil, err
	}
	raw := bm.ToArray()
	vals := make([]T, len(raw))
	for i, u := range raw {
		v, err := conv.FromUint32[T](u)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	s := newSet[T](o)
	s.base = vals
	return s, nil
}

package conv

import (
	"fmt"
	"math"

	"github.com/hupe1980/segcoll/core"
)

// ToUint32 converts any collection element to uint32 safely.
func ToUint32[T core.Integer](v T) (uint32, error) {
	if v < 0 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to uint32 (negative)", v)
	}
	if uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to uint32 (too large)", v)
	}
	return uint32(v), nil
}

// FromUint32 converts a uint32 to any collection element type safely.
// Only int32 targets can overflow.
func FromUint32[T core.Integer](v uint32) (T, error) {
	out := T(v)
	if out < 0 || uint64(out) != uint64(v) {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to %T", v, out)
	}
	return out, nil
}


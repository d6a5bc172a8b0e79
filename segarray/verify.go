package segarray

import (
	"fmt"

	"github.com/hupe1980/segcoll"
)

// Verify checks the layout and reference-count invariants.
// It is what WithInvariantChecks runs after every mutation.
func (a *Array[T]) Verify() error {
	fail := func(format string, args ...any) error {
		return &segcoll.InvariantError{Structure: "segarray", Detail: fmt.Sprintf(format, args...)}
	}

	S := a.segSize()
	if a.index == nil {
		if a.size != 0 || a.left != 0 || a.right != 0 {
			return fail("no segments but size=%d left=%d right=%d", a.size, a.left, a.right)
		}
		return nil
	}

	ix := a.index
	if ix.refs < 1 {
		return fail("table refs=%d", ix.refs)
	}
	if ix.count < 1 || ix.count > len(ix.slots) {
		return fail("table count=%d slots=%d", ix.count, len(ix.slots))
	}
	if a.size+a.left+a.right != ix.count*S {
		return fail("size=%d left=%d right=%d capacity=%d", a.size, a.left, a.right, ix.count*S)
	}
	if a.left < 0 || a.left >= S || a.right < 0 || a.right >= S {
		return fail("offsets left=%d right=%d segment=%d", a.left, a.right, S)
	}
	for i, s := range ix.slots[:ix.count] {
		if s == nil {
			return fail("slot %d is nil", i)
		}
		if s.refs < 1 {
			return fail("slot %d refs=%d", i, s.refs)
		}
		if len(s.data) != S {
			return fail("slot %d length=%d segment=%d", i, len(s.data), S)
		}
	}
	return nil
}

package segarray

import (
	"reflect"

	"github.com/hupe1980/segcoll"
	"github.com/hupe1980/segcoll/core"
)

// CopyRange overwrites dst[dstIndex : dstIndex+(to-from)] with src[from:to].
//
// Where both positions sit on a segment boundary and a whole segment is to
// be copied, dst shares src's segment instead of copying its elements.
// dst and src may be the same array; overlapping ranges are handled.
func CopyRange[T core.Integer](dst *Array[T], dstIndex int, src *Array[T], from, to int) error {
	if err := segcoll.CheckRange(from, to, src.size); err != nil {
		return err
	}
	n := to - from
	if err := segcoll.CheckRange(dstIndex, dstIndex+n, dst.size); err != nil {
		return err
	}
	if n == 0 {
		return nil
	}

	if dst == src {
		dst.writableRange(dst.left+dstIndex, dst.left+dstIndex+n)
		dst.moveAbs(dst.left+dstIndex, src.left+from, n)
		dst.verify("copy_range")
		return nil
	}

	S := dst.segSize()
	mask := S - 1
	shareable := dst.bits == src.bits && sameEnv(dst.env, src.env)

	for n > 0 {
		sAbs := src.left + from
		dAbs := dst.left + dstIndex

		if shareable && sAbs&mask == 0 && dAbs&mask == 0 && n >= S {
			dst.shareSegment(dAbs>>dst.bits, src.index.slots[sAbs>>src.bits])
			from += S
			dstIndex += S
			n -= S
			continue
		}

		d := dst.writable(dAbs >> dst.bits)[dAbs&mask:]
		s := src.index.slots[sAbs>>src.bits].data[sAbs&(src.segSize()-1):]
		c := min(n, len(d), len(s))
		dst.env.Copy(d[:c], s[:c])
		from += c
		dstIndex += c
		n -= c
	}
	dst.verify("copy_range")
	return nil
}

// sameEnv reports whether a and b are the same environment. Environments
// of uncomparable types never match, so their segments are copied.
func sameEnv[T core.Integer](a, b Environment[T]) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || ta == nil || !ta.Comparable() {
		return false
	}
	return a == b
}

// shareSegment rebinds slot si to s.
func (a *Array[T]) shareSegment(si int, s *Segment[T]) {
	a.ensureIndexUnique()
	old := a.index.slots[si]
	if old == s {
		return
	}
	s.refs++
	a.index.slots[si] = s
	a.releaseSegment(old)
	a.layout.Bump()
}

// AppendArray appends src[from:to] to a, sharing segments where alignment allows.
func (a *Array[T]) AppendArray(src *Array[T], from, to int) error {
	if err := segcoll.CheckRange(from, to, src.size); err != nil {
		return err
	}
	n := to - from
	if n == 0 {
		return nil
	}
	a.expand(a.size, n)
	return CopyRange(a, a.size-n, src, from, to)
}

// CopyTo copies elements starting at from into buf and returns the number copied.
func (a *Array[T]) CopyTo(buf []T, from int) (int, error) {
	if err := segcoll.CheckIndex(from, a.size+1); err != nil {
		return 0, err
	}
	n := min(len(buf), a.size-from)
	if n == 0 {
		return 0, nil
	}
	a.readRun(from, buf[:n])
	return n, nil
}

// SetFrom overwrites elements starting at index with vals.
func (a *Array[T]) SetFrom(index int, vals []T) error {
	if err := segcoll.CheckRange(index, index+len(vals), a.size); err != nil {
		return err
	}
	a.writeRun(index, vals)
	a.verify("set_from")
	return nil
}

// ToSlice returns a flat copy of all elements.
func (a *Array[T]) ToSlice() []T {
	out := make([]T, a.size)
	if a.size > 0 {
		a.readRun(0, out)
	}
	return out
}

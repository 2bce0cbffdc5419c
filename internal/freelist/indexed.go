package freelist

import (
	"slices"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// compactSlack is the number of stale stack entries tolerated before compaction.
const compactSlack = 64

// Indexed is a LIFO free list with constant-time arbitrary removal.
//
// A roaring64 bitmap records which offsets are free. Remove only clears the
// bit and leaves a stale entry on the stack; Pop skips entries whose bit is
// clear. Because Push always places an offset on top, the topmost stack entry
// of a free offset is its live entry, so LIFO order is exact.
type Indexed struct {
	stack   []int
	present *roaring64.Bitmap
}

// NewIndexed creates an empty Indexed free list.
func NewIndexed() *Indexed {
	return &Indexed{present: roaring64.New()}
}

func (x *Indexed) Push(offset int) {
	x.stack = append(x.stack, offset)
	x.present.Add(uint64(offset)) //nolint:gosec // offsets are non-negative
}

func (x *Indexed) Pop() (int, bool) {
	for n := len(x.stack); n > 0; n = len(x.stack) {
		offset := x.stack[n-1]
		x.stack = x.stack[:n-1]
		if x.present.CheckedRemove(uint64(offset)) { //nolint:gosec // offsets are non-negative
			return offset, true
		}
	}
	return 0, false
}

func (x *Indexed) Peek() (int, bool) {
	for n := len(x.stack); n > 0; n = len(x.stack) {
		offset := x.stack[n-1]
		if x.present.Contains(uint64(offset)) { //nolint:gosec // offsets are non-negative
			return offset, true
		}
		// Stale top entry, drop it.
		x.stack = x.stack[:n-1]
	}
	return 0, false
}

func (x *Indexed) Remove(offset int) bool {
	if offset < 0 || !x.present.CheckedRemove(uint64(offset)) {
		return false
	}
	if len(x.stack) > 2*x.Len()+compactSlack {
		x.stack = x.Snapshot()
	}
	return true
}

func (x *Indexed) Contains(offset int) bool {
	return offset >= 0 && x.present.Contains(uint64(offset))
}

func (x *Indexed) Len() int {
	return int(x.present.GetCardinality()) //nolint:gosec // bounded by len(stack)
}

// Snapshot walks the stack top-down and keeps the first entry of every free
// offset, dropping stale entries.
func (x *Indexed) Snapshot() []int {
	out := make([]int, 0, x.Len())
	pending := x.present.Clone()
	for i := len(x.stack) - 1; i >= 0; i-- {
		offset := x.stack[i]
		if pending.CheckedRemove(uint64(offset)) { //nolint:gosec // offsets are non-negative
			out = append(out, offset)
		}
	}
	slices.Reverse(out)
	return out
}

func (x *Indexed) Clear() {
	x.stack = x.stack[:0]
	x.present.Clear()
}

func (x *Indexed) Clone() FreeList {
	return &Indexed{
		stack:   slices.Clone(x.stack),
		present: x.present.Clone(),
	}
}

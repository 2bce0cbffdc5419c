package freelist

import (
	"slices"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// Lowest is a free list that always reuses the smallest free offset.
type Lowest struct {
	free *roaring64.Bitmap
}

// NewLowest creates an empty Lowest free list.
func NewLowest() *Lowest {
	return &Lowest{free: roaring64.New()}
}

func (l *Lowest) Push(offset int) {
	l.free.Add(uint64(offset)) //nolint:gosec // offsets are non-negative
}

func (l *Lowest) Pop() (int, bool) {
	if l.free.IsEmpty() {
		return 0, false
	}
	m := l.free.Minimum()
	l.free.Remove(m)
	return int(m), true //nolint:gosec // pushed from int
}

func (l *Lowest) Peek() (int, bool) {
	if l.free.IsEmpty() {
		return 0, false
	}
	return int(l.free.Minimum()), true //nolint:gosec // pushed from int
}

func (l *Lowest) Remove(offset int) bool {
	return offset >= 0 && l.free.CheckedRemove(uint64(offset))
}

func (l *Lowest) Contains(offset int) bool {
	return offset >= 0 && l.free.Contains(uint64(offset))
}

func (l *Lowest) Len() int {
	return int(l.free.GetCardinality()) //nolint:gosec // bounded by int offsets
}

// Snapshot returns the offsets in descending order so that the minimum is last.
func (l *Lowest) Snapshot() []int {
	out := make([]int, 0, l.Len())
	it := l.free.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next())) //nolint:gosec // pushed from int
	}
	slices.Reverse(out)
	return out
}

func (l *Lowest) Clear() {
	l.free.Clear()
}

func (l *Lowest) Clone() FreeList {
	return &Lowest{free: l.free.Clone()}
}

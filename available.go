package stablevec

import (
	"iter"
	"math"
)

// AvailableIndices enumerates the indices the next insertions would receive.
//
// It first replays a private copy of the free list, most recently freed
// offset first, and then counts upward from the high-water mark. The sequence
// is a snapshot taken at construction: mutating the vector afterwards is not
// observed.
type AvailableIndices[I Index] struct {
	free []int // stack layout, last element is yielded first
	next int
}

func newAvailableIndices[I Index](free []int, next int) *AvailableIndices[I] {
	return &AvailableIndices[I]{free: free, next: next}
}

// Next returns the next available index. The sequence never ends.
// It panics once the offset range of int is exhausted.
func (a *AvailableIndices[I]) Next() I {
	if n := len(a.free); n > 0 {
		offset := a.free[n-1]
		a.free = a.free[:n-1]
		return FromOffset[I](offset)
	}

	if a.next == math.MaxInt {
		panic("stablevec: available insertion index overflow")
	}
	offset := a.next
	a.next++
	return FromOffset[I](offset)
}

// Take returns the next n available indices.
func (a *AvailableIndices[I]) Take(n int) []I {
	out := make([]I, 0, n)
	for range n {
		out = append(out, a.Next())
	}
	return out
}

// All returns the remaining sequence as an iterator. Callers must stop the
// range themselves; the sequence is infinite.
func (a *AvailableIndices[I]) All() iter.Seq[I] {
	return func(yield func(I) bool) {
		for {
			if !yield(a.Next()) {
				return
			}
		}
	}
}

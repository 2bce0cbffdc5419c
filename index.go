package stablevec

import "fmt"

// Index is the set of types usable as handles into a stable vector.
//
// Any named integer type qualifies, e.g.
//
//	type NodeID uint32
//
// Conversions between an Index and its physical offset go through FromOffset
// and ToOffset, which panic if the value does not survive the round trip.
type Index interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Marked is an index tagged with a compile-time marker type.
//
// Marked[A] and Marked[B] are distinct types, so an index minted by a vector of
// one kind does not compile when passed to a vector of another kind. The tag
// carries no runtime state.
//
//	type nodeTag struct{}
//	type NodeIndex = stablevec.Marked[nodeTag]
type Marked[Tag any] int

// Offset returns the physical offset of the index.
func (m Marked[Tag]) Offset() int { return int(m) }

// FromOffset converts a physical offset into an index of type I.
// It panics if offset does not fit I.
func FromOffset[I Index](offset int) I {
	i := I(offset)
	if offset < 0 || int(i) != offset || i < 0 {
		panic(fmt.Sprintf("stablevec: offset %d does not fit index type %T", offset, i))
	}
	return i
}

// ToOffset converts an index into its physical offset.
// It panics if the index is negative or exceeds the int range.
func ToOffset[I Index](i I) int {
	offset := int(i)
	if i < 0 || offset < 0 || I(offset) != i {
		panic(fmt.Sprintf("stablevec: index %v of type %T is not a valid offset", i, i))
	}
	return offset
}

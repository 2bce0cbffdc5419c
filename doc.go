// Package stablevec provides a stable-index collection for Go.
//
// A stable vector hands back an index for every inserted element. The index
// keeps referring to that element until the element is removed, no matter
// what else is inserted or removed. Freed slots are reused, so memory stays
// bounded by the largest number of simultaneously live elements. It is the
// building block for arena-style graphs whose node identity must survive
// unrelated insertions and deletions.
//
// # Quick Start
//
//	v := stablevec.New[int, string]()
//	a := v.Insert("a")        // 0
//	b := v.Insert("b")        // 1
//	v.Remove(a)               // "a", slot 0 is free
//	c := v.Insert("c")        // 0 again
//	s, _ := v.Get(b)          // "b"
//
// # Index Types
//
// Any named integer type can serve as an index. Marked adds a compile-time tag
// so indices of different vectors cannot be mixed up:
//
//	type nodeTag struct{}
//	type NodeID = stablevec.Marked[nodeTag]
//	nodes := stablevec.New[NodeID, Node]()
//
// Index conversions panic if a physical offset does not fit the index type.
// That is a capacity violation, not a recoverable error.
//
// # Errors
//
// Every other failure is returned as a typed error and leaves the vector
// unchanged:
//
//   - ErrUnmapped (errors.Is ErrUnmappedIndex)
//   - ErrIndexInUse (errors.Is ErrIndexAlreadyInUse)
//   - ErrOverlappingIndices
//   - ErrNotNextIndex (errors.Is ErrNotTheNextAvailableInsertionIndex)
//
// # Slot Reuse
//
// By default the most recently freed slot is reused first. WithFreeListPolicy
// selects an indexed LIFO free list (constant-time InsertAtArbitraryIndex into
// holes) or lowest-offset-first reuse.
//
// # Persistence
//
// State exposes the complete slot layout and free list. The snapshot package
// encodes it with a codec, compresses it and stores it in a blobstore.
//
// An OptionVec is not safe for concurrent use.
package stablevec

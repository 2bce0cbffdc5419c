package freelist

// FreeList is a bag of empty slot offsets with a reuse discipline.
type FreeList interface {
	// Push adds an offset. The offset must not already be present.
	Push(offset int)
	// Pop removes and returns the next offset to reuse.
	Pop() (int, bool)
	// Peek returns the offset Pop would return, without removing it.
	Peek() (int, bool)
	// Remove deletes an arbitrary offset and reports whether it was present.
	Remove(offset int) bool
	// Contains reports whether offset is present.
	Contains(offset int) bool
	// Len returns the number of offsets.
	Len() int
	// Snapshot returns a copy of the offsets in stack layout: popping from the
	// end of the returned slice yields the same order as repeated Pop calls.
	Snapshot() []int
	// Clear removes all offsets.
	Clear()
	// Clone returns an independent copy.
	Clone() FreeList
}

// Policy selects a FreeList implementation.
type Policy uint8

const (
	// PolicyStack reuses the most recently freed offset first.
	PolicyStack Policy = iota
	// PolicyIndexed behaves like PolicyStack with constant-time arbitrary removal.
	PolicyIndexed
	// PolicyLowest reuses the lowest free offset first.
	PolicyLowest
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case PolicyStack:
		return "stack"
	case PolicyIndexed:
		return "indexed"
	case PolicyLowest:
		return "lowest"
	default:
		return "unknown"
	}
}

// New returns an empty free list for the given policy.
// Unknown policies fall back to PolicyStack.
func New(p Policy) FreeList {
	switch p {
	case PolicyIndexed:
		return NewIndexed()
	case PolicyLowest:
		return NewLowest()
	default:
		return NewStack()
	}
}

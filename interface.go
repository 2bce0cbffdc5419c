package stablevec

import "iter"

// Access describes element access inside a stable vector.
//
// It is separate from StableVec so that callers can hand out views that grant
// (mutable) element access without allowing insertion or removal.
type Access[I Index, T any] interface {
	// Get returns the element mapped to i, or ErrUnmapped.
	Get(i I) (T, error)
	// GetMut returns a pointer to the element mapped to i, or ErrUnmapped.
	GetMut(i I) (*T, error)
	// GetMany returns pointers to the elements mapped to the given indices.
	// A repeated index yields ErrOverlappingIndices.
	GetMany(indices ...I) ([]*T, error)
	// Len returns the number of elements.
	Len() int
	// IsEmpty reports whether Len() == 0.
	IsEmpty() bool
}

// StableVec is the full stable vector contract: every inserted element keeps
// its index until it is removed.
type StableVec[I Index, T any] interface {
	Access[I, T]

	Insert(element T) I
	InsertZero() I
	InsertInPlace(constructor func(I) T) I
	InsertAt(i I, element T) error
	InsertAtArbitraryIndex(i I, element T) error
	InsertAll(elements iter.Seq[T]) []I
	InsertAllInPlace(constructors iter.Seq[func(I) T]) []I
	Set(i I, element T) (T, bool)
	Remove(i I) (T, error)

	AvailableInsertionIndices() *AvailableIndices[I]
	All() iter.Seq2[I, T]
	AllMut() iter.Seq2[I, *T]
	Values() iter.Seq[T]
	Retain(keep func(T) bool)
	Clear()
}

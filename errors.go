package stablevec

import (
	"errors"
	"fmt"
)

var (
	// ErrUnmappedIndex is the kind of ErrUnmapped.
	ErrUnmappedIndex = errors.New("index is not mapped to any element")
	// ErrIndexAlreadyInUse is the kind of ErrIndexInUse.
	ErrIndexAlreadyInUse = errors.New("index is already mapped to an element")
	// ErrOverlappingIndices is returned by GetMany when the same index is requested twice.
	ErrOverlappingIndices = errors.New("the given indices contain an overlapping pair of indices")
	// ErrNotTheNextAvailableInsertionIndex is the kind of ErrNotNextIndex.
	ErrNotTheNextAvailableInsertionIndex = errors.New("index is not the next available insertion index")
	// ErrInvalidState is returned by FromState when the serialized state violates the free-list invariant.
	ErrInvalidState = errors.New("invalid stable vector state")
)

// ErrUnmapped indicates that a lookup or removal targeted an offset with no live element.
//
// errors.Is(err, ErrUnmappedIndex) reports true for it.
type ErrUnmapped struct {
	Index int
}

func (e *ErrUnmapped) Error() string {
	return fmt.Sprintf("the given index %d is not mapped to any element", e.Index)
}

func (e *ErrUnmapped) Is(target error) bool { return target == ErrUnmappedIndex }

// ErrIndexInUse indicates that an arbitrary-index insertion targeted an occupied offset.
type ErrIndexInUse struct {
	Index int
}

func (e *ErrIndexInUse) Error() string {
	return fmt.Sprintf("the given index %d is already mapped to an element", e.Index)
}

func (e *ErrIndexInUse) Is(target error) bool { return target == ErrIndexAlreadyInUse }

// ErrNotNextIndex indicates a sequential-insertion contract violation.
//
// Expected is the head of the available insertion index sequence at the time of the call.
type ErrNotNextIndex struct {
	Expected int
	Actual   int
}

func (e *ErrNotNextIndex) Error() string {
	return fmt.Sprintf("the given index %d is not the next available insertion index %d", e.Actual, e.Expected)
}

func (e *ErrNotNextIndex) Is(target error) bool { return target == ErrNotTheNextAvailableInsertionIndex }

func invalidState(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, fmt.Sprintf(format, args...))
}

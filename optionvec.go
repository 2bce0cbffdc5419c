package stablevec

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/hupe1980/stablevec/internal/freelist"
)

type slot[T any] struct {
	value    T
	occupied bool
}

// OptionVec is a stable vector backed by a slice of optional slots and a free
// list of empty slot offsets.
//
// Insertions reuse freed slots before growing the slice, so memory is
// O(maximum Len) and insert/remove are amortised O(1). An OptionVec is not
// safe for concurrent use.
//
// Indices are not generational: once a slot is freed and reused, an old index
// to it refers to the new element.
type OptionVec[I Index, T any] struct {
	slots   []slot[T]
	free    freelist.FreeList
	policy  FreeListPolicy
	logger  *Logger
	metrics MetricsCollector
}

var _ StableVec[int, struct{}] = (*OptionVec[int, struct{}])(nil)

// New creates an empty OptionVec.
func New[I Index, T any](opts ...Option) *OptionVec[I, T] {
	o := applyOptions(opts)
	return &OptionVec[I, T]{
		slots:   make([]slot[T], 0, o.capacity),
		free:    freelist.New(o.policy),
		policy:  o.policy,
		logger:  o.logger,
		metrics: o.metricsCollector,
	}
}

// FromSlice creates an OptionVec holding elements, where elements[i] is
// mapped to index i and there are no holes.
func FromSlice[I Index, T any](elements []T, opts ...Option) *OptionVec[I, T] {
	v := New[I, T](append([]Option{WithCapacity(len(elements))}, opts...)...)
	for _, e := range elements {
		v.slots = append(v.slots, slot[T]{value: e, occupied: true})
	}
	return v
}

// FromSeq creates an OptionVec from a finite sequence, like FromSlice.
func FromSeq[I Index, T any](elements iter.Seq[T], opts ...Option) *OptionVec[I, T] {
	v := New[I, T](opts...)
	for e := range elements {
		v.slots = append(v.slots, slot[T]{value: e, occupied: true})
	}
	return v
}

// nextOffset is the offset the next insertion receives.
func (v *OptionVec[I, T]) nextOffset() int {
	if offset, ok := v.free.Peek(); ok {
		return offset
	}
	return len(v.slots)
}

// claim takes the next offset out of the free list or appends an empty slot.
func (v *OptionVec[I, T]) claim() (int, bool) {
	if offset, ok := v.free.Pop(); ok {
		return offset, true
	}
	v.slots = append(v.slots, slot[T]{})
	return len(v.slots) - 1, false
}

func (v *OptionVec[I, T]) store(element T) I {
	// Convert first so that an index type overflow panics before mutating.
	i := FromOffset[I](v.nextOffset())
	offset, reused := v.claim()
	v.slots[offset] = slot[T]{value: element, occupied: true}
	v.metrics.RecordInsert(reused)
	return i
}

// Insert stores element in the next available slot and returns its index.
func (v *OptionVec[I, T]) Insert(element T) I {
	return v.store(element)
}

// InsertZero inserts the zero value of T.
func (v *OptionVec[I, T]) InsertZero() I {
	var zero T
	return v.store(zero)
}

// InsertInPlace inserts the element returned by constructor, which is called
// with the index the element will occupy. This allows elements that refer to
// themselves.
//
// constructor must not mutate v; InsertInPlace panics if it does.
func (v *OptionVec[I, T]) InsertInPlace(constructor func(I) T) I {
	offset := v.nextOffset()
	i := FromOffset[I](offset)
	element := constructor(i)
	if v.nextOffset() != offset {
		panic("stablevec: constructor passed to InsertInPlace mutated the vector")
	}
	return v.store(element)
}

// InsertAt inserts element at i, which must be the head of
// AvailableInsertionIndices. Otherwise it returns ErrNotNextIndex and leaves
// v unchanged.
func (v *OptionVec[I, T]) InsertAt(i I, element T) error {
	offset := ToOffset(i)
	expected := v.nextOffset()
	if offset != expected {
		err := &ErrNotNextIndex{Expected: expected, Actual: offset}
		v.metrics.RecordInsertAt(0, err)
		v.logger.LogInsertAt(context.Background(), offset, 0, err)
		return err
	}

	grown := 0
	if offset == len(v.slots) {
		grown = 1
	}
	if got := v.store(element); got != i {
		panic(fmt.Sprintf("stablevec: inserted at %v, expected %v", got, i))
	}
	v.metrics.RecordInsertAt(grown, nil)
	return nil
}

// InsertAtArbitraryIndex inserts element at any unoccupied index.
//
// If i lies beyond the backing array, the array is extended and every new
// intermediate slot becomes a hole. If i is occupied, ErrIndexInUse is
// returned and v is unchanged. Filling an existing hole removes it from the
// free list, which is linear in the number of holes unless the vector uses
// FreeListIndexed or FreeListLowest.
func (v *OptionVec[I, T]) InsertAtArbitraryIndex(i I, element T) error {
	offset := ToOffset(i)

	if offset >= len(v.slots) {
		grown := offset + 1 - len(v.slots)
		for hole := len(v.slots); hole < offset; hole++ {
			v.free.Push(hole)
		}
		v.slots = append(v.slots, make([]slot[T], grown)...)
		v.slots[offset] = slot[T]{value: element, occupied: true}
		v.metrics.RecordInsert(false)
		v.metrics.RecordInsertAt(grown, nil)
		v.logger.LogInsertAt(context.Background(), offset, grown, nil)
		return nil
	}

	if v.slots[offset].occupied {
		err := &ErrIndexInUse{Index: offset}
		v.metrics.RecordInsertAt(0, err)
		v.logger.LogInsertAt(context.Background(), offset, 0, err)
		return err
	}

	v.slots[offset] = slot[T]{value: element, occupied: true}
	v.free.Remove(offset)
	v.metrics.RecordInsert(true)
	v.metrics.RecordInsertAt(0, nil)
	return nil
}

// InsertAll inserts every element of elements and returns their indices in order.
func (v *OptionVec[I, T]) InsertAll(elements iter.Seq[T]) []I {
	var out []I
	for e := range elements {
		out = append(out, v.store(e))
	}
	return out
}

// InsertAllInPlace calls InsertInPlace for every constructor and returns the
// indices in order.
func (v *OptionVec[I, T]) InsertAllInPlace(constructors iter.Seq[func(I) T]) []I {
	var out []I
	for ctor := range constructors {
		out = append(out, v.InsertInPlace(ctor))
	}
	return out
}

// Set maps i to element. If i was mapped, the previous element is returned
// with true and no metrics are recorded. Otherwise element is inserted as by
// InsertAtArbitraryIndex.
func (v *OptionVec[I, T]) Set(i I, element T) (T, bool) {
	offset := ToOffset(i)
	if offset < len(v.slots) && v.slots[offset].occupied {
		prev := v.slots[offset].value
		v.slots[offset].value = element
		return prev, true
	}

	if err := v.InsertAtArbitraryIndex(i, element); err != nil {
		panic(fmt.Sprintf("stablevec: set into free slot failed: %v", err))
	}
	var zero T
	return zero, false
}

// Remove removes and returns the element mapped to i. The slot becomes the
// next one reused (under the default policy).
func (v *OptionVec[I, T]) Remove(i I) (T, error) {
	offset := ToOffset(i)
	if offset >= len(v.slots) || !v.slots[offset].occupied {
		var zero T
		err := &ErrUnmapped{Index: offset}
		v.metrics.RecordRemove(err)
		v.logger.LogRemove(context.Background(), offset, err)
		return zero, err
	}

	element := v.removeAt(offset)
	v.metrics.RecordRemove(nil)
	return element, nil
}

func (v *OptionVec[I, T]) removeAt(offset int) T {
	element := v.slots[offset].value
	v.slots[offset] = slot[T]{}
	v.free.Push(offset)
	return element
}

func (v *OptionVec[I, T]) lookup(i I) (*slot[T], error) {
	offset := ToOffset(i)
	if offset >= len(v.slots) || !v.slots[offset].occupied {
		v.metrics.RecordLookupMiss()
		return nil, &ErrUnmapped{Index: offset}
	}
	return &v.slots[offset], nil
}

// Get returns the element mapped to i.
func (v *OptionVec[I, T]) Get(i I) (T, error) {
	s, err := v.lookup(i)
	if err != nil {
		var zero T
		return zero, err
	}
	return s.value, nil
}

// GetMut returns a pointer to the element mapped to i. The pointer is valid
// until the next insertion, removal, Retain or Clear.
func (v *OptionVec[I, T]) GetMut(i I) (*T, error) {
	s, err := v.lookup(i)
	if err != nil {
		return nil, err
	}
	return &s.value, nil
}

// Contains reports whether i is mapped to an element.
func (v *OptionVec[I, T]) Contains(i I) bool {
	offset := ToOffset(i)
	return offset < len(v.slots) && v.slots[offset].occupied
}

// GetMany returns pointers to the elements mapped to indices, in request order.
//
// Indices are checked in order: the first unmapped index yields ErrUnmapped,
// the first index equal to an earlier one yields ErrOverlappingIndices. The
// pointers never alias each other.
func (v *OptionVec[I, T]) GetMany(indices ...I) ([]*T, error) {
	out := make([]*T, 0, len(indices))
	seen := make(map[int]struct{}, len(indices))
	for _, i := range indices {
		s, err := v.lookup(i)
		if err != nil {
			return nil, err
		}
		offset := ToOffset(i)
		if _, dup := seen[offset]; dup {
			return nil, ErrOverlappingIndices
		}
		seen[offset] = struct{}{}
		out = append(out, &s.value)
	}
	return out, nil
}

// AvailableInsertionIndices returns the sequence of indices the next
// insertions would receive: the holes in reuse order, followed by the indices
// past the end of the backing array.
//
// The sequence works on a copy of the free list and does not observe later
// mutations of v.
func (v *OptionVec[I, T]) AvailableInsertionIndices() *AvailableIndices[I] {
	return newAvailableIndices[I](v.free.Snapshot(), len(v.slots))
}

// All iterates over (index, element) pairs in ascending index order.
func (v *OptionVec[I, T]) All() iter.Seq2[I, T] {
	return func(yield func(I, T) bool) {
		for offset := range v.slots {
			s := &v.slots[offset]
			if s.occupied && !yield(FromOffset[I](offset), s.value) {
				return
			}
		}
	}
}

// AllMut is like All but yields pointers to the elements.
func (v *OptionVec[I, T]) AllMut() iter.Seq2[I, *T] {
	return func(yield func(I, *T) bool) {
		for offset := range v.slots {
			s := &v.slots[offset]
			if s.occupied && !yield(FromOffset[I](offset), &s.value) {
				return
			}
		}
	}
}

// Indices iterates over the mapped indices in ascending order.
func (v *OptionVec[I, T]) Indices() iter.Seq[I] {
	return func(yield func(I) bool) {
		for i := range v.All() {
			if !yield(i) {
				return
			}
		}
	}
}

// Values iterates over the elements in ascending index order, skipping holes.
func (v *OptionVec[I, T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, s := range v.slots {
			if s.occupied && !yield(s.value) {
				return
			}
		}
	}
}

// Collect returns the elements as a slice, dropping holes.
func (v *OptionVec[I, T]) Collect() []T {
	out := make([]T, 0, v.Len())
	for e := range v.Values() {
		out = append(out, e)
	}
	return out
}

// Retain removes every element for which keep returns false. keep is called
// exactly once per element, in ascending index order.
func (v *OptionVec[I, T]) Retain(keep func(T) bool) {
	visited, removed := 0, 0
	for offset := range v.slots {
		if !v.slots[offset].occupied {
			continue
		}
		visited++
		if !keep(v.slots[offset].value) {
			v.removeAt(offset)
			v.metrics.RecordRemove(nil)
			removed++
		}
	}
	v.logger.LogRetain(context.Background(), visited, removed)
}

// Clear removes all elements and resets the backing array. Every previously
// issued index becomes unmapped.
func (v *OptionVec[I, T]) Clear() {
	dropped := v.Len()
	clear(v.slots)
	v.slots = v.slots[:0]
	v.free.Clear()
	v.metrics.RecordClear(dropped)
	v.logger.LogClear(context.Background(), dropped)
}

// Len returns the number of elements.
func (v *OptionVec[I, T]) Len() int {
	return len(v.slots) - v.free.Len()
}

// IsEmpty reports whether v holds no elements.
func (v *OptionVec[I, T]) IsEmpty() bool {
	return v.Len() == 0
}

// HighWaterMark returns the length of the backing array, i.e. one past the
// largest index ever handed out since the last Clear.
func (v *OptionVec[I, T]) HighWaterMark() int {
	return len(v.slots)
}

// Holes returns the number of empty slots below the high-water mark.
func (v *OptionVec[I, T]) Holes() int {
	return v.free.Len()
}

// Policy returns the free-list policy of v.
func (v *OptionVec[I, T]) Policy() FreeListPolicy {
	return v.policy
}

// Clone returns a deep copy of the slot layout and free list. Elements are
// copied by value.
func (v *OptionVec[I, T]) Clone() *OptionVec[I, T] {
	slots := make([]slot[T], len(v.slots), cap(v.slots))
	copy(slots, v.slots)
	return &OptionVec[I, T]{
		slots:   slots,
		free:    v.free.Clone(),
		policy:  v.policy,
		logger:  v.logger,
		metrics: v.metrics,
	}
}

// String renders the occupied slots as "OptionVec [(0, a), (2, c)]".
func (v *OptionVec[I, T]) String() string {
	var sb strings.Builder
	sb.WriteString("OptionVec [")
	first := true
	for offset, s := range v.slots {
		if !s.occupied {
			continue
		}
		if !first {
			sb.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&sb, "(%d, %v)", offset, s.value)
	}
	sb.WriteString("]")
	return sb.String()
}

// Equal reports whether a and b map the same indices to equal elements and
// have the same backing array length. Free-list order is not compared.
func Equal[I Index, T comparable](a, b *OptionVec[I, T]) bool {
	if len(a.slots) != len(b.slots) {
		return false
	}
	for offset := range a.slots {
		if a.slots[offset] != b.slots[offset] {
			return false
		}
	}
	return true
}

package stablevec

// State is the full structural state of an OptionVec: every slot including
// holes, and the free list in stack layout (the last entry is reused first).
//
// It is the unit of serialization for the snapshot package. A State restored
// with FromState maps every index to the same element and reuses holes in
// the same order as the vector it was taken from.
type State[T any] struct {
	Slots    []StateSlot[T] `json:"slots"`
	FreeList []int          `json:"free_list"`
}

// StateSlot is one backing-array position of a State.
type StateSlot[T any] struct {
	Occupied bool `json:"occupied"`
	Value    T    `json:"value,omitempty"`
}

// State returns a copy of the internal state of v.
func (v *OptionVec[I, T]) State() State[T] {
	st := State[T]{
		Slots:    make([]StateSlot[T], len(v.slots)),
		FreeList: v.free.Snapshot(),
	}
	for offset, s := range v.slots {
		st.Slots[offset] = StateSlot[T]{Occupied: s.occupied, Value: s.value}
	}
	return st
}

// FromState rebuilds an OptionVec from st.
//
// It returns ErrInvalidState unless the free list names every hole exactly
// once and nothing else.
func FromState[I Index, T any](st State[T], opts ...Option) (*OptionVec[I, T], error) {
	v := New[I, T](append([]Option{WithCapacity(len(st.Slots))}, opts...)...)

	holes := 0
	for _, s := range st.Slots {
		if s.Occupied {
			v.slots = append(v.slots, slot[T]{value: s.Value, occupied: true})
		} else {
			v.slots = append(v.slots, slot[T]{})
			holes++
		}
	}

	if len(st.FreeList) != holes {
		return nil, invalidState("free list has %d entries, state has %d holes", len(st.FreeList), holes)
	}
	listed := make([]bool, len(st.Slots))
	for _, offset := range st.FreeList {
		if offset < 0 || offset >= len(st.Slots) {
			return nil, invalidState("free offset %d out of range [0, %d)", offset, len(st.Slots))
		}
		if st.Slots[offset].Occupied {
			return nil, invalidState("free offset %d refers to an occupied slot", offset)
		}
		if listed[offset] {
			return nil, invalidState("free offset %d listed twice", offset)
		}
		listed[offset] = true
		v.free.Push(offset)
	}
	return v, nil
}

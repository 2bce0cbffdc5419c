package freelist

import "slices"

// Stack is a LIFO free list backed by a slice.
type Stack struct {
	offsets []int
}

// NewStack creates an empty Stack.
func NewStack() *Stack {
	return &Stack{}
}

func (s *Stack) Push(offset int) {
	s.offsets = append(s.offsets, offset)
}

func (s *Stack) Pop() (int, bool) {
	n := len(s.offsets)
	if n == 0 {
		return 0, false
	}
	offset := s.offsets[n-1]
	s.offsets = s.offsets[:n-1]
	return offset, true
}

func (s *Stack) Peek() (int, bool) {
	n := len(s.offsets)
	if n == 0 {
		return 0, false
	}
	return s.offsets[n-1], true
}

// Remove is linear in the number of free offsets.
func (s *Stack) Remove(offset int) bool {
	i := slices.Index(s.offsets, offset)
	if i < 0 {
		return false
	}
	s.offsets = slices.Delete(s.offsets, i, i+1)
	return true
}

func (s *Stack) Contains(offset int) bool {
	return slices.Contains(s.offsets, offset)
}

func (s *Stack) Len() int { return len(s.offsets) }

func (s *Stack) Snapshot() []int {
	return slices.Clone(s.offsets)
}

func (s *Stack) Clear() {
	s.offsets = s.offsets[:0]
}

func (s *Stack) Clone() FreeList {
	return &Stack{offsets: slices.Clone(s.offsets)}
}

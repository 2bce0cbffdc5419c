package stablevec

import (
	"errors"
	"maps"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allPolicies = []FreeListPolicy{FreeListStack, FreeListIndexed, FreeListLowest}

// checkFreeList asserts that the free list names exactly the holes.
func checkFreeList[I Index, T any](t *testing.T, v *OptionVec[I, T]) {
	t.Helper()

	free := v.free.Snapshot()
	seen := make(map[int]bool, len(free))
	for _, offset := range free {
		require.False(t, seen[offset], "offset %d listed twice", offset)
		seen[offset] = true
		require.Less(t, offset, len(v.slots))
		require.False(t, v.slots[offset].occupied, "offset %d is occupied", offset)
	}
	for offset, s := range v.slots {
		if !s.occupied {
			require.True(t, seen[offset], "hole %d missing from free list", offset)
		}
	}
	require.Equal(t, len(v.slots)-len(free), v.Len())
}

func TestOptionVec_BasicLifecycle(t *testing.T) {
	v := New[int, string]()

	assert.Equal(t, 0, v.Insert("a"))
	assert.Equal(t, 1, v.Insert("b"))

	got, err := v.Remove(0)
	require.NoError(t, err)
	assert.Equal(t, "a", got)
	assert.Equal(t, 1, v.Len())

	assert.Equal(t, 0, v.Insert("c"))

	b, err := v.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "b", b)

	c, err := v.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "c", c)
	checkFreeList(t, v)
}

func TestOptionVec_ReuseIsLIFO(t *testing.T) {
	v := FromSlice[int]([]string{"a", "b", "c", "d"})

	_, err := v.Remove(1)
	require.NoError(t, err)
	_, err = v.Remove(3)
	require.NoError(t, err)

	assert.Equal(t, 3, v.Insert("x"))
	assert.Equal(t, 1, v.Insert("y"))
	assert.Equal(t, 4, v.Insert("z"))
}

func TestOptionVec_ReuseIsLowestFirst(t *testing.T) {
	v := FromSlice[int]([]string{"a", "b", "c", "d"}, WithFreeListPolicy(FreeListLowest))

	for _, i := range []int{3, 1, 2} {
		_, err := v.Remove(i)
		require.NoError(t, err)
	}

	assert.Equal(t, 1, v.Insert("x"))
	assert.Equal(t, 2, v.Insert("y"))
	assert.Equal(t, 3, v.Insert("z"))
	assert.Equal(t, FreeListLowest, v.Policy())
}

func TestOptionVec_InsertAtArbitraryIndexGrows(t *testing.T) {
	for _, p := range allPolicies {
		t.Run(p.String(), func(t *testing.T) {
			v := New[int, string](WithFreeListPolicy(p))

			require.NoError(t, v.InsertAtArbitraryIndex(5, "x"))
			assert.Equal(t, 1, v.Len())
			assert.Equal(t, 6, v.HighWaterMark())
			assert.Equal(t, 5, v.Holes())
			checkFreeList(t, v)

			avail := v.AvailableInsertionIndices()
			first := avail.Take(5)
			slices.Sort(first)
			assert.Equal(t, []int{0, 1, 2, 3, 4}, first)
			assert.Equal(t, 6, avail.Next())
		})
	}
}

func TestOptionVec_InsertAtArbitraryIndexCollision(t *testing.T) {
	v := New[int, string]()

	require.NoError(t, v.InsertAtArbitraryIndex(0, "x"))
	err := v.InsertAtArbitraryIndex(0, "y")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIndexAlreadyInUse)
	var inUse *ErrIndexInUse
	require.ErrorAs(t, err, &inUse)
	assert.Equal(t, 0, inUse.Index)

	got, err := v.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "x", got)
}

func TestOptionVec_InsertAtArbitraryIndexFillsHole(t *testing.T) {
	for _, p := range allPolicies {
		t.Run(p.String(), func(t *testing.T) {
			v := New[int, string](WithFreeListPolicy(p))
			require.NoError(t, v.InsertAtArbitraryIndex(3, "d"))

			require.NoError(t, v.InsertAtArbitraryIndex(1, "b"))
			assert.Equal(t, 2, v.Len())
			assert.Equal(t, 4, v.HighWaterMark())
			checkFreeList(t, v)

			idx := []int{v.Insert("p"), v.Insert("q"), v.Insert("r")}
			slices.Sort(idx)
			assert.Equal(t, []int{0, 2, 4}, idx)
			checkFreeList(t, v)
		})
	}
}

func TestOptionVec_InsertAtSequential(t *testing.T) {
	v := New[int, string]()

	err := v.InsertAt(5, "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotTheNextAvailableInsertionIndex)
	var notNext *ErrNotNextIndex
	require.ErrorAs(t, err, &notNext)
	assert.Equal(t, 0, notNext.Expected)
	assert.Equal(t, 5, notNext.Actual)
	assert.True(t, v.IsEmpty())
	assert.Equal(t, 0, v.HighWaterMark())

	require.NoError(t, v.InsertAt(0, "a"))
	require.NoError(t, v.InsertAt(1, "b"))
	_, err = v.Remove(0)
	require.NoError(t, err)

	next := v.AvailableInsertionIndices().Next()
	assert.Equal(t, 0, next)
	require.NoError(t, v.InsertAt(next, "c"))

	got, err := v.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "c", got)
}

func TestOptionVec_InsertInPlace(t *testing.T) {
	type node struct {
		self int
		name string
	}
	v := New[int, node]()
	v.Insert(node{name: "root"})

	i := v.InsertInPlace(func(i int) node { return node{self: i, name: "child"} })
	assert.Equal(t, 1, i)

	got, err := v.Get(i)
	require.NoError(t, err)
	assert.Equal(t, node{self: 1, name: "child"}, got)

	_, err = v.Remove(0)
	require.NoError(t, err)
	j := v.InsertInPlace(func(i int) node { return node{self: i} })
	assert.Equal(t, 0, j)
}

func TestOptionVec_InsertInPlacePanicsOnReentrantMutation(t *testing.T) {
	v := New[int, int]()
	assert.Panics(t, func() {
		v.InsertInPlace(func(int) int {
			v.Insert(1)
			return 2
		})
	})
}

func TestOptionVec_InsertAllAndZero(t *testing.T) {
	v := New[int, string]()
	z := v.InsertZero()
	assert.Equal(t, 0, z)

	idx := v.InsertAll(slices.Values([]string{"a", "b"}))
	assert.Equal(t, []int{1, 2}, idx)

	ctors := []func(int) string{
		func(i int) string { return "c" },
		func(i int) string { return "d" },
	}
	idx = v.InsertAllInPlace(slices.Values(ctors))
	assert.Equal(t, []int{3, 4}, idx)
	assert.Equal(t, []string{"", "a", "b", "c", "d"}, v.Collect())
}

func TestOptionVec_Set(t *testing.T) {
	v := New[int, string]()

	prev, ok := v.Set(2, "x")
	assert.False(t, ok)
	assert.Equal(t, "", prev)
	assert.Equal(t, 1, v.Len())
	checkFreeList(t, v)

	prev, ok = v.Set(2, "y")
	assert.True(t, ok)
	assert.Equal(t, "x", prev)
	assert.Equal(t, 1, v.Len())

	prev, ok = v.Set(0, "z")
	assert.False(t, ok)
	assert.Equal(t, "", prev)
	assert.Equal(t, 2, v.Len())
	checkFreeList(t, v)
}

func TestOptionVec_RemoveUnmapped(t *testing.T) {
	v := New[int, string]()
	v.Insert("a")

	_, err := v.Remove(7)
	assert.ErrorIs(t, err, ErrUnmappedIndex)

	_, err = v.Remove(0)
	require.NoError(t, err)

	_, err = v.Remove(0)
	var unmapped *ErrUnmapped
	require.ErrorAs(t, err, &unmapped)
	assert.Equal(t, 0, unmapped.Index)
	assert.Equal(t, 1, v.Holes())
}

func TestOptionVec_GetMut(t *testing.T) {
	v := FromSlice[int]([]int{1, 2, 3})

	p, err := v.GetMut(1)
	require.NoError(t, err)
	*p = 20

	got, err := v.Get(1)
	require.NoError(t, err)
	assert.Equal(t, 20, got)

	_, err = v.GetMut(3)
	assert.ErrorIs(t, err, ErrUnmappedIndex)
	assert.True(t, v.Contains(2))
	assert.False(t, v.Contains(3))
}

func TestOptionVec_GetMany(t *testing.T) {
	v := FromSlice[int]([]int{10, 20, 30})

	ptrs, err := v.GetMany(2, 0)
	require.NoError(t, err)
	*ptrs[0] += 1
	*ptrs[1] += 2
	assert.Equal(t, []int{12, 20, 31}, v.Collect())

	_, err = v.GetMany(0, 1, 0)
	assert.ErrorIs(t, err, ErrOverlappingIndices)

	_, err = v.GetMany(0, 5)
	assert.ErrorIs(t, err, ErrUnmappedIndex)

	ptrs, err = v.GetMany()
	require.NoError(t, err)
	assert.Empty(t, ptrs)
}

func TestOptionVec_Iteration(t *testing.T) {
	v := FromSlice[int]([]string{"a", "b", "c", "d"})
	_, err := v.Remove(1)
	require.NoError(t, err)

	got := maps.Collect(v.All())
	assert.Equal(t, map[int]string{0: "a", 2: "c", 3: "d"}, got)
	assert.Equal(t, []int{0, 2, 3}, slices.Collect(v.Indices()))

	for _, s := range v.AllMut() {
		*s += "!"
	}
	assert.Equal(t, []string{"a!", "c!", "d!"}, slices.Collect(v.Values()))

	// Early break.
	n := 0
	for range v.All() {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestOptionVec_Retain(t *testing.T) {
	for _, p := range allPolicies {
		t.Run(p.String(), func(t *testing.T) {
			v := FromSlice[int]([]int{1, 2, 3, 4, 5, 6}, WithFreeListPolicy(p))
			_, err := v.Remove(0)
			require.NoError(t, err)

			calls := 0
			v.Retain(func(e int) bool {
				calls++
				return e%2 == 0
			})

			assert.Equal(t, 5, calls)
			assert.Equal(t, []int{2, 4, 6}, v.Collect())
			assert.Equal(t, []int{1, 3, 5}, slices.Collect(v.Indices()))
			checkFreeList(t, v)
		})
	}
}

func TestOptionVec_ClearIsIdempotent(t *testing.T) {
	v := FromSlice[int]([]string{"a", "b"})
	_, err := v.Remove(0)
	require.NoError(t, err)

	v.Clear()
	v.Clear()

	assert.Equal(t, 0, v.Len())
	assert.True(t, v.IsEmpty())
	assert.Equal(t, 0, v.HighWaterMark())
	_, err = v.Get(1)
	assert.ErrorIs(t, err, ErrUnmappedIndex)
	assert.Equal(t, 0, v.Insert("c"))
}

func TestOptionVec_RoundTrip(t *testing.T) {
	in := []string{"x", "y", "z"}
	assert.Equal(t, in, FromSlice[int](in).Collect())
	assert.Equal(t, in, FromSeq[int](slices.Values(in)).Collect())
	assert.Empty(t, FromSlice[int]([]string{}).Collect())
}

func TestOptionVec_CloneAndEqual(t *testing.T) {
	v := FromSlice[int]([]int{1, 2, 3})
	_, err := v.Remove(1)
	require.NoError(t, err)

	c := v.Clone()
	assert.True(t, Equal(v, c))

	c.Insert(9)
	assert.False(t, Equal(v, c))
	assert.Equal(t, 2, v.Len())
	assert.Equal(t, 1, v.Holes())
}

func TestOptionVec_String(t *testing.T) {
	v := FromSlice[int]([]string{"a", "b", "c"})
	_, err := v.Remove(1)
	require.NoError(t, err)
	assert.Equal(t, "OptionVec [(0, a), (2, c)]", v.String())
	assert.Equal(t, "OptionVec []", New[int, string]().String())
}

func TestOptionVec_HandleStabilityUnderChurn(t *testing.T) {
	for _, p := range allPolicies {
		t.Run(p.String(), func(t *testing.T) {
			rng := rand.New(rand.NewSource(42))
			v := New[uint32, int](WithFreeListPolicy(p))
			live := map[uint32]int{}

			for step := range 5000 {
				switch op := rng.Intn(10); {
				case op < 5:
					live[v.Insert(step)] = step
				case op < 8:
					if len(live) == 0 {
						continue
					}
					keys := slices.Sorted(maps.Keys(live))
					k := keys[rng.Intn(len(keys))]
					got, err := v.Remove(k)
					require.NoError(t, err)
					require.Equal(t, live[k], got)
					delete(live, k)
				default:
					i := uint32(rng.Intn(v.HighWaterMark() + 8))
					err := v.InsertAtArbitraryIndex(i, step)
					if _, ok := live[i]; ok {
						require.ErrorIs(t, err, ErrIndexAlreadyInUse)
					} else {
						require.NoError(t, err)
						live[i] = step
					}
				}

				if step%97 == 0 {
					checkFreeList(t, v)
				}
			}

			checkFreeList(t, v)
			require.Equal(t, len(live), v.Len())
			for k, want := range live {
				got, err := v.Get(k)
				require.NoError(t, err)
				require.Equal(t, want, got)
			}
		})
	}
}

func TestOptionVec_AvailableIndicesPredictInsertions(t *testing.T) {
	for _, p := range allPolicies {
		t.Run(p.String(), func(t *testing.T) {
			v := FromSlice[int]([]int{0, 1, 2, 3, 4, 5}, WithFreeListPolicy(p))
			for _, i := range []int{4, 1, 2} {
				_, err := v.Remove(i)
				require.NoError(t, err)
			}

			predicted := v.AvailableInsertionIndices().Take(5)
			var actual []int
			for range 5 {
				actual = append(actual, v.Insert(0))
			}
			assert.Equal(t, predicted, actual)
		})
	}
}

func TestOptionVec_IndexTypeOverflowPanics(t *testing.T) {
	v := New[uint8, int]()
	for i := range 256 {
		v.Insert(i)
	}
	assert.Panics(t, func() { v.Insert(256) })
	assert.Equal(t, 256, v.Len())
}

func TestOptionVec_ErrorsAreDistinct(t *testing.T) {
	err := error(&ErrUnmapped{Index: 1})
	assert.False(t, errors.Is(err, ErrIndexAlreadyInUse))
	assert.Equal(t, "the given index 1 is not mapped to any element", err.Error())
	assert.Equal(t, "the given index 2 is already mapped to an element", (&ErrIndexInUse{Index: 2}).Error())
	assert.Equal(t, "the given index 5 is not the next available insertion index 0",
		(&ErrNotNextIndex{Expected: 0, Actual: 5}).Error())
}

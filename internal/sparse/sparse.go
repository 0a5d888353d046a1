// Package sparse provides a sparse set data structure for efficient membership
// testing over a bounded universe of small integers.
//
// A sparse set supports O(1) insertion, membership testing, and clearing
// while maintaining a dense list of elements for iteration. Lexical-analyzer
// construction uses it to accumulate each position's followpos set once a
// syntax tree is built, and to accumulate the successor position sets of a
// DFA state during direct (followpos) construction. Both are classic
// sparse-set workloads: the universe (the tree's position count) is known up
// front, and sets are rebuilt or mutated far more often than they are
// compared for equality. firstpos/lastpos are not kept here: they are built
// while the tree is still growing and are stored as sorted slices.
package sparse

// Set is a set of uint32 values drawn from [0, capacity) that supports O(1)
// insertion, membership testing, and clearing. It maintains both a sparse
// array (value -> index in dense, for membership testing) and a dense array
// (for iteration and stable insertion order).
type Set struct {
	sparse []uint32 // maps value -> index in dense
	dense  []uint32 // the actual values, in insertion order
	size   uint32
}

// New creates a Set over the universe [0, capacity).
func New(capacity uint32) *Set {
	return &Set{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds value to the set. If the value is already present, this is a
// no-op. Panics if value >= capacity.
func (s *Set) Insert(value uint32) {
	if s.Contains(value) {
		return
	}
	s.dense = append(s.dense, value)
	s.sparse[value] = s.size
	s.size++
}

// Contains reports whether value is in the set.
func (s *Set) Contains(value uint32) bool {
	if value >= uint32(len(s.sparse)) {
		return false
	}
	idx := s.sparse[value]
	return idx < s.size && s.dense[idx] == value
}

// Clear removes all elements from the set in O(1) time. Stale entries left
// behind in sparse are harmless: Contains always cross-checks them against
// dense before trusting them.
func (s *Set) Clear() {
	s.size = 0
	s.dense = s.dense[:0]
}

// Len returns the number of elements in the set.
func (s *Set) Len() int {
	return int(s.size)
}

// IsEmpty reports whether the set has no elements.
func (s *Set) IsEmpty() bool {
	return s.size == 0
}

// Values returns the set's elements in insertion order. The returned slice
// aliases internal storage and is valid only until the next mutation.
func (s *Set) Values() []uint32 {
	return s.dense[:s.size]
}

// Clone returns an independent copy of the set.
func (s *Set) Clone() *Set {
	c := &Set{
		sparse: make([]uint32, len(s.sparse)),
		dense:  make([]uint32, s.size, cap(s.dense)),
		size:   s.size,
	}
	copy(c.sparse, s.sparse)
	copy(c.dense, s.dense[:s.size])
	return c
}

// UnionWith inserts every element of other into s without allocating an
// intermediate set.
func (s *Set) UnionWith(other *Set) {
	for _, v := range other.Values() {
		s.Insert(v)
	}
}

// Sorted returns the set's elements as a freshly allocated, ascending sorted
// slice. Position sets need a canonical, comparable form to key a DFA
// state-discovery map and to hand out a followpos set; a sparse set is
// neither comparable nor hashable as-is, so Sorted is how callers freeze
// one into something that can be used as a map key (after converting to a
// string or array) or compared with reflect.DeepEqual-style equality.
func (s *Set) Sorted() []uint32 {
	out := make([]uint32, s.size)
	copy(out, s.dense[:s.size])
	insertionSort(out)
	return out
}

// insertionSort sorts small slices of position ids in place. Position sets
// encountered in practice hold a handful of elements (the alternatives
// reachable at one tree position), so a simple O(n^2) sort avoids pulling in
// sort.Slice's reflection overhead and outperforms a general-purpose sort at
// these sizes.
func insertionSort(xs []uint32) {
	for i := 1; i < len(xs); i++ {
		v := xs[i]
		j := i - 1
		for j >= 0 && xs[j] > v {
			xs[j+1] = xs[j]
			j--
		}
		xs[j+1] = v
	}
}

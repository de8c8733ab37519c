// Copyright 2018 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package obtree

import (
	"cmp"

	"github.com/arborist-go/obtree/internal/btree"
)

// Set is an ordered set of unique keys (spec.md 4.6). It delegates every
// operation to the *_unique family of internal/btree.Tree operations.
type Set[K any] struct {
	t *btree.Tree[K, struct{}]
}

// NewSet constructs an empty Set using the natural order of K.
func NewSet[K cmp.Ordered]() *Set[K] {
	return &Set[K]{t: newTree[K, struct{}](0, nil)}
}

// NewSetFunc constructs an empty Set ordered by a caller-supplied
// three-way comparator, for key types without a natural cmp.Ordered
// order.
func NewSetFunc[K any](cmpFn func(a, b K) int, kind btree.Kind) *Set[K] {
	return &Set[K]{t: newTreeWith[K, struct{}](cmpFn, kind, 0, nil)}
}

// NewSetFromKeys constructs a Set containing every key in keys, the Go
// realization of original_source btree_multimap.h's range constructor
// (itself a thin wrapper over insert(b, e)).
func NewSetFromKeys[K cmp.Ordered](keys []K) *Set[K] {
	s := NewSet[K]()
	s.InsertAll(keys)
	return s
}

// Len returns the number of elements in the set.
func (s *Set[K]) Len() int { return s.t.Len() }

// Height returns the number of levels in the tree.
func (s *Set[K]) Height() int { return s.t.Height() }

// LeafNodes returns the number of leaf nodes backing the set.
func (s *Set[K]) LeafNodes() int { return s.t.LeafNodes() }

// InternalNodes returns the number of internal nodes backing the set.
func (s *Set[K]) InternalNodes() int { return s.t.InternalNodes() }

// Nodes returns the total node count backing the set.
func (s *Set[K]) Nodes() int { return s.t.Nodes() }

// BytesUsed estimates the set's total allocated footprint.
func (s *Set[K]) BytesUsed() int64 { return s.t.BytesUsed() }

// Fullness reports the fraction of allocated value capacity in use.
func (s *Set[K]) Fullness() float64 { return s.t.Fullness() }

// Overhead returns the bookkeeping bytes consumed beyond raw entry data.
func (s *Set[K]) Overhead() int64 { return s.t.Overhead() }

// Contains reports whether k is in the set.
func (s *Set[K]) Contains(k K) bool {
	_, ok := s.t.FindUnique(k)
	return ok
}

// Count reports 0 or 1, matching spec.md 4.6's "find/count/erase(key)
// report presence as 0/1" for the unique-keyed façades.
func (s *Set[K]) Count(k K) int {
	if s.Contains(k) {
		return 1
	}
	return 0
}

// Insert adds k to the set. It reports whether k was newly inserted.
func (s *Set[K]) Insert(k K) bool {
	_, inserted := s.t.InsertUnique(k, func() struct{} { return struct{}{} })
	return inserted
}

// Erase removes k from the set. It reports whether k was present.
func (s *Set[K]) Erase(k K) bool {
	return s.t.EraseKeyUnique(k)
}

// EraseIter removes the element at it and returns an iterator to its
// successor.
func (s *Set[K]) EraseIter(it Iterator[K, struct{}]) Iterator[K, struct{}] {
	return s.t.Erase(it)
}

// EraseRange removes every element in [first, last) and returns how many
// were removed.
func (s *Set[K]) EraseRange(first, last Iterator[K, struct{}]) int {
	return s.t.EraseRange(first, last)
}

// InsertHint adds k to the set using position as a locality hint: if k
// belongs immediately before position this is amortized O(1), otherwise it
// falls back to a plain Insert. It reports whether k was newly inserted.
func (s *Set[K]) InsertHint(position Iterator[K, struct{}], k K) bool {
	_, inserted := s.t.InsertUniqueHint(position, k, func() struct{} { return struct{}{} })
	return inserted
}

// InsertAll adds every key in keys not already present, each hinted at
// End().
func (s *Set[K]) InsertAll(keys []K) {
	vals := make([]struct{}, len(keys))
	s.t.InsertUniqueRange(keys, vals)
}

// EqualRange returns [LowerBound(k), UpperBound(k)).
func (s *Set[K]) EqualRange(k K) (Iterator[K, struct{}], Iterator[K, struct{}]) {
	return s.t.EqualRange(k)
}

// Swap exchanges the entire contents of s and other in O(1).
func (s *Set[K]) Swap(other *Set[K]) { s.t.Swap(other.t) }

// Equal reports whether s and other contain the same keys in the same
// order.
func (s *Set[K]) Equal(other *Set[K]) bool {
	return s.t.Equal(other.t, func(struct{}, struct{}) bool { return true })
}

// NotEqual is the negation of Equal.
func (s *Set[K]) NotEqual(other *Set[K]) bool { return !s.Equal(other) }

// Clear removes every element.
func (s *Set[K]) Clear() { s.t.Clear() }

// LowerBound returns an iterator to the first element not less than k.
func (s *Set[K]) LowerBound(k K) Iterator[K, struct{}] { return s.t.LowerBound(k) }

// UpperBound returns an iterator to the first element greater than k.
func (s *Set[K]) UpperBound(k K) Iterator[K, struct{}] { return s.t.UpperBound(k) }

// First returns an iterator to the smallest element.
func (s *Set[K]) First() Iterator[K, struct{}] { return s.t.First() }

// Last returns an iterator to the largest element.
func (s *Set[K]) Last() Iterator[K, struct{}] { return s.t.Last() }

// End returns the past-the-end iterator.
func (s *Set[K]) End() Iterator[K, struct{}] { return s.t.End() }

// Verify checks every structural invariant; it is a public operation,
// not a debug-only assertion.
func (s *Set[K]) Verify() error { return s.t.Verify() }

// String renders the set's tree structure for debugging.
func (s *Set[K]) String() string { return s.t.String() }

// Copyright 2018 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package obtree

import (
	"cmp"

	"github.com/arborist-go/obtree/internal/btree"
)

// MultiSet is an ordered multiset: duplicate keys are permitted and
// insert_multi places new duplicates at the key's upper bound, so
// multi-insertion of equal keys preserves FIFO order (spec.md 5).
type MultiSet[K any] struct {
	t *btree.Tree[K, struct{}]
}

// NewMultiSet constructs an empty MultiSet using the natural order of K.
func NewMultiSet[K cmp.Ordered]() *MultiSet[K] {
	return &MultiSet[K]{t: newTree[K, struct{}](0, nil)}
}

// NewMultiSetFunc constructs an empty MultiSet ordered by a
// caller-supplied three-way comparator.
func NewMultiSetFunc[K any](cmpFn func(a, b K) int, kind btree.Kind) *MultiSet[K] {
	return &MultiSet[K]{t: newTreeWith[K, struct{}](cmpFn, kind, 0, nil)}
}

// NewMultiSetFromKeys constructs a MultiSet containing every key in keys,
// in order, the Go realization of original_source btree_multimap.h's
// range constructor.
func NewMultiSetFromKeys[K cmp.Ordered](keys []K) *MultiSet[K] {
	s := NewMultiSet[K]()
	s.InsertAll(keys)
	return s
}

// Len returns the total number of elements, counting duplicates.
func (s *MultiSet[K]) Len() int { return s.t.Len() }

// Height returns the number of levels in the tree.
func (s *MultiSet[K]) Height() int { return s.t.Height() }

// LeafNodes returns the number of leaf nodes backing the multiset.
func (s *MultiSet[K]) LeafNodes() int { return s.t.LeafNodes() }

// InternalNodes returns the number of internal nodes backing the multiset.
func (s *MultiSet[K]) InternalNodes() int { return s.t.InternalNodes() }

// Nodes returns the total node count backing the multiset.
func (s *MultiSet[K]) Nodes() int { return s.t.Nodes() }

// BytesUsed estimates the multiset's total allocated footprint.
func (s *MultiSet[K]) BytesUsed() int64 { return s.t.BytesUsed() }

// Fullness reports the fraction of allocated value capacity in use.
func (s *MultiSet[K]) Fullness() float64 { return s.t.Fullness() }

// Overhead returns the bookkeeping bytes consumed beyond raw entry data.
func (s *MultiSet[K]) Overhead() int64 { return s.t.Overhead() }

// Contains reports whether k occurs at least once.
func (s *MultiSet[K]) Contains(k K) bool {
	_, ok := s.t.FindMulti(k)
	return ok
}

// Count returns the number of occurrences of k: distance(lower_bound(k),
// upper_bound(k)) per spec.md 4.6.
func (s *MultiSet[K]) Count(k K) int { return s.t.Count(k) }

// Insert adds another occurrence of k.
func (s *MultiSet[K]) Insert(k K) {
	s.t.InsertMulti(k, struct{}{})
}

// Erase removes every occurrence of k and returns how many were removed.
func (s *MultiSet[K]) Erase(k K) int {
	return s.t.EraseKeyMulti(k)
}

// EraseIter removes the element at it and returns an iterator to its
// successor.
func (s *MultiSet[K]) EraseIter(it Iterator[K, struct{}]) Iterator[K, struct{}] {
	return s.t.Erase(it)
}

// EraseRange removes every element in [first, last) and returns how many
// were removed.
func (s *MultiSet[K]) EraseRange(first, last Iterator[K, struct{}]) int {
	return s.t.EraseRange(first, last)
}

// InsertHint adds another occurrence of k using position as a locality
// hint, returning an iterator to the inserted element.
func (s *MultiSet[K]) InsertHint(position Iterator[K, struct{}], k K) Iterator[K, struct{}] {
	return s.t.InsertMultiHint(position, k, struct{}{})
}

// InsertAll adds another occurrence of every key in keys, each hinted at
// End().
func (s *MultiSet[K]) InsertAll(keys []K) {
	vals := make([]struct{}, len(keys))
	s.t.InsertMultiRange(keys, vals)
}

// EqualRange returns [LowerBound(k), UpperBound(k)).
func (s *MultiSet[K]) EqualRange(k K) (Iterator[K, struct{}], Iterator[K, struct{}]) {
	return s.t.EqualRange(k)
}

// Swap exchanges the entire contents of s and other in O(1).
func (s *MultiSet[K]) Swap(other *MultiSet[K]) { s.t.Swap(other.t) }

// Equal reports whether s and other contain the same keys in the same
// order.
func (s *MultiSet[K]) Equal(other *MultiSet[K]) bool {
	return s.t.Equal(other.t, func(struct{}, struct{}) bool { return true })
}

// NotEqual is the negation of Equal.
func (s *MultiSet[K]) NotEqual(other *MultiSet[K]) bool { return !s.Equal(other) }

// Clear removes every element.
func (s *MultiSet[K]) Clear() { s.t.Clear() }

// LowerBound returns an iterator to the first element not less than k.
func (s *MultiSet[K]) LowerBound(k K) Iterator[K, struct{}] { return s.t.LowerBound(k) }

// UpperBound returns an iterator to the first element greater than k.
func (s *MultiSet[K]) UpperBound(k K) Iterator[K, struct{}] { return s.t.UpperBound(k) }

// First returns an iterator to the smallest element.
func (s *MultiSet[K]) First() Iterator[K, struct{}] { return s.t.First() }

// Last returns an iterator to the largest element.
func (s *MultiSet[K]) Last() Iterator[K, struct{}] { return s.t.Last() }

// End returns the past-the-end iterator.
func (s *MultiSet[K]) End() Iterator[K, struct{}] { return s.t.End() }

// Verify checks every structural invariant.
func (s *MultiSet[K]) Verify() error { return s.t.Verify() }

// String renders the multiset's tree structure for debugging.
func (s *MultiSet[K]) String() string { return s.t.String() }

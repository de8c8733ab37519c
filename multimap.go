// Copyright 2018 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package obtree

import (
	"cmp"

	"github.com/arborist-go/obtree/internal/btree"
)

// MultiMap is an ordered map allowing duplicate keys, each insertion
// landing at the key's upper bound (FIFO order among equal keys, spec.md
// 5).
type MultiMap[K any, V any] struct {
	t *btree.Tree[K, V]
}

// NewMultiMap constructs an empty MultiMap using the natural order of K.
func NewMultiMap[K cmp.Ordered, V any]() *MultiMap[K, V] {
	return &MultiMap[K, V]{t: newTree[K, V](0, nil)}
}

// NewMultiMapFunc constructs an empty MultiMap ordered by a
// caller-supplied three-way comparator.
func NewMultiMapFunc[K any, V any](cmpFn func(a, b K) int, kind btree.Kind) *MultiMap[K, V] {
	return &MultiMap[K, V]{t: newTreeWith[K, V](cmpFn, kind, 0, nil)}
}

// NewMultiMapFromEntries constructs a MultiMap containing every (keys[i],
// vals[i]) entry, in order, the Go realization of original_source
// btree_multimap.h's range constructor.
func NewMultiMapFromEntries[K cmp.Ordered, V any](keys []K, vals []V) *MultiMap[K, V] {
	m := NewMultiMap[K, V]()
	m.InsertAll(keys, vals)
	return m
}

// Len returns the total number of entries, counting duplicate keys.
func (m *MultiMap[K, V]) Len() int { return m.t.Len() }

// Height returns the number of levels in the tree.
func (m *MultiMap[K, V]) Height() int { return m.t.Height() }

// LeafNodes returns the number of leaf nodes backing the multimap.
func (m *MultiMap[K, V]) LeafNodes() int { return m.t.LeafNodes() }

// InternalNodes returns the number of internal nodes backing the multimap.
func (m *MultiMap[K, V]) InternalNodes() int { return m.t.InternalNodes() }

// Nodes returns the total node count backing the multimap.
func (m *MultiMap[K, V]) Nodes() int { return m.t.Nodes() }

// BytesUsed estimates the multimap's total allocated footprint.
func (m *MultiMap[K, V]) BytesUsed() int64 { return m.t.BytesUsed() }

// Fullness reports the fraction of allocated value capacity in use.
func (m *MultiMap[K, V]) Fullness() float64 { return m.t.Fullness() }

// Overhead returns the bookkeeping bytes consumed beyond raw entry data.
func (m *MultiMap[K, V]) Overhead() int64 { return m.t.Overhead() }

// Count returns the number of entries with key k.
func (m *MultiMap[K, V]) Count(k K) int { return m.t.Count(k) }

// Insert adds another (k, v) entry, even if k is already present.
func (m *MultiMap[K, V]) Insert(k K, v V) {
	m.t.InsertMulti(k, v)
}

// Erase removes every entry with key k and returns how many were removed.
func (m *MultiMap[K, V]) Erase(k K) int {
	return m.t.EraseKeyMulti(k)
}

// EraseIter removes the entry at it and returns an iterator to its
// successor.
func (m *MultiMap[K, V]) EraseIter(it Iterator[K, V]) Iterator[K, V] {
	return m.t.Erase(it)
}

// EraseRange removes every entry in [first, last) and returns how many
// were removed.
func (m *MultiMap[K, V]) EraseRange(first, last Iterator[K, V]) int {
	return m.t.EraseRange(first, last)
}

// InsertHint adds another (k, v) entry using position as a locality hint,
// returning an iterator to the inserted entry.
func (m *MultiMap[K, V]) InsertHint(position Iterator[K, V], k K, v V) Iterator[K, V] {
	return m.t.InsertMultiHint(position, k, v)
}

// InsertAll adds every (keys[i], vals[i]) entry, each hinted at End().
func (m *MultiMap[K, V]) InsertAll(keys []K, vals []V) {
	m.t.InsertMultiRange(keys, vals)
}

// EqualRange returns [LowerBound(k), UpperBound(k)).
func (m *MultiMap[K, V]) EqualRange(k K) (Iterator[K, V], Iterator[K, V]) {
	return m.t.EqualRange(k)
}

// Swap exchanges the entire contents of m and other in O(1).
func (m *MultiMap[K, V]) Swap(other *MultiMap[K, V]) { m.t.Swap(other.t) }

// Equal reports whether m and other hold the same entries in the same
// order, comparing values with valEq.
func (m *MultiMap[K, V]) Equal(other *MultiMap[K, V], valEq func(a, b V) bool) bool {
	return m.t.Equal(other.t, valEq)
}

// NotEqual is the negation of Equal.
func (m *MultiMap[K, V]) NotEqual(other *MultiMap[K, V], valEq func(a, b V) bool) bool {
	return !m.Equal(other, valEq)
}

// Clear removes every entry.
func (m *MultiMap[K, V]) Clear() { m.t.Clear() }

// LowerBound returns an iterator to the first entry with a key not less
// than k.
func (m *MultiMap[K, V]) LowerBound(k K) Iterator[K, V] { return m.t.LowerBound(k) }

// UpperBound returns an iterator to the first entry with a key greater
// than k.
func (m *MultiMap[K, V]) UpperBound(k K) Iterator[K, V] { return m.t.UpperBound(k) }

// First returns an iterator to the entry with the smallest key.
func (m *MultiMap[K, V]) First() Iterator[K, V] { return m.t.First() }

// Last returns an iterator to the entry with the largest key.
func (m *MultiMap[K, V]) Last() Iterator[K, V] { return m.t.Last() }

// End returns the past-the-end iterator.
func (m *MultiMap[K, V]) End() Iterator[K, V] { return m.t.End() }

// Verify checks every structural invariant.
func (m *MultiMap[K, V]) Verify() error { return m.t.Verify() }

// String renders the multimap's tree structure for debugging.
func (m *MultiMap[K, V]) String() string { return m.t.String() }

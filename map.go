// Copyright 2018 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package obtree

import (
	"cmp"

	"github.com/arborist-go/obtree/internal/btree"
)

// Map is an ordered map with unique keys (spec.md 4.6), delegating to the
// *_unique family of internal/btree.Tree operations.
type Map[K any, V any] struct {
	t *btree.Tree[K, V]
}

// NewMap constructs an empty Map using the natural order of K.
func NewMap[K cmp.Ordered, V any]() *Map[K, V] {
	return &Map[K, V]{t: newTree[K, V](0, nil)}
}

// NewMapFunc constructs an empty Map ordered by a caller-supplied
// three-way comparator.
func NewMapFunc[K any, V any](cmpFn func(a, b K) int, kind btree.Kind) *Map[K, V] {
	return &Map[K, V]{t: newTreeWith[K, V](cmpFn, kind, 0, nil)}
}

// NewMapFromEntries constructs a Map containing every (keys[i], vals[i])
// entry, the Go realization of original_source btree_multimap.h's range
// constructor.
func NewMapFromEntries[K cmp.Ordered, V any](keys []K, vals []V) *Map[K, V] {
	m := NewMap[K, V]()
	m.InsertAll(keys, vals)
	return m
}

// Len returns the number of entries in the map.
func (m *Map[K, V]) Len() int { return m.t.Len() }

// Height returns the number of levels in the tree.
func (m *Map[K, V]) Height() int { return m.t.Height() }

// LeafNodes returns the number of leaf nodes backing the map.
func (m *Map[K, V]) LeafNodes() int { return m.t.LeafNodes() }

// InternalNodes returns the number of internal nodes backing the map.
func (m *Map[K, V]) InternalNodes() int { return m.t.InternalNodes() }

// Nodes returns the total node count backing the map.
func (m *Map[K, V]) Nodes() int { return m.t.Nodes() }

// BytesUsed estimates the map's total allocated footprint.
func (m *Map[K, V]) BytesUsed() int64 { return m.t.BytesUsed() }

// Fullness reports the fraction of allocated value capacity in use.
func (m *Map[K, V]) Fullness() float64 { return m.t.Fullness() }

// Overhead returns the bookkeeping bytes consumed beyond raw entry data.
func (m *Map[K, V]) Overhead() int64 { return m.t.Overhead() }

// Get looks up k, reporting whether it is present.
func (m *Map[K, V]) Get(k K) (V, bool) {
	it, ok := m.t.FindUnique(k)
	if !ok {
		var zero V
		return zero, false
	}
	return it.Value(), true
}

// Count reports 0 or 1.
func (m *Map[K, V]) Count(k K) int {
	if _, ok := m.t.FindUnique(k); ok {
		return 1
	}
	return 0
}

// Set inserts or overwrites the value for k.
func (m *Map[K, V]) Set(k K, v V) {
	it, inserted := m.t.InsertUnique(k, func() V { return v })
	if !inserted {
		it.SetValue(v)
	}
}

// GetOrInsert is the Go realization of spec.md 4.6's operator[]: it
// returns a copy of the value mapped to k, first inserting makeDefault()
// if k is absent -- the zero value's construction is
// free in Go, so the "do not construct the default when the key already
// exists" contract specifically concerns not calling makeDefault more
// than necessary, which InsertUnique's lazy newVal callback guarantees.
func (m *Map[K, V]) GetOrInsert(k K, makeDefault func() V) V {
	it, _ := m.t.InsertUnique(k, makeDefault)
	return it.Value()
}

// Erase removes k. It reports whether k was present.
func (m *Map[K, V]) Erase(k K) bool {
	return m.t.EraseKeyUnique(k)
}

// EraseIter removes the entry at it and returns an iterator to its
// successor.
func (m *Map[K, V]) EraseIter(it Iterator[K, V]) Iterator[K, V] {
	return m.t.Erase(it)
}

// EraseRange removes every entry in [first, last) and returns how many
// were removed.
func (m *Map[K, V]) EraseRange(first, last Iterator[K, V]) int {
	return m.t.EraseRange(first, last)
}

// SetHint inserts or overwrites the value for k using position as a
// locality hint: if k belongs immediately before position this is
// amortized O(1), otherwise it falls back to a plain Set. It reports
// whether k was newly inserted.
func (m *Map[K, V]) SetHint(position Iterator[K, V], k K, v V) bool {
	it, inserted := m.t.InsertUniqueHint(position, k, func() V { return v })
	if !inserted {
		it.SetValue(v)
	}
	return inserted
}

// InsertAll inserts every (keys[i], vals[i]) not already present, each
// hinted at End().
func (m *Map[K, V]) InsertAll(keys []K, vals []V) {
	m.t.InsertUniqueRange(keys, vals)
}

// EqualRange returns [LowerBound(k), UpperBound(k)).
func (m *Map[K, V]) EqualRange(k K) (Iterator[K, V], Iterator[K, V]) {
	return m.t.EqualRange(k)
}

// Swap exchanges the entire contents of m and other in O(1).
func (m *Map[K, V]) Swap(other *Map[K, V]) { m.t.Swap(other.t) }

// Equal reports whether m and other hold the same entries in the same
// order, comparing values with valEq.
func (m *Map[K, V]) Equal(other *Map[K, V], valEq func(a, b V) bool) bool {
	return m.t.Equal(other.t, valEq)
}

// NotEqual is the negation of Equal.
func (m *Map[K, V]) NotEqual(other *Map[K, V], valEq func(a, b V) bool) bool {
	return !m.Equal(other, valEq)
}

// Clear removes every entry.
func (m *Map[K, V]) Clear() { m.t.Clear() }

// LowerBound returns an iterator to the first entry with a key not less
// than k.
func (m *Map[K, V]) LowerBound(k K) Iterator[K, V] { return m.t.LowerBound(k) }

// UpperBound returns an iterator to the first entry with a key greater
// than k.
func (m *Map[K, V]) UpperBound(k K) Iterator[K, V] { return m.t.UpperBound(k) }

// First returns an iterator to the entry with the smallest key.
func (m *Map[K, V]) First() Iterator[K, V] { return m.t.First() }

// Last returns an iterator to the entry with the largest key.
func (m *Map[K, V]) Last() Iterator[K, V] { return m.t.Last() }

// End returns the past-the-end iterator.
func (m *Map[K, V]) End() Iterator[K, V] { return m.t.End() }

// Verify checks every structural invariant.
func (m *Map[K, V]) Verify() error { return m.t.Verify() }

// String renders the map's tree structure for debugging.
func (m *Map[K, V]) String() string { return m.t.String() }

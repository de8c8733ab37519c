// Copyright 2018 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package btree

// EqualRange returns [lower_bound(k), upper_bound(k)), the span of every
// value equal to k -- original_source btree_container.h's equal_range,
// implemented there as make_pair(lower_bound(key), upper_bound(key)).
func (t *Tree[K, V]) EqualRange(k K) (Iterator[K, V], Iterator[K, V]) {
	return t.LowerBound(k), t.UpperBound(k)
}

// Swap exchanges the entire contents of t and other in O(1). Only the
// shape-describing fields travel with the swap -- comparator, search kind,
// node-size parameters, and the root/leftmost/rightmost/size describing
// which values belong to which tree. Each tree keeps its own Allocator, the
// same choice original_source btree.h's swap makes (it swaps only
// key_compare and root_, leaving the allocator behind).
func (t *Tree[K, V]) Swap(other *Tree[K, V]) {
	t.cmp, other.cmp = other.cmp, t.cmp
	t.kind, other.kind = other.kind, t.kind
	t.nodeValues, other.nodeValues = other.nodeValues, t.nodeValues
	t.minValues, other.minValues = other.minValues, t.minValues
	t.root, other.root = other.root, t.root
	t.leftmost, other.leftmost = other.leftmost, t.leftmost
	t.rightmost, other.rightmost = other.rightmost, t.rightmost
	t.size, other.size = other.size, t.size
}

// Equal reports whether t and other hold the same number of values in the
// same order with keys compared by t's Compare and values compared by
// valEq -- original_source btree_container.h's operator==, which checks
// size() first and then compares every value pairwise in iteration order.
func (t *Tree[K, V]) Equal(other *Tree[K, V], valEq func(a, b V) bool) bool {
	if t.size != other.size {
		return false
	}
	it, oit := t.First(), other.First()
	for it.Valid() {
		if t.cmp(it.Key(), oit.Key()) != 0 || !valEq(it.Value(), oit.Value()) {
			return false
		}
		it, oit = it.Next(), oit.Next()
	}
	return true
}

// NotEqual is the negation of Equal.
func (t *Tree[K, V]) NotEqual(other *Tree[K, V], valEq func(a, b V) bool) bool {
	return !t.Equal(other, valEq)
}

// InsertUniqueHint inserts k, producing its value via newVal only if k is
// not already present, using position as a locality hint: if k belongs
// immediately before position this is O(1) amortized, otherwise it falls
// back to a plain InsertUnique. This realizes original_source btree.h's
// insert_unique(iterator position, const value_type &v), including its
// exact neighbor-ordering check.
func (t *Tree[K, V]) InsertUniqueHint(position Iterator[K, V], k K, newVal func() V) (Iterator[K, V], bool) {
	if t.root != nil {
		switch {
		case !position.Valid() || t.cmp(k, position.Key()) < 0:
			ok := position == t.First()
			if !ok {
				prev := position.Prev()
				ok = t.cmp(prev.Key(), k) < 0
			}
			if ok {
				n, p := t.internalInsert(position.node, position.pos, entry[K, V]{key: k, val: newVal()})
				t.maybeVerify()
				return Iterator[K, V]{tree: t, node: n, pos: p}, true
			}
		case t.cmp(position.Key(), k) < 0:
			next := position.Next()
			if !next.Valid() || t.cmp(k, next.Key()) < 0 {
				n, p := t.internalInsert(next.node, next.pos, entry[K, V]{key: k, val: newVal()})
				t.maybeVerify()
				return Iterator[K, V]{tree: t, node: n, pos: p}, true
			}
		default:
			return position, false
		}
	}
	return t.InsertUnique(k, newVal)
}

// InsertMultiHint inserts k, v using position as a locality hint, the same
// way InsertUniqueHint does but allowing duplicates -- original_source
// btree.h's insert_multi(iterator position, const value_type &v), whose
// neighbor check uses <= in place of insert_unique's strict <.
func (t *Tree[K, V]) InsertMultiHint(position Iterator[K, V], k K, v V) Iterator[K, V] {
	if t.root != nil {
		if !position.Valid() || t.cmp(k, position.Key()) <= 0 {
			ok := position == t.First()
			if !ok {
				prev := position.Prev()
				ok = t.cmp(prev.Key(), k) <= 0
			}
			if ok {
				n, p := t.internalInsert(position.node, position.pos, entry[K, V]{key: k, val: v})
				t.maybeVerify()
				return Iterator[K, V]{tree: t, node: n, pos: p}
			}
		} else {
			next := position.Next()
			if !next.Valid() || t.cmp(k, next.Key()) <= 0 {
				n, p := t.internalInsert(next.node, next.pos, entry[K, V]{key: k, val: v})
				t.maybeVerify()
				return Iterator[K, V]{tree: t, node: n, pos: p}
			}
		}
	}
	return t.InsertMulti(k, v)
}

// InsertUniqueRange inserts every (keys[i], vals[i]) not already present,
// each hinted at end() -- original_source btree.h's
// insert_unique(InputIterator b, InputIterator e), which always hints the
// per-element insert_unique at end().
func (t *Tree[K, V]) InsertUniqueRange(keys []K, vals []V) {
	for i, k := range keys {
		v := vals[i]
		t.InsertUniqueHint(t.End(), k, func() V { return v })
	}
}

// InsertMultiRange inserts every (keys[i], vals[i]), each hinted at end(),
// mirroring original_source btree.h's insert_multi(InputIterator b,
// InputIterator e).
func (t *Tree[K, V]) InsertMultiRange(keys []K, vals []V) {
	for i, k := range keys {
		t.InsertMultiHint(t.End(), k, vals[i])
	}
}

// distance counts the steps from a to b by repeated Next(), mirroring
// std::distance over the original's bidirectional iterator.
func distance[K, V any](a, b Iterator[K, V]) int {
	n := 0
	for a != b {
		a = a.Next()
		n++
	}
	return n
}

// EraseRange removes every value in [first, last), returning how many were
// removed. The count is computed once up front and the loop erases first
// exactly that many times without re-comparing to last, exactly as
// original_source btree.h's erase(iterator begin, iterator end) does --
// needed because an intermediate erase can invalidate a stale snapshot of
// last if it happens to live in a node that gets merged away.
func (t *Tree[K, V]) EraseRange(first, last Iterator[K, V]) int {
	count := distance(first, last)
	for i := 0; i < count; i++ {
		first = t.Erase(first)
	}
	return count
}

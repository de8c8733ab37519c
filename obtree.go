// Copyright 2018 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package obtree implements ordered Set, Map, MultiSet and MultiMap
// containers over a dense B-tree of values (internal/btree). Density and
// cache locality are the value proposition over a conventional red-black
// tree: each node packs many entries and leaf nodes carry no child
// pointers, so per-entry memory and cache-line touches are lower.
//
// All four containers are thin façades over internal/btree.Tree; the
// engine itself -- node layout, search dispatch, insert/erase,
// rebalance-or-split, merge-or-rebalance, and the bidirectional iterator
// -- lives there.
package obtree

import (
	"cmp"

	"github.com/arborist-go/obtree/internal/btree"
)

// Iterator is a bidirectional cursor into a container, re-exported from
// internal/btree so callers never need to import that package directly.
type Iterator[K, V any] = btree.Iterator[K, V]

// Node is the node type an Allocator implementation builds and recycles,
// re-exported so a caller can implement Allocator from outside this
// module without importing internal/btree directly.
type Node[K, V any] = btree.Node[K, V]

// Allocator lets a caller substitute a pooling node-allocation strategy
// (see PoolAllocator for a worked example). Both methods are exported and
// operate on the re-exported Node type, so any package -- including one
// outside this module -- can implement it. See internal/btree.Allocator.
type Allocator[K, V any] = btree.Allocator[K, V]

// NewNode builds a Node of the requested shape using the plain Go
// allocator, for a custom Allocator's cache-miss fallback path. See
// internal/btree.NewNode.
func NewNode[K, V any](leaf bool, maxCount int16) *Node[K, V] {
	return btree.NewNode[K, V](leaf, maxCount)
}

// ResetNode clears a Node's slots before it is stashed in a pool or
// dropped. See internal/btree.ResetNode.
func ResetNode[K, V any](n *Node[K, V]) {
	btree.ResetNode[K, V](n)
}

// NodeShape reports the (leaf, capacity) a Node was constructed with. See
// internal/btree.NodeShape.
func NodeShape[K, V any](n *Node[K, V]) (leaf bool, maxCount int16) {
	return btree.NodeShape[K, V](n)
}

func newTree[K cmp.Ordered, V any](targetNodeSize int, alloc Allocator[K, V]) *btree.Tree[K, V] {
	var zero K
	return btree.New[K, V](btree.CompareOrdered[K](), btree.KindFor(zero), targetNodeSize, alloc)
}

func newTreeWith[K, V any](cmpFn func(a, b K) int, kind btree.Kind, targetNodeSize int, alloc Allocator[K, V]) *btree.Tree[K, V] {
	return btree.New[K, V](cmpFn, kind, targetNodeSize, alloc)
}

// Copyright 2018 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package btree

// Node is node[K, V] under a public name. It carries no exported fields or
// methods of its own -- a custom Allocator builds and recycles instances
// exclusively through NewNode and ResetNode below -- but the exported alias
// lets an Allocator implementation live outside package btree (package
// obtree re-exports it for exactly that reason; see obtree.go).
type Node[K, V any] = node[K, V]

// Allocator obtains and releases node storage. The core routes every node
// allocation through one, so a caller can substitute a pooling strategy
// (e.g. a sync.Pool-backed allocator that recycles same-shaped nodes,
// grounded on internal/cache/entry.go's entryAllocPool in the retrieval
// pack) without touching tree.go or node.go. This is the simple,
// untyped-capacity byte-arena abstraction spec.md 5 scopes allocator
// support down to -- further customization (typed sub-arenas, size
// classes, compaction) is the explicitly out-of-scope "allocator
// customization beyond" this interface.
//
// Both methods are exported, and the Node type they operate on is a public
// alias, so a type defined in any other package of this module (or in an
// importer's own package, via obtree.Allocator/obtree.Node) can implement
// this interface; only the concrete *node[K, V] field layout stays
// private.
type Allocator[K, V any] interface {
	// NewNode returns an empty node of exactly the requested capacity:
	// len(values) == 0, cap(values) == maxCount, and for internal nodes
	// len(children) == 0, cap(children) == maxCount+1.
	NewNode(leaf bool, maxCount int16) *Node[K, V]
	// FreeNode releases a node's storage. The node must already be empty
	// (count == 0); the tree empties a node before it is retired.
	FreeNode(n *Node[K, V])
}

// NewNode builds a node of exactly the requested shape using the plain Go
// allocator. It is exported so a custom Allocator can use it as the
// fallback path when its pool is empty, the same role new() plays in a
// pooling allocator built over internal/cache's pattern.
func NewNode[K, V any](leaf bool, maxCount int16) *Node[K, V] {
	n := &node[K, V]{
		leaf:     leaf,
		maxCount: maxCount,
		values:   make([]entry[K, V], 0, maxCount),
	}
	if !leaf {
		n.children = make([]*node[K, V], 0, maxCount+1)
	}
	return n
}

// ResetNode zeroes every slot of a node's values and children and clears
// its count, position and parent link, so neither a retained K or V nor a
// dead subtree's nodes stay reachable after the node is returned to a pool
// or dropped -- the garbage-collected stand-in for "destructors run for
// the first count slots before the node's byte region is released." The
// slices keep their capacity, so a reset node is again in the state
// Allocator.NewNode hands out. A pooling Allocator calls this before
// stashing a freed node back into its pool.
func ResetNode[K, V any](n *Node[K, V]) {
	clear(n.values[:cap(n.values)])
	n.values = n.values[:0]
	clear(n.children[:cap(n.children)])
	n.children = n.children[:0]
	n.count = 0
	n.pos = 0
	n.parent = nil
}

// NodeShape reports the (leaf, capacity) a node was constructed with, so a
// pooling Allocator can key its pool without reaching into Node's private
// fields -- leaf and maxCount are left untouched by ResetNode.
func NodeShape[K, V any](n *Node[K, V]) (leaf bool, maxCount int16) {
	return n.leaf, n.maxCount
}

// defaultAllocator is the Allocator used when a Tree is constructed without
// an explicit one.
type defaultAllocator[K, V any] struct{}

func (defaultAllocator[K, V]) NewNode(leaf bool, maxCount int16) *Node[K, V] {
	return NewNode[K, V](leaf, maxCount)
}

func (defaultAllocator[K, V]) FreeNode(n *Node[K, V]) {
	ResetNode(n)
}

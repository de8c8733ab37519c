// Copyright 2018 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package btree

import "unsafe"

// nodeWalkStats accumulates the counters a single tree walk can produce
// together, so LeafNodes/InternalNodes/Nodes/BytesUsed/Fullness/Overhead
// share one O(nodes) pass rather than each re-walking the tree.
type nodeWalkStats struct {
	leaves, internals int
	usedValues        int64 // sum of n.count across every node
	capValues         int64 // sum of n.maxCount across every node
	bytes             int64
}

func (t *Tree[K, V]) walkStats() nodeWalkStats {
	var s nodeWalkStats
	var entrySize, childPtrSize, nodeHeaderSize int64
	var e entry[K, V]
	entrySize = int64(unsafe.Sizeof(e))
	var childPtr *node[K, V]
	childPtrSize = int64(unsafe.Sizeof(childPtr))
	nodeHeaderSize = int64(baseNodeOverhead)

	var walk func(n *node[K, V])
	walk = func(n *node[K, V]) {
		if n.leaf {
			s.leaves++
		} else {
			s.internals++
		}
		s.usedValues += int64(n.count)
		s.capValues += int64(n.maxCount)
		s.bytes += nodeHeaderSize + int64(n.maxCount)*entrySize
		if !n.leaf {
			s.bytes += int64(n.maxCount+1) * childPtrSize
			for _, c := range n.children {
				walk(c)
			}
		}
	}
	if t.root != nil {
		walk(t.root)
	}
	return s
}

// LeafNodes returns the number of leaf nodes in the tree.
func (t *Tree[K, V]) LeafNodes() int { return t.walkStats().leaves }

// InternalNodes returns the number of internal nodes in the tree (0 for an
// empty or single-leaf tree).
func (t *Tree[K, V]) InternalNodes() int { return t.walkStats().internals }

// Nodes returns the total node count.
func (t *Tree[K, V]) Nodes() int {
	s := t.walkStats()
	return s.leaves + s.internals
}

// BytesUsed estimates the tree's total allocated footprint: every node's
// fixed header plus its exact values/children capacity, accounting for the
// small root's reduced capacity rather than assuming every node is sized to
// kNodeValues.
func (t *Tree[K, V]) BytesUsed() int64 { return t.walkStats().bytes }

// Fullness reports the fraction of allocated value capacity actually in use
// across every node (1.0 is completely full, spec.md's minimum occupancy
// bound keeps this no lower than roughly 0.5 for any non-root node).
func (t *Tree[K, V]) Fullness() float64 {
	s := t.walkStats()
	if s.capValues == 0 {
		return 0
	}
	return float64(s.usedValues) / float64(s.capValues)
}

// Overhead returns the bookkeeping bytes (node headers and child pointers)
// consumed beyond the raw key/value data, i.e. BytesUsed() minus the bytes
// actually occupied by stored entries.
func (t *Tree[K, V]) Overhead() int64 {
	var e entry[K, V]
	entrySize := int64(unsafe.Sizeof(e))
	s := t.walkStats()
	return s.bytes - s.usedValues*entrySize
}

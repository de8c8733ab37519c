// Copyright 2018 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package obtree

import "sync"

// PoolAllocator is an Allocator that recycles same-shaped nodes across
// many short-lived trees using a sync.Pool per (leaf, capacity) shape, the
// pattern internal/cache/entry.go's entryAllocPool uses to recycle cache
// entries in the retrieval pack this module is built from. It demonstrates
// that Allocator is genuinely implementable outside package internal/btree:
// PoolAllocator lives in this package, not in internal/btree, and is built
// entirely on the re-exported Node/NewNode/ResetNode surface.
//
// The zero value is ready to use.
type PoolAllocator[K, V any] struct {
	mu    sync.Mutex
	pools map[poolShape]*sync.Pool
}

type poolShape struct {
	leaf     bool
	maxCount int16
}

var _ Allocator[int, int] = (*PoolAllocator[int, int])(nil)

func (p *PoolAllocator[K, V]) poolFor(shape poolShape) *sync.Pool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pools == nil {
		p.pools = make(map[poolShape]*sync.Pool)
	}
	sp, ok := p.pools[shape]
	if !ok {
		sp = &sync.Pool{}
		p.pools[shape] = sp
	}
	return sp
}

// NewNode returns a pooled node matching (leaf, maxCount) if one is
// available, otherwise falls back to NewNode.
func (p *PoolAllocator[K, V]) NewNode(leaf bool, maxCount int16) *Node[K, V] {
	sp := p.poolFor(poolShape{leaf, maxCount})
	if v := sp.Get(); v != nil {
		return v.(*Node[K, V])
	}
	return NewNode[K, V](leaf, maxCount)
}

// FreeNode clears n and returns it to the pool for its shape.
func (p *PoolAllocator[K, V]) FreeNode(n *Node[K, V]) {
	leaf, maxCount := NodeShape(n)
	ResetNode(n)
	p.poolFor(poolShape{leaf, maxCount}).Put(n)
}

// Copyright 2018 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package btreeprop cross-checks internal/btree against an independent oracle
// (cockroachdb/swiss) under randomized operation sequences, and checks the
// concurrent-readers-of-an-unmutated-tree contract with golang.org/x/sync/errgroup.
package btreeprop

import (
	"context"
	"math/rand"
	"testing"

	"github.com/cockroachdb/swiss"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/arborist-go/obtree/internal/btree"
)

// TestRandomOpsAgainstOracle drives InsertUnique/EraseKeyUnique through a
// long randomized sequence, mirroring every mutation into a swiss.Map,
// checks Verify and Len every 500 operations, and checks the tree's
// contents and order against the oracle at the end.
// This is the module's fuzz-lite substitute for a metamorphic harness: the
// teacher repo uses a purpose-built metamorphic test generator
// (cockroachdb/metamorphic) for pebble's on-disk format, which has no
// in-memory analogue here, so a randomized oracle comparison plays the same
// role at a scale appropriate to this container.
func TestRandomOpsAgainstOracle(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tr := btree.New[int, int](btree.CompareOrdered[int](), btree.KindFor(0), 96, nil)

	var oracle swiss.Map[int, int]
	oracle.Init(16)

	const keySpace = 500
	const ops = 20000
	for i := 0; i < ops; i++ {
		k := rng.Intn(keySpace)
		v := rng.Int()
		if rng.Intn(3) == 0 {
			_, existed := oracle.Get(k)
			removed := tr.EraseKeyUnique(k)
			require.Equal(t, existed, removed)
			oracle.Delete(k)
		} else {
			_, existed := oracle.Get(k)
			_, inserted := tr.InsertUnique(k, func() int { return v })
			require.Equal(t, !existed, inserted)
			if !existed {
				oracle.Put(k, v)
			}
		}
		if i%500 == 0 {
			require.NoError(t, tr.Verify())
			require.Equal(t, oracle.Len(), tr.Len())
		}
	}

	require.NoError(t, tr.Verify())
	require.Equal(t, oracle.Len(), tr.Len())

	var prevKey int
	count := 0
	for it := tr.First(); it.Valid(); it = it.Next() {
		if count > 0 {
			require.LessOrEqual(t, prevKey, it.Key())
		}
		want, ok := oracle.Get(it.Key())
		require.True(t, ok, "tree holds key %d missing from oracle", it.Key())
		require.Equal(t, want, it.Value())
		prevKey = it.Key()
		count++
	}
	require.Equal(t, oracle.Len(), count)
}

// TestConcurrentReadersSafe builds a tree once, then fans out many
// goroutines that only read it (LowerBound/UpperBound/iteration/Count),
// checking the module's documented contract that concurrent readers of an
// unmutated tree need no external synchronization.
func TestConcurrentReadersSafe(t *testing.T) {
	tr := btree.New[int, int](btree.CompareOrdered[int](), btree.KindFor(0), 0, nil)
	const n = 4000
	for i := 0; i < n; i++ {
		tr.InsertUnique(i, func() int { return i * i })
	}
	require.NoError(t, tr.Verify())

	g, _ := errgroup.WithContext(context.Background())
	const readers = 32
	for r := 0; r < readers; r++ {
		r := r
		g.Go(func() error {
			rng := rand.New(rand.NewSource(int64(r)))
			for i := 0; i < 2000; i++ {
				k := rng.Intn(n)
				it, ok := tr.FindUnique(k)
				if !ok || it.Value() != k*k {
					return errUnexpected(k)
				}
				if got := tr.Count(k); got != 1 {
					return errUnexpected(k)
				}
				lo := tr.LowerBound(k)
				if !lo.Valid() || lo.Key() != k {
					return errUnexpected(k)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

type errUnexpected int

func (e errUnexpected) Error() string {
	return "unexpected read result for key"
}

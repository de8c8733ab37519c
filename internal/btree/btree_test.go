// Copyright 2018 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package btree

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newIntTree(t testing.TB) *Tree[int, int] {
	return New[int, int](CompareOrdered[int](), KindFor(0), 0, nil)
}

func checkIterForward(t *testing.T, tr *Tree[int, int], want []int) {
	t.Helper()
	var got []int
	for it := tr.First(); it.Valid(); it = it.Next() {
		got = append(got, it.Key())
	}
	require.Equal(t, want, got)
}

func checkIterBackward(t *testing.T, tr *Tree[int, int], want []int) {
	t.Helper()
	var got []int
	for it := tr.Last(); it.Valid(); it = it.Prev() {
		got = append(got, it.Key())
	}
	require.Equal(t, want, got)
}

func reversed(xs []int) []int {
	out := make([]int, len(xs))
	for i, x := range xs {
		out[len(xs)-1-i] = x
	}
	return out
}

// TestTreeAscendingInsert mirrors the teacher's TestBTree: insert many
// keys in ascending order, verifying structural invariants after every
// mutation (spec.md boundary scenario 1).
func TestTreeAscendingInsert(t *testing.T) {
	const n = 768
	tr := newIntTree(t)
	var want []int
	for i := 0; i < n; i++ {
		_, inserted := tr.InsertUnique(i, func() int { return i * 2 })
		require.True(t, inserted)
		require.NoError(t, tr.Verify())
		require.Equal(t, i+1, tr.Len())
		want = append(want, i)
	}
	checkIterForward(t, tr, want)
	checkIterBackward(t, tr, reversed(want))

	for i := 0; i < n; i++ {
		require.True(t, tr.EraseKeyUnique(i))
		require.NoError(t, tr.Verify())
		require.Equal(t, n-i-1, tr.Len())
	}
}

// TestTreeDescendingInsert covers the opposite insertion-position bias
// (spec.md 4.3's split biasing toward position 0), boundary scenario 2.
func TestTreeDescendingInsert(t *testing.T) {
	const n = 768
	tr := newIntTree(t)
	for i := n - 1; i >= 0; i-- {
		_, inserted := tr.InsertUnique(i, func() int { return i })
		require.True(t, inserted)
		require.NoError(t, tr.Verify())
	}
	var want []int
	for i := 0; i < n; i++ {
		want = append(want, i)
	}
	checkIterForward(t, tr, want)

	for i := n - 1; i >= 0; i-- {
		require.True(t, tr.EraseKeyUnique(i))
		require.NoError(t, tr.Verify())
	}
}

func TestTreeRandomInsertErase(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tr := newIntTree(t)
	present := map[int]bool{}
	const n = 2000
	keys := rng.Perm(n)
	for _, k := range keys {
		_, inserted := tr.InsertUnique(k, func() int { return k })
		require.Equal(t, !present[k], inserted)
		present[k] = true
	}
	require.NoError(t, tr.Verify())
	require.Equal(t, len(present), tr.Len())

	order := rng.Perm(n)
	for _, k := range order {
		require.True(t, tr.EraseKeyUnique(k))
		delete(present, k)
		if k%97 == 0 {
			require.NoError(t, tr.Verify())
		}
	}
	require.NoError(t, tr.Verify())
	require.Equal(t, 0, tr.Len())
}

func TestTreeFindUnique(t *testing.T) {
	tr := newIntTree(t)
	for i := 0; i < 200; i += 2 {
		tr.InsertUnique(i, func() int { return i })
	}
	for i := 0; i < 200; i++ {
		it, ok := tr.FindUnique(i)
		if i%2 == 0 {
			require.True(t, ok, "key %d", i)
			require.Equal(t, i, it.Value())
		} else {
			require.False(t, ok, "key %d", i)
		}
	}
}

func TestTreeDuplicateInsertRejected(t *testing.T) {
	tr := newIntTree(t)
	_, inserted := tr.InsertUnique(5, func() int { return 1 })
	require.True(t, inserted)
	_, inserted = tr.InsertUnique(5, func() int {
		t.Fatal("newVal must not be called when the key already exists")
		return 0
	})
	require.False(t, inserted)
	require.Equal(t, 1, tr.Len())
}

// TestTreeMultiInsertFIFO checks spec.md 5's ordering guarantee: repeated
// insert_multi of an equal key preserves insertion order.
func TestTreeMultiInsertFIFO(t *testing.T) {
	tr := New[int, int](CompareOrdered[int](), KindFor(0), 0, nil)
	for i := 0; i < 50; i++ {
		tr.InsertMulti(7, i)
	}
	require.NoError(t, tr.Verify())
	require.Equal(t, 50, tr.Count(7))

	i := 0
	for it := tr.LowerBound(7); it.Valid() && it.Key() == 7; it = it.Next() {
		require.Equal(t, i, it.Value())
		i++
	}
	require.Equal(t, 50, i)
}

func TestTreeStringKeys(t *testing.T) {
	tr := New[string, int](CompareOrdered[string](), KindFor(""), 0, nil)
	words := []string{"pebble", "obtree", "arena", "leaf", "root", "split", "merge", "iterator"}
	for i, w := range words {
		tr.InsertUnique(w, func() int { return i })
	}
	require.NoError(t, tr.Verify())

	var got []string
	for it := tr.First(); it.Valid(); it = it.Next() {
		got = append(got, it.Key())
	}
	for i := 1; i < len(got); i++ {
		require.LessOrEqual(t, got[i-1], got[i])
	}
}

func TestTreeClear(t *testing.T) {
	tr := newIntTree(t)
	for i := 0; i < 500; i++ {
		tr.InsertUnique(i, func() int { return i })
	}
	tr.Clear()
	require.Equal(t, 0, tr.Len())
	require.NoError(t, tr.Verify())
	_, ok := tr.FindUnique(0)
	require.False(t, ok)
}

func TestTreeSmallRootGrowth(t *testing.T) {
	tr := newIntTree(t)
	for i := 0; i < int(tr.nodeValues)+1; i++ {
		tr.InsertUnique(i, func() int { return i })
		require.NoError(t, tr.Verify())
	}
	require.True(t, tr.Height() >= 1)
}

func TestTreeChecksumStable(t *testing.T) {
	a := newIntTree(t)
	b := newIntTree(t)
	for i := 0; i < 300; i++ {
		a.InsertUnique(i, func() int { return i * 3 })
	}
	for i := 299; i >= 0; i-- {
		b.InsertUnique(i, func() int { return i * 3 })
	}
	require.Equal(t, a.Checksum(), b.Checksum())

	b.EraseKeyUnique(150)
	require.NotEqual(t, a.Checksum(), b.Checksum())
}

func TestTreeIntrospection(t *testing.T) {
	tr := newIntTree(t)
	require.Equal(t, 0, tr.Height())
	require.Equal(t, 0, tr.Nodes())

	for i := 0; i < 300; i++ {
		tr.InsertUnique(i, func() int { return i })
	}
	require.NoError(t, tr.Verify())

	require.Equal(t, tr.LeafNodes()+tr.InternalNodes(), tr.Nodes())
	require.Greater(t, tr.Nodes(), 1)
	require.Greater(t, tr.Height(), 1)
	require.Greater(t, tr.BytesUsed(), int64(0))
	require.GreaterOrEqual(t, tr.Overhead(), int64(0))
	require.Greater(t, tr.Fullness(), 0.0)
	require.LessOrEqual(t, tr.Fullness(), 1.0)
}

// TestTreeDump checks spec.md 6's dump contract directly against the
// original's internal_dump (original_source btree.h:1205-1219): one key
// per line, indented by depth, in left-subtree-first order.
func TestTreeDump(t *testing.T) {
	tr := newIntTree(t)
	for _, k := range []int{5, 2, 8, 1, 3, 7, 9} {
		tr.InsertUnique(k, func() int { return k })
	}
	s := tr.String()
	lines := strings.Split(s, "\n")
	require.Len(t, lines, 7)

	var got []int
	for _, line := range lines {
		fields := strings.Fields(strings.TrimSpace(line))
		require.Len(t, fields, 2)
		k, err := strconv.Atoi(fields[0])
		require.NoError(t, err)
		got = append(got, k)
	}
	require.Equal(t, []int{1, 2, 3, 5, 7, 8, 9}, got, "dump visits keys left-subtree-first, i.e. in order")

	empty := newIntTree(t)
	require.Empty(t, empty.String())
}

// TestTreeEqualRange checks spec.md 6's equal_range against
// original_source btree_container.h's make_pair(lower_bound, upper_bound).
func TestTreeEqualRange(t *testing.T) {
	tr := New[int, int](CompareOrdered[int](), KindFor(0), 0, nil)
	for i := 0; i < 20; i++ {
		tr.InsertMulti(i/2, i)
	}
	lo, hi := tr.EqualRange(5)
	require.Equal(t, tr.LowerBound(5), lo)
	require.Equal(t, tr.UpperBound(5), hi)
	require.Equal(t, 2, distance(lo, hi))

	lo, hi = tr.EqualRange(999)
	require.Equal(t, tr.End(), lo)
	require.Equal(t, tr.End(), hi)
}

// TestTreeSwap checks original_source btree.h's swap: contents (and node
// parameters) exchange, but each tree keeps its own Allocator identity --
// there is no allocator field to observe here, so this only checks content.
func TestTreeSwap(t *testing.T) {
	a := newIntTree(t)
	b := newIntTree(t)
	for i := 0; i < 50; i++ {
		a.InsertUnique(i, func() int { return i })
	}
	for i := 100; i < 110; i++ {
		b.InsertUnique(i, func() int { return i })
	}
	a.Swap(b)
	require.Equal(t, 10, a.Len())
	require.Equal(t, 50, b.Len())
	require.NoError(t, a.Verify())
	require.NoError(t, b.Verify())
	_, ok := a.FindUnique(105)
	require.True(t, ok)
	_, ok = b.FindUnique(25)
	require.True(t, ok)
}

func TestTreeEqual(t *testing.T) {
	a := newIntTree(t)
	b := newIntTree(t)
	eq := func(x, y int) bool { return x == y }
	require.True(t, a.Equal(b, eq))

	for i := 0; i < 30; i++ {
		a.InsertUnique(i, func() int { return i * 2 })
	}
	require.False(t, a.Equal(b, eq))

	for i := 29; i >= 0; i-- {
		b.InsertUnique(i, func() int { return i * 2 })
	}
	require.True(t, a.Equal(b, eq))
	require.False(t, a.NotEqual(b, eq))

	b.EraseKeyUnique(15)
	require.True(t, a.NotEqual(b, eq))
}

// TestTreeInsertUniqueHint checks original_source btree.h's
// insert_unique(iterator, value_type): a correct hint lands in O(1), a
// wrong one still produces a correct tree via the plain-insert fallback.
func TestTreeInsertUniqueHint(t *testing.T) {
	tr := newIntTree(t)
	for i := 0; i < 100; i += 2 {
		tr.InsertUnique(i, func() int { return i })
	}
	// Correct hint: insert 51 right before 52's position.
	pos, _ := tr.FindUnique(52)
	it, inserted := tr.InsertUniqueHint(pos, 51, func() int { return 51 })
	require.True(t, inserted)
	require.Equal(t, 51, it.Key())
	require.NoError(t, tr.Verify())

	// Wrong hint (far away): must still insert correctly via fallback.
	it, inserted = tr.InsertUniqueHint(tr.First(), 77, func() int { return 77 })
	require.True(t, inserted)
	require.Equal(t, 77, it.Key())
	require.NoError(t, tr.Verify())

	// Hint exactly at the existing key: no insert, newVal not called.
	existing, _ := tr.FindUnique(8)
	it, inserted = tr.InsertUniqueHint(existing, 8, func() int {
		t.Fatal("newVal must not be called when the key already exists")
		return 0
	})
	require.False(t, inserted)
	require.Equal(t, 8, it.Key())

	// Hint at End(): append at the tail.
	it, inserted = tr.InsertUniqueHint(tr.End(), 1000, func() int { return 1000 })
	require.True(t, inserted)
	require.Equal(t, 1000, it.Key())
	require.NoError(t, tr.Verify())
}

func TestTreeInsertMultiHint(t *testing.T) {
	tr := New[int, int](CompareOrdered[int](), KindFor(0), 0, nil)
	for i := 0; i < 10; i++ {
		tr.InsertMulti(5, i)
	}
	it := tr.InsertMultiHint(tr.End(), 5, 999)
	require.Equal(t, 5, it.Key())
	require.Equal(t, 999, it.Value())
	require.NoError(t, tr.Verify())
	require.Equal(t, 11, tr.Count(5))

	it = tr.InsertMultiHint(tr.First(), -1, -100)
	require.Equal(t, -1, it.Key())
	require.NoError(t, tr.Verify())
}

func TestTreeInsertRange(t *testing.T) {
	tr := newIntTree(t)
	keys := []int{10, 5, 20, 15, 5}
	vals := []int{1, 2, 3, 4, 5}
	tr.InsertUniqueRange(keys, vals)
	require.NoError(t, tr.Verify())
	require.Equal(t, 4, tr.Len())
	it, ok := tr.FindUnique(5)
	require.True(t, ok)
	require.Equal(t, 2, it.Value(), "first insert_unique of a duplicate key wins")

	mtr := New[int, int](CompareOrdered[int](), KindFor(0), 0, nil)
	mtr.InsertMultiRange(keys, vals)
	require.NoError(t, mtr.Verify())
	require.Equal(t, 5, mtr.Len())
	require.Equal(t, 2, mtr.Count(5))
}

func TestTreeEraseRange(t *testing.T) {
	tr := newIntTree(t)
	for i := 0; i < 100; i++ {
		tr.InsertUnique(i, func() int { return i })
	}
	first := tr.LowerBound(20)
	last := tr.LowerBound(40)
	n := tr.EraseRange(first, last)
	require.Equal(t, 20, n)
	require.Equal(t, 80, tr.Len())
	require.NoError(t, tr.Verify())
	_, ok := tr.FindUnique(20)
	require.False(t, ok)
	_, ok = tr.FindUnique(39)
	require.False(t, ok)
	_, ok = tr.FindUnique(40)
	require.True(t, ok)
	_, ok = tr.FindUnique(19)
	require.True(t, ok)
}

func ExampleTree_InsertUnique() {
	tr := New[int, string](CompareOrdered[int](), KindFor(0), 0, nil)
	tr.InsertUnique(1, func() string { return "one" })
	tr.InsertUnique(2, func() string { return "two" })
	it, _ := tr.FindUnique(1)
	fmt.Println(it.Value())
	// Output: one
}

// Copyright 2018 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package btree

import "cmp"

// Compare is a three-way key comparator: negative if a < b, zero if a == b,
// positive if a > b.
//
// Implementations must be a strict weak ordering and must satisfy
// cmp(a, b) == -cmp(b, a) for all a, b; upperBound (search.go) relies on that
// symmetry rather than threading a separately-reversed adapter through the
// search strategies the way the source's binary-compare-to quirk does (see
// SPEC_FULL.md, Open Question ii).
type Compare[K any] func(a, b K) int

// CompareOrdered builds a Compare for any key type supported by the
// standard library's cmp.Ordered constraint (integers, floats, strings).
// This is the Go realization of the source's automatic less<string> ->
// three-way wrapper, generalized to every ordered type since Go cannot
// detect "a known less" as a distinct capability from an arbitrary boolean
// comparator at compile time.
func CompareOrdered[K cmp.Ordered]() Compare[K] {
	return cmp.Compare[K]
}

// Kind selects the search strategy applied at every node of a Tree. See
// search.go.
type Kind int8

const (
	// KindGeneral uses a binary search over each node's sorted values.
	// Appropriate for keys whose comparison is not branch-predictor
	// friendly, e.g. strings or composite structs.
	KindGeneral Kind = iota
	// KindOrdinal uses a linear scan over each node's sorted values.
	// Appropriate for integer and floating-point keys, where a short
	// linear scan over cache-resident data beats a binary search's
	// mispredicted branches.
	KindOrdinal
)

// KindFor returns the Kind a Tree should use for a key type supported by
// cmp.Ordered, applying the selection policy from spec.md 4.2: integer and
// floating point keys use the linear strategy, everything else (including
// string, which is also cmp.Ordered) uses binary search.
func KindFor[K cmp.Ordered](zero K) Kind {
	switch any(zero).(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr,
		float32, float64:
		return KindOrdinal
	default:
		return KindGeneral
	}
}

// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package base holds the error sentinels and small helpers shared across the
// btree package and its façades, mirroring the role internal/base plays for
// the rest of the teacher repository.
package base

import "github.com/cockroachdb/errors"

// ErrKeyNotFound reports a missing key. No operation of the btree package
// or its façades returns it; lookups report absence with a bool or an
// invalid iterator.
var ErrKeyNotFound = errors.New("obtree: key not found")

// ErrEmptyTree reports an operation that is undefined on an empty tree. No
// operation of the btree package or its façades returns it.
var ErrEmptyTree = errors.New("obtree: operation undefined on an empty tree")

// ErrInvalidIterator is the value Tree.Erase panics with, in builds with
// the invariants tag, when handed an iterator obtained from a different
// tree. Stale iterators of the same tree are not detected.
var ErrInvalidIterator = errors.New("obtree: iterator is invalid or stale")

// AllocationFailedf wraps an allocator failure with context about the node
// shape that could not be obtained, per the resource policy's requirement
// that allocation failures propagate to the caller with the tree left in
// its pre-operation state.
func AllocationFailedf(format string, args ...interface{}) error {
	return errors.Newf("obtree: allocation failed: "+format, args...)
}

// Copyright 2018 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package btree

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Checksum returns an order-dependent content fingerprint of the tree: an
// xxhash over the in-order key/value stream. It is not part of spec.md's
// operation table; it is a supplemented introspection operation (see
// SPEC_FULL.md) for cheaply comparing two trees' contents without a full
// structural walk. Verify does not use it.
func (t *Tree[K, V]) Checksum() uint64 {
	d := xxhash.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(t.size))
	d.Write(buf[:])
	for it := t.First(); it.Valid(); it = it.Next() {
		fmt.Fprintf(d, "%v\x00%v\x00", it.Key(), it.Value())
	}
	return d.Sum64()
}

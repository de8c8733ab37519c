// Copyright 2018 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

//go:build invariants || race
// +build invariants race

package invariants

// Enabled is true if the binary was built with the "invariants" or "race"
// build tags. Debug-only assertions throughout internal/btree are gated on
// this constant rather than unconditionally compiled in, the way
// precondition checks on hot descent paths are in the source this package
// was modeled on.
const Enabled = true

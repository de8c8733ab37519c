// Copyright 2018 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package btree

import (
	"strings"

	"github.com/cockroachdb/redact"
)

// Dump renders the tree in the format spec.md 6 documents: each key on its
// own line, indented by depth, in left-subtree-first order (original_source
// btree.h's internal_dump). Node shapes are not part of the contract; only
// keys and their depth are printed, as a RedactableString in the format
// pebble uses for anything that can end up in an operator-facing log or CLI
// (see cmd/btreetool's dump command). Keys are application data and are
// marked unsafe (redactable) in the result.
func (t *Tree[K, V]) Dump() redact.RedactableString {
	if t.root == nil {
		return redact.Sprint(redact.SafeString(""))
	}
	var lines []redact.RedactableString
	t.dumpNode(t.root, 0, &lines)
	joined := redact.RedactableString(strings.Join(redactableStrings(lines), "\n"))
	return joined
}

func redactableStrings(lines []redact.RedactableString) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = string(l)
	}
	return out
}

// dumpNode walks node exactly as internal_dump does: for key i, recurse
// into the left child (child(i)) before printing key i, then after the
// last key recurse into the right-most child (child(count)).
func (t *Tree[K, V]) dumpNode(n *node[K, V], depth int, lines *[]redact.RedactableString) {
	indent := redact.SafeString(strings.Repeat("  ", depth))
	for i := 0; i < int(n.count); i++ {
		if !n.leaf {
			t.dumpNode(n.children[i], depth+1, lines)
		}
		line := redact.Sprintf("%s%v [%s]", indent, n.values[i].key, redact.Safe(depth))
		*lines = append(*lines, line)
	}
	if !n.leaf {
		t.dumpNode(n.children[n.count], depth+1, lines)
	}
}

// String implements fmt.Stringer for ad hoc debugging and tests: Dump's
// output with the redaction markers stripped, so keys appear as written.
func (t *Tree[K, V]) String() string {
	return t.Dump().StripMarkers()
}

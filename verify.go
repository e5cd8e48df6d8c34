// Copyright 2014-2022 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bptree

import (
	"github.com/cockroachdb/errors"
)

// mustVerify panics with the first broken invariant when checking is on.
// A broken tree cannot be repaired, so there is nothing for a caller to handle.
func (t *tree[K, V]) mustVerify() {
	if !t.verify && !invariantsEnabled {
		return
	}
	if err := t.Verify(); err != nil {
		panic(err)
	}
}

// Verify checks the structure of the tree and returns an assertion failure
// describing the first violation it finds:
//   - the root holds at most Capacity keys, every other node between
//     Capacity/2 and Capacity keys;
//   - keys within a node are sorted, strictly unless duplicates are kept;
//   - every key lies within the bounds set by the separators above it;
//   - all leaves are at the same depth;
//   - every level is chained left to right through next, ending in nil,
//     and the last key of a node does not exceed the first key of its next;
//   - the leaf chain and the leaves each hold exactly Len entries.
func (t *tree[K, V]) Verify() error {
	if t.root == nil {
		return errors.AssertionFailedf("bptree: nil root")
	}
	v := verifier[K, V]{t: t, leafDepth: -1}
	if err := v.node(t.root, 0, nil, nil); err != nil {
		return err
	}
	for d, n := range v.lasts {
		if n.next != nil {
			return errors.AssertionFailedf("bptree: level %d does not end in nil", d)
		}
	}
	if v.entries != t.length {
		return errors.AssertionFailedf("bptree: leaves hold %d entries, length is %d", v.entries, t.length)
	}
	chained := 0
	for n := t.first(); n != nil; n = n.next {
		chained += len(n.keys)
	}
	if chained != t.length {
		return errors.AssertionFailedf("bptree: leaf chain holds %d entries, length is %d", chained, t.length)
	}
	return nil
}

type verifier[K, V any] struct {
	t         *tree[K, V]
	leafDepth int
	entries   int
	// lasts holds the most recently visited node of each level.
	lasts []*node[K, V]
}

// ordered reports whether a may precede b in a node.
func (v *verifier[K, V]) ordered(a, b K) bool {
	if v.t.multi {
		return !v.t.less(b, a)
	}
	return v.t.less(a, b)
}

// node checks n and its subtree.  lo and hi, when set, are the separators to
// the left and right of n in its ancestors.
func (v *verifier[K, V]) node(n *node[K, V], depth int, lo, hi *K) error {
	t := v.t
	if n != t.root && len(n.keys) < t.minKeys() {
		return errors.AssertionFailedf("bptree: node at depth %d holds %d keys, minimum is %d", depth, len(n.keys), t.minKeys())
	}
	if len(n.keys) > t.maxKeys() {
		return errors.AssertionFailedf("bptree: node at depth %d holds %d keys, maximum is %d", depth, len(n.keys), t.maxKeys())
	}
	for i := 1; i < len(n.keys); i++ {
		if !v.ordered(n.keys[i-1], n.keys[i]) {
			return errors.AssertionFailedf("bptree: keys %d and %d out of order at depth %d", i-1, i, depth)
		}
	}
	for i, k := range n.keys {
		if hi != nil && t.less(*hi, k) {
			return errors.AssertionFailedf("bptree: key %d at depth %d exceeds its upper separator", i, depth)
		}
		if lo == nil {
			continue
		}
		// Leaves right of a separator hold only greater keys, or equal ones when
		// duplicates are kept.  Internal keys only need to respect the order.
		if t.less(k, *lo) || (n.leaf && !t.multi && !t.less(*lo, k)) {
			return errors.AssertionFailedf("bptree: key %d at depth %d is below its lower separator", i, depth)
		}
	}

	if depth < len(v.lasts) {
		prev := v.lasts[depth]
		if prev.next != n {
			return errors.AssertionFailedf("bptree: broken sibling link at depth %d", depth)
		}
		if len(prev.keys) > 0 && len(n.keys) > 0 && !v.ordered(prev.keys[len(prev.keys)-1], n.keys[0]) {
			return errors.AssertionFailedf("bptree: sibling keys out of order at depth %d", depth)
		}
		v.lasts[depth] = n
	} else {
		v.lasts = append(v.lasts, n)
	}

	if n.leaf {
		if len(n.children) != 0 || len(n.values) != len(n.keys) {
			return errors.AssertionFailedf("bptree: leaf at depth %d has %d keys, %d values, %d children",
				depth, len(n.keys), len(n.values), len(n.children))
		}
		if v.leafDepth < 0 {
			v.leafDepth = depth
		} else if v.leafDepth != depth {
			return errors.AssertionFailedf("bptree: leaves at depths %d and %d", v.leafDepth, depth)
		}
		v.entries += len(n.keys)
		return nil
	}
	if len(n.keys) == 0 || len(n.children) != len(n.keys)+1 || len(n.values) != 0 {
		return errors.AssertionFailedf("bptree: internal node at depth %d has %d keys, %d children, %d values",
			depth, len(n.keys), len(n.children), len(n.values))
	}
	for i, c := range n.children {
		clo, chi := lo, hi
		if i > 0 {
			clo = &n.keys[i-1]
		}
		if i < len(n.keys) {
			chi = &n.keys[i]
		}
		if err := v.node(c, depth+1, clo, chi); err != nil {
			return err
		}
	}
	return nil
}

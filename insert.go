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
	"github.com/sirupsen/logrus"
)

// insert adds an entry to the tree.  In a single-key tree an entry with an
// equal key has its key and value replaced, and the old value is returned
// along with true.  A multi-key tree places the entry after every entry with
// an equal key and always returns false.
func (t *tree[K, V]) insert(key K, value V) (V, bool) {
	_, old, ok := t.upsert(key, true, func(V, bool) V { return value })
	return old, ok
}

// upsert descends once for key.  In a single-key tree an entry with an equal
// key gets the value fn(old, true), and its key is replaced by key when
// replaceKey is set; the old key and value are returned along with true.
// Otherwise a new entry with value fn(zeroValue, false) is added, after
// every entry with an equal key in a multi-key tree.
func (t *tree[K, V]) upsert(key K, replaceKey bool, fn func(old V, ok bool) V) (_ K, _ V, _ bool) {
	var p path[K, V]
	var i int
	if t.multi {
		t.descend(key, seekUpper, &p)
		i = p.leaf.keys.upperBound(key, t.less)
	} else {
		t.descend(key, seekLower, &p)
		i = p.leaf.keys.lowerBound(key, t.less)
		if i < len(p.leaf.keys) && !t.less(key, p.leaf.keys[i]) {
			k, v := p.leaf.keys[i], p.leaf.values[i]
			if replaceKey {
				p.leaf.keys[i] = key
			}
			p.leaf.values[i] = fn(v, true)
			return k, v, true
		}
	}
	var zero V
	value := fn(zero, false)
	spare := t.reserve(&p)
	p.leaf.insertEntry(i, key, value)
	t.length++
	if len(p.leaf.keys) > t.maxKeys() {
		t.splitLeaf(&p, spare)
	}
	t.mustVerify()
	return
}

// reserve takes every node a split cascade starting at p.leaf will need from
// the free list, so that nothing in the tree has been touched if it fails.
// The first node returned is a leaf, the rest are internal nodes.
func (t *tree[K, V]) reserve(p *path[K, V]) []*node[K, V] {
	if len(p.leaf.keys) < t.maxKeys() {
		return nil
	}
	need := 1
	d := p.depth - 1
	for ; d >= 0 && len(p.frames[d].n.keys) >= t.maxKeys(); d-- {
		need++
	}
	if d < 0 {
		// The root splits too.
		need++
	}
	spare := make([]*node[K, V], need)
	spare[0] = t.newNode(true)
	for j := 1; j < need; j++ {
		spare[j] = t.newNode(false)
	}
	return spare
}

// splitLeaf splits the overflowing p.leaf in two and hands the separator to
// its parent.  The left half keeps the larger share of an odd count.
func (t *tree[K, V]) splitLeaf(p *path[K, V], spare []*node[K, V]) {
	left, right := p.leaf, spare[0]
	mid := len(left.keys) - len(left.keys)/2
	right.keys = append(right.keys, left.keys[mid:]...)
	right.values = append(right.values, left.values[mid:]...)
	left.keys.truncate(mid)
	left.values.truncate(mid)
	right.next, left.next = left.next, right
	if t.debugEnabled() {
		t.debug("split", logrus.Fields{"leaf": true, "left": len(left.keys), "right": len(right.keys)})
	}
	t.promote(p, left, left.keys[mid-1], right, spare[1:])
}

// promote inserts separator sep, with right as the child following it, into
// the parent of left.  Parents that overflow are split at their median, whose
// key moves up instead of staying in either half.  When the root splits, a new
// root is created; this is the only way the tree grows taller.
func (t *tree[K, V]) promote(p *path[K, V], left *node[K, V], sep K, right *node[K, V], spare []*node[K, V]) {
	for d := p.depth - 1; d >= 0; d-- {
		parent, i := p.frames[d].n, p.frames[d].i
		parent.keys.insertAt(i, sep)
		parent.children.insertAt(i+1, right)
		if len(parent.keys) <= t.maxKeys() {
			return
		}
		sibling := spare[0]
		spare = spare[1:]
		mid := len(parent.keys) / 2
		sep = parent.keys[mid]
		sibling.keys = append(sibling.keys, parent.keys[mid+1:]...)
		sibling.children = append(sibling.children, parent.children[mid+1:]...)
		parent.keys.truncate(mid)
		parent.children.truncate(mid + 1)
		sibling.next, parent.next = parent.next, sibling
		if t.debugEnabled() {
			t.debug("split", logrus.Fields{"leaf": false, "left": len(parent.keys), "right": len(sibling.keys)})
		}
		left, right = parent, sibling
	}
	root := spare[0]
	root.keys = append(root.keys, sep)
	root.children = append(root.children, left, right)
	t.root = root
	if t.debugEnabled() {
		t.debug("grow", logrus.Fields{"height": t.Height()})
	}
}

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

// toRemove details what entry to remove in a tree.remove call.
type toRemove int

const (
	removeItem toRemove = iota // removes the first entry equal to the given key
	removeMin                  // removes the first entry
	removeMax                  // removes the last entry
)

// remove removes one entry from the tree and returns it.  A miss leaves the
// tree untouched.
func (t *tree[K, V]) remove(key K, typ toRemove) (_ K, _ V, _ bool) {
	var p path[K, V]
	var i int
	switch typ {
	case removeItem:
		var found bool
		if i, found = t.find(key, &p); !found {
			return
		}
	case removeMin:
		if t.length == 0 {
			return
		}
		t.descend(key, seekFirst, &p)
		i = 0
	case removeMax:
		if t.length == 0 {
			return
		}
		t.descend(key, seekLast, &p)
		i = len(p.leaf.keys) - 1
	default:
		panic("invalid type")
	}
	k, v := p.leaf.removeEntry(i)
	t.length--
	t.rebalance(&p)
	t.mustVerify()
	return k, v, true
}

// rebalance restores the minimum fill of p.leaf and, after merges, of its
// ancestors.  It works bottom-up through the recorded path and stops at the
// first level that needs no more work.
//
// A node that has too few keys:
//
//	a) takes one entry from its left sibling, if that has one to spare
//	b) takes one entry from its right sibling, if that has one to spare
//	c) is merged with a sibling, which removes a separator from the parent
//
// Only (c) can leave the parent short, so only (c) continues upwards.
func (t *tree[K, V]) rebalance(p *path[K, V]) {
	n := p.leaf
	for d := p.depth - 1; d >= 0 && len(n.keys) < t.minKeys(); d-- {
		parent, i := p.frames[d].n, p.frames[d].i
		if !t.fixChild(parent, i) {
			return
		}
		n = parent
	}
	if !t.root.leaf && len(t.root.keys) == 0 {
		old := t.root
		t.root = old.children[0]
		t.freeNode(old)
		if t.debugEnabled() {
			t.debug("shrink", logrus.Fields{"height": t.Height()})
		}
	}
}

// fixChild refills child i of parent.  It returns whether a merge happened.
func (t *tree[K, V]) fixChild(parent *node[K, V], i int) (merged bool) {
	if i > 0 && len(parent.children[i-1].keys) > t.minKeys() {
		t.borrowLeft(parent, i)
		return false
	}
	if i < len(parent.keys) && len(parent.children[i+1].keys) > t.minKeys() {
		t.borrowRight(parent, i)
		return false
	}
	if i > 0 {
		i--
	}
	t.merge(parent, i)
	return true
}

// borrowLeft moves the last entry of child i-1 to the front of child i.
func (t *tree[K, V]) borrowLeft(parent *node[K, V], i int) {
	child, left := parent.children[i], parent.children[i-1]
	if child.leaf {
		k, v := left.removeEntry(len(left.keys) - 1)
		child.insertEntry(0, k, v)
		parent.keys[i-1] = left.keys[len(left.keys)-1]
	} else {
		child.keys.insertAt(0, parent.keys[i-1])
		child.children.insertAt(0, left.children.pop())
		parent.keys[i-1] = left.keys.pop()
	}
	if t.debugEnabled() {
		t.debug("borrow", logrus.Fields{"leaf": child.leaf, "from": "left"})
	}
}

// borrowRight moves the first entry of child i+1 to the end of child i.
func (t *tree[K, V]) borrowRight(parent *node[K, V], i int) {
	child, right := parent.children[i], parent.children[i+1]
	if child.leaf {
		k, v := right.removeEntry(0)
		child.keys = append(child.keys, k)
		child.values = append(child.values, v)
		parent.keys[i] = k
	} else {
		child.keys = append(child.keys, parent.keys[i])
		child.children = append(child.children, right.children.removeAt(0))
		parent.keys[i] = right.keys.removeAt(0)
	}
	if t.debugEnabled() {
		t.debug("borrow", logrus.Fields{"leaf": child.leaf, "from": "right"})
	}
}

// merge folds child i+1 of parent into child i and drops the separator
// between them.  Internal children take the separator as the key joining
// their two halves; leaves never held a copy of it.
func (t *tree[K, V]) merge(parent *node[K, V], i int) {
	left := parent.children[i]
	sep := parent.keys.removeAt(i)
	right := parent.children.removeAt(i + 1)
	if left.leaf {
		left.keys = append(left.keys, right.keys...)
		left.values = append(left.values, right.values...)
	} else {
		left.keys = append(left.keys, sep)
		left.keys = append(left.keys, right.keys...)
		left.children = append(left.children, right.children...)
	}
	left.next = right.next
	if t.debugEnabled() {
		t.debug("merge", logrus.Fields{"leaf": left.leaf, "keys": len(left.keys)})
	}
	t.freeNode(right)
}

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
	"strings"

	"github.com/sirupsen/logrus"
)

// tree is the engine shared by every variant.
//
// Write operations are not safe for concurrent mutation by multiple
// goroutines, but Read operations are.
type tree[K, V any] struct {
	capacity int
	length   int
	root     *node[K, V]
	freelist *FreeListG[K, V]
	less     LessFunc[K]
	// multi trees keep duplicate keys, in insertion order.
	multi  bool
	verify bool
	log    *logrus.Logger
}

func (t *tree[K, V]) init(capacity int, less LessFunc[K], multi bool, f *FreeListG[K, V]) {
	if capacity < MinCapacity {
		panic("bad capacity")
	}
	if less == nil {
		panic("nil less")
	}
	if f == nil {
		f = NewFreeListG[K, V](DefaultFreeListSize)
	}
	t.capacity = capacity
	t.less = less
	t.multi = multi
	t.freelist = f
	t.log = Log
	t.root = t.newNode(true)
}

// configure initializes t from a validated Config.
func (t *tree[K, V]) configure(cfg Config, less LessFunc[K], multi bool) error {
	if err := cfg.validate(less != nil); err != nil {
		return err
	}
	t.init(cfg.Capacity, less, multi, NewFreeListG[K, V](cfg.FreeListSize))
	t.verify = cfg.Verify
	if cfg.Logger != nil {
		t.log = cfg.Logger
	}
	return nil
}

// maxKeys returns the max number of keys to allow per node.
func (t *tree[K, V]) maxKeys() int {
	return t.capacity
}

// minKeys returns the min number of keys to allow per node (ignored for the
// root node).
func (t *tree[K, V]) minKeys() int {
	return t.capacity / 2
}

func (t *tree[K, V]) newNode(leaf bool) *node[K, V] {
	n := t.freelist.newNode()
	n.leaf = leaf
	// One spare slot for the key that overflows a node right before a split.
	if cap(n.keys) < t.capacity+1 {
		n.keys = make(items[K], 0, t.capacity+1)
	}
	if leaf {
		if cap(n.values) < t.capacity+1 {
			n.values = make(items[V], 0, t.capacity+1)
		}
	} else if cap(n.children) < t.capacity+2 {
		n.children = make(items[*node[K, V]], 0, t.capacity+2)
	}
	return n
}

func (t *tree[K, V]) freeNode(n *node[K, V]) bool {
	n.reset()
	return t.freelist.freeNode(n)
}

func (t *tree[K, V]) debugEnabled() bool {
	return t.log.IsLevelEnabled(logrus.DebugLevel)
}

func (t *tree[K, V]) debug(op string, fields logrus.Fields) {
	fields["op"] = op
	t.log.WithFields(fields).Debug("bptree: " + op)
}

// Capacity returns the maximum number of keys a node holds.
func (t *tree[K, V]) Capacity() int {
	return t.capacity
}

// Len returns the number of entries currently in the tree.
func (t *tree[K, V]) Len() int {
	return t.length
}

// Empty reports whether the tree holds no entries.
func (t *tree[K, V]) Empty() bool {
	return t.length == 0
}

// Height returns the number of levels in the tree.  An empty tree has a
// height of 1: its root is an empty leaf.
func (t *tree[K, V]) Height() int {
	h := 1
	for n := t.root; !n.leaf; n = n.children[0] {
		h++
	}
	return h
}

// Clear removes all entries from the tree.  If addNodesToFreelist is true,
// t's nodes are added to its freelist as part of this call, until the freelist
// is full.  Otherwise, the root node is simply dereferenced and the subtree
// left to Go's normal GC processes.
func (t *tree[K, V]) Clear(addNodesToFreelist bool) {
	if t.debugEnabled() {
		t.debug("clear", logrus.Fields{"len": t.length, "height": t.Height()})
	}
	old := t.root
	t.root, t.length = t.newNode(true), 0
	if addNodesToFreelist {
		t.reclaim(old)
	}
}

// reclaim hands n's subtree to the free list, stopping as soon as the list
// is full.
func (t *tree[K, V]) reclaim(n *node[K, V]) bool {
	for _, c := range n.children {
		if !t.reclaim(c) {
			return false
		}
	}
	return t.freeNode(n)
}

// clone returns a deep copy of t sharing only its free list.
//
// Sibling links are a property of a whole level, so they are rebuilt from
// the left-to-right order in which each level's copies are produced.
func (t *tree[K, V]) clone() tree[K, V] {
	c := *t
	var lasts []*node[K, V]
	c.root = c.cloneNode(t.root, 0, &lasts)
	if t.debugEnabled() {
		t.debug("clone", logrus.Fields{"len": t.length, "height": len(lasts)})
	}
	return c
}

func (t *tree[K, V]) cloneNode(n *node[K, V], depth int, lasts *[]*node[K, V]) *node[K, V] {
	c := t.newNode(n.leaf)
	// Parents are linked before their children, so every level is reached
	// left to right and its first node appends the level to lasts.
	if depth == len(*lasts) {
		*lasts = append(*lasts, c)
	} else {
		(*lasts)[depth].next = c
		(*lasts)[depth] = c
	}
	for _, k := range n.keys {
		c.keys = append(c.keys, deepCopy(k))
	}
	if n.leaf {
		for _, v := range n.values {
			c.values = append(c.values, deepCopy(v))
		}
	} else {
		for _, child := range n.children {
			c.children = append(c.children, t.cloneNode(child, depth+1, lasts))
		}
	}
	return c
}

// get finds the first entry equal to key.
func (t *tree[K, V]) get(key K) (_ K, _ V, _ bool) {
	n, i := t.seek(key)
	if n == nil || t.less(key, n.keys[i]) {
		return
	}
	return n.keys[i], n.values[i], true
}

// count returns the number of entries equal to key.
func (t *tree[K, V]) count(key K) (c int) {
	for it := t.From(key); it.While(key); it.Next() {
		c++
	}
	return
}

// first returns the leftmost leaf.
func (t *tree[K, V]) first() *node[K, V] {
	n := t.root
	for !n.leaf {
		n = n.children[0]
	}
	return n
}

// last returns the rightmost leaf.
func (t *tree[K, V]) last() *node[K, V] {
	n := t.root
	for !n.leaf {
		n = n.children[len(n.children)-1]
	}
	return n
}

// Min returns the smallest entry in the tree, or (zeroValue, zeroValue, false)
// if the tree is empty.  With duplicate keys it is the earliest inserted one.
func (t *tree[K, V]) Min() (_ K, _ V, _ bool) {
	n := t.first()
	if len(n.keys) == 0 {
		return
	}
	return n.keys[0], n.values[0], true
}

// Max returns the largest entry in the tree, or (zeroValue, zeroValue, false)
// if the tree is empty.  With duplicate keys it is the latest inserted one.
func (t *tree[K, V]) Max() (_ K, _ V, _ bool) {
	n := t.last()
	if len(n.keys) == 0 {
		return
	}
	last := len(n.keys) - 1
	return n.keys[last], n.values[last], true
}

// DeleteMin removes the smallest entry in the tree and returns it.
// If no such entry exists, returns (zeroValue, zeroValue, false).
func (t *tree[K, V]) DeleteMin() (K, V, bool) {
	var zero K
	return t.remove(zero, removeMin)
}

// DeleteMax removes the largest entry in the tree and returns it.
// If no such entry exists, returns (zeroValue, zeroValue, false).
func (t *tree[K, V]) DeleteMax() (K, V, bool) {
	var zero K
	return t.remove(zero, removeMax)
}

// String returns the node structure of the tree, one node per line.
func (t *tree[K, V]) String() string {
	var b strings.Builder
	t.root.print(&b, 0)
	return b.String()
}

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

// maxHeight bounds the number of levels of a tree.  Every internal node has
// at least two children, so 64 levels hold more entries than an int counts.
const maxHeight = 64

// frame is one step of a descent: an internal node and the index of the
// child the descent took.
type frame[K, V any] struct {
	n *node[K, V]
	i int
}

// path records the ancestors of a leaf, root first, so that splits and merges
// can walk back up without searching the tree again.
type path[K, V any] struct {
	frames [maxHeight]frame[K, V]
	depth  int
	leaf   *node[K, V]
}

func (p *path[K, V]) push(n *node[K, V], i int) {
	if p.depth == maxHeight {
		panic(errors.AssertionFailedf("bptree: tree is deeper than %d levels", maxHeight))
	}
	p.frames[p.depth] = frame[K, V]{n: n, i: i}
	p.depth++
}

// advance moves p to the leaf right of p.leaf.  It returns false, leaving p
// alone, when p.leaf is the last leaf.
func (p *path[K, V]) advance() bool {
	d := p.depth - 1
	for d >= 0 && p.frames[d].i == len(p.frames[d].n.children)-1 {
		d--
	}
	if d < 0 {
		return false
	}
	p.frames[d].i++
	n := p.frames[d].n.children[p.frames[d].i]
	p.depth = d + 1
	for !n.leaf {
		p.push(n, 0)
		n = n.children[0]
	}
	p.leaf = n
	return true
}

// seekMode selects which child a descent follows at each internal node.
type seekMode int

const (
	seekLower seekMode = iota // child that may hold the first key >= key
	seekUpper                 // child that may hold the first key > key
	seekFirst                 // leftmost child
	seekLast                  // rightmost child
)

// descend walks from the root to a leaf, recording the internal nodes it
// passes through in p when p is not nil.
func (t *tree[K, V]) descend(key K, mode seekMode, p *path[K, V]) *node[K, V] {
	if p != nil {
		p.depth = 0
	}
	n := t.root
	for !n.leaf {
		var i int
		switch mode {
		case seekLower:
			i = n.keys.lowerBound(key, t.less)
		case seekUpper:
			i = n.keys.upperBound(key, t.less)
		case seekFirst:
			i = 0
		case seekLast:
			i = len(n.children) - 1
		}
		if p != nil {
			p.push(n, i)
		}
		n = n.children[i]
	}
	if p != nil {
		p.leaf = n
	}
	return n
}

// seek returns the position of the first entry whose key is >= key, or a nil
// node when every key is smaller.
func (t *tree[K, V]) seek(key K) (*node[K, V], int) {
	n := t.descend(key, seekLower, nil)
	i := n.keys.lowerBound(key, t.less)
	if i == len(n.keys) {
		// Separators may be stale after removals; the successor then starts the
		// next leaf, which is never empty.
		if n = n.next; n == nil {
			return nil, 0
		}
		i = 0
	}
	return n, i
}

// find positions p at the first entry equal to key.
func (t *tree[K, V]) find(key K, p *path[K, V]) (int, bool) {
	t.descend(key, seekLower, p)
	i := p.leaf.keys.lowerBound(key, t.less)
	if i == len(p.leaf.keys) {
		if !p.advance() {
			return i, false
		}
		i = 0
	}
	if t.less(key, p.leaf.keys[i]) {
		return i, false
	}
	return i, true
}

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
	"fmt"
	"io"
	"strings"
)

// items stores keys, values or children in a node.
type items[T any] []T

// insertAt inserts a value into the given index, pushing all subsequent values
// forward.
func (s *items[T]) insertAt(index int, item T) {
	var zero T
	*s = append(*s, zero)
	if index < len(*s) {
		copy((*s)[index+1:], (*s)[index:])
	}
	(*s)[index] = item
}

// removeAt removes a value at a given index, pulling all subsequent values
// back.
func (s *items[T]) removeAt(index int) T {
	item := (*s)[index]
	copy((*s)[index:], (*s)[index+1:])
	var zero T
	(*s)[len(*s)-1] = zero
	*s = (*s)[:len(*s)-1]
	return item
}

// pop removes and returns the last element in the list.
func (s *items[T]) pop() (out T) {
	index := len(*s) - 1
	out = (*s)[index]
	var zero T
	(*s)[index] = zero
	*s = (*s)[:index]
	return
}

// truncate truncates this instance at index so that it contains only the
// first index items. index must be less than or equal to length.
func (s *items[T]) truncate(index int) {
	var toClear items[T]
	*s, toClear = (*s)[:index], (*s)[index:]
	var zero T
	for i := 0; i < len(toClear); i++ {
		toClear[i] = zero
	}
}

// lowerBound returns the index of the first key that is not less than key.
//
// Nodes are small, so a linear scan beats a binary search here.
func (s items[T]) lowerBound(key T, less LessFunc[T]) int {
	i := 0
	for i < len(s) && less(s[i], key) {
		i++
	}
	return i
}

// upperBound returns the index of the first key that is greater than key.
func (s items[T]) upperBound(key T, less LessFunc[T]) int {
	i := 0
	for i < len(s) && !less(key, s[i]) {
		i++
	}
	return i
}

// node is a single node of the tree.
//
// A leaf holds parallel keys and values.  An internal node holds keys and
// len(keys)+1 children, where every key in children[i] is <= keys[i] and every
// key in children[i+1] is > keys[i] (>= for trees that keep duplicates).
//
// next points at the node to the right on the same level, or is nil for the
// rightmost node of a level.
type node[K, V any] struct {
	keys     items[K]
	values   items[V]
	children items[*node[K, V]]
	next     *node[K, V]
	leaf     bool
}

// insertEntry inserts a key/value pair into a leaf at index i.
func (n *node[K, V]) insertEntry(i int, key K, value V) {
	n.keys.insertAt(i, key)
	n.values.insertAt(i, value)
}

// removeEntry removes the key/value pair at index i from a leaf.
func (n *node[K, V]) removeEntry(i int) (K, V) {
	return n.keys.removeAt(i), n.values.removeAt(i)
}

// reset clears every slot so the node can go back on a free list without
// pinning keys, values or children.
func (n *node[K, V]) reset() {
	n.keys.truncate(0)
	n.values.truncate(0)
	n.children.truncate(0)
	n.next = nil
	n.leaf = false
}

// print is used for testing/debugging purposes.
func (n *node[K, V]) print(w io.Writer, level int) {
	kind := "NODE"
	if n.leaf {
		kind = "LEAF"
	}
	fmt.Fprintf(w, "%s%s:%v\n", strings.Repeat("  ", level), kind, n.keys)
	for _, c := range n.children {
		c.print(w, level+1)
	}
}

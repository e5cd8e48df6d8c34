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
	"iter"
)

// Iterator is a cursor over the entries of a tree in ascending order.  It
// only ever follows the links between leaves.
//
// The zero Iterator is exhausted.  Any modification of the tree invalidates
// its iterators.
//
//	for it := m.From(k); it.While(k); it.Next() {
//		use(it.Value())
//	}
type Iterator[K, V any] struct {
	n    *node[K, V]
	i    int
	less LessFunc[K]
}

func (t *tree[K, V]) iterator(n *node[K, V], i int) Iterator[K, V] {
	if n != nil && i >= len(n.keys) {
		n, i = n.next, 0
	}
	if n == nil {
		return Iterator[K, V]{less: t.less}
	}
	return Iterator[K, V]{n: n, i: i, less: t.less}
}

// Begin returns an iterator positioned at the first entry.
func (t *tree[K, V]) Begin() Iterator[K, V] {
	return t.iterator(t.first(), 0)
}

// From returns an iterator positioned at the first entry whose key is >= key.
func (t *tree[K, V]) From(key K) Iterator[K, V] {
	n, i := t.seek(key)
	return t.iterator(n, i)
}

// Valid reports whether the iterator is positioned at an entry.
func (it *Iterator[K, V]) Valid() bool {
	return it.n != nil
}

// Next moves to the following entry.
func (it *Iterator[K, V]) Next() {
	if it.n == nil {
		return
	}
	if it.i++; it.i >= len(it.n.keys) {
		it.n, it.i = it.n.next, 0
	}
}

// Key returns the key of the current entry.  It panics if the iterator is not
// valid.
func (it *Iterator[K, V]) Key() K {
	return it.n.keys[it.i]
}

// Value returns the value of the current entry.  It panics if the iterator is
// not valid.
func (it *Iterator[K, V]) Value() V {
	return it.n.values[it.i]
}

// While reports whether the iterator is valid and its key equals key.  Used
// after From(key), it bounds a scan to the run of entries equal to key.
func (it *Iterator[K, V]) While(key K) bool {
	if it.n == nil {
		return false
	}
	k := it.n.keys[it.i]
	return !it.less(k, key) && !it.less(key, k)
}

// Until reports whether the iterator is valid and its key is <= key.
func (it *Iterator[K, V]) Until(key K) bool {
	return it.n != nil && !it.less(key, it.n.keys[it.i])
}

type optionalItem[T any] struct {
	item  T
	valid bool
}

func optional[T any](item T) optionalItem[T] {
	return optionalItem[T]{item: item, valid: true}
}
func empty[T any]() optionalItem[T] {
	return optionalItem[T]{}
}

// ascend calls iter for the entries in [start, stop), walking the leaf chain.
// A missing bound is open.
func (t *tree[K, V]) ascend(start, stop optionalItem[K], iter ItemIteratorG[K, V]) {
	var it Iterator[K, V]
	if start.valid {
		it = t.From(start.item)
	} else {
		it = t.Begin()
	}
	for ; it.Valid(); it.Next() {
		if stop.valid && !t.less(it.Key(), stop.item) {
			return
		}
		if !iter(it.Key(), it.Value()) {
			return
		}
	}
}

// descend calls iter for the entries of n's subtree in (stop, start],
// largest first.  The leaf chain only points right, so this walks the tree.
func (n *node[K, V]) descend(start, stop optionalItem[K], less LessFunc[K], iter ItemIteratorG[K, V]) bool {
	if n.leaf {
		i := len(n.keys) - 1
		if start.valid {
			i = n.keys.upperBound(start.item, less) - 1
		}
		for ; i >= 0; i-- {
			if stop.valid && !less(stop.item, n.keys[i]) {
				return false
			}
			if !iter(n.keys[i], n.values[i]) {
				return false
			}
		}
		return true
	}
	i := len(n.children) - 1
	if start.valid {
		// Children right of the first separator > start hold only larger keys.
		i = n.keys.upperBound(start.item, less)
	}
	for ; i >= 0; i-- {
		if !n.children[i].descend(start, stop, less, iter) {
			return false
		}
	}
	return true
}

// AscendRange calls the iterator for every entry in the tree within the range
// [greaterOrEqual, lessThan), until iterator returns false.
func (t *tree[K, V]) AscendRange(greaterOrEqual, lessThan K, iterator ItemIteratorG[K, V]) {
	t.ascend(optional(greaterOrEqual), optional(lessThan), iterator)
}

// AscendLessThan calls the iterator for every entry in the tree within the range
// [first, pivot), until iterator returns false.
func (t *tree[K, V]) AscendLessThan(pivot K, iterator ItemIteratorG[K, V]) {
	t.ascend(empty[K](), optional(pivot), iterator)
}

// AscendGreaterOrEqual calls the iterator for every entry in the tree within
// the range [pivot, last], until iterator returns false.
func (t *tree[K, V]) AscendGreaterOrEqual(pivot K, iterator ItemIteratorG[K, V]) {
	t.ascend(optional(pivot), empty[K](), iterator)
}

// Ascend calls the iterator for every entry in the tree within the range
// [first, last], until iterator returns false.
func (t *tree[K, V]) Ascend(iterator ItemIteratorG[K, V]) {
	t.ascend(empty[K](), empty[K](), iterator)
}

// DescendRange calls the iterator for every entry in the tree within the range
// [lessOrEqual, greaterThan), until iterator returns false.
func (t *tree[K, V]) DescendRange(lessOrEqual, greaterThan K, iterator ItemIteratorG[K, V]) {
	t.root.descend(optional(lessOrEqual), optional(greaterThan), t.less, iterator)
}

// DescendLessOrEqual calls the iterator for every entry in the tree within the range
// [pivot, first], until iterator returns false.
func (t *tree[K, V]) DescendLessOrEqual(pivot K, iterator ItemIteratorG[K, V]) {
	t.root.descend(optional(pivot), empty[K](), t.less, iterator)
}

// DescendGreaterThan calls the iterator for every entry in the tree within
// the range [last, pivot), until iterator returns false.
func (t *tree[K, V]) DescendGreaterThan(pivot K, iterator ItemIteratorG[K, V]) {
	t.root.descend(empty[K](), optional(pivot), t.less, iterator)
}

// Descend calls the iterator for every entry in the tree within the range
// [last, first], until iterator returns false.
func (t *tree[K, V]) Descend(iterator ItemIteratorG[K, V]) {
	t.root.descend(empty[K](), empty[K](), t.less, iterator)
}

// All returns the entries of the tree in ascending order.  This is the
// sequence serializers should write; InsertSeq reads one back.
func (t *tree[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for it := t.Begin(); it.Valid(); it.Next() {
			if !yield(it.Key(), it.Value()) {
				return
			}
		}
	}
}

// Keys returns the keys of the tree in ascending order.
func (t *tree[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for it := t.Begin(); it.Valid(); it.Next() {
			if !yield(it.Key()) {
				return
			}
		}
	}
}

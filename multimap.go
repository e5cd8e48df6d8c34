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

// MultiMapG is an ordered map backed by a B+Tree that keeps every inserted
// entry, including entries with equal keys.  Entries with equal keys form a
// run ordered by insertion.
type MultiMapG[K, V any] struct {
	tree[K, V]
}

// NewMultiMapG creates a new multimap whose nodes hold up to capacity keys.
func NewMultiMapG[K, V any](capacity int, less LessFunc[K]) *MultiMapG[K, V] {
	return NewMultiMapWithFreeListG(capacity, less, NewFreeListG[K, V](DefaultFreeListSize))
}

// NewOrderedMultiMapG creates a new multimap for ordered key types.
func NewOrderedMultiMapG[K Ordered, V any](capacity int) *MultiMapG[K, V] {
	return NewMultiMapG[K, V](capacity, Less[K]())
}

// NewMultiMapWithFreeListG creates a new multimap that uses the given node
// free list.
func NewMultiMapWithFreeListG[K, V any](capacity int, less LessFunc[K], f *FreeListG[K, V]) *MultiMapG[K, V] {
	m := new(MultiMapG[K, V])
	m.init(capacity, less, true, f)
	return m
}

// NewMultiMapFromConfig creates a new multimap from cfg.
func NewMultiMapFromConfig[K, V any](cfg Config, less LessFunc[K]) (*MultiMapG[K, V], error) {
	m := new(MultiMapG[K, V])
	if err := m.configure(cfg, less, true); err != nil {
		return nil, err
	}
	return m, nil
}

// Insert adds an entry after every entry with an equal key.
func (m *MultiMapG[K, V]) Insert(key K, value V) {
	m.insert(key, value)
}

// Get returns the value of the earliest inserted entry for key.
func (m *MultiMapG[K, V]) Get(key K) (_ V, _ bool) {
	_, v, ok := m.get(key)
	return v, ok
}

// Has returns true if at least one entry has the given key.
func (m *MultiMapG[K, V]) Has(key K) bool {
	_, _, ok := m.get(key)
	return ok
}

// Count returns the number of entries with the given key.
func (m *MultiMapG[K, V]) Count(key K) int {
	return m.count(key)
}

// Values returns the values stored under key, in insertion order.
func (m *MultiMapG[K, V]) Values(key K) iter.Seq[V] {
	return func(yield func(V) bool) {
		for it := m.From(key); it.While(key); it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}

// Delete removes the earliest inserted entry for key and returns its value.
// Other entries with the same key stay.  If no such key exists, returns
// (zeroValue, false).
func (m *MultiMapG[K, V]) Delete(key K) (_ V, _ bool) {
	_, v, ok := m.remove(key, removeItem)
	return v, ok
}

// DeleteAll removes every entry for key and returns how many there were.
func (m *MultiMapG[K, V]) DeleteAll(key K) (n int) {
	for {
		if _, _, ok := m.remove(key, removeItem); !ok {
			return
		}
		n++
	}
}

// InsertSeq inserts every pair of seq in order and returns how many it
// inserted.
func (m *MultiMapG[K, V]) InsertSeq(seq iter.Seq2[K, V]) (added int) {
	for k, v := range seq {
		m.insert(k, v)
		added++
	}
	return
}

// Clone returns a deep copy of the multimap.
func (m *MultiMapG[K, V]) Clone() *MultiMapG[K, V] {
	return &MultiMapG[K, V]{m.clone()}
}

// Equal reports whether m and o hold the same sequence of entries; eq
// compares values and may be nil to compare keys only.
func (m *MultiMapG[K, V]) Equal(o *MultiMapG[K, V], eq func(a, b V) bool) bool {
	return m.equal(&o.tree, eq)
}

// Hash folds the entries of m, in order, into a single hash.
func (m *MultiMapG[K, V]) Hash(hk HashFunc[K], hv HashFunc[V]) uint64 {
	return m.hash(hk, hv)
}

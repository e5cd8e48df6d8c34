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

// MapG is an ordered map backed by a B+Tree.  Each key is held at most once.
//
// Write operations are not safe for concurrent mutation by multiple
// goroutines, but Read operations are.
type MapG[K, V any] struct {
	tree[K, V]
}

// NewMapG creates a new map whose nodes hold up to capacity keys.
//
// The passed-in LessFunc determines how keys are ordered.
func NewMapG[K, V any](capacity int, less LessFunc[K]) *MapG[K, V] {
	return NewMapWithFreeListG(capacity, less, NewFreeListG[K, V](DefaultFreeListSize))
}

// NewOrderedMapG creates a new map for ordered key types.
func NewOrderedMapG[K Ordered, V any](capacity int) *MapG[K, V] {
	return NewMapG[K, V](capacity, Less[K]())
}

// NewMapWithFreeListG creates a new map that uses the given node free list.
func NewMapWithFreeListG[K, V any](capacity int, less LessFunc[K], f *FreeListG[K, V]) *MapG[K, V] {
	m := new(MapG[K, V])
	m.init(capacity, less, false, f)
	return m
}

// NewMapFromConfig creates a new map from cfg.
func NewMapFromConfig[K, V any](cfg Config, less LessFunc[K]) (*MapG[K, V], error) {
	m := new(MapG[K, V])
	if err := m.configure(cfg, less, false); err != nil {
		return nil, err
	}
	return m, nil
}

// ReplaceOrInsert sets the value of key.  If the map already held key, the
// old value is returned and the second return value is true.  Otherwise,
// (zeroValue, false).
func (m *MapG[K, V]) ReplaceOrInsert(key K, value V) (V, bool) {
	return m.insert(key, value)
}

// Get returns the value of key, or (zeroValue, false) if the map does not
// hold it.
func (m *MapG[K, V]) Get(key K) (_ V, _ bool) {
	_, v, ok := m.get(key)
	return v, ok
}

// Has returns true if the given key is in the map.
func (m *MapG[K, V]) Has(key K) bool {
	_, _, ok := m.get(key)
	return ok
}

// GetOrInsert returns the value of key, inserting the zero value first if
// the map does not hold it.  The second return value reports whether key was
// already present.
func (m *MapG[K, V]) GetOrInsert(key K) (V, bool) {
	_, v, ok := m.upsert(key, false, func(old V, _ bool) V { return old })
	return v, ok
}

// Upsert sets the value of key to fn(old, ok), where ok reports whether key
// was present, and returns the new value.  The stored key is kept.
func (m *MapG[K, V]) Upsert(key K, fn func(old V, ok bool) V) (v V) {
	m.upsert(key, false, func(old V, ok bool) V {
		v = fn(old, ok)
		return v
	})
	return
}

// Delete removes key from the map, returning its value.  If no such key
// exists, returns (zeroValue, false).
func (m *MapG[K, V]) Delete(key K) (_ V, _ bool) {
	_, v, ok := m.remove(key, removeItem)
	return v, ok
}

// InsertSeq sets every pair of seq in order and returns the number of keys
// that were not already present.
func (m *MapG[K, V]) InsertSeq(seq iter.Seq2[K, V]) (added int) {
	for k, v := range seq {
		if _, replaced := m.insert(k, v); !replaced {
			added++
		}
	}
	return
}

// Clone returns a deep copy of the map.  The copy shares the free list of m.
func (m *MapG[K, V]) Clone() *MapG[K, V] {
	return &MapG[K, V]{m.clone()}
}

// Equal reports whether m and o hold equal keys in the same order, with
// values that eq deems equal.  A nil eq compares keys only.
func (m *MapG[K, V]) Equal(o *MapG[K, V], eq func(a, b V) bool) bool {
	return m.equal(&o.tree, eq)
}

// Hash folds the entries of m, in order, into a single hash.  Equal maps hash
// equally whatever their node layout.  A nil hv hashes keys only.
func (m *MapG[K, V]) Hash(hk HashFunc[K], hv HashFunc[V]) uint64 {
	return m.hash(hk, hv)
}

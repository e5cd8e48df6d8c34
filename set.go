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

// KeyIteratorG is the ItemIteratorG of sets.
type KeyIteratorG[K any] func(key K) bool

// keyTree is a tree without payload.  struct{} values take no space.
type keyTree[K any] struct {
	tree[K, struct{}]
}

func (t *keyTree[K]) keysOnly(iter KeyIteratorG[K]) ItemIteratorG[K, struct{}] {
	return func(key K, _ struct{}) bool { return iter(key) }
}

// Min returns the smallest key in the set, or (zeroValue, false) if the set
// is empty.
func (t *keyTree[K]) Min() (K, bool) {
	k, _, ok := t.tree.Min()
	return k, ok
}

// Max returns the largest key in the set, or (zeroValue, false) if the set
// is empty.
func (t *keyTree[K]) Max() (K, bool) {
	k, _, ok := t.tree.Max()
	return k, ok
}

// DeleteMin removes the smallest key in the set and returns it.
func (t *keyTree[K]) DeleteMin() (K, bool) {
	k, _, ok := t.tree.DeleteMin()
	return k, ok
}

// DeleteMax removes the largest key in the set and returns it.
func (t *keyTree[K]) DeleteMax() (K, bool) {
	k, _, ok := t.tree.DeleteMax()
	return k, ok
}

// AscendRange calls the iterator for every key within [greaterOrEqual, lessThan).
func (t *keyTree[K]) AscendRange(greaterOrEqual, lessThan K, iterator KeyIteratorG[K]) {
	t.tree.AscendRange(greaterOrEqual, lessThan, t.keysOnly(iterator))
}

// AscendLessThan calls the iterator for every key within [first, pivot).
func (t *keyTree[K]) AscendLessThan(pivot K, iterator KeyIteratorG[K]) {
	t.tree.AscendLessThan(pivot, t.keysOnly(iterator))
}

// AscendGreaterOrEqual calls the iterator for every key within [pivot, last].
func (t *keyTree[K]) AscendGreaterOrEqual(pivot K, iterator KeyIteratorG[K]) {
	t.tree.AscendGreaterOrEqual(pivot, t.keysOnly(iterator))
}

// Ascend calls the iterator for every key in ascending order.
func (t *keyTree[K]) Ascend(iterator KeyIteratorG[K]) {
	t.tree.Ascend(t.keysOnly(iterator))
}

// DescendRange calls the iterator for every key within [lessOrEqual, greaterThan).
func (t *keyTree[K]) DescendRange(lessOrEqual, greaterThan K, iterator KeyIteratorG[K]) {
	t.tree.DescendRange(lessOrEqual, greaterThan, t.keysOnly(iterator))
}

// DescendLessOrEqual calls the iterator for every key within [pivot, first].
func (t *keyTree[K]) DescendLessOrEqual(pivot K, iterator KeyIteratorG[K]) {
	t.tree.DescendLessOrEqual(pivot, t.keysOnly(iterator))
}

// DescendGreaterThan calls the iterator for every key within [last, pivot).
func (t *keyTree[K]) DescendGreaterThan(pivot K, iterator KeyIteratorG[K]) {
	t.tree.DescendGreaterThan(pivot, t.keysOnly(iterator))
}

// Descend calls the iterator for every key in descending order.
func (t *keyTree[K]) Descend(iterator KeyIteratorG[K]) {
	t.tree.Descend(t.keysOnly(iterator))
}

// All returns the keys in ascending order.
func (t *keyTree[K]) All() iter.Seq[K] {
	return t.Keys()
}

// Hash folds the keys, in order, into a single hash.
func (t *keyTree[K]) Hash(hk HashFunc[K]) uint64 {
	return t.hash(hk, nil)
}

// SetG is an ordered set backed by a B+Tree.
//
// Write operations are not safe for concurrent mutation by multiple
// goroutines, but Read operations are.
type SetG[K any] struct {
	keyTree[K]
}

// NewSetG creates a new set whose nodes hold up to capacity keys.
func NewSetG[K any](capacity int, less LessFunc[K]) *SetG[K] {
	return NewSetWithFreeListG(capacity, less, NewFreeListG[K, struct{}](DefaultFreeListSize))
}

// NewOrderedSetG creates a new set for ordered key types.
func NewOrderedSetG[K Ordered](capacity int) *SetG[K] {
	return NewSetG[K](capacity, Less[K]())
}

// NewSetWithFreeListG creates a new set that uses the given node free list.
func NewSetWithFreeListG[K any](capacity int, less LessFunc[K], f *FreeListG[K, struct{}]) *SetG[K] {
	s := new(SetG[K])
	s.init(capacity, less, false, f)
	return s
}

// NewSetFromConfig creates a new set from cfg.
func NewSetFromConfig[K any](cfg Config, less LessFunc[K]) (*SetG[K], error) {
	s := new(SetG[K])
	if err := s.configure(cfg, less, false); err != nil {
		return nil, err
	}
	return s, nil
}

// ReplaceOrInsert adds the given key to the set.  If an equal key was
// already present, it is replaced and returned, and the second return value
// is true.  Otherwise, (zeroValue, false).
func (s *SetG[K]) ReplaceOrInsert(key K) (K, bool) {
	k, _, ok := s.upsert(key, true, func(struct{}, bool) struct{} { return struct{}{} })
	return k, ok
}

// Get looks for the key in the set, returning the stored equal key.
func (s *SetG[K]) Get(key K) (_ K, _ bool) {
	k, _, ok := s.get(key)
	return k, ok
}

// Has returns true if the given key is in the set.
func (s *SetG[K]) Has(key K) bool {
	_, _, ok := s.get(key)
	return ok
}

// Delete removes the key equal to the passed in key from the set, returning
// it.  If no such key exists, returns (zeroValue, false).
func (s *SetG[K]) Delete(key K) (K, bool) {
	k, _, ok := s.remove(key, removeItem)
	return k, ok
}

// InsertSeq adds every key of seq and returns how many were new.
func (s *SetG[K]) InsertSeq(seq iter.Seq[K]) (added int) {
	for k := range seq {
		if _, replaced := s.insert(k, struct{}{}); !replaced {
			added++
		}
	}
	return
}

// Clone returns a deep copy of the set.
func (s *SetG[K]) Clone() *SetG[K] {
	return &SetG[K]{keyTree[K]{s.clone()}}
}

// Equal reports whether s and o hold the same keys.
func (s *SetG[K]) Equal(o *SetG[K]) bool {
	return s.equal(&o.tree, nil)
}

// MultiSetG is an ordered set backed by a B+Tree that keeps duplicate keys.
type MultiSetG[K any] struct {
	keyTree[K]
}

// NewMultiSetG creates a new multiset whose nodes hold up to capacity keys.
func NewMultiSetG[K any](capacity int, less LessFunc[K]) *MultiSetG[K] {
	return NewMultiSetWithFreeListG(capacity, less, NewFreeListG[K, struct{}](DefaultFreeListSize))
}

// NewOrderedMultiSetG creates a new multiset for ordered key types.
func NewOrderedMultiSetG[K Ordered](capacity int) *MultiSetG[K] {
	return NewMultiSetG[K](capacity, Less[K]())
}

// NewMultiSetWithFreeListG creates a new multiset that uses the given node
// free list.
func NewMultiSetWithFreeListG[K any](capacity int, less LessFunc[K], f *FreeListG[K, struct{}]) *MultiSetG[K] {
	s := new(MultiSetG[K])
	s.init(capacity, less, true, f)
	return s
}

// NewMultiSetFromConfig creates a new multiset from cfg.
func NewMultiSetFromConfig[K any](cfg Config, less LessFunc[K]) (*MultiSetG[K], error) {
	s := new(MultiSetG[K])
	if err := s.configure(cfg, less, true); err != nil {
		return nil, err
	}
	return s, nil
}

// Insert adds key after every key equal to it.
func (s *MultiSetG[K]) Insert(key K) {
	s.insert(key, struct{}{})
}

// Has returns true if the given key is in the multiset.
func (s *MultiSetG[K]) Has(key K) bool {
	_, _, ok := s.get(key)
	return ok
}

// Count returns the number of keys equal to key.
func (s *MultiSetG[K]) Count(key K) int {
	return s.count(key)
}

// Delete removes one key equal to key, the earliest inserted, and returns it.
func (s *MultiSetG[K]) Delete(key K) (K, bool) {
	k, _, ok := s.remove(key, removeItem)
	return k, ok
}

// InsertSeq inserts every key of seq and returns how many it inserted.
func (s *MultiSetG[K]) InsertSeq(seq iter.Seq[K]) (added int) {
	for k := range seq {
		s.insert(k, struct{}{})
		added++
	}
	return
}

// Clone returns a deep copy of the multiset.
func (s *MultiSetG[K]) Clone() *MultiSetG[K] {
	return &MultiSetG[K]{keyTree[K]{s.clone()}}
}

// Equal reports whether s and o hold the same keys with the same counts.
func (s *MultiSetG[K]) Equal(o *MultiSetG[K]) bool {
	return s.equal(&o.tree, nil)
}

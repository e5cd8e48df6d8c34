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
	"sync"
)

// SyncMapG wraps a MapG so that it can be used from several goroutines.
// Readers share a read lock; every write takes the lock exclusively.
type SyncMapG[K, V any] struct {
	mu sync.RWMutex
	m  *MapG[K, V]
}

// NewSyncMapG wraps m.  m must not be used directly afterwards.
func NewSyncMapG[K, V any](m *MapG[K, V]) *SyncMapG[K, V] {
	return &SyncMapG[K, V]{m: m}
}

// Get returns the value of key.
func (s *SyncMapG[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m.Get(key)
}

// Len returns the number of entries.
func (s *SyncMapG[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m.Len()
}

// ReplaceOrInsert sets the value of key; see MapG.ReplaceOrInsert.
func (s *SyncMapG[K, V]) ReplaceOrInsert(key K, value V) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.ReplaceOrInsert(key, value)
}

// Upsert sets the value of key from its old value; see MapG.Upsert.  fn runs
// under the write lock and must not call back into s.
func (s *SyncMapG[K, V]) Upsert(key K, fn func(old V, ok bool) V) V {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Upsert(key, fn)
}

// Delete removes key.
func (s *SyncMapG[K, V]) Delete(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Delete(key)
}

// View runs fn with the map under the read lock.  fn must not modify it.
func (s *SyncMapG[K, V]) View(fn func(m *MapG[K, V])) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.m)
}

// Update runs fn with the map under the write lock.
func (s *SyncMapG[K, V]) Update(fn func(m *MapG[K, V])) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.m)
}

// Snapshot returns a private deep copy of the map.
func (s *SyncMapG[K, V]) Snapshot() *MapG[K, V] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m.Clone()
}

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

// Package bptree implements in-memory B+Trees of arbitrary node capacity.
//
// bptree implements an in-memory B+Tree for use as an ordered data structure.
// It is not meant for persistent storage solutions.
//
// Unlike a classic B-Tree, every entry lives in a leaf.  Internal nodes hold
// only separator keys that steer a search, and the leaves of the tree are
// chained together left to right, so an ascending scan never has to climb back
// up through the internal levels.  Each level of internal nodes is chained the
// same way.
//
// Four shapes are built from the same engine:
//   - SetG, an ordered set of keys.
//   - MapG, an ordered map from keys to values.
//   - MultiSetG, an ordered set that keeps duplicate keys.
//   - MultiMapG, an ordered map that keeps duplicate keys, each with its own
//     value.  Equal keys are kept in insertion order.
//
// All of them require a passed-in "less" function to define their ordering;
// the NewOrdered* constructors use the '<' operator for types that support it.
//
// A tree is built for a single writer.  Read operations may run concurrently
// with each other, but never with a write; see SyncMapG for a locked wrapper.
package bptree

import (
	"sync"
)

const (
	// DefaultCapacity is the node capacity used by DefaultConfig.
	DefaultCapacity = 32
	// MinCapacity is the smallest node capacity a tree accepts.
	MinCapacity = 2
	// DefaultFreeListSize is the number of nodes a free list keeps for reuse.
	DefaultFreeListSize = 32
)

// FreeListG represents a free list of B+Tree nodes. By default each
// tree has its own FreeList, but multiple trees can share the same
// FreeList, in particular when they're created with Clone.
// Two trees using the same freelist are safe for concurrent write access.
type FreeListG[K, V any] struct {
	mu       sync.Mutex
	freelist []*node[K, V]
}

// NewFreeListG creates a new free list.
// size is the maximum size of the returned free list.
func NewFreeListG[K, V any](size int) *FreeListG[K, V] {
	return &FreeListG[K, V]{freelist: make([]*node[K, V], 0, size)}
}

func (f *FreeListG[K, V]) newNode() (n *node[K, V]) {
	f.mu.Lock()
	index := len(f.freelist) - 1
	if index < 0 {
		f.mu.Unlock()
		return new(node[K, V])
	}
	n = f.freelist[index]
	f.freelist[index] = nil
	f.freelist = f.freelist[:index]
	f.mu.Unlock()
	return
}

func (f *FreeListG[K, V]) freeNode(n *node[K, V]) (out bool) {
	f.mu.Lock()
	if len(f.freelist) < cap(f.freelist) {
		f.freelist = append(f.freelist, n)
		out = true
	}
	f.mu.Unlock()
	return
}

// Len returns the number of nodes currently waiting for reuse.
func (f *FreeListG[K, V]) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.freelist)
}

// ItemIteratorG allows callers of {A/De}scend* to iterate in-order over portions of
// the tree.  When this function returns false, iteration will stop and the
// associated Ascend* function will immediately return.
type ItemIteratorG[K, V any] func(key K, value V) bool

// Ordered represents the set of types for which the '<' operator work.
type Ordered interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr | ~float32 | ~float64 | ~string
}

// LessFunc[K] determines how to order a type 'K'.  It should implement a strict
// ordering, and should return true if within that ordering, 'a' < 'b'.
type LessFunc[K any] func(a, b K) bool

// Less[K] returns a default LessFunc that uses the '<' operator for types that support it.
func Less[K Ordered]() LessFunc[K] {
	return func(a, b K) bool { return a < b }
}

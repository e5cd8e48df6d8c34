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
	"encoding/binary"
	"math"
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// HashFunc hashes a single key or value.
type HashFunc[T any] func(T) uint64

// HashOrdered returns a HashFunc for the types '<' works on.  Values that
// '<' cannot tell apart hash equally: 0 and -0 do, and so do all NaNs.
func HashOrdered[T Ordered]() HashFunc[T] {
	return func(v T) uint64 {
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.String:
			return xxhash.Sum64String(rv.String())
		case reflect.Float32, reflect.Float64:
			return hashUint64(floatBits(rv.Float()))
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			return hashUint64(rv.Uint())
		default:
			return hashUint64(uint64(rv.Int()))
		}
	}
}

// floatBits returns the bits of f with -0 folded into 0 and every NaN into
// one NaN.
func floatBits(f float64) uint64 {
	switch {
	case f == 0:
		return 0
	case math.IsNaN(f):
		return math.Float64bits(math.NaN())
	}
	return math.Float64bits(f)
}

func hashUint64(u uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], u)
	return xxhash.Sum64(buf[:])
}

// equal reports whether t and o produce the same entries in the same order.
// Node layout is irrelevant: equal trees may be shaped differently.
func (t *tree[K, V]) equal(o *tree[K, V], eq func(a, b V) bool) bool {
	if t.length != o.length {
		return false
	}
	a, b := t.Begin(), o.Begin()
	for ; a.Valid() && b.Valid(); a.Next() {
		if t.less(a.Key(), b.Key()) || t.less(b.Key(), a.Key()) {
			return false
		}
		if eq != nil && !eq(a.Value(), b.Value()) {
			return false
		}
		b.Next()
	}
	return a.Valid() == b.Valid()
}

// hash folds the entries of t, in order, into one xxhash digest.  hv may be
// nil to hash keys only.
func (t *tree[K, V]) hash(hk HashFunc[K], hv HashFunc[V]) uint64 {
	d := xxhash.New()
	var buf [8]byte
	for it := t.Begin(); it.Valid(); it.Next() {
		binary.LittleEndian.PutUint64(buf[:], hk(it.Key()))
		d.Write(buf[:])
		if hv != nil {
			binary.LittleEndian.PutUint64(buf[:], hv(it.Value()))
			d.Write(buf[:])
		}
	}
	return d.Sum64()
}

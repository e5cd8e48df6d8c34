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
	"math"
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCloneIsIndependent(t *testing.T) {
	m := newIntMap(4, rand.Perm(200))
	c := m.Clone()
	require.NoError(t, c.Verify())
	require.Equal(t, m.String(), c.String())

	for i := 0; i < 200; i += 2 {
		m.Delete(i)
	}
	for i := 200; i < 300; i++ {
		c.ReplaceOrInsert(i, i)
	}
	require.NoError(t, m.Verify())
	require.NoError(t, c.Verify())
	require.Equal(t, 100, m.Len())
	require.Equal(t, 300, c.Len())
	require.Equal(t, intRange(300, false), intAll(c))
}

type box struct{ n int }

func (b *box) DeepCopy() *box {
	c := *b
	return &c
}

func TestCloneDeepCopies(t *testing.T) {
	m := NewOrderedMapG[int, *box](3)
	for i := 0; i < 20; i++ {
		m.ReplaceOrInsert(i, &box{n: i})
	}
	c := m.Clone()
	orig, _ := m.Get(5)
	orig.n = 500
	copied, _ := c.Get(5)
	require.Equal(t, 5, copied.n)
	require.NotSame(t, orig, copied)
}

// TestCloneMatchesOriginal walks a clone and its original side by side, then
// recycles the original's nodes through the shared free list.
func TestCloneMatchesOriginal(t *testing.T) {
	for _, capacity := range []int{2, 3} {
		t.Run(fmt.Sprint(capacity), func(t *testing.T) {
			f := NewFreeListG[int, *box](DefaultFreeListSize)
			m := NewMapWithFreeListG(capacity, Less[int](), f)
			for _, k := range rand.Perm(500) {
				m.ReplaceOrInsert(k, &box{n: k})
			}
			require.GreaterOrEqual(t, m.Height(), 3)

			c := m.Clone()
			require.NoError(t, m.Verify())
			require.NoError(t, c.Verify())
			require.Equal(t, m.String(), c.String())
			require.Equal(t, m.Stats(), c.Stats())

			a, b := m.Begin(), c.Begin()
			for ; a.Valid(); a.Next() {
				require.True(t, b.Valid())
				require.Equal(t, a.Key(), b.Key())
				require.Equal(t, a.Value().n, b.Value().n)
				require.NotSame(t, a.Value(), b.Value())
				b.Next()
			}
			require.False(t, b.Valid())

			m.Clear(true)
			require.Positive(t, f.Len())
			for i := 0; i < 500; i++ {
				m.ReplaceOrInsert(i, &box{n: -i})
			}
			require.Zero(t, f.Len())
			require.NoError(t, m.Verify())
			require.NoError(t, c.Verify())
			require.Equal(t, 500, c.Len())
			for k, v := range c.All() {
				require.Equal(t, k, v.n)
			}
		})
	}
}

func TestCloneEmpty(t *testing.T) {
	m := NewOrderedMapG[int, int](4)
	c := m.Clone()
	require.True(t, c.Empty())
	require.NoError(t, c.Verify())
	c.ReplaceOrInsert(1, 1)
	require.True(t, m.Empty())
}

func TestClear(t *testing.T) {
	f := NewFreeListG[int, int](DefaultFreeListSize)
	m := NewMapWithFreeListG(4, Less[int](), f)
	for i := 0; i < 1000; i++ {
		m.ReplaceOrInsert(i, i)
	}
	require.Zero(t, f.Len())
	m.Clear(true)
	require.Equal(t, DefaultFreeListSize, f.Len())
	require.True(t, m.Empty())
	require.Equal(t, 1, m.Height())
	it := m.Begin()
	require.False(t, it.Valid())
	require.NoError(t, m.Verify())

	m.ReplaceOrInsert(1, 1)
	require.Equal(t, 1, m.Len())
	m.Clear(false)
	require.Zero(t, m.Len())

	// Clearing twice is harmless.
	m.Clear(true)
	require.True(t, m.Empty())
}

func TestEqualIgnoresShape(t *testing.T) {
	a := NewOrderedMapG[int, int](3)
	b := NewOrderedMapG[int, int](3)
	for i := 0; i < 500; i++ {
		a.ReplaceOrInsert(i, i*2)
	}
	for _, i := range rand.Perm(500) {
		b.ReplaceOrInsert(i, i*2)
	}
	b.ReplaceOrInsert(1000, 0)
	b.Delete(1000)

	eq := func(x, y int) bool { return x == y }
	require.NotEqual(t, a.String(), b.String())
	require.True(t, a.Equal(b, eq))
	require.True(t, b.Equal(a, eq))

	hk, hv := HashOrdered[int](), HashOrdered[int]()
	require.Equal(t, a.Hash(hk, hv), b.Hash(hk, hv))

	b.ReplaceOrInsert(7, 0)
	require.False(t, a.Equal(b, eq))
	require.True(t, a.Equal(b, nil))
	require.NotEqual(t, a.Hash(hk, hv), b.Hash(hk, hv))
	require.Equal(t, a.Hash(hk, nil), b.Hash(hk, nil))

	b.Delete(7)
	require.False(t, a.Equal(b, nil))
	require.False(t, b.Equal(a, nil))
}

func TestEqualEmpty(t *testing.T) {
	a := NewOrderedMapG[string, int](4)
	b := NewOrderedMapG[string, int](8)
	require.True(t, a.Equal(b, nil))
	hk := HashOrdered[string]()
	require.Equal(t, a.Hash(hk, nil), b.Hash(hk, nil))
	a.ReplaceOrInsert("", 0)
	require.False(t, a.Equal(b, nil))
}

func TestHashFloats(t *testing.T) {
	negZero := math.Copysign(0, -1)
	a := NewOrderedSetG[float64](4)
	b := NewOrderedSetG[float64](4)
	a.ReplaceOrInsert(0)
	b.ReplaceOrInsert(negZero)
	require.True(t, a.Equal(b))

	h := HashOrdered[float64]()
	require.Equal(t, a.Hash(h), b.Hash(h))
	require.Equal(t, h(math.NaN()), h(-math.NaN()))
	require.NotEqual(t, h(1), h(2))

	type celsius float32
	hc := HashOrdered[celsius]()
	require.Equal(t, hc(0), hc(celsius(negZero)))
	require.NotEqual(t, HashOrdered[uint8]()(1), HashOrdered[uint8]()(2))
}

func TestIterator(t *testing.T) {
	var zero Iterator[int, int]
	require.False(t, zero.Valid())
	zero.Next()
	require.False(t, zero.While(1))

	m := NewOrderedMapG[int, int](3)
	it := m.Begin()
	require.False(t, it.Valid())
	it = m.From(1)
	require.False(t, it.Valid())

	for i := 0; i < 100; i += 10 {
		m.ReplaceOrInsert(i, i)
	}
	it = m.From(35)
	require.True(t, it.Valid())
	require.Equal(t, 40, it.Key())
	require.False(t, it.While(35))

	var got []int
	for it := m.From(20); it.Until(60); it.Next() {
		got = append(got, it.Key())
	}
	require.Equal(t, []int{20, 30, 40, 50, 60}, got)
	it = m.From(91)
	require.False(t, it.Valid())

	n := 0
	for it := m.Begin(); it.Valid(); it.Next() {
		require.Equal(t, it.Key(), it.Value())
		n++
	}
	require.Equal(t, 10, n)
}

func TestIteratorStops(t *testing.T) {
	m := newIntMap(2, rand.Perm(50))
	var got []int
	for k := range m.Keys() {
		if k == 5 {
			break
		}
		got = append(got, k)
	}
	require.Equal(t, []int{0, 1, 2, 3, 4}, got)

	got = got[:0]
	for k, v := range m.All() {
		if k > 2 {
			break
		}
		got = append(got, v)
	}
	require.Equal(t, []int{0, 1, 2}, got)
}

func TestStats(t *testing.T) {
	m := NewOrderedMapG[int, int](4)
	require.Equal(t, Stats{Capacity: 4, Height: 1, Leaves: 1}, m.Stats())
	for i := 1; i <= 9; i++ {
		m.ReplaceOrInsert(i, i)
	}
	s := m.Stats()
	require.Equal(t, Stats{Capacity: 4, Height: 2, Entries: 9, Leaves: 3, InternalNodes: 1}, s)
	require.InDelta(t, 0.75, s.FillFactor(), 1e-9)
	require.Equal(t, "height 2, 9 entries in 3 leaves and 1 internal nodes, 75.0% full", s.String())

	big := newIntMap(DefaultCapacity, intRange(12345, false))
	require.Contains(t, big.Stats().String(), "12,345 entries")
	require.Zero(t, Stats{}.FillFactor())
}

func TestString(t *testing.T) {
	m := NewOrderedMapG[int, int](4)
	for i := 1; i <= 5; i++ {
		m.ReplaceOrInsert(i, i)
	}
	lines := strings.Split(strings.TrimSpace(m.String()), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[0], "NODE")
	require.Contains(t, lines[1], "LEAF")
	require.Contains(t, lines[2], "LEAF")
}

func TestFreeListShared(t *testing.T) {
	f := NewFreeListG[int, int](16)
	a := NewMapWithFreeListG(2, Less[int](), f)
	b := NewMapWithFreeListG(2, Less[int](), f)
	for i := 0; i < 100; i++ {
		a.ReplaceOrInsert(i, i)
	}
	a.Clear(true)
	require.Equal(t, 16, f.Len())
	b.InsertSeq(slices.All(intRange(10, false)))
	require.Less(t, f.Len(), 16)
	require.NoError(t, b.Verify())
	require.Equal(t, intRange(10, false), intAll(b))
}

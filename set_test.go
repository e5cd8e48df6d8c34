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
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetG(t *testing.T) {
	s := NewOrderedSetG[int](4)
	for _, k := range rand.Perm(100) {
		_, replaced := s.ReplaceOrInsert(k)
		require.False(t, replaced)
	}
	_, replaced := s.ReplaceOrInsert(42)
	require.True(t, replaced)
	require.Equal(t, 100, s.Len())
	require.NoError(t, s.Verify())

	require.True(t, s.Has(0))
	require.False(t, s.Has(100))
	k, ok := s.Get(99)
	require.True(t, ok)
	require.Equal(t, 99, k)

	min, _ := s.Min()
	max, _ := s.Max()
	require.Equal(t, 0, min)
	require.Equal(t, 99, max)

	var got []int
	s.AscendRange(10, 15, func(k int) bool {
		got = append(got, k)
		return true
	})
	require.Equal(t, []int{10, 11, 12, 13, 14}, got)

	got = got[:0]
	s.DescendLessOrEqual(3, func(k int) bool {
		got = append(got, k)
		return true
	})
	require.Equal(t, []int{3, 2, 1, 0}, got)

	for i := 0; i < 100; i += 3 {
		k, ok := s.Delete(i)
		require.True(t, ok)
		require.Equal(t, i, k)
		require.NoError(t, s.Verify())
	}
	_, ok = s.Delete(0)
	require.False(t, ok)
	require.Equal(t, 66, s.Len())

	for k := range s.All() {
		require.NotZero(t, k%3)
	}
}

func TestSetReplaceKeepsLatestKey(t *testing.T) {
	fold := func(a, b string) bool { return strings.ToLower(a) < strings.ToLower(b) }
	s := NewSetG[string](3, fold)
	s.InsertSeq(slices.Values([]string{"alpha", "Beta", "gamma"}))
	old, replaced := s.ReplaceOrInsert("BETA")
	require.True(t, replaced)
	require.Equal(t, "Beta", old)
	k, _ := s.Get("beta")
	require.Equal(t, "BETA", k)
	require.Equal(t, []string{"alpha", "BETA", "gamma"}, slices.Collect(s.All()))
}

func TestSetDeleteMinMax(t *testing.T) {
	s := NewOrderedSetG[string](2)
	words := []string{"pear", "apple", "fig", "kiwi", "banana", "cherry", "date"}
	require.Equal(t, len(words), s.InsertSeq(slices.Values(words)))
	require.Zero(t, s.InsertSeq(slices.Values(words)))

	k, ok := s.DeleteMin()
	require.True(t, ok)
	require.Equal(t, "apple", k)
	k, ok = s.DeleteMax()
	require.True(t, ok)
	require.Equal(t, "pear", k)
	require.NoError(t, s.Verify())

	var got []string
	s.Descend(func(k string) bool {
		got = append(got, k)
		return true
	})
	require.Equal(t, []string{"kiwi", "fig", "date", "cherry", "banana"}, got)
}

func TestSetCloneEqualHash(t *testing.T) {
	a := NewOrderedSetG[int](3)
	b := NewOrderedSetG[int](8)
	a.InsertSeq(slices.Values(rand.Perm(500)))
	for i := 0; i < 500; i++ {
		b.ReplaceOrInsert(i)
	}
	require.True(t, a.Equal(b))
	require.Equal(t, a.Hash(HashOrdered[int]()), b.Hash(HashOrdered[int]()))

	c := a.Clone()
	a.Delete(250)
	require.False(t, a.Equal(c))
	require.True(t, c.Equal(b))
	require.NotEqual(t, a.Hash(HashOrdered[int]()), c.Hash(HashOrdered[int]()))
	require.NoError(t, c.Verify())
}

func TestMultiSetG(t *testing.T) {
	s := NewOrderedMultiSetG[int](3)
	for i := 0; i < 100; i++ {
		s.Insert(i % 10)
	}
	require.Equal(t, 100, s.Len())
	require.Equal(t, 10, s.Count(7))
	require.NoError(t, s.Verify())

	for i := 0; i < 5; i++ {
		k, ok := s.Delete(7)
		require.True(t, ok)
		require.Equal(t, 7, k)
		require.NoError(t, s.Verify())
	}
	require.Equal(t, 5, s.Count(7))
	require.True(t, s.Has(7))

	var sevens int
	s.AscendGreaterOrEqual(7, func(k int) bool {
		if k != 7 {
			return false
		}
		sevens++
		return true
	})
	require.Equal(t, 5, sevens)

	other := NewOrderedMultiSetG[int](5)
	require.Equal(t, 95, other.InsertSeq(s.All()))
	require.True(t, other.Equal(s))
	require.True(t, other.Clone().Equal(s))
	other.Insert(7)
	require.False(t, other.Equal(s))
}

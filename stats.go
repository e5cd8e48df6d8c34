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

	"github.com/dustin/go-humanize"
)

// Stats describes the shape of a tree.
type Stats struct {
	Capacity      int
	Height        int
	Entries       int
	Leaves        int
	InternalNodes int
}

// FillFactor returns the share of leaf slots in use.
func (s Stats) FillFactor() float64 {
	if s.Leaves == 0 {
		return 0
	}
	return float64(s.Entries) / float64(s.Leaves*s.Capacity)
}

func (s Stats) String() string {
	return fmt.Sprintf("height %d, %s entries in %s leaves and %s internal nodes, %.1f%% full",
		s.Height,
		humanize.Comma(int64(s.Entries)),
		humanize.Comma(int64(s.Leaves)),
		humanize.Comma(int64(s.InternalNodes)),
		100*s.FillFactor())
}

// Stats walks the tree and reports its shape.
func (t *tree[K, V]) Stats() Stats {
	s := Stats{Capacity: t.capacity, Entries: t.length}
	for n := t.root; n != nil; n = n.children[0] {
		s.Height++
		for m := n; m != nil; m = m.next {
			if m.leaf {
				s.Leaves++
			} else {
				s.InternalNodes++
			}
		}
		if n.leaf {
			break
		}
	}
	return s
}

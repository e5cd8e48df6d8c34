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
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

// Log is the logger trees use unless their Config names another one.  Trees
// only log structural changes (splits, borrows, merges, height changes), at
// debug level.
var Log = logrus.New()

var (
	// ErrBadCapacity is returned for a node capacity below MinCapacity.
	ErrBadCapacity = errors.New("bptree: bad capacity")
	// ErrBadFreeListSize is returned for a negative free list size.
	ErrBadFreeListSize = errors.New("bptree: bad free list size")
	// ErrNilLess is returned when no ordering function is given.
	ErrNilLess = errors.New("bptree: nil less function")
)

// Config holds the options of a tree.
type Config struct {
	// Capacity is the maximum number of keys per node.  Nodes other than the
	// root never hold fewer than Capacity/2.
	Capacity int
	// FreeListSize is the number of released nodes kept for reuse.
	FreeListSize int
	// Verify makes every insertion and removal check the whole tree and panic
	// on a broken invariant.  It is meant for tests and debugging.
	Verify bool
	// Logger receives debug logs of structural changes.  Nil means Log.
	Logger *logrus.Logger
}

// DefaultConfig returns the configuration used by the New* constructors.
func DefaultConfig() Config {
	return Config{
		Capacity:     DefaultCapacity,
		FreeListSize: DefaultFreeListSize,
	}
}

// Validate checks that c describes a usable tree.
func (c Config) Validate() error {
	return c.validate(true)
}

func (c Config) validate(hasLess bool) error {
	if c.Capacity < MinCapacity {
		return errors.Wrapf(ErrBadCapacity, "capacity must be at least %d, got %d", MinCapacity, c.Capacity)
	}
	if c.FreeListSize < 0 {
		return errors.Wrapf(ErrBadFreeListSize, "got %d", c.FreeListSize)
	}
	if !hasLess {
		return errors.WithStack(ErrNilLess)
	}
	return nil
}

// Copyright 2021 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package hashtable

import (
	"context"

	"github.com/matrixorigin/colgroup/pkg/container/types"
)

// GroupMap is a table grouping row positions by tuple key. Variants decide
// how entries are inserted and how the bucket array grows.
type GroupMap interface {
	// Size returns the number of distinct entries, not positions.
	Size() int
	// Extract returns every entry of the map, flattening all chains.
	Extract() []*Entry
	// Join merges the entries of other into the receiver. Positions of
	// other are appended after the receiver's positions of the same key.
	Join(ctx context.Context, other GroupMap) error
}

// KeyMatch selects how a probe key is matched against stored keys.
type KeyMatch int

const (
	// KeyMatchIdentity matches only the very same *types.DblArray. Callers
	// must intern keys so that equal tuples share one instance.
	KeyMatchIdentity KeyMatch = iota
	// KeyMatchValue matches value equal keys.
	KeyMatchValue
)

func (m KeyMatch) String() string {
	switch m {
	case KeyMatchIdentity:
		return "identity"
	case KeyMatchValue:
		return "value"
	default:
		return "unknown"
	}
}

// ParseKeyMatch parses "identity" or "value".
func ParseKeyMatch(s string) (KeyMatch, bool) {
	switch s {
	case "identity", "":
		return KeyMatchIdentity, true
	case "value":
		return KeyMatchValue, true
	default:
		return KeyMatchIdentity, false
	}
}

type keyMatcher func(stored, probe *types.DblArray) bool

func identityMatch(stored, probe *types.DblArray) bool {
	return stored == probe
}

func valueMatch(stored, probe *types.DblArray) bool {
	return stored.Equal(probe)
}

func (m KeyMatch) matcher() keyMatcher {
	if m == KeyMatchValue {
		return valueMatch
	}
	return identityMatch
}

type options struct {
	capacity   int
	loadFactor float64
	keyMatch   KeyMatch
	counter    *MissCounter
}

// Option configures a map at construction.
type Option func(*options)

// WithCapacity sets the initial bucket count, rounded up to a power of two.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// WithLoadFactor sets the ratio of entries to buckets that triggers a
// resize. Values outside (0, 1] keep the default.
func WithLoadFactor(f float64) Option {
	return func(o *options) {
		o.loadFactor = f
	}
}

func WithKeyMatch(m KeyMatch) Option {
	return func(o *options) {
		o.keyMatch = m
	}
}

// WithMissCounter makes the map count chain misses into c instead of
// DefaultMissCounter.
func WithMissCounter(c *MissCounter) Option {
	return func(o *options) {
		o.counter = c
	}
}

func newOptions(opts []Option) options {
	o := options{
		capacity:   kInitialCapacity,
		loadFactor: kLoadFactor,
		keyMatch:   KeyMatchIdentity,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.capacity < 1 {
		o.capacity = kInitialCapacity
	}
	o.capacity = nextPowerOfTwo(o.capacity)
	if o.loadFactor <= 0 || o.loadFactor > 1 {
		o.loadFactor = kLoadFactor
	}
	if o.counter == nil {
		o.counter = DefaultMissCounter
	}
	return o
}

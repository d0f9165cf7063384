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
	"fmt"
	"strings"

	"github.com/matrixorigin/colgroup/pkg/container/types"
)

// table holds the bucket array shared by every GroupMap variant. It knows
// how to place keys and walk chains but leaves insertion and growth policy
// to the variant embedding it.
type table struct {
	data     []*Entry
	size     int
	keyMatch KeyMatch
	match    keyMatcher
	counter  *MissCounter
}

func (t *table) init(capacity int, keyMatch KeyMatch, counter *MissCounter) {
	checkCapacity(capacity)
	t.data = make([]*Entry, capacity)
	t.size = 0
	t.keyMatch = keyMatch
	t.match = keyMatch.matcher()
	t.counter = counter
}

// Size returns the number of entries.
func (t *table) Size() int {
	return t.size
}

// Capacity returns the number of buckets.
func (t *table) Capacity() int {
	return len(t.data)
}

func (t *table) KeyMatch() KeyMatch {
	return t.keyMatch
}

// Join is the default per-table merge, it leaves the table unchanged.
func (t *table) Join(_ context.Context, _ GroupMap) error {
	return nil
}

// getPositions returns the list of key, creating the entry when absent.
func (t *table) getPositions(key *types.DblArray, match keyMatcher) *types.PositionList {
	ix := IndexFor(Hash(key), len(t.data))
	head := t.data[ix]
	if head == nil {
		lst := types.NewPositionList()
		t.data[ix] = newEntry(key, lst)
		t.size++
		return lst
	}
	return head.getPositions(t, key, match)
}

func (t *table) find(key *types.DblArray, match keyMatcher) *Entry {
	ix := IndexFor(Hash(key), len(t.data))
	return t.data[ix].find(key, match)
}

func (t *table) extract() []*Entry {
	ret := make([]*Entry, 0, t.size)
	for _, e := range t.data {
		for ; e != nil; e = e.next {
			ret = append(ret, e)
		}
	}
	return ret
}

// rehash moves every entry into a new bucket array of the given capacity.
// Chain order is kept for entries that land in the same bucket.
func (t *table) rehash(capacity int) {
	checkCapacity(capacity)
	old := t.data
	t.data = make([]*Entry, capacity)
	tails := make([]*Entry, capacity)
	for _, e := range old {
		for e != nil {
			next := e.next
			e.next = nil
			ix := IndexFor(Hash(e.Key), capacity)
			if tails[ix] == nil {
				t.data[ix] = e
			} else {
				tails[ix].next = e
			}
			tails[ix] = e
			e = next
		}
	}
}

// debugString renders the entry count and one line per populated bucket.
func (t *table) debugString(name string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s@%p   %d", name, t, t.size))
	for i, e := range t.data {
		if e != nil {
			sb.WriteString(fmt.Sprintf("\nid:%d[%s]", i, e.String()))
		}
	}
	return sb.String()
}

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
	"strings"

	"github.com/google/btree"

	"github.com/matrixorigin/colgroup/pkg/container/types"
)

// Entry binds one key to the positions of the rows holding it. Entries
// colliding in a bucket form a singly linked chain.
type Entry struct {
	Key   *types.DblArray
	Value *types.PositionList
	next  *Entry
}

func newEntry(key *types.DblArray, value *types.PositionList) *Entry {
	return &Entry{Key: key, Value: value}
}

// Next returns the following entry of the chain, nil at the tail.
func (e *Entry) Next() *Entry {
	return e.next
}

// getPositions walks the chain starting at e and returns the list for key.
// When no entry matches, a new entry is linked at the tail and its empty
// list returned. Every link followed past the head counts one miss.
func (e *Entry) getPositions(t *table, key *types.DblArray, match keyMatcher) *types.PositionList {
	h := nativeHash(key)
	for {
		if nativeHash(e.Key) == h && match(e.Key, key) {
			return e.Value
		}
		if e.next == nil {
			lst := types.NewPositionList()
			e.next = newEntry(key, lst)
			t.size++
			return lst
		}
		t.counter.inc()
		e = e.next
	}
}

// find walks the chain without creating or counting anything.
func (e *Entry) find(key *types.DblArray, match keyMatcher) *Entry {
	h := nativeHash(key)
	for ; e != nil; e = e.next {
		if nativeHash(e.Key) == h && match(e.Key, key) {
			return e
		}
	}
	return nil
}

// Compare orders entries by their keys, see CompareKeys.
func (e *Entry) Compare(o *Entry) int {
	return CompareKeys(e.Key, o.Key)
}

// Less implements btree.Item.
func (e *Entry) Less(than btree.Item) bool {
	return e.Compare(than.(*Entry)) < 0
}

// String renders the entry and the rest of its chain.
func (e *Entry) String() string {
	var sb strings.Builder
	for c := e; c != nil; c = c.next {
		if c != e {
			sb.WriteByte(',')
		}
		sb.WriteString(c.Key.String())
		sb.WriteByte(':')
		sb.WriteString(c.Value.String())
	}
	return sb.String()
}

// CompareKeys compares two tuples element by element from the first one;
// the first differing pair decides. When one tuple runs out first the
// longer tuple is greater, whatever its remaining values are.
func CompareKeys(a, b *types.DblArray) int {
	ad, bd := a.Data(), b.Data()
	for i := 0; i < len(ad) && i < len(bd); i++ {
		if ad[i] > bd[i] {
			return 1
		} else if ad[i] < bd[i] {
			return -1
		}
	}
	switch {
	case len(ad) == len(bd):
		return 0
	case len(ad) > len(bd):
		return 1
	default:
		return -1
	}
}

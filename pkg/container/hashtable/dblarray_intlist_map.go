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
	"sort"

	"go.uber.org/zap"

	"github.com/matrixorigin/colgroup/pkg/common/moerr"
	"github.com/matrixorigin/colgroup/pkg/container/types"
	"github.com/matrixorigin/colgroup/pkg/logutil"
)

// DblArrayIntListHashMap maps tuple keys to the positions of the rows
// holding them. It grows by kResizeFactor once the number of entries
// reaches loadFactor times the bucket count.
type DblArrayIntListHashMap struct {
	table
	loadFactor float64
}

var _ GroupMap = (*DblArrayIntListHashMap)(nil)

func NewDblArrayIntListHashMap(opts ...Option) *DblArrayIntListHashMap {
	o := newOptions(opts)
	m := &DblArrayIntListHashMap{loadFactor: o.loadFactor}
	m.init(o.capacity, o.keyMatch, o.counter)
	return m
}

// Get returns the positions of key, or nil when key is absent.
func (m *DblArrayIntListHashMap) Get(key *types.DblArray) *types.PositionList {
	if e := m.find(key, m.match); e != nil {
		return e.Value
	}
	return nil
}

// AppendValue records that the row at pos holds key. Under identity
// matching key must be the interned instance of its tuple.
func (m *DblArrayIntListHashMap) AppendValue(key *types.DblArray, pos int64) {
	m.getPositions(key, m.match).Append(pos)
	m.resizeOnDemand()
}

// Extract returns all entries in bucket order, chain by chain.
func (m *DblArrayIntListHashMap) Extract() []*Entry {
	return m.extract()
}

// Join appends the positions of other to the receiver, key by key. Keys
// are matched by value since two maps never share key instances. Entries
// of other are visited in order of their first row so that keys new to
// the receiver are created in row order too. other is not modified.
//
// Keys new to the receiver keep the instances of other. An identity map
// that takes more inserts after a join must first hand its keys to its
// interner, see Interner.Adopt.
func (m *DblArrayIntListHashMap) Join(ctx context.Context, other GroupMap) error {
	that, ok := other.(*DblArrayIntListHashMap)
	if !ok {
		return moerr.NewInvalidArg(ctx, "join hash map type", other)
	}
	if that == m {
		return moerr.NewInvalidArg(ctx, "join hash map with itself", m.size)
	}
	if that.keyMatch != m.keyMatch {
		return moerr.NewInvalidArg(ctx, "join hash map key match", that.keyMatch.String())
	}

	entries := that.extract()
	sort.SliceStable(entries, func(i, j int) bool {
		return firstPosition(entries[i]) < firstPosition(entries[j])
	})
	for _, e := range entries {
		m.getPositions(e.Key, valueMatch).AppendList(e.Value)
		m.resizeOnDemand()
	}
	return nil
}

func firstPosition(e *Entry) int64 {
	if e.Value.Len() == 0 {
		return -1
	}
	return e.Value.Get(0)
}

func (m *DblArrayIntListHashMap) resizeOnDemand() {
	if float64(m.size) < m.loadFactor*float64(len(m.data)) {
		return
	}
	newCap := len(m.data) * kResizeFactor
	logutil.Debug("hashtable resize",
		zap.Int("size", m.size),
		zap.Int("from", len(m.data)),
		zap.Int("to", newCap))
	m.rehash(newCap)
}

func (m *DblArrayIntListHashMap) String() string {
	return m.debugString("DblArrayIntListHashMap")
}

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
	"github.com/matrixorigin/colgroup/pkg/container/types"
)

// Interner hands out one shared instance per distinct tuple, which is what
// identity matching expects from its callers. It is not safe for
// concurrent use.
type Interner struct {
	buckets map[int32][]*types.DblArray
	cnt     int
}

func NewInterner() *Interner {
	return &Interner{buckets: make(map[int32][]*types.DblArray)}
}

// Intern returns the canonical instance equal to vals. vals is copied the
// first time its tuple is seen.
func (in *Interner) Intern(vals []float64) *types.DblArray {
	return in.InternKey(types.WrapDblArray(vals), true)
}

// InternKey returns the canonical instance equal to key. When key is new
// it becomes canonical itself, or a copy of it when clone is set.
func (in *Interner) InternKey(key *types.DblArray, clone bool) *types.DblArray {
	h := key.Hash()
	for _, k := range in.buckets[h] {
		if k.Equal(key) {
			return k
		}
	}
	if clone {
		key = types.NewDblArray(key.Data())
	}
	in.buckets[h] = append(in.buckets[h], key)
	in.cnt++
	return key
}

// Len returns the number of distinct tuples seen.
func (in *Interner) Len() int {
	return in.cnt
}

// Adopt makes the keys of m canonical for the interner. Keys the interner
// does not know yet become canonical themselves, keys it knows are
// replaced in m by their canonical instance.
func (in *Interner) Adopt(m GroupMap) {
	for _, e := range m.Extract() {
		e.Key = in.InternKey(e.Key, false)
	}
}

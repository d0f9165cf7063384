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

package types

import (
	"math"
	"strconv"
	"strings"
)

// canonicalNaN is the bit pattern every NaN hashes and compares as.
const canonicalNaN = 0x7ff8000000000000

// DblArray is an immutable tuple of float64 values, the key of one row
// pattern across a group of columns.
//
// The native hash follows the 31-multiplier polynomial over the folded
// bit patterns of the values, so tables built elsewhere with the same
// values land in the same buckets.
type DblArray struct {
	data   []float64
	hash   int32
	hashed bool
}

// NewDblArray copies vals into a new key.
func NewDblArray(vals []float64) *DblArray {
	data := make([]float64, len(vals))
	copy(data, vals)
	return &DblArray{data: data}
}

// WrapDblArray builds a key over vals without copying. The caller must not
// modify vals afterwards.
func WrapDblArray(vals []float64) *DblArray {
	return &DblArray{data: vals}
}

// Data returns the values of the key. The slice must not be modified.
func (a *DblArray) Data() []float64 {
	return a.data
}

func (a *DblArray) Len() int {
	return len(a.data)
}

func (a *DblArray) Get(i int) float64 {
	return a.data[i]
}

// Hash returns the native 32 bit hash of the key. It is computed once.
func (a *DblArray) Hash() int32 {
	if !a.hashed {
		a.hash = hashFloat64s(a.data)
		a.hashed = true
	}
	return a.hash
}

// Equal reports value equality. NaNs are equal to each other and +0 and
// -0 differ, matching the hash.
func (a *DblArray) Equal(b *DblArray) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || len(a.data) != len(b.data) {
		return false
	}
	if a.hashed && b.hashed && a.hash != b.hash {
		return false
	}
	for i := range a.data {
		if CanonicalBits(a.data[i]) != CanonicalBits(b.data[i]) {
			return false
		}
	}
	return true
}

func (a *DblArray) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range a.data {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
	}
	sb.WriteByte(']')
	return sb.String()
}

// CanonicalBits returns the bit pattern of v with every NaN folded into one.
func CanonicalBits(v float64) uint64 {
	if v != v {
		return canonicalNaN
	}
	return math.Float64bits(v)
}

func hashFloat64s(vals []float64) int32 {
	var h int32 = 1
	for _, v := range vals {
		bits := CanonicalBits(v)
		h = 31*h + int32(bits^(bits>>32))
	}
	return h
}

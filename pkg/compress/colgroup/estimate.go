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

package colgroup

import (
	hll "github.com/axiomhq/hyperloglog"

	"github.com/matrixorigin/colgroup/pkg/encoding"
)

// estimateDistinct returns an approximate number of distinct tuples of
// cols over at most sampleSize rows taken at a fixed stride.
func estimateDistinct(rows [][]float64, cols []int, sampleSize int) uint64 {
	if len(rows) == 0 || sampleSize <= 0 {
		return 0
	}
	step := len(rows) / sampleSize
	if step < 1 {
		step = 1
	}
	sk := hll.New()
	tuple := make([]float64, len(cols))
	sampled := uint64(0)
	for i := 0; i < len(rows); i += step {
		project(rows[i], cols, tuple)
		sk.Insert(encoding.EncodeFloat64Slice(tuple))
		sampled++
	}
	est := sk.Estimate()
	// a mostly unique sample keeps finding new tuples in the rows skipped
	if step > 1 && est*2 >= sampled {
		est *= uint64(step)
	}
	if est > uint64(len(rows)) {
		est = uint64(len(rows))
	}
	return est
}

// initialCapacity sizes a table holding about distinct keys so that it
// does not resize while being filled.
func initialCapacity(distinct uint64, loadFactor float64) int {
	if distinct == 0 {
		return 0
	}
	return int(float64(distinct)/loadFactor) + 1
}

func project(row []float64, cols []int, dst []float64) {
	for i, c := range cols {
		dst[i] = row[c]
	}
}

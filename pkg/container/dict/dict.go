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

package dict

import (
	"context"
	"math"

	"github.com/RoaringBitmap/roaring"
	"github.com/google/btree"

	"github.com/matrixorigin/colgroup/pkg/common/moerr"
	"github.com/matrixorigin/colgroup/pkg/container/hashtable"
	"github.com/matrixorigin/colgroup/pkg/container/types"
)

const btreeDegree = 32

// item orders entries by CompareValues in the btree.
type item struct {
	e *hashtable.Entry
}

func (i item) Less(than btree.Item) bool {
	return CompareValues(i.e.Key, than.(item).e.Key) < 0
}

// CompareValues is the total order of dictionary values. It follows
// hashtable.CompareKeys, except that a NaN element is greater than every
// number, and keys that are still tied but differ in their bits, like
// +0 and -0, are ordered by their canonical bit patterns.
func CompareValues(a, b *types.DblArray) int {
	ad, bd := a.Data(), b.Data()
	for i := 0; i < len(ad) && i < len(bd); i++ {
		if c := compareElem(ad[i], bd[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(ad) > len(bd):
		return 1
	case len(ad) < len(bd):
		return -1
	}
	for i := range ad {
		x, y := types.CanonicalBits(ad[i]), types.CanonicalBits(bd[i])
		if x > y {
			return 1
		} else if x < y {
			return -1
		}
	}
	return 0
}

func compareElem(x, y float64) int {
	xn, yn := math.IsNaN(x), math.IsNaN(y)
	switch {
	case xn && yn:
		return 0
	case xn:
		return 1
	case yn:
		return -1
	case x > y:
		return 1
	case x < y:
		return -1
	default:
		return 0
	}
}

// Dict is the ordered dictionary of one column group. Codes are dense and
// follow key order, so two dictionaries over the same rows are identical
// whatever order the entries were extracted in.
type Dict struct {
	values []*types.DblArray
	rows   []*roaring.Bitmap
	codes  []uint32
}

// New builds a dictionary from extracted entries. The positions of all
// entries together must cover the rows 0..n-1 exactly once.
func New(ctx context.Context, entries []*hashtable.Entry) (*Dict, error) {
	tr := btree.New(btreeDegree)
	total := 0
	for _, e := range entries {
		if old := tr.ReplaceOrInsert(item{e: e}); old != nil {
			return nil, moerr.NewInvalidInput(ctx, "duplicate dictionary key %s", e.Key.String())
		}
		total += e.Value.Len()
	}

	d := &Dict{
		values: make([]*types.DblArray, 0, len(entries)),
		rows:   make([]*roaring.Bitmap, 0, len(entries)),
		codes:  make([]uint32, total),
	}
	seen := roaring.NewBitmap()
	var err error
	tr.Ascend(func(i btree.Item) bool {
		e := i.(item).e
		code := uint32(len(d.values))
		bm := roaring.NewBitmap()
		for _, pos := range e.Value.Slice() {
			if pos < 0 || pos >= int64(total) || seen.Contains(uint32(pos)) {
				err = moerr.NewInvalidInput(ctx, "row %d out of place in %d rows", pos, total)
				return false
			}
			seen.Add(uint32(pos))
			bm.Add(uint32(pos))
			d.codes[pos] = code
		}
		d.values = append(d.values, e.Key)
		d.rows = append(d.rows, bm)
		return true
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// FromParts rebuilds a dictionary from its values and row codes.
func FromParts(ctx context.Context, values []*types.DblArray, codes []uint32) (*Dict, error) {
	d := &Dict{
		values: values,
		rows:   make([]*roaring.Bitmap, len(values)),
		codes:  codes,
	}
	for i := range d.rows {
		d.rows[i] = roaring.NewBitmap()
		if i > 0 && CompareValues(values[i-1], values[i]) >= 0 {
			return nil, moerr.NewInvalidInput(ctx, "dictionary values not ascending at %d", i)
		}
	}
	for row, c := range codes {
		if int(c) >= len(values) {
			return nil, moerr.NewInvalidInput(ctx, "code %d of row %d out of %d values", c, row, len(values))
		}
		d.rows[c].Add(uint32(row))
	}
	return d, nil
}

// Len returns the number of distinct values.
func (d *Dict) Len() int {
	return len(d.values)
}

// Rows returns the number of rows coded.
func (d *Dict) Rows() int {
	return len(d.codes)
}

func (d *Dict) Value(code uint32) *types.DblArray {
	return d.values[code]
}

func (d *Dict) Values() []*types.DblArray {
	return d.values
}

func (d *Dict) Code(row int) uint32 {
	return d.codes[row]
}

// Codes returns the code of every row. The slice must not be modified.
func (d *Dict) Codes() []uint32 {
	return d.codes
}

// RowSet returns the rows holding the value of code.
func (d *Dict) RowSet(code uint32) *roaring.Bitmap {
	return d.rows[code]
}

func (d *Dict) Cardinality(code uint32) uint64 {
	return d.rows[code].GetCardinality()
}

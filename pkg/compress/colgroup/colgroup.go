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
	"bytes"
	"context"

	"github.com/matrixorigin/colgroup/pkg/common/moerr"
	"github.com/matrixorigin/colgroup/pkg/container/dict"
	"github.com/matrixorigin/colgroup/pkg/container/types"
	"github.com/matrixorigin/colgroup/pkg/encoding"
)

const formatVersion = 1

// ColGroup is a dense dictionary coded group of columns: one dictionary of
// distinct row tuples and the code of every row.
type ColGroup struct {
	cols []int
	dict *dict.Dict
}

func newColGroup(cols []int, d *dict.Dict) *ColGroup {
	return &ColGroup{cols: cols, dict: d}
}

// Columns returns the indexes of the grouped columns.
func (g *ColGroup) Columns() []int {
	return g.cols
}

func (g *ColGroup) Dict() *dict.Dict {
	return g.dict
}

func (g *ColGroup) NumRows() int {
	return g.dict.Rows()
}

func (g *ColGroup) NumValues() int {
	return g.dict.Len()
}

// Decompress returns the tuple of row. The slice must not be modified.
func (g *ColGroup) Decompress(row int) []float64 {
	return g.dict.Value(g.dict.Code(row)).Data()
}

// DecompressInto writes the grouped columns of every row back into dst,
// a row major matrix wide enough for all the group's columns.
func (g *ColGroup) DecompressInto(dst [][]float64) {
	for row := range dst {
		vals := g.Decompress(row)
		for i, c := range g.cols {
			dst[row][c] = vals[i]
		}
	}
}

// codeWidth is the bytes a row code needs given the dictionary size.
func (g *ColGroup) codeWidth() int {
	switch n := g.dict.Len(); {
	case n <= 1<<8:
		return 1
	case n <= 1<<16:
		return 2
	default:
		return 4
	}
}

// InMemorySize estimates the dictionary coded size in bytes.
func (g *ColGroup) InMemorySize() int {
	return g.dict.Len()*len(g.cols)*8 + g.dict.Rows()*g.codeWidth()
}

// UncompressedSize is the size of the grouped columns stored plainly.
func (g *ColGroup) UncompressedSize() int {
	return g.dict.Rows() * len(g.cols) * 8
}

// Ratio is UncompressedSize over InMemorySize.
func (g *ColGroup) Ratio() float64 {
	if g.InMemorySize() == 0 {
		return 0
	}
	return float64(g.UncompressedSize()) / float64(g.InMemorySize())
}

// Marshal encodes the group, compressing its payload with c.
//
// Layout: version, compression, then the payload of column count,
// columns, value count, row count, tuple values and row codes.
func (g *ColGroup) Marshal(ctx context.Context, c Compression) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(encoding.EncodeUint32(uint32(len(g.cols))))
	for _, c := range g.cols {
		buf.Write(encoding.EncodeUint32(uint32(c)))
	}
	buf.Write(encoding.EncodeUint32(uint32(g.dict.Len())))
	buf.Write(encoding.EncodeUint32(uint32(g.dict.Rows())))
	for _, v := range g.dict.Values() {
		buf.Write(encoding.EncodeFloat64Slice(v.Data()))
	}
	buf.Write(encoding.EncodeUint32Slice(g.dict.Codes()))

	payload, err := compress(ctx, c, buf.Bytes())
	if err != nil {
		return nil, err
	}
	data := make([]byte, 0, len(payload)+2)
	data = append(data, formatVersion, byte(c))
	return append(data, payload...), nil
}

// MarshalBinary encodes the group without compression.
func (g *ColGroup) MarshalBinary() ([]byte, error) {
	return g.Marshal(context.Background(), CompressNone)
}

// UnmarshalColGroup decodes a group written by Marshal. The result does
// not alias data.
func UnmarshalColGroup(ctx context.Context, data []byte) (*ColGroup, error) {
	if len(data) < 2 {
		return nil, moerr.NewInvalidInput(ctx, "column group of %d bytes", len(data))
	}
	if data[0] != formatVersion {
		return nil, moerr.NewNotSupported(ctx, "column group version %d", data[0])
	}
	payload, err := decompress(ctx, Compression(data[1]), data[2:])
	if err != nil {
		return nil, err
	}

	r := reader{ctx: ctx, data: payload}
	ncols := r.uint32()
	if r.err == nil && uint64(ncols)*4 > uint64(len(r.data)) {
		return nil, moerr.NewInvalidInput(ctx, "column group of %d columns", ncols)
	}
	cols := make([]int, ncols)
	for i := range cols {
		cols[i] = int(r.uint32())
	}
	nvals, nrows := r.uint32(), r.uint32()
	if r.err != nil {
		return nil, r.err
	}
	if need := uint64(nvals)*uint64(ncols)*8 + uint64(nrows)*4; need != uint64(len(r.data)) {
		return nil, moerr.NewInvalidInput(ctx, "column group payload of %d bytes, want %d", len(r.data), need)
	}
	values := make([]*types.DblArray, nvals)
	for i := range values {
		tuple := make([]float64, ncols)
		r.copyInto(encoding.EncodeFloat64Slice(tuple))
		values[i] = types.WrapDblArray(tuple)
	}
	codes := make([]uint32, nrows)
	r.copyInto(encoding.EncodeUint32Slice(codes))
	if r.err != nil {
		return nil, r.err
	}

	d, err := dict.FromParts(ctx, values, codes)
	if err != nil {
		return nil, err
	}
	return newColGroup(cols, d), nil
}

type reader struct {
	ctx  context.Context
	data []byte
	err  error
}

func (r *reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if len(r.data) < n {
		r.err = moerr.NewUnexpectedEOF(r.ctx, "column group")
		return nil
	}
	b := r.data[:n]
	r.data = r.data[n:]
	return b
}

func (r *reader) uint32() uint32 {
	if b := r.take(4); b != nil {
		return encoding.DecodeUint32(b)
	}
	return 0
}

func (r *reader) copyInto(dst []byte) {
	if b := r.take(len(dst)); b != nil {
		copy(dst, b)
	}
}

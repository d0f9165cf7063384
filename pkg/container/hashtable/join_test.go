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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/colgroup/pkg/common/moerr"
	"github.com/matrixorigin/colgroup/pkg/container/types"
)

func buildMap(rows [][]float64, from int64) (*DblArrayIntListHashMap, *Interner) {
	in := NewInterner()
	m := NewDblArrayIntListHashMap(WithMissCounter(NewMissCounter()))
	for i, row := range rows {
		m.AppendValue(in.Intern(row), from+int64(i))
	}
	return m, in
}

func positionsOf(m *DblArrayIntListHashMap) map[string][]int64 {
	ret := make(map[string][]int64)
	for _, e := range m.Extract() {
		ret[e.Key.String()] = append(ret[e.Key.String()], e.Value.Slice()...)
	}
	return ret
}

func TestJoinMapsLengthMismatch(t *testing.T) {
	ctx := context.Background()
	left := make([]GroupMap, 3)
	right := make([]GroupMap, 2)
	var before []map[string][]int64
	for i := range left {
		m, _ := buildMap([][]float64{{1}, {2}, {1}}, 0)
		left[i] = m
		before = append(before, positionsOf(m))
	}
	for i := range right {
		m, _ := buildMap([][]float64{{1}, {3}}, 3)
		right[i] = m
	}

	ret, err := JoinMaps(ctx, left, right)
	require.Nil(t, ret)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidArg))
	for i := range left {
		require.Equal(t, 2, left[i].Size())
		require.Equal(t, before[i], positionsOf(left[i].(*DblArrayIntListHashMap)))
	}
	for i := range right {
		require.Equal(t, 2, right[i].Size())
	}
}

func TestJoinMaps(t *testing.T) {
	ctx := context.Background()
	l0, _ := buildMap([][]float64{{1, 1}, {2, 2}, {1, 1}}, 0)
	r0, _ := buildMap([][]float64{{3, 3}, {1, 1}, {3, 3}}, 3)
	l1, _ := buildMap([][]float64{{5}}, 0)
	r1, _ := buildMap([][]float64{{5}, {5}}, 1)

	left := []GroupMap{l0, l1}
	ret, err := JoinMaps(ctx, left, []GroupMap{r0, r1})
	require.NoError(t, err)
	require.Same(t, l0, ret[0])
	require.Same(t, l1, ret[1])

	require.Equal(t, 3, l0.Size())
	require.Equal(t, map[string][]int64{
		"[1, 1]": {0, 2, 4},
		"[2, 2]": {1},
		"[3, 3]": {3, 5},
	}, positionsOf(l0))
	require.Equal(t, 1, l1.Size())
	require.Equal(t, map[string][]int64{"[5]": {0, 1, 2}}, positionsOf(l1))

	// right side is left untouched
	require.Equal(t, map[string][]int64{"[1, 1]": {4}, "[3, 3]": {3, 5}}, positionsOf(r0))
}

func TestJoinReachesEveryRightPosition(t *testing.T) {
	ctx := context.Background()
	var lrows, rrows [][]float64
	for i := 0; i < 200; i++ {
		lrows = append(lrows, []float64{float64(i % 13), float64(i % 3)})
		rrows = append(rrows, []float64{float64(i % 17), float64(i % 3)})
	}
	l, _ := buildMap(lrows, 0)
	r, _ := buildMap(rrows, 200)

	_, err := JoinMaps(ctx, []GroupMap{l}, []GroupMap{r})
	require.NoError(t, err)

	distinct := make(map[string]struct{})
	for _, row := range append(lrows, rrows...) {
		distinct[types.NewDblArray(row).String()] = struct{}{}
	}
	require.Equal(t, len(distinct), l.Size())

	seen := make([]bool, 400)
	for _, e := range l.Extract() {
		prev := int64(-1)
		for _, p := range e.Value.Slice() {
			require.False(t, seen[p])
			require.Greater(t, p, prev)
			seen[p] = true
			prev = p
		}
	}
	for p, ok := range seen {
		require.True(t, ok, "position %d lost", p)
	}
}

func TestJoinInvalid(t *testing.T) {
	ctx := context.Background()
	m, _ := buildMap([][]float64{{1}}, 0)

	err := m.Join(ctx, m)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidArg))

	var base table
	base.init(8, KeyMatchIdentity, NewMissCounter())
	require.NoError(t, base.Join(ctx, m))
	require.Equal(t, 0, base.Size())
}

func TestInterner(t *testing.T) {
	in := NewInterner()
	vals := []float64{1, 2}
	a := in.Intern(vals)
	vals[0] = 9
	require.Equal(t, "[1, 2]", a.String())
	require.Same(t, a, in.Intern([]float64{1, 2}))
	require.NotSame(t, a, in.Intern([]float64{9, 2}))
	require.Equal(t, 2, in.Len())

	k := types.NewDblArray([]float64{3})
	require.Same(t, k, in.InternKey(k, false))
	require.Same(t, k, in.InternKey(types.NewDblArray([]float64{3}), true))
	require.Equal(t, 3, in.Len())
}

func TestJoinKeyMatchMismatch(t *testing.T) {
	ctx := context.Background()
	l, _ := buildMap([][]float64{{1}, {2}}, 0)
	r := NewDblArrayIntListHashMap(WithKeyMatch(KeyMatchValue), WithMissCounter(NewMissCounter()))
	r.AppendValue(key(1), 2)
	r.AppendValue(key(3), 3)

	err := l.Join(ctx, r)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidArg))
	require.Equal(t, 2, l.Size())
	require.Equal(t, map[string][]int64{"[1]": {0}, "[2]": {1}}, positionsOf(l))

	_, err = JoinMaps(ctx, []GroupMap{r}, []GroupMap{l})
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidArg))
	require.Equal(t, 2, r.Size())
}

func TestInternerAdoptAfterJoin(t *testing.T) {
	ctx := context.Background()
	l, in := buildMap([][]float64{{1}, {2}}, 0)
	r, _ := buildMap([][]float64{{3}, {1}}, 2)
	require.NoError(t, l.Join(ctx, r))
	require.Equal(t, 3, l.Size())

	in.Adopt(l)
	require.Equal(t, 3, in.Len())
	l.AppendValue(in.Intern([]float64{3}), 4)
	l.AppendValue(in.Intern([]float64{1}), 5)
	require.Equal(t, 3, l.Size())
	require.Equal(t, map[string][]int64{
		"[1]": {0, 3, 5},
		"[2]": {1},
		"[3]": {2, 4},
	}, positionsOf(l))
}

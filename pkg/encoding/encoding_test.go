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

package encoding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeUint32(t *testing.T) {
	for _, num := range []uint32{0, 1, 0xdeadbeef, math.MaxUint32} {
		require.Equal(t, num, DecodeUint32(EncodeUint32(num)))
	}
}

func TestEncodeUint64(t *testing.T) {
	for _, num := range []uint64{0, 1 << 40, math.MaxUint64} {
		require.Equal(t, num, DecodeUint64(EncodeUint64(num)))
	}
}

func TestEncodeFloat64(t *testing.T) {
	nums := []float64{math.MaxFloat64, math.SmallestNonzeroFloat64, -math.MaxFloat64, -math.SmallestNonzeroFloat64, 0}
	for _, num := range nums {
		require.Equal(t, num, DecodeFloat64(EncodeFloat64(num)))
	}
	nan := DecodeFloat64(EncodeFloat64(math.NaN()))
	require.True(t, math.IsNaN(nan))
}

func TestSliceEncoding(t *testing.T) {
	us := []uint32{3, 1, 4, 1, 5}
	buf := EncodeUint32Slice(us)
	require.Len(t, buf, 20)
	require.Equal(t, us, DecodeUint32Slice(append([]byte{}, buf...)))

	fs := []float64{1.5, -2, math.Inf(1)}
	buf = EncodeFloat64Slice(fs)
	require.Len(t, buf, 24)
	require.Equal(t, fs, DecodeFloat64Slice(append([]byte{}, buf...)))

	require.Nil(t, EncodeUint32Slice(nil))
	require.Nil(t, DecodeUint32Slice(nil))
	require.Nil(t, EncodeFloat64Slice(nil))
	require.Nil(t, DecodeFloat64Slice([]byte{1, 2}))
}

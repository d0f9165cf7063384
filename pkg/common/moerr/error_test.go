// Copyright 2021 - 2022 Matrix Origin
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

package moerr

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMoErrCode(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		err      error
		code     uint16
		expected bool
	}{
		{
			name:     "nil error is ok",
			err:      nil,
			code:     Ok,
			expected: true,
		},
		{
			name:     "nil error is not invalid arg",
			err:      nil,
			code:     ErrInvalidArg,
			expected: false,
		},
		{
			name:     "ErrInvalidArg",
			err:      NewInvalidArg(ctx, "join length", 3),
			code:     ErrInvalidArg,
			expected: true,
		},
		{
			name:     "ErrBadConfig",
			err:      NewBadConfig(ctx, "load factor %v", 2.0),
			code:     ErrBadConfig,
			expected: true,
		},
		{
			name:     "standard error",
			err:      errors.New("some error"),
			code:     ErrInternal,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsMoErrCode(tt.err, tt.code))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	ctx := context.Background()
	err := NewInvalidArg(ctx, "join length", "3 != 2")
	require.Equal(t, "invalid argument join length, bad value 3 != 2", err.Error())
	require.Equal(t, err.Error(), err.Display())

	err.WithDetail("left has %d maps", 3)
	require.Equal(t, "invalid argument join length, bad value 3 != 2: left has 3 maps", err.Display())
	require.False(t, err.Succeeded())
	require.True(t, GetOkExpectedEOF().Succeeded())
}

func TestConvertGoError(t *testing.T) {
	ctx := context.Background()
	require.Nil(t, ConvertGoError(ctx, nil))

	me := NewInvalidInput(ctx, "rows")
	require.Equal(t, error(me), ConvertGoError(ctx, me))

	require.True(t, IsMoErrCode(ConvertGoError(ctx, io.EOF), ErrUnexpectedEOF))
	require.True(t, IsMoErrCode(ConvertGoError(ctx, errors.New("x")), ErrInternal))
}

func TestConvertPanicError(t *testing.T) {
	ctx := context.Background()
	me := NewInternalError(ctx, "boom")
	require.Same(t, me, ConvertPanicError(ctx, me))
	require.True(t, IsMoErrCode(ConvertPanicError(ctx, "oops"), ErrInternal))
}

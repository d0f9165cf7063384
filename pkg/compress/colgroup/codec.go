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
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"

	"github.com/matrixorigin/colgroup/pkg/common/moerr"
)

// Compression of an encoded column group payload.
type Compression uint8

const (
	CompressNone Compression = iota
	CompressLZ4
	CompressZstd
)

func (c Compression) String() string {
	switch c {
	case CompressNone:
		return "none"
	case CompressLZ4:
		return "lz4"
	case CompressZstd:
		return "zstd"
	default:
		return "unknown"
	}
}

func ParseCompression(ctx context.Context, s string) (Compression, error) {
	switch strings.ToLower(s) {
	case "none", "":
		return CompressNone, nil
	case "lz4":
		return CompressLZ4, nil
	case "zstd":
		return CompressZstd, nil
	default:
		return CompressNone, moerr.NewInvalidArg(ctx, "compression", s)
	}
}

func compress(ctx context.Context, c Compression, src []byte) ([]byte, error) {
	switch c {
	case CompressNone:
		return src, nil
	case CompressLZ4:
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		if _, err := w.Write(src); err != nil {
			return nil, moerr.ConvertGoError(ctx, err)
		}
		if err := w.Close(); err != nil {
			return nil, moerr.ConvertGoError(ctx, err)
		}
		return buf.Bytes(), nil
	case CompressZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, moerr.ConvertGoError(ctx, err)
		}
		defer enc.Close()
		return enc.EncodeAll(src, nil), nil
	default:
		return nil, moerr.NewNotSupported(ctx, "compression %d", c)
	}
}

func decompress(ctx context.Context, c Compression, src []byte) ([]byte, error) {
	switch c {
	case CompressNone:
		return src, nil
	case CompressLZ4:
		data, err := io.ReadAll(lz4.NewReader(bytes.NewReader(src)))
		if err != nil {
			return nil, moerr.NewInvalidInput(ctx, "lz4 payload: %v", err)
		}
		return data, nil
	case CompressZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, moerr.ConvertGoError(ctx, err)
		}
		defer dec.Close()
		data, err := dec.DecodeAll(src, nil)
		if err != nil {
			return nil, moerr.NewInvalidInput(ctx, "zstd payload: %v", err)
		}
		return data, nil
	default:
		return nil, moerr.NewNotSupported(ctx, "compression %d", c)
	}
}

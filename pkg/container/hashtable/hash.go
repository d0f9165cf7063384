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

	"github.com/matrixorigin/colgroup/pkg/common/moerr"
	"github.com/matrixorigin/colgroup/pkg/container/types"
)

const (
	kInitialCapacity = 8
	kResizeFactor    = 2
	kLoadFactor      = 0.50
)

// nativeHash is the hash the table asks from a key. Tests swap it to force
// collisions.
var nativeHash = func(key *types.DblArray) int32 {
	return key.Hash()
}

// Hash mixes the native hash of key so that hash codes which differ only
// by constant multiples at each bit position have a bounded number of
// collisions (approximately 8 at the default load factor). Bucket indexes
// are taken by masking, which alone only sees the low bits.
func Hash(key *types.DblArray) int32 {
	return mixHash(nativeHash(key))
}

func mixHash(h int32) int32 {
	u := uint32(h)
	u ^= (u >> 20) ^ (u >> 12)
	return int32(u ^ (u >> 7) ^ (u >> 4))
}

// IndexFor returns the bucket of hash h in a bucket array of the given
// length. length must be a power of two.
func IndexFor(h int32, length int) int {
	return int(h) & (length - 1)
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// nextPowerOfTwo returns the smallest power of two >= n, and 1 for n <= 1.
func nextPowerOfTwo(n int) int {
	c := 1
	for c < n {
		c <<= 1
	}
	return c
}

// checkCapacity panics when a bucket array is about to be allocated with a
// length IndexFor cannot mask.
func checkCapacity(capacity int) {
	if !isPowerOfTwo(capacity) {
		panic(moerr.NewInternalError(context.Background(), "hashtable capacity %d is not a power of two", capacity))
	}
}

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
	"fmt"

	"github.com/matrixorigin/colgroup/pkg/common/moerr"
)

// JoinMaps joins left and right element wise: right[i] is merged into
// left[i] and left is returned. The two slices must have the same length,
// otherwise nothing is merged and an invalid argument error is returned.
func JoinMaps(ctx context.Context, left, right []GroupMap) ([]GroupMap, error) {
	if len(left) != len(right) {
		return nil, moerr.NewInvalidArg(ctx, "element wise join of hash maps of different length",
			fmt.Sprintf("%d != %d", len(left), len(right)))
	}
	for i := range left {
		if err := left[i].Join(ctx, right[i]); err != nil {
			return nil, err
		}
	}
	return left, nil
}

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
	"strconv"
	"strings"
)

const positionListInitCap = 4

// PositionList is an append only list of row positions. The order of the
// positions is the order they were appended in, which callers keep equal
// to row order.
type PositionList struct {
	data []int64
}

func NewPositionList() *PositionList {
	return &PositionList{}
}

// Append adds one row position at the end of the list.
func (l *PositionList) Append(pos int64) {
	if l.data == nil {
		l.data = make([]int64, 0, positionListInitCap)
	}
	l.data = append(l.data, pos)
}

// AppendList adds every position of o, in order, at the end of the list.
func (l *PositionList) AppendList(o *PositionList) {
	if o == nil || len(o.data) == 0 {
		return
	}
	l.data = append(l.data, o.data...)
}

func (l *PositionList) Len() int {
	return len(l.data)
}

func (l *PositionList) Get(i int) int64 {
	return l.data[i]
}

// Slice returns the positions. The slice must not be modified.
func (l *PositionList) Slice() []int64 {
	return l.data
}

func (l *PositionList) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range l.data {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatInt(v, 10))
	}
	sb.WriteByte(']')
	return sb.String()
}

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
	"sync/atomic"
)

// DefaultMissCounter collects chain traversal misses of every table that
// was not given its own counter.
var DefaultMissCounter = NewMissCounter()

// MissCounter counts the chain links followed past the bucket head while
// looking up keys for insertion. It is only a collision diagnostic.
type MissCounter struct {
	n atomic.Int64
}

func NewMissCounter() *MissCounter {
	return &MissCounter{}
}

func (c *MissCounter) inc() {
	c.n.Add(1)
}

// Load returns the current count.
func (c *MissCounter) Load() int64 {
	return c.n.Load()
}

// Reset sets the count back to zero and returns the previous value.
func (c *MissCounter) Reset() int64 {
	return c.n.Swap(0)
}

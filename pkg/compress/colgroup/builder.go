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
	"context"
	"math"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/matrixorigin/colgroup/pkg/common/moerr"
	"github.com/matrixorigin/colgroup/pkg/config"
	"github.com/matrixorigin/colgroup/pkg/container/dict"
	"github.com/matrixorigin/colgroup/pkg/container/hashtable"
	"github.com/matrixorigin/colgroup/pkg/container/types"
	"github.com/matrixorigin/colgroup/pkg/logutil"
)

// rows grouped between two cancellation checks
const checkInterval = 4096

// Builder dictionary codes groups of columns of a row major matrix. Rows
// are split into disjoint ranges grouped concurrently, one table per range
// and group, and the tables of later ranges are then joined into the first.
type Builder struct {
	partitions int
	workers    int
	sampleSize int
	capacity   int
	loadFactor float64
	keyMatch   hashtable.KeyMatch
	counter    *hashtable.MissCounter
}

// NewBuilder returns a builder set up from a validated configuration.
func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{
		partitions: cfg.Build.Partitions,
		workers:    cfg.Build.Workers,
		sampleSize: cfg.Build.SampleSize,
		capacity:   cfg.HashTable.InitCapacity,
		loadFactor: cfg.HashTable.LoadFactor,
		keyMatch:   cfg.KeyMatch(),
		counter:    hashtable.NewMissCounter(),
	}
}

// Misses returns the chain misses of every table the builder has filled.
func (b *Builder) Misses() int64 {
	return b.counter.Load()
}

type rowRange struct {
	from, to int
}

func splitRows(n, partitions int) []rowRange {
	if partitions > n {
		partitions = n
	}
	if partitions < 1 {
		partitions = 1
	}
	ranges := make([]rowRange, partitions)
	for i := range ranges {
		ranges[i] = rowRange{from: i * n / partitions, to: (i + 1) * n / partitions}
	}
	return ranges
}

// Build groups the columns of every group over rows and returns one
// column group each, in the order of groups.
func (b *Builder) Build(ctx context.Context, rows [][]float64, groups ...[]int) ([]*ColGroup, error) {
	if err := checkGroups(ctx, rows, groups); err != nil {
		return nil, err
	}
	start := time.Now()
	logger := logutil.Named("colgroup")
	ranges := splitRows(len(rows), b.partitions)
	estimates := b.estimate(rows, groups)

	pool, err := ants.NewPool(b.workers)
	if err != nil {
		return nil, moerr.ConvertGoError(ctx, err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	maps := make([][]hashtable.GroupMap, len(ranges))
	errs := make([]error, len(ranges))
	for i := range ranges {
		i := i
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			maps[i], errs[i] = b.buildRange(ctx, logger, rows, groups, ranges[i], estimates)
		}); err != nil {
			wg.Done()
			errs[i] = moerr.ConvertGoError(ctx, err)
		}
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	// ranges are joined in row order so position lists stay sorted
	joined := maps[0]
	for i := 1; i < len(maps); i++ {
		if joined, err = hashtable.JoinMaps(ctx, joined, maps[i]); err != nil {
			return nil, err
		}
	}

	ret := make([]*ColGroup, len(groups))
	for g, m := range joined {
		d, err := dict.New(ctx, m.Extract())
		if err != nil {
			return nil, err
		}
		cols := make([]int, len(groups[g]))
		copy(cols, groups[g])
		ret[g] = newColGroup(cols, d)
	}
	logger.Debug("column groups built",
		zap.Int("rows", len(rows)),
		zap.Int("groups", len(groups)),
		zap.Int("partitions", len(ranges)),
		zap.Int64("misses", b.counter.Load()),
		zap.Duration("cost", time.Since(start)))
	return ret, nil
}

func (b *Builder) buildRange(ctx context.Context, logger *zap.Logger, rows [][]float64, groups [][]int,
	r rowRange, estimates []uint64) (_ []hashtable.GroupMap, err error) {
	defer func() {
		if e := recover(); e != nil {
			err = moerr.ConvertPanicError(ctx, e)
		}
	}()
	start := time.Now()
	maps := make([]*hashtable.DblArrayIntListHashMap, len(groups))
	interners := make([]*hashtable.Interner, len(groups))
	tuples := make([][]float64, len(groups))
	for g, cols := range groups {
		maps[g] = hashtable.NewDblArrayIntListHashMap(
			hashtable.WithCapacity(b.rangeCapacity(estimates[g], r)),
			hashtable.WithLoadFactor(b.loadFactor),
			hashtable.WithKeyMatch(b.keyMatch),
			hashtable.WithMissCounter(b.counter))
		interners[g] = hashtable.NewInterner()
		tuples[g] = make([]float64, len(cols))
	}

	for row := r.from; row < r.to; row++ {
		if (row-r.from)%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, moerr.ConvertGoError(ctx, err)
			}
		}
		for g, cols := range groups {
			project(rows[row], cols, tuples[g])
			var key *types.DblArray
			if b.keyMatch == hashtable.KeyMatchIdentity {
				key = interners[g].Intern(tuples[g])
			} else {
				key = types.NewDblArray(tuples[g])
			}
			maps[g].AppendValue(key, int64(row))
		}
	}

	ret := make([]hashtable.GroupMap, len(maps))
	for g, m := range maps {
		ret[g] = m
		logger.Debug("row range grouped",
			zap.Int("from", r.from),
			zap.Int("to", r.to),
			zap.Ints("columns", groups[g]),
			zap.Int("distinct", m.Size()),
			zap.Int("capacity", m.Capacity()),
			zap.Duration("cost", time.Since(start)))
	}
	return ret, nil
}

func (b *Builder) estimate(rows [][]float64, groups [][]int) []uint64 {
	ret := make([]uint64, len(groups))
	if b.capacity > 0 {
		return ret
	}
	for g, cols := range groups {
		ret[g] = estimateDistinct(rows, cols, b.sampleSize)
	}
	return ret
}

func (b *Builder) rangeCapacity(estimate uint64, r rowRange) int {
	if b.capacity > 0 {
		return b.capacity
	}
	if n := uint64(r.to - r.from); estimate > n {
		estimate = n
	}
	return initialCapacity(estimate, b.loadFactor)
}

func checkGroups(ctx context.Context, rows [][]float64, groups [][]int) error {
	if len(groups) == 0 {
		return moerr.NewInvalidArg(ctx, "column groups", "none")
	}
	if uint64(len(rows)) > math.MaxUint32 {
		return moerr.NewInvalidArg(ctx, "row count", len(rows))
	}
	width := math.MaxInt
	for _, row := range rows {
		if len(row) < width {
			width = len(row)
		}
	}
	for _, cols := range groups {
		if len(cols) == 0 {
			return moerr.NewInvalidArg(ctx, "column group", "empty")
		}
		for _, c := range cols {
			if c < 0 || (len(rows) > 0 && c >= width) {
				return moerr.NewInvalidArg(ctx, "column index", c)
			}
		}
	}
	return nil
}

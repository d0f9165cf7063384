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

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matrixorigin/simdcsv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matrixorigin/colgroup/pkg/common/moerr"
	"github.com/matrixorigin/colgroup/pkg/compress/colgroup"
	"github.com/matrixorigin/colgroup/pkg/config"
	"github.com/matrixorigin/colgroup/pkg/container/hashtable"
	"github.com/matrixorigin/colgroup/pkg/logutil"
)

type groupArg struct {
	cfgFile string
	cols    []string
	debug   bool
	out     string
}

func groupCommand() *cobra.Command {
	arg := &groupArg{}
	cmd := &cobra.Command{
		Use:   "group <csv-file>",
		Short: "Group columns of a numeric csv file",
		Long:  "Dictionary code groups of columns of a csv file of numbers and report their compression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return arg.run(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}
	cmd.Flags().StringVar(&arg.cfgFile, "cfg", "", "toml configuration file")
	cmd.Flags().StringArrayVar(&arg.cols, "cols", nil, "comma separated columns of one group, repeatable, default all columns")
	cmd.Flags().BoolVar(&arg.debug, "debug", false, "print the grouping tables")
	cmd.Flags().StringVar(&arg.out, "out", "", "write the encoded groups to this file")
	return cmd
}

func (arg *groupArg) run(ctx context.Context, w io.Writer, file string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config.Default()
	if arg.cfgFile != "" {
		var err error
		if cfg, err = config.Load(ctx, arg.cfgFile); err != nil {
			return err
		}
	}
	logutil.SetupMOLogger(&cfg.Log)
	ctx = config.WithConfig(ctx, cfg)

	rows, err := readRows(ctx, file)
	if err != nil {
		return err
	}
	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	} else {
		logutil.Warn("no rows in input", zap.String("file", file))
	}
	groups, err := parseGroups(ctx, arg.cols, width)
	if err != nil {
		return err
	}
	logutil.Info("grouping columns",
		zap.String("file", file),
		zap.Int("rows", len(rows)),
		zap.Int("groups", len(groups)))

	b := colgroup.NewBuilder(cfg)
	cgs, err := b.Build(ctx, rows, groups...)
	if err != nil {
		return err
	}
	for i, g := range cgs {
		fmt.Fprintf(w, "group %d columns %v: rows %d, distinct %d, ratio %.2f\n",
			i, g.Columns(), g.NumRows(), g.NumValues(), g.Ratio())
		if arg.debug {
			fmt.Fprintln(w, debugTable(ctx, rows, g.Columns()))
		}
		if arg.out != "" {
			if err := writeGroup(ctx, g, outFile(arg.out, i, len(cgs))); err != nil {
				return err
			}
		}
	}
	fmt.Fprintf(w, "misses %d\n", b.Misses())
	return nil
}

// debugTable groups rows again in a single table to show its layout.
func debugTable(ctx context.Context, rows [][]float64, cols []int) string {
	cfg := config.GetConfig(ctx)
	m := hashtable.NewDblArrayIntListHashMap(
		hashtable.WithLoadFactor(cfg.HashTable.LoadFactor),
		hashtable.WithMissCounter(hashtable.NewMissCounter()))
	in := hashtable.NewInterner()
	tuple := make([]float64, len(cols))
	for i, row := range rows {
		for j, c := range cols {
			tuple[j] = row[c]
		}
		m.AppendValue(in.Intern(tuple), int64(i))
	}
	return m.String()
}

func outFile(out string, i, n int) string {
	if n == 1 {
		return out
	}
	return fmt.Sprintf("%s.%d", out, i)
}

func writeGroup(ctx context.Context, g *colgroup.ColGroup, file string) error {
	c, err := colgroup.ParseCompression(ctx, config.GetConfig(ctx).Codec.Compression)
	if err != nil {
		return err
	}
	data, err := g.Marshal(ctx, c)
	if err != nil {
		return err
	}
	if err := os.WriteFile(file, data, 0644); err != nil {
		return moerr.ConvertGoError(ctx, err)
	}
	logutil.Info("column group written",
		zap.String("file", file),
		zap.Stringer("compression", c),
		zap.Int("bytes", len(data)))
	return nil
}

const batchReadRows = 4000

// contentReader hands out the records of a csv reader one by one, reading
// them in batches of batchReadRows.
type contentReader struct {
	ctx     context.Context
	idx     int
	length  int
	content [][]string
	reader  *simdcsv.Reader
}

func newContentReader(ctx context.Context, r io.Reader) *contentReader {
	return &contentReader{
		ctx:     ctx,
		content: make([][]string, batchReadRows),
		reader:  simdcsv.NewReaderWithOptions(r, ',', '#', true, true),
	}
}

// readLine returns the next record, nil once the input is exhausted.
func (s *contentReader) readLine() ([]string, error) {
	if s.idx == s.length && s.reader != nil {
		var cnt int
		var err error
		s.content, cnt, err = s.reader.Read(batchReadRows, s.ctx, s.content)
		if err != nil && err != io.EOF {
			return nil, err
		}
		if cnt < batchReadRows || err == io.EOF {
			s.reader = nil
		}
		s.idx = 0
		s.length = cnt
	}
	if s.idx < s.length {
		idx := s.idx
		s.idx++
		return s.content[idx], nil
	}
	return nil, nil
}

func readRows(ctx context.Context, file string) ([][]float64, error) {
	f, err := os.Open(file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, moerr.NewFileNotFound(ctx, file)
		}
		return nil, moerr.ConvertGoError(ctx, err)
	}
	defer f.Close()

	r := newContentReader(ctx, f)
	var rows [][]float64
	for line := 1; ; line++ {
		rec, err := r.readLine()
		if err != nil {
			return nil, moerr.NewInvalidInput(ctx, "%s: %v", file, err)
		}
		if rec == nil {
			return rows, nil
		}
		if len(rec) == 0 || (len(rec) == 1 && strings.TrimSpace(rec[0]) == "") {
			continue
		}
		if len(rows) > 0 && len(rec) != len(rows[0]) {
			return nil, moerr.NewInvalidInput(ctx, "%s record %d has %d fields, want %d",
				file, line, len(rec), len(rows[0]))
		}
		row := make([]float64, len(rec))
		for i, field := range rec {
			if row[i], err = strconv.ParseFloat(strings.TrimSpace(field), 64); err != nil {
				return nil, moerr.NewInvalidInput(ctx, "%s record %d: %v", file, line, err)
			}
		}
		rows = append(rows, row)
	}
}

func parseGroups(ctx context.Context, specs []string, width int) ([][]int, error) {
	if len(specs) == 0 {
		all := make([]int, width)
		for i := range all {
			all[i] = i
		}
		return [][]int{all}, nil
	}
	groups := make([][]int, 0, len(specs))
	for _, spec := range specs {
		var cols []int
		for _, s := range strings.Split(spec, ",") {
			c, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil {
				return nil, moerr.NewInvalidArg(ctx, "cols", spec)
			}
			cols = append(cols, c)
		}
		groups = append(groups, cols)
	}
	return groups, nil
}

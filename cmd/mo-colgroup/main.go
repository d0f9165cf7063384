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
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matrixorigin/colgroup/pkg/logutil"
)

func rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "mo-colgroup",
		Short:         "Dictionary coding of column groups",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(groupCommand())
	return cmd
}

func main() {
	if err := rootCommand().Execute(); err != nil {
		logutil.Error("mo-colgroup failed", zap.Error(err))
		os.Exit(1)
	}
}

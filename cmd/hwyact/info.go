// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/go-highway/ewise/hwy"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print the dispatch level and the lane count of every element type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "level\t%s\n", hwy.CurrentName())
			fmt.Fprintf(w, "width\t%d bytes\n", hwy.CurrentWidth())
			fmt.Fprintf(w, "f16c\t%t\n", hwy.HasF16C())
			fmt.Fprintf(w, "avx512-bf16\t%t\n", hwy.HasAVX512BF16())
			fmt.Fprintf(w, "arm-fp16\t%t\n", hwy.HasARMFP16())
			fmt.Fprintf(w, "arm-bf16\t%t\n", hwy.HasARMBF16())
			fmt.Fprintln(w)
			fmt.Fprintln(w, "DTYPE\tSIZE\tLANES")
			for _, dt := range hwy.AllDTypes() {
				fmt.Fprintf(w, "%s\t%d\t%d\n", dt, dt.Size(), dt.Lanes())
			}
			return w.Flush()
		},
	}
}

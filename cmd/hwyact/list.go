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
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/go-highway/ewise/hwy"
	"github.com/go-highway/ewise/hwy/contrib/elementwise"
)

func newListCmd(opts *options) *cobra.Command {
	var dtype string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered operations and their element types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := newRegistry()
			if err != nil {
				return err
			}
			ops := reg.Ops()
			if dtype != "" {
				dt, err := hwy.ParseDType(dtype)
				if err != nil {
					return err
				}
				ops = lo.Filter(ops, func(op elementwise.Op, _ int) bool {
					return lo.Contains(reg.DTypes(op), dt)
				})
			}
			opts.log.V(1).Info("listing", "ops", len(ops), "dtype", dtype)

			title := cases.Title(language.English)
			headers := lo.Map([]string{"op", "arity", "grain", "dtypes"}, func(h string, _ int) string {
				return title.String(h)
			})
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, strings.Join(headers, "\t"))
			for _, op := range ops {
				dts := reg.DTypes(op)
				f, err := reg.Lookup(op, dts[0])
				if err != nil {
					return err
				}
				outs, ins := f.Arity()
				grain := "-"
				if _, ok := reg.Grain(op); ok {
					grain = "custom"
				}
				names := lo.Map(dts, func(dt hwy.DType, _ int) string { return dt.String() })
				fmt.Fprintf(w, "%s\t%d->%d\t%s\t%s\n", op, ins, outs, grain, strings.Join(names, ","))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&dtype, "dtype", "", "only list operations registered for this element type")
	return cmd
}

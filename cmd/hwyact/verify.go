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
	"runtime"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/go-highway/ewise/hwy"
	"github.com/go-highway/ewise/hwy/contrib/elementwise"
	"github.com/go-highway/ewise/internal/conformance"
)

type verifyFlags struct {
	ops      []string
	dtypes   []string
	lengths  []int
	params   map[string]string
	parallel int
}

// check is one (op, dtype, length) combination to verify.
type check struct {
	op elementwise.Op
	dt hwy.DType
	n  int
}

func newVerifyCmd(opts *options) *cobra.Command {
	var vf verifyFlags
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that the lane path of every kernel matches its scalar path bit for bit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, closePool, err := opts.engine()
			if err != nil {
				return err
			}
			defer closePool()

			params, err := parseParams(vf.params)
			if err != nil {
				return err
			}
			checks, err := vf.plan(e.Registry())
			if err != nil {
				return err
			}

			var (
				mu       sync.Mutex
				failures []conformance.Mismatch
			)
			var g errgroup.Group
			g.SetLimit(max(vf.parallel, 1))
			for _, c := range checks {
				g.Go(func() error {
					m, err := conformance.Check(e, c.op, c.dt, params, c.n)
					if err != nil {
						return errors.WithMessagef(err, "%s/%s n=%d", c.op, c.dt, c.n)
					}
					opts.log.V(1).Info("checked", "op", c.op, "dtype", c.dt, "n", c.n, "ok", m == nil)
					if m != nil {
						mu.Lock()
						failures = append(failures, *m)
						mu.Unlock()
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			sort.Slice(failures, func(i, j int) bool { return failures[i].String() < failures[j].String() })
			for _, m := range failures {
				fmt.Fprintln(out, "MISMATCH", m)
			}
			if len(failures) > 0 {
				return errors.Errorf("%d of %d checks failed", len(failures), len(checks))
			}
			fmt.Fprintf(out, "ok: %d checks\n", len(checks))
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringSliceVar(&vf.ops, "ops", nil, "operations to verify (default all)")
	flags.StringSliceVar(&vf.dtypes, "dtypes", nil, "element types to verify (default all registered)")
	flags.IntSliceVarP(&vf.lengths, "n", "n", nil, "buffer lengths (default a set around the lane count of each type)")
	flags.StringToStringVarP(&vf.params, "param", "p", nil, "kernel parameter, e.g. -p alpha=0.5")
	flags.IntVar(&vf.parallel, "parallel", runtime.GOMAXPROCS(0), "checks run at once")
	return cmd
}

// plan expands the flags into the list of checks to run.
func (vf *verifyFlags) plan(reg *elementwise.Registry) ([]check, error) {
	ops := reg.Ops()
	if len(vf.ops) > 0 {
		ops = lo.Map(vf.ops, func(name string, _ int) elementwise.Op { return elementwise.Op(name) })
		if unknown, _ := lo.Difference(ops, reg.Ops()); len(unknown) > 0 {
			return nil, errors.Errorf("unknown operations %v", unknown)
		}
	}
	var checks []check
	for _, op := range ops {
		dts, err := parseDTypes(vf.dtypes, reg.DTypes(op))
		if err != nil {
			return nil, err
		}
		registered := reg.DTypes(op)
		for _, dt := range dts {
			if !lo.Contains(registered, dt) {
				continue
			}
			lengths := vf.lengths
			if len(lengths) == 0 {
				lengths = conformance.Lengths(dt)
			}
			for _, n := range lengths {
				checks = append(checks, check{op, dt, n})
			}
		}
	}
	return checks, nil
}

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
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/go-highway/ewise/hwy"
	"github.com/go-highway/ewise/hwy/contrib/algo"
	"github.com/go-highway/ewise/hwy/contrib/elementwise"
	"github.com/go-highway/ewise/internal/conformance"
)

type benchFlags struct {
	op     string
	dtype  string
	n      int
	iters  int
	mode   string
	params map[string]string
}

func newBenchCmd(opts *options) *cobra.Command {
	bf := benchFlags{op: "gelu", dtype: "float32", n: 1 << 20, iters: 100, mode: algo.MaskedTail.String()}
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time repeated runs of one kernel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if bf.n < 0 || bf.iters <= 0 {
				return errors.Errorf("need n >= 0 and iters > 0, got n=%d iters=%d", bf.n, bf.iters)
			}
			dt, err := hwy.ParseDType(bf.dtype)
			if err != nil {
				return err
			}
			params, err := parseParams(bf.params)
			if err != nil {
				return err
			}
			mode, err := parseMode(bf.mode)
			if err != nil {
				return err
			}
			e, closePool, err := opts.engine(elementwise.WithMode(mode))
			if err != nil {
				return err
			}
			defer closePool()

			op := elementwise.Op(bf.op)
			f, err := e.Registry().Lookup(op, dt)
			if err != nil {
				return err
			}
			outs, ins := f.Arity()
			operands := make([]elementwise.Operand, 0, outs+ins)
			for range outs {
				operands = append(operands, conformance.Fill(dt, bf.n, 0, []float64{0}))
			}
			operands = append(operands, conformance.Inputs(dt, ins, bf.n)...)

			// Warm up the pool and bind errors before timing.
			if err := e.Apply(op, dt, params, operands...); err != nil {
				return err
			}
			start := time.Now()
			for range bf.iters {
				if err := e.Apply(op, dt, params, operands...); err != nil {
					return err
				}
			}
			elapsed := time.Since(start)

			perIter := elapsed / time.Duration(bf.iters)
			elems := float64(bf.n) * float64(bf.iters)
			bytes := elems * float64((outs+ins)*dt.Size())
			opts.log.V(1).Info("bench done", "op", op, "dtype", dt, "elapsed", elapsed)
			fmt.Fprintf(cmd.OutOrStdout(), "%s/%s %s n=%d workers=%d: %v/iter, %.3f ns/elem, %.2f GB/s\n",
				op, dt, mode, bf.n, e.Workers(), perIter,
				float64(elapsed.Nanoseconds())/max(elems, 1), bytes/max(elapsed.Seconds(), 1e-9)/1e9)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&bf.op, "op", bf.op, "operation to run")
	flags.StringVar(&bf.dtype, "dtype", bf.dtype, "element type")
	flags.IntVarP(&bf.n, "n", "n", bf.n, "buffer length")
	flags.IntVar(&bf.iters, "iters", bf.iters, "timed iterations")
	flags.StringVar(&bf.mode, "mode", bf.mode, "masked-tail, scalar-tail or scalar-only")
	flags.StringToStringVarP(&bf.params, "param", "p", nil, "kernel parameter, e.g. -p beta=2")
	return cmd
}

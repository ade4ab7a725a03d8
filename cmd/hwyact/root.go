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
	"log"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/spf13/cobra"

	"github.com/go-highway/ewise/hwy/contrib/activation"
	"github.com/go-highway/ewise/hwy/contrib/elementwise"
	"github.com/go-highway/ewise/hwy/contrib/workerpool"
)

// options are the persistent flags shared by every subcommand.
type options struct {
	verbosity int
	workers   int
	grain     int
	log       logr.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{log: logr.Discard()}
	root := &cobra.Command{
		Use:          "hwyact",
		Short:        "Inspect and exercise the elementwise activation kernels",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			stdr.SetVerbosity(opts.verbosity)
			opts.log = stdr.New(log.New(cmd.ErrOrStderr(), "", log.LstdFlags)).WithName("hwyact")
		},
	}
	flags := root.PersistentFlags()
	flags.IntVarP(&opts.verbosity, "v", "v", 0, "log verbosity; 1 logs each run, 2 also logs chunking")
	flags.IntVar(&opts.workers, "workers", elementwise.NumWorkersEnv(), "worker pool size")
	flags.IntVar(&opts.grain, "grain", elementwise.GrainSizeEnv(), "elements per chunk")

	root.AddCommand(newInfoCmd(), newListCmd(opts), newVerifyCmd(opts), newBenchCmd(opts))
	return root
}

// newRegistry returns a registry holding every activation kernel.
func newRegistry() (*elementwise.Registry, error) {
	reg := elementwise.NewRegistry()
	if err := activation.Register(reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// engine builds an engine from the flags plus extra. The returned function
// closes the worker pool.
func (o *options) engine(extra ...elementwise.Option) (*elementwise.Engine, func(), error) {
	reg, err := newRegistry()
	if err != nil {
		return nil, nil, err
	}
	pool := workerpool.New(o.workers)
	opts := append([]elementwise.Option{
		elementwise.WithPool(pool),
		elementwise.WithGrainSize(o.grain),
		elementwise.WithLogger(o.log.V(1)),
	}, extra...)
	return elementwise.NewEngine(reg, opts...), pool.Close, nil
}

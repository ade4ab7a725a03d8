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

package activation

import (
	"sync"

	"github.com/go-highway/ewise/hwy"
	"github.com/go-highway/ewise/hwy/contrib/elementwise"
	"github.com/go-highway/ewise/hwy/contrib/workerpool"
)

// MinParallelGELUOps is the element count above which GELU invocations use
// one chunk per worker instead of the default grain size.
const MinParallelGELUOps = 16384

func geluGrain(n, workers int) int {
	if n > MinParallelGELUOps {
		return n / workers
	}
	return 0
}

var defaultEngine = sync.OnceValue(func() *elementwise.Engine {
	reg := elementwise.NewRegistry()
	if err := Register(reg); err != nil {
		panic(err)
	}
	pool := workerpool.New(elementwise.NumWorkersEnv())
	return elementwise.NewEngine(reg, elementwise.WithPool(pool))
})

// Default returns the process-wide engine: every kernel of this package on a
// worker pool of HWY_NUM_WORKERS workers (GOMAXPROCS when unset). It is
// created on first use and lives for the rest of the process.
func Default() *elementwise.Engine {
	return defaultEngine()
}

// Run applies op on the default engine to slices of T. operands lists the
// remaining outputs, then the inputs, in the order documented on the Op
// constants; for OpLogSigmoid the first of them is the buffer output.
func Run[T hwy.Lanes](op elementwise.Op, params elementwise.Params, out []T, operands ...[]T) error {
	ops := make([]elementwise.Operand, 0, 1+len(operands))
	ops = append(ops, elementwise.Of(out))
	for _, s := range operands {
		ops = append(ops, elementwise.Of(s))
	}
	return Default().Apply(op, hwy.DTypeOf[T](), params, ops...)
}

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

package elementwise

import (
	"github.com/go-logr/logr"
	"github.com/pkg/errors"

	"github.com/go-highway/ewise/hwy"
	"github.com/go-highway/ewise/hwy/contrib/algo"
	"github.com/go-highway/ewise/hwy/contrib/workerpool"
)

// Engine evaluates registered kernels over caller-provided buffers. It is
// safe for concurrent use; each Apply call is synchronous and returns once
// every chunk has been written.
type Engine struct {
	reg   *Registry
	pool  *workerpool.Pool
	grain int
	mode  algo.Mode
	log   logr.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithPool runs chunks on pool. Without a pool every invocation is inline.
func WithPool(pool *workerpool.Pool) Option {
	return func(e *Engine) { e.pool = pool }
}

// WithGrainSize sets the minimum number of elements per chunk. It defaults
// to HWY_GRAIN_SIZE when set, else DefaultGrainSize.
func WithGrainSize(grain int) Option {
	return func(e *Engine) { e.grain = grain }
}

// WithMode selects how the apply loop handles the remainder of each chunk.
// The default is algo.MaskedTail.
func WithMode(mode algo.Mode) Option {
	return func(e *Engine) { e.mode = mode }
}

// WithLogger sets the logger for dispatch decisions, logged at V(1).
func WithLogger(log logr.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// NewEngine returns an engine dispatching through reg.
func NewEngine(reg *Registry, opts ...Option) *Engine {
	e := &Engine{
		reg:   reg,
		grain: GrainSizeEnv(),
		mode:  algo.MaskedTail,
		log:   logr.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.grain <= 0 {
		e.grain = DefaultGrainSize
	}
	return e
}

// Registry returns the dispatch table of the engine.
func (e *Engine) Registry() *Registry { return e.reg }

// Workers returns the number of workers chunks can be spread over.
func (e *Engine) Workers() int {
	if e.pool == nil {
		return 1
	}
	return e.pool.NumWorkers()
}

// Apply evaluates op on operands of element type dt: outputs first, then
// inputs, all of the same length. Results are written in place.
//
// ErrUnsupportedType, ErrShapeMismatch and ErrInvalidParam are returned
// before any element is written. A panic inside a chunk is not recovered:
// it reaches the caller as a *workerpool.PanicError, and chunks that already
// ran keep their output.
func (e *Engine) Apply(op Op, dt hwy.DType, params Params, operands ...Operand) error {
	return e.apply(op, dt, params, operands, e.mode)
}

// ApplyScalar is Apply restricted to the scalar formula. It is the reference
// against which the lane formulas are verified.
func (e *Engine) ApplyScalar(op Op, dt hwy.DType, params Params, operands ...Operand) error {
	return e.apply(op, dt, params, operands, algo.ScalarOnly)
}

func (e *Engine) apply(op Op, dt hwy.DType, params Params, operands []Operand, mode algo.Mode) error {
	f, err := e.reg.Lookup(op, dt)
	if err != nil {
		return err
	}
	n, err := validate(op, dt, f, operands)
	if err != nil {
		return err
	}
	task, err := f.Bind(params, operands)
	if err != nil {
		return errors.WithMessagef(err, "%s/%s", op, dt)
	}
	if n == 0 {
		return nil
	}

	grain := e.grain
	if fn, ok := e.reg.Grain(op); ok {
		if g := fn(n, e.Workers()); g > 0 {
			grain = g
		}
	}
	chunks := Partition(n, grain, e.Workers())
	if log := e.log.V(1); log.Enabled() {
		log.Info("apply", "op", op, "dtype", dt, "n", n, "grain", grain,
			"chunks", len(chunks), "mode", mode)
	}

	if len(chunks) == 1 {
		task.Run(0, n, mode)
		return nil
	}
	e.pool.Run(len(chunks), func(i int) {
		task.Run(chunks[i].Begin, chunks[i].End, mode)
	})
	return nil
}

// validate checks the operands against the formula and returns their common
// length.
func validate(op Op, dt hwy.DType, f Formula, operands []Operand) (int, error) {
	outs, ins := f.Arity()
	if len(operands) != outs+ins {
		return 0, errors.Wrapf(ErrShapeMismatch, "%s takes %d outputs and %d inputs, got %d operands",
			op, outs, ins, len(operands))
	}
	for i, o := range operands {
		if !o.dtype.Valid() {
			return 0, errors.Wrapf(ErrUnsupportedType, "%s: operand %d has no element type", op, i)
		}
		if o.dtype != dt {
			return 0, errors.Wrapf(ErrShapeMismatch, "%s: operand %d is %s, want %s", op, i, o.dtype, dt)
		}
	}
	n := operands[0].n
	for i, o := range operands[1:] {
		if o.n != n {
			return 0, errors.Wrapf(ErrShapeMismatch, "%s: operand %d has %d elements, operand 0 has %d",
				op, i+1, o.n, n)
		}
	}
	return n, nil
}

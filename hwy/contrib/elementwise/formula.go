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
	"github.com/go-highway/ewise/hwy"
	"github.com/go-highway/ewise/hwy/contrib/algo"
)

// Formula is what the registry stores for one (operation, element type) pair.
// Bind builds the immutable kernel object from the invocation's parameters
// and attaches it to the operands, producing a Task the partitioner can run
// on any sub-range.
type Formula interface {
	// Arity returns the number of output and input operands, in that order.
	Arity() (outputs, inputs int)

	// Bind converts params once and binds the operands: outputs first, then
	// inputs. The engine has already checked their count, type and length.
	Bind(params Params, operands []Operand) (Task, error)
}

// Task evaluates a bound kernel over the element range [begin, end). Tasks
// for disjoint ranges may run concurrently.
type Task interface {
	Run(begin, end int, mode algo.Mode)
}

// TaskFunc adapts a function to the Task interface.
type TaskFunc func(begin, end int, mode algo.Mode)

// Run calls f(begin, end, mode).
func (f TaskFunc) Run(begin, end int, mode algo.Mode) { f(begin, end, mode) }

// Builder converts an invocation's parameters into a kernel object of type K.
type Builder[K any] func(Params) (K, error)

type unary[T hwy.Lanes, K algo.Unary[T]] struct{ build Builder[K] }

// NewUnary returns the formula of a one-input kernel computed natively in T.
func NewUnary[T hwy.Lanes, K algo.Unary[T]](build Builder[K]) Formula {
	return unary[T, K]{build}
}

func (unary[T, K]) Arity() (int, int) { return 1, 1 }

func (f unary[T, K]) Bind(params Params, ops []Operand) (Task, error) {
	k, err := f.build(params)
	if err != nil {
		return nil, err
	}
	s, err := typedSlices[T](ops)
	if err != nil {
		return nil, err
	}
	out, x := s[0], s[1]
	return TaskFunc(func(b, e int, mode algo.Mode) {
		algo.Apply1(out[b:e], x[b:e], k, mode)
	}), nil
}

type binary[T hwy.Lanes, K algo.Binary[T]] struct{ build Builder[K] }

// NewBinary returns the formula of a two-input kernel computed natively in T.
func NewBinary[T hwy.Lanes, K algo.Binary[T]](build Builder[K]) Formula {
	return binary[T, K]{build}
}

func (binary[T, K]) Arity() (int, int) { return 1, 2 }

func (f binary[T, K]) Bind(params Params, ops []Operand) (Task, error) {
	k, err := f.build(params)
	if err != nil {
		return nil, err
	}
	s, err := typedSlices[T](ops)
	if err != nil {
		return nil, err
	}
	out, a, c := s[0], s[1], s[2]
	return TaskFunc(func(b, e int, mode algo.Mode) {
		algo.Apply2(out[b:e], a[b:e], c[b:e], k, mode)
	}), nil
}

type ternary[T hwy.Lanes, K algo.Ternary[T]] struct{ build Builder[K] }

// NewTernary returns the formula of a three-input kernel computed natively in T.
func NewTernary[T hwy.Lanes, K algo.Ternary[T]](build Builder[K]) Formula {
	return ternary[T, K]{build}
}

func (ternary[T, K]) Arity() (int, int) { return 1, 3 }

func (f ternary[T, K]) Bind(params Params, ops []Operand) (Task, error) {
	k, err := f.build(params)
	if err != nil {
		return nil, err
	}
	s, err := typedSlices[T](ops)
	if err != nil {
		return nil, err
	}
	out, x, y, z := s[0], s[1], s[2], s[3]
	return TaskFunc(func(b, e int, mode algo.Mode) {
		algo.Apply3(out[b:e], x[b:e], y[b:e], z[b:e], k, mode)
	}), nil
}

type split[T hwy.Lanes, K algo.Split[T]] struct{ build Builder[K] }

// NewSplit returns the formula of a one-input, two-output kernel computed
// natively in T.
func NewSplit[T hwy.Lanes, K algo.Split[T]](build Builder[K]) Formula {
	return split[T, K]{build}
}

func (split[T, K]) Arity() (int, int) { return 2, 1 }

func (f split[T, K]) Bind(params Params, ops []Operand) (Task, error) {
	k, err := f.build(params)
	if err != nil {
		return nil, err
	}
	s, err := typedSlices[T](ops)
	if err != nil {
		return nil, err
	}
	out1, out2, x := s[0], s[1], s[2]
	return TaskFunc(func(b, e int, mode algo.Mode) {
		algo.ApplySplit(out1[b:e], out2[b:e], x[b:e], k, mode)
	}), nil
}

func typedSlices[T hwy.Lanes](ops []Operand) ([][]T, error) {
	s := make([][]T, len(ops))
	for i := range ops {
		var err error
		if s[i], err = sliceOf[T](ops, i); err != nil {
			return nil, err
		}
	}
	return s, nil
}

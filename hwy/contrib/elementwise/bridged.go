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

// The bridged formulas store H (Float16 or BFloat16) and compute with a
// float32 kernel K through the precision bridge. Parameters are converted for
// float32, since that is the type the kernel arithmetic runs in.

type bridgedUnary[H hwy.HalfFloats, K algo.Unary[float32]] struct{ build Builder[K] }

// NewBridgedUnary returns the formula of a one-input float32 kernel applied
// to half-precision storage.
func NewBridgedUnary[H hwy.HalfFloats, K algo.Unary[float32]](build Builder[K]) Formula {
	return bridgedUnary[H, K]{build}
}

func (bridgedUnary[H, K]) Arity() (int, int) { return 1, 1 }

func (f bridgedUnary[H, K]) Bind(params Params, ops []Operand) (Task, error) {
	k, err := f.build(params)
	if err != nil {
		return nil, err
	}
	s, err := typedSlices[H](ops)
	if err != nil {
		return nil, err
	}
	out, x := s[0], s[1]
	return TaskFunc(func(b, e int, mode algo.Mode) {
		algo.Bridge1(out[b:e], x[b:e], k, mode)
	}), nil
}

type bridgedBinary[H hwy.HalfFloats, K algo.Binary[float32]] struct{ build Builder[K] }

// NewBridgedBinary returns the formula of a two-input float32 kernel applied
// to half-precision storage.
func NewBridgedBinary[H hwy.HalfFloats, K algo.Binary[float32]](build Builder[K]) Formula {
	return bridgedBinary[H, K]{build}
}

func (bridgedBinary[H, K]) Arity() (int, int) { return 1, 2 }

func (f bridgedBinary[H, K]) Bind(params Params, ops []Operand) (Task, error) {
	k, err := f.build(params)
	if err != nil {
		return nil, err
	}
	s, err := typedSlices[H](ops)
	if err != nil {
		return nil, err
	}
	out, a, c := s[0], s[1], s[2]
	return TaskFunc(func(b, e int, mode algo.Mode) {
		algo.Bridge2(out[b:e], a[b:e], c[b:e], k, mode)
	}), nil
}

type bridgedTernary[H hwy.HalfFloats, K algo.Ternary[float32]] struct{ build Builder[K] }

// NewBridgedTernary returns the formula of a three-input float32 kernel
// applied to half-precision storage.
func NewBridgedTernary[H hwy.HalfFloats, K algo.Ternary[float32]](build Builder[K]) Formula {
	return bridgedTernary[H, K]{build}
}

func (bridgedTernary[H, K]) Arity() (int, int) { return 1, 3 }

func (f bridgedTernary[H, K]) Bind(params Params, ops []Operand) (Task, error) {
	k, err := f.build(params)
	if err != nil {
		return nil, err
	}
	s, err := typedSlices[H](ops)
	if err != nil {
		return nil, err
	}
	out, x, y, z := s[0], s[1], s[2], s[3]
	return TaskFunc(func(b, e int, mode algo.Mode) {
		algo.Bridge3(out[b:e], x[b:e], y[b:e], z[b:e], k, mode)
	}), nil
}

type bridgedSplit[H hwy.HalfFloats, K algo.Split[float32]] struct{ build Builder[K] }

// NewBridgedSplit returns the formula of a one-input, two-output float32
// kernel applied to half-precision storage.
func NewBridgedSplit[H hwy.HalfFloats, K algo.Split[float32]](build Builder[K]) Formula {
	return bridgedSplit[H, K]{build}
}

func (bridgedSplit[H, K]) Arity() (int, int) { return 2, 1 }

func (f bridgedSplit[H, K]) Bind(params Params, ops []Operand) (Task, error) {
	k, err := f.build(params)
	if err != nil {
		return nil, err
	}
	s, err := typedSlices[H](ops)
	if err != nil {
		return nil, err
	}
	out1, out2, x := s[0], s[1], s[2]
	return TaskFunc(func(b, e int, mode algo.Mode) {
		algo.BridgeSplit(out1[b:e], out2[b:e], x[b:e], k, mode)
	}), nil
}

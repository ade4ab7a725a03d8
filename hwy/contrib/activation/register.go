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
	stdmath "math"

	"github.com/pkg/errors"

	"github.com/go-highway/ewise/hwy"
	"github.com/go-highway/ewise/hwy/contrib/algo"
	"github.com/go-highway/ewise/hwy/contrib/elementwise"
)

// Operation names. Operands are listed outputs first, then inputs.
const (
	OpThreshold           elementwise.Op = "threshold"            // out; x, other
	OpELU                 elementwise.Op = "elu"                  // out; x
	OpELUBackward         elementwise.Op = "elu_backward"         // out; grad, b
	OpGELU                elementwise.Op = "gelu"                 // out; x
	OpGELUTanh            elementwise.Op = "gelu_tanh"            // out; x
	OpGELUBackward        elementwise.Op = "gelu_backward"        // out; dy, x
	OpGELUTanhBackward    elementwise.Op = "gelu_tanh_backward"   // out; dy, x
	OpHardSigmoid         elementwise.Op = "hardsigmoid"          // out; x
	OpHardSigmoidBackward elementwise.Op = "hardsigmoid_backward" // out; grad, x
	OpHardSwish           elementwise.Op = "hardswish"            // out; x
	OpHardSwishBackward   elementwise.Op = "hardswish_backward"   // out; grad, x
	OpHardTanhBackward    elementwise.Op = "hardtanh_backward"    // out; grad, x
	OpHardShrink          elementwise.Op = "hardshrink"           // out; x
	OpSoftShrink          elementwise.Op = "softshrink"           // out; x
	OpShrinkBackward      elementwise.Op = "shrink_backward"      // out; grad, x
	OpLeakyReLU           elementwise.Op = "leaky_relu"           // out; x
	OpLeakyReLUBackward   elementwise.Op = "leaky_relu_backward"  // out; x, grad
	OpSoftplus            elementwise.Op = "softplus"             // out; x
	OpSoftplusBackward    elementwise.Op = "softplus_backward"    // out; grad, x
	OpGLU                 elementwise.Op = "glu"                  // out; a, b
	OpGLUBackward         elementwise.Op = "glu_backward"         // out; sig, grad, a
	OpSiLU                elementwise.Op = "silu"                 // out; x
	OpSiLUBackward        elementwise.Op = "silu_backward"        // out; dy, x
	OpMish                elementwise.Op = "mish"                 // out; x
	OpMishBackward        elementwise.Op = "mish_backward"        // out; dy, x
	OpLogSigmoid          elementwise.Op = "log_sigmoid"          // out, buffer; x
	OpLogSigmoidBackward  elementwise.Op = "log_sigmoid_backward" // out; x, buffer, grad
)

// Parameter defaults.
const (
	DefaultAlpha          = 1.0
	DefaultScale          = 1.0
	DefaultInputScale     = 1.0
	DefaultNegativeSlope  = 0.01
	DefaultBeta           = 1.0
	DefaultSoftplusCutoff = 20.0
	DefaultLambda         = 0.5
	DefaultMinVal         = -1.0
	DefaultMaxVal         = 1.0
)

// floatFormulas holds one formula per floating-point element type. The half
// types reuse the float32 builder through the precision bridge.
type floatFormulas [4]elementwise.Formula

var floatDTypes = [4]hwy.DType{hwy.DTypeFloat32, hwy.DTypeFloat64, hwy.DTypeFloat16, hwy.DTypeBFloat16}

func unary[K32 algo.Unary[float32], K64 algo.Unary[float64]](b32 elementwise.Builder[K32], b64 elementwise.Builder[K64]) floatFormulas {
	return floatFormulas{
		elementwise.NewUnary[float32](b32),
		elementwise.NewUnary[float64](b64),
		elementwise.NewBridgedUnary[hwy.Float16](b32),
		elementwise.NewBridgedUnary[hwy.BFloat16](b32),
	}
}

func binary[K32 algo.Binary[float32], K64 algo.Binary[float64]](b32 elementwise.Builder[K32], b64 elementwise.Builder[K64]) floatFormulas {
	return floatFormulas{
		elementwise.NewBinary[float32](b32),
		elementwise.NewBinary[float64](b64),
		elementwise.NewBridgedBinary[hwy.Float16](b32),
		elementwise.NewBridgedBinary[hwy.BFloat16](b32),
	}
}

func ternary[K32 algo.Ternary[float32], K64 algo.Ternary[float64]](b32 elementwise.Builder[K32], b64 elementwise.Builder[K64]) floatFormulas {
	return floatFormulas{
		elementwise.NewTernary[float32](b32),
		elementwise.NewTernary[float64](b64),
		elementwise.NewBridgedTernary[hwy.Float16](b32),
		elementwise.NewBridgedTernary[hwy.BFloat16](b32),
	}
}

func split[K32 algo.Split[float32], K64 algo.Split[float64]](b32 elementwise.Builder[K32], b64 elementwise.Builder[K64]) floatFormulas {
	return floatFormulas{
		elementwise.NewSplit[float32](b32),
		elementwise.NewSplit[float64](b64),
		elementwise.NewBridgedSplit[hwy.Float16](b32),
		elementwise.NewBridgedSplit[hwy.BFloat16](b32),
	}
}

// Register adds every activation kernel to reg: threshold for all element
// types, everything else for float32, float64, Float16 and BFloat16.
func Register(reg *elementwise.Registry) error {
	if err := registerThreshold(reg); err != nil {
		return err
	}

	table := []struct {
		op elementwise.Op
		f  floatFormulas
	}{
		{OpELU, unary(buildELU[float32], buildELU[float64])},
		{OpELUBackward, binary(buildELUBackward[float32], buildELUBackward[float64])},
		{OpGELU, unary(fixed(NewGELU[float32]), fixed(NewGELU[float64]))},
		{OpGELUTanh, unary(fixed(NewGELUTanh[float32]), fixed(NewGELUTanh[float64]))},
		{OpGELUBackward, binary(fixed(NewGELUBackward[float32]), fixed(NewGELUBackward[float64]))},
		{OpGELUTanhBackward, binary(fixed(NewGELUTanhBackward[float32]), fixed(NewGELUTanhBackward[float64]))},
		{OpHardSigmoid, unary(fixed(NewHardSigmoid[float32]), fixed(NewHardSigmoid[float64]))},
		{OpHardSigmoidBackward, binary(fixed(NewHardSigmoidBackward[float32]), fixed(NewHardSigmoidBackward[float64]))},
		{OpHardSwish, unary(fixed(NewHardSwish[float32]), fixed(NewHardSwish[float64]))},
		{OpHardSwishBackward, binary(fixed(NewHardSwishBackward[float32]), fixed(NewHardSwishBackward[float64]))},
		{OpHardTanhBackward, binary(buildHardTanhBackward[float32], buildHardTanhBackward[float64])},
		{OpHardShrink, unary(withLambda(NewHardShrink[float32]), withLambda(NewHardShrink[float64]))},
		{OpSoftShrink, unary(withLambda(NewSoftShrink[float32]), withLambda(NewSoftShrink[float64]))},
		{OpShrinkBackward, binary(withLambda(NewShrinkBackward[float32]), withLambda(NewShrinkBackward[float64]))},
		{OpLeakyReLU, unary(withSlope(NewLeakyReLU[float32]), withSlope(NewLeakyReLU[float64]))},
		{OpLeakyReLUBackward, binary(withSlope(NewLeakyReLUBackward[float32]), withSlope(NewLeakyReLUBackward[float64]))},
		{OpSoftplus, unary(withSoftplus(NewSoftplus[float32]), withSoftplus(NewSoftplus[float64]))},
		{OpSoftplusBackward, binary(withSoftplus(NewSoftplusBackward[float32]), withSoftplus(NewSoftplusBackward[float64]))},
		{OpGLU, binary(fixed(func() GLU[float32] { return GLU[float32]{} }), fixed(func() GLU[float64] { return GLU[float64]{} }))},
		{OpGLUBackward, ternary(fixed(NewGLUBackward[float32]), fixed(NewGLUBackward[float64]))},
		{OpSiLU, unary(fixed(NewSiLU[float32]), fixed(NewSiLU[float64]))},
		{OpSiLUBackward, binary(fixed(NewSiLUBackward[float32]), fixed(NewSiLUBackward[float64]))},
		{OpMish, unary(fixed(func() Mish[float32] { return Mish[float32]{} }), fixed(func() Mish[float64] { return Mish[float64]{} }))},
		{OpMishBackward, binary(fixed(NewMishBackward[float32]), fixed(NewMishBackward[float64]))},
		{OpLogSigmoid, split(fixed(NewLogSigmoid[float32]), fixed(NewLogSigmoid[float64]))},
		{OpLogSigmoidBackward, ternary(fixed(NewLogSigmoidBackward[float32]), fixed(NewLogSigmoidBackward[float64]))},
	}
	for _, entry := range table {
		for i, dt := range floatDTypes {
			if err := reg.Register(entry.op, dt, entry.f[i]); err != nil {
				return err
			}
		}
	}

	reg.SetGrain(OpGELU, geluGrain)
	reg.SetGrain(OpGELUTanh, geluGrain)
	return nil
}

func registerThreshold(reg *elementwise.Registry) error {
	entries := []struct {
		dt hwy.DType
		f  elementwise.Formula
	}{
		{hwy.DTypeFloat32, elementwise.NewBinary[float32](buildThreshold[float32])},
		{hwy.DTypeFloat64, elementwise.NewBinary[float64](buildThreshold[float64])},
		{hwy.DTypeInt8, elementwise.NewBinary[int8](buildThreshold[int8])},
		{hwy.DTypeInt16, elementwise.NewBinary[int16](buildThreshold[int16])},
		{hwy.DTypeInt32, elementwise.NewBinary[int32](buildThreshold[int32])},
		{hwy.DTypeInt64, elementwise.NewBinary[int64](buildThreshold[int64])},
		{hwy.DTypeUint8, elementwise.NewBinary[uint8](buildThreshold[uint8])},
		{hwy.DTypeUint16, elementwise.NewBinary[uint16](buildThreshold[uint16])},
		{hwy.DTypeUint32, elementwise.NewBinary[uint32](buildThreshold[uint32])},
		{hwy.DTypeUint64, elementwise.NewBinary[uint64](buildThreshold[uint64])},
		{hwy.DTypeFloat16, elementwise.NewBridgedBinary[hwy.Float16](buildHalfThreshold[hwy.Float16])},
		{hwy.DTypeBFloat16, elementwise.NewBridgedBinary[hwy.BFloat16](buildHalfThreshold[hwy.BFloat16])},
	}
	for _, n := range entries {
		if err := reg.Register(OpThreshold, n.dt, n.f); err != nil {
			return err
		}
	}
	return nil
}

// Builders. Each converts its parameters to the compute type once per
// invocation; the resulting kernel is shared by every chunk.

func param[T hwy.Lanes](p elementwise.Params, name string, def float64) (T, error) {
	return elementwise.Convert[T](name, p.Get(name, def))
}

func fixed[K any](newKernel func() K) elementwise.Builder[K] {
	return func(elementwise.Params) (K, error) { return newKernel(), nil }
}

func buildThreshold[T hwy.Arithmetic](p elementwise.Params) (Threshold[T], error) {
	t, err := param[T](p, "threshold", 0)
	if err != nil {
		return Threshold[T]{}, err
	}
	v, err := param[T](p, "value", 0)
	if err != nil {
		return Threshold[T]{}, err
	}
	return NewThreshold(t, v), nil
}

// buildHalfThreshold rounds threshold and value to H before widening them,
// so the comparison happens against a value the storage type can hold.
// A finite parameter that rounds to infinity is rejected.
func buildHalfThreshold[H hwy.HalfFloats](p elementwise.Params) (Threshold[float32], error) {
	k, err := buildThreshold[float32](p)
	if err != nil {
		return k, err
	}
	round := func(name string, f float32) (float32, error) {
		r := hwy.ToFloat32(hwy.FromFloat32[H](f))
		if stdmath.IsInf(float64(r), 0) && !stdmath.IsInf(float64(f), 0) {
			return 0, errors.Wrapf(elementwise.ErrInvalidParam, "%s=%g overflows %s", name, f, hwy.DTypeOf[H]())
		}
		return r, nil
	}
	t, err := round("threshold", k.t)
	if err != nil {
		return Threshold[float32]{}, err
	}
	v, err := round("value", k.v)
	if err != nil {
		return Threshold[float32]{}, err
	}
	return NewThreshold(t, v), nil
}

func buildELU[T hwy.Floats](p elementwise.Params) (ELU[T], error) {
	alpha, scale, inputScale, err := eluParams[T](p)
	if err != nil {
		return ELU[T]{}, err
	}
	return NewELU(alpha, scale, inputScale), nil
}

func buildELUBackward[T hwy.Floats](p elementwise.Params) (ELUBackward[T], error) {
	alpha, scale, inputScale, err := eluParams[T](p)
	if err != nil {
		return ELUBackward[T]{}, err
	}
	return NewELUBackward(alpha, scale, inputScale, p.Bool("is_result", false)), nil
}

func eluParams[T hwy.Floats](p elementwise.Params) (alpha, scale, inputScale T, err error) {
	if alpha, err = param[T](p, "alpha", DefaultAlpha); err != nil {
		return
	}
	if scale, err = param[T](p, "scale", DefaultScale); err != nil {
		return
	}
	inputScale, err = param[T](p, "input_scale", DefaultInputScale)
	return
}

func buildHardTanhBackward[T hwy.Floats](p elementwise.Params) (HardTanhBackward[T], error) {
	minVal, err := param[T](p, "min_val", DefaultMinVal)
	if err != nil {
		return HardTanhBackward[T]{}, err
	}
	maxVal, err := param[T](p, "max_val", DefaultMaxVal)
	if err != nil {
		return HardTanhBackward[T]{}, err
	}
	return NewHardTanhBackward(minVal, maxVal), nil
}

func withLambda[T hwy.Floats, K any](newKernel func(lambda T) K) elementwise.Builder[K] {
	return func(p elementwise.Params) (K, error) {
		lambda, err := param[T](p, "lambda", DefaultLambda)
		if err != nil {
			var zero K
			return zero, err
		}
		return newKernel(lambda), nil
	}
}

func withSlope[T hwy.Floats, K any](newKernel func(slope T) K) elementwise.Builder[K] {
	return func(p elementwise.Params) (K, error) {
		slope, err := param[T](p, "negative_slope", DefaultNegativeSlope)
		if err != nil {
			var zero K
			return zero, err
		}
		return newKernel(slope), nil
	}
}

func withSoftplus[T hwy.Floats, K any](newKernel func(beta, threshold T) K) elementwise.Builder[K] {
	return func(p elementwise.Params) (K, error) {
		var zero K
		beta, err := param[T](p, "beta", DefaultBeta)
		if err != nil {
			return zero, err
		}
		if beta == 0 {
			return zero, errors.Wrap(elementwise.ErrInvalidParam, "softplus: beta must be non-zero")
		}
		threshold, err := param[T](p, "threshold", DefaultSoftplusCutoff)
		if err != nil {
			return zero, err
		}
		return newKernel(beta, threshold), nil
	}
}

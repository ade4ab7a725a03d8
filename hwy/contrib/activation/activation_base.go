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

// Package activation provides activation functions and their gradients as
// elementwise kernels, and registers them with an elementwise.Registry.
//
// Every kernel is a small immutable value holding its converted parameters
// and their broadcast vectors. Scalar evaluates one element; Lanes evaluates
// a whole vector with the same sequence of roundings, expressing every branch
// as compute-both-arms and select. The two agree bit for bit on all inputs.
//
// Most callers go through the engine:
//
//	err := activation.Run[float32](activation.OpLeakyReLU,
//		elementwise.Params{"negative_slope": 0.1}, out, x)
package activation

import (
	stdmath "math"

	"github.com/go-highway/ewise/hwy"
	"github.com/go-highway/ewise/hwy/contrib/math"
)

// Threshold replaces x by value where x <= threshold and passes other
// through elsewhere:
//
//	threshold(x, other) = x <= t ? v : other
//
// It is defined for every arithmetic lane type; half types use the float32
// bridge.
type Threshold[T hwy.Arithmetic] struct {
	t, v   T
	vt, vv hwy.Vec[T]
}

// NewThreshold returns the threshold kernel for threshold t and value v.
func NewThreshold[T hwy.Arithmetic](t, v T) Threshold[T] {
	return Threshold[T]{t: t, v: v, vt: hwy.Set(t), vv: hwy.Set(v)}
}

func (k Threshold[T]) Scalar(x, other T) T {
	if x <= k.t {
		return k.v
	}
	return other
}

func (k Threshold[T]) Lanes(x, other hwy.Vec[T]) hwy.Vec[T] {
	return hwy.IfThenElse(hwy.LessEqual(x, k.vt), k.vv, other)
}

// ELU computes the Exponential Linear Unit.
//
//	ELU(x) = x <= 0 ? (exp(x*inputScale) - 1) * alpha*scale : x*scale
//
// When no lane of a vector is <= 0 the exponential is skipped.
type ELU[T hwy.Floats] struct {
	negcoef, poscoef, negiptcoef    T
	vNegcoef, vPoscoef, vNegiptcoef hwy.Vec[T]
	vZero, vOne                     hwy.Vec[T]
}

// NewELU returns the ELU kernel. alpha*scale is rounded to T once.
func NewELU[T hwy.Floats](alpha, scale, inputScale T) ELU[T] {
	negcoef := alpha * scale
	return ELU[T]{
		negcoef:     negcoef,
		poscoef:     scale,
		negiptcoef:  inputScale,
		vNegcoef:    hwy.Set(negcoef),
		vPoscoef:    hwy.Set(scale),
		vNegiptcoef: hwy.Set(inputScale),
		vZero:       hwy.Zero[T](),
		vOne:        hwy.Set[T](1),
	}
}

func (k ELU[T]) Scalar(x T) T {
	if x <= 0 {
		return (math.Exp(x*k.negiptcoef) - 1) * k.negcoef
	}
	return x * k.poscoef
}

func (k ELU[T]) Lanes(x hwy.Vec[T]) hwy.Vec[T] { return k.lanes(x, true) }

func (k ELU[T]) lanes(x hwy.Vec[T], shortCircuit bool) hwy.Vec[T] {
	neg := hwy.LessEqual(x, k.vZero)
	pos := hwy.Mul(x, k.vPoscoef)
	if shortCircuit && !neg.AnyTrue() {
		return pos
	}
	expm1 := hwy.Sub(math.BaseExpVec(hwy.Mul(x, k.vNegiptcoef)), k.vOne)
	return hwy.IfThenElse(neg, hwy.Mul(expm1, k.vNegcoef), pos)
}

// GELU computes the exact Gaussian Error Linear Unit.
//
//	GELU(x) = x * 0.5 * (1 + erf(x / sqrt(2)))
type GELU[T hwy.Floats] struct {
	alpha               T
	vAlpha, vHalf, vOne hwy.Vec[T]
}

// NewGELU returns the exact GELU kernel.
func NewGELU[T hwy.Floats]() GELU[T] {
	alpha := T(sqrtHalf)
	return GELU[T]{
		alpha:  alpha,
		vAlpha: hwy.Set(alpha),
		vHalf:  hwy.Set[T](0.5),
		vOne:   hwy.Set[T](1),
	}
}

func (k GELU[T]) Scalar(x T) T {
	return x * 0.5 * (1 + math.Erf(x*k.alpha))
}

func (k GELU[T]) Lanes(x hwy.Vec[T]) hwy.Vec[T] {
	erf := math.BaseErfVec(hwy.Mul(x, k.vAlpha))
	return hwy.Mul(hwy.Mul(x, k.vHalf), hwy.Add(k.vOne, erf))
}

const (
	sqrtHalf = stdmath.Sqrt2 / 2
	// geluPDFScale is 1/sqrt(2*pi), the normal density at zero.
	geluPDFScale = (2 / stdmath.SqrtPi) * sqrtHalf * 0.5
	// geluBeta is sqrt(2/pi) and geluKappa the cubic coefficient of the tanh
	// approximation.
	geluBeta  = stdmath.Sqrt2 * (2 / stdmath.SqrtPi) * 0.5
	geluKappa = 0.044715
)

// GELUTanh computes the tanh approximation of GELU.
//
//	GELUTanh(x) = 0.5 * x * (1 + tanh(sqrt(2/pi) * (x + 0.044715*x^3)))
type GELUTanh[T hwy.Floats] struct {
	beta, kappa                T
	vBeta, vKappa, vHalf, vOne hwy.Vec[T]
}

// NewGELUTanh returns the tanh-approximated GELU kernel.
func NewGELUTanh[T hwy.Floats]() GELUTanh[T] {
	return GELUTanh[T]{
		beta:   T(geluBeta),
		kappa:  T(geluKappa),
		vBeta:  hwy.Set(T(geluBeta)),
		vKappa: hwy.Set(T(geluKappa)),
		vHalf:  hwy.Set[T](0.5),
		vOne:   hwy.Set[T](1),
	}
}

func (k GELUTanh[T]) Scalar(x T) T {
	xCube := x * x * x
	inner := k.beta * (x + T(k.kappa*xCube))
	return 0.5 * x * (1 + math.Tanh(inner))
}

func (k GELUTanh[T]) Lanes(x hwy.Vec[T]) hwy.Vec[T] {
	xCube := hwy.Mul(hwy.Mul(x, x), x)
	inner := hwy.Mul(k.vBeta, hwy.Add(x, hwy.Mul(k.vKappa, xCube)))
	return hwy.Mul(hwy.Mul(k.vHalf, x), hwy.Add(k.vOne, math.BaseTanhVec(inner)))
}

// HardSigmoid computes min(max(x+3, 0), 6) / 6.
type HardSigmoid[T hwy.Floats] struct {
	vZero, vThree, vSix hwy.Vec[T]
}

// NewHardSigmoid returns the hard sigmoid kernel.
func NewHardSigmoid[T hwy.Floats]() HardSigmoid[T] {
	return HardSigmoid[T]{vZero: hwy.Zero[T](), vThree: hwy.Set[T](3), vSix: hwy.Set[T](6)}
}

func (HardSigmoid[T]) Scalar(x T) T {
	return min(max(x+3, 0), 6) / 6
}

func (k HardSigmoid[T]) Lanes(x hwy.Vec[T]) hwy.Vec[T] {
	return hwy.Div(hwy.Min(hwy.Max(hwy.Add(x, k.vThree), k.vZero), k.vSix), k.vSix)
}

// HardSwish computes x * min(max(x+3, 0), 6) / 6.
type HardSwish[T hwy.Floats] struct {
	vZero, vThree, vSix hwy.Vec[T]
}

// NewHardSwish returns the hard swish kernel.
func NewHardSwish[T hwy.Floats]() HardSwish[T] {
	return HardSwish[T]{vZero: hwy.Zero[T](), vThree: hwy.Set[T](3), vSix: hwy.Set[T](6)}
}

func (HardSwish[T]) Scalar(x T) T {
	return x * min(max(x+3, 0), 6) / 6
}

func (k HardSwish[T]) Lanes(x hwy.Vec[T]) hwy.Vec[T] {
	clamped := hwy.Min(hwy.Max(hwy.Add(x, k.vThree), k.vZero), k.vSix)
	return hwy.Div(hwy.Mul(x, clamped), k.vSix)
}

// HardShrink zeroes the band [-lambda, lambda] and passes x through
// elsewhere. NaN passes through.
type HardShrink[T hwy.Floats] struct {
	lambda           T
	vLambda, vNegLam hwy.Vec[T]
}

// NewHardShrink returns the hard shrink kernel.
func NewHardShrink[T hwy.Floats](lambda T) HardShrink[T] {
	return HardShrink[T]{lambda: lambda, vLambda: hwy.Set(lambda), vNegLam: hwy.Set(-lambda)}
}

func (k HardShrink[T]) Scalar(x T) T {
	if x >= -k.lambda && x <= k.lambda {
		return 0
	}
	return x
}

func (k HardShrink[T]) Lanes(x hwy.Vec[T]) hwy.Vec[T] {
	band := hwy.MaskAnd(hwy.GreaterEqual(x, k.vNegLam), hwy.LessEqual(x, k.vLambda))
	return hwy.IfThenZeroElse(band, x)
}

// SoftShrink moves x toward zero by lambda and zeroes the band
// [-lambda, lambda].
//
//	SoftShrink(x) = x > l ? x-l : x < -l ? x+l : 0
type SoftShrink[T hwy.Floats] struct {
	lambda           T
	vLambda, vNegLam hwy.Vec[T]
}

// NewSoftShrink returns the soft shrink kernel.
func NewSoftShrink[T hwy.Floats](lambda T) SoftShrink[T] {
	return SoftShrink[T]{lambda: lambda, vLambda: hwy.Set(lambda), vNegLam: hwy.Set(-lambda)}
}

func (k SoftShrink[T]) Scalar(x T) T {
	switch {
	case x > k.lambda:
		return x - k.lambda
	case x < -k.lambda:
		return x + k.lambda
	}
	return 0
}

func (k SoftShrink[T]) Lanes(x hwy.Vec[T]) hwy.Vec[T] {
	below := hwy.IfThenElseZero(hwy.LessThan(x, k.vNegLam), hwy.Add(x, k.vLambda))
	return hwy.IfThenElse(hwy.GreaterThan(x, k.vLambda), hwy.Sub(x, k.vLambda), below)
}

// LeakyReLU computes x > 0 ? x : x*slope.
type LeakyReLU[T hwy.Floats] struct {
	slope         T
	vSlope, vZero hwy.Vec[T]
}

// NewLeakyReLU returns the leaky ReLU kernel with the given negative slope.
func NewLeakyReLU[T hwy.Floats](slope T) LeakyReLU[T] {
	return LeakyReLU[T]{slope: slope, vSlope: hwy.Set(slope), vZero: hwy.Zero[T]()}
}

func (k LeakyReLU[T]) Scalar(x T) T {
	if x > 0 {
		return x
	}
	return x * k.slope
}

func (k LeakyReLU[T]) Lanes(x hwy.Vec[T]) hwy.Vec[T] {
	return hwy.IfThenElse(hwy.GreaterThan(x, k.vZero), x, hwy.Mul(x, k.vSlope))
}

// Softplus computes log(1 + exp(x*beta)) / beta, reverting to the identity
// where x*beta > threshold to avoid overflow.
type Softplus[T hwy.Floats] struct {
	beta, threshold   T
	vBeta, vThreshold hwy.Vec[T]
}

// NewSoftplus returns the softplus kernel. beta must not be zero.
func NewSoftplus[T hwy.Floats](beta, threshold T) Softplus[T] {
	return Softplus[T]{beta: beta, threshold: threshold, vBeta: hwy.Set(beta), vThreshold: hwy.Set(threshold)}
}

func (k Softplus[T]) Scalar(x T) T {
	xb := x * k.beta
	if xb > k.threshold {
		return x
	}
	return math.Softplus(xb) / k.beta
}

func (k Softplus[T]) Lanes(x hwy.Vec[T]) hwy.Vec[T] {
	xb := hwy.Mul(x, k.vBeta)
	return hwy.IfThenElse(hwy.GreaterThan(xb, k.vThreshold), x, hwy.Div(math.BaseSoftplusVec(xb), k.vBeta))
}

// GLU computes the gated linear unit a * sigmoid(b).
type GLU[T hwy.Floats] struct{}

func (GLU[T]) Scalar(a, b T) T {
	return a * math.Sigmoid(b)
}

func (GLU[T]) Lanes(a, b hwy.Vec[T]) hwy.Vec[T] {
	return hwy.Mul(a, math.BaseSigmoidVec(b))
}

// SiLU computes x / (1 + exp(-x)).
type SiLU[T hwy.Floats] struct {
	vOne hwy.Vec[T]
}

// NewSiLU returns the SiLU (swish) kernel.
func NewSiLU[T hwy.Floats]() SiLU[T] { return SiLU[T]{vOne: hwy.Set[T](1)} }

func (SiLU[T]) Scalar(x T) T {
	return x / (1 + math.Exp(-x))
}

func (k SiLU[T]) Lanes(x hwy.Vec[T]) hwy.Vec[T] {
	return hwy.Div(x, hwy.Add(k.vOne, math.BaseExpVec(hwy.Neg(x))))
}

// Mish computes x * tanh(log(1 + exp(x))).
type Mish[T hwy.Floats] struct{}

func (Mish[T]) Scalar(x T) T {
	return x * math.Tanh(math.Softplus(x))
}

func (Mish[T]) Lanes(x hwy.Vec[T]) hwy.Vec[T] {
	return hwy.Mul(x, math.BaseTanhVec(math.BaseSoftplusVec(x)))
}

// LogSigmoid computes log(sigmoid(x)) in the stable form
//
//	buffer = exp(-|x|)
//	out    = min(x, 0) - log1p(buffer)
//
// and returns buffer as the second output for LogSigmoidBackward.
type LogSigmoid[T hwy.Floats] struct {
	vZero hwy.Vec[T]
}

// NewLogSigmoid returns the log-sigmoid kernel.
func NewLogSigmoid[T hwy.Floats]() LogSigmoid[T] { return LogSigmoid[T]{vZero: hwy.Zero[T]()} }

func (LogSigmoid[T]) Scalar(x T) (out, buffer T) {
	abs := x
	if abs < 0 {
		abs = -abs
	}
	buffer = math.Exp(-abs)
	return min(x, 0) - math.Log1p(buffer), buffer
}

func (k LogSigmoid[T]) Lanes(x hwy.Vec[T]) (out, buffer hwy.Vec[T]) {
	buffer = math.BaseExpVec(hwy.Neg(hwy.Abs(x)))
	out = hwy.Sub(hwy.Min(x, k.vZero), math.BaseLog1pVec(buffer))
	return out, buffer
}

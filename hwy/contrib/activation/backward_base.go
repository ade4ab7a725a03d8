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
	"github.com/go-highway/ewise/hwy"
	"github.com/go-highway/ewise/hwy/contrib/math"
)

// Gradient kernels. Operand order follows the forward op's autograd
// signature and is not symmetric: see each type for which input is which.

// ELUBackward computes the ELU gradient from grad and b, where b is either
// the forward output (isResult) or the forward input.
//
//	isResult:  b <= 0 ? grad*inputScale*(b + alpha*scale)              : grad*scale
//	otherwise: b <= 0 ? grad*inputScale*alpha*scale*exp(b*inputScale) : grad*scale
type ELUBackward[T hwy.Floats] struct {
	negcoef, poscoef, negiptcoef    T
	isResult                        bool
	vNegcoef, vPoscoef, vNegiptcoef hwy.Vec[T]
	vZero                           hwy.Vec[T]
}

// NewELUBackward returns the ELU gradient kernel.
func NewELUBackward[T hwy.Floats](alpha, scale, inputScale T, isResult bool) ELUBackward[T] {
	negcoef := alpha * scale
	return ELUBackward[T]{
		negcoef:     negcoef,
		poscoef:     scale,
		negiptcoef:  inputScale,
		isResult:    isResult,
		vNegcoef:    hwy.Set(negcoef),
		vPoscoef:    hwy.Set(scale),
		vNegiptcoef: hwy.Set(inputScale),
		vZero:       hwy.Zero[T](),
	}
}

func (k ELUBackward[T]) Scalar(grad, b T) T {
	if b <= 0 {
		if k.isResult {
			return grad * k.negiptcoef * (b + k.negcoef)
		}
		return grad * k.negiptcoef * k.negcoef * math.Exp(b*k.negiptcoef)
	}
	return grad * k.poscoef
}

func (k ELUBackward[T]) Lanes(grad, b hwy.Vec[T]) hwy.Vec[T] { return k.lanes(grad, b, true) }

func (k ELUBackward[T]) lanes(grad, b hwy.Vec[T], shortCircuit bool) hwy.Vec[T] {
	pos := hwy.Mul(grad, k.vPoscoef)
	nonPositive := hwy.LessEqual(b, k.vZero)
	if shortCircuit && !nonPositive.AnyTrue() {
		return pos
	}
	var neg hwy.Vec[T]
	if k.isResult {
		neg = hwy.Mul(hwy.Mul(grad, k.vNegiptcoef), hwy.Add(b, k.vNegcoef))
	} else {
		scaled := hwy.Mul(hwy.Mul(grad, k.vNegiptcoef), k.vNegcoef)
		neg = hwy.Mul(scaled, math.BaseExpVec(hwy.Mul(b, k.vNegiptcoef)))
	}
	return hwy.IfThenElse(nonPositive, neg, pos)
}

// GELUBackward computes dy * d/dx GELU(x) for the exact GELU:
//
//	dy * (cdf(x) + x*pdf(x))
type GELUBackward[T hwy.Floats] struct {
	alpha, beta                            T
	vAlpha, vBeta, vHalf, vMinusHalf, vOne hwy.Vec[T]
}

// NewGELUBackward returns the exact GELU gradient kernel.
func NewGELUBackward[T hwy.Floats]() GELUBackward[T] {
	alpha := T(sqrtHalf)
	beta := T(geluPDFScale)
	return GELUBackward[T]{
		alpha:      alpha,
		beta:       beta,
		vAlpha:     hwy.Set(alpha),
		vBeta:      hwy.Set(beta),
		vHalf:      hwy.Set[T](0.5),
		vMinusHalf: hwy.Set[T](-0.5),
		vOne:       hwy.Set[T](1),
	}
}

func (k GELUBackward[T]) Scalar(dy, x T) T {
	cdf := T(0.5 * (1 + math.Erf(x*k.alpha)))
	pdf := k.beta * math.Exp(x*x*-0.5)
	return dy * (cdf + T(x*pdf))
}

func (k GELUBackward[T]) Lanes(dy, x hwy.Vec[T]) hwy.Vec[T] {
	cdf := hwy.Mul(k.vHalf, hwy.Add(k.vOne, math.BaseErfVec(hwy.Mul(x, k.vAlpha))))
	pdf := hwy.Mul(k.vBeta, math.BaseExpVec(hwy.Mul(hwy.Mul(x, x), k.vMinusHalf)))
	return hwy.Mul(dy, hwy.Add(cdf, hwy.Mul(x, pdf)))
}

// GELUTanhBackward computes dy * d/dx GELUTanh(x).
type GELUTanhBackward[T hwy.Floats] struct {
	beta, kappa, threeKappa                 T
	vBeta, vKappa, vThreeKappa, vHalf, vOne hwy.Vec[T]
}

// NewGELUTanhBackward returns the tanh-approximated GELU gradient kernel.
func NewGELUTanhBackward[T hwy.Floats]() GELUTanhBackward[T] {
	beta, kappa := T(geluBeta), T(geluKappa)
	threeKappa := 3 * kappa
	return GELUTanhBackward[T]{
		beta:        beta,
		kappa:       kappa,
		threeKappa:  threeKappa,
		vBeta:       hwy.Set(beta),
		vKappa:      hwy.Set(kappa),
		vThreeKappa: hwy.Set(threeKappa),
		vHalf:       hwy.Set[T](0.5),
		vOne:        hwy.Set[T](1),
	}
}

func (k GELUTanhBackward[T]) Scalar(dy, x T) T {
	xSq := x * x
	xCube := xSq * x
	inner := k.beta * (x + T(k.kappa*xCube))
	tanh := math.Tanh(inner)

	left := 0.5 * x
	right := 1 + tanh
	leftDerivative := T(0.5 * right)
	tanhDerivative := 1 - T(tanh*tanh)
	innerDerivative := k.beta * (1 + T(k.threeKappa*xSq))
	rightDerivative := T(left * tanhDerivative * innerDerivative)
	return dy * (leftDerivative + rightDerivative)
}

func (k GELUTanhBackward[T]) Lanes(dy, x hwy.Vec[T]) hwy.Vec[T] {
	xSq := hwy.Mul(x, x)
	xCube := hwy.Mul(xSq, x)
	inner := hwy.Mul(k.vBeta, hwy.Add(x, hwy.Mul(k.vKappa, xCube)))
	tanh := math.BaseTanhVec(inner)

	left := hwy.Mul(k.vHalf, x)
	right := hwy.Add(k.vOne, tanh)
	leftDerivative := hwy.Mul(k.vHalf, right)
	tanhDerivative := hwy.Sub(k.vOne, hwy.Mul(tanh, tanh))
	innerDerivative := hwy.Mul(k.vBeta, hwy.Add(k.vOne, hwy.Mul(k.vThreeKappa, xSq)))
	rightDerivative := hwy.Mul(hwy.Mul(left, tanhDerivative), innerDerivative)
	return hwy.Mul(dy, hwy.Add(leftDerivative, rightDerivative))
}

// HardSigmoidBackward computes -3 < x < 3 ? grad/6 : 0, with the division
// done as a multiplication by 1/6 rounded to T.
type HardSigmoidBackward[T hwy.Floats] struct {
	oneSixth                     T
	vOneSixth, vThree, vNegThree hwy.Vec[T]
}

// NewHardSigmoidBackward returns the hard sigmoid gradient kernel.
func NewHardSigmoidBackward[T hwy.Floats]() HardSigmoidBackward[T] {
	oneSixth := T(1) / 6
	return HardSigmoidBackward[T]{
		oneSixth:  oneSixth,
		vOneSixth: hwy.Set(oneSixth),
		vThree:    hwy.Set[T](3),
		vNegThree: hwy.Set[T](-3),
	}
}

func (k HardSigmoidBackward[T]) Scalar(grad, x T) T {
	if x > -3 && x < 3 {
		return grad * k.oneSixth
	}
	return 0
}

func (k HardSigmoidBackward[T]) Lanes(grad, x hwy.Vec[T]) hwy.Vec[T] {
	linear := hwy.MaskAnd(hwy.GreaterThan(x, k.vNegThree), hwy.LessThan(x, k.vThree))
	return hwy.IfThenElseZero(linear, hwy.Mul(grad, k.vOneSixth))
}

// HardSwishBackward computes the hard swish gradient in three regimes:
//
//	x < -3:       0
//	-3 <= x <= 3: grad * (x/3 + 0.5)
//	x > 3:        grad
//
// A NaN x falls in the last regime.
type HardSwishBackward[T hwy.Floats] struct {
	vThree, vNegThree, vHalf hwy.Vec[T]
}

// NewHardSwishBackward returns the hard swish gradient kernel.
func NewHardSwishBackward[T hwy.Floats]() HardSwishBackward[T] {
	return HardSwishBackward[T]{vThree: hwy.Set[T](3), vNegThree: hwy.Set[T](-3), vHalf: hwy.Set[T](0.5)}
}

func (HardSwishBackward[T]) Scalar(grad, x T) T {
	switch {
	case x < -3:
		return 0
	case x <= 3:
		return grad * (x/3 + 0.5)
	}
	return grad
}

func (k HardSwishBackward[T]) Lanes(grad, x hwy.Vec[T]) hwy.Vec[T] {
	ramp := hwy.Mul(grad, hwy.Add(hwy.Div(x, k.vThree), k.vHalf))
	upper := hwy.IfThenElse(hwy.LessEqual(x, k.vThree), ramp, grad)
	return hwy.IfThenZeroElse(hwy.LessThan(x, k.vNegThree), upper)
}

// HardTanhBackward computes x <= min || x >= max ? 0 : grad.
type HardTanhBackward[T hwy.Floats] struct {
	minVal, maxVal T
	vMin, vMax     hwy.Vec[T]
}

// NewHardTanhBackward returns the hardtanh gradient kernel for the clamp
// range [minVal, maxVal].
func NewHardTanhBackward[T hwy.Floats](minVal, maxVal T) HardTanhBackward[T] {
	return HardTanhBackward[T]{minVal: minVal, maxVal: maxVal, vMin: hwy.Set(minVal), vMax: hwy.Set(maxVal)}
}

func (k HardTanhBackward[T]) Scalar(grad, x T) T {
	if x <= k.minVal || x >= k.maxVal {
		return 0
	}
	return grad
}

func (k HardTanhBackward[T]) Lanes(grad, x hwy.Vec[T]) hwy.Vec[T] {
	clamped := hwy.MaskOr(hwy.LessEqual(x, k.vMin), hwy.GreaterEqual(x, k.vMax))
	return hwy.IfThenZeroElse(clamped, grad)
}

// ShrinkBackward is the gradient shared by HardShrink and SoftShrink:
// zero inside [-lambda, lambda], grad elsewhere.
type ShrinkBackward[T hwy.Floats] struct {
	lambda           T
	vLambda, vNegLam hwy.Vec[T]
}

// NewShrinkBackward returns the shrink gradient kernel.
func NewShrinkBackward[T hwy.Floats](lambda T) ShrinkBackward[T] {
	return ShrinkBackward[T]{lambda: lambda, vLambda: hwy.Set(lambda), vNegLam: hwy.Set(-lambda)}
}

func (k ShrinkBackward[T]) Scalar(grad, x T) T {
	if x >= -k.lambda && x <= k.lambda {
		return 0
	}
	return grad
}

func (k ShrinkBackward[T]) Lanes(grad, x hwy.Vec[T]) hwy.Vec[T] {
	band := hwy.MaskAnd(hwy.GreaterEqual(x, k.vNegLam), hwy.LessEqual(x, k.vLambda))
	return hwy.IfThenZeroElse(band, grad)
}

// LeakyReLUBackward computes x > 0 ? grad : grad*slope. Note the operand
// order: the forward input comes first.
type LeakyReLUBackward[T hwy.Floats] struct {
	slope         T
	vSlope, vZero hwy.Vec[T]
}

// NewLeakyReLUBackward returns the leaky ReLU gradient kernel.
func NewLeakyReLUBackward[T hwy.Floats](slope T) LeakyReLUBackward[T] {
	return LeakyReLUBackward[T]{slope: slope, vSlope: hwy.Set(slope), vZero: hwy.Zero[T]()}
}

func (k LeakyReLUBackward[T]) Scalar(x, grad T) T {
	if x > 0 {
		return grad
	}
	return grad * k.slope
}

func (k LeakyReLUBackward[T]) Lanes(x, grad hwy.Vec[T]) hwy.Vec[T] {
	return hwy.IfThenElse(hwy.GreaterThan(x, k.vZero), grad, hwy.Mul(grad, k.vSlope))
}

// SoftplusBackward computes, with z = exp(x*beta),
//
//	x*beta > threshold ? grad : grad*z/(z+1)
type SoftplusBackward[T hwy.Floats] struct {
	beta, threshold         T
	vBeta, vThreshold, vOne hwy.Vec[T]
}

// NewSoftplusBackward returns the softplus gradient kernel.
func NewSoftplusBackward[T hwy.Floats](beta, threshold T) SoftplusBackward[T] {
	return SoftplusBackward[T]{
		beta:       beta,
		threshold:  threshold,
		vBeta:      hwy.Set(beta),
		vThreshold: hwy.Set(threshold),
		vOne:       hwy.Set[T](1),
	}
}

func (k SoftplusBackward[T]) Scalar(grad, x T) T {
	xb := x * k.beta
	if xb > k.threshold {
		return grad
	}
	z := math.Exp(xb)
	return grad * z / (z + 1)
}

func (k SoftplusBackward[T]) Lanes(grad, x hwy.Vec[T]) hwy.Vec[T] {
	xb := hwy.Mul(x, k.vBeta)
	z := math.BaseExpVec(xb)
	smooth := hwy.Div(hwy.Mul(grad, z), hwy.Add(z, k.vOne))
	return hwy.IfThenElse(hwy.GreaterThan(xb, k.vThreshold), grad, smooth)
}

// GLUBackward computes (1-sig)*sig*grad*a, where sig is the sigmoid of the
// gate saved by the forward pass. Operands are (sig, grad, a) in that order.
type GLUBackward[T hwy.Floats] struct {
	vOne hwy.Vec[T]
}

// NewGLUBackward returns the GLU gradient kernel.
func NewGLUBackward[T hwy.Floats]() GLUBackward[T] { return GLUBackward[T]{vOne: hwy.Set[T](1)} }

func (GLUBackward[T]) Scalar(sig, grad, a T) T {
	return (1 - sig) * sig * grad * a
}

func (k GLUBackward[T]) Lanes(sig, grad, a hwy.Vec[T]) hwy.Vec[T] {
	return hwy.Mul(hwy.Mul(hwy.Mul(hwy.Sub(k.vOne, sig), sig), grad), a)
}

// SiLUBackward computes dy * sig * (1 + x*(1-sig)) with sig = sigmoid(x).
type SiLUBackward[T hwy.Floats] struct {
	vOne hwy.Vec[T]
}

// NewSiLUBackward returns the SiLU gradient kernel.
func NewSiLUBackward[T hwy.Floats]() SiLUBackward[T] { return SiLUBackward[T]{vOne: hwy.Set[T](1)} }

func (SiLUBackward[T]) Scalar(dy, x T) T {
	sig := math.Sigmoid(x)
	return dy * sig * (1 + T(x*(1-sig)))
}

func (k SiLUBackward[T]) Lanes(dy, x hwy.Vec[T]) hwy.Vec[T] {
	sig := math.BaseSigmoidVec(x)
	return hwy.Mul(hwy.Mul(dy, sig), hwy.Add(k.vOne, hwy.Mul(x, hwy.Sub(k.vOne, sig))))
}

// MishBackward computes dy * (t + x*sig*(1 - t*t)) with sig = sigmoid(x)
// and t = tanh(softplus(x)).
type MishBackward[T hwy.Floats] struct {
	vOne hwy.Vec[T]
}

// NewMishBackward returns the Mish gradient kernel.
func NewMishBackward[T hwy.Floats]() MishBackward[T] { return MishBackward[T]{vOne: hwy.Set[T](1)} }

func (MishBackward[T]) Scalar(dy, x T) T {
	sig := math.Sigmoid(x)
	t := math.Tanh(math.Softplus(x))
	return dy * (t + T(x*sig*(1-T(t*t))))
}

func (k MishBackward[T]) Lanes(dy, x hwy.Vec[T]) hwy.Vec[T] {
	sig := math.BaseSigmoidVec(x)
	t := math.BaseTanhVec(math.BaseSoftplusVec(x))
	slope := hwy.Mul(hwy.Mul(x, sig), hwy.Sub(k.vOne, hwy.Mul(t, t)))
	return hwy.Mul(dy, hwy.Add(t, slope))
}

// LogSigmoidBackward computes the log-sigmoid gradient from the forward
// input x, the buffer saved by LogSigmoid and grad:
//
//	x < 0:  (1 - b/(1+b)) * grad
//	x >= 0: (b/(1+b)) * grad
type LogSigmoidBackward[T hwy.Floats] struct {
	vZero, vOne, vNegOne hwy.Vec[T]
}

// NewLogSigmoidBackward returns the log-sigmoid gradient kernel.
func NewLogSigmoidBackward[T hwy.Floats]() LogSigmoidBackward[T] {
	return LogSigmoidBackward[T]{vZero: hwy.Zero[T](), vOne: hwy.Set[T](1), vNegOne: hwy.Set[T](-1)}
}

func (LogSigmoidBackward[T]) Scalar(x, buffer, grad T) T {
	maxDeriv, sign := T(0), T(-1)
	if x < 0 {
		maxDeriv, sign = 1, 1
	}
	return (maxDeriv - T(sign*(buffer/(1+buffer)))) * grad
}

func (k LogSigmoidBackward[T]) Lanes(x, buffer, grad hwy.Vec[T]) hwy.Vec[T] {
	negative := hwy.LessThan(x, k.vZero)
	maxDeriv := hwy.IfThenElseZero(negative, k.vOne)
	sign := hwy.IfThenElse(negative, k.vOne, k.vNegOne)
	ratio := hwy.Div(buffer, hwy.Add(k.vOne, buffer))
	return hwy.Mul(hwy.Sub(maxDeriv, hwy.Mul(sign, ratio)), grad)
}

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

package math

import (
	stdmath "math"

	"github.com/go-highway/ewise/hwy"
)

// Exp returns e**x rounded to T.
func Exp[T hwy.Floats](x T) T {
	return T(stdmath.Exp(float64(x)))
}

// Log1p returns ln(1+x) rounded to T.
func Log1p[T hwy.Floats](x T) T {
	return T(stdmath.Log1p(float64(x)))
}

// Tanh returns the hyperbolic tangent of x rounded to T.
func Tanh[T hwy.Floats](x T) T {
	return T(stdmath.Tanh(float64(x)))
}

// Erf returns the error function of x rounded to T.
func Erf[T hwy.Floats](x T) T {
	return T(stdmath.Erf(float64(x)))
}

// Sigmoid returns 1 / (1 + e**-x), with every intermediate rounded to T.
func Sigmoid[T hwy.Floats](x T) T {
	return 1 / (1 + Exp(-x))
}

// Softplus returns ln(1 + e**x), with e**x rounded to T before the log.
func Softplus[T hwy.Floats](x T) T {
	return Log1p(Exp(x))
}

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

// Package math provides the transcendental building blocks of the activation
// kernels in two forms that agree bit for bit: scalar functions (Exp, Log1p,
// Tanh, Erf, Sigmoid) and their lane counterparts (BaseExpVec, ...).
//
// A kernel's lane formula and scalar formula must produce identical results
// for every input, so the lane forms are defined as the scalar function
// applied per lane rather than as an independent polynomial approximation.
// Both round the float64 result of the standard library once to T.
//
// # Example Usage
//
//	import "github.com/go-highway/ewise/hwy/contrib/math"
//
//	// x * sigmoid(x), lane form
//	func siluVec(x hwy.Vec[float32]) hwy.Vec[float32] {
//	    return hwy.Mul(x, math.BaseSigmoidVec(x))
//	}
package math

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

import "github.com/go-highway/ewise/hwy"

// The Base*Vec functions are the lane forms of the scalar functions in
// scalar.go. They are register-to-register so formulas can compose them, for
// example BaseSigmoidVec(hwy.Neg(x)) inside a GLU kernel.

// BaseExpVec computes e^x for every lane.
func BaseExpVec[T hwy.Floats](x hwy.Vec[T]) hwy.Vec[T] {
	return hwy.Map(x, Exp[T])
}

// BaseLog1pVec computes ln(1+x) for every lane.
func BaseLog1pVec[T hwy.Floats](x hwy.Vec[T]) hwy.Vec[T] {
	return hwy.Map(x, Log1p[T])
}

// BaseTanhVec computes tanh(x) for every lane.
func BaseTanhVec[T hwy.Floats](x hwy.Vec[T]) hwy.Vec[T] {
	return hwy.Map(x, Tanh[T])
}

// BaseErfVec computes erf(x) for every lane.
func BaseErfVec[T hwy.Floats](x hwy.Vec[T]) hwy.Vec[T] {
	return hwy.Map(x, Erf[T])
}

// BaseSigmoidVec computes 1/(1+e^-x) for every lane. It is built from lane
// arithmetic around BaseExpVec, in the same order as Sigmoid.
func BaseSigmoidVec[T hwy.Floats](x hwy.Vec[T]) hwy.Vec[T] {
	one := hwy.Set[T](1)
	return hwy.Div(one, hwy.Add(one, BaseExpVec(hwy.Neg(x))))
}

// BaseSoftplusVec computes ln(1+e^x) for every lane.
func BaseSoftplusVec[T hwy.Floats](x hwy.Vec[T]) hwy.Vec[T] {
	return BaseLog1pVec(BaseExpVec(x))
}

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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-highway/ewise/hwy"
)

func specialValues[T hwy.Floats]() []T {
	eps := T(stdmath.SmallestNonzeroFloat32)
	return []T{
		T(stdmath.Inf(-1)), -1000, -20, -3, -1, -0.5, -eps, 0, T(stdmath.Copysign(0, -1)),
		eps, 0.5, 1, 3, 20, 1000, T(stdmath.Inf(1)), T(stdmath.NaN()),
	}
}

func sameBits[T hwy.Floats](a, b T) bool {
	if a != a || b != b {
		return a != a && b != b
	}
	return a == b && stdmath.Signbit(float64(a)) == stdmath.Signbit(float64(b))
}

func testLanesMatchScalar[T hwy.Floats](t *testing.T) {
	funcs := []struct {
		name   string
		scalar func(T) T
		lanes  func(hwy.Vec[T]) hwy.Vec[T]
	}{
		{"Exp", Exp[T], BaseExpVec[T]},
		{"Log1p", Log1p[T], BaseLog1pVec[T]},
		{"Tanh", Tanh[T], BaseTanhVec[T]},
		{"Erf", Erf[T], BaseErfVec[T]},
		{"Sigmoid", Sigmoid[T], BaseSigmoidVec[T]},
		{"Softplus", Softplus[T], BaseSoftplusVec[T]},
	}
	values := specialValues[T]()
	lanes := hwy.MaxLanes[T]()
	for _, fn := range funcs {
		t.Run(fn.name, func(t *testing.T) {
			for start := 0; start < len(values); start += lanes {
				block := make([]T, lanes)
				copy(block, values[start:])
				got := fn.lanes(hwy.Load(block)).Data()
				for i, x := range block {
					want := fn.scalar(x)
					assert.True(t, sameBits(got[i], want), "%s(%v): lanes %v, scalar %v", fn.name, x, got[i], want)
				}
			}
		})
	}
}

func TestLanesMatchScalarFloat32(t *testing.T) { testLanesMatchScalar[float32](t) }
func TestLanesMatchScalarFloat64(t *testing.T) { testLanesMatchScalar[float64](t) }

func TestScalarValues(t *testing.T) {
	assert.Equal(t, float32(1), Exp[float32](0))
	assert.InDelta(t, stdmath.E, Exp(1.0), 1e-15)
	assert.Equal(t, 0.5, Sigmoid(0.0))
	assert.Equal(t, float32(1), Sigmoid[float32](1000))
	assert.Equal(t, float32(0), Sigmoid[float32](-1000))
	assert.InDelta(t, stdmath.Log(2), Softplus(0.0), 1e-15)
	assert.Equal(t, 1.0, Tanh(stdmath.Inf(1)))
	assert.Equal(t, -1.0, Erf(stdmath.Inf(-1)))

	inf := Exp(float32(1000))
	require.True(t, stdmath.IsInf(float64(inf), 1), "Exp(1000) in float32 should overflow, got %v", inf)
}

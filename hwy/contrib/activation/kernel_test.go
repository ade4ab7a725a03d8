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
	"fmt"
	stdmath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-highway/ewise/hwy"
	"github.com/go-highway/ewise/hwy/contrib/elementwise"
	"github.com/go-highway/ewise/internal/conformance"
)

// sweepParams are the parameter sets each op is checked with, besides the
// defaults. Shrink and hardtanh bounds sit on sweep values to exercise the
// inclusive comparisons.
var sweepParams = map[elementwise.Op][]elementwise.Params{
	OpThreshold:         {{"threshold": 0.5, "value": 2}, {"threshold": 3, "value": 99}},
	OpELU:               {{"alpha": 1.5, "scale": 1.0507, "input_scale": 0.5}},
	OpELUBackward:       {{"is_result": 1}, {"alpha": 1.67, "scale": 1.05, "input_scale": 2, "is_result": 0}},
	OpHardTanhBackward:  {{"min_val": -3, "max_val": 3}},
	OpHardShrink:        {{"lambda": 3}},
	OpSoftShrink:        {{"lambda": 3}},
	OpShrinkBackward:    {{"lambda": 3}},
	OpLeakyReLU:         {{"negative_slope": 0.2}},
	OpLeakyReLUBackward: {{"negative_slope": -1}},
	OpSoftplus:          {{"beta": 2, "threshold": 1}},
	OpSoftplusBackward:  {{"beta": 0.5, "threshold": 1}},
}

func gen[T any](n int, f func(i int) T) []T {
	s := make([]T, n)
	for i := range s {
		s[i] = f(i)
	}
	return s
}

func newTestRegistry(t testing.TB) *elementwise.Registry {
	t.Helper()
	reg := elementwise.NewRegistry()
	require.NoError(t, Register(reg))
	return reg
}

func TestLanesMatchScalar(t *testing.T) {
	e := elementwise.NewEngine(newTestRegistry(t))
	reg := e.Registry()

	for _, op := range reg.Ops() {
		params := append([]elementwise.Params{nil}, sweepParams[op]...)
		for _, dt := range reg.DTypes(op) {
			for _, n := range conformance.Lengths(dt) {
				for pi, p := range params {
					t.Run(fmt.Sprintf("%s/%s/n=%d/params=%d", op, dt, n, pi), func(t *testing.T) {
						m, err := conformance.Check(e, op, dt, p, n)
						require.NoError(t, err)
						if m != nil {
							t.Error(m)
						}
					})
				}
			}
		}
	}
}

func TestRegisteredKernels(t *testing.T) {
	reg := newTestRegistry(t)
	assert.Len(t, reg.Ops(), 27)
	assert.Len(t, reg.DTypes(OpThreshold), 12)
	for _, op := range reg.Ops() {
		if op == OpThreshold {
			continue
		}
		assert.Equal(t, floatDTypes[:], reg.DTypes(op), "%s", op)
	}
	assert.ErrorIs(t, Register(reg), elementwise.ErrDuplicateKernel)

	_, ok := reg.Grain(OpGELU)
	assert.True(t, ok)
	_, ok = reg.Grain(OpSiLU)
	assert.False(t, ok)
}

func TestLiteralScenarios(t *testing.T) {
	run := func(op elementwise.Op, p elementwise.Params, inputs ...[]float32) []float32 {
		t.Helper()
		out := make([]float32, len(inputs[0]))
		require.NoError(t, Run(op, p, out, inputs...))
		return out
	}

	assert.Equal(t, []float32{0, 0.5, 1}, run(OpHardSigmoid, nil, []float32{-5, 0, 5}))
	assert.Equal(t, []float32{-0.2, 3}, run(OpLeakyReLU, elementwise.Params{"negative_slope": 0.1}, []float32{-2, 3}))
	assert.Equal(t, []float32{99, 7},
		run(OpThreshold, elementwise.Params{"threshold": 0, "value": 99}, []float32{-1, 1}, []float32{7, 7}))
	assert.InDelta(t, stdmath.Exp(-1)-1, run(OpELU, nil, []float32{-1})[0], 1e-6)
	assert.InDelta(t, -0.6321, run(OpELU, elementwise.Params{"alpha": 1, "scale": 1, "input_scale": 1}, []float32{-1})[0], 1e-4)
	assert.Equal(t, []float32{3, -3, 0}, run(OpSoftShrink, elementwise.Params{"lambda": 2}, []float32{5, -5, 1}))
	assert.Equal(t, []float32{5, -5, 0, 0}, run(OpHardShrink, elementwise.Params{"lambda": 2}, []float32{5, -5, 2, -2}))
}

func TestSiLUBackwardMatchesFiniteDifference(t *testing.T) {
	const h = 1e-4
	x := []float64{1 - h, 1, 1 + h}
	y := make([]float64, 3)
	require.NoError(t, Run(OpSiLU, nil, y, x))
	numeric := (y[2] - y[0]) / (2 * h)

	grad := make([]float64, 1)
	require.NoError(t, Run(OpSiLUBackward, nil, grad, []float64{1}, []float64{1}))
	assert.InDelta(t, numeric, grad[0], 1e-4)
}

func TestBackwardMatchesFiniteDifference(t *testing.T) {
	const h = 1e-5
	pairs := []struct {
		forward, backward elementwise.Op
		p                 elementwise.Params
	}{
		{OpGELU, OpGELUBackward, nil},
		{OpGELUTanh, OpGELUTanhBackward, nil},
		{OpMish, OpMishBackward, nil},
		{OpSoftplus, OpSoftplusBackward, elementwise.Params{"beta": 1.5}},
		{OpHardSwish, OpHardSwishBackward, nil},
		{OpELU, OpELUBackward, elementwise.Params{"alpha": 1.3, "input_scale": 0.7}},
	}
	points := []float64{-2.2, -0.7, 0.4, 1.9}
	for _, pair := range pairs {
		t.Run(string(pair.forward), func(t *testing.T) {
			for _, x := range points {
				y := make([]float64, 2)
				require.NoError(t, Run(pair.forward, pair.p, y, []float64{x - h, x + h}))
				numeric := (y[1] - y[0]) / (2 * h)

				grad := make([]float64, 1)
				require.NoError(t, Run(pair.backward, pair.p, grad, []float64{1}, []float64{x}))
				assert.InDelta(t, numeric, grad[0], 1e-5, "x=%g", x)
			}
		})
	}
}

func TestELUBackwardFromResult(t *testing.T) {
	p := elementwise.Params{"alpha": 1.3, "scale": 1.1, "input_scale": 0.7}
	x := []float64{-2, -0.5, 0, 1.5}
	y := make([]float64, len(x))
	require.NoError(t, Run(OpELU, p, y, x))

	fromInput := make([]float64, len(x))
	fromResult := make([]float64, len(x))
	grad := []float64{1, 2, 3, 4}
	require.NoError(t, Run(OpELUBackward, p, fromInput, grad, x))
	pr := elementwise.Params{"alpha": 1.3, "scale": 1.1, "input_scale": 0.7, "is_result": 1}
	require.NoError(t, Run(OpELUBackward, pr, fromResult, grad, y))
	assert.InDeltaSlice(t, fromInput, fromResult, 1e-12)
}

func TestGLUOperandOrder(t *testing.T) {
	out := make([]float64, 1)
	require.NoError(t, Run(OpGLU, nil, out, []float64{3}, []float64{0}))
	assert.Equal(t, 1.5, out[0])

	require.NoError(t, Run(OpGLUBackward, nil, out, []float64{0.25}, []float64{2}, []float64{3}))
	assert.Equal(t, 1.125, out[0])
	require.NoError(t, Run(OpGLUBackward, nil, out, []float64{3}, []float64{2}, []float64{0.25}))
	assert.Equal(t, -3.0, out[0])

	require.NoError(t, Run(OpLeakyReLUBackward, elementwise.Params{"negative_slope": 0.5}, out, []float64{-1}, []float64{8}))
	assert.Equal(t, 4.0, out[0])
}

func TestLogSigmoid(t *testing.T) {
	x := []float32{0, -1, 2}
	out := make([]float32, 3)
	buffer := make([]float32, 3)
	require.NoError(t, Run(OpLogSigmoid, nil, out, buffer, x))
	for i, v := range x {
		want := -stdmath.Log1p(stdmath.Exp(-float64(v)))
		assert.InDelta(t, want, out[i], 1e-6, "x=%g", v)
		assert.InDelta(t, stdmath.Exp(-stdmath.Abs(float64(v))), buffer[i], 1e-6)
	}

	grad := make([]float32, 3)
	require.NoError(t, Run(OpLogSigmoidBackward, nil, grad, x, buffer, []float32{1, 1, 1}))
	for i, v := range x {
		// d/dx log(sigmoid(x)) = 1 - sigmoid(x)
		want := 1 - 1/(1+stdmath.Exp(-float64(v)))
		assert.InDelta(t, want, grad[i], 1e-6, "x=%g", v)
	}
}

func TestThresholdIntegers(t *testing.T) {
	x := []int8{-128, 0, 4, 5, 127}
	other := []int8{1, 2, 3, 4, 5}
	out := make([]int8, len(x))
	require.NoError(t, Run(OpThreshold, elementwise.Params{"threshold": 4.9, "value": -1}, out, x, other))
	assert.Equal(t, []int8{-1, -1, -1, 4, 5}, out)

	err := Run(OpThreshold, elementwise.Params{"threshold": 300}, out, x, other)
	assert.ErrorIs(t, err, elementwise.ErrInvalidParam)

	u := []uint32{0, 10, 4000000000}
	outu := make([]uint32, 3)
	require.NoError(t, Run(OpThreshold, elementwise.Params{"threshold": 10, "value": 7}, outu, u, []uint32{1, 1, 1}))
	assert.Equal(t, []uint32{7, 7, 1}, outu)
}

func TestThresholdHalfRoundsParams(t *testing.T) {
	// 0.10002 rounds to the Float16 above 0.1, so the Float16 nearest 0.10002
	// itself must compare <= threshold.
	x := []hwy.Float16{hwy.Float32ToFloat16(0.10002), hwy.Float32ToFloat16(0.2)}
	other := []hwy.Float16{hwy.Float32ToFloat16(1), hwy.Float32ToFloat16(2)}
	out := make([]hwy.Float16, 2)
	require.NoError(t, Run(OpThreshold, elementwise.Params{"threshold": 0.10002, "value": -1}, out, x, other))
	assert.Equal(t, float32(-1), hwy.Float16ToFloat32(out[0]))
	assert.Equal(t, float32(2), hwy.Float16ToFloat32(out[1]))
}

func TestThresholdHalfRejectsOverflow(t *testing.T) {
	x := []hwy.Float16{hwy.Float32ToFloat16(1), hwy.Float32ToFloat16(2)}
	other := []hwy.Float16{hwy.Float32ToFloat16(3), hwy.Float32ToFloat16(4)}
	out := []hwy.Float16{hwy.Float32ToFloat16(-7), hwy.Float32ToFloat16(-7)}

	err := Run(OpThreshold, elementwise.Params{"threshold": 1e6}, out, x, other)
	require.ErrorIs(t, err, elementwise.ErrInvalidParam)
	assert.Contains(t, err.Error(), "threshold")
	err = Run(OpThreshold, elementwise.Params{"value": -1e6}, out, x, other)
	require.ErrorIs(t, err, elementwise.ErrInvalidParam)
	assert.Contains(t, err.Error(), "value")
	assert.Equal(t, float32(-7), hwy.Float16ToFloat32(out[0]))

	// 65504 is the largest finite Float16.
	require.NoError(t, Run(OpThreshold, elementwise.Params{"threshold": 65504, "value": -1}, out, x, other))
	assert.Equal(t, []float32{-1, -1}, []float32{hwy.Float16ToFloat32(out[0]), hwy.Float16ToFloat32(out[1])})

	// BFloat16 shares float32's exponent range.
	bx := []hwy.BFloat16{hwy.Float32ToBFloat16(1)}
	bout := make([]hwy.BFloat16, 1)
	require.NoError(t, Run(OpThreshold, elementwise.Params{"threshold": 1e6, "value": -1}, bout, bx, bx))
	assert.Equal(t, float32(-1), hwy.BFloat16ToFloat32(bout[0]))
}

func TestInvalidParams(t *testing.T) {
	out := make([]float32, 4)
	x := []float32{1, 2, 3, 4}
	for i := range out {
		out[i] = -7
	}
	err := Run(OpSoftplus, elementwise.Params{"beta": 0}, out, x)
	require.ErrorIs(t, err, elementwise.ErrInvalidParam)
	assert.Contains(t, err.Error(), "softplus")
	assert.Equal(t, []float32{-7, -7, -7, -7}, out)

	assert.ErrorIs(t, Run(OpELU, elementwise.Params{"alpha": 1e40}, out, x), elementwise.ErrInvalidParam)
	assert.ErrorIs(t, Run(OpELU, nil, []int32{0}, []int32{1}), elementwise.ErrUnsupportedType)
	assert.ErrorIs(t, Run(OpGLU, nil, out, x), elementwise.ErrShapeMismatch)
	assert.ErrorIs(t, Run(OpGLU, nil, out, x, x[:3]), elementwise.ErrShapeMismatch)
}

func TestELUShortCircuit(t *testing.T) {
	w := hwy.MaxLanes[float64]()
	positive := gen(w, func(i int) float64 { return 0.5 + float64(i) })
	mixed := gen(w, func(i int) float64 { return float64(i) - float64(w)/2 })

	for _, x := range [][]float64{positive, mixed} {
		xv := hwy.Load(x)
		k := NewELU(1.5, 1.0507, 0.5)
		assert.Equal(t, k.lanes(xv, false).Data(), k.lanes(xv, true).Data())

		grad := hwy.Load(gen(w, func(i int) float64 { return 1 + float64(i)/3 }))
		for _, isResult := range []bool{false, true} {
			kb := NewELUBackward(1.5, 1.0507, 0.5, isResult)
			assert.Equal(t, kb.lanes(grad, xv, false).Data(), kb.lanes(grad, xv, true).Data())
		}
	}
}

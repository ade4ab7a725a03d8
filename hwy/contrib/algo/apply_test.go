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

package algo

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-highway/ewise/hwy"
)

// axpb computes a*x + b with an explicit rounding of the product so the
// scalar and lane forms see the same sequence of roundings.
type axpb[T hwy.Floats] struct {
	a, b   T
	av, bv hwy.Vec[T]
}

func newAxpb[T hwy.Floats](a, b T) axpb[T] {
	return axpb[T]{a: a, b: b, av: hwy.Set(a), bv: hwy.Set(b)}
}

func (k axpb[T]) Scalar(x T) T                  { return T(k.a*x) + k.b }
func (k axpb[T]) Lanes(x hwy.Vec[T]) hwy.Vec[T] { return hwy.Add(hwy.Mul(k.av, x), k.bv) }

type pick[T hwy.Arithmetic] struct{}

func (pick[T]) Scalar(a, b T) T {
	if a > b {
		return a
	}
	return b - a
}

func (pick[T]) Lanes(a, b hwy.Vec[T]) hwy.Vec[T] {
	return hwy.IfThenElse(hwy.GreaterThan(a, b), a, hwy.Sub(b, a))
}

type ordered[T hwy.Floats] struct{}

func (ordered[T]) Scalar(a, b, c T) T { return T(a-b) * c }
func (ordered[T]) Lanes(a, b, c hwy.Vec[T]) hwy.Vec[T] {
	return hwy.Mul(hwy.Sub(a, b), c)
}

type sumDiff[T hwy.Floats] struct{}

func (sumDiff[T]) Scalar(x T) (T, T) { return x + 1, x - 1 }
func (sumDiff[T]) Lanes(x hwy.Vec[T]) (hwy.Vec[T], hwy.Vec[T]) {
	one := hwy.Set[T](1)
	return hwy.Add(x, one), hwy.Sub(x, one)
}

func sizes[T hwy.Lanes]() []int {
	w := hwy.MaxLanes[T]()
	return []int{0, 1, w - 1, w, w + 1, 10*w + 3}
}

func ramp[T hwy.Lanes](n int, scale float64) []T {
	s := make([]T, n)
	for i := range s {
		s[i] = T(float64(i)*scale - float64(n)*scale/2)
	}
	return s
}

// guarded returns a slice of n elements whose backing array continues with
// sentinel values, so writes past the end are detectable.
func guarded[T hwy.Lanes](n int, sentinel T) (view, backing []T) {
	backing = make([]T, n+hwy.MaxLanes[T]())
	for i := range backing {
		backing[i] = sentinel
	}
	return backing[:n:n], backing
}

func checkGuard[T hwy.Lanes](t *testing.T, backing []T, n int, sentinel T) {
	t.Helper()
	for i := n; i < len(backing); i++ {
		require.Equal(t, sentinel, backing[i], "element %d past the end of a %d-element run was written", i, n)
	}
}

func TestApply1Modes(t *testing.T) {
	k := newAxpb[float32](1.5, -0.25)
	for _, n := range sizes[float32]() {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			x := ramp[float32](n, 0.37)
			var results [3][]float32
			for _, mode := range []Mode{MaskedTail, ScalarTail, ScalarOnly} {
				out, backing := guarded[float32](n, -7)
				Apply1(out, x, k, mode)
				checkGuard(t, backing, n, -7)
				results[mode] = out
			}
			for i, v := range x {
				require.Equal(t, k.Scalar(v), results[ScalarOnly][i])
			}
			if diff := cmp.Diff(results[ScalarOnly], results[MaskedTail]); diff != "" {
				t.Errorf("MaskedTail differs from ScalarOnly (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(results[ScalarOnly], results[ScalarTail]); diff != "" {
				t.Errorf("ScalarTail differs from ScalarOnly (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApply2Integers(t *testing.T) {
	for _, n := range sizes[int16]() {
		a := ramp[int16](n, 3)
		b := ramp[int16](n, -2)
		want := make([]int16, n)
		Apply2(want, a, b, pick[int16]{}, ScalarOnly)

		got, backing := guarded[int16](n, 99)
		Apply2(got, a, b, pick[int16]{}, MaskedTail)
		checkGuard(t, backing, n, 99)
		assert.Equal(t, want, got, "n=%d", n)
	}
}

func TestApply3OperandOrder(t *testing.T) {
	n := 2*hwy.MaxLanes[float64]() + 1
	a := ramp[float64](n, 1)
	b := ramp[float64](n, 0.5)
	c := ramp[float64](n, 0.25)

	got := make([]float64, n)
	Apply3(got, a, b, c, ordered[float64]{}, MaskedTail)
	swapped := make([]float64, n)
	Apply3(swapped, b, a, c, ordered[float64]{}, MaskedTail)
	for i := range n {
		assert.Equal(t, (a[i]-b[i])*c[i], got[i])
		assert.Equal(t, -got[i], swapped[i], "i=%d", i)
	}
}

func TestApplySplit(t *testing.T) {
	for _, n := range sizes[float32]() {
		x := ramp[float32](n, 0.5)
		plus, pb := guarded[float32](n, 42)
		minus, mb := guarded[float32](n, 42)
		ApplySplit(plus, minus, x, sumDiff[float32]{}, MaskedTail)
		checkGuard(t, pb, n, 42)
		checkGuard(t, mb, n, 42)
		for i, v := range x {
			assert.Equal(t, v+1, plus[i])
			assert.Equal(t, v-1, minus[i])
		}
	}
}

func testBridge[H hwy.HalfFloats](t *testing.T) {
	k := newAxpb[float32](0.75, 2)
	for _, n := range sizes[H]() {
		x := make([]H, n)
		for i := range x {
			x[i] = hwy.FromFloat32[H](float32(i)*0.125 - 3)
		}
		want := make([]H, n)
		for i, v := range x {
			want[i] = hwy.FromFloat32[H](k.Scalar(hwy.ToFloat32(v)))
		}
		for _, mode := range []Mode{MaskedTail, ScalarTail, ScalarOnly} {
			got, backing := guarded[H](n, 0x7E7E)
			Bridge1(got, x, k, mode)
			checkGuard(t, backing, n, H(0x7E7E))
			require.Equal(t, want, got, "n=%d mode=%v", n, mode)
		}

		lo, hi := make([]H, n), make([]H, n)
		BridgeSplit(lo, hi, x, sumDiff[float32]{}, MaskedTail)
		sum := make([]H, n)
		Bridge2(sum, lo, hi, pick[float32]{}, MaskedTail)
		prod := make([]H, n)
		Bridge3(prod, hi, lo, x, ordered[float32]{}, MaskedTail)
		for i, v := range x {
			f := hwy.ToFloat32(v)
			l, h := hwy.ToFloat32(lo[i]), hwy.ToFloat32(hi[i])
			assert.Equal(t, hwy.FromFloat32[H](f+1), lo[i])
			assert.Equal(t, hwy.FromFloat32[H](pick[float32]{}.Scalar(l, h)), sum[i])
			assert.Equal(t, hwy.FromFloat32[H](ordered[float32]{}.Scalar(h, l, f)), prod[i])
		}
	}
}

func TestBridgeFloat16(t *testing.T)  { testBridge[hwy.Float16](t) }
func TestBridgeBFloat16(t *testing.T) { testBridge[hwy.BFloat16](t) }

func TestModeString(t *testing.T) {
	assert.Equal(t, "masked-tail", MaskedTail.String())
	assert.Equal(t, "scalar-only", ScalarOnly.String())
	assert.Equal(t, "Mode(9)", Mode(9).String())
}

func BenchmarkApply1(b *testing.B) {
	k := newAxpb[float32](1.5, -0.25)
	x := ramp[float32](4099, 0.01)
	out := make([]float32, len(x))
	for _, mode := range []Mode{MaskedTail, ScalarOnly} {
		b.Run(mode.String(), func(b *testing.B) {
			for b.Loop() {
				Apply1(out, x, k, mode)
			}
		})
	}
}

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

import "github.com/go-highway/ewise/hwy"

// The bridged kernels below wrap a float32 kernel so that it satisfies the
// kernel interfaces for a half-precision type H. They are what Bridge1/2/3
// and BridgeSplit feed to the native apply loop.

func widen[H hwy.HalfFloats](v hwy.Vec[H]) (lo, hi hwy.Vec[float32]) {
	return hwy.PromoteHalves(v)
}

func narrow[H hwy.HalfFloats](lo, hi hwy.Vec[float32]) hwy.Vec[H] {
	return hwy.DemoteHalves[H](lo, hi)
}

type bridged1[H hwy.HalfFloats, K Unary[float32]] struct{ k K }

func (b bridged1[H, K]) Scalar(x H) H {
	return hwy.FromFloat32[H](b.k.Scalar(hwy.ToFloat32(x)))
}

func (b bridged1[H, K]) Lanes(x hwy.Vec[H]) hwy.Vec[H] {
	lo, hi := widen(x)
	return narrow[H](b.k.Lanes(lo), b.k.Lanes(hi))
}

type bridged2[H hwy.HalfFloats, K Binary[float32]] struct{ k K }

func (b bridged2[H, K]) Scalar(x, y H) H {
	return hwy.FromFloat32[H](b.k.Scalar(hwy.ToFloat32(x), hwy.ToFloat32(y)))
}

func (b bridged2[H, K]) Lanes(x, y hwy.Vec[H]) hwy.Vec[H] {
	xlo, xhi := widen(x)
	ylo, yhi := widen(y)
	return narrow[H](b.k.Lanes(xlo, ylo), b.k.Lanes(xhi, yhi))
}

type bridged3[H hwy.HalfFloats, K Ternary[float32]] struct{ k K }

func (b bridged3[H, K]) Scalar(x, y, z H) H {
	return hwy.FromFloat32[H](b.k.Scalar(hwy.ToFloat32(x), hwy.ToFloat32(y), hwy.ToFloat32(z)))
}

func (b bridged3[H, K]) Lanes(x, y, z hwy.Vec[H]) hwy.Vec[H] {
	xlo, xhi := widen(x)
	ylo, yhi := widen(y)
	zlo, zhi := widen(z)
	return narrow[H](b.k.Lanes(xlo, ylo, zlo), b.k.Lanes(xhi, yhi, zhi))
}

type bridgedSplit[H hwy.HalfFloats, K Split[float32]] struct{ k K }

func (b bridgedSplit[H, K]) Scalar(x H) (H, H) {
	r1, r2 := b.k.Scalar(hwy.ToFloat32(x))
	return hwy.FromFloat32[H](r1), hwy.FromFloat32[H](r2)
}

func (b bridgedSplit[H, K]) Lanes(x hwy.Vec[H]) (hwy.Vec[H], hwy.Vec[H]) {
	lo, hi := widen(x)
	lo1, lo2 := b.k.Lanes(lo)
	hi1, hi2 := b.k.Lanes(hi)
	return narrow[H](lo1, hi1), narrow[H](lo2, hi2)
}

// Bridge1 runs the float32 kernel k over half-precision storage.
func Bridge1[H hwy.HalfFloats, K Unary[float32]](out, x []H, k K, mode Mode) {
	Apply1(out, x, bridged1[H, K]{k}, mode)
}

// Bridge2 runs the float32 kernel k over half-precision storage.
func Bridge2[H hwy.HalfFloats, K Binary[float32]](out, a, b []H, k K, mode Mode) {
	Apply2(out, a, b, bridged2[H, K]{k}, mode)
}

// Bridge3 runs the float32 kernel k over half-precision storage.
func Bridge3[H hwy.HalfFloats, K Ternary[float32]](out, a, b, c []H, k K, mode Mode) {
	Apply3(out, a, b, c, bridged3[H, K]{k}, mode)
}

// BridgeSplit runs the two-output float32 kernel k over half-precision storage.
func BridgeSplit[H hwy.HalfFloats, K Split[float32]](out1, out2, x []H, k K, mode Mode) {
	ApplySplit(out1, out2, x, bridgedSplit[H, K]{k}, mode)
}

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

package hwy

// The helpers below are the precision bridge used by the kernels: a 16-bit
// float is never computed on directly. A block of MaxLanes[H]() half lanes
// is split into two float32 vectors of MaxLanes[float32]() lanes each, the
// float32 formula runs on both, and the results are joined and rounded back.

// ToFloat32 widens one half-precision value to float32 (exact).
func ToFloat32[H HalfFloats](h H) float32 {
	switch v := any(h).(type) {
	case Float16:
		return Float16ToFloat32(v)
	case BFloat16:
		return BFloat16ToFloat32(v)
	}
	panic("hwy: unreachable half type")
}

// FromFloat32 rounds a float32 to the half-precision type H (nearest-even).
func FromFloat32[H HalfFloats](f float32) H {
	var zero H
	switch any(zero).(type) {
	case Float16:
		return H(Float32ToFloat16(f))
	case BFloat16:
		return H(Float32ToBFloat16(f))
	}
	panic("hwy: unreachable half type")
}

// PromoteHalves splits a half-precision vector into its lower and upper
// halves widened to float32.
func PromoteHalves[H HalfFloats](v Vec[H]) (lo, hi Vec[float32]) {
	switch hv := any(v).(type) {
	case Vec[Float16]:
		return PromoteLowerF16ToF32(hv), PromoteUpperF16ToF32(hv)
	case Vec[BFloat16]:
		return PromoteLowerBF16ToF32(hv), PromoteUpperBF16ToF32(hv)
	}
	panic("hwy: unreachable half type")
}

// DemoteHalves is the inverse of PromoteHalves.
func DemoteHalves[H HalfFloats](lo, hi Vec[float32]) Vec[H] {
	var zero H
	switch any(zero).(type) {
	case Float16:
		return any(DemoteTwoF32ToF16(lo, hi)).(Vec[H])
	case BFloat16:
		return any(DemoteTwoF32ToBF16(lo, hi)).(Vec[H])
	}
	panic("hwy: unreachable half type")
}

// PromoteSlice widens src into dst element by element. dst must be at least
// as long as src.
func PromoteSlice[H HalfFloats](src []H, dst []float32) {
	for i, h := range src {
		dst[i] = ToFloat32(h)
	}
}

// DemoteSlice rounds src into dst element by element.
func DemoteSlice[H HalfFloats](src []float32, dst []H) {
	for i, f := range src {
		dst[i] = FromFloat32[H](f)
	}
}

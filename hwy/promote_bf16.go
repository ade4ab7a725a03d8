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

// PromoteLowerBF16ToF32 promotes the lower half of the BFloat16 lanes.
// Input: 2N BFloat16 lanes -> Output: N float32 lanes.
func PromoteLowerBF16ToF32(v Vec[BFloat16]) Vec[float32] {
	n := len(v.data) / 2
	result := make([]float32, n)
	for i := range n {
		result[i] = BFloat16ToFloat32(v.data[i])
	}
	return Vec[float32]{data: result}
}

// PromoteUpperBF16ToF32 promotes the upper half of the BFloat16 lanes.
func PromoteUpperBF16ToF32(v Vec[BFloat16]) Vec[float32] {
	half := len(v.data) / 2
	result := make([]float32, len(v.data)-half)
	for i := range result {
		result[i] = BFloat16ToFloat32(v.data[half+i])
	}
	return Vec[float32]{data: result}
}

// DemoteTwoF32ToBF16 joins two float32 vectors into one BFloat16 vector:
// lo fills the lower lanes, hi the upper ones.
func DemoteTwoF32ToBF16(lo, hi Vec[float32]) Vec[BFloat16] {
	result := make([]BFloat16, len(lo.data)+len(hi.data))
	for i, f := range lo.data {
		result[i] = Float32ToBFloat16(f)
	}
	for i, f := range hi.data {
		result[len(lo.data)+i] = Float32ToBFloat16(f)
	}
	return Vec[BFloat16]{data: result}
}

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

import (
	"math"
	"strconv"
)

// BFloat16 is the upper half of a float32: 1 sign bit, the full 8-bit
// exponent and 7 mantissa bits. It keeps the float32 range at about two
// decimal digits of precision, so widening is a shift and narrowing is a
// rounding of the dropped 16 bits.
type BFloat16 uint16

const (
	BFloat16Zero      BFloat16 = 0x0000
	BFloat16NegZero   BFloat16 = 0x8000
	BFloat16One       BFloat16 = 0x3F80
	BFloat16NegOne    BFloat16 = 0xBF80
	BFloat16MinNormal BFloat16 = 0x0080 // ~1.18e-38
	BFloat16MinValue  BFloat16 = 0x0001 // smallest subnormal
	BFloat16Inf       BFloat16 = 0x7F80
	BFloat16NegInf    BFloat16 = 0xFF80
	BFloat16NaN       BFloat16 = 0x7FC0 // canonical quiet NaN

	bf16ExpField  = 0x7F80
	bf16MantField = 0x007F
	bf16QuietBit  = 0x0040
)

// BFloat16ToFloat32 widens b. Every BFloat16, NaNs included, is exactly
// representable as float32.
func BFloat16ToFloat32(b BFloat16) float32 {
	return math.Float32frombits(uint32(b) << 16)
}

// Float32ToBFloat16 narrows f with round-to-nearest-even on the 16 dropped
// mantissa bits. NaN keeps its sign and upper payload; a payload living only
// in the dropped bits becomes quiet.
func Float32ToBFloat16(f float32) BFloat16 {
	bits := math.Float32bits(f)
	if bits&0x7FFFFFFF > 0x7F800000 {
		hi := BFloat16(bits >> 16)
		if hi&bf16MantField == 0 {
			hi |= bf16QuietBit
		}
		return hi
	}
	// 0x7FFF plus the lowest kept bit rounds ties to even. A carry out of the
	// mantissa bumps the exponent; out of the largest finite value it lands
	// exactly on infinity.
	bits += 0x7FFF + (bits>>16)&1
	return BFloat16(bits >> 16)
}

// IsNaN reports whether b is a NaN.
func (b BFloat16) IsNaN() bool {
	return b&bf16ExpField == bf16ExpField && b&bf16MantField != 0
}

// IsInf reports whether b is an infinity of either sign.
func (b BFloat16) IsInf() bool {
	return b&0x7FFF == bf16ExpField
}

// IsNegative reports whether the sign bit is set, including -0 and NaNs.
func (b BFloat16) IsNegative() bool {
	return b&0x8000 != 0
}

// IsDenormal reports whether b is a subnormal.
func (b BFloat16) IsDenormal() bool {
	return b&bf16ExpField == 0 && b&bf16MantField != 0
}

// Float32 widens b.
func (b BFloat16) Float32() float32 {
	return BFloat16ToFloat32(b)
}

// String formats the value of b, so mismatches print numbers rather than
// bit patterns.
func (b BFloat16) String() string {
	return strconv.FormatFloat(float64(b.Float32()), 'g', -1, 32)
}

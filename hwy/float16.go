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

// Float16 is an IEEE 754 binary16 value held in its bit pattern: 1 sign bit,
// 5 exponent bits (bias 15) and 10 mantissa bits. The largest finite value is
// 65504 and the smallest subnormal 2^-24.
type Float16 uint16

const (
	Float16Zero      Float16 = 0x0000
	Float16NegZero   Float16 = 0x8000
	Float16One       Float16 = 0x3C00
	Float16NegOne    Float16 = 0xBC00
	Float16MaxValue  Float16 = 0x7BFF // 65504
	Float16MinNormal Float16 = 0x0400 // 2^-14
	Float16MinValue  Float16 = 0x0001 // 2^-24
	Float16Inf       Float16 = 0x7C00
	Float16NegInf    Float16 = 0xFC00
	Float16NaN       Float16 = 0x7E00 // canonical quiet NaN

	float16ExpBias      = 15
	float16ExpMask      = 0x1F
	float16MantissaBits = 10
	float16MantissaMask = 0x3FF
	float16SignMask     = 0x8000
)

// Float16ToFloat32 converts a single Float16 to float32.
// The conversion is exact; NaN payloads are carried over unchanged so that
// Float32ToFloat16(Float16ToFloat32(h)) == h for every bit pattern.
func Float16ToFloat32(h Float16) float32 {
	bits := uint32(h)
	sign := (bits >> 15) << 31
	exp := int32((bits >> 10) & float16ExpMask)
	mant := bits & float16MantissaMask

	switch {
	case exp == 0 && mant == 0:
		return math.Float32frombits(sign)
	case exp == 0:
		// Subnormal: shift the leading one into the implicit position.
		exp = 1
		for mant&0x400 == 0 {
			mant <<= 1
			exp--
		}
		mant &= float16MantissaMask
	case exp == float16ExpMask:
		return math.Float32frombits(sign | 0x7F800000 | mant<<13)
	}
	exp += 127 - float16ExpBias
	return math.Float32frombits(sign | uint32(exp)<<23 | mant<<13)
}

// Float32ToFloat16 converts a float32 to Float16 with round-to-nearest-even.
// Values beyond the Float16 range overflow to infinity, values below half
// the smallest subnormal flush to a signed zero. NaN keeps its sign and the
// top payload bits; a payload that would truncate to zero becomes quiet.
func Float32ToFloat16(f float32) Float16 {
	bits := math.Float32bits(f)
	sign := uint16(bits>>16) & float16SignMask
	exp8 := int((bits >> 23) & 0xFF)
	mant := bits & 0x7FFFFF

	if exp8 == 0xFF {
		if mant == 0 {
			return Float16(sign | 0x7C00)
		}
		m := uint16(mant >> 13)
		if m == 0 {
			m = 0x200
		}
		return Float16(sign | 0x7C00 | m)
	}

	e := exp8 - 127 + float16ExpBias
	if e >= float16ExpMask {
		return Float16(sign | 0x7C00)
	}

	if e <= 0 {
		if e < -float16MantissaBits {
			return Float16(sign)
		}
		// Subnormal result: h = m * 2^(e-14).
		m := mant | 0x800000
		shift := uint(14 - e)
		q := m >> shift
		rem := m & (1<<shift - 1)
		halfway := uint32(1) << (shift - 1)
		if rem > halfway || (rem == halfway && q&1 == 1) {
			// Carrying into 0x400 yields the smallest normal, which is the
			// correct encoding.
			q++
		}
		return Float16(sign | uint16(q))
	}

	q := mant >> 13
	rem := mant & 0x1FFF
	if rem > 0x1000 || (rem == 0x1000 && q&1 == 1) {
		q++
		if q == 0x400 {
			q = 0
			e++
			if e >= float16ExpMask {
				return Float16(sign | 0x7C00)
			}
		}
	}
	return Float16(sign | uint16(e)<<10 | uint16(q))
}

func (h Float16) exponent() Float16 { return (h >> float16MantissaBits) & float16ExpMask }

func (h Float16) mantissa() Float16 { return h & float16MantissaMask }

// IsNaN reports whether h is a NaN.
func (h Float16) IsNaN() bool {
	return h.exponent() == float16ExpMask && h.mantissa() != 0
}

// IsInf reports whether h is an infinity of either sign.
func (h Float16) IsInf() bool {
	return h.exponent() == float16ExpMask && h.mantissa() == 0
}

// IsZero reports whether h is +0 or -0.
func (h Float16) IsZero() bool {
	return h&^float16SignMask == 0
}

// IsNegative reports whether the sign bit is set, including -0 and NaNs.
func (h Float16) IsNegative() bool {
	return h&float16SignMask != 0
}

// IsDenormal reports whether h is a subnormal.
func (h Float16) IsDenormal() bool {
	return h.exponent() == 0 && h.mantissa() != 0
}

// Float32 widens h exactly.
func (h Float16) Float32() float32 {
	return Float16ToFloat32(h)
}

// String formats the value of h.
func (h Float16) String() string {
	return strconv.FormatFloat(float64(h.Float32()), 'g', -1, 32)
}

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
	"fmt"
	"strings"
)

// DType tags the element type of a buffer at dispatch time. The set is
// closed: every tag maps to exactly one Go type (see DTypeOf).
type DType uint8

const (
	// DTypeInvalid is the zero value and never names a registered kernel.
	DTypeInvalid DType = iota
	DTypeFloat32
	DTypeFloat64
	DTypeFloat16
	DTypeBFloat16
	DTypeInt8
	DTypeInt16
	DTypeInt32
	DTypeInt64
	DTypeUint8
	DTypeUint16
	DTypeUint32
	DTypeUint64
)

var dtypeNames = [...]string{
	DTypeInvalid:  "invalid",
	DTypeFloat32:  "float32",
	DTypeFloat64:  "float64",
	DTypeFloat16:  "float16",
	DTypeBFloat16: "bfloat16",
	DTypeInt8:     "int8",
	DTypeInt16:    "int16",
	DTypeInt32:    "int32",
	DTypeInt64:    "int64",
	DTypeUint8:    "uint8",
	DTypeUint16:   "uint16",
	DTypeUint32:   "uint32",
	DTypeUint64:   "uint64",
}

var dtypeSizes = [...]int{
	DTypeFloat32:  4,
	DTypeFloat64:  8,
	DTypeFloat16:  2,
	DTypeBFloat16: 2,
	DTypeInt8:     1,
	DTypeInt16:    2,
	DTypeInt32:    4,
	DTypeInt64:    8,
	DTypeUint8:    1,
	DTypeUint16:   2,
	DTypeUint32:   4,
	DTypeUint64:   8,
}

// AllDTypes lists every valid tag in declaration order.
func AllDTypes() []DType {
	return []DType{DTypeFloat32, DTypeFloat64, DTypeFloat16, DTypeBFloat16,
		DTypeInt8, DTypeInt16, DTypeInt32, DTypeInt64, DTypeUint8, DTypeUint16, DTypeUint32, DTypeUint64}
}

// String returns the lower-case type name, e.g. "float32" or "bfloat16".
func (d DType) String() string {
	if int(d) < len(dtypeNames) {
		return dtypeNames[d]
	}
	return fmt.Sprintf("DType(%d)", uint8(d))
}

// Valid reports whether d is one of the supported element types.
func (d DType) Valid() bool {
	return d > DTypeInvalid && d <= DTypeUint64
}

// Size returns the element size in bytes, or 0 for an invalid tag.
func (d DType) Size() int {
	if !d.Valid() {
		return 0
	}
	return dtypeSizes[d]
}

// Lanes returns the lane count of a vector of this type at the current width.
func (d DType) Lanes() int {
	if s := d.Size(); s > 0 {
		return currentWidth / s
	}
	return 0
}

// IsFloat reports whether d is a floating-point type, including the 16-bit ones.
func (d DType) IsFloat() bool {
	switch d {
	case DTypeFloat32, DTypeFloat64, DTypeFloat16, DTypeBFloat16:
		return true
	}
	return false
}

// IsHalf reports whether d is a 16-bit float computed through float32.
func (d DType) IsHalf() bool {
	return d == DTypeFloat16 || d == DTypeBFloat16
}

// IsInteger reports whether d is a signed or unsigned integer type.
func (d DType) IsInteger() bool {
	return d >= DTypeInt8 && d <= DTypeUint64
}

// ParseDType maps a name as returned by String back to its tag. A few common
// aliases ("f32", "half", "bf16", ...) are accepted.
func ParseDType(name string) (DType, error) {
	switch n := strings.ToLower(strings.TrimSpace(name)); n {
	case "f32", "float":
		return DTypeFloat32, nil
	case "f64", "double":
		return DTypeFloat64, nil
	case "f16", "half":
		return DTypeFloat16, nil
	case "bf16":
		return DTypeBFloat16, nil
	default:
		for _, d := range AllDTypes() {
			if dtypeNames[d] == n {
				return d, nil
			}
		}
	}
	return DTypeInvalid, fmt.Errorf("hwy: unknown dtype %q", name)
}

// DTypeOf returns the tag for the Go type T. Named types other than Float16
// and BFloat16 map to DTypeInvalid, since their representation may not be
// the one a kernel was compiled for.
func DTypeOf[T Lanes]() DType {
	var zero T
	switch any(zero).(type) {
	case float32:
		return DTypeFloat32
	case float64:
		return DTypeFloat64
	case Float16:
		return DTypeFloat16
	case BFloat16:
		return DTypeBFloat16
	case int8:
		return DTypeInt8
	case int16:
		return DTypeInt16
	case int32:
		return DTypeInt32
	case int64:
		return DTypeInt64
	case uint8:
		return DTypeUint8
	case uint16:
		return DTypeUint16
	case uint32:
		return DTypeUint32
	case uint64:
		return DTypeUint64
	}
	return DTypeInvalid
}

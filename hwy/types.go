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

// Package hwy provides the lane abstraction used by the elementwise kernels:
// fixed-width vectors per element type, lane masks, masked select, and the
// precision bridge between 16-bit floats and float32.
//
// The lane width is detected once at startup (see CurrentWidth) and is a
// per-type constant from then on: a Vec[Float16] holds twice the lanes of a
// Vec[float32], which holds twice the lanes of a Vec[float64].
//
// Basic usage:
//
//	import "github.com/go-highway/ewise/hwy"
//
//	a := hwy.Load(data)
//	pos := hwy.GreaterThan(a, hwy.Zero[float32]())
//	hwy.Store(hwy.IfThenElse(pos, a, hwy.Mul(a, slope)), out)
package hwy

// Floats is a constraint for floating-point types.
type Floats interface {
	~float32 | ~float64
}

// SignedInts is a constraint for signed integer types.
type SignedInts interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// UnsignedInts is a constraint for unsigned integer types.
type UnsignedInts interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Integers is a constraint for all integer types.
type Integers interface {
	SignedInts | UnsignedInts
}

// HalfFloats is the set of 16-bit float storage types. They have no lane
// arithmetic of their own; every formula on them goes through the precision
// bridge (PromoteHalves, compute in float32, DemoteHalves).
type HalfFloats interface {
	Float16 | BFloat16
}

// Lanes is a constraint for all types that can be stored in SIMD lanes.
//
// Float16 and BFloat16 satisfy it through their uint16 representation, which
// means Load, Store, masks and selects work on them directly. Arithmetic and
// comparisons take Arithmetic instead, which leaves them out.
type Lanes interface {
	Floats | Integers
}

// Arithmetic is the subset of Lanes whose lanes hold numbers rather than
// encoded bits. uint16 is matched exactly so that types defined on it, such
// as Float16 and BFloat16, are excluded.
type Arithmetic interface {
	Floats | SignedInts | ~uint8 | uint16 | ~uint32 | ~uint64
}

// Vec is a portable vector handle. In base mode it wraps a slice of
// MaxLanes[T]() elements.
//
// Vec instances should not be created directly; use Load, Set, or Zero instead.
type Vec[T Lanes] struct {
	data []T
}

// NumLanes returns the number of lanes (elements) in this vector.
func (v Vec[T]) NumLanes() int {
	return len(v.data)
}

// Data returns the underlying slice representation of the vector.
// This is primarily for testing and should not be used in performance-critical code.
func (v Vec[T]) Data() []T {
	return v.data
}

// Mask is the per-lane result of a comparison. It is consumed by
// IfThenElse, MaskLoad, MaskStore and the AnyTrue/AllTrue reductions.
type Mask[T Lanes] struct {
	bits []bool
}

// NumLanes returns the number of lanes in this mask.
func (m Mask[T]) NumLanes() int {
	return len(m.bits)
}

// AllTrue returns true if all lanes in the mask are active.
func (m Mask[T]) AllTrue() bool {
	for _, bit := range m.bits {
		if !bit {
			return false
		}
	}
	return true
}

// AnyTrue returns true if at least one lane in the mask is active.
func (m Mask[T]) AnyTrue() bool {
	for _, bit := range m.bits {
		if bit {
			return true
		}
	}
	return false
}

// CountTrue returns the number of active lanes in the mask.
func (m Mask[T]) CountTrue() int {
	count := 0
	for _, bit := range m.bits {
		if bit {
			count++
		}
	}
	return count
}

// GetBit returns whether lane i is active.
func (m Mask[T]) GetBit(i int) bool {
	if i < 0 || i >= len(m.bits) {
		return false
	}
	return m.bits[i]
}

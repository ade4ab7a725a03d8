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

// Package algo provides the elementwise apply loop: it walks a contiguous run
// of N elements in strides of hwy.MaxLanes[T]() and evaluates a kernel's lane
// formula on every full block.
//
// The remainder r = N mod W is handled according to a Mode. MaskedTail (the
// default) performs a partial load and store of exactly r elements through
// the lane formula, never touching memory past the end of an operand.
// ScalarTail evaluates the kernel's scalar formula on each remaining element,
// and ScalarOnly skips the lane formula entirely; it is the reference path
// against which the lane formulas are checked.
//
// Kernels are values implementing Unary, Binary, Ternary or Split for their
// compute type. Bridge1/2/3/BridgeSplit run a float32 kernel over Float16 or
// BFloat16 storage: each block of half lanes is widened into two float32
// vectors, computed, and rounded back.
//
// # Example Usage
//
//	type double struct{}
//
//	func (double) Scalar(x float32) float32             { return x + x }
//	func (double) Lanes(x hwy.Vec[float32]) hwy.Vec[float32] { return hwy.Add(x, x) }
//
//	algo.Apply1(out, in, double{}, algo.MaskedTail)
//	algo.Bridge1(outF16, inF16, double{}, algo.MaskedTail)
package algo

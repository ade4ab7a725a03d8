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

// Package elementwise is the execution engine for per-element kernels.
//
// A call flows through four stages:
//
//  1. The Registry resolves (Op, hwy.DType) to a Formula. Every supported
//     pair is registered once at startup; an unknown pair fails with
//     ErrUnsupportedType, never with a fallback to another type.
//  2. The engine checks operand count, element type and length, and the
//     Formula binds the parameters into an immutable kernel object.
//  3. Partition splits [0, N) into chunks of at least one grain.
//  4. Each chunk runs the algo apply loop, on the worker pool when there is
//     more than one chunk and inline otherwise.
//
// Results do not depend on the partitioning: every element is computed by
// the same formula whichever chunk and lane position it lands in.
//
// # Example Usage
//
//	reg := elementwise.NewRegistry()
//	activation.Register(reg)
//	eng := elementwise.NewEngine(reg, elementwise.WithPool(workerpool.New(0)))
//
//	err := eng.Apply(activation.LeakyReLU, hwy.DTypeFloat32,
//	    elementwise.Params{"negative_slope": 0.1},
//	    elementwise.Of(out), elementwise.Of(in))
package elementwise

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

// Package conformance checks registered kernels by running the lane path and
// the scalar path of the same invocation and comparing the outputs.
//
// Results must agree bit for bit, except that any NaN matches any NaN.
package conformance

import (
	"fmt"
	"math"

	"github.com/go-highway/ewise/hwy"
	"github.com/go-highway/ewise/hwy/contrib/elementwise"
)

// SpecialValues is the input domain floating-point kernels are swept over:
// infinities, NaN, signed tiny values, the +-3 hardsigmoid breakpoints and
// magnitudes on both sides of the softplus cutoff.
var SpecialValues = []float64{
	math.Inf(-1), -1000, -3, -1e-7, 0, 1e-7, 3, 1000, math.Inf(1), math.NaN(),
	-0.5, 0.5, -20, 20, -1, 1, 2.5, -2.5, 0.1, 88,
}

// IntegerValues is the input domain for integer kernels. Values are
// converted through int64, so they wrap in narrow and unsigned types.
var IntegerValues = []float64{-128, -3, -1, 0, 1, 3, 127, 1000, -1000, 42}

// ValuesFor returns the sweep domain for dt.
func ValuesFor(dt hwy.DType) []float64 {
	if dt.IsInteger() {
		return IntegerValues
	}
	return SpecialValues
}

func gen[T hwy.Lanes](n int, f func(i int) T) elementwise.Operand {
	s := make([]T, n)
	for i := range s {
		s[i] = f(i)
	}
	return elementwise.Of(s)
}

// Fill returns an operand of n elements of dt, cycling through vals starting
// at position shift.
func Fill(dt hwy.DType, n, shift int, vals []float64) elementwise.Operand {
	at := func(i int) float64 { return vals[(i+shift)%len(vals)] }
	switch dt {
	case hwy.DTypeFloat32:
		return gen(n, func(i int) float32 { return float32(at(i)) })
	case hwy.DTypeFloat64:
		return gen(n, at)
	case hwy.DTypeFloat16:
		return gen(n, func(i int) hwy.Float16 { return hwy.Float32ToFloat16(float32(at(i))) })
	case hwy.DTypeBFloat16:
		return gen(n, func(i int) hwy.BFloat16 { return hwy.Float32ToBFloat16(float32(at(i))) })
	case hwy.DTypeInt8:
		return gen(n, func(i int) int8 { return int8(int64(at(i))) })
	case hwy.DTypeInt16:
		return gen(n, func(i int) int16 { return int16(int64(at(i))) })
	case hwy.DTypeInt32:
		return gen(n, func(i int) int32 { return int32(int64(at(i))) })
	case hwy.DTypeInt64:
		return gen(n, func(i int) int64 { return int64(at(i)) })
	case hwy.DTypeUint8:
		return gen(n, func(i int) uint8 { return uint8(int64(at(i))) })
	case hwy.DTypeUint16:
		return gen(n, func(i int) uint16 { return uint16(int64(at(i))) })
	case hwy.DTypeUint32:
		return gen(n, func(i int) uint32 { return uint32(int64(at(i))) })
	case hwy.DTypeUint64:
		return gen(n, func(i int) uint64 { return uint64(int64(at(i))) })
	}
	panic(fmt.Sprintf("conformance: no generator for %s", dt))
}

func isNaN[T hwy.Lanes](x T) bool {
	switch v := any(x).(type) {
	case float32:
		return math.IsNaN(float64(v))
	case float64:
		return math.IsNaN(v)
	case hwy.Float16:
		return v.IsNaN()
	case hwy.BFloat16:
		return v.IsNaN()
	}
	return false
}

func firstMismatch[T hwy.Lanes](got, want elementwise.Operand) (int, string) {
	g, _ := elementwise.Slice[T](got)
	w, _ := elementwise.Slice[T](want)
	for i := range w {
		if g[i] != w[i] && !(isNaN(g[i]) && isNaN(w[i])) {
			return i, fmt.Sprintf("got %v, want %v", g[i], w[i])
		}
	}
	return -1, ""
}

var comparators = map[hwy.DType]func(got, want elementwise.Operand) (int, string){
	hwy.DTypeFloat32:  firstMismatch[float32],
	hwy.DTypeFloat64:  firstMismatch[float64],
	hwy.DTypeFloat16:  firstMismatch[hwy.Float16],
	hwy.DTypeBFloat16: firstMismatch[hwy.BFloat16],
	hwy.DTypeInt8:     firstMismatch[int8],
	hwy.DTypeInt16:    firstMismatch[int16],
	hwy.DTypeInt32:    firstMismatch[int32],
	hwy.DTypeInt64:    firstMismatch[int64],
	hwy.DTypeUint8:    firstMismatch[uint8],
	hwy.DTypeUint16:   firstMismatch[uint16],
	hwy.DTypeUint32:   firstMismatch[uint32],
	hwy.DTypeUint64:   firstMismatch[uint64],
}

// Compare returns the index of the first element where got and want differ,
// and a description of the difference, or -1 when they agree.
func Compare(dt hwy.DType, got, want elementwise.Operand) (int, string) {
	return comparators[dt](got, want)
}

// ApplyFunc is the signature shared by Engine.Apply and Engine.ApplyScalar.
type ApplyFunc func(op elementwise.Op, dt hwy.DType, params elementwise.Params, operands ...elementwise.Operand) error

// Invoke runs apply on fresh outputs followed by inputs and returns the
// outputs.
func Invoke(apply ApplyFunc, op elementwise.Op, dt hwy.DType, params elementwise.Params,
	outputs int, inputs []elementwise.Operand) ([]elementwise.Operand, error) {
	n := 0
	if len(inputs) > 0 {
		n = inputs[0].Len()
	}
	operands := make([]elementwise.Operand, 0, outputs+len(inputs))
	for range outputs {
		operands = append(operands, Fill(dt, n, 0, []float64{7}))
	}
	operands = append(operands, inputs...)
	if err := apply(op, dt, params, operands...); err != nil {
		return nil, err
	}
	return operands[:outputs], nil
}

// Mismatch describes the first disagreement found by Check.
type Mismatch struct {
	Op     elementwise.Op
	DType  hwy.DType
	N      int
	Output int
	Index  int
	Detail string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s/%s n=%d: output %d element %d: %s", m.Op, m.DType, m.N, m.Output, m.Index, m.Detail)
}

// Inputs returns the sweep inputs for an op with the given number of inputs:
// input j cycles through the domain of dt from offset 7*j, so multi-input
// kernels see many value combinations.
func Inputs(dt hwy.DType, inputs, n int) []elementwise.Operand {
	vals := ValuesFor(dt)
	ops := make([]elementwise.Operand, inputs)
	for j := range ops {
		ops[j] = Fill(dt, n, 7*j, vals)
	}
	return ops
}

// Check evaluates (op, dt) on n sweep elements with both the lane and the
// scalar path of e and reports the first mismatch, if any.
func Check(e *elementwise.Engine, op elementwise.Op, dt hwy.DType, params elementwise.Params, n int) (*Mismatch, error) {
	f, err := e.Registry().Lookup(op, dt)
	if err != nil {
		return nil, err
	}
	outputs, ins := f.Arity()
	inputs := Inputs(dt, ins, n)

	want, err := Invoke(e.ApplyScalar, op, dt, params, outputs, inputs)
	if err != nil {
		return nil, err
	}
	got, err := Invoke(e.Apply, op, dt, params, outputs, inputs)
	if err != nil {
		return nil, err
	}
	for k := range want {
		if i, detail := Compare(dt, got[k], want[k]); i >= 0 {
			return &Mismatch{Op: op, DType: dt, N: n, Output: k, Index: i, Detail: detail}, nil
		}
	}
	return nil, nil
}

// Lengths returns the lengths a kernel of dt is checked at: remainder-only,
// exactly the sweep domain, full blocks only, and blocks plus a remainder.
func Lengths(dt hwy.DType) []int {
	w := dt.Lanes()
	lengths := []int{3, len(ValuesFor(dt)), 2 * w, 10*w + 3}
	if w > 1 {
		lengths = append([]int{w - 1}, lengths...)
	}
	return lengths
}

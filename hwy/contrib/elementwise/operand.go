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

package elementwise

import (
	"unsafe"

	"github.com/pkg/errors"
	"github.com/x448/float16"

	"github.com/go-highway/ewise/hwy"
)

// Operand is a contiguous run of elements of one type: an input to read or an
// output to write in place. It is a view; the engine never retains it past
// the call that received it.
//
// The zero Operand has no element type and is rejected by the engine.
type Operand struct {
	dtype hwy.DType
	data  any
	n     int
}

// Of wraps s as an operand. The element type is taken from T; a named type
// other than hwy.Float16 or hwy.BFloat16 yields an operand without a type.
func Of[T hwy.Lanes](s []T) Operand {
	return Operand{dtype: hwy.DTypeOf[T](), data: s, n: len(s)}
}

// OfX448 wraps a github.com/x448/float16 slice as a Float16 operand without
// copying. Both types store the IEEE 754 binary16 bits in a uint16.
func OfX448(s []float16.Float16) Operand {
	if len(s) == 0 {
		return Of([]hwy.Float16{})
	}
	h := unsafe.Slice((*hwy.Float16)(unsafe.Pointer(unsafe.SliceData(s))), len(s))
	return Of(h)
}

// DType returns the element type tag of the operand.
func (o Operand) DType() hwy.DType { return o.dtype }

// Len returns the number of elements in the operand.
func (o Operand) Len() int { return o.n }

// Slice returns the operand's elements as []T, or false if the operand does
// not hold T.
func Slice[T hwy.Lanes](o Operand) ([]T, bool) {
	s, ok := o.data.([]T)
	return s, ok
}

func sliceOf[T hwy.Lanes](ops []Operand, i int) ([]T, error) {
	s, ok := Slice[T](ops[i])
	if !ok {
		return nil, errors.Wrapf(ErrShapeMismatch, "operand %d holds %s, kernel expects %s",
			i, ops[i].dtype, hwy.DTypeOf[T]())
	}
	return s, nil
}

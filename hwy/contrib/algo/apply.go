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

package algo

import (
	"fmt"

	"github.com/go-highway/ewise/hwy"
)

// Mode selects which formula computes which part of a run.
type Mode uint8

const (
	// MaskedTail runs the lane formula on full blocks and on the remainder
	// through a partial load/store of exactly the remaining elements.
	MaskedTail Mode = iota
	// ScalarTail runs the lane formula on full blocks and the scalar formula
	// on each remaining element.
	ScalarTail
	// ScalarOnly runs the scalar formula on every element.
	ScalarOnly
)

func (m Mode) String() string {
	switch m {
	case MaskedTail:
		return "masked-tail"
	case ScalarTail:
		return "scalar-tail"
	case ScalarOnly:
		return "scalar-only"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// Unary is a one-input kernel. Scalar and Lanes must agree bit for bit.
type Unary[T hwy.Lanes] interface {
	Scalar(x T) T
	Lanes(x hwy.Vec[T]) hwy.Vec[T]
}

// Binary is a two-input kernel. Operand order is significant.
type Binary[T hwy.Lanes] interface {
	Scalar(a, b T) T
	Lanes(a, b hwy.Vec[T]) hwy.Vec[T]
}

// Ternary is a three-input kernel. Operand order is significant.
type Ternary[T hwy.Lanes] interface {
	Scalar(a, b, c T) T
	Lanes(a, b, c hwy.Vec[T]) hwy.Vec[T]
}

// Split is a one-input kernel producing two outputs per element.
type Split[T hwy.Lanes] interface {
	Scalar(x T) (T, T)
	Lanes(x hwy.Vec[T]) (hwy.Vec[T], hwy.Vec[T])
}

// walk drives a run of n elements. It is hwy.ProcessWithTail with the scalar
// modes folded in: scalar(i) is called per element wherever the mode asks for
// the scalar formula.
func walk[T hwy.Lanes](n int, mode Mode, full func(d int), tail func(d, r int), scalar func(i int)) {
	if mode == ScalarOnly {
		for i := range n {
			scalar(i)
		}
		return
	}
	hwy.ProcessWithTail[T](n, full, func(d, r int) {
		if mode == ScalarTail {
			for i := d; i < d+r; i++ {
				scalar(i)
			}
			return
		}
		tail(d, r)
	})
}

// Apply1 computes out[i] = k(x[i]) for i in [0, len(out)). x must hold at
// least len(out) elements.
func Apply1[T hwy.Lanes, K Unary[T]](out, x []T, k K, mode Mode) {
	walk[T](len(out), mode,
		func(d int) {
			hwy.Store(k.Lanes(hwy.Load(x[d:])), out[d:])
		},
		func(d, r int) {
			m := hwy.TailMask[T](r)
			hwy.MaskStore(m, k.Lanes(hwy.MaskLoad(m, x[d:])), out[d:])
		},
		func(i int) { out[i] = k.Scalar(x[i]) },
	)
}

// Apply2 computes out[i] = k(a[i], b[i]).
func Apply2[T hwy.Lanes, K Binary[T]](out, a, b []T, k K, mode Mode) {
	walk[T](len(out), mode,
		func(d int) {
			hwy.Store(k.Lanes(hwy.Load(a[d:]), hwy.Load(b[d:])), out[d:])
		},
		func(d, r int) {
			m := hwy.TailMask[T](r)
			hwy.MaskStore(m, k.Lanes(hwy.MaskLoad(m, a[d:]), hwy.MaskLoad(m, b[d:])), out[d:])
		},
		func(i int) { out[i] = k.Scalar(a[i], b[i]) },
	)
}

// Apply3 computes out[i] = k(a[i], b[i], c[i]).
func Apply3[T hwy.Lanes, K Ternary[T]](out, a, b, c []T, k K, mode Mode) {
	walk[T](len(out), mode,
		func(d int) {
			hwy.Store(k.Lanes(hwy.Load(a[d:]), hwy.Load(b[d:]), hwy.Load(c[d:])), out[d:])
		},
		func(d, r int) {
			m := hwy.TailMask[T](r)
			v := k.Lanes(hwy.MaskLoad(m, a[d:]), hwy.MaskLoad(m, b[d:]), hwy.MaskLoad(m, c[d:]))
			hwy.MaskStore(m, v, out[d:])
		},
		func(i int) { out[i] = k.Scalar(a[i], b[i], c[i]) },
	)
}

// ApplySplit computes (out1[i], out2[i]) = k(x[i]). out2 and x must hold at
// least len(out1) elements.
func ApplySplit[T hwy.Lanes, K Split[T]](out1, out2, x []T, k K, mode Mode) {
	walk[T](len(out1), mode,
		func(d int) {
			r1, r2 := k.Lanes(hwy.Load(x[d:]))
			hwy.Store(r1, out1[d:])
			hwy.Store(r2, out2[d:])
		},
		func(d, r int) {
			m := hwy.TailMask[T](r)
			r1, r2 := k.Lanes(hwy.MaskLoad(m, x[d:]))
			hwy.MaskStore(m, r1, out1[d:])
			hwy.MaskStore(m, r2, out2[d:])
		},
		func(i int) { out1[i], out2[i] = k.Scalar(x[i]) },
	)
}

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
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/go-highway/ewise/hwy"
)

// Params holds the scalar parameters of one invocation by name, e.g.
// {"negative_slope": 0.1}. Kernels read what they need with Get and convert
// once, when the kernel object is built.
type Params map[string]float64

// Get returns the named parameter, or def when it is absent.
func (p Params) Get(name string, def float64) float64 {
	if v, ok := p[name]; ok {
		return v
	}
	return def
}

// Has reports whether the named parameter is present.
func (p Params) Has(name string) bool {
	_, ok := p[name]
	return ok
}

// Bool interprets the named parameter as a flag: any non-zero value is true.
func (p Params) Bool(name string, def bool) bool {
	if v, ok := p[name]; ok {
		return v != 0
	}
	return def
}

func (p Params) String() string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s=%g", k, p[k])
	}
	sb.WriteByte('}')
	return sb.String()
}

// Convert converts a parameter to the compute type T. Floating-point targets
// accept any value whose magnitude fits (infinities and NaN included);
// integer targets truncate toward zero and reject NaN, infinities and values
// out of range.
func Convert[T hwy.Lanes](name string, v float64) (T, error) {
	var zero T
	switch any(zero).(type) {
	case float64:
		return T(v), nil
	case float32:
		if !math.IsInf(v, 0) && !math.IsNaN(v) && math.Abs(v) > math.MaxFloat32 {
			return zero, errors.Wrapf(ErrInvalidParam, "%s=%g overflows float32", name, v)
		}
		return T(v), nil
	case hwy.Float16, hwy.BFloat16:
		return zero, errors.Wrapf(ErrInvalidParam, "%s: half-precision kernels take float32 parameters", name)
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return zero, errors.Wrapf(ErrInvalidParam, "%s=%g is not an integer", name, v)
	}
	lo, hi := intRange(hwy.DTypeOf[T]())
	t := math.Trunc(v)
	if t < lo || t > hi {
		return zero, errors.Wrapf(ErrInvalidParam, "%s=%g out of range for %s", name, v, hwy.DTypeOf[T]())
	}
	return T(t), nil
}

func intRange(d hwy.DType) (lo, hi float64) {
	switch d {
	case hwy.DTypeInt8:
		return math.MinInt8, math.MaxInt8
	case hwy.DTypeInt16:
		return math.MinInt16, math.MaxInt16
	case hwy.DTypeInt32:
		return math.MinInt32, math.MaxInt32
	case hwy.DTypeInt64:
		// 2^63 is the first float64 above MaxInt64.
		return math.MinInt64, math.Nextafter(math.MaxInt64, 0)
	case hwy.DTypeUint8:
		return 0, math.MaxUint8
	case hwy.DTypeUint16:
		return 0, math.MaxUint16
	case hwy.DTypeUint32:
		return 0, math.MaxUint32
	case hwy.DTypeUint64:
		return 0, math.Nextafter(math.MaxUint64, 0)
	}
	return 0, -1
}

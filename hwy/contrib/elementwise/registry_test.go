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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-highway/ewise/hwy"
	"github.com/go-highway/ewise/hwy/contrib/algo"
)

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	f := NewUnary[float32](buildScale[float32])

	require.NoError(t, reg.Register("scale", hwy.DTypeFloat32, f))
	require.NoError(t, reg.Register("scale", hwy.DTypeInt8, NewUnary[int8](buildScale[int8])))
	require.NoError(t, reg.Register("neg", hwy.DTypeFloat64, NewUnary[float64](buildScale[float64])))

	err := reg.Register("scale", hwy.DTypeFloat32, f)
	assert.ErrorIs(t, err, ErrDuplicateKernel)
	assert.ErrorIs(t, reg.Register("scale", hwy.DTypeInvalid, f), ErrUnsupportedType)
	assert.Error(t, reg.Register("scale", hwy.DTypeUint8, nil))
	assert.Panics(t, func() { reg.MustRegister("scale", hwy.DTypeFloat32, f) })

	got, err := reg.Lookup("scale", hwy.DTypeFloat32)
	require.NoError(t, err)
	outs, ins := got.Arity()
	assert.Equal(t, [2]int{1, 1}, [2]int{outs, ins})
	x, out := []float32{1, -2, 3}, make([]float32, 3)
	task, err := got.Bind(Params{"factor": 2}, []Operand{Of(out), Of(x)})
	require.NoError(t, err)
	task.Run(0, len(x), algo.ScalarOnly)
	assert.Equal(t, []float32{2, -4, 6}, out)

	_, err = reg.Lookup("scale", hwy.DTypeFloat64)
	assert.ErrorIs(t, err, ErrUnsupportedType)
	_, err = reg.Lookup("nope", hwy.DTypeFloat32)
	assert.ErrorIs(t, err, ErrUnsupportedType)

	assert.Equal(t, []Op{"neg", "scale"}, reg.Ops())
	assert.Equal(t, []hwy.DType{hwy.DTypeFloat32, hwy.DTypeInt8}, reg.DTypes("scale"))
	assert.Empty(t, reg.DTypes("nope"))

	_, ok := reg.Grain("scale")
	assert.False(t, ok)
	reg.SetGrain("scale", func(n, workers int) int { return n / workers })
	fn, ok := reg.Grain("scale")
	require.True(t, ok)
	assert.Equal(t, 25, fn(100, 4))
}

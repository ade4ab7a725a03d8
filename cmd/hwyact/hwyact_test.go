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

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--workers", "2"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestInfo(t *testing.T) {
	out, err := run(t, "info")
	require.NoError(t, err)
	assert.Contains(t, out, "level")
	assert.Contains(t, out, "bfloat16")
}

func TestList(t *testing.T) {
	out, err := run(t, "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 28)
	assert.True(t, strings.HasPrefix(lines[0], "Op"), lines[0])
	assert.Contains(t, out, "Dtypes")
	assert.Regexp(t, `gelu\s+1->1\s+custom\s+float32,float64,float16,bfloat16`, out)
	assert.Regexp(t, `log_sigmoid\s+1->2`, out)

	out, err = run(t, "list", "--dtype", "int8")
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "threshold"))

	_, err = run(t, "list", "--dtype", "complex64")
	assert.Error(t, err)
}

func TestVerify(t *testing.T) {
	out, err := run(t, "verify", "--ops", "gelu,elu_backward,threshold", "--dtypes", "float32,bfloat16,uint8", "-n", "1,17,1000")
	require.NoError(t, err)
	// gelu and elu_backward have no uint8 kernel.
	assert.Equal(t, "ok: 21 checks\n", out)

	out, err = run(t, "verify", "--ops", "softshrink", "-p", "lambda=0.25")
	require.NoError(t, err)
	assert.Contains(t, out, "ok:")

	_, err = run(t, "verify", "--ops", "relu6")
	assert.ErrorContains(t, err, "unknown operations [relu6]")

	_, err = run(t, "verify", "--ops", "softplus", "-p", "beta=0")
	assert.Error(t, err)

	_, err = run(t, "verify", "--ops", "elu", "-p", "alpha=abc")
	assert.ErrorContains(t, err, `parameter "alpha"`)
}

func TestBench(t *testing.T) {
	out, err := run(t, "bench", "--op", "silu", "--dtype", "bf16", "-n", "4096", "--iters", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "silu/bfloat16 masked-tail n=4096 workers=2")
	assert.Contains(t, out, "ns/elem")

	out, err = run(t, "bench", "--op", "log_sigmoid_backward", "--mode", "scalar-only", "-n", "100", "--iters", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "scalar-only")

	_, err = run(t, "bench", "--mode", "fast")
	assert.ErrorContains(t, err, `unknown mode "fast"`)

	_, err = run(t, "bench", "--op", "gelu", "--dtype", "int32", "--iters", "1")
	assert.Error(t, err)

	_, err = run(t, "bench", "--iters", "0")
	assert.Error(t, err)
}

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
	"os"
	"strconv"
)

// GrainSizeEnv returns the grain size set by the HWY_GRAIN_SIZE environment
// variable, or 0 when it is unset or not a positive integer.
func GrainSizeEnv() int {
	return positiveIntEnv("HWY_GRAIN_SIZE")
}

// NumWorkersEnv returns the worker count set by HWY_NUM_WORKERS, or 0 when it
// is unset or not a positive integer.
func NumWorkersEnv() int {
	return positiveIntEnv("HWY_NUM_WORKERS")
}

func positiveIntEnv(name string) int {
	val := os.Getenv(name)
	if val == "" {
		return 0
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

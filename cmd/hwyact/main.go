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

// Command hwyact inspects and exercises the activation kernel registry.
//
// Usage:
//
//	hwyact info                         # dispatch level, lane counts, CPU features
//	hwyact list                         # registered ops and their element types
//	hwyact verify -n 4099 --ops gelu    # lane path vs scalar path, bit for bit
//	hwyact bench --op silu --dtype bfloat16 -n 1000000
//
// Worker count and chunk size default to HWY_NUM_WORKERS and HWY_GRAIN_SIZE
// and can be overridden with --workers and --grain.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

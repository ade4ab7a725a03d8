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

package hwy

import (
	"os"
	"strconv"
	"unsafe"
)

// DispatchLevel names the instruction set the lane width was sized for.
type DispatchLevel int

const (
	DispatchScalar DispatchLevel = iota // no SIMD; 16-byte lanes
	DispatchSSE2                        // x86-64 baseline, 128-bit
	DispatchAVX2                        // 256-bit, requires FMA
	DispatchAVX512                      // 512-bit, F+DQ+BW
	DispatchNEON                        // ARM, 128-bit
)

var levelNames = [...]string{
	DispatchScalar: "scalar",
	DispatchSSE2:   "sse2",
	DispatchAVX2:   "avx2",
	DispatchAVX512: "avx512",
	DispatchNEON:   "neon",
}

func (d DispatchLevel) String() string {
	if d < 0 || int(d) >= len(levelNames) {
		return "unknown"
	}
	return levelNames[d]
}

// Set once by init in dispatch_*.go and read-only afterwards.
var (
	currentLevel DispatchLevel
	currentWidth int
)

func setTarget(level DispatchLevel, width int) {
	currentLevel, currentWidth = level, width
}

// CurrentLevel returns the detected dispatch level.
func CurrentLevel() DispatchLevel {
	return currentLevel
}

// CurrentWidth returns the vector width in bytes: 16 for scalar, SSE2 and
// NEON, 32 for AVX2, 64 for AVX-512.
func CurrentWidth() int {
	return currentWidth
}

// CurrentName returns the name of the detected dispatch level.
func CurrentName() string {
	return currentLevel.String()
}

// NoSimdEnv reports whether HWY_NO_SIMD asks for the scalar level. Any
// non-empty value other than a false boolean counts.
func NoSimdEnv() bool {
	val := os.Getenv("HWY_NO_SIMD")
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

func setScalarMode() {
	setTarget(DispatchScalar, 16)
}

// MaxLanes returns the lane count W of a Vec[T]: CurrentWidth divided by the
// size of T. With AVX2 that is 8 for float32, 4 for float64 and 16 for the
// half types.
func MaxLanes[T Lanes]() int {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		return 0
	}
	return currentWidth / size
}

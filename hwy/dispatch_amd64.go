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

//go:build amd64

package hwy

import "golang.org/x/sys/cpu"

// CPU feature flags for float16/bfloat16 support.
var (
	// hasF16C indicates F16C support: float16 <-> float32 conversions (Haswell+)
	hasF16C bool

	// hasAVX512BF16 indicates AVX-512 BF16 support (Cooper Lake+)
	hasAVX512BF16 bool
)

func init() {
	detectFP16BF16Features()

	if NoSimdEnv() {
		setScalarMode()
		return
	}
	detectCPUFeatures()
}

func detectCPUFeatures() {
	switch {
	case cpu.X86.HasAVX512F && cpu.X86.HasAVX512DQ && cpu.X86.HasAVX512BW:
		setTarget(DispatchAVX512, 64)
	case cpu.X86.HasAVX2 && cpu.X86.HasFMA:
		setTarget(DispatchAVX2, 32)
	case cpu.X86.HasSSE2:
		setTarget(DispatchSSE2, 16)
	default:
		setScalarMode()
	}
}

func detectFP16BF16Features() {
	// F16C detection: use FMA as a proxy (F16C is present on all FMA-capable CPUs)
	if cpu.X86.HasAVX {
		hasF16C = cpu.X86.HasFMA
	}
	if cpu.X86.HasAVX512 {
		hasAVX512BF16 = cpu.X86.HasAVX512BF16
	}
}

// HasF16C returns true if the CPU supports F16C instructions.
// F16C provides hardware-accelerated float16 <-> float32 conversions.
func HasF16C() bool {
	return hasF16C
}

// HasAVX512BF16 returns true if the CPU supports AVX-512 BF16 instructions.
func HasAVX512BF16() bool {
	return hasAVX512BF16
}

// HasARMFP16 returns false on x86.
func HasARMFP16() bool {
	return false
}

// HasARMBF16 returns false on x86.
func HasARMBF16() bool {
	return false
}

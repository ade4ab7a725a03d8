//go:build arm64

package hwy

import "golang.org/x/sys/cpu"

func init() {
	if NoSimdEnv() {
		setScalarMode()
		return
	}

	// ASIMD is part of the ARMv8-A base architecture; the check is kept for
	// consistency with the other targets.
	if cpu.ARM64.HasASIMD {
		setTarget(DispatchNEON, 16)
	} else {
		setScalarMode()
	}
}

// HasF16C returns false on ARM.
func HasF16C() bool {
	return false
}

// HasAVX512BF16 returns false on ARM.
func HasAVX512BF16() bool {
	return false
}

// HasARMFP16 reports native half-precision arithmetic (FEAT_FP16).
func HasARMFP16() bool {
	return cpu.ARM64.HasFPHP && cpu.ARM64.HasASIMDHP
}

// HasARMBF16 reports BFloat16 support. x/sys/cpu does not expose FEAT_BF16
// on every OS, so this stays conservative.
func HasARMBF16() bool {
	return false
}

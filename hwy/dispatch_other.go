//go:build !amd64 && !arm64

package hwy

func init() {
	// Non-amd64/arm64 architectures size lanes for 16-byte vectors.
	setScalarMode()
}

// HasF16C returns false on this architecture.
func HasF16C() bool { return false }

// HasAVX512BF16 returns false on this architecture.
func HasAVX512BF16() bool { return false }

// HasARMFP16 returns false on this architecture.
func HasARMFP16() bool { return false }

// HasARMBF16 returns false on this architecture.
func HasARMBF16() bool { return false }

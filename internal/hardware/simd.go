package hardware

import (
	"os"
	"strings"

	"golang.org/x/sys/cpu"
)

// SIMDLevel is the widest vector extension available to the partition kernel.
type SIMDLevel int

const (
	SIMDNone SIMDLevel = iota
	SIMDNEON
	SIMDAVX2
	SIMDAVX512
)

// NoSIMDEnv disables SIMD detection when set to a truthy value.
const NoSIMDEnv = "VSORT_NO_SIMD"

// String returns the conventional name of the extension.
func (l SIMDLevel) String() string {
	switch l {
	case SIMDNone:
		return "none"
	case SIMDNEON:
		return "NEON"
	case SIMDAVX2:
		return "AVX2"
	case SIMDAVX512:
		return "AVX-512"
	default:
		return "unknown"
	}
}

// Width returns the vector register width in bytes.
func (l SIMDLevel) Width() int {
	switch l {
	case SIMDNEON:
		return 16
	case SIMDAVX2:
		return 32
	case SIMDAVX512:
		return 64
	default:
		return 0
	}
}

// detectSIMD reads the runtime feature bits exposed by x/sys/cpu.
func detectSIMD() SIMDLevel {
	if simdDisabled() {
		return SIMDNone
	}
	switch {
	case cpu.X86.HasAVX512F:
		return SIMDAVX512
	case cpu.X86.HasAVX2:
		return SIMDAVX2
	case cpu.ARM64.HasASIMD:
		return SIMDNEON
	}
	return SIMDNone
}

func simdDisabled() bool {
	switch strings.ToLower(os.Getenv(NoSIMDEnv)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

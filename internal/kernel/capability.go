package kernel

import (
	"os"
	"strings"
)

// Impl identifies a row kernel implementation.
type Impl uint8

const (
	// Generic computes one cell per step.
	Generic Impl = iota
	// Unrolled computes four independent cells per step.
	Unrolled
)

// String returns the string representation of an Impl.
func (i Impl) String() string {
	switch i {
	case Generic:
		return "generic"
	case Unrolled:
		return "unrolled"
	default:
		return "unknown"
	}
}

// ParseImpl parses a string into an Impl value.
func ParseImpl(s string) (Impl, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "generic":
		return Generic, true
	case "unrolled":
		return Unrolled, true
	default:
		return Generic, false
	}
}

// EnvOverride names the environment variable that forces a kernel.
const EnvOverride = "GRIDSIG_KERNEL"

// Package-level state, set once during init.
var (
	activeImpl  Impl
	hasOverride bool

	// wide64 is true when the platform has native 64-bit multiplies.
	wide64 bool

	// features lists the CPU features detected by the platform init.
	features []string
)

// initCapabilities is called from platform-specific init functions
// after CPU features are detected.
func initCapabilities() {
	if override := os.Getenv(EnvOverride); override != "" {
		if impl, ok := ParseImpl(override); ok {
			hasOverride = true
			activeImpl = impl
			setKernels(impl)
			return
		}
		// Unknown override - fall through to auto-detection
	}

	activeImpl = selectBest()
	setKernels(activeImpl)
}

func selectBest() Impl {
	if wide64 {
		return Unrolled
	}
	return Generic
}

// Active returns the active row kernel.
func Active() Impl {
	return activeImpl
}

// IsOverridden returns true if GRIDSIG_KERNEL selected the kernel.
func IsOverridden() bool {
	return hasOverride
}

// Features returns the CPU features reported by the platform.
func Features() []string {
	out := make([]string, len(features))
	copy(out, features)
	return out
}

package gridsig

import "github.com/hupe1980/gridsig/internal/kernel"

// KernelInfo describes the row kernel selected for this process.
type KernelInfo struct {
	// Name is "generic" or "unrolled".
	Name string
	// Overridden is true when GRIDSIG_KERNEL forced the choice.
	Overridden bool
	// CPUFeatures lists the CPU features detected at startup.
	CPUFeatures []string
}

// Kernel reports the active row kernel.
func Kernel() KernelInfo {
	return KernelInfo{
		Name:        kernel.Active().String(),
		Overridden:  kernel.IsOverridden(),
		CPUFeatures: kernel.Features(),
	}
}

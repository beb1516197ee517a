//go:build amd64

package kernel

import "golang.org/x/sys/cpu"

func init() {
	wide64 = true
	if cpu.X86.HasBMI2 {
		features = append(features, "bmi2")
	}
	if cpu.X86.HasAVX2 {
		features = append(features, "avx2")
	}
	if cpu.X86.HasAVX512F {
		features = append(features, "avx512f")
	}
	initCapabilities()
}

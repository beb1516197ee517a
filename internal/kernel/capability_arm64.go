//go:build arm64

package kernel

import "golang.org/x/sys/cpu"

func init() {
	wide64 = true
	if cpu.ARM64.HasASIMD {
		features = append(features, "asimd")
	}
	if cpu.ARM64.HasSVE2 {
		features = append(features, "sve2")
	}
	initCapabilities()
}

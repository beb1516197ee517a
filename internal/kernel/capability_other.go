//go:build !amd64 && !arm64

package kernel

import "runtime"

func init() {
	switch runtime.GOARCH {
	case "ppc64", "ppc64le", "s390x", "riscv64", "loong64", "mips64", "mips64le":
		wide64 = true
	}
	initCapabilities()
}

package kernel

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"testing"
)

// TestMain prints which row kernel is active so CI logs show what ran.
func TestMain(m *testing.M) {
	fmt.Printf("=== Kernel Diagnostics ===\n")
	fmt.Printf("GOOS=%s GOARCH=%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Printf("%s=%q\n", EnvOverride, os.Getenv(EnvOverride))
	fmt.Printf("Active kernel: %s\n", Active())
	fmt.Printf("Override: %v\n", IsOverridden())
	fmt.Printf("CPU Features: %s\n", strings.Join(Features(), ","))
	fmt.Printf("==========================\n\n")

	os.Exit(m.Run())
}

package main

import (
	"math"
	"unsafe"

	"github.com/hupe1980/gridsig"
)

// signature3x3 reads nine samples at source. A nil source yields 0.
func signature3x3(source unsafe.Pointer, seed uint64) (sig uint64) {
	if source == nil {
		return 0
	}
	defer func() {
		if recover() != nil {
			sig = 0
		}
	}()
	src := unsafe.Slice((*uint32)(source), 9)
	return gridsig.Signature3x3(src, seed)
}

// computeSignatures views source and destination as width*height buffers and
// fills the interior of destination. Invalid arguments leave destination
// untouched.
func computeSignatures(source, destination unsafe.Pointer, width, height int32, seed uint64) {
	if source == nil || destination == nil || width < 3 || height < 3 {
		return
	}
	n := int64(width) * int64(height)
	if n > math.MaxInt/8 {
		return
	}
	defer func() {
		_ = recover()
	}()
	src := unsafe.Slice((*uint32)(source), int(n))
	dst := unsafe.Slice((*uint64)(destination), int(n))
	gridsig.Compute(src, dst, int(width), int(height), seed)
}

// main is required for package main; it is unused when built as a c-shared library.
func main() {}

package gridsig

import "github.com/hupe1980/gridsig/internal/kernel"

// DefaultSeed is the seed used when callers have no reason to pick another.
const DefaultSeed uint64 = 67890

// Mix returns the signature of one 3x3 neighborhood under seed.
//
// Arguments are the nine samples in row-major order: top-left, top-center,
// top-right, middle-left, middle-center, middle-right, bottom-left,
// bottom-center, bottom-right. Every input is valid and zero is a legal
// result.
func Mix(tl, tc, tr, ml, mc, mr, bl, bc, br uint32, seed uint64) uint64 {
	return kernel.Mix(tl, tc, tr, ml, mc, mr, bl, bc, br, seed)
}

// Signature3x3 returns the signature of the neighborhood stored row-major in
// the first nine elements of src. It returns 0 if src holds fewer than nine
// samples, which includes a nil slice.
func Signature3x3(src []uint32, seed uint64) uint64 {
	if len(src) < kernel.NeighborhoodSize {
		return 0
	}
	return kernel.MixSlice(src, seed)
}

// Compute writes the signature of every interior cell of the row-major
// width×height grid in src into the same position of dst.
//
// Border cells of dst are never written, and src is never modified. Compute
// does nothing if either slice is nil, if width or height is below 3, or if
// either slice holds fewer than width*height elements.
func Compute(src []uint32, dst []uint64, width, height int, seed uint64) {
	if src == nil || dst == nil || width < 3 || height < 3 {
		return
	}
	n, ok := cellCount(width, height)
	if !ok || len(src) < n || len(dst) < n {
		return
	}
	kernel.Rows(src, dst, width, 1, height-1, seed)
}

// cellCount returns width*height, or false if the product overflows int.
func cellCount(width, height int) (int, bool) {
	if width < 0 || height < 0 {
		return 0, false
	}
	if width == 0 || height == 0 {
		return 0, true
	}
	n := width * height
	if n/width != height {
		return 0, false
	}
	return n, true
}

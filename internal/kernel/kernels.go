package kernel

// Kernel function pointer - set once at init. The generic implementation is
// the default; platform init overrides it when a better kernel applies.
var kernelRow = rowGeneric

func setKernels(impl Impl) {
	switch impl {
	case Unrolled:
		kernelRow = rowUnrolled
	default:
		kernelRow = rowGeneric
	}
}

// Row computes the interior signatures of row y in a row-major grid of the
// given width and writes them into dst at the same offsets. Cells at x == 0
// and x == width-1 are not written.
//
// SAFETY: Assumes width >= 3, 1 <= y, and that src and dst both hold at least
// (y+2)*width elements. Caller MUST check.
func Row(src []uint32, dst []uint64, width, y int, seed uint64) {
	kernelRow(
		src[(y-1)*width:y*width],
		src[y*width:(y+1)*width],
		src[(y+1)*width:(y+2)*width],
		dst[y*width:(y+1)*width],
		seed,
	)
}

// Rows computes the interior rows y0 through y1-1.
//
// SAFETY: Same preconditions as Row for every y in [y0, y1).
func Rows(src []uint32, dst []uint64, width, y0, y1 int, seed uint64) {
	for y := y0; y < y1; y++ {
		Row(src, dst, width, y, seed)
	}
}

func rowGeneric(top, mid, bot []uint32, out []uint64, seed uint64) {
	n := len(out)
	if n < 3 {
		return
	}
	_, _, _ = top[n-1], mid[n-1], bot[n-1]

	s := seedState(seed)
	for x := 1; x < n-1; x++ {
		out[x] = mixSeeded(s,
			top[x-1], top[x], top[x+1],
			mid[x-1], mid[x], mid[x+1],
			bot[x-1], bot[x], bot[x+1],
		)
	}
}

func rowUnrolled(top, mid, bot []uint32, out []uint64, seed uint64) {
	n := len(out)
	if n < 3 {
		return
	}
	_, _, _ = top[n-1], mid[n-1], bot[n-1]

	s := seedState(seed)
	x := 1
	for ; x+4 <= n-1; x += 4 {
		a0, a1, a2, a3 := s, s, s, s

		a0 = (a0 ^ uint64(top[x-1])) * P3
		a1 = (a1 ^ uint64(top[x])) * P3
		a2 = (a2 ^ uint64(top[x+1])) * P3
		a3 = (a3 ^ uint64(top[x+2])) * P3

		a0 = (a0 ^ uint64(top[x])) * P4
		a1 = (a1 ^ uint64(top[x+1])) * P4
		a2 = (a2 ^ uint64(top[x+2])) * P4
		a3 = (a3 ^ uint64(top[x+3])) * P4

		a0 = (a0 ^ uint64(top[x+1])) * P5
		a1 = (a1 ^ uint64(top[x+2])) * P5
		a2 = (a2 ^ uint64(top[x+3])) * P5
		a3 = (a3 ^ uint64(top[x+4])) * P5

		a0 = (a0 ^ uint64(mid[x-1])) * P6
		a1 = (a1 ^ uint64(mid[x])) * P6
		a2 = (a2 ^ uint64(mid[x+1])) * P6
		a3 = (a3 ^ uint64(mid[x+2])) * P6

		a0 = (a0 ^ uint64(mid[x])) * P7
		a1 = (a1 ^ uint64(mid[x+1])) * P7
		a2 = (a2 ^ uint64(mid[x+2])) * P7
		a3 = (a3 ^ uint64(mid[x+3])) * P7

		a0 = (a0 ^ uint64(mid[x+1])) * P8
		a1 = (a1 ^ uint64(mid[x+2])) * P8
		a2 = (a2 ^ uint64(mid[x+3])) * P8
		a3 = (a3 ^ uint64(mid[x+4])) * P8

		a0 = (a0 ^ uint64(bot[x-1])) * P9
		a1 = (a1 ^ uint64(bot[x])) * P9
		a2 = (a2 ^ uint64(bot[x+1])) * P9
		a3 = (a3 ^ uint64(bot[x+2])) * P9

		a0 = (a0 ^ uint64(bot[x])) * P10
		a1 = (a1 ^ uint64(bot[x+1])) * P10
		a2 = (a2 ^ uint64(bot[x+2])) * P10
		a3 = (a3 ^ uint64(bot[x+3])) * P10

		a0 = (a0 ^ uint64(bot[x+1])) * P11
		a1 = (a1 ^ uint64(bot[x+2])) * P11
		a2 = (a2 ^ uint64(bot[x+3])) * P11
		a3 = (a3 ^ uint64(bot[x+4])) * P11

		out[x], out[x+1], out[x+2], out[x+3] = a0, a1, a2, a3
	}

	for ; x < n-1; x++ {
		out[x] = mixSeeded(s,
			top[x-1], top[x], top[x+1],
			mid[x-1], mid[x], mid[x+1],
			bot[x-1], bot[x], bot[x+1],
		)
	}
}

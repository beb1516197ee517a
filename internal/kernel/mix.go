package kernel

// Mixing multipliers. All odd, all fixed.
const (
	P1  uint64 = 0x9E3779B97F4A7C15
	P2  uint64 = 0xC4CEB9FE1A85EC53
	P3  uint64 = 0x165667B19E3779F1
	P4  uint64 = 0x1F79A7AECA2324A5
	P5  uint64 = 0x9616EF3348634979
	P6  uint64 = 0xB8F65595A4934737
	P7  uint64 = 0x0BEB655452634B2B
	P8  uint64 = 0x6295C58D548264A9
	P9  uint64 = 0x11A2968551968C31
	P10 uint64 = 0xEEEF07997F4A7C5B
	P11 uint64 = 0x0CF6FD4E4863490B
)

// NeighborhoodSize is the number of samples in a 3x3 neighborhood.
const NeighborhoodSize = 9

// Mix returns the signature of a 3x3 neighborhood under seed.
//
// Samples are taken in row-major order: top-left, top-center, top-right,
// middle-left, middle-center, middle-right, bottom-left, bottom-center,
// bottom-right. All arithmetic wraps modulo 2^64.
func Mix(tl, tc, tr, ml, mc, mr, bl, bc, br uint32, seed uint64) uint64 {
	return mixSeeded(seedState(seed), tl, tc, tr, ml, mc, mr, bl, bc, br)
}

// seedState is the accumulator after the seed has been folded in.
// It depends only on the seed, so row kernels compute it once per row.
func seedState(seed uint64) uint64 {
	return (P1 ^ seed) * P2
}

func mixSeeded(acc uint64, tl, tc, tr, ml, mc, mr, bl, bc, br uint32) uint64 {
	acc = (acc ^ uint64(tl)) * P3
	acc = (acc ^ uint64(tc)) * P4
	acc = (acc ^ uint64(tr)) * P5
	acc = (acc ^ uint64(ml)) * P6
	acc = (acc ^ uint64(mc)) * P7
	acc = (acc ^ uint64(mr)) * P8
	acc = (acc ^ uint64(bl)) * P9
	acc = (acc ^ uint64(bc)) * P10
	acc = (acc ^ uint64(br)) * P11
	return acc
}

// MixSlice returns the signature of the first nine samples of n.
//
// SAFETY: Assumes len(n) >= NeighborhoodSize. Caller MUST check.
func MixSlice(n []uint32, seed uint64) uint64 {
	_ = n[8]
	return Mix(n[0], n[1], n[2], n[3], n[4], n[5], n[6], n[7], n[8], seed)
}

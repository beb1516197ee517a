package kernel

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randSamples(r *rand.Rand, n int) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		out[i] = r.Uint32()
	}
	return out
}

func referenceRow(src []uint32, dst []uint64, width, y int, seed uint64) {
	for x := 1; x < width-1; x++ {
		b := (y-1)*width + (x - 1)
		dst[y*width+x] = Mix(
			src[b], src[b+1], src[b+2],
			src[b+width], src[b+width+1], src[b+width+2],
			src[b+2*width], src[b+2*width+1], src[b+2*width+2],
			seed,
		)
	}
}

func TestRowKernels_MatchReference(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	kernels := map[string]func(top, mid, bot []uint32, out []uint64, seed uint64){
		"generic":  rowGeneric,
		"unrolled": rowUnrolled,
	}

	for _, width := range []int{3, 4, 5, 6, 7, 8, 9, 13, 64, 67} {
		src := randSamples(r, width*3)
		seed := r.Uint64()

		want := make([]uint64, width*3)
		referenceRow(src, want, width, 1, seed)

		for name, fn := range kernels {
			got := make([]uint64, width*3)
			fn(src[:width], src[width:2*width], src[2*width:], got[width:2*width], seed)
			require.Equal(t, want, got, "kernel=%s width=%d", name, width)
		}
	}
}

func TestRow_LeavesBorderColumns(t *testing.T) {
	const width = 6
	src := randSamples(rand.New(rand.NewSource(2)), width*3)
	dst := make([]uint64, width*3)
	for i := range dst {
		dst[i] = 0xDEADBEEF
	}

	Row(src, dst, width, 1, 67890)

	assert.Equal(t, uint64(0xDEADBEEF), dst[width])
	assert.Equal(t, uint64(0xDEADBEEF), dst[2*width-1])
	for i := 0; i < width; i++ {
		assert.Equal(t, uint64(0xDEADBEEF), dst[i], "top row touched at %d", i)
		assert.Equal(t, uint64(0xDEADBEEF), dst[2*width+i], "bottom row touched at %d", i)
	}
}

func TestRows_FourByFour(t *testing.T) {
	src := make([]uint32, 16)
	for i := range src {
		src[i] = uint32(i + 1)
	}
	dst := make([]uint64, 16)

	Rows(src, dst, 4, 1, 3, 67890)

	assert.Equal(t, uint64(0), dst[0])
	assert.Equal(t, uint64(0xeaa36158dfba796b), dst[5])
	assert.Equal(t, uint64(0x861c1aca952f0872), dst[6])
	assert.Equal(t, uint64(0x490a82714a437a4f), dst[9])
	assert.Equal(t, uint64(0x188db4b8d295748e), dst[10])
}

func TestParseImpl(t *testing.T) {
	impl, ok := ParseImpl(" Unrolled ")
	assert.True(t, ok)
	assert.Equal(t, Unrolled, impl)

	impl, ok = ParseImpl("avx9000")
	assert.False(t, ok)
	assert.Equal(t, Generic, impl)

	assert.Equal(t, "generic", Generic.String())
	assert.Equal(t, "unknown", Impl(42).String())
}

func TestSetKernels(t *testing.T) {
	defer setKernels(Active())

	src := randSamples(rand.New(rand.NewSource(3)), 10*3)
	var outs [2][]uint64
	for i, impl := range []Impl{Generic, Unrolled} {
		setKernels(impl)
		outs[i] = make([]uint64, 30)
		Row(src, outs[i], 10, 1, 7)
	}
	assert.Equal(t, outs[0], outs[1])
}

package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMix_KnownVectors(t *testing.T) {
	tests := []struct {
		name string
		n    [9]uint32
		seed uint64
		want uint64
	}{
		{"default seed", [9]uint32{1, 2, 3, 4, 5, 6, 7, 8, 9}, 67890, 0x6e1fe37ccb5f6f34},
		{"seed 12345", [9]uint32{1, 2, 3, 4, 5, 6, 7, 8, 9}, 12345, 0xde1ed303ea6a7ab5},
		{"seed 54321", [9]uint32{1, 2, 3, 4, 5, 6, 7, 8, 9}, 54321, 0xe02e12742badf4bd},
		{"zero seed", [9]uint32{1, 2, 3, 4, 5, 6, 7, 8, 9}, 0, 0x9b15efb87a3ee99e},
		{"corners swapped", [9]uint32{9, 2, 3, 4, 5, 6, 7, 8, 1}, 67890, 0x07339a7152aa8614},
		{"all zero", [9]uint32{}, 0, 0x638b92be16e88a97},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tt.n
			got := Mix(n[0], n[1], n[2], n[3], n[4], n[5], n[6], n[7], n[8], tt.seed)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, MixSlice(n[:], tt.seed))
		})
	}
}

func TestMix_Deterministic(t *testing.T) {
	for i := 0; i < 100; i++ {
		a := Mix(1, 2, 3, 4, 5, 6, 7, 8, 9, uint64(i))
		b := Mix(1, 2, 3, 4, 5, 6, 7, 8, 9, uint64(i))
		require.Equal(t, a, b)
	}
}

func TestMix_SeedSensitivity(t *testing.T) {
	a := Mix(1, 2, 3, 4, 5, 6, 7, 8, 9, 12345)
	b := Mix(1, 2, 3, 4, 5, 6, 7, 8, 9, 54321)
	assert.NotEqual(t, a, b)
}

func TestMix_PositionSensitivity(t *testing.T) {
	base := [9]uint32{1, 2, 3, 4, 5, 6, 7, 8, 9}
	want := MixSlice(base[:], 67890)

	for i := 0; i < 9; i++ {
		for j := i + 1; j < 9; j++ {
			n := base
			n[i], n[j] = n[j], n[i]
			assert.NotEqual(t, want, MixSlice(n[:], 67890), "swap %d<->%d", i, j)
		}
	}
}

func TestMix_FullWidthSamples(t *testing.T) {
	const maxU32 = ^uint32(0)
	a := Mix(maxU32, maxU32, maxU32, maxU32, maxU32, maxU32, maxU32, maxU32, maxU32, ^uint64(0))
	b := Mix(maxU32, maxU32, maxU32, maxU32, maxU32-1, maxU32, maxU32, maxU32, maxU32, ^uint64(0))
	assert.NotEqual(t, a, b)
}

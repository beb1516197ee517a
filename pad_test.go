package gridsig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGrid(t *testing.T, w, h int, samples ...uint32) *Grid {
	t.Helper()
	g, err := GridFrom(samples, w, h)
	require.NoError(t, err)
	return g
}

func TestPad_Layout(t *testing.T) {
	region := mustGrid(t, 3, 2,
		1, 2, 3,
		4, 5, 6,
	)
	nb := Neighbors{
		Left:   mustGrid(t, 2, 2, 10, 11, 12, 13),
		Right:  mustGrid(t, 1, 2, 20, 21),
		Top:    mustGrid(t, 3, 2, 0, 0, 0, 30, 31, 32),
		Bottom: mustGrid(t, 3, 1, 40, 41, 42),
	}

	padded, err := Pad(region, nb, 99)
	require.NoError(t, err)
	assert.Equal(t, Shape{5, 4}, padded.Shape())
	assert.Equal(t, []uint32{
		99, 30, 31, 32, 99,
		11, 1, 2, 3, 20,
		13, 4, 5, 6, 21,
		99, 40, 41, 42, 99,
	}, padded.Samples)
}

func TestPad_NoNeighbors(t *testing.T) {
	region := mustGrid(t, 1, 1, 5)

	padded, err := Pad(region, Neighbors{}, 7)
	require.NoError(t, err)
	assert.Equal(t, []uint32{7, 7, 7, 7, 5, 7, 7, 7, 7}, padded.Samples)
}

func TestPad_ShapeErrors(t *testing.T) {
	region := mustGrid(t, 3, 2, 1, 2, 3, 4, 5, 6)

	_, err := Pad(region, Neighbors{Left: mustGrid(t, 1, 3, 1, 2, 3)}, 0)
	var sm *ErrShapeMismatch
	require.ErrorAs(t, err, &sm)
	assert.Equal(t, Shape{1, 2}, sm.Expected)

	_, err = Pad(region, Neighbors{Top: mustGrid(t, 2, 1, 1, 2)}, 0)
	require.ErrorAs(t, err, &sm)
	assert.Equal(t, Shape{3, 1}, sm.Expected)

	_, err = Pad(nil, Neighbors{}, 0)
	assert.ErrorIs(t, err, ErrNilGrid)
}

func TestWalkPadded_SignsEveryCell(t *testing.T) {
	region := mustGrid(t, 2, 2,
		1, 2,
		3, 4,
	)
	right := mustGrid(t, 1, 2, 8, 9)
	const f = 0

	sigs, err := NewWalker().WalkPadded(t.Context(), region, Neighbors{Right: right}, f, DefaultSeed)
	require.NoError(t, err)
	require.Equal(t, Shape{2, 2}, sigs.Shape())

	want := []uint64{
		Mix(f, f, f, f, 1, 2, f, 3, 4, DefaultSeed),
		Mix(f, f, f, 1, 2, 8, 3, 4, 9, DefaultSeed),
		Mix(f, 1, 2, f, 3, 4, f, f, f, DefaultSeed),
		Mix(1, 2, 8, 3, 4, 9, f, f, f, DefaultSeed),
	}
	assert.Equal(t, want, sigs.Values)
	assert.Equal(t, DefaultSeed, sigs.Seed)
}

func TestUnpad(t *testing.T) {
	s, err := SignaturesFrom([]uint64{
		0, 0, 0, 0,
		0, 1, 2, 0,
		0, 3, 4, 0,
		0, 0, 0, 0,
	}, 4, 4, 3)
	require.NoError(t, err)

	out, err := Unpad(s)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3, 4}, out.Values)
	assert.Equal(t, uint64(3), out.Seed)

	tiny, _ := NewSignatures(2, 2)
	_, err = Unpad(tiny)
	assert.ErrorIs(t, err, ErrGridTooSmall)
}

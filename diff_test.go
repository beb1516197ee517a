package gridsig

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func walk(t *testing.T, g *Grid) *Signatures {
	t.Helper()
	s, err := NewWalker().Walk(t.Context(), g, DefaultSeed)
	require.NoError(t, err)
	return s
}

func TestDiff_Identical(t *testing.T) {
	g := randomGrid(t, 7, 12, 9)
	a, b := walk(t, g), walk(t, g.Clone())

	c, err := Diff(a, b)
	require.NoError(t, err)
	assert.True(t, c.Empty())
	assert.Zero(t, c.Count())
	_, _, ok := c.Bounds()
	assert.False(t, ok)
}

func TestDiff_SingleSampleChange(t *testing.T) {
	g := randomGrid(t, 8, 10, 10)
	before := walk(t, g)

	changed := g.Clone()
	v, _ := changed.At(4, 6)
	changed.Set(4, 6, v+1)
	after := walk(t, changed)

	c, err := Diff(before, after)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), c.Count())

	var want []Cell
	for y := 5; y <= 7; y++ {
		for x := 3; x <= 5; x++ {
			want = append(want, Cell{x, y})
			assert.True(t, c.Contains(x, y))
		}
	}
	assert.Equal(t, want, slices.Collect(c.Cells()))

	lo, hi, ok := c.Bounds()
	require.True(t, ok)
	assert.Equal(t, Cell{3, 5}, lo)
	assert.Equal(t, Cell{5, 7}, hi)
	assert.Equal(t, uint64(9), c.Bitmap().GetCardinality())
}

func TestDiff_CornerChangeClipsToInterior(t *testing.T) {
	g := randomGrid(t, 9, 6, 6)
	before := walk(t, g)

	changed := g.Clone()
	changed.Set(0, 0, 12345)
	c, err := Diff(before, walk(t, changed))
	require.NoError(t, err)

	assert.Equal(t, []Cell{{1, 1}}, slices.Collect(c.Cells()))
}

func TestDiff_IgnoresBorder(t *testing.T) {
	a, _ := NewSignatures(3, 3)
	b, _ := NewSignatures(3, 3)
	b.FillBorder(1)

	c, err := Diff(a, b)
	require.NoError(t, err)
	assert.True(t, c.Empty())
}

func TestDiff_ShapeMismatch(t *testing.T) {
	a, _ := NewSignatures(4, 4)
	b, _ := NewSignatures(4, 5)

	_, err := Diff(a, b)
	var sm *ErrShapeMismatch
	assert.ErrorAs(t, err, &sm)
}

func TestChanges_Union(t *testing.T) {
	g := randomGrid(t, 10, 8, 8)
	base := walk(t, g)

	g1 := g.Clone()
	g1.Set(2, 2, 0)
	g2 := g.Clone()
	g2.Set(5, 5, 0)

	c1, err := Diff(base, walk(t, g1))
	require.NoError(t, err)
	c2, err := Diff(base, walk(t, g2))
	require.NoError(t, err)

	u, err := c1.Union(c2)
	require.NoError(t, err)
	assert.Equal(t, c1.Count()+c2.Count(), u.Count())
}

func TestDiffer_RecordsMetrics(t *testing.T) {
	mc := &BasicMetricsCollector{}
	a, _ := NewSignatures(4, 4)
	b, _ := NewSignatures(4, 4)
	b.Values[5] = 1

	c, err := NewDiffer(WithMetricsCollector(mc)).Diff(t.Context(), a, b)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), c.Count())
	assert.Equal(t, int64(1), mc.GetStats().DiffChanged)
}

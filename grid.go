package gridsig

import (
	"iter"
	"slices"
)

// Positions within a Neighborhood.
const (
	TopLeft = iota
	TopCenter
	TopRight
	MiddleLeft
	MiddleCenter
	MiddleRight
	BottomLeft
	BottomCenter
	BottomRight
)

// Neighborhood is a 3x3 block of samples in row-major order.
type Neighborhood [9]uint32

// Signature returns the signature of n under seed.
func (n Neighborhood) Signature(seed uint64) uint64 {
	return Mix(n[0], n[1], n[2], n[3], n[4], n[5], n[6], n[7], n[8], seed)
}

// Swap returns a copy of n with positions i and j exchanged.
func (n Neighborhood) Swap(i, j int) Neighborhood {
	n[i], n[j] = n[j], n[i]
	return n
}

// Cell is a grid coordinate. X is the column, Y the row.
type Cell struct {
	X, Y int
}

// Grid is a row-major 2D array of samples.
//
// The zero value is an empty grid. Grids do not copy the samples they are
// built from; callers must not mutate Samples while a walk is running.
type Grid struct {
	Width   int
	Height  int
	Samples []uint32
}

// NewGrid allocates a zero-filled grid.
func NewGrid(width, height int) (*Grid, error) {
	n, ok := cellCount(width, height)
	if !ok {
		return nil, ErrInvalidDimensions
	}
	return &Grid{Width: width, Height: height, Samples: make([]uint32, n)}, nil
}

// GridFrom wraps samples as a width×height grid without copying.
func GridFrom(samples []uint32, width, height int) (*Grid, error) {
	n, ok := cellCount(width, height)
	if !ok {
		return nil, ErrInvalidDimensions
	}
	if len(samples) != n {
		return nil, &ErrLengthMismatch{Shape: Shape{width, height}, Length: len(samples)}
	}
	return &Grid{Width: width, Height: height, Samples: samples}, nil
}

// Shape returns the grid's dimensions.
func (g *Grid) Shape() Shape {
	return Shape{g.Width, g.Height}
}

// In reports whether (x, y) lies inside the grid.
func (g *Grid) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

// IsInterior reports whether (x, y) has a full 3x3 neighborhood.
func (g *Grid) IsInterior(x, y int) bool {
	return x >= 1 && y >= 1 && x < g.Width-1 && y < g.Height-1
}

// At returns the sample at (x, y).
func (g *Grid) At(x, y int) (uint32, bool) {
	if !g.In(x, y) {
		return 0, false
	}
	return g.Samples[y*g.Width+x], true
}

// Set stores v at (x, y). It reports false if (x, y) is outside the grid.
func (g *Grid) Set(x, y int, v uint32) bool {
	if !g.In(x, y) {
		return false
	}
	g.Samples[y*g.Width+x] = v
	return true
}

// Neighborhood returns the 3x3 block centered on the interior cell (x, y).
func (g *Grid) Neighborhood(x, y int) (Neighborhood, bool) {
	var n Neighborhood
	if !g.IsInterior(x, y) {
		return n, false
	}
	w := g.Width
	base := (y-1)*w + (x - 1)
	copy(n[0:3], g.Samples[base:base+3])
	copy(n[3:6], g.Samples[base+w:base+w+3])
	copy(n[6:9], g.Samples[base+2*w:base+2*w+3])
	return n, true
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	return &Grid{Width: g.Width, Height: g.Height, Samples: slices.Clone(g.Samples)}
}

// validate checks that the grid's buffer matches its dimensions.
func (g *Grid) validate() error {
	if g == nil {
		return ErrNilGrid
	}
	n, ok := cellCount(g.Width, g.Height)
	if !ok {
		return ErrInvalidDimensions
	}
	if len(g.Samples) != n {
		return &ErrLengthMismatch{Shape: g.Shape(), Length: len(g.Samples)}
	}
	return nil
}

// Signatures is a row-major surface of signatures with the same shape as the
// grid it was computed from.
type Signatures struct {
	Width  int
	Height int
	// Seed is the seed the surface was computed with.
	Seed   uint64
	Values []uint64
}

// NewSignatures allocates a zero-filled surface.
func NewSignatures(width, height int) (*Signatures, error) {
	n, ok := cellCount(width, height)
	if !ok {
		return nil, ErrInvalidDimensions
	}
	return &Signatures{Width: width, Height: height, Values: make([]uint64, n)}, nil
}

// SignaturesFrom wraps values as a width×height surface without copying.
func SignaturesFrom(values []uint64, width, height int, seed uint64) (*Signatures, error) {
	n, ok := cellCount(width, height)
	if !ok {
		return nil, ErrInvalidDimensions
	}
	if len(values) != n {
		return nil, &ErrLengthMismatch{Shape: Shape{width, height}, Length: len(values)}
	}
	return &Signatures{Width: width, Height: height, Seed: seed, Values: values}, nil
}

// Shape returns the surface's dimensions.
func (s *Signatures) Shape() Shape {
	return Shape{s.Width, s.Height}
}

// At returns the signature at (x, y).
func (s *Signatures) At(x, y int) (uint64, bool) {
	if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
		return 0, false
	}
	return s.Values[y*s.Width+x], true
}

// Interior yields every interior cell and its signature in row-major order.
func (s *Signatures) Interior() iter.Seq2[Cell, uint64] {
	return func(yield func(Cell, uint64) bool) {
		for y := 1; y < s.Height-1; y++ {
			row := s.Values[y*s.Width : (y+1)*s.Width]
			for x := 1; x < s.Width-1; x++ {
				if !yield(Cell{x, y}, row[x]) {
					return
				}
			}
		}
	}
}

// FillBorder sets every border cell to v.
func (s *Signatures) FillBorder(v uint64) {
	if s.Width == 0 || s.Height == 0 {
		return
	}
	w, h := s.Width, s.Height
	for x := range w {
		s.Values[x] = v
		s.Values[(h-1)*w+x] = v
	}
	for y := 1; y < h-1; y++ {
		s.Values[y*w] = v
		s.Values[y*w+w-1] = v
	}
}

// Equal reports whether two surfaces have the same shape and values.
func (s *Signatures) Equal(o *Signatures) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.Width == o.Width && s.Height == o.Height && slices.Equal(s.Values, o.Values)
}

func (s *Signatures) validate() error {
	if s == nil {
		return ErrNilGrid
	}
	n, ok := cellCount(s.Width, s.Height)
	if !ok {
		return ErrInvalidDimensions
	}
	if len(s.Values) != n {
		return &ErrLengthMismatch{Shape: s.Shape(), Length: len(s.Values)}
	}
	return nil
}

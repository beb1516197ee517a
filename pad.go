package gridsig

// Neighbors holds the regions adjacent to a region being padded. A nil
// neighbor contributes the fill value instead of its edge.
type Neighbors struct {
	Left   *Grid
	Right  *Grid
	Top    *Grid
	Bottom *Grid
}

// Pad embeds region in a grid one cell larger on every side. The new border
// is taken from the facing edge of each neighbor: the last column of Left,
// the first column of Right, the last row of Top and the first row of Bottom.
// Left and Right must match region's height, Top and Bottom its width.
// Corner cells and the sides of absent neighbors are set to fill.
func Pad(region *Grid, nb Neighbors, fill uint32) (*Grid, error) {
	if err := region.validate(); err != nil {
		return nil, err
	}
	if err := nb.validate(region); err != nil {
		return nil, err
	}

	w, h := region.Width, region.Height
	pw := w + 2
	padded, err := NewGrid(pw, h+2)
	if err != nil {
		return nil, err
	}
	if fill != 0 {
		for i := range padded.Samples {
			padded.Samples[i] = fill
		}
	}

	for y := range h {
		copy(padded.Samples[(y+1)*pw+1:(y+1)*pw+1+w], region.Samples[y*w:(y+1)*w])
	}
	if nb.Top != nil {
		tw := nb.Top.Width
		copy(padded.Samples[1:1+w], nb.Top.Samples[(nb.Top.Height-1)*tw:])
	}
	if nb.Bottom != nil {
		copy(padded.Samples[(h+1)*pw+1:(h+1)*pw+1+w], nb.Bottom.Samples[:w])
	}
	if nb.Left != nil {
		lw := nb.Left.Width
		for y := range h {
			padded.Samples[(y+1)*pw] = nb.Left.Samples[y*lw+lw-1]
		}
	}
	if nb.Right != nil {
		rw := nb.Right.Width
		for y := range h {
			padded.Samples[(y+1)*pw+pw-1] = nb.Right.Samples[y*rw]
		}
	}
	return padded, nil
}

// Unpad strips the one-cell border from a surface computed over a padded
// grid, returning a surface with the original region's shape.
func Unpad(s *Signatures) (*Signatures, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	if s.Width < 3 || s.Height < 3 {
		return nil, ErrGridTooSmall
	}

	w, h := s.Width-2, s.Height-2
	out, err := NewSignatures(w, h)
	if err != nil {
		return nil, err
	}
	out.Seed = s.Seed
	for y := range h {
		copy(out.Values[y*w:(y+1)*w], s.Values[(y+1)*s.Width+1:])
	}
	return out, nil
}

func (nb Neighbors) validate(region *Grid) error {
	sides := []struct {
		g        *Grid
		vertical bool
	}{
		{nb.Left, true},
		{nb.Right, true},
		{nb.Top, false},
		{nb.Bottom, false},
	}
	for _, s := range sides {
		if s.g == nil {
			continue
		}
		if err := s.g.validate(); err != nil {
			return err
		}
		if s.vertical && s.g.Height != region.Height {
			return &ErrShapeMismatch{
				Expected: Shape{s.g.Width, region.Height},
				Actual:   s.g.Shape(),
			}
		}
		if !s.vertical && s.g.Width != region.Width {
			return &ErrShapeMismatch{
				Expected: Shape{region.Width, s.g.Height},
				Actual:   s.g.Shape(),
			}
		}
		if s.g.Width == 0 || s.g.Height == 0 {
			return ErrInvalidDimensions
		}
	}
	return nil
}

package gridsig

import (
	"context"
	"iter"
	"math"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
)

// Changes is the set of interior cells whose signatures differ between two
// surfaces of the same shape. Cells are stored by flat row-major index.
type Changes struct {
	width  int
	height int
	bitmap *roaring.Bitmap
}

// Diff compares the interior signatures of a and b. Border cells are ignored
// since their values are not produced by a walk.
func Diff(a, b *Signatures) (*Changes, error) {
	if err := a.validate(); err != nil {
		return nil, err
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	if a.Shape() != b.Shape() {
		return nil, &ErrShapeMismatch{Expected: a.Shape(), Actual: b.Shape()}
	}
	if uint64(len(a.Values)) > math.MaxUint32+1 {
		return nil, ErrGridTooLarge
	}

	c := &Changes{width: a.Width, height: a.Height, bitmap: roaring.New()}
	w := a.Width
	for y := 1; y < a.Height-1; y++ {
		ra := a.Values[y*w : (y+1)*w]
		rb := b.Values[y*w : (y+1)*w]
		for x := 1; x < w-1; x++ {
			if ra[x] != rb[x] {
				c.bitmap.Add(uint32(y*w + x))
			}
		}
	}
	c.bitmap.RunOptimize()
	return c, nil
}

// Differ runs Diff with the logger and metrics collector of a Walker's
// options.
type Differ struct {
	opts options
}

// NewDiffer creates a Differ.
func NewDiffer(optFns ...Option) *Differ {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Differ{opts: opts}
}

// Diff compares a and b and records the result.
func (d *Differ) Diff(ctx context.Context, a, b *Signatures) (*Changes, error) {
	start := time.Now()
	c, err := Diff(a, b)
	if err != nil {
		return nil, err
	}
	d.opts.metricsCollector.RecordDiff(c.Count(), time.Since(start))
	d.opts.logger.LogDiff(ctx, a.Shape(), c.Count())
	return c, nil
}

// Shape returns the shape of the compared surfaces.
func (c *Changes) Shape() Shape {
	return Shape{c.width, c.height}
}

// Count returns the number of changed cells.
func (c *Changes) Count() uint64 {
	return c.bitmap.GetCardinality()
}

// Empty reports whether no cell changed.
func (c *Changes) Empty() bool {
	return c.bitmap.IsEmpty()
}

// Contains reports whether (x, y) changed.
func (c *Changes) Contains(x, y int) bool {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return false
	}
	return c.bitmap.Contains(uint32(y*c.width + x))
}

// Cells yields the changed cells in row-major order.
func (c *Changes) Cells() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		it := c.bitmap.Iterator()
		for it.HasNext() {
			i := int(it.Next())
			if !yield(Cell{X: i % c.width, Y: i / c.width}) {
				return
			}
		}
	}
}

// Bounds returns the smallest rectangle holding every changed cell, as its
// top-left and bottom-right corners. ok is false when nothing changed.
func (c *Changes) Bounds() (minCell, maxCell Cell, ok bool) {
	if c.bitmap.IsEmpty() {
		return Cell{}, Cell{}, false
	}
	first, last := int(c.bitmap.Minimum()), int(c.bitmap.Maximum())
	minCell = Cell{X: c.width, Y: first / c.width}
	maxCell = Cell{X: -1, Y: last / c.width}
	for cell := range c.Cells() {
		minCell.X = min(minCell.X, cell.X)
		maxCell.X = max(maxCell.X, cell.X)
	}
	return minCell, maxCell, true
}

// Bitmap returns a copy of the underlying set of flat indices.
func (c *Changes) Bitmap() *roaring.Bitmap {
	return c.bitmap.Clone()
}

// Union returns the cells changed in either c or o. Both must describe the
// same shape.
func (c *Changes) Union(o *Changes) (*Changes, error) {
	if c.Shape() != o.Shape() {
		return nil, &ErrShapeMismatch{Expected: c.Shape(), Actual: o.Shape()}
	}
	return &Changes{width: c.width, height: c.height, bitmap: roaring.Or(c.bitmap, o.bitmap)}, nil
}

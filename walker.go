package gridsig

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/hupe1980/gridsig/internal/kernel"
	"golang.org/x/sync/errgroup"
)

// Walker computes signature surfaces for grids.
//
// A Walker holds no per-walk state and is safe for concurrent use.
type Walker struct {
	opts options
}

// NewWalker creates a Walker with the given options.
func NewWalker(optFns ...Option) *Walker {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Walker{opts: opts}
}

// Workers returns the configured worker count.
func (w *Walker) Workers() int {
	return w.opts.workers
}

// Walk allocates a surface shaped like g and fills its interior cells.
// Border cells are zero, or the WithBorder value if one was configured.
func (w *Walker) Walk(ctx context.Context, g *Grid, seed uint64) (*Signatures, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	if g.Width < 3 || g.Height < 3 {
		return nil, ErrGridTooSmall
	}

	// The surface counts against the memory budget while it is being built.
	bytes := int64(len(g.Samples)) * 8
	if err := w.opts.rc.AcquireMemory(bytes); err != nil {
		return nil, err
	}
	defer w.opts.rc.ReleaseMemory(bytes)

	out, err := NewSignatures(g.Width, g.Height)
	if err != nil {
		return nil, err
	}
	if w.opts.border != nil {
		out.FillBorder(*w.opts.border)
	}

	if err := w.walk(ctx, g, out, seed); err != nil {
		return nil, err
	}
	return out, nil
}

// WalkInto fills the interior cells of out, which must have g's shape.
// Border cells of out are left as they are.
func (w *Walker) WalkInto(ctx context.Context, g *Grid, out *Signatures, seed uint64) error {
	if err := g.validate(); err != nil {
		return err
	}
	if err := out.validate(); err != nil {
		return err
	}
	if g.Shape() != out.Shape() {
		return &ErrShapeMismatch{Expected: g.Shape(), Actual: out.Shape()}
	}
	if g.Width < 3 || g.Height < 3 {
		return ErrGridTooSmall
	}
	return w.walk(ctx, g, out, seed)
}

// WalkPadded signs every cell of region, border included, by surrounding it
// with the facing edges of its neighbors (see Pad) before walking. The result
// has region's shape.
func (w *Walker) WalkPadded(ctx context.Context, region *Grid, nb Neighbors, fill uint32, seed uint64) (*Signatures, error) {
	padded, err := Pad(region, nb, fill)
	if err != nil {
		return nil, err
	}
	sigs, err := w.Walk(ctx, padded, seed)
	if err != nil {
		return nil, err
	}
	return Unpad(sigs)
}

func (w *Walker) walk(ctx context.Context, g *Grid, out *Signatures, seed uint64) error {
	start := time.Now()
	rows := g.Height - 2
	workers := min(w.opts.workers, ceilDiv(rows, w.opts.bandRows))

	var err error
	if workers <= 1 {
		err = w.walkSequential(ctx, g, out, seed)
	} else {
		err = w.walkParallel(ctx, g, out, seed, workers)
	}
	if err == nil {
		out.Seed = seed
	}

	elapsed := time.Since(start)
	w.opts.metricsCollector.RecordWalk(rows*(g.Width-2), elapsed, err)
	w.opts.logger.LogWalk(ctx, g.Shape(), workers, elapsed, err)
	return err
}

func (w *Walker) walkSequential(ctx context.Context, g *Grid, out *Signatures, seed uint64) error {
	if err := w.opts.rc.AcquireWorker(ctx); err != nil {
		return err
	}
	defer w.opts.rc.ReleaseWorker()

	band := w.opts.bandRows
	for y := 1; y < g.Height-1; y += band {
		if err := ctx.Err(); err != nil {
			return err
		}
		kernel.Rows(g.Samples, out.Values, g.Width, y, min(y+band, g.Height-1), seed)
	}
	return nil
}

// walkParallel hands out bands of rows from a shared cursor. Bands never
// overlap, so each output cell has exactly one writer.
func (w *Walker) walkParallel(ctx context.Context, g *Grid, out *Signatures, seed uint64, workers int) error {
	eg, ctx := errgroup.WithContext(ctx)

	var cursor atomic.Int64
	cursor.Store(1)
	band := int64(w.opts.bandRows)
	last := int64(g.Height - 1)

	for range workers {
		eg.Go(func() error {
			if err := w.opts.rc.AcquireWorker(ctx); err != nil {
				return err
			}
			defer w.opts.rc.ReleaseWorker()

			for {
				if err := ctx.Err(); err != nil {
					return err
				}
				y0 := cursor.Add(band) - band
				if y0 >= last {
					return nil
				}
				kernel.Rows(g.Samples, out.Values, g.Width, int(y0), int(min(y0+band, last)), seed)
			}
		})
	}

	return eg.Wait()
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

package gridsig

import (
	"context"
	"strconv"
	"sync/atomic"

	"github.com/hupe1980/gridsig/internal/cache"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// ResolveFunc derives a value from the neighborhood that produced a
// signature.
type ResolveFunc[V any] func(n Neighborhood) (V, error)

// Memo caches a value per signature. Neighborhoods that share a signature
// are resolved once; concurrent lookups of the same signature wait for a
// single call to the resolver.
//
// Two different neighborhoods that collide on a signature share the cached
// value of whichever was resolved first.
type Memo[V any] struct {
	lru    *cache.ShardedLRU[V]
	group  singleflight.Group
	opts   options
	hits   atomic.Int64
	misses atomic.Int64
}

// MemoStats reports lookup counts for a Memo.
type MemoStats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Len       int
}

// NewMemo creates a Memo holding up to capacity values. Only the logger,
// metrics collector and worker options apply.
func NewMemo[V any](capacity int, optFns ...Option) *Memo[V] {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Memo[V]{
		lru:  cache.NewShardedLRU[V](capacity),
		opts: opts,
	}
}

// Resolve returns the value cached for sig, calling fn with n to produce it
// on a miss. Errors are not cached.
func (m *Memo[V]) Resolve(sig uint64, n Neighborhood, fn ResolveFunc[V]) (V, error) {
	if v, ok := m.lru.Get(sig); ok {
		m.hits.Add(1)
		m.opts.metricsCollector.RecordMemo(true)
		return v, nil
	}

	m.misses.Add(1)
	m.opts.metricsCollector.RecordMemo(false)

	v, err, _ := m.group.Do(strconv.FormatUint(sig, 16), func() (any, error) {
		if v, ok := m.lru.Get(sig); ok {
			return v, nil
		}
		v, err := fn(n)
		if err != nil {
			return nil, err
		}
		m.lru.Set(sig, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	res, _ := v.(V)
	return res, nil
}

// ResolveSurface resolves every interior cell of g, using the signatures in
// sigs as cache keys. Values are returned in row-major order of the interior,
// (Width-2)*(Height-2) entries in all.
func (m *Memo[V]) ResolveSurface(ctx context.Context, g *Grid, sigs *Signatures, fn ResolveFunc[V]) ([]V, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	if err := sigs.validate(); err != nil {
		return nil, err
	}
	if g.Shape() != sigs.Shape() {
		return nil, &ErrShapeMismatch{Expected: g.Shape(), Actual: sigs.Shape()}
	}
	if g.Width < 3 || g.Height < 3 {
		return nil, ErrGridTooSmall
	}

	iw, ih := g.Width-2, g.Height-2
	out := make([]V, iw*ih)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(m.opts.workers)
	for y := 1; y < g.Height-1; y++ {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row := out[(y-1)*iw : y*iw]
			for x := 1; x < g.Width-1; x++ {
				n, _ := g.Neighborhood(x, y)
				v, err := m.Resolve(sigs.Values[y*g.Width+x], n, fn)
				if err != nil {
					return err
				}
				row[x-1] = v
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Forget drops the cached value for sig.
func (m *Memo[V]) Forget(sig uint64) {
	m.lru.Delete(sig)
}

// Purge drops every cached value.
func (m *Memo[V]) Purge() {
	m.lru.Purge()
}

// Len returns the number of cached values.
func (m *Memo[V]) Len() int {
	return m.lru.Len()
}

// Stats returns a snapshot of the memo's counters.
func (m *Memo[V]) Stats() MemoStats {
	_, _, evictions := m.lru.Stats()
	return MemoStats{
		Hits:      m.hits.Load(),
		Misses:    m.misses.Load(),
		Evictions: evictions,
		Len:       m.lru.Len(),
	}
}

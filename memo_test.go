package gridsig

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemo_ResolvesOncePerSignature(t *testing.T) {
	m := NewMemo[int](128)
	n := Neighborhood(seq9)
	sig := n.Signature(DefaultSeed)

	var calls int
	fn := func(n Neighborhood) (int, error) {
		calls++
		return int(n[MiddleCenter]), nil
	}

	for range 5 {
		v, err := m.Resolve(sig, n, fn)
		require.NoError(t, err)
		assert.Equal(t, 5, v)
	}
	assert.Equal(t, 1, calls)

	stats := m.Stats()
	assert.Equal(t, int64(4), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.Len)
}

func TestMemo_ErrorsNotCached(t *testing.T) {
	m := NewMemo[string](16)
	boom := errors.New("boom")

	_, err := m.Resolve(1, Neighborhood{}, func(Neighborhood) (string, error) { return "", boom })
	require.ErrorIs(t, err, boom)
	assert.Zero(t, m.Len())

	v, err := m.Resolve(1, Neighborhood{}, func(Neighborhood) (string, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestMemo_ConcurrentResolve(t *testing.T) {
	m := NewMemo[int](16)
	var calls atomic.Int64
	release := make(chan struct{})

	fn := func(Neighborhood) (int, error) {
		calls.Add(1)
		<-release
		return 42, nil
	}

	var wg sync.WaitGroup
	results := make([]int, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := m.Resolve(7, Neighborhood{}, fn)
			assert.NoError(t, err)
			results[i] = v
		}()
	}
	close(release)
	wg.Wait()

	for _, v := range results {
		assert.Equal(t, 42, v)
	}
	assert.LessOrEqual(t, calls.Load(), int64(len(results)))
	_, err := m.Resolve(7, Neighborhood{}, func(Neighborhood) (int, error) {
		t.Fatal("resolver called after value was cached")
		return 0, nil
	})
	require.NoError(t, err)
}

func TestMemo_ResolveSurface(t *testing.T) {
	// Rows repeat, so every interior row has the same neighborhoods.
	g, err := NewGrid(6, 5)
	require.NoError(t, err)
	for y := range 5 {
		for x := range 6 {
			g.Set(x, y, uint32(x))
		}
	}
	sigs := walk(t, g)

	var calls atomic.Int64
	mc := &BasicMetricsCollector{}
	m := NewMemo[uint32](1024, WithWorkers(1), WithMetricsCollector(mc))
	values, err := m.ResolveSurface(t.Context(), g, sigs, func(n Neighborhood) (uint32, error) {
		calls.Add(1)
		return n[MiddleCenter], nil
	})
	require.NoError(t, err)

	assert.Equal(t, []uint32{
		1, 2, 3, 4,
		1, 2, 3, 4,
		1, 2, 3, 4,
	}, values)
	assert.Equal(t, int64(4), calls.Load())
	assert.Equal(t, int64(8), mc.GetStats().MemoHits)
}

func TestMemo_ResolveSurfaceErrors(t *testing.T) {
	m := NewMemo[int](8)
	g := randomGrid(t, 1, 4, 4)
	sigs, _ := NewSignatures(5, 4)

	_, err := m.ResolveSurface(t.Context(), g, sigs, nil)
	var sm *ErrShapeMismatch
	assert.ErrorAs(t, err, &sm)

	boom := errors.New("boom")
	_, err = m.ResolveSurface(t.Context(), g, walk(t, g), func(Neighborhood) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
}

func TestMemo_Forget(t *testing.T) {
	m := NewMemo[int](8)
	_, _ = m.Resolve(3, Neighborhood{}, func(Neighborhood) (int, error) { return 1, nil })
	require.Equal(t, 1, m.Len())

	m.Forget(3)
	assert.Zero(t, m.Len())

	_, _ = m.Resolve(4, Neighborhood{}, func(Neighborhood) (int, error) { return 1, nil })
	m.Purge()
	assert.Zero(t, m.Len())
}

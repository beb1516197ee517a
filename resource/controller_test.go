package resource

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Memory(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100})

	require.NoError(t, c.AcquireMemory(50))
	assert.Equal(t, int64(50), c.MemoryUsage())

	require.NoError(t, c.AcquireMemory(40))
	assert.Equal(t, int64(90), c.MemoryUsage())

	// Acquire 20 (should fail - limit exceeded)
	assert.ErrorIs(t, c.AcquireMemory(20), ErrMemoryLimitExceeded)
	assert.Equal(t, int64(90), c.MemoryUsage())

	c.ReleaseMemory(50)
	assert.Equal(t, int64(40), c.MemoryUsage())

	require.NoError(t, c.AcquireMemory(20))
	assert.Equal(t, int64(60), c.MemoryUsage())
	assert.Equal(t, int64(100), c.MemoryLimit())
}

func TestController_UnlimitedMemory(t *testing.T) {
	c := NewController(Config{})

	require.NoError(t, c.AcquireMemory(1000))
	assert.Equal(t, int64(1000), c.MemoryUsage())

	c.ReleaseMemory(500)
	assert.Equal(t, int64(500), c.MemoryUsage())
	assert.Equal(t, int64(0), c.MemoryLimit())
}

func TestController_Workers(t *testing.T) {
	c := NewController(Config{MaxWorkers: 2})
	assert.Equal(t, int64(2), c.MaxWorkers())

	require.NoError(t, c.AcquireWorker(t.Context()))
	require.NoError(t, c.AcquireWorker(t.Context()))
	assert.False(t, c.TryAcquireWorker())

	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.AcquireWorker(ctx), context.DeadlineExceeded)

	c.ReleaseWorker()
	assert.True(t, c.TryAcquireWorker())
}

func TestController_DefaultWorkers(t *testing.T) {
	c := NewController(Config{})
	assert.Equal(t, int64(1), c.MaxWorkers())
}

func TestController_IOLargerThanBurst(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})

	// A request above the burst size must not fail outright.
	require.NoError(t, c.AcquireIO(t.Context(), 1<<10))
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	assert.Error(t, c.AcquireIO(ctx, 4<<20))
}

func TestController_NilSafe(t *testing.T) {
	var c *Controller

	require.NoError(t, c.AcquireMemory(10))
	c.ReleaseMemory(10)
	assert.Equal(t, int64(0), c.MemoryUsage())
	require.NoError(t, c.AcquireWorker(t.Context()))
	assert.True(t, c.TryAcquireWorker())
	c.ReleaseWorker()
	require.NoError(t, c.AcquireIO(t.Context(), 1<<30))
}

func TestRateLimited_ReaderWriter(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})

	var buf bytes.Buffer
	w := NewRateLimitedWriter(t.Context(), &buf, c)
	n, err := w.Write([]byte("signature surface"))
	require.NoError(t, err)
	assert.Equal(t, 17, n)

	r := NewRateLimitedReader(t.Context(), &buf, c)
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "signature surface", string(out))
}

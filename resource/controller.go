package resource

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ErrMemoryLimitExceeded is returned when memory limit would be exceeded.
var ErrMemoryLimitExceeded = errors.New("memory limit exceeded")

// Config holds resource limits.
type Config struct {
	// MemoryLimitBytes is the hard limit for surface allocations.
	// If 0, no hard limit is enforced (only tracking).
	MemoryLimitBytes int64

	// MaxWorkers is the maximum number of walker goroutines across all walks.
	// If 0, defaults to 1.
	MaxWorkers int64

	// IOLimitBytesPerSec is the maximum blob store throughput.
	// If 0, unlimited.
	IOLimitBytesPerSec int64
}

// Controller manages global resources (memory, concurrency, IO).
type Controller struct {
	cfg Config

	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	workerSem *semaphore.Weighted

	ioLimiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 1
	}

	c := &Controller{
		cfg:       cfg,
		workerSem: semaphore.NewWeighted(cfg.MaxWorkers),
	}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}

	if cfg.IOLimitBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}

	return c
}

// AcquireMemory attempts to reserve memory.
// Returns ErrMemoryLimitExceeded if limit would be exceeded.
// Non-blocking - callers control retry/backoff policy.
func (c *Controller) AcquireMemory(bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}

	if c.memSem != nil {
		if !c.memSem.TryAcquire(bytes) {
			return ErrMemoryLimitExceeded
		}
	}

	c.memUsed.Add(bytes)
	return nil
}

// ReleaseMemory releases reserved memory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}

	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the current memory usage in bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// MemoryLimit returns the configured memory limit in bytes (0 if unlimited).
func (c *Controller) MemoryLimit() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.MemoryLimitBytes
}

// MaxWorkers returns the configured worker limit, or 0 for a nil Controller.
func (c *Controller) MaxWorkers() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.MaxWorkers
}

// AcquireWorker reserves a worker slot. Blocks if all slots are busy.
func (c *Controller) AcquireWorker(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.workerSem.Acquire(ctx, 1)
}

// TryAcquireWorker attempts to reserve a worker slot without blocking.
func (c *Controller) TryAcquireWorker() bool {
	if c == nil {
		return true
	}
	return c.workerSem.TryAcquire(1)
}

// ReleaseWorker releases a worker slot.
func (c *Controller) ReleaseWorker() {
	if c == nil {
		return
	}
	c.workerSem.Release(1)
}

// AcquireIO waits until the IO limit allows the specified number of bytes.
// Requests larger than one second of budget are split into burst-sized waits.
func (c *Controller) AcquireIO(ctx context.Context, bytes int) error {
	if c == nil || c.ioLimiter == nil {
		return nil
	}
	burst := c.ioLimiter.Burst()
	for bytes > 0 {
		n := min(bytes, burst)
		if err := c.ioLimiter.WaitN(ctx, n); err != nil {
			return err
		}
		bytes -= n
	}
	return nil
}

// Package resource bounds the work gridsig performs on behalf of a process.
//
// A Controller governs three resources:
//
//   - Memory: signature surfaces allocated by walkers (non-blocking, fail-fast)
//   - Concurrency: walker goroutines running at the same time
//   - IO: bytes written to or read from blob stores (token bucket)
//
// # Usage
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes:   1 << 30,
//	    MaxWorkers:         8,
//	    IOLimitBytesPerSec: 64 << 20,
//	})
//
//	if err := rc.AcquireMemory(int64(w*h*8)); err != nil {
//	    return err // ErrMemoryLimitExceeded
//	}
//	defer rc.ReleaseMemory(int64(w*h*8))
//
// All methods are safe for concurrent use, and a nil *Controller is valid:
// every method becomes a no-op.
package resource

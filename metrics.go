package gridsig

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordWalk is called after each walk. cells is the number of interior
	// cells signed, err is nil if successful.
	RecordWalk(cells int, duration time.Duration, err error)

	// RecordDiff is called after each surface comparison.
	RecordDiff(changed uint64, duration time.Duration)

	// RecordMemo is called for each memo lookup.
	RecordMemo(hit bool)

	// RecordStore is called after each surface store operation.
	RecordStore(op string, bytes int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordWalk(int, time.Duration, error)          {}
func (NoopMetricsCollector) RecordDiff(uint64, time.Duration)              {}
func (NoopMetricsCollector) RecordMemo(bool)                               {}
func (NoopMetricsCollector) RecordStore(string, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	WalkCount       atomic.Int64
	WalkErrors      atomic.Int64
	WalkCells       atomic.Int64
	WalkTotalNanos  atomic.Int64
	DiffCount       atomic.Int64
	DiffChanged     atomic.Int64
	MemoHits        atomic.Int64
	MemoMisses      atomic.Int64
	StoreOps        atomic.Int64
	StoreErrors     atomic.Int64
	StoreBytes      atomic.Int64
	StoreTotalNanos atomic.Int64
}

// RecordWalk implements MetricsCollector.
func (b *BasicMetricsCollector) RecordWalk(cells int, duration time.Duration, err error) {
	b.WalkCount.Add(1)
	b.WalkTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.WalkErrors.Add(1)
		return
	}
	b.WalkCells.Add(int64(cells))
}

// RecordDiff implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDiff(changed uint64, _ time.Duration) {
	b.DiffCount.Add(1)
	b.DiffChanged.Add(int64(changed))
}

// RecordMemo implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMemo(hit bool) {
	if hit {
		b.MemoHits.Add(1)
	} else {
		b.MemoMisses.Add(1)
	}
}

// RecordStore implements MetricsCollector.
func (b *BasicMetricsCollector) RecordStore(_ string, bytes int, duration time.Duration, err error) {
	b.StoreOps.Add(1)
	b.StoreTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.StoreErrors.Add(1)
		return
	}
	b.StoreBytes.Add(int64(bytes))
}

// BasicMetricsStats is a point-in-time snapshot of BasicMetricsCollector.
type BasicMetricsStats struct {
	WalkCount     int64
	WalkErrors    int64
	WalkCells     int64
	WalkAvgNanos  int64
	DiffCount     int64
	DiffChanged   int64
	MemoHits      int64
	MemoMisses    int64
	StoreOps      int64
	StoreErrors   int64
	StoreBytes    int64
	StoreAvgNanos int64
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		WalkCount:     b.WalkCount.Load(),
		WalkErrors:    b.WalkErrors.Load(),
		WalkCells:     b.WalkCells.Load(),
		WalkAvgNanos:  avg(b.WalkTotalNanos.Load(), b.WalkCount.Load()),
		DiffCount:     b.DiffCount.Load(),
		DiffChanged:   b.DiffChanged.Load(),
		MemoHits:      b.MemoHits.Load(),
		MemoMisses:    b.MemoMisses.Load(),
		StoreOps:      b.StoreOps.Load(),
		StoreErrors:   b.StoreErrors.Load(),
		StoreBytes:    b.StoreBytes.Load(),
		StoreAvgNanos: avg(b.StoreTotalNanos.Load(), b.StoreOps.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

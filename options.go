package gridsig

import (
	"runtime"

	"github.com/hupe1980/gridsig/resource"
)

type options struct {
	workers          int
	bandRows         int
	border           *uint64
	logger           *Logger
	metricsCollector MetricsCollector
	rc               *resource.Controller
}

func defaultOptions() options {
	return options{
		workers:          1,
		bandRows:         16,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
}

// Option configures a Walker.
type Option func(*options)

// WithWorkers sets how many goroutines walk rows in parallel.
//
// Rows are handed out in bands, and every cell is written by exactly one
// goroutine, so the resulting surface does not depend on n. Values below 1
// select runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = runtime.GOMAXPROCS(0)
		}
		o.workers = n
	}
}

// WithBandRows sets how many rows a worker claims at a time. Smaller bands
// balance uneven schedulers better; larger bands touch fewer shared counters.
// Values below 1 are ignored.
func WithBandRows(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.bandRows = n
		}
	}
}

// WithBorder makes Walk write v into every border cell of the surfaces it
// allocates. WalkInto never touches border cells regardless of this option.
func WithBorder(v uint64) Option {
	return func(o *options) {
		o.border = &v
	}
}

// WithLogger configures structured logging.
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures a metrics collector for monitoring walks.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &gridsig.BasicMetricsCollector{}
//	w := gridsig.NewWalker(gridsig.WithMetricsCollector(metrics))
//	// ... walk ...
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithResourceController bounds walker goroutines and in-flight surface
// memory through a shared controller. Several walkers may share one.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}

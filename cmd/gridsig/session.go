package main

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"

	"github.com/hupe1980/gridsig"
	"github.com/hupe1980/gridsig/resource"
	"github.com/hupe1980/gridsig/surface"
	"github.com/urfave/cli/v2"
)

// session is the state shared by one command invocation.
type session struct {
	cfg     *Config
	workers int
	logger  *gridsig.Logger
	metrics *gridsig.BasicMetricsCollector
	rc      *resource.Controller
	store   *surface.Store
	out     io.Writer
}

func newSession(ctx *cli.Context) (*session, error) {
	cfg, err := LoadConfig(ctx.String(configFlag.Name))
	if err != nil {
		return nil, err
	}
	applyFlags(ctx, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := newLogger(ctx.App.ErrWriter, ctx.String(logLevelFlag.Name), ctx.String(logFormatFlag.Name))
	if err != nil {
		return nil, err
	}

	k := gridsig.Kernel()
	logger.DebugContext(ctx.Context, "row kernel",
		"kernel", k.Name,
		"overridden", k.Overridden,
		"cpu_features", strings.Join(k.CPUFeatures, ","),
	)

	compression, err := surface.ParseCompression(cfg.Compute.Compression)
	if err != nil {
		return nil, err
	}

	workers := cfg.Compute.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	rc := resource.NewController(resource.Config{
		MemoryLimitBytes:   cfg.Compute.MemoryLimit,
		MaxWorkers:         int64(workers),
		IOLimitBytesPerSec: cfg.Store.IOLimit,
	})

	blobs, err := openBlobStore(ctx.Context, cfg.Store)
	if err != nil {
		return nil, err
	}

	metrics := &gridsig.BasicMetricsCollector{}
	store := surface.NewStore(blobs,
		surface.WithCompression(compression),
		surface.WithLogger(logger),
		surface.WithMetricsCollector(metrics),
		surface.WithResourceController(rc),
	)

	return &session{
		cfg:     cfg,
		workers: workers,
		logger:  logger,
		metrics: metrics,
		rc:      rc,
		store:   store,
		out:     ctx.App.Writer,
	}, nil
}

// applyFlags overrides file values with flags given on the command line.
func applyFlags(ctx *cli.Context, cfg *Config) {
	if ctx.IsSet(storeFlag.Name) {
		cfg.Store.URL = ctx.String(storeFlag.Name)
	}
	if ctx.IsSet(ioLimitFlag.Name) {
		cfg.Store.IOLimit = ctx.Int64(ioLimitFlag.Name)
	}
	if ctx.IsSet(seedFlag.Name) {
		cfg.Compute.Seed = ctx.Uint64(seedFlag.Name)
	}
	if ctx.IsSet(workersFlag.Name) {
		cfg.Compute.Workers = ctx.Int(workersFlag.Name)
	}
	if ctx.IsSet(bandRowsFlag.Name) {
		cfg.Compute.BandRows = ctx.Int(bandRowsFlag.Name)
	}
	if ctx.IsSet(compressionFlag.Name) {
		cfg.Compute.Compression = ctx.String(compressionFlag.Name)
	}
	if ctx.IsSet(memoryLimitFlag.Name) {
		cfg.Compute.MemoryLimit = ctx.Int64(memoryLimitFlag.Name)
	}
}

func newLogger(w io.Writer, level, format string) (*gridsig.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "", "text":
		return gridsig.NewLogger(slog.NewTextHandler(w, opts)), nil
	case "json":
		return gridsig.NewLogger(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
}

// walker builds a Walker from the session's compute settings.
func (s *session) walker() *gridsig.Walker {
	return gridsig.NewWalker(
		gridsig.WithWorkers(s.workers),
		gridsig.WithBandRows(s.cfg.Compute.BandRows),
		gridsig.WithLogger(s.logger),
		gridsig.WithMetricsCollector(s.metrics),
		gridsig.WithResourceController(s.rc),
	)
}

func (s *session) logStats(ctx *cli.Context) {
	st := s.metrics.GetStats()
	s.logger.DebugContext(ctx.Context, "session stats",
		"walks", st.WalkCount,
		"cells", st.WalkCells,
		"store_ops", st.StoreOps,
		"store_errors", st.StoreErrors,
		"store_bytes", st.StoreBytes,
	)
}

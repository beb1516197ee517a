package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hupe1980/gridsig"
	"github.com/hupe1980/gridsig/internal/mmap"
	"github.com/urfave/cli/v2"
)

var (
	seedFlag = &cli.Uint64Flag{
		Name:  "seed",
		Usage: "signature seed",
		Value: gridsig.DefaultSeed,
	}
	workersFlag = &cli.IntFlag{
		Name:  "workers",
		Usage: "walker goroutines (0 = GOMAXPROCS)",
	}
	bandRowsFlag = &cli.IntFlag{
		Name:  "band-rows",
		Usage: "rows claimed per worker step",
		Value: 16,
	}
	compressionFlag = &cli.StringFlag{
		Name:  "compression",
		Usage: "surface compression: none, lz4 or zstd",
		Value: "lz4",
	}
	memoryLimitFlag = &cli.Int64Flag{
		Name:  "memory-limit",
		Usage: "surface memory budget in bytes (0 = unlimited)",
	}
)

var computeCommand = &cli.Command{
	Name:   "compute",
	Usage:  "Compute the signature surface of a grid and save it",
	Action: runCompute,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "in",
			Usage: "raw grid file (little-endian uint32, row-major)",
		},
		&cli.StringFlag{
			Name:  "grid",
			Usage: "name of a stored grid to use instead of --in",
		},
		&cli.IntFlag{
			Name:  "width",
			Usage: "grid width for --in",
		},
		&cli.IntFlag{
			Name:  "height",
			Usage: "grid height for --in",
		},
		&cli.StringFlag{
			Name:     "out",
			Usage:    "name to save the signature surface under",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "save-grid",
			Usage: "also save the input grid under this name",
		},
		seedFlag,
		workersFlag,
		bandRowsFlag,
		compressionFlag,
		memoryLimitFlag,
	},
}

func runCompute(ctx *cli.Context) error {
	s, err := newSession(ctx)
	if err != nil {
		return err
	}
	defer s.logStats(ctx)

	var g *gridsig.Grid
	switch in, name := ctx.String("in"), ctx.String("grid"); {
	case in != "" && name != "":
		return errors.New("--in and --grid are mutually exclusive")
	case in != "":
		m, err := mmap.Open(in)
		if err != nil {
			return fmt.Errorf("open grid: %w", err)
		}
		defer m.Close()
		if g, err = mapGrid(m, ctx.Int("width"), ctx.Int("height")); err != nil {
			return err
		}
	case name != "":
		if g, err = s.store.LoadGrid(ctx.Context, name); err != nil {
			return err
		}
	default:
		return errors.New("one of --in or --grid is required")
	}

	seed := s.cfg.Compute.Seed
	sigs, err := s.walker().Walk(ctx.Context, g, seed)
	if err != nil {
		return err
	}

	if name := ctx.String("save-grid"); name != "" {
		if err := s.store.SaveGrid(ctx.Context, name, g); err != nil {
			return err
		}
	}
	out := ctx.String("out")
	if err := s.store.SaveSignatures(ctx.Context, out, sigs); err != nil {
		return err
	}

	fmt.Fprintf(s.out, "%s: %dx%d seed=%d interior=%d\n",
		out, sigs.Width, sigs.Height, seed, (sigs.Width-2)*(sigs.Height-2))
	return nil
}

// mapGrid views a mapped raw file as a width×height grid. The file size
// must match exactly.
func mapGrid(m *mmap.Mapping, width, height int) (*gridsig.Grid, error) {
	if width < 1 || height < 1 {
		return nil, errors.New("--width and --height are required with --in")
	}
	if m.Size() != width*height*4 {
		return nil, fmt.Errorf("grid file is %d bytes, want %d for %dx%d", m.Size(), width*height*4, width, height)
	}
	_ = m.Advise(mmap.AccessSequential)

	samples, err := m.Uint32s(0, width*height)
	if err != nil {
		return nil, fmt.Errorf("map grid: %w", err)
	}
	return gridsig.GridFrom(samples, width, height)
}

var diffCommand = &cli.Command{
	Name:      "diff",
	Usage:     "Report interior cells whose signatures differ between two surfaces",
	ArgsUsage: "<a> <b>",
	Action:    runDiff,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "cells",
			Usage: "list every changed cell",
		},
	},
}

func runDiff(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return errors.New("diff needs exactly two surface names")
	}
	s, err := newSession(ctx)
	if err != nil {
		return err
	}
	defer s.logStats(ctx)

	a, err := s.store.LoadSignatures(ctx.Context, ctx.Args().Get(0))
	if err != nil {
		return err
	}
	b, err := s.store.LoadSignatures(ctx.Context, ctx.Args().Get(1))
	if err != nil {
		return err
	}
	if a.Seed != b.Seed {
		s.logger.WarnContext(ctx.Context, "surfaces were computed with different seeds",
			"seed_a", a.Seed, "seed_b", b.Seed)
	}

	differ := gridsig.NewDiffer(
		gridsig.WithLogger(s.logger),
		gridsig.WithMetricsCollector(s.metrics),
	)
	changes, err := differ.Diff(ctx.Context, a, b)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "changed: %d\n", changes.Count())
	if lo, hi, ok := changes.Bounds(); ok {
		fmt.Fprintf(s.out, "bounds: %d,%d %d,%d\n", lo.X, lo.Y, hi.X, hi.Y)
	}
	if ctx.Bool("cells") {
		for c := range changes.Cells() {
			fmt.Fprintf(s.out, "%d,%d\n", c.X, c.Y)
		}
	}
	return nil
}

var inspectCommand = &cli.Command{
	Name:      "inspect",
	Usage:     "Print the header of a stored surface",
	ArgsUsage: "<name>",
	Action: func(ctx *cli.Context) error {
		if ctx.NArg() != 1 {
			return errors.New("inspect needs a surface name")
		}
		s, err := newSession(ctx)
		if err != nil {
			return err
		}
		h, err := s.store.Stat(ctx.Context, ctx.Args().First())
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "kind:        %s\n", h.Kind)
		fmt.Fprintf(s.out, "version:     %d\n", h.Version)
		fmt.Fprintf(s.out, "shape:       %dx%d\n", h.Width, h.Height)
		fmt.Fprintf(s.out, "seed:        %d\n", h.Seed)
		fmt.Fprintf(s.out, "compression: %s\n", h.Compression)
		fmt.Fprintf(s.out, "raw bytes:   %d\n", h.RawLen)
		fmt.Fprintf(s.out, "file bytes:  %d\n", h.FileSize())
		fmt.Fprintf(s.out, "crc32c:      %08x\n", h.Checksum)
		return nil
	},
}

var listCommand = &cli.Command{
	Name:      "list",
	Usage:     "List stored surfaces",
	ArgsUsage: "[prefix]",
	Action: func(ctx *cli.Context) error {
		s, err := newSession(ctx)
		if err != nil {
			return err
		}
		names, err := s.store.List(ctx.Context, ctx.Args().First())
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(s.out, name)
		}
		return nil
	},
}

var dumpConfigCommand = &cli.Command{
	Name:      "dumpconfig",
	Usage:     "Print the effective configuration in INI form",
	ArgsUsage: "[file]",
	Flags: []cli.Flag{
		seedFlag,
		workersFlag,
		bandRowsFlag,
		compressionFlag,
		memoryLimitFlag,
	},
	Action: func(ctx *cli.Context) error {
		cfg, err := LoadConfig(ctx.String(configFlag.Name))
		if err != nil {
			return err
		}
		applyFlags(ctx, cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}
		if path := ctx.Args().First(); path != "" {
			return cfg.Save(path)
		}
		_, err = cfg.WriteTo(ctx.App.Writer)
		return err
	},
}

var infoCommand = &cli.Command{
	Name:  "info",
	Usage: "Print the active row kernel and detected CPU features",
	Action: func(ctx *cli.Context) error {
		k := gridsig.Kernel()
		features := strings.Join(k.CPUFeatures, ",")
		if features == "" {
			features = "none"
		}
		fmt.Fprintf(ctx.App.Writer, "kernel:       %s\n", k.Name)
		fmt.Fprintf(ctx.App.Writer, "overridden:   %t\n", k.Overridden)
		fmt.Fprintf(ctx.App.Writer, "cpu features: %s\n", features)
		return nil
	},
}

// Command gridsig computes, stores and compares signature surfaces.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "INI file with [compute] and [store] defaults",
	}
	storeFlag = &cli.StringFlag{
		Name:  "store",
		Usage: "surface store: local:DIR, mem:, s3://bucket/prefix or minio://endpoint/bucket/prefix",
	}
	ioLimitFlag = &cli.Int64Flag{
		Name:  "io-limit",
		Usage: "store throughput limit in bytes per second (0 = unlimited)",
	}
	logLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "debug, info, warn or error",
		Value: "warn",
	}
	logFormatFlag = &cli.StringFlag{
		Name:  "log-format",
		Usage: "text or json",
		Value: "text",
	}
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "gridsig",
		Usage: "3x3 neighborhood signatures for uint32 grids",
		Flags: []cli.Flag{
			configFlag,
			storeFlag,
			ioLimitFlag,
			logLevelFlag,
			logFormatFlag,
		},
		Commands: []*cli.Command{
			computeCommand,
			diffCommand,
			inspectCommand,
			listCommand,
			dumpConfigCommand,
			infoCommand,
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/ryabkov82/report-combiner/internal/combiner"
	"github.com/ryabkov82/report-combiner/internal/config"
	"github.com/ryabkov82/report-combiner/internal/logging"
	"github.com/ryabkov82/report-combiner/internal/writer"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		slog.Error("report combining failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.ParseFlags(args)
	if err != nil {
		return err
	}

	logging.Setup(cfg.Verbose)

	c := combiner.New(cfg, slog.Default())
	for _, path := range cfg.Files {
		if err := c.AddFile(path); err != nil {
			return err
		}
	}

	var table [][]string
	if cfg.Transpose {
		table = c.BuildTableTransposed()
	} else {
		table = c.BuildTable()
	}

	if cfg.XLSXPath != "" {
		return writer.WriteXLSX(cfg.XLSXPath, table)
	}
	return writer.WriteTable(os.Stdout, table, cfg.OutputDelimiter)
}

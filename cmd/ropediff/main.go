// Package main is the entry point for ropediff.
//
// ropediff splits two text files into grapheme-safe chunks and prints the
// chunk-level edit script that turns the first into the second.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/dshills/ropekit/internal/config"
	"github.com/dshills/ropekit/internal/engine"
	"github.com/dshills/ropekit/internal/report"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes follow diff(1).
const (
	exitSame    = 0
	exitChanged = 1
	exitError   = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// options holds everything parsed from the command line.
type options struct {
	configPath  string
	chunkSize   int
	maxSteps    int
	noCoalesce  bool
	format      string
	color       string
	verify      bool
	watch       bool
	debug       bool
	showVersion bool
	printConfig bool
	showHelp    bool

	oldPath, newPath string
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flagSet, opts := newFlagSet()
	flagSet.SetOutput(io.Discard)
	if err := flagSet.Parse(args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		printUsage(stderr, flagSet)
		return exitError
	}

	if opts.showHelp {
		printUsage(stdout, flagSet)
		return exitSame
	}
	if opts.showVersion {
		fmt.Fprintf(stdout, "ropediff %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return exitSame
	}

	cfg, err := loadConfig(flagSet, opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	if opts.printConfig {
		data, err := cfg.Marshal()
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
		stdout.Write(data)
		return exitSame
	}

	rest := flagSet.Args()
	if len(rest) != 2 {
		fmt.Fprintf(stderr, "Error: expected OLD and NEW files, got %d arguments\n", len(rest))
		printUsage(stderr, flagSet)
		return exitError
	}
	opts.oldPath, opts.newPath = rest[0], rest[1]

	logger := newLogger(stderr, cfg)
	eng := engine.New(
		engine.WithChunkSize(cfg.Chunk.Size),
		engine.WithMaxSteps(cfg.Diff.MaxSteps),
		engine.WithCoalesce(cfg.Diff.Coalesce),
		engine.WithLogger(logger),
	)
	d := &differ{
		eng:    eng,
		cfg:    cfg,
		logger: logger,
		out:    stdout,
		format: report.Format(cfg.Output.Format),
		color:  report.ColorEnabled(stdout, cfg.Output.Color),
	}

	if opts.watch {
		if err := d.watch(ctx, opts.oldPath, opts.newPath); err != nil {
			logger.Error("watch failed", "error", err)
			return exitError
		}
		return exitSame
	}

	changed, err := d.diffFiles(opts.oldPath, opts.newPath)
	if err != nil {
		logger.Error("diff failed", "error", err)
		if errors.Is(err, engine.ErrTooLarge) {
			fmt.Fprintln(stderr, "hint: raise --max-steps or pass --max-steps=-1 to disable the limit")
		}
		return exitError
	}
	if changed {
		return exitChanged
	}
	return exitSame
}

func newFlagSet() (*pflag.FlagSet, *options) {
	opts := &options{}
	flagSet := pflag.NewFlagSet("ropediff", pflag.ContinueOnError)
	flagSet.StringVarP(&opts.configPath, "config", "c", "", "path to configuration file")
	flagSet.IntVar(&opts.chunkSize, "chunk-size", 0, "target chunk size in bytes (4-255)")
	flagSet.IntVar(&opts.maxSteps, "max-steps", 0, "diff work budget; negative disables the limit")
	flagSet.BoolVar(&opts.noCoalesce, "no-coalesce", false, "emit one edit per chunk instead of merged runs")
	flagSet.StringVarP(&opts.format, "format", "f", "", "output format: text, json, yaml or cbor")
	flagSet.StringVar(&opts.color, "color", "", "colour text output: auto, always or never")
	flagSet.BoolVar(&opts.verify, "verify", false, "replay the edit script and check it reproduces NEW")
	flagSet.BoolVarP(&opts.watch, "watch", "w", false, "re-diff whenever either file changes")
	flagSet.BoolVarP(&opts.debug, "debug", "d", false, "enable debug logging")
	flagSet.BoolVarP(&opts.showVersion, "version", "v", false, "show version information")
	flagSet.BoolVar(&opts.printConfig, "print-config", false, "print the effective configuration as TOML and exit")
	flagSet.BoolVarP(&opts.showHelp, "help", "h", false, "show help")
	flagSet.SortFlags = false
	return flagSet, opts
}

// loadConfig layers explicitly set flags over the loaded configuration.
func loadConfig(flagSet *pflag.FlagSet, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if flagSet.Changed("chunk-size") {
		cfg.Chunk.Size = opts.chunkSize
	}
	if flagSet.Changed("max-steps") {
		cfg.Diff.MaxSteps = opts.maxSteps
	}
	if flagSet.Changed("no-coalesce") {
		cfg.Diff.Coalesce = !opts.noCoalesce
	}
	if flagSet.Changed("format") {
		cfg.Output.Format = opts.format
	}
	if flagSet.Changed("color") {
		cfg.Output.Color = opts.color
	}
	if flagSet.Changed("verify") {
		cfg.Diff.Verify = opts.verify
	}
	if opts.debug {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}

func printUsage(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `ropediff - chunk-level text diff

Usage:
  ropediff [flags] OLD NEW

Exit status is 0 if the files are the same, 1 if they differ and 2 on error.

Examples:
  ropediff a.txt b.txt
  ropediff --format json --verify a.txt b.txt
  ropediff --watch a.txt b.txt

Flags:
`)
	flagSet.SetOutput(w)
	flagSet.PrintDefaults()
	flagSet.SetOutput(io.Discard)
}

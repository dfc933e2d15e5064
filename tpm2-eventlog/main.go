// Copyright 2019-2023 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package main

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/mattn/go-isatty"
	"golang.org/x/xerrors"

	"github.com/canonical/tpm2-eventlog"
	internal_flags "github.com/canonical/tpm2-eventlog/internal/flags"
)

type options struct {
	Format                  internal_flags.Format    `long:"format" description:"Output format" default:"text" choice:"text" choice:"yaml" choice:"files"`
	OutputDir               string                   `short:"o" long:"output-dir" description:"Directory to export events to with --format=files" default:"."`
	Pcrs                    internal_flags.PCRRange  `short:"p" long:"pcrs" description:"Display events associated with the specified PCRs. Can be specified multiple times"`
	Verbose                 bool                     `short:"v" long:"verbose" description:"Decode the payloads of EFI variable events and log progress"`
	PermitUnknownAlgorithms bool                     `long:"permit-unknown-algorithms" description:"Treat digests for unknown algorithms as empty rather than failing"`
	MaxSize                 uint                     `long:"max-size" description:"Reject logs larger than this many bytes (0 for no limit)" default:"65535"`
	Color                   internal_flags.ColorMode `long:"color" description:"Colorize text output" default:"auto" choice:"auto" choice:"always" choice:"never"`

	Positional struct {
		LogPath string `positional-arg-name:"log-path"`
	} `positional-args:"true"`
}

// config is the fully resolved configuration for one run.
type config struct {
	path      string
	format    internal_flags.Format
	outputDir string
	maxSize   int64
	verbose   bool
	colorize  bool
	dump      tcglog.DumpOptions
}

// environment holds the process resources used by run.
type environment struct {
	stdout           io.Writer
	stdoutIsTerminal bool
	log              *logger
}

func newConfig(opts *options, env *environment) *config {
	cfg := &config{
		path:      opts.Positional.LogPath,
		format:    opts.Format,
		outputDir: opts.OutputDir,
		verbose:   opts.Verbose}
	if cfg.path == "" {
		cfg.path = tcglog.DefaultLogPath
	}

	// No file can be larger than math.MaxInt64 bytes.
	if uint64(opts.MaxSize) < math.MaxInt64 {
		cfg.maxSize = int64(opts.MaxSize)
	}

	switch opts.Color {
	case internal_flags.ColorAlways:
		cfg.colorize = true
	case internal_flags.ColorAuto:
		cfg.colorize = env.stdoutIsTerminal
	}

	cfg.dump.PermitUnknownAlgorithms = opts.PermitUnknownAlgorithms
	cfg.dump.PCRs = opts.Pcrs
	return cfg
}

func newFormatter(cfg *config, w io.Writer) (tcglog.Formatter, error) {
	switch cfg.format {
	case internal_flags.FormatText, "":
		return tcglog.NewTextFormatter(w, cfg.verbose, cfg.colorize), nil
	case internal_flags.FormatYAML:
		return tcglog.NewYAMLFormatter(w, cfg.verbose), nil
	case internal_flags.FormatFiles:
		return tcglog.NewFileExporter(cfg.outputDir), nil
	default:
		return nil, fmt.Errorf("unrecognized format %q", cfg.format)
	}
}

func run(args []string, env *environment) error {
	var opts options
	if _, err := flags.NewParser(&opts, flags.Default).ParseArgs(args); err != nil {
		return err
	}

	cfg := newConfig(&opts, env)
	env.log.verbose = cfg.verbose

	env.log.infof("Loading event log from file: %s", cfg.path)
	data, err := loadLog(cfg.path, cfg.maxSize, env.log)
	if err != nil {
		return xerrors.Errorf("cannot load log: %w", err)
	}

	f, err := newFormatter(cfg, env.stdout)
	if err != nil {
		return err
	}

	if err := tcglog.Dump(data, f, &cfg.dump); err != nil {
		return xerrors.Errorf("failed to parse tpm2 eventlog: %w", err)
	}
	return nil
}

func main() {
	log := newLogger(os.Stderr)
	env := &environment{
		stdout:           os.Stdout,
		stdoutIsTerminal: isatty.IsTerminal(os.Stdout.Fd()),
		log:              log}

	if err := run(os.Args[1:], env); err != nil {
		switch e := err.(type) {
		case *flags.Error:
			// flags already prints this
			if e.Type != flags.ErrHelp {
				os.Exit(1)
			}
		default:
			log.errorf("%v", err)
			os.Exit(1)
		}
	}
}

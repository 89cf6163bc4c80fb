package main

import (
	"io"
	"log/slog"

	"github.com/spf13/pflag"
)

// GlobalOptions hold the flags and streams shared by every command.
type GlobalOptions struct {
	Verbose bool

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

func newGlobalOptions(stdin io.Reader, stdout, stderr io.Writer) *GlobalOptions {
	return &GlobalOptions{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: newLogger(stderr, false),
	}
}

func (opts *GlobalOptions) AddFlags(f *pflag.FlagSet) {
	f.BoolVarP(&opts.Verbose, "verbose", "v", false, "log timer transitions to stderr")
}

// PreRun installs the logger selected by the flags.
func (opts *GlobalOptions) PreRun() error {
	opts.logger = newLogger(opts.stderr, opts.Verbose)
	slog.SetDefault(opts.logger)
	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

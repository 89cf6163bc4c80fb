package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

const appName = "kotimer"

var version = "0.1.0-dev"

// ErrInterrupted is returned when a running countdown is cancelled by a signal.
var ErrInterrupted = errors.New("interrupted")

func newRootCommand(globalOptions *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kotimer-cli",
		Short: "Run countdown timers in the terminal",
		Long: `
kotimer-cli runs second-resolution countdown timers in the terminal, either a
single timer or the board presets shared with the desktop app.
`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		DisableAutoGenTag: true,

		PersistentPreRunE: func(*cobra.Command, []string) error {
			return globalOptions.PreRun()
		},
	}

	globalOptions.AddFlags(cmd.PersistentFlags())
	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.AddCommand(
		newRunCommand(globalOptions),
		newConsoleCommand(globalOptions),
		newPresetsCommand(globalOptions),
		newVersionCommand(globalOptions),
	)
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	globalOptions := newGlobalOptions(os.Stdin, os.Stdout, os.Stderr)

	err := newRootCommand(globalOptions).ExecuteContext(ctx)
	stop()

	var exitCode int
	switch {
	case err == nil:
		exitCode = 0
	case errors.Is(err, ErrInterrupted), errors.Is(err, context.Canceled):
		exitCode = 1
	default:
		_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		exitCode = 1
	}
	os.Exit(exitCode)
}

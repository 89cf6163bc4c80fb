package main

import (
	"context"
	"log/slog"

	"kotimer/internal/console"
	"kotimer/internal/core/clock"
	"kotimer/internal/core/countdown"
	"kotimer/internal/core/model"
	"kotimer/internal/platform"

	"github.com/spf13/cobra"
)

func newConsoleCommand(globalOptions *GlobalOptions) *cobra.Command {
	var opts PresetFileOptions

	cmd := &cobra.Command{
		Use:   "console [flags]",
		Short: "Control the board presets from an interactive prompt",
		Long: `
The "console" command creates one stopped timer per board preset and opens an
interactive prompt to start, stop, toggle and reset them. Type "help" at the
prompt for the list of commands.

EXIT STATUS
===========

Exit status is 0 if the console was closed, and non-zero if there was any error.
`,
		Args:              cobra.NoArgs,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConsole(cmd.Context(), opts, *globalOptions)
		},
	}

	opts.AddFlags(cmd.Flags())
	return cmd
}

func runConsole(ctx context.Context, opts PresetFileOptions, gopts GlobalOptions) error {
	board, path, err := opts.load()
	if err != nil {
		gopts.logger.Warn("presets unavailable, using defaults", slog.String("path", path), slog.Any("error", err))
	}

	entries := buildEntries(board, clock.Real(), platform.NewIdleProvider(), gopts.logger)
	defer func() {
		for _, entry := range entries {
			entry.Timer.Close()
		}
	}()

	prompt, err := console.New(entries)
	if err != nil {
		return err
	}
	defer prompt.Close()

	return prompt.Run(ctx)
}

// buildEntries creates one timer per preset. Presets never start on their own
// here; the console user starts them.
func buildEntries(board model.BoardConfig, clk clock.Clock, idle platform.IdleProvider, logger *slog.Logger) []console.Entry {
	var keepGoing func() bool
	if board.IdleStopEnabled {
		keepGoing = platform.KeepGoingWhileActive(idle, board.IdleStopAfter, logger)
	}

	entries := make([]console.Entry, 0, len(board.Presets))
	for _, preset := range board.Presets {
		entries = append(entries, console.Entry{
			Name: preset.Name,
			Timer: countdown.New(preset.Seconds(), countdown.Options{
				Wait:            true,
				KeepGoing:       keepGoing,
				NotifyTimeMarks: preset.Marks,
				Clock:           clk,
				Logger:          logger.With(slog.String("timer", preset.Name)),
			}),
		})
	}
	return entries
}

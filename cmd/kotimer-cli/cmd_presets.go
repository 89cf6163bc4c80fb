package main

import (
	"fmt"
	"text/tabwriter"

	"kotimer/internal/core/countdown"
	"kotimer/internal/core/model"
	"kotimer/internal/storage"

	"github.com/spf13/cobra"
)

func newPresetsCommand(globalOptions *GlobalOptions) *cobra.Command {
	var opts PresetFileOptions

	cmd := &cobra.Command{
		Use:   "presets [flags]",
		Short: "List the board presets",
		Long: `
The "presets" command prints the timers configured for the board. Without a
presets file the defaults are shown.

EXIT STATUS
===========

Exit status is 0 if the command was successful, and non-zero if there was any error.
`,
		Args:              cobra.NoArgs,
		DisableAutoGenTag: true,
		RunE: func(*cobra.Command, []string) error {
			return runPresetsList(opts, *globalOptions)
		},
	}

	opts.AddFlags(cmd.PersistentFlags())
	cmd.AddCommand(newPresetsResetCommand(globalOptions, &opts))
	return cmd
}

func newPresetsResetCommand(globalOptions *GlobalOptions, opts *PresetFileOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Overwrite the presets file with the defaults",
		Long: `
The "presets reset" command writes the default board to the presets file,
replacing any timers configured before.

EXIT STATUS
===========

Exit status is 0 if the command was successful, and non-zero if there was any error.
`,
		Args:              cobra.NoArgs,
		DisableAutoGenTag: true,
		RunE: func(*cobra.Command, []string) error {
			return runPresetsReset(*opts, *globalOptions)
		},
	}
}

func runPresetsList(opts PresetFileOptions, gopts GlobalOptions) error {
	board, _, err := opts.load()
	if err != nil {
		return err
	}

	writer := tabwriter.NewWriter(gopts.stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(writer, "#\tname\tlimit\tmarks\twait\tcolor")
	for i, preset := range board.Presets {
		_, _ = fmt.Fprintf(writer, "%d\t%s\t%s\t%s\t%t\t%s\n", i+1, preset.Name,
			formatLimit(preset.Seconds()), formatMarks(preset.Marks), preset.Wait, preset.Color)
	}
	if board.IdleStopEnabled {
		_, _ = fmt.Fprintf(writer, "\nidle stop after %s\n", board.IdleStopAfter)
	}
	return writer.Flush()
}

func runPresetsReset(opts PresetFileOptions, gopts GlobalOptions) error {
	path, err := opts.path()
	if err != nil {
		return err
	}
	if err := storage.SaveBoardFile(path, model.DefaultBoard()); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(gopts.stdout, "default presets written to %s\n", path)
	return nil
}

// formatLimit shows hours explicitly since MM:SS wraps at one hour.
func formatLimit(seconds int) string {
	if hours := seconds / 3600; hours > 0 {
		return fmt.Sprintf("%d:%s", hours, countdown.FormatMinutesSeconds(seconds))
	}
	return countdown.FormatMinutesSeconds(seconds)
}

func formatMarks(marks []int) string {
	if len(marks) == 0 {
		return "-"
	}
	text := ""
	for i, mark := range marks {
		if i > 0 {
			text += ","
		}
		text += countdown.FormatMinutesSeconds(mark)
	}
	return text
}

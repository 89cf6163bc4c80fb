package main

import (
	"bufio"
	"context"
	"fmt"
	"strconv"

	"kotimer/internal/core/clock"
	"kotimer/internal/core/countdown"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newRunCommand(globalOptions *GlobalOptions) *cobra.Command {
	var opts RunOptions

	cmd := &cobra.Command{
		Use:   "run [flags] seconds",
		Short: "Count down from the given number of seconds",
		Long: `
The "run" command starts one countdown timer and prints the time left once a
second. Elapsed times given with --mark are announced when reached.

EXIT STATUS
===========

Exit status is 0 if the timer ran out.
Exit status is 1 if the timer was interrupted or there was any error.
`,
		Args:              cobra.ExactArgs(1),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTimer(cmd.Context(), opts, *globalOptions, args, clock.Real())
		},
	}

	opts.AddFlags(cmd.Flags())
	return cmd
}

// RunOptions collects all options for the run command.
type RunOptions struct {
	Marks []int
	Wait  bool
}

func (opts *RunOptions) AddFlags(f *pflag.FlagSet) {
	f.IntSliceVar(&opts.Marks, "mark", nil, "announce when `seconds` have elapsed (can be given multiple times)")
	f.BoolVar(&opts.Wait, "wait", false, "wait for Enter before starting")
}

func parseSeconds(arg string) (int, error) {
	seconds, err := strconv.Atoi(arg)
	if err != nil || seconds <= 0 {
		return 0, fmt.Errorf("invalid seconds %q", arg)
	}
	return seconds, nil
}

func runTimer(ctx context.Context, opts RunOptions, gopts GlobalOptions, args []string, clk clock.Clock) error {
	seconds, err := parseSeconds(args[0])
	if err != nil {
		return err
	}

	out := gopts.stdout
	done := make(chan struct{}, 1)

	timer := countdown.New(seconds, countdown.Options{
		Wait:            true,
		NotifyTimeMarks: opts.Marks,
		Clock:           clk,
		Logger:          gopts.logger,
	})
	defer timer.Close()

	timer.TimeLeftStr().Subscribe(func(left string) {
		_, _ = fmt.Fprintln(out, left)
	})
	timer.On(countdown.EventTimeMarkHit, func(event countdown.Event) {
		_, _ = fmt.Fprintf(out, "mark %s\n", countdown.FormatMinutesSeconds(event.TimeElapsed))
	})
	timer.On(countdown.EventTimeIsUp, func(countdown.Event) {
		_, _ = fmt.Fprintln(out, "time is up!")
		select {
		case done <- struct{}{}:
		default:
		}
	})

	if opts.Wait {
		_, _ = fmt.Fprintf(out, "%s ready, press Enter to start\n", timer.TimeLeftStr().Get())
		if err := waitForEnter(ctx, gopts); err != nil {
			return err
		}
	}

	timer.Start()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		timer.Stop()
		_, _ = fmt.Fprintf(out, "stopped after %s\n", timer.TimeElapsedStr().Get())
		return ErrInterrupted
	}
}

func waitForEnter(ctx context.Context, gopts GlobalOptions) error {
	if gopts.stdin == nil {
		return nil
	}
	read := make(chan error, 1)
	go func() {
		_, err := bufio.NewReader(gopts.stdin).ReadString('\n')
		read <- err
	}()

	select {
	case <-read:
		// EOF counts as Enter so piped input still starts the timer.
		return nil
	case <-ctx.Done():
		return ErrInterrupted
	}
}

// Package console drives a set of countdown timers from an interactive prompt.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"kotimer/internal/core/countdown"

	"github.com/chzyer/readline"
)

// Entry is a named timer controlled by the console.
type Entry struct {
	Name  string
	Timer *countdown.Timer
}

// Console is an interactive command loop over timers.
type Console struct {
	entries     []Entry
	rl          *readline.Instance
	out         io.Writer
	unsubscribe []func()
}

// New creates a console reading commands from the terminal.
func New(entries []Entry) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "timer> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem("list"),
			readline.PcItem("start", readline.PcItem("all")),
			readline.PcItem("stop", readline.PcItem("all")),
			readline.PcItem("toggle", readline.PcItem("all")),
			readline.PcItem("reset", readline.PcItem("all")),
			readline.PcItem("help"),
			readline.PcItem("quit"),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	console := newConsole(entries, rl.Stdout())
	console.rl = rl
	return console, nil
}

func newConsole(entries []Entry, out io.Writer) *Console {
	console := &Console{entries: entries, out: out}
	for _, entry := range entries {
		console.watch(entry)
	}
	return console
}

// Stdout returns a writer that coordinates with the prompt.
func (console *Console) Stdout() io.Writer {
	return console.out
}

// Run reads commands until quit, EOF or ctx is done.
func (console *Console) Run(ctx context.Context) error {
	if console.rl == nil {
		return errors.New("console has no terminal")
	}
	defer console.rl.Close()

	console.printHelp()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := console.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(console.out, "Exiting...")
			return nil
		}
		if console.Exec(line) {
			return nil
		}
	}
}

// Close detaches from the timers' events.
func (console *Console) Close() {
	for _, unsubscribe := range console.unsubscribe {
		unsubscribe()
	}
	console.unsubscribe = nil
}

// Exec runs one command line and reports whether the console should quit.
func (console *Console) Exec(line string) bool {
	parts := strings.Fields(strings.TrimSpace(line))
	if len(parts) == 0 {
		return false
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		console.printHelp()
	case "list", "ls", "l":
		console.cmdList()
	case "start":
		console.forTargets(args, (*countdown.Timer).Start)
	case "stop":
		console.forTargets(args, (*countdown.Timer).Stop)
	case "toggle", "t":
		console.forTargets(args, (*countdown.Timer).Toggle)
	case "reset":
		console.cmdReset(args)
	case "quit", "exit", "q":
		fmt.Fprintln(console.out, "Exiting...")
		return true
	default:
		fmt.Fprintf(console.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func (console *Console) printHelp() {
	fmt.Fprintln(console.out, `Commands:
  list                          show all timers
  start  <n|all>                start or resume
  stop   <n|all>                stop
  toggle <n|all>                stop if running, restart if finished, else start
  reset  <n|all> [secs] [start] restore the limit, optionally a new one
  quit                          leave the console`)
}

func (console *Console) cmdList() {
	writer := tabwriter.NewWriter(console.out, 0, 0, 2, ' ', 0)
	for i, entry := range console.entries {
		timer := entry.Timer
		fmt.Fprintf(writer, "%d\t%s\t%s\t%s\t%s\n", i+1, entry.Name,
			timer.TimeLeftStr().Get(), timer.TimeElapsedStr().Get(), timer.State())
	}
	_ = writer.Flush()
}

func (console *Console) cmdReset(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(console.out, "Usage: reset <n|all> [seconds] [start]")
		return
	}
	limit := countdown.KeepLimit
	start := false
	for _, arg := range args[1:] {
		if strings.EqualFold(arg, "start") {
			start = true
			continue
		}
		seconds, err := strconv.Atoi(arg)
		if err != nil || seconds < 0 {
			fmt.Fprintf(console.out, "Invalid seconds: %s\n", arg)
			return
		}
		limit = seconds
	}
	console.forTargets(args[:1], func(timer *countdown.Timer) {
		timer.Reset(limit, start)
	})
}

func (console *Console) forTargets(args []string, apply func(*countdown.Timer)) {
	if len(args) == 0 {
		fmt.Fprintln(console.out, "Missing timer number (or 'all')")
		return
	}
	if strings.EqualFold(args[0], "all") {
		for _, entry := range console.entries {
			apply(entry.Timer)
		}
		return
	}
	index, err := strconv.Atoi(args[0])
	if err != nil || index < 1 || index > len(console.entries) {
		fmt.Fprintf(console.out, "Unknown timer: %s\n", args[0])
		return
	}
	apply(console.entries[index-1].Timer)
}

func (console *Console) watch(entry Entry) {
	name := entry.Name
	timer := entry.Timer
	console.unsubscribe = append(console.unsubscribe,
		timer.On(countdown.EventTimeIsUp, func(countdown.Event) {
			fmt.Fprintf(console.out, "[%s] time is up!\n", name)
		}),
		timer.On(countdown.EventTimerStopped, func(event countdown.Event) {
			fmt.Fprintf(console.out, "[%s] stopped at %s\n", name, countdown.FormatMinutesSeconds(event.TimeElapsed))
		}),
		timer.On(countdown.EventTimeMarkHit, func(event countdown.Event) {
			fmt.Fprintf(console.out, "[%s] mark %s\n", name, countdown.FormatMinutesSeconds(event.TimeElapsed))
		}),
	)
}

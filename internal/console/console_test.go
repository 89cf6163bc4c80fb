package console

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"kotimer/internal/core/clock"
	"kotimer/internal/core/countdown"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConsole(t *testing.T, limits ...int) (*Console, *bytes.Buffer, *clock.Fake) {
	t.Helper()
	fake := clock.NewFake(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var entries []Entry
	for i, limit := range limits {
		entries = append(entries, Entry{
			Name: string(rune('A' + i)),
			Timer: countdown.New(limit, countdown.Options{
				Wait:            true,
				Clock:           fake,
				Logger:          logger,
				NotifyTimeMarks: []int{2},
			}),
		})
	}
	out := &bytes.Buffer{}
	return newConsole(entries, out), out, fake
}

func TestExecStartStop(t *testing.T) {
	console, _, fake := newTestConsole(t, 10, 20)

	assert.False(t, console.Exec("start 1"))
	assert.True(t, console.entries[0].Timer.IsRunning())
	assert.False(t, console.entries[1].Timer.IsRunning())

	assert.False(t, console.Exec("start all"))
	fake.Advance(3 * time.Second)
	assert.False(t, console.Exec("stop ALL"))

	assert.Equal(t, 6, console.entries[0].Timer.TimeLeft().Get())
	assert.Equal(t, 16, console.entries[1].Timer.TimeLeft().Get())
	assert.Equal(t, countdown.StateStopped, console.entries[1].Timer.State())
}

func TestExecToggle(t *testing.T) {
	console, _, _ := newTestConsole(t, 10)

	console.Exec("toggle 1")
	assert.True(t, console.entries[0].Timer.IsRunning())
	console.Exec("t 1")
	assert.False(t, console.entries[0].Timer.IsRunning())
}

func TestExecReset(t *testing.T) {
	console, out, fake := newTestConsole(t, 10)
	timer := console.entries[0].Timer
	console.Exec("start 1")
	fake.Advance(2 * time.Second)

	console.Exec("reset 1 90")
	assert.Equal(t, 90, timer.TimeLimit())
	assert.Equal(t, countdown.StateIdle, timer.State())

	console.Exec("reset 1 start")
	assert.True(t, timer.IsRunning())
	assert.Equal(t, 89, timer.TimeLeft().Get())

	console.Exec("reset 1 -4")
	assert.Contains(t, out.String(), "Invalid seconds: -4")
	assert.True(t, timer.IsRunning())
}

func TestExecReportsErrors(t *testing.T) {
	console, out, _ := newTestConsole(t, 10)

	console.Exec("start 7")
	console.Exec("stop")
	console.Exec("dance")
	console.Exec("reset")

	output := out.String()
	assert.Contains(t, output, "Unknown timer: 7")
	assert.Contains(t, output, "Missing timer number")
	assert.Contains(t, output, "Unknown command: dance")
	assert.Contains(t, output, "Usage: reset")
}

func TestExecQuit(t *testing.T) {
	console, _, _ := newTestConsole(t, 10)

	assert.False(t, console.Exec("   "))
	assert.True(t, console.Exec("quit"))
	assert.True(t, console.Exec("q"))
}

func TestExecList(t *testing.T) {
	console, out, _ := newTestConsole(t, 125, 30)
	console.Exec("start 2")

	console.Exec("list")

	output := out.String()
	assert.Contains(t, output, "A")
	assert.Contains(t, output, "02:05")
	assert.Contains(t, output, "00:29")
	assert.Contains(t, output, "running")
	assert.Contains(t, output, "idle")
}

func TestEventsArePrinted(t *testing.T) {
	console, out, fake := newTestConsole(t, 4)
	console.Exec("start 1")

	fake.Advance(time.Minute)

	output := out.String()
	assert.Contains(t, output, "[A] mark 00:02")
	assert.Contains(t, output, "[A] time is up!")

	console.Close()
	out.Reset()
	console.Exec("toggle 1")
	fake.Advance(time.Minute)
	assert.NotContains(t, out.String(), "time is up")
}

func TestRunWithoutTerminal(t *testing.T) {
	console, _, _ := newTestConsole(t, 4)
	require.Error(t, console.Run(context.Background()))
}

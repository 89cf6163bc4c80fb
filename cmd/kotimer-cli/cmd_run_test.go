package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"kotimer/internal/core/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGlobalOptions(stdin io.Reader, stdout *bytes.Buffer) GlobalOptions {
	return *newGlobalOptions(stdin, stdout, io.Discard)
}

func startRun(t *testing.T, ctx context.Context, opts RunOptions, stdin io.Reader, args ...string) (*clock.Fake, *bytes.Buffer, <-chan error) {
	t.Helper()
	fake := clock.NewFake(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	out := &bytes.Buffer{}
	result := make(chan error, 1)
	go func() {
		result <- runTimer(ctx, opts, testGlobalOptions(stdin, out), args, fake)
	}()
	return fake, out, result
}

func waitForTick(t *testing.T, fake *clock.Fake) {
	t.Helper()
	require.Eventually(t, func() bool { return fake.Pending() == 1 }, time.Second, time.Millisecond)
}

func TestRunTimerFinishes(t *testing.T) {
	fake, out, result := startRun(t, context.Background(), RunOptions{Marks: []int{2}}, nil, "3")
	waitForTick(t, fake)

	fake.Advance(time.Minute)

	require.NoError(t, <-result)
	assert.Equal(t, "00:02\n00:01\nmark 00:02\n00:00\ntime is up!\n", out.String())
}

func TestRunTimerInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	fake, out, result := startRun(t, ctx, RunOptions{}, nil, "90")
	waitForTick(t, fake)
	fake.Advance(4 * time.Second)

	cancel()

	require.ErrorIs(t, <-result, ErrInterrupted)
	assert.Contains(t, out.String(), "01:25\n")
	assert.Contains(t, out.String(), "stopped after 00:05\n")
	assert.Zero(t, fake.Pending())
}

func TestRunTimerWaitsForEnter(t *testing.T) {
	fake, out, result := startRun(t, context.Background(), RunOptions{Wait: true}, strings.NewReader("\n"), "1")

	require.NoError(t, <-result)
	assert.Equal(t, "00:01 ready, press Enter to start\n00:00\ntime is up!\n", out.String())
	assert.Zero(t, fake.Pending())
}

func TestRunTimerRejectsBadSeconds(t *testing.T) {
	for _, arg := range []string{"ten", "-5", "0", ""} {
		_, _, result := startRun(t, context.Background(), RunOptions{}, nil, arg)
		assert.ErrorContains(t, <-result, "invalid seconds", arg)
	}
}

package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeRunsDueCallsInOrder(t *testing.T) {
	fake := NewFake(epoch)
	var calls []string

	fake.AfterFunc(2*time.Second, func() { calls = append(calls, "b") })
	fake.AfterFunc(time.Second, func() { calls = append(calls, "a") })
	fake.AfterFunc(2*time.Second, func() { calls = append(calls, "c") })
	fake.AfterFunc(3*time.Second, func() { calls = append(calls, "d") })

	fake.Advance(2 * time.Second)

	assert.Equal(t, []string{"a", "b", "c"}, calls)
	assert.Equal(t, 1, fake.Pending())
	assert.Equal(t, epoch.Add(2*time.Second), fake.Now())
}

func TestFakeRunsCallsScheduledInsideWindow(t *testing.T) {
	fake := NewFake(epoch)
	var seen []time.Time

	var schedule func()
	schedule = func() {
		seen = append(seen, fake.Now())
		fake.AfterFunc(time.Second, schedule)
	}
	fake.AfterFunc(time.Second, schedule)

	fake.Advance(3 * time.Second)

	require.Len(t, seen, 3)
	assert.Equal(t, epoch.Add(time.Second), seen[0])
	assert.Equal(t, epoch.Add(3*time.Second), seen[2])
	assert.Equal(t, 1, fake.Pending())
}

func TestFakeStop(t *testing.T) {
	fake := NewFake(epoch)
	ran := false

	timer := fake.AfterFunc(time.Second, func() { ran = true })
	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())

	fake.Advance(time.Minute)
	assert.False(t, ran)
	assert.Zero(t, fake.Pending())
}

func TestFakeZeroDelayRunsOnNextAdvance(t *testing.T) {
	fake := NewFake(epoch)
	ran := false

	fake.AfterFunc(0, func() { ran = true })
	assert.False(t, ran)

	fake.Advance(0)
	assert.True(t, ran)
}

func TestOnLoopPostsCallbacks(t *testing.T) {
	fake := NewFake(epoch)
	var posted []func()
	loop := OnLoop(fake, func(f func()) {
		posted = append(posted, f)
	})

	ran := false
	loop.AfterFunc(time.Second, func() { ran = true })
	fake.Advance(time.Second)

	require.Len(t, posted, 1)
	assert.False(t, ran)
	posted[0]()
	assert.True(t, ran)
	assert.Equal(t, fake.Now(), loop.Now())
}

func TestOnLoopWithoutPostReturnsBase(t *testing.T) {
	fake := NewFake(epoch)
	assert.Same(t, fake, OnLoop(fake, nil))
}

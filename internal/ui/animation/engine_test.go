package animation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type frameRecorder struct {
	mu     sync.Mutex
	frames []bool
}

func (recorder *frameRecorder) set(lit bool) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.frames = append(recorder.frames, lit)
}

func (recorder *frameRecorder) snapshot() []bool {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	return append([]bool(nil), recorder.frames...)
}

func fastConfig() Config {
	return Config{
		LitDuration: Range{Min: time.Millisecond, Max: 2 * time.Millisecond},
		DimDuration: Range{Min: time.Millisecond, Max: 2 * time.Millisecond},
	}
}

func TestRangeRandom(t *testing.T) {
	engine := New(Config{}, func(bool) {})
	fixed := Range{Min: time.Second, Max: time.Second}
	assert.Equal(t, time.Second, fixed.Random(engine.rng))

	span := Range{Min: time.Second, Max: 2 * time.Second}
	for i := 0; i < 50; i++ {
		value := span.Random(engine.rng)
		assert.GreaterOrEqual(t, value, span.Min)
		assert.Less(t, value, span.Max)
	}
}

func TestEngineAlternatesAndEndsLit(t *testing.T) {
	recorder := &frameRecorder{}
	engine := New(fastConfig(), recorder.set)

	engine.Start(context.Background())
	require.Eventually(t, func() bool { return len(recorder.snapshot()) >= 4 }, time.Second, time.Millisecond)
	engine.Stop()

	frames := recorder.snapshot()
	assert.True(t, frames[0])
	assert.False(t, frames[1])
	assert.True(t, frames[len(frames)-1])

	count := len(frames)
	time.Sleep(10 * time.Millisecond)
	assert.Len(t, recorder.snapshot(), count)
}

func TestEngineLimit(t *testing.T) {
	recorder := &frameRecorder{}
	config := fastConfig()
	config.Limit = 20 * time.Millisecond
	engine := New(config, recorder.set)

	engine.Start(context.Background())
	require.Eventually(t, func() bool {
		frames := recorder.snapshot()
		if len(frames) == 0 {
			return false
		}
		time.Sleep(10 * time.Millisecond)
		return len(recorder.snapshot()) == len(frames)
	}, time.Second, 5*time.Millisecond)

	frames := recorder.snapshot()
	assert.True(t, frames[len(frames)-1])
	engine.Stop()
}

func TestEngineRestartReplacesSequence(t *testing.T) {
	recorder := &frameRecorder{}
	engine := New(fastConfig(), recorder.set)

	engine.Start(context.Background())
	engine.Start(context.Background())
	engine.Stop()
	engine.Stop()

	frames := recorder.snapshot()
	require.NotEmpty(t, frames)
	assert.True(t, frames[len(frames)-1])
}

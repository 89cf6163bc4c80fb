package animation

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Range defines a duration range with random sampling.
type Range struct {
	Min time.Duration
	Max time.Duration
}

// Random returns a random duration within the range.
func (value Range) Random(rng *rand.Rand) time.Duration {
	if value.Max <= value.Min {
		return value.Min
	}
	delta := value.Max - value.Min
	return value.Min + time.Duration(rng.Int63n(int64(delta)))
}

// Config contains blink timing values.
type Config struct {
	LitDuration       Range
	DimDuration       Range
	DoubleBlinkChance float64
	DoubleBlinkGap    Range

	// Limit stops blinking, lit, after this long. Zero blinks until Stop.
	Limit time.Duration
}

// Engine alternates a lit and a dim frame until stopped.
type Engine struct {
	mu       sync.Mutex
	config   Config
	setFrame func(lit bool)
	cancel   context.CancelFunc
	done     chan struct{}
	rng      *rand.Rand
}

// New creates a blink engine. setFrame runs on the engine goroutine.
func New(config Config, setFrame func(lit bool)) *Engine {
	return &Engine{
		config:   config,
		setFrame: setFrame,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Start begins blinking, replacing any running sequence.
func (engine *Engine) Start(ctx context.Context) {
	engine.start(ctx, engine.run)
}

// Stop terminates the active sequence and waits for it to exit.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	cancel := engine.cancel
	done := engine.done
	engine.cancel = nil
	engine.done = nil
	engine.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

func (engine *Engine) start(parent context.Context, run func(context.Context, *rand.Rand)) {
	engine.Stop()

	var (
		runCtx context.Context
		cancel context.CancelFunc
	)
	if engine.config.Limit > 0 {
		runCtx, cancel = context.WithTimeout(parent, engine.config.Limit)
	} else {
		runCtx, cancel = context.WithCancel(parent)
	}
	done := make(chan struct{})

	engine.mu.Lock()
	engine.cancel = cancel
	engine.done = done
	// rand.Rand is not safe for concurrent use; each run gets its own.
	rng := rand.New(rand.NewSource(engine.rng.Int63()))
	engine.mu.Unlock()

	go func() {
		defer close(done)
		run(runCtx, rng)
		engine.setFrame(true)
	}()
}

func (engine *Engine) run(ctx context.Context, rng *rand.Rand) {
	for {
		engine.setFrame(true)
		if !sleepWithContext(ctx, engine.config.LitDuration.Random(rng)) {
			return
		}
		engine.setFrame(false)
		if !sleepWithContext(ctx, engine.config.DimDuration.Random(rng)) {
			return
		}

		if rng.Float64() < engine.config.DoubleBlinkChance {
			engine.setFrame(true)
			if !sleepWithContext(ctx, engine.config.DoubleBlinkGap.Random(rng)) {
				return
			}
			engine.setFrame(false)
			if !sleepWithContext(ctx, engine.config.DimDuration.Random(rng)) {
				return
			}
		}
	}
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

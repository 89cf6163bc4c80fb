// Package countdown implements a one-second countdown timer with observable
// state and per-instance notifications.
//
// A Timer moves between four states:
//
//	idle --Start--> running --tick, time left reaches 0--> finished
//	running --Stop, or keepGoing false--> stopped --Start--> running
//	stopped, finished --Reset--> idle
//
// Every tick decrements the time left by exactly one second. The first tick
// of a run happens inside Start; later ticks are scheduled on the Timer's
// clock one TickInterval apart, with at most one tick outstanding.
package countdown

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"kotimer/internal/core/clock"
	"kotimer/internal/core/observable"

	"github.com/google/uuid"
)

const (
	// DefaultTimeLimit is used when New receives a non-positive limit.
	DefaultTimeLimit = 60

	// KeepLimit passed to Reset keeps the current time limit.
	KeepLimit = -1
)

// TickInterval is the delay between two ticks.
const TickInterval = time.Second

// Options configures a Timer.
type Options struct {
	// Wait defers ticking until Start is called.
	Wait bool
	// KeepGoing is checked after every tick that does not finish the
	// countdown; returning false stops the timer.
	KeepGoing func() bool
	// Callback runs once when the countdown reaches zero, before EventTimeIsUp
	// and while the timer still reports running.
	Callback func()
	// NotifyTimeMarks lists elapsed seconds that trigger EventTimeMarkHit.
	NotifyTimeMarks []int

	// Clock schedules ticks. Nil means the real clock.
	Clock clock.Clock
	// Logger receives transitions at debug level. Nil means slog.Default().
	Logger *slog.Logger
	// ID identifies the timer in events. Empty means a random UUID.
	ID string
}

// Timer is a countdown timer. Its methods are safe for concurrent use, but
// notifications are only strictly ordered when the timer is driven from a
// single loop (see clock.OnLoop).
type Timer struct {
	mu         sync.Mutex
	id         string
	clock      clock.Clock
	logger     *slog.Logger
	keepGoing  func() bool
	callback   func()
	marks      map[int]bool
	timeLimit  int
	timeLeft   int
	state      State
	generation uint64
	pending    clock.Timer

	events emitter

	timeLeftValue       *observable.Value[int]
	timeElapsedValue    *observable.Value[int]
	timeLeftStrValue    *observable.Value[string]
	timeElapsedStrValue *observable.Value[string]
	runningValue        *observable.Value[bool]
}

// New creates a Timer counting down timeLimit seconds. Unless options.Wait
// is set, the timer starts before New returns.
func New(timeLimit int, options Options) *Timer {
	if timeLimit <= 0 {
		timeLimit = DefaultTimeLimit
	}
	if options.KeepGoing == nil {
		options.KeepGoing = func() bool { return true }
	}
	if options.Clock == nil {
		options.Clock = clock.Real()
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if options.ID == "" {
		options.ID = uuid.NewString()
	}

	marks := make(map[int]bool, len(options.NotifyTimeMarks))
	for _, mark := range options.NotifyTimeMarks {
		if mark >= 0 {
			marks[mark] = false
		}
	}

	timer := &Timer{
		id:        options.ID,
		clock:     options.Clock,
		logger:    options.Logger.With(slog.String("timer_id", options.ID)),
		keepGoing: options.KeepGoing,
		callback:  options.Callback,
		marks:     marks,
		timeLimit: timeLimit,
		timeLeft:  timeLimit,
		state:     StateIdle,

		timeLeftValue:       observable.NewValue(timeLimit),
		timeElapsedValue:    observable.NewValue(0),
		timeLeftStrValue:    observable.NewValue(FormatMinutesSeconds(timeLimit)),
		timeElapsedStrValue: observable.NewValue(FormatMinutesSeconds(0)),
		runningValue:        observable.NewValue(false),
	}

	if !options.Wait {
		timer.Start()
	}
	return timer
}

// ID identifies the timer in its events.
func (timer *Timer) ID() string {
	return timer.id
}

// String implements fmt.Stringer.
func (timer *Timer) String() string {
	snap := timer.snapshot()
	return fmt.Sprintf("%s %s/%s", snap.state, FormatMinutesSeconds(snap.timeLeft), FormatMinutesSeconds(snap.timeLimit))
}

// State returns the current state.
func (timer *Timer) State() State {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.state
}

// TimeLimit returns the countdown length in seconds.
func (timer *Timer) TimeLimit() int {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.timeLimit
}

// IsRunning reports whether the timer is ticking.
func (timer *Timer) IsRunning() bool {
	return timer.State() == StateRunning
}

// IsStopped reports whether the timer was stopped or has finished.
func (timer *Timer) IsStopped() bool {
	state := timer.State()
	return state == StateStopped || state == StateFinished
}

// IsFinished reports whether the countdown reached zero since the last reset.
func (timer *Timer) IsFinished() bool {
	return timer.State() == StateFinished
}

// TimeLeft is the remaining time in seconds.
func (timer *Timer) TimeLeft() observable.Observable[int] { return timer.timeLeftValue }

// TimeElapsed is TimeLimit minus TimeLeft.
func (timer *Timer) TimeElapsed() observable.Observable[int] { return timer.timeElapsedValue }

// TimeLeftStr is TimeLeft formatted as MM:SS.
func (timer *Timer) TimeLeftStr() observable.Observable[string] { return timer.timeLeftStrValue }

// TimeElapsedStr is TimeElapsed formatted as MM:SS.
func (timer *Timer) TimeElapsedStr() observable.Observable[string] { return timer.timeElapsedStrValue }

// Running mirrors IsRunning.
func (timer *Timer) Running() observable.Observable[bool] { return timer.runningValue }

// On registers handler for events of the given type. Handlers run
// synchronously in registration order and may call Timer methods.
func (timer *Timer) On(eventType EventType, handler Handler) (unsubscribe func()) {
	return timer.events.on(eventType, handler)
}

// Subscribe returns a channel receiving every event. Events are dropped when
// the channel buffer is full. The channel is closed by Close.
func (timer *Timer) Subscribe(buffer int) <-chan Event {
	return timer.events.subscribe(buffer)
}

// Start begins or resumes the countdown. The first tick happens immediately.
// Start does nothing while running or once finished.
func (timer *Timer) Start() {
	timer.mu.Lock()
	if timer.state == StateRunning || timer.state == StateFinished {
		timer.mu.Unlock()
		return
	}
	timer.state = StateRunning
	timer.generation++
	generation := timer.generation
	timeLeft := timer.timeLeft
	timer.mu.Unlock()

	timer.logger.Debug("countdown started", slog.Int("time_left", timeLeft))
	timer.publish()
	timer.tick(generation)
}

// Stop pauses a running countdown and cancels the pending tick.
func (timer *Timer) Stop() {
	timer.mu.Lock()
	stopped := timer.stopLocked()
	timeLeft := timer.timeLeft
	timer.mu.Unlock()

	if !stopped {
		return
	}
	timer.logger.Debug("countdown stopped", slog.Int("time_left", timeLeft))
	timer.publish()
}

// Toggle stops a running timer, restarts a finished one and starts any other.
func (timer *Timer) Toggle() {
	switch timer.State() {
	case StateRunning:
		timer.Stop()
	case StateFinished:
		timer.Reset(KeepLimit, true)
	default:
		timer.Start()
	}
}

// Reset stops the timer and restores the full time limit. A non-negative
// timeLimit replaces the limit; KeepLimit keeps it. With start set the new
// run begins immediately.
func (timer *Timer) Reset(timeLimit int, start bool) {
	timer.mu.Lock()
	timer.stopLocked()
	if timeLimit >= 0 {
		timer.timeLimit = timeLimit
	}
	timer.timeLeft = timer.timeLimit
	timer.state = StateIdle
	timer.generation++
	for mark := range timer.marks {
		timer.marks[mark] = false
	}
	limit := timer.timeLimit
	timer.mu.Unlock()

	timer.logger.Debug("countdown reset", slog.Int("time_limit", limit))
	timer.publish()

	if start {
		timer.Start()
	}
}

// Close stops the timer and closes all channel subscriptions.
func (timer *Timer) Close() {
	timer.Stop()
	timer.events.close()
}

func (timer *Timer) stopLocked() bool {
	if timer.state != StateRunning {
		return false
	}
	timer.state = StateStopped
	timer.generation++
	if timer.pending != nil {
		timer.pending.Stop()
		timer.pending = nil
	}
	return true
}

func (timer *Timer) currentLocked(generation uint64) bool {
	return timer.state == StateRunning && timer.generation == generation
}

func (timer *Timer) current(generation uint64) bool {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.currentLocked(generation)
}

func (timer *Timer) tick(generation uint64) {
	timer.mu.Lock()
	if !timer.currentLocked(generation) {
		timer.mu.Unlock()
		return
	}
	timer.pending = nil
	if timer.timeLeft > 0 {
		timer.timeLeft--
	}

	if timer.timeLeft <= 0 {
		callback := timer.callback
		limit := timer.timeLimit
		timer.mu.Unlock()

		timer.publish()
		timer.finish(generation, callback, limit)
		return
	}
	keepGoing := timer.keepGoing
	timer.mu.Unlock()

	timer.publish()
	if !timer.current(generation) {
		return
	}

	if !keepGoing() {
		timer.mu.Lock()
		if !timer.currentLocked(generation) {
			timer.mu.Unlock()
			return
		}
		elapsed := timer.timeLimit - timer.timeLeft
		timer.mu.Unlock()

		timer.emit(EventTimerStopped, elapsed)

		timer.mu.Lock()
		stopped := timer.currentLocked(generation) && timer.stopLocked()
		timer.mu.Unlock()
		if stopped {
			timer.logger.Debug("countdown stopped by keepGoing", slog.Int("time_elapsed", elapsed))
			timer.publish()
		}
		return
	}

	timer.mu.Lock()
	if !timer.currentLocked(generation) {
		timer.mu.Unlock()
		return
	}
	elapsed := timer.timeLimit - timer.timeLeft
	notified, isMark := timer.marks[elapsed]
	hit := isMark && !notified
	if hit {
		timer.marks[elapsed] = true
	}
	timer.pending = timer.clock.AfterFunc(TickInterval, func() {
		timer.tick(generation)
	})
	timer.mu.Unlock()

	if hit {
		timer.emit(EventTimeMarkHit, elapsed)
	}
}

// finish runs the callback and TimeIsUp while the run is still current, then
// moves to Finished. The transition also happens when the callback panics.
// A handler that stops or resets the timer keeps its own state.
func (timer *Timer) finish(generation uint64, callback func(), limit int) {
	defer func() {
		timer.mu.Lock()
		finished := timer.currentLocked(generation)
		if finished {
			timer.state = StateFinished
			timer.generation++
		}
		timer.mu.Unlock()
		if finished {
			timer.logger.Debug("countdown finished", slog.Int("time_limit", limit))
			timer.publish()
		}
	}()

	if callback != nil {
		callback()
	}
	if timer.current(generation) {
		timer.emit(EventTimeIsUp, limit)
	}
}

func (timer *Timer) emit(eventType EventType, elapsed int) {
	timer.events.emit(Event{
		Type:        eventType,
		TimerID:     timer.id,
		TimeElapsed: elapsed,
		At:          timer.clock.Now(),
	})
}

type snapshot struct {
	state     State
	timeLimit int
	timeLeft  int
}

func (timer *Timer) snapshot() snapshot {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return snapshot{state: timer.state, timeLimit: timer.timeLimit, timeLeft: timer.timeLeft}
}

// publish pushes the current state into the observable values. A subscriber
// may change the timer, whose own publish then carries the newer state, so
// publishing stops as soon as the snapshot goes stale.
func (timer *Timer) publish() {
	snap := timer.snapshot()
	elapsed := snap.timeLimit - snap.timeLeft
	steps := []func(){
		func() { timer.timeLeftValue.Set(snap.timeLeft) },
		func() { timer.timeElapsedValue.Set(elapsed) },
		func() { timer.timeLeftStrValue.Set(FormatMinutesSeconds(snap.timeLeft)) },
		func() { timer.timeElapsedStrValue.Set(FormatMinutesSeconds(elapsed)) },
		func() { timer.runningValue.Set(snap.state == StateRunning) },
	}
	for _, step := range steps {
		step()
		if timer.snapshot() != snap {
			return
		}
	}
}

// Package clock abstracts deferred invocation so timers can run on real or virtual time.
package clock

import "time"

// Timer is a pending AfterFunc call.
type Timer interface {
	// Stop prevents the call from running. It reports false if the call
	// already ran or was stopped before.
	Stop() bool
}

// Clock provides the current time and single deferred invocations.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Real returns a Clock backed by the time package.
func Real() Clock {
	return realClock{}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// OnLoop returns a Clock whose deferred calls are handed to post instead of
// running on the timer goroutine. Passing fyne.Do keeps every call on the UI loop.
func OnLoop(base Clock, post func(func())) Clock {
	if post == nil {
		return base
	}
	return loopClock{base: base, post: post}
}

type loopClock struct {
	base Clock
	post func(func())
}

func (clock loopClock) Now() time.Time {
	return clock.base.Now()
}

func (clock loopClock) AfterFunc(d time.Duration, f func()) Timer {
	return clock.base.AfterFunc(d, func() {
		clock.post(f)
	})
}

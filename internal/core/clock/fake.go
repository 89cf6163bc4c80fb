package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake is a virtual clock. Scheduled calls only run inside Advance or Set,
// on the calling goroutine.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	seq     uint64
	pending []*fakeTimer
}

type fakeTimer struct {
	clock *Fake
	due   time.Time
	seq   uint64
	call  func()
}

// NewFake creates a Fake clock starting at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

// Now returns the virtual time.
func (fake *Fake) Now() time.Time {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return fake.now
}

// AfterFunc schedules f to run once virtual time reaches now+d.
func (fake *Fake) AfterFunc(d time.Duration, f func()) Timer {
	fake.mu.Lock()
	defer fake.mu.Unlock()

	if d < 0 {
		d = 0
	}
	fake.seq++
	timer := &fakeTimer{
		clock: fake,
		due:   fake.now.Add(d),
		seq:   fake.seq,
		call:  f,
	}
	fake.pending = append(fake.pending, timer)
	return timer
}

// Pending reports the number of scheduled calls that have not run or been stopped.
func (fake *Fake) Pending() int {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return len(fake.pending)
}

// Advance moves virtual time forward by d, running due calls in order.
func (fake *Fake) Advance(d time.Duration) {
	fake.mu.Lock()
	target := fake.now.Add(d)
	fake.mu.Unlock()
	fake.Set(target)
}

// Set moves virtual time to target. Calls scheduled by running calls are
// picked up as long as they fall inside the window.
func (fake *Fake) Set(target time.Time) {
	for {
		fake.mu.Lock()
		next := fake.popDueLocked(target)
		if next == nil {
			if target.After(fake.now) {
				fake.now = target
			}
			fake.mu.Unlock()
			return
		}
		if next.due.After(fake.now) {
			fake.now = next.due
		}
		fake.mu.Unlock()

		next.call()
	}
}

func (fake *Fake) popDueLocked(target time.Time) *fakeTimer {
	if len(fake.pending) == 0 {
		return nil
	}
	sort.SliceStable(fake.pending, func(i, j int) bool {
		if fake.pending[i].due.Equal(fake.pending[j].due) {
			return fake.pending[i].seq < fake.pending[j].seq
		}
		return fake.pending[i].due.Before(fake.pending[j].due)
	})
	first := fake.pending[0]
	if first.due.After(target) {
		return nil
	}
	fake.pending = fake.pending[1:]
	return first
}

func (timer *fakeTimer) Stop() bool {
	fake := timer.clock
	fake.mu.Lock()
	defer fake.mu.Unlock()
	for i, pending := range fake.pending {
		if pending == timer {
			fake.pending = append(fake.pending[:i], fake.pending[i+1:]...)
			return true
		}
	}
	return false
}

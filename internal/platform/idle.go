package platform

import (
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrIdleUnsupported indicates idle detection is not available on this system.
var ErrIdleUnsupported = errors.New("idle detection unsupported")

// IdleProvider returns the duration since last user input.
type IdleProvider interface {
	IdleDuration() (time.Duration, error)
}

// NewIdleProvider returns a platform-specific idle provider.
func NewIdleProvider() IdleProvider {
	return newIdleProvider()
}

type unsupportedIdleProvider struct{}

func (unsupportedIdleProvider) IdleDuration() (time.Duration, error) {
	return 0, ErrIdleUnsupported
}

// KeepGoingWhileActive returns a countdown keepGoing predicate that turns
// false once the user has been idle for at least threshold. When idle time
// cannot be read the predicate keeps going; the first failure is logged.
func KeepGoingWhileActive(provider IdleProvider, threshold time.Duration, logger *slog.Logger) func() bool {
	if logger == nil {
		logger = slog.Default()
	}
	var reportOnce sync.Once

	return func() bool {
		if provider == nil || threshold <= 0 {
			return true
		}
		idle, err := provider.IdleDuration()
		if err != nil {
			reportOnce.Do(func() {
				if errors.Is(err, ErrIdleUnsupported) {
					logger.Info("idle detection unavailable, timers keep running")
					return
				}
				logger.Warn("idle detection failed", slog.Any("error", err))
			})
			return true
		}
		return idle < threshold
	}
}

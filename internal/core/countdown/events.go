package countdown

import "time"

// State represents the current Timer mode.
type State string

const (
	StateIdle     State = "idle"
	StateRunning  State = "running"
	StateStopped  State = "stopped"
	StateFinished State = "finished"
)

// String returns the state name.
func (state State) String() string {
	return string(state)
}

// EventType defines the type of Timer notification.
type EventType string

const (
	EventTimeIsUp     EventType = "timeIsUp"
	EventTimerStopped EventType = "timerStopped"
	EventTimeMarkHit  EventType = "timeMarkHit"
)

// Event represents a Timer notification for observers.
type Event struct {
	Type    EventType
	TimerID string
	// TimeElapsed is the elapsed seconds when the event fired. For
	// EventTimeMarkHit it is the mark that was hit.
	TimeElapsed int
	At          time.Time
}

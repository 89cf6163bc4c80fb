// Package observable holds values that notify subscribers when they change.
package observable

import "sync"

// Observable is a read-only view of a Value.
type Observable[T any] interface {
	Get() T
	// Subscribe registers fn to run after every change. The returned
	// function removes the subscription and may be called more than once.
	Subscribe(fn func(T)) (unsubscribe func())
}

// Value is a held value plus its subscribers.
type Value[T comparable] struct {
	mu          sync.Mutex
	value       T
	nextID      uint64
	subscribers []subscriber[T]
}

type subscriber[T any] struct {
	id uint64
	fn func(T)
}

// NewValue creates a Value holding initial.
func NewValue[T comparable](initial T) *Value[T] {
	return &Value[T]{value: initial}
}

// Get returns the current value.
func (value *Value[T]) Get() T {
	value.mu.Lock()
	defer value.mu.Unlock()
	return value.value
}

// Set stores next and, if it differs from the current value, notifies
// subscribers in registration order.
func (value *Value[T]) Set(next T) {
	value.mu.Lock()
	if value.value == next {
		value.mu.Unlock()
		return
	}
	value.value = next
	subscribers := append([]subscriber[T](nil), value.subscribers...)
	value.mu.Unlock()

	for _, sub := range subscribers {
		sub.fn(next)
	}
}

// Subscribe registers fn. It is not called with the current value.
func (value *Value[T]) Subscribe(fn func(T)) func() {
	value.mu.Lock()
	value.nextID++
	id := value.nextID
	value.subscribers = append(value.subscribers, subscriber[T]{id: id, fn: fn})
	value.mu.Unlock()

	return func() {
		value.mu.Lock()
		defer value.mu.Unlock()
		for i, sub := range value.subscribers {
			if sub.id == id {
				value.subscribers = append(value.subscribers[:i:i], value.subscribers[i+1:]...)
				return
			}
		}
	}
}

package countdown

import "sync"

// Handler receives timer notifications.
type Handler func(Event)

type registration struct {
	id        uint64
	eventType EventType
	handler   Handler
}

// emitter dispatches events to handlers and channel observers of one timer.
type emitter struct {
	mu       sync.Mutex
	nextID   uint64
	handlers []registration
	channels []chan Event
	closed   bool
}

func (events *emitter) on(eventType EventType, handler Handler) func() {
	events.mu.Lock()
	if events.closed || handler == nil {
		events.mu.Unlock()
		return func() {}
	}
	events.nextID++
	id := events.nextID
	events.handlers = append(events.handlers, registration{id: id, eventType: eventType, handler: handler})
	events.mu.Unlock()

	return func() {
		events.mu.Lock()
		defer events.mu.Unlock()
		for i, reg := range events.handlers {
			if reg.id == id {
				events.handlers = append(events.handlers[:i:i], events.handlers[i+1:]...)
				return
			}
		}
	}
}

func (events *emitter) subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	events.mu.Lock()
	defer events.mu.Unlock()
	if events.closed {
		close(ch)
		return ch
	}
	events.channels = append(events.channels, ch)
	return ch
}

func (events *emitter) emit(event Event) {
	events.mu.Lock()
	handlers := make([]Handler, 0, len(events.handlers))
	for _, reg := range events.handlers {
		if reg.eventType == event.Type {
			handlers = append(handlers, reg.handler)
		}
	}
	for _, ch := range events.channels {
		select {
		case ch <- event:
		default:
		}
	}
	events.mu.Unlock()

	for _, handler := range handlers {
		handler(event)
	}
}

func (events *emitter) close() {
	events.mu.Lock()
	if events.closed {
		events.mu.Unlock()
		return
	}
	events.closed = true
	channels := events.channels
	events.channels = nil
	events.handlers = nil
	events.mu.Unlock()

	for _, ch := range channels {
		close(ch)
	}
}

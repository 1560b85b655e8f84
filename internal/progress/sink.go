package progress

import "sync"

// EventKind tells progress events from status events.
type EventKind int

const (
	KindProgress EventKind = iota
	KindStatus
)

// Event is one observation pushed through a Sink.
type Event struct {
	Kind    EventKind
	Percent int
	Message string
}

// Sink is a channel-backed Reporter: the scanning goroutine pushes events and
// a consumer (the TUI) drains Events. The producer calls Close when done; the
// consumer calls Stop when it no longer listens, which unblocks the producer.
//
// Progress events block until consumed or stopped. Status events are dropped
// when the buffer is full.
type Sink struct {
	events chan Event
	done   chan struct{}

	closeOnce sync.Once
	stopOnce  sync.Once
	mu        sync.RWMutex
	closed    bool
}

// NewSink creates a Sink with the given buffer size.
func NewSink(buffer int) *Sink {
	if buffer < 1 {
		buffer = 1
	}
	return &Sink{
		events: make(chan Event, buffer),
		done:   make(chan struct{}),
	}
}

// Events returns the receive side. It is closed by Close.
func (s *Sink) Events() <-chan Event {
	return s.events
}

func (s *Sink) Progress(percent int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return
	}
	select {
	case s.events <- Event{Kind: KindProgress, Percent: percent}:
	case <-s.done:
	}
}

func (s *Sink) Status(message string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return
	}
	select {
	case s.events <- Event{Kind: KindStatus, Message: message}:
	case <-s.done:
	default:
	}
}

// Close marks the end of the stream. Safe to call more than once.
func (s *Sink) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.events)
		s.mu.Unlock()
	})
}

// Stop releases a producer blocked on a consumer that went away.
func (s *Sink) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

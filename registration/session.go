package registration

import (
	"sync"
	"time"
)

// Listener is called with the new state after every change.
type Listener func(State)

// Session holds the live form state of one registration.
//
// Dispatch is safe for concurrent use. Listeners run synchronously on the
// dispatching goroutine, one dispatch at a time, and see states in the order
// they were committed. A listener must not call Dispatch.
type Session struct {
	notifyMu  sync.Mutex
	mu        sync.Mutex
	state     State
	listeners map[int]Listener
	nextID    int
	reset     *time.Timer
}

// NewSession starts a session on the default form.
func NewSession() *Session {
	return NewSessionFrom(NewState())
}

// NewSessionFrom starts a session on an existing state.
func NewSessionFrom(s State) *Session {
	return &Session{
		state:     s,
		listeners: make(map[int]Listener),
	}
}

// Snapshot returns the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers a listener and returns a function that removes it.
func (s *Session) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Dispatch applies an event. It reports whether the state changed;
// listeners are only notified when it did.
func (s *Session) Dispatch(e Event) bool {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	next := Reduce(s.state, e)
	if next == s.state {
		s.mu.Unlock()
		return false
	}
	s.state = next
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	for _, l := range listeners {
		l(next)
	}
	return true
}

// ScheduleReset resets the form after the given delay, replacing any reset
// already scheduled. This is the post-submission auto-clear.
func (s *Session) ScheduleReset(after time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.reset != nil {
		s.reset.Stop()
	}
	s.reset = time.AfterFunc(after, func() { s.Dispatch(Reset{}) })
}

// Stop cancels a pending reset. It reports whether one was pending.
func (s *Session) Stop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.reset == nil {
		return false
	}
	stopped := s.reset.Stop()
	s.reset = nil
	return stopped
}

func (s *Session) snapshotListeners() []Listener {
	out := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		out = append(out, l)
	}
	return out
}

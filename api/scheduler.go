/*
scheduler.go - Outbox scheduler for pending registrations

PURPOSE:
  Periodically re-submits receipts that were archived as pending because the
  hostel backend could not be reached when the student pressed submit.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Each tick resubmits every pending receipt, oldest first
  - Receipts that keep failing are marked failed by the desk after
    Desk.MaxAttempts attempts and drop out of the outbox

CONFIGURATION:
  - CheckInterval: How often to check (default: 1 minute)
  - Enabled: Whether scheduler is active (default: true)

USAGE:
  scheduler := NewOutboxScheduler(desk)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - registration/desk.go: Desk.RetryPending
*/
package api

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/youstel/registration-desk/registration"
)

// OutboxScheduler handles automated resubmission of pending receipts.
type OutboxScheduler struct {
	Desk          *registration.Desk
	CheckInterval time.Duration
	Enabled       bool
	Logger        *slog.Logger

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
	runMu  sync.Mutex
}

// NewOutboxScheduler creates a new scheduler.
func NewOutboxScheduler(desk *registration.Desk) *OutboxScheduler {
	return &OutboxScheduler{
		Desk:          desk,
		CheckInterval: time.Minute,
		Enabled:       true,
		Logger:        slog.Default().With("component", "outbox"),
	}
}

// Start begins the scheduler. Starting a running scheduler does nothing.
func (s *OutboxScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.Enabled {
		s.Logger.Info("outbox disabled, not starting")
		return
	}
	if s.ticker != nil {
		return
	}

	s.ticker = time.NewTicker(s.interval())
	s.stop = make(chan struct{})
	s.wg.Add(1)

	go s.run(s.ticker, s.stop)

	s.Logger.Info("outbox started", "interval", s.interval())
}

// Stop stops the scheduler and waits for an in-progress check to finish.
func (s *OutboxScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticker != nil {
		s.ticker.Stop()
		close(s.stop)
		s.wg.Wait()
		s.ticker = nil
		s.Logger.Info("outbox stopped")
	}
}

func (s *OutboxScheduler) run(ticker *time.Ticker, stop <-chan struct{}) {
	defer s.wg.Done()

	// Run immediately on start
	s.RunNow()

	for {
		select {
		case <-ticker.C:
			s.RunNow()
		case <-stop:
			return
		}
	}
}

// RunNow resubmits pending receipts immediately and returns how many the
// backend accepted. Concurrent calls are serialized.
func (s *OutboxScheduler) RunNow() int {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.interval())
	defer cancel()

	accepted, err := s.Desk.RetryPending(ctx)
	if err != nil {
		s.Logger.Error("outbox run failed", "accepted", accepted, "error", err)
		return accepted
	}
	if accepted > 0 {
		s.Logger.Info("outbox delivered pending registrations", "accepted", accepted)
	}
	return accepted
}

// NextRunTime returns when the next scheduled check will occur.
func (s *OutboxScheduler) NextRunTime() time.Time {
	return time.Now().Add(s.interval())
}

func (s *OutboxScheduler) interval() time.Duration {
	if s.CheckInterval <= 0 {
		return time.Minute
	}
	return s.CheckInterval
}

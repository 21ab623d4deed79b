// Package reminder implements the background reminder engine: a polling loop
// that finds schedules whose reminder window just opened, pushes one message
// per due threshold and records the send so it never repeats.
package reminder

import (
	"context"
	"sync"
	"time"

	"github.com/schedbot/schedbot/internal/models"
	"github.com/sirupsen/logrus"
)

// Store is the slice of the schedule store the scheduler needs.
type Store interface {
	CandidatesForReminder(ctx context.Context, now time.Time) ([]*models.Schedule, error)
	MarkNotified(ctx context.Context, scheduleID int64, threshold models.Threshold) error
}

// Sender pushes one text message to one owner. A returned error means the
// threshold stays unconsumed and is retried on the next cycle while its
// window lasts.
type Sender interface {
	Send(userID int64, text string) error
}

// Clock abstracts wall time so tests can drive cycles deterministically.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time                         { return time.Now() }
func (systemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

type Scheduler struct {
	store         Store
	sender        Sender
	clock         Clock
	loc           *time.Location
	checkInterval time.Duration
	startupDelay  time.Duration
	log           *logrus.Entry

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func New(store Store, sender Sender, loc *time.Location, checkInterval, startupDelay time.Duration) *Scheduler {
	return &Scheduler{
		store:         store,
		sender:        sender,
		clock:         systemClock{},
		loc:           loc,
		checkInterval: checkInterval,
		startupDelay:  startupDelay,
		log:           logrus.WithField("component", "scheduler"),
	}
}

// Start launches the polling loop. Calling Start on a running scheduler is a
// logged no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.log.Warn("Scheduler already running")
		return
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	go s.run(s.stopCh, s.doneCh)
	s.log.Info("Scheduler started")
}

// Stop ends the loop and waits for an in-flight cycle to finish. A dispatch
// already underway is never interrupted. Safe to call when stopped.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	done := s.doneCh
	s.mu.Unlock()

	<-done
	s.log.Info("Scheduler stopped")
}

func (s *Scheduler) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	// Startup grace period so dependent services (database, Telegram API)
	// finish initializing before the first poll.
	select {
	case <-stop:
		return
	case <-s.clock.After(s.startupDelay):
	}

	for {
		s.runCycle()
		// Sleep measured from the end of the cycle; drift is acceptable.
		select {
		case <-stop:
			return
		case <-s.clock.After(s.checkInterval):
		}
	}
}

// runCycle performs one poll. Failures on one schedule never block the rest
// of the batch, and no error escapes to terminate the loop.
func (s *Scheduler) runCycle() {
	ctx := context.Background()
	now := s.clock.Now()

	candidates, err := s.store.CandidatesForReminder(ctx, now)
	if err != nil {
		s.log.WithError(err).Error("Failed to load reminder candidates")
		return
	}

	for _, sched := range candidates {
		threshold, due := DueThreshold(now, sched)
		if !due {
			continue
		}

		entry := s.log.WithFields(logrus.Fields{
			"schedule_id": sched.ScheduleID,
			"threshold":   threshold,
			"owner":       ownerTag(sched.UserID),
		})

		if err := s.sender.Send(sched.UserID, reminderText(s.loc, sched, threshold)); err != nil {
			// Flag untouched: the same reminder is retried next cycle as long
			// as its window is still open.
			entry.WithError(err).Error("Failed to send reminder")
			continue
		}

		if err := s.store.MarkNotified(ctx, sched.ScheduleID, threshold); err != nil {
			entry.WithError(err).Error("Failed to mark reminder as sent")
			continue
		}

		entry.Info("Reminder sent")
	}
}

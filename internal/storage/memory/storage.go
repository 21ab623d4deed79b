package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/schedbot/schedbot/internal/models"
	"github.com/schedbot/schedbot/internal/storage"
)

// Storage keeps schedules in a mutex-guarded map. It backs runs without a
// configured database and the deterministic scheduler tests; the contract is
// identical to the PostgreSQL store.
type Storage struct {
	mu    sync.RWMutex
	data  map[int64]models.Schedule
	idSeq int64
}

func New() *Storage {
	return &Storage{data: make(map[int64]models.Schedule)}
}

func (s *Storage) Add(_ context.Context, userID int64, title string, eventTime time.Time) (*models.Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sched := range s.data {
		if !sched.IsDeleted && sched.UserID == userID && sched.Title == title && sched.EventTime.Equal(eventTime) {
			return nil, storage.ErrDuplicateSchedule
		}
	}

	s.idSeq++
	sched := models.Schedule{
		ScheduleID: s.idSeq,
		UserID:     userID,
		Title:      title,
		EventTime:  eventTime,
		CreatedAt:  time.Now(),
	}
	s.data[sched.ScheduleID] = sched

	out := sched
	return &out, nil
}

func (s *Storage) ListByWindow(_ context.Context, userID int64, start, end *time.Time) ([]*models.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var schedules []*models.Schedule
	for _, sched := range s.data {
		if sched.IsDeleted || sched.UserID != userID {
			continue
		}
		if start != nil && sched.EventTime.Before(*start) {
			continue
		}
		if end != nil && sched.EventTime.After(*end) {
			continue
		}
		out := sched
		schedules = append(schedules, &out)
	}

	sortByEventTime(schedules)
	if len(schedules) > storage.ListLimit {
		schedules = schedules[:storage.ListLimit]
	}
	return schedules, nil
}

func (s *Storage) SoftDelete(_ context.Context, scheduleID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sched, ok := s.data[scheduleID]
	if !ok || sched.IsDeleted || sched.UserID != userID {
		return storage.ErrScheduleNotFound
	}
	sched.IsDeleted = true
	s.data[scheduleID] = sched
	return nil
}

func (s *Storage) CandidatesForReminder(_ context.Context, now time.Time) ([]*models.Schedule, error) {
	horizon := now.Add(storage.ReminderHorizon)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var schedules []*models.Schedule
	for _, sched := range s.data {
		if sched.IsDeleted || !sched.EventTime.After(now) || sched.EventTime.After(horizon) {
			continue
		}
		out := sched
		schedules = append(schedules, &out)
	}

	sortByEventTime(schedules)
	return schedules, nil
}

func (s *Storage) MarkNotified(_ context.Context, scheduleID int64, threshold models.Threshold) error {
	switch threshold {
	case models.ThresholdOneDay, models.ThresholdOneHour, models.ThresholdFifteenMin:
	default:
		return fmt.Errorf("unknown threshold %q", threshold)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sched, ok := s.data[scheduleID]
	if !ok {
		return nil
	}
	sched.SetNotified(threshold)
	s.data[scheduleID] = sched
	return nil
}

func sortByEventTime(schedules []*models.Schedule) {
	sort.Slice(schedules, func(i, j int) bool {
		return schedules[i].EventTime.Before(schedules[j].EventTime)
	})
}

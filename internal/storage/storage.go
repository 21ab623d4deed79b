package storage

import (
	"context"
	"errors"
	"time"

	"github.com/schedbot/schedbot/internal/models"
)

var (
	ErrDuplicateSchedule = errors.New("schedule already exists")
	ErrScheduleNotFound  = errors.New("schedule not found")
)

// ListLimit caps the number of rows returned by ListByWindow.
const ListLimit = 50

// ReminderHorizon is the upper edge of the widest reminder window. Events
// further out than this cannot be due, so candidate queries stop there.
const ReminderHorizon = 1470 * time.Minute

// ScheduleStore is the persistence contract shared by the bot handlers and
// the reminder scheduler. Implementations must keep each mutation atomic with
// respect to concurrent callers.
type ScheduleStore interface {
	// Add inserts a schedule with an empty notified set. It returns
	// ErrDuplicateSchedule when a non-deleted schedule with the same owner,
	// event time and title already exists.
	Add(ctx context.Context, userID int64, title string, eventTime time.Time) (*models.Schedule, error)

	// ListByWindow returns the owner's non-deleted schedules with event time
	// inside [start, end], ascending. A nil bound is unbounded on that side.
	ListByWindow(ctx context.Context, userID int64, start, end *time.Time) ([]*models.Schedule, error)

	// SoftDelete marks the schedule deleted, keeping the record. It returns
	// ErrScheduleNotFound when no non-deleted schedule matches both id and
	// owner.
	SoftDelete(ctx context.Context, scheduleID, userID int64) error

	// CandidatesForReminder returns non-deleted schedules with event time
	// strictly after now, up to ReminderHorizon ahead, ascending.
	CandidatesForReminder(ctx context.Context, now time.Time) ([]*models.Schedule, error)

	// MarkNotified sets the notified flag for one threshold. Idempotent.
	MarkNotified(ctx context.Context, scheduleID int64, threshold models.Threshold) error
}

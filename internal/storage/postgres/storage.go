package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/schedbot/schedbot/internal/database"
	"github.com/schedbot/schedbot/internal/models"
	"github.com/schedbot/schedbot/internal/storage"
)

const scheduleColumns = `schedule_id, user_id, title, event_time, created_at,
	 notified_1day, notified_1hour, notified_15min, is_deleted`

// Storage is the PostgreSQL-backed schedule store.
type Storage struct {
	db *database.DB
}

func New(db *database.DB) *Storage {
	return &Storage{db: db}
}

func (s *Storage) Add(ctx context.Context, userID int64, title string, eventTime time.Time) (*models.Schedule, error) {
	sched := &models.Schedule{
		UserID:    userID,
		Title:     title,
		EventTime: eventTime,
	}
	err := s.db.Pool.QueryRow(ctx,
		`INSERT INTO schedules (user_id, title, event_time)
		 VALUES ($1, $2, $3)
		 RETURNING schedule_id, created_at`,
		userID, title, eventTime,
	).Scan(&sched.ScheduleID, &sched.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, storage.ErrDuplicateSchedule
		}
		return nil, fmt.Errorf("failed to insert schedule: %w", err)
	}
	return sched, nil
}

func (s *Storage) ListByWindow(ctx context.Context, userID int64, start, end *time.Time) ([]*models.Schedule, error) {
	query := `SELECT ` + scheduleColumns + `
		 FROM schedules WHERE user_id = $1 AND NOT is_deleted`
	args := []any{userID}

	if start != nil {
		args = append(args, *start)
		query += fmt.Sprintf(" AND event_time >= $%d", len(args))
	}
	if end != nil {
		args = append(args, *end)
		query += fmt.Sprintf(" AND event_time <= $%d", len(args))
	}
	args = append(args, storage.ListLimit)
	query += fmt.Sprintf(" ORDER BY event_time ASC LIMIT $%d", len(args))

	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSchedules(rows)
}

func (s *Storage) SoftDelete(ctx context.Context, scheduleID, userID int64) error {
	tag, err := s.db.Pool.Exec(ctx,
		`UPDATE schedules SET is_deleted = TRUE
		 WHERE schedule_id = $1 AND user_id = $2 AND NOT is_deleted`,
		scheduleID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrScheduleNotFound
	}
	return nil
}

func (s *Storage) CandidatesForReminder(ctx context.Context, now time.Time) ([]*models.Schedule, error) {
	rows, err := s.db.Pool.Query(ctx,
		`SELECT `+scheduleColumns+`
		 FROM schedules
		 WHERE NOT is_deleted AND event_time > $1 AND event_time <= $2
		 ORDER BY event_time ASC`,
		now, now.Add(storage.ReminderHorizon),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSchedules(rows)
}

func (s *Storage) MarkNotified(ctx context.Context, scheduleID int64, threshold models.Threshold) error {
	var column string
	switch threshold {
	case models.ThresholdOneDay:
		column = "notified_1day"
	case models.ThresholdOneHour:
		column = "notified_1hour"
	case models.ThresholdFifteenMin:
		column = "notified_15min"
	default:
		return fmt.Errorf("unknown threshold %q", threshold)
	}

	_, err := s.db.Pool.Exec(ctx,
		fmt.Sprintf(`UPDATE schedules SET %s = TRUE WHERE schedule_id = $1`, column),
		scheduleID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark schedule notified: %w", err)
	}
	return nil
}

func scanSchedules(rows pgx.Rows) ([]*models.Schedule, error) {
	var schedules []*models.Schedule
	for rows.Next() {
		sched := &models.Schedule{}
		if err := rows.Scan(&sched.ScheduleID, &sched.UserID, &sched.Title, &sched.EventTime,
			&sched.CreatedAt, &sched.Notified1Day, &sched.Notified1Hour, &sched.Notified15Min,
			&sched.IsDeleted); err != nil {
			return nil, err
		}
		schedules = append(schedules, sched)
	}
	return schedules, rows.Err()
}

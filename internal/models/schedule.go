package models

import "time"

// Threshold is a named lead time before an event at which a reminder fires.
type Threshold string

const (
	ThresholdOneDay     Threshold = "1day"
	ThresholdOneHour    Threshold = "1hour"
	ThresholdFifteenMin Threshold = "15min"
)

// Label returns the zh-TW display name used in confirmation messages.
func (t Threshold) Label() string {
	switch t {
	case ThresholdOneDay:
		return "前一天"
	case ThresholdOneHour:
		return "1小時前"
	case ThresholdFifteenMin:
		return "15分鐘前"
	}
	return string(t)
}

type Schedule struct {
	ScheduleID    int64     `json:"schedule_id"`
	UserID        int64     `json:"user_id"`
	Title         string    `json:"title"`
	EventTime     time.Time `json:"event_time"`
	CreatedAt     time.Time `json:"created_at"`
	Notified1Day  bool      `json:"notified_1day"`
	Notified1Hour bool      `json:"notified_1hour"`
	Notified15Min bool      `json:"notified_15min"`
	IsDeleted     bool      `json:"is_deleted"`
}

// IsNotified reports whether the reminder for the given threshold was already
// sent. Flags only ever go from false to true.
func (s *Schedule) IsNotified(t Threshold) bool {
	switch t {
	case ThresholdOneDay:
		return s.Notified1Day
	case ThresholdOneHour:
		return s.Notified1Hour
	case ThresholdFifteenMin:
		return s.Notified15Min
	}
	return false
}

func (s *Schedule) SetNotified(t Threshold) {
	switch t {
	case ThresholdOneDay:
		s.Notified1Day = true
	case ThresholdOneHour:
		s.Notified1Hour = true
	case ThresholdFifteenMin:
		s.Notified15Min = true
	}
}

package format_test

import (
	"testing"
	"time"

	"github.com/schedbot/schedbot/internal/format"
	"github.com/stretchr/testify/require"
)

func TestWeekday(t *testing.T) {
	// 2026-03-09 is a Monday.
	monday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	expected := []string{"週一", "週二", "週三", "週四", "週五", "週六", "週日"}
	for i, name := range expected {
		require.Equal(t, name, format.Weekday(monday.AddDate(0, 0, i)))
	}
}

func TestEventTime(t *testing.T) {
	require.Equal(t, "01月20日 19:00", format.EventTime(time.Date(2026, 1, 20, 19, 0, 0, 0, time.UTC)))
	require.Equal(t, "12月05日 07:05", format.EventTime(time.Date(2026, 12, 5, 7, 5, 0, 0, time.UTC)))
}

func TestFullTime(t *testing.T) {
	require.Equal(t, "2026/01/20 19:00", format.FullTime(time.Date(2026, 1, 20, 19, 0, 0, 0, time.UTC)))
}

package reminder

import (
	"testing"
	"time"

	"github.com/schedbot/schedbot/internal/models"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func scheduleIn(minutes int) *models.Schedule {
	return &models.Schedule{
		ScheduleID: 1,
		UserID:     42,
		Title:      "會議",
		EventTime:  base.Add(time.Duration(minutes) * time.Minute),
	}
}

func TestDueThreshold(t *testing.T) {
	tests := []struct {
		name      string
		minutes   int
		threshold models.Threshold
		due       bool
	}{
		{"one day lower edge", 1410, models.ThresholdOneDay, true},
		{"one day", 1440, models.ThresholdOneDay, true},
		{"one day upper edge", 1470, models.ThresholdOneDay, true},
		{"beyond one day window", 1471, "", false},
		{"between one day and one hour", 1409, "", false},
		{"one hour lower edge", 55, models.ThresholdOneHour, true},
		{"one hour", 60, models.ThresholdOneHour, true},
		{"one hour upper edge", 65, models.ThresholdOneHour, true},
		{"between one hour and fifteen min", 30, "", false},
		{"fifteen min lower edge", 13, models.ThresholdFifteenMin, true},
		{"fifteen min", 16, models.ThresholdFifteenMin, true},
		{"fifteen min upper edge", 17, models.ThresholdFifteenMin, true},
		{"too close to fire", 12, "", false},
		{"already started", 0, "", false},
		{"in the past", -30, "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			threshold, due := DueThreshold(base, scheduleIn(tc.minutes))
			require.Equal(t, tc.due, due)
			require.Equal(t, tc.threshold, threshold)
		})
	}
}

func TestDueThresholdSkipsNotified(t *testing.T) {
	sched := scheduleIn(1440)
	threshold, due := DueThreshold(base, sched)
	require.True(t, due)
	require.Equal(t, models.ThresholdOneDay, threshold)

	sched.SetNotified(models.ThresholdOneDay)
	_, due = DueThreshold(base, sched)
	require.False(t, due)

	// Other windows stay unaffected by the one-day flag.
	sched.EventTime = base.Add(60 * time.Minute)
	threshold, due = DueThreshold(base, sched)
	require.True(t, due)
	require.Equal(t, models.ThresholdOneHour, threshold)

	sched.SetNotified(models.ThresholdOneHour)
	_, due = DueThreshold(base, sched)
	require.False(t, due)
}

func TestUpcomingThresholds(t *testing.T) {
	tests := []struct {
		name     string
		minutes  int
		expected []models.Threshold
	}{
		{"far future keeps all", 2000, []models.Threshold{
			models.ThresholdOneDay, models.ThresholdOneHour, models.ThresholdFifteenMin,
		}},
		{"inside one day window keeps all", 1440, []models.Threshold{
			models.ThresholdOneDay, models.ThresholdOneHour, models.ThresholdFifteenMin,
		}},
		{"one day window passed", 1000, []models.Threshold{
			models.ThresholdOneHour, models.ThresholdFifteenMin,
		}},
		{"only fifteen min left", 30, []models.Threshold{models.ThresholdFifteenMin}},
		{"too close for any reminder", 10, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			eventTime := base.Add(time.Duration(tc.minutes) * time.Minute)
			require.Equal(t, tc.expected, UpcomingThresholds(base, eventTime))
		})
	}
}

package reminder

import (
	"time"

	"github.com/schedbot/schedbot/internal/models"
)

// Reminder windows in minutes until the event, inclusive on both edges. The
// widths tolerate a check interval shorter than any window; an interval wider
// than a window can skip that threshold entirely, which is a known limitation
// of the design rather than something the evaluator compensates for.
type window struct {
	threshold models.Threshold
	min, max  float64
}

var windows = []window{
	{models.ThresholdOneDay, 1410, 1470},
	{models.ThresholdOneHour, 55, 65},
	{models.ThresholdFifteenMin, 13, 17},
}

// DueThreshold returns the single threshold due for the schedule at now, if
// any. Windows are checked 1day → 1hour → 15min and the first unsent match
// wins, so two thresholds due in the same pass collapse into one message.
func DueThreshold(now time.Time, sched *models.Schedule) (models.Threshold, bool) {
	minutes := sched.EventTime.Sub(now).Minutes()
	for _, w := range windows {
		if sched.IsNotified(w.threshold) {
			continue
		}
		if minutes >= w.min && minutes <= w.max {
			return w.threshold, true
		}
	}
	return "", false
}

// UpcomingThresholds lists the thresholds whose window has not yet closed for
// an event at eventTime, in firing order. Used to tell the user which
// reminders to still expect after creating a schedule.
func UpcomingThresholds(now, eventTime time.Time) []models.Threshold {
	minutes := eventTime.Sub(now).Minutes()
	var thresholds []models.Threshold
	for _, w := range windows {
		if minutes >= w.min {
			thresholds = append(thresholds, w.threshold)
		}
	}
	return thresholds
}

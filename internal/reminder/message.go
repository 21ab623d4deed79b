package reminder

import (
	"fmt"
	"strconv"
	"time"

	"github.com/schedbot/schedbot/internal/format"
	"github.com/schedbot/schedbot/internal/models"
)

func reminderText(loc *time.Location, sched *models.Schedule, threshold models.Threshold) string {
	var emoji, lead string
	switch threshold {
	case models.ThresholdOneDay:
		emoji, lead = "📅", "明天同時間"
	case models.ThresholdOneHour:
		emoji, lead = "⏰", "1小時後"
	case models.ThresholdFifteenMin:
		emoji, lead = "🔔", "15分鐘後"
	default:
		emoji, lead = "⏰", "即將開始"
	}

	eventTime := sched.EventTime.In(loc)
	return fmt.Sprintf(`%s 行程提醒

%s

📝 %s
🕐 %s (%s)
🔖 行程編號：%d

請準時參加！`,
		emoji, lead, sched.Title,
		format.EventTime(eventTime), format.Weekday(eventTime),
		sched.ScheduleID)
}

// ownerTag truncates an owner identifier for logs.
func ownerTag(userID int64) string {
	s := strconv.FormatInt(userID, 10)
	if len(s) > 4 {
		return s[:4] + "…"
	}
	return s
}

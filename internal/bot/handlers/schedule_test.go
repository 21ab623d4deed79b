package handlers

import (
	"testing"
	"time"

	"github.com/schedbot/schedbot/internal/models"
	"github.com/stretchr/testify/require"
)

var taipei = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Taipei")
	if err != nil {
		panic(err)
	}
	return loc
}()

func TestTodayWindow(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 30, 0, 0, taipei)
	start, end := todayWindow(now)
	require.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, taipei), start)
	require.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, taipei), end)
}

func TestTomorrowWindow(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 30, 0, 0, taipei)
	start, end := tomorrowWindow(now)
	require.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, taipei), start)
	require.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, taipei), end)
}

func TestWeekWindow(t *testing.T) {
	// 2026-03-09 is the Monday of that week.
	weekStart := time.Date(2026, 3, 9, 0, 0, 0, 0, taipei)
	weekEnd := time.Date(2026, 3, 16, 0, 0, 0, 0, taipei)

	tests := []struct {
		name string
		now  time.Time
	}{
		{"monday", time.Date(2026, 3, 9, 8, 0, 0, 0, taipei)},
		{"midweek", time.Date(2026, 3, 11, 23, 59, 0, 0, taipei)},
		{"sunday", time.Date(2026, 3, 15, 10, 0, 0, 0, taipei)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			start, end := weekWindow(tc.now)
			require.Equal(t, weekStart, start)
			require.Equal(t, weekEnd, end)
		})
	}
}

func TestBuildConfirmation(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, taipei)
	sched := &models.Schedule{
		ScheduleID: 12,
		UserID:     42,
		Title:      "團隊會議",
		EventTime:  time.Date(2026, 3, 16, 9, 0, 0, 0, taipei),
	}

	text := buildConfirmation(sched, now, taipei)
	require.Contains(t, text, "團隊會議")
	require.Contains(t, text, "2026/03/16 09:00")
	require.Contains(t, text, "週一")
	require.Contains(t, text, "行程編號：12")
	require.Contains(t, text, "前一天、1小時前、15分鐘前")
}

func TestBuildConfirmationOmitsPassedWindows(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, taipei)

	// Two hours ahead: the one-day window is already gone.
	sched := &models.Schedule{
		ScheduleID: 3,
		Title:      "聚餐",
		EventTime:  now.Add(2 * time.Hour),
	}
	text := buildConfirmation(sched, now, taipei)
	require.NotContains(t, text, "前一天")
	require.Contains(t, text, "1小時前、15分鐘前")

	// Five minutes ahead: no reminder can fire at all.
	sched = &models.Schedule{
		ScheduleID: 4,
		Title:      "馬上",
		EventTime:  now.Add(5 * time.Minute),
	}
	text = buildConfirmation(sched, now, taipei)
	require.Contains(t, text, "將不會發送提醒")
}

func TestBuildScheduleList(t *testing.T) {
	schedules := []*models.Schedule{
		{ScheduleID: 1, Title: "開會", EventTime: time.Date(2026, 3, 16, 9, 0, 0, 0, taipei)},
		{ScheduleID: 2, Title: "聚餐", EventTime: time.Date(2026, 3, 17, 19, 0, 0, 0, taipei)},
	}

	text := buildScheduleList("本週的行程", schedules, taipei)
	require.Contains(t, text, "本週的行程 (2 筆)")
	require.Contains(t, text, "🔖 1｜2026/03/16 09:00 (週一)")
	require.Contains(t, text, "📝 開會")
	require.Contains(t, text, "🔖 2｜2026/03/17 19:00 (週二)")
	require.Contains(t, text, "📝 聚餐")
}

func TestBuildScheduleListEmpty(t *testing.T) {
	text := buildScheduleList("今天的行程", nil, taipei)
	require.Contains(t, text, "今天的行程")
	require.Contains(t, text, "沒有安排任何行程")
}

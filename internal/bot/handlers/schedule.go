package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/schedbot/schedbot/internal/format"
	"github.com/schedbot/schedbot/internal/models"
	"github.com/schedbot/schedbot/internal/parser"
	"github.com/schedbot/schedbot/internal/reminder"
	"github.com/schedbot/schedbot/internal/storage"
	"github.com/sirupsen/logrus"
)

func (h *Handlers) handleAddSchedule(ctx context.Context, msg *tgbotapi.Message) {
	now := time.Now().In(h.loc)

	result, err := h.parser.Parse(ctx, msg.Text, now)
	if err != nil {
		var perr *parser.ParseError
		if errors.As(err, &perr) {
			h.sendMessage(msg.Chat.ID, perr.Message)
			return
		}
		logrus.WithError(err).Error("Failed to parse schedule text")
		h.sendMessage(msg.Chat.ID, msgStoreFailure)
		return
	}

	sched, err := h.store.Add(ctx, msg.From.ID, result.Title, result.EventTime)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateSchedule) {
			h.sendMessage(msg.Chat.ID, "這個行程已經存在了")
			return
		}
		logrus.WithError(err).Error("Failed to add schedule")
		h.sendMessage(msg.Chat.ID, msgStoreFailure)
		return
	}

	h.sendMessage(msg.Chat.ID, buildConfirmation(sched, now, h.loc))
}

func buildConfirmation(sched *models.Schedule, now time.Time, loc *time.Location) string {
	eventTime := sched.EventTime.In(loc)
	text := fmt.Sprintf(`✅ 已新增行程

📝 %s
🕐 %s (%s)
🔖 行程編號：%d`,
		sched.Title, format.FullTime(eventTime), format.Weekday(eventTime), sched.ScheduleID)

	thresholds := reminder.UpcomingThresholds(now, sched.EventTime)
	if len(thresholds) == 0 {
		return text + "\n\n⚠️ 距離行程時間太近，將不會發送提醒"
	}

	labels := make([]string, len(thresholds))
	for i, t := range thresholds {
		labels[i] = t.Label()
	}
	return text + "\n\n🔔 將在以下時間提醒你：" + strings.Join(labels, "、")
}

func (h *Handlers) handleListToday(ctx context.Context, msg *tgbotapi.Message) {
	start, end := todayWindow(time.Now().In(h.loc))
	h.replyList(ctx, msg, "今天的行程", &start, &end)
}

func (h *Handlers) handleListTomorrow(ctx context.Context, msg *tgbotapi.Message) {
	start, end := tomorrowWindow(time.Now().In(h.loc))
	h.replyList(ctx, msg, "明天的行程", &start, &end)
}

func (h *Handlers) handleListWeek(ctx context.Context, msg *tgbotapi.Message) {
	start, end := weekWindow(time.Now().In(h.loc))
	h.replyList(ctx, msg, "本週的行程", &start, &end)
}

func (h *Handlers) handleListAll(ctx context.Context, msg *tgbotapi.Message) {
	now := time.Now().In(h.loc)
	h.replyList(ctx, msg, "所有未來的行程", &now, nil)
}

func (h *Handlers) replyList(ctx context.Context, msg *tgbotapi.Message, header string, start, end *time.Time) {
	schedules, err := h.store.ListByWindow(ctx, msg.From.ID, start, end)
	if err != nil {
		logrus.WithError(err).Error("Failed to list schedules")
		h.sendMessage(msg.Chat.ID, msgStoreFailure)
		return
	}
	h.sendMessage(msg.Chat.ID, buildScheduleList(header, schedules, h.loc))
}

func buildScheduleList(header string, schedules []*models.Schedule, loc *time.Location) string {
	if len(schedules) == 0 {
		return "📅 " + header + "\n\n沒有安排任何行程"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📅 %s (%d 筆)\n", header, len(schedules))
	for _, sched := range schedules {
		eventTime := sched.EventTime.In(loc)
		fmt.Fprintf(&b, "\n🔖 %d｜%s (%s)\n📝 %s\n",
			sched.ScheduleID, format.FullTime(eventTime), format.Weekday(eventTime), sched.Title)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (h *Handlers) handleDelete(ctx context.Context, msg *tgbotapi.Message) {
	args := strings.TrimSpace(msg.CommandArguments())
	scheduleID, err := strconv.ParseInt(args, 10, 64)
	if err != nil {
		h.sendMessage(msg.Chat.ID, "請輸入行程編號，例如：/delete 12")
		return
	}

	if err := h.store.SoftDelete(ctx, scheduleID, msg.From.ID); err != nil {
		if errors.Is(err, storage.ErrScheduleNotFound) {
			h.sendMessage(msg.Chat.ID, "找不到這個行程")
			return
		}
		logrus.WithError(err).Error("Failed to delete schedule")
		h.sendMessage(msg.Chat.ID, msgStoreFailure)
		return
	}

	h.sendMessage(msg.Chat.ID, fmt.Sprintf("🗑 已刪除行程 %d", scheduleID))
}

// List windows use the bot's local day boundaries; bounds are inclusive on
// both sides, matching the store contract.

func todayWindow(now time.Time) (time.Time, time.Time) {
	start := midnight(now)
	return start, start.AddDate(0, 0, 1)
}

func tomorrowWindow(now time.Time) (time.Time, time.Time) {
	start := midnight(now).AddDate(0, 0, 1)
	return start, start.AddDate(0, 0, 1)
}

// weekWindow spans the current Monday-started week.
func weekWindow(now time.Time) (time.Time, time.Time) {
	daysSinceMonday := (int(now.Weekday()) + 6) % 7
	start := midnight(now).AddDate(0, 0, -daysSinceMonday)
	return start, start.AddDate(0, 0, 7)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

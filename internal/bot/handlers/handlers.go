package handlers

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/schedbot/schedbot/internal/parser"
	"github.com/schedbot/schedbot/internal/storage"
	"github.com/sirupsen/logrus"
)

const msgStoreFailure = "系統忙碌中，請稍後再試"

type Handlers struct {
	api    *tgbotapi.BotAPI
	store  storage.ScheduleStore
	parser *parser.Client
	loc    *time.Location
}

func New(api *tgbotapi.BotAPI, store storage.ScheduleStore, parserClient *parser.Client, loc *time.Location) *Handlers {
	return &Handlers{
		api:    api,
		store:  store,
		parser: parserClient,
		loc:    loc,
	}
}

func (h *Handlers) HandleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		h.sendMessage(msg.Chat.ID, helpText)
	case "help":
		h.sendMessage(msg.Chat.ID, helpText)
	case "today":
		h.handleListToday(ctx, msg)
	case "tomorrow":
		h.handleListTomorrow(ctx, msg)
	case "week":
		h.handleListWeek(ctx, msg)
	case "all":
		h.handleListAll(ctx, msg)
	case "delete":
		h.handleDelete(ctx, msg)
	default:
		h.sendMessage(msg.Chat.ID, "未知指令，請使用 /help 查看可用指令")
	}
}

// HandleMessage treats any non-command text as a schedule to create.
func (h *Handlers) HandleMessage(ctx context.Context, msg *tgbotapi.Message) {
	h.handleAddSchedule(ctx, msg)
}

func (h *Handlers) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.api.Send(msg); err != nil {
		logrus.WithError(err).Error("Failed to send reply")
	}
}

const helpText = `📅 行程助手使用說明

直接輸入行程就可以新增，例如：
• 明天早上9點開會
• 後天下午2點聚餐
• 1月20日晚上7點運動

指令：
/today - 今天的行程
/tomorrow - 明天的行程
/week - 本週的行程
/all - 所有未來的行程
/delete 編號 - 刪除行程
/help - 顯示說明

行程會在前一天、1小時前、15分鐘前提醒你。`

package bot

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/schedbot/schedbot/internal/bot/handlers"
	"github.com/schedbot/schedbot/internal/parser"
	"github.com/schedbot/schedbot/internal/storage"
	"github.com/sirupsen/logrus"
)

type Bot struct {
	api      *tgbotapi.BotAPI
	handlers *handlers.Handlers
}

func New(api *tgbotapi.BotAPI, store storage.ScheduleStore, parserClient *parser.Client, loc *time.Location) *Bot {
	return &Bot{
		api:      api,
		handlers: handlers.New(api, store, parserClient, loc),
	}
}

func (b *Bot) Start(ctx context.Context) error {
	logrus.Infof("Authorized on account %s", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			go b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	if update.Message.IsCommand() {
		b.handlers.HandleCommand(ctx, update.Message)
		return
	}

	b.handlers.HandleMessage(ctx, update.Message)
}

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/schedbot/schedbot/internal/bot"
	"github.com/schedbot/schedbot/internal/config"
	"github.com/schedbot/schedbot/internal/database"
	"github.com/schedbot/schedbot/internal/notify"
	"github.com/schedbot/schedbot/internal/parser"
	"github.com/schedbot/schedbot/internal/reminder"
	"github.com/schedbot/schedbot/internal/storage"
	"github.com/schedbot/schedbot/internal/storage/memory"
	"github.com/schedbot/schedbot/internal/storage/postgres"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	if cfg.TelegramToken == "" {
		logrus.Fatal("TELEGRAM_TOKEN is required")
	}
	if cfg.GroqAPIKey == "" {
		logrus.Fatal("GROQ_API_KEY is required")
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logrus.Fatalf("Failed to load timezone %q: %v", cfg.Timezone, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var store storage.ScheduleStore
	if cfg.DatabaseURI != "" {
		db, err := database.New(ctx, cfg.DatabaseURI)
		if err != nil {
			logrus.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		logrus.Info("Connected to database")

		if err := db.Migrate(ctx); err != nil {
			logrus.Fatalf("Failed to run migrations: %v", err)
		}
		store = postgres.New(db)
	} else {
		logrus.Warn("DATABASE_URI not set, schedules are kept in memory only")
		store = memory.New()
	}

	parserClient := parser.New(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqModel, loc)
	logrus.Infof("Parser initialized (model: %s)", cfg.GroqModel)

	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		logrus.Fatalf("Failed to create Telegram API: %v", err)
	}

	sched := reminder.New(store, notify.New(api), loc, cfg.CheckInterval, cfg.StartupDelay)
	sched.Start()

	b := bot.New(api, store, parserClient, loc)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logrus.Info("Shutting down...")
		cancel()
	}()

	logrus.Info("Starting bot...")
	err = b.Start(ctx)
	sched.Stop()
	if err != nil && !errors.Is(err, context.Canceled) {
		logrus.Fatalf("Bot error: %v", err)
	}
}

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string
	DatabaseURI   string
	GroqAPIKey    string
	GroqBaseURL   string
	GroqModel     string
	Timezone      string
	CheckInterval time.Duration
	StartupDelay  time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env file is optional in production
	}

	return &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		DatabaseURI:   os.Getenv("DATABASE_URI"),
		GroqAPIKey:    os.Getenv("GROQ_API_KEY"),
		GroqBaseURL:   getEnvOrDefault("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GroqModel:     getEnvOrDefault("GROQ_MODEL", "llama-3.3-70b-versatile"),
		Timezone:      getEnvOrDefault("TIMEZONE", "Asia/Taipei"),
		CheckInterval: secondsFromEnv("CHECK_INTERVAL_SECONDS", 60),
		StartupDelay:  secondsFromEnv("STARTUP_DELAY_SECONDS", 90),
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func secondsFromEnv(key string, defaultSeconds int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return time.Duration(defaultSeconds) * time.Second
}

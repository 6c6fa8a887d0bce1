package config

import (
	"fmt"
	"os"
	"strconv"
	"strings" // For LogLevel normalization

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	DatasetPath     string `validate:"required"`
	ChartOutputPath string `validate:"required"`
	ChartWidth      int    `validate:"gte=200,lte=4000"`
	ChartHeight     int    `validate:"gte=200,lte=4000"`
	ChartAxisMin    string `validate:"omitempty,datetime=2006-01-02"`
	ChartAxisMax    string `validate:"omitempty,datetime=2006-01-02"`
	ChartMarkerDate string `validate:"omitempty,datetime=2006-01-02"` // Empty disables the marker line
	TelegramToken   string // Empty runs a single render and exits
	TelegramChatID  int64  `validate:"required_with=TelegramToken"`
	LogLevel        string `validate:"oneof=trace debug info warn warning error fatal panic"`
	Environment     string `validate:"required"`
	CronSpecPublish string `validate:"required"`
}

// BotEnabled reports whether the Telegram bot and publishing scheduler should run.
func (c *AppConfig) BotEnabled() bool {
	return c.TelegramToken != ""
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.DatasetPath = getEnv("DATASET_PATH", "data.js")
	cfg.ChartOutputPath = getEnv("CHART_OUTPUT_PATH", "visa_bulletin_chart.png")

	cfg.ChartWidth, err = strconv.Atoi(getEnv("CHART_WIDTH", "900"))
	if err != nil {
		return nil, fmt.Errorf("invalid CHART_WIDTH: %w", err)
	}
	cfg.ChartHeight, err = strconv.Atoi(getEnv("CHART_HEIGHT", "900"))
	if err != nil {
		return nil, fmt.Errorf("invalid CHART_HEIGHT: %w", err)
	}

	cfg.ChartAxisMin = getEnv("CHART_AXIS_MIN", "2021-10-01")
	cfg.ChartAxisMax = getEnv("CHART_AXIS_MAX", "2025-12-31")
	// LookupEnv so an explicitly empty value can switch the marker off
	if v, ok := os.LookupEnv("CHART_MARKER_DATE"); ok {
		cfg.ChartMarkerDate = v
	} else {
		cfg.ChartMarkerDate = "2025-01-13"
	}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if chatIDStr := os.Getenv("TELEGRAM_CHAT_ID"); chatIDStr != "" {
		cfg.TelegramChatID, err = strconv.ParseInt(chatIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
	}

	cfg.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", "info"))
	cfg.Environment = strings.ToLower(getEnv("ENVIRONMENT", "development"))

	cfg.CronSpecPublish = getEnv("CRON_SPEC_PUBLISH", "0 10 * * *") // Default: 10:00 AM daily

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

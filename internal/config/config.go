package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ReportInitialURL string
	ReportByDateURL  string
	AnalysisURL      string
	Port             string
	HTTPTimeout      time.Duration
	HTTPRetries      int
	LogLevel         slog.Level
}

func FromEnv() Config {
	_ = godotenv.Load()

	to := 30 * time.Second
	if v := os.Getenv("HTTP_TIMEOUT_SECONDS"); v != "" {
		if d, err := time.ParseDuration(v + "s"); err == nil {
			to = d
		}
	}
	retries := 3
	if v := os.Getenv("HTTP_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			retries = n
		}
	}
	lvl := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		lvl = slog.LevelDebug
	}
	return Config{
		ReportInitialURL: os.Getenv("REPORT_WEBHOOK_URL"),
		ReportByDateURL:  os.Getenv("REPORT_BY_DATE_WEBHOOK_URL"),
		AnalysisURL:      os.Getenv("ANALYSIS_WEBHOOK_URL"),
		Port:             envOr("PORT", "8080"),
		HTTPTimeout:      to,
		HTTPRetries:      retries,
		LogLevel:         lvl,
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

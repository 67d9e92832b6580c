package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// SourceBaseURL is the root of the remote UV backend.
	SourceBaseURL string

	// LatestInterval controls how often the most recent reading is polled.
	LatestInterval time.Duration
	// HistoryInterval controls how often the full history snapshot is polled.
	HistoryInterval time.Duration

	// HTTPTimeout bounds each outbound backend call.
	HTTPTimeout time.Duration

	// HistoryPageSize is the page size for paginated history views.
	HistoryPageSize int

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.SourceBaseURL = getenvDefault("SOURCE_BASE_URL", "https://uvify-backend.onrender.com")

	latest, err := parseDurationEnv("LATEST_FETCH_INTERVAL", "5s")
	if err != nil {
		return nil, err
	}
	cfg.LatestInterval = latest

	history, err := parseDurationEnv("HISTORY_FETCH_INTERVAL", "30s")
	if err != nil {
		return nil, err
	}
	cfg.HistoryInterval = history

	timeout, err := parseDurationEnv("HTTP_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	cfg.HistoryPageSize = getenvInt("HISTORY_PAGE_SIZE", 20)
	if cfg.HistoryPageSize <= 0 {
		return nil, fmt.Errorf("HISTORY_PAGE_SIZE must be positive")
	}

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func parseDurationEnv(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

type Config struct {
	// Database
	DBPath string

	// Logging. The TUI owns the terminal, so logs go to a file; an empty
	// LogFile discards them.
	LogFile  string
	LogLevel slog.Level
}

func Load() *Config {
	return &Config{
		DBPath:   getEnv("TUI_MONEY_DB_PATH", "./data/tui-money.db"),
		LogFile:  getEnv("TUI_MONEY_LOG_FILE", ""),
		LogLevel: parseLevel(getEnv("TUI_MONEY_LOG_LEVEL", "info")),
	}
}

// Validate checks the configuration and prepares the database directory.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("database path cannot be empty")
	}
	if dir := filepath.Dir(c.DBPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create database directory %q: %w", dir, err)
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseLevel(value string) slog.Level {
	switch strings.ToLower(value) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

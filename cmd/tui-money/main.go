package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/alekseinovikov/tui-money/internal/config"
	applog "github.com/alekseinovikov/tui-money/internal/log"
	"github.com/alekseinovikov/tui-money/internal/storage"
	"github.com/alekseinovikov/tui-money/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "tui-money:", err)
		os.Exit(1)
	}
}

func run() error {
	// Missing .env is fine; the environment itself may carry the config.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	closer, err := applog.Setup(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	if closer != nil {
		defer closer.Close()
	}
	logger := applog.WithComponent("main")

	// Opening the repository runs all pending migrations; a failure here
	// is fatal to startup.
	repo, err := storage.NewSQLiteRepository(cfg.DBPath)
	if err != nil {
		logger.Error("open repository", "error", err, "db_path", cfg.DBPath)
		return err
	}
	defer repo.Close()
	logger.Info("repository ready", "db_path", cfg.DBPath)

	program := tea.NewProgram(tui.New(repo, applog.WithComponent("tui")), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		logger.Error("tui terminated", "error", err)
		return err
	}

	slog.Info("shutting down")
	return nil
}

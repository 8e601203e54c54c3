// Package logging sets up the application's structured logger.
package logging

import (
	"io"
	"log/slog"

	"github.com/shelfledger/librarian-go/internal/config"
)

// Setup creates a JSON slog.Logger at the configured level, writing to the
// given sink, and installs it as the process default. The console keeps
// stdout for the menu, so the caller normally passes stderr.
func Setup(cfg config.LoggingConfig, sink io.Writer) *slog.Logger {
	var level slog.Level

	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(sink, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

package logger

import (
	"log/slog"
	"os"
)

// NewTestLogger creates a logger for tests.
// WARN level by default to keep test output quiet; set TEST_DEBUG to
// enable debug logging.
func NewTestLogger() *slog.Logger {
	level := slog.LevelWarn
	if os.Getenv("TEST_DEBUG") != "" {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

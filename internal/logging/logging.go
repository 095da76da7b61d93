// Package logging writes structured logs to a rotating file. Nothing here
// ever writes to the terminal: the interactive display owns the screen.
package logging

import (
	"io"
	"log/slog"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu      sync.Mutex
	logger  *slog.Logger
	rotator *lumberjack.Logger
)

// Init routes the global logger to <dir>/claude-sessions.log with rotation.
// An empty dir discards all output.
func Init(dir, level string) {
	mu.Lock()
	defer mu.Unlock()

	var w io.Writer = io.Discard
	if dir != "" {
		rotator = &lumberjack.Logger{
			Filename:   filepath.Join(dir, "claude-sessions.log"),
			MaxSize:    10, // MB
			MaxBackups: 5,
			MaxAge:     10, // days
			Compress:   true,
		}
		w = rotator
	}

	logger = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(level),
	}))
}

// L returns the process logger; safe before Init (discards).
func L() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return logger
}

// Close flushes and closes the rotating file, best effort.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if rotator != nil {
		_ = rotator.Close()
		rotator = nil
	}
}

func parseLevel(level string) slog.Level {
	switch level {
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

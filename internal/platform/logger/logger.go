package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/crablang/internal/config"
)

// ParseLevel maps a configured level name to a slog level, case-insensitively.
// The second result is false when the name is not recognised.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// Setup initializes the application's logging system based on the provided
// configuration, writing to w, and sets the result as the slog default. A nil
// w means stderr, which keeps logs apart from session output on stdout.
func Setup(cfg config.LogConfig, w io.Writer) (*slog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	level, ok := ParseLevel(cfg.Level)
	if !ok {
		// Report the bad value with a temporary handler and carry on at info
		slog.New(slog.NewTextHandler(w, nil)).Warn("invalid log level configured, using default level",
			"configured_level", cfg.Level,
			"default_level", "info")
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, nil
}

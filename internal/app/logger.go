package app

import (
	"io"
	"log/slog"
)

// newLogger builds the app's isolated slog.Logger; the process-global
// logger is left untouched so concurrent harness instances in tests keep
// separate streams. Patch advice and per-step tracing log at debug — the
// default "info" keeps a run's output to lifecycle lines only.
func newLogger(level, format string, outW io.Writer) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}

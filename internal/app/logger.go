package app

import (
	"log/slog"
	"os"
)

// NewLogger returns the process logger. Development runs log at debug so
// request traces are visible; production runs log at info. LOG_FORMAT=json
// selects the JSON handler, anything else the text handler.
func NewLogger(cfg *Config) *slog.Logger {
	level := slog.LevelDebug
	if cfg.IsProduction() {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{AddSource: true, Level: level}

	if cfg != nil && cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

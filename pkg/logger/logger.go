// Package logger builds the application slog.Logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	slogsentry "github.com/samber/slog-sentry/v2"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Yusufakmalov/MY-MEAT/pkg/config"
)

// New creates a logger configured from cfg with a fixed level.
func New(cfg config.Config) *slog.Logger {
	level := new(slog.LevelVar)
	level.Set(ParseLevel(cfg.Logger.Level))
	return NewWithLevel(cfg, level)
}

// NewWithLevel creates a logger whose level can be changed at runtime through level.
func NewWithLevel(cfg config.Config, level *slog.LevelVar) *slog.Logger {
	var out io.Writer = os.Stdout
	if cfg.Logger.File != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.Logger.File,
			MaxSize:    cfg.Logger.MaxSizeMB,
			MaxBackups: cfg.Logger.MaxBackups,
			MaxAge:     cfg.Logger.MaxAgeDays,
			Compress:   true,
		})
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(cfg.Logger.Format, "text") {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}

	if cfg.Sentry.Enabled {
		handler = newTeeHandler(handler, slogsentry.Option{Level: slog.LevelError}.NewSentryHandler())
	}

	base := slog.New(NewMaskingHandler(handler))
	if cfg.AppEnv != "" {
		base = base.With(slog.String("env", cfg.AppEnv))
	}

	return base
}

// ParseLevel maps a config level name onto slog.Level, defaulting to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

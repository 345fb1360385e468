package logger

import (
	"log/slog"
	"os"
	"strings"
)

var defaultLogger *slog.Logger

// Init installs the process logger. JSON output is used in production or
// when format is "json"; level falls back to debug outside production.
func Init(env string, opts ...Option) {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	level := slog.LevelDebug
	if env == "production" {
		level = slog.LevelInfo
	}
	if cfg.level != "" {
		level = parseLevel(cfg.level, level)
	}

	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if env == "production" || cfg.format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, handlerOpts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, handlerOpts)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

type options struct {
	level  string
	format string
}

type Option func(*options)

func WithLevel(level string) Option {
	return func(o *options) { o.level = level }
}

func WithFormat(format string) Option {
	return func(o *options) { o.format = format }
}

func parseLevel(level string, fallback slog.Level) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return fallback
}

func LoggerWrapper() *slog.Logger {
	if defaultLogger == nil {
		// lazy initialize a development logger to avoid nil pointer panics
		Init("development")
	}
	return defaultLogger
}

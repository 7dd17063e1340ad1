package logger

import (
	"context"
	"log/slog"
	"os"
)

var globalLogger *slog.Logger

// Config holds logger configuration
type Config struct {
	Level  slog.Level
	Format string // "json" or "text"
}

// Init initializes the global structured logger with defaults.
func Init() {
	InitWithConfig(Config{Level: slog.LevelInfo, Format: "json"})
}

// InitWithConfig initializes the global logger with custom config
func InitWithConfig(cfg Config) {
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}

// L returns the global logger, initializing it on first use.
func L() *slog.Logger {
	if globalLogger == nil {
		Init()
	}
	return globalLogger
}

// Info logs an info message with optional attributes
func Info(msg string, args ...any) {
	L().Info(msg, args...)
}

// Warn logs a warning message with optional attributes
func Warn(msg string, args ...any) {
	L().Warn(msg, args...)
}

// Error logs an error message with optional attributes
func Error(msg string, args ...any) {
	L().Error(msg, args...)
}

// Debug logs a debug message with optional attributes
func Debug(msg string, args ...any) {
	L().Debug(msg, args...)
}

// InfoCtx logs an info message carrying the request context
func InfoCtx(ctx context.Context, msg string, args ...any) {
	L().InfoContext(ctx, msg, args...)
}

// ErrorCtx logs an error message carrying the request context
func ErrorCtx(ctx context.Context, msg string, args ...any) {
	L().ErrorContext(ctx, msg, args...)
}

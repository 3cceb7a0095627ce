package core

import (
	"context"
	"log/slog"
)

type OptionKey string

const (
	LoggerOptionKey OptionKey = "logger_options"
)

type LoggerOptions struct {
	Logger *slog.Logger
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, LoggerOptionKey, LoggerOptions{Logger: logger})
}

// Logger returns the logger stored in ctx, or defaultLogger when there is none.
func Logger(ctx context.Context, defaultLogger *slog.Logger) *slog.Logger {
	if ctx != nil {
		options, ok := ctx.Value(LoggerOptionKey).(LoggerOptions)
		if ok && options.Logger != nil {
			return options.Logger
		}
	}
	if defaultLogger != nil {
		return defaultLogger
	}
	return slog.Default()
}

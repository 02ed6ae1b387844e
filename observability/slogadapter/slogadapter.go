// Package slogadapter implements observability.Logger on top of log/slog.
package slogadapter

import (
	"log/slog"

	"github.com/lexfrei/go-calllog/observability"
)

// Logger implements observability.Logger using Go's structured logger (slog).
type Logger struct {
	logger *slog.Logger
}

// New wraps logger. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Logger {
	if logger == nil {
		logger = slog.Default()
	}

	return &Logger{logger: logger}
}

func (l *Logger) Debug(msg string, fields ...observability.Field) {
	l.logger.Debug(msg, convertFields(fields)...)
}

func (l *Logger) Info(msg string, fields ...observability.Field) {
	l.logger.Info(msg, convertFields(fields)...)
}

func (l *Logger) Warn(msg string, fields ...observability.Field) {
	l.logger.Warn(msg, convertFields(fields)...)
}

func (l *Logger) Error(msg string, fields ...observability.Field) {
	l.logger.Error(msg, convertFields(fields)...)
}

//nolint:ireturn // Method must return interface to satisfy Logger interface
func (l *Logger) With(fields ...observability.Field) observability.Logger {
	return &Logger{
		logger: l.logger.With(convertFields(fields)...),
	}
}

// Level converts an observability level to the closest slog level.
// LevelCritical has no slog counterpart and is placed above slog.LevelError.
func Level(level observability.Level) slog.Level {
	switch level {
	case observability.LevelDebug:
		return slog.LevelDebug
	case observability.LevelInfo:
		return slog.LevelInfo
	case observability.LevelWarning:
		return slog.LevelWarn
	case observability.LevelError:
		return slog.LevelError
	default:
		return slog.LevelError + 4
	}
}

func convertFields(fields []observability.Field) []any {
	args := make([]any, 0, len(fields)*2)
	for _, f := range fields {
		args = append(args, f.Key, f.Value)
	}

	return args
}

// Package zapadapter implements observability.Logger on top of go.uber.org/zap.
package zapadapter

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lexfrei/go-calllog/observability"
)

// Logger implements observability.Logger using a zap.Logger.
type Logger struct {
	logger *zap.Logger
}

// New wraps logger. A nil logger discards everything.
func New(logger *zap.Logger) *Logger {
	if logger == nil {
		logger = zap.NewNop()
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
	return &Logger{logger: l.logger.With(convertFields(fields)...)}
}

// Level converts an observability level to the matching zap level.
// LevelCritical maps to DPanic, the most severe level that does not exit.
func Level(level observability.Level) zapcore.Level {
	switch level {
	case observability.LevelDebug:
		return zapcore.DebugLevel
	case observability.LevelInfo:
		return zapcore.InfoLevel
	case observability.LevelWarning:
		return zapcore.WarnLevel
	case observability.LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.DPanicLevel
	}
}

func convertFields(fields []observability.Field) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		out = append(out, zap.Any(f.Key, f.Value))
	}

	return out
}

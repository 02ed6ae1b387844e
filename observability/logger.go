package observability

// Field represents a structured logging field (key-value pair).
type Field struct {
	Key   string
	Value any
}

// Logger is the sink decorated functions report to.
// Implementations can use any logging library (slog, zap, logrus, etc.).
type Logger interface {
	// Debug logs a debug-level message with optional structured fields.
	Debug(msg string, fields ...Field)

	// Info logs an info-level message with optional structured fields.
	Info(msg string, fields ...Field)

	// Warn logs a warning-level message with optional structured fields.
	Warn(msg string, fields ...Field)

	// Error logs an error-level message with optional structured fields.
	Error(msg string, fields ...Field)

	// With returns a new logger with the given fields pre-populated.
	// Subsequent log calls on the returned logger will include these fields.
	With(fields ...Field) Logger
}

// SeverityKey is the field attached to messages logged at LevelCritical,
// since Logger has no dedicated critical method.
const SeverityKey = "severity"

// Log dispatches msg to the logger method matching level.
// LevelCritical is sent to Error with a severity field. Log reports false
// and logs nothing when level is not a valid Level.
func Log(logger Logger, level Level, msg string, fields ...Field) bool {
	switch level {
	case LevelDebug:
		logger.Debug(msg, fields...)
	case LevelInfo:
		logger.Info(msg, fields...)
	case LevelWarning:
		logger.Warn(msg, fields...)
	case LevelError:
		logger.Error(msg, fields...)
	case LevelCritical:
		logger.Error(msg, append(fields, Field{Key: SeverityKey, Value: LevelCritical.String()})...)
	default:
		return false
	}

	return true
}

// noopLogger is a no-operation logger that discards all log messages.
type noopLogger struct{}

// NoopLogger returns a logger that does nothing.
// This is the default logger used when none is provided.
//
//nolint:ireturn // Factory function must return interface for dependency injection pattern
func NoopLogger() Logger {
	return &noopLogger{}
}

func (l *noopLogger) Debug(string, ...Field) {}
func (l *noopLogger) Info(string, ...Field)  {}
func (l *noopLogger) Warn(string, ...Field)  {}
func (l *noopLogger) Error(string, ...Field) {}

//nolint:ireturn // Method must return interface to satisfy Logger interface
func (l *noopLogger) With(...Field) Logger { return l }

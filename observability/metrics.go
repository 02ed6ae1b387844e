package observability

import "time"

// MetricsRecorder is an interface for recording metrics about decorated calls.
// Implementations can use any metrics library (Prometheus, StatsD, etc.).
type MetricsRecorder interface {
	// RecordCall records the duration and outcome of a timed call.
	// err is nil on success.
	RecordCall(name string, duration time.Duration, err error)

	// RecordCallCount records the current invocation count of a counted function.
	RecordCallCount(name string, count uint64)

	// RecordInvalidLevel records a call that fell back to a warning because
	// its configured level was invalid.
	RecordInvalidLevel(name string, level Level)
}

// noopMetricsRecorder is a no-operation metrics recorder that does nothing.
type noopMetricsRecorder struct{}

// NoopMetricsRecorder returns a metrics recorder that does nothing.
// This is the default recorder used when none is provided.
//
//nolint:ireturn // Factory function must return interface for dependency injection pattern
func NoopMetricsRecorder() MetricsRecorder {
	return &noopMetricsRecorder{}
}

func (m *noopMetricsRecorder) RecordCall(string, time.Duration, error) {}
func (m *noopMetricsRecorder) RecordCallCount(string, uint64)          {}
func (m *noopMetricsRecorder) RecordInvalidLevel(string, Level)        {}

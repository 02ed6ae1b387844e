// Package testutil provides common testing utilities and helpers.
package testutil

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lexfrei/go-calllog/observability"
	"github.com/stretchr/testify/assert"
)

// Entry is a single message captured by RecordingLogger.
type Entry struct {
	Method string // "debug", "info", "warn" or "error"
	Msg    string
	Fields []observability.Field
}

// RecordingLogger is an observability.Logger that keeps every message in memory.
// It is safe for concurrent use.
type RecordingLogger struct {
	mu      *sync.Mutex
	entries *[]Entry
	with    []observability.Field
}

// NewRecordingLogger creates an empty RecordingLogger.
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{mu: &sync.Mutex{}, entries: &[]Entry{}}
}

func (l *RecordingLogger) record(method, msg string, fields []observability.Field) {
	all := make([]observability.Field, 0, len(l.with)+len(fields))
	all = append(all, l.with...)
	all = append(all, fields...)

	l.mu.Lock()
	defer l.mu.Unlock()

	*l.entries = append(*l.entries, Entry{Method: method, Msg: msg, Fields: all})
}

func (l *RecordingLogger) Debug(msg string, fields ...observability.Field) {
	l.record("debug", msg, fields)
}

func (l *RecordingLogger) Info(msg string, fields ...observability.Field) {
	l.record("info", msg, fields)
}

func (l *RecordingLogger) Warn(msg string, fields ...observability.Field) {
	l.record("warn", msg, fields)
}

func (l *RecordingLogger) Error(msg string, fields ...observability.Field) {
	l.record("error", msg, fields)
}

// With returns a logger sharing the same entry list with extra fields attached.
//
//nolint:ireturn // Method must return interface to satisfy Logger interface
func (l *RecordingLogger) With(fields ...observability.Field) observability.Logger {
	with := make([]observability.Field, 0, len(l.with)+len(fields))
	with = append(with, l.with...)
	with = append(with, fields...)

	return &RecordingLogger{mu: l.mu, entries: l.entries, with: with}
}

// Entries returns a copy of everything logged so far.
func (l *RecordingLogger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, len(*l.entries))
	copy(out, *l.entries)

	return out
}

// Messages returns the messages logged through the given method, in order.
// An empty method matches every entry.
func (l *RecordingLogger) Messages(method string) []string {
	var out []string
	for _, e := range l.Entries() {
		if method == "" || e.Method == method {
			out = append(out, e.Msg)
		}
	}

	return out
}

// RecordingMetrics is an observability.MetricsRecorder that keeps every event in memory.
type RecordingMetrics struct {
	mu            sync.Mutex
	Calls         []CallEvent
	Counts        map[string]uint64
	InvalidLevels map[string]int
}

// CallEvent is a RecordCall event captured by RecordingMetrics.
type CallEvent struct {
	Name     string
	Duration time.Duration
	Err      error
}

// NewRecordingMetrics creates an empty RecordingMetrics.
func NewRecordingMetrics() *RecordingMetrics {
	return &RecordingMetrics{
		Counts:        make(map[string]uint64),
		InvalidLevels: make(map[string]int),
	}
}

func (m *RecordingMetrics) RecordCall(name string, duration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, CallEvent{Name: name, Duration: duration, Err: err})
}

func (m *RecordingMetrics) RecordCallCount(name string, count uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if count > m.Counts[name] {
		m.Counts[name] = count
	}
}

func (m *RecordingMetrics) RecordInvalidLevel(name string, _ observability.Level) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.InvalidLevels[name]++
}

// AssertLogged checks that exactly one captured message contains substr.
func AssertLogged(t *testing.T, logger *RecordingLogger, substr string) {
	t.Helper()

	matches := 0
	for _, msg := range logger.Messages("") {
		if strings.Contains(msg, substr) {
			matches++
		}
	}

	assert.Equal(t, 1, matches, "expected exactly one message containing %q, got %v", substr, logger.Messages(""))
}

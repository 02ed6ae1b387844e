// Package observability provides interfaces for logging and metrics collection
// in the go-calllog library.
//
// This package defines the sink interfaces that decorated functions report
// to, so users can plug in their own logging and metrics implementations.
//
// # Logger Interface
//
// The Logger interface supports logging with optional key-value pairs:
//
//	logger := myCustomLogger{} // implements observability.Logger
//	timed := calllog.Wrap(fn, calllog.RunningTime(calllog.WithLogger(logger)))
//
// Decorators log at a configured Level. Valid levels:
//   - LevelDebug: Detailed diagnostic information
//   - LevelInfo: General informational messages
//   - LevelWarning: Potentially problematic situations
//   - LevelError: Failures
//   - LevelCritical: Severe failures, sent to Logger.Error with a severity field
//
// Log dispatches a message to the method matching a Level.
//
// # MetricsRecorder Interface
//
// The MetricsRecorder interface tracks decorated calls:
//   - Call duration and outcome (RunningTime)
//   - Invocation counts (CallCounter)
//   - Calls whose configured level was invalid
//
// # Default Behavior
//
// If no logger or metrics recorder is provided, decorators use no-op
// implementations that discard all events.
//
// Ready-made adapters live in the slogadapter, zapadapter and promrecorder
// subpackages.
package observability

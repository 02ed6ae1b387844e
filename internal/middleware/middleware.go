// Package middleware implements the call decorators: timing, argument and
// call-count logging.
package middleware

import (
	"context"
	"fmt"

	"github.com/lexfrei/go-calllog/observability"
)

// Args carries the positional and named arguments of a decorated call.
type Args struct {
	Positional []any
	Named      map[string]any
}

// Func is the calling convention shared by every decorator.
type Func func(ctx context.Context, args Args) (any, error)

// Decorator wraps next, identified by name, with additional behavior.
type Decorator func(name string, next Func) Func

// Config holds the settings common to all decorators.
type Config struct {
	Level   observability.Level
	Logger  observability.Logger
	Metrics observability.MetricsRecorder
}

func (c Config) withDefaults() Config {
	if c.Logger == nil {
		c.Logger = observability.NoopLogger()
	}
	if c.Metrics == nil {
		c.Metrics = observability.NoopMetricsRecorder()
	}

	return c
}

// Chain composes decorators into one.
// The first decorator becomes the outermost layer:
//
//	Chain(A, B, C) wraps fn as A(B(C(fn)))
//	Call flow: A -> B -> C -> fn
//	Return flow: fn -> C -> B -> A
func Chain(decorators ...Decorator) Decorator {
	return func(name string, next Func) Func {
		// Apply in reverse order so the first decorator is outermost
		for i := len(decorators) - 1; i >= 0; i-- {
			if decorators[i] != nil {
				next = decorators[i](name, next)
			}
		}

		return next
	}
}

// emit logs the message built by msg at the configured level, or the
// invalid-level warning instead. Sink failures never reach the caller.
func (c Config) emit(name string, msg func() string) {
	if !c.Level.Valid() {
		c.warnInvalid(name)
		return
	}

	safely(func() { observability.Log(c.Logger, c.Level, msg()) })
}

func (c Config) warnInvalid(name string) {
	safely(func() { c.Metrics.RecordInvalidLevel(name, c.Level) })
	safely(func() {
		c.Logger.Warn(fmt.Sprintf("Invalid log level %d for function %s.", int(c.Level), name))
	})
}

// safely runs fn and discards any panic it raises.
func safely(fn func()) {
	defer func() {
		_ = recover() //nolint:errcheck // logging side effects must not escalate
	}()

	fn()
}

package middleware

import (
	"context"
	"fmt"

	"github.com/lexfrei/go-calllog/internal/ratelimit"
)

// Counter tracks invocation counts by name.
// Increment must be safe for concurrent use and return the post-increment count.
type Counter interface {
	Increment(name string) uint64
}

// CounterConfig configures the CallCounter decorator.
type CounterConfig struct {
	Config

	Counter Counter
	Policy  ratelimit.Policy
}

// CallCounter returns a decorator that counts every call in cfg.Counter and
// logs the running total whenever cfg.Policy allows it. The count is taken
// before the call, so failing calls are counted too.
//
// With an invalid level, a call whose line was muted by the policy still
// emits the invalid-level warning if it fails.
func CallCounter(cfg CounterConfig) Decorator {
	cfg.Config = cfg.withDefaults()

	return func(name string, next Func) Func {
		return func(ctx context.Context, args Args) (any, error) {
			count := cfg.Counter.Increment(name)
			safely(func() { cfg.Metrics.RecordCallCount(name, count) })

			logged := cfg.Policy.ShouldLog(count)
			if logged {
				cfg.emit(name, func() string {
					return fmt.Sprintf("Function %s has been called %d times.", name, count)
				})
			}

			if logged || cfg.Level.Valid() {
				return next(ctx, args)
			}

			return cfg.callWarningOnFailure(ctx, name, next, args)
		}
	}
}

func (c CounterConfig) callWarningOnFailure(ctx context.Context, name string, next Func, args Args) (any, error) {
	returned := false

	defer func() {
		if returned {
			return
		}

		r := recover()
		if r == nil {
			// runtime.Goexit is not a failure
			return
		}

		c.warnInvalid(name)
		panic(r)
	}()

	result, err := next(ctx, args)
	returned = true

	if err != nil {
		c.warnInvalid(name)
	}

	//nolint:wrapcheck // errors from the decorated function pass through unchanged
	return result, err
}

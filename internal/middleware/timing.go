package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
)

// RunningTime returns a decorator that logs how long each call took.
// Failed calls, including panics, are logged with their elapsed time and the
// failure before the error is returned or the panic resumes unchanged.
func RunningTime(cfg Config) Decorator {
	cfg = cfg.withDefaults()

	return func(name string, next Func) Func {
		return func(ctx context.Context, args Args) (any, error) {
			start := time.Now()
			returned := false

			defer func() {
				if returned {
					return
				}

				r := recover()
				if r == nil {
					// runtime.Goexit, nothing to re-raise
					return
				}

				cfg.reportTiming(name, time.Since(start), panicError(r), fmt.Sprintf("panic: %v", r))
				panic(r)
			}()

			result, err := next(ctx, args)
			returned = true

			cfg.reportTiming(name, time.Since(start), err, describeError(err))

			//nolint:wrapcheck // errors from the decorated function pass through unchanged
			return result, err
		}
	}
}

// reportTiming logs and records one timed call. failure describes err as
// "<type>: <message>" and is ignored when err is nil.
func (c Config) reportTiming(name string, elapsed time.Duration, err error, failure string) {
	safely(func() { c.Metrics.RecordCall(name, elapsed, err) })

	if err != nil {
		c.emit(name, func() string {
			return fmt.Sprintf("The call [%s] failed after %.6f seconds: %s.", name, elapsed.Seconds(), failure)
		})
		return
	}

	c.emit(name, func() string {
		return fmt.Sprintf("The call [%s] completed in %.6f seconds.", name, elapsed.Seconds())
	})
}

// describeError renders err as "<type>: <message>", where type is the
// concrete type of the innermost cause.
func describeError(err error) string {
	if err == nil {
		return ""
	}

	return fmt.Sprintf("%T: %v", errors.UnwrapAll(err), err)
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return errors.Wrap(err, "panic")
	}

	return errors.Newf("panic: %v", r)
}

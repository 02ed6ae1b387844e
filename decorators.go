package calllog

import (
	"github.com/cockroachdb/errors"
	"github.com/lexfrei/go-calllog/internal/middleware"
	"github.com/lexfrei/go-calllog/internal/ratelimit"
)

var (
	// ErrInvalidMuteAfter is returned by CallCounter for a negative mute-after window.
	ErrInvalidMuteAfter = ratelimit.ErrInvalidMuteAfter

	// ErrInvalidLogEvery is returned by CallCounter for a log-every interval below 1.
	ErrInvalidLogEvery = ratelimit.ErrInvalidLogEvery

	// ErrNilRegistry is returned by CallCounter when no Registry is given.
	ErrNilRegistry = errors.New("registry is required")
)

// RunningTime returns a decorator that logs the wall-clock duration of each
// call, as "The call [name] completed in 0.000123 seconds." or, when the call
// returns an error or panics, "The call [name] failed after 0.000123 seconds: err.".
func RunningTime(opts ...Option) Decorator {
	return middleware.RunningTime(newConfig(opts).toMiddleware())
}

// LogArgs returns a decorator that logs the arguments of each call before it
// runs, as "Function name has been called with args = [1 2].".
func LogArgs(opts ...Option) Decorator {
	return middleware.LogArgs(newConfig(opts).toMiddleware())
}

// CallCounter returns a decorator that counts calls in registry and logs
// "Function name has been called N times." for the first WithMuteAfter calls
// and for every WithLogEvery-th call. Calls are counted even when they fail.
//
// It fails when registry is nil or the rate-limit options are out of range.
func CallCounter(registry *Registry, opts ...Option) (Decorator, error) {
	if registry == nil {
		return nil, ErrNilRegistry
	}

	cfg := newConfig(opts)

	policy, err := ratelimit.NewPolicy(cfg.muteAfter, cfg.logEvery)
	if err != nil {
		return nil, errors.Wrap(err, "invalid call counter configuration")
	}

	return middleware.CallCounter(middleware.CounterConfig{
		Config:  cfg.toMiddleware(),
		Counter: registry,
		Policy:  policy,
	}), nil
}

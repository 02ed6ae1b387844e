package middleware

import (
	"context"
	"fmt"
)

// LogArgs returns a decorator that logs the arguments of each call before
// running it.
func LogArgs(cfg Config) Decorator {
	cfg = cfg.withDefaults()

	return func(name string, next Func) Func {
		return func(ctx context.Context, args Args) (any, error) {
			cfg.emit(name, func() string {
				return fmt.Sprintf("Function %s has been called %s.", name, FormatArgs(args))
			})

			return next(ctx, args)
		}
	}
}

// FormatArgs describes args for a log line:
//
//	no arguments     -> "without args"
//	positional only  -> "with args = [1 2]"
//	named only       -> "with kwargs = map[x:1]"
//	both             -> "args = [1 2] and kwargs = map[x:1]"
//
// Named arguments are printed in sorted key order.
func FormatArgs(args Args) string {
	hasPositional := len(args.Positional) > 0
	hasNamed := len(args.Named) > 0

	switch {
	case hasPositional && hasNamed:
		return fmt.Sprintf("args = %v and kwargs = %v", args.Positional, args.Named)
	case hasPositional:
		return fmt.Sprintf("with args = %v", args.Positional)
	case hasNamed:
		return fmt.Sprintf("with kwargs = %v", args.Named)
	default:
		return "without args"
	}
}

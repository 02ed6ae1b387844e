// Package calllog provides decorators that add logging to arbitrary functions:
// execution time, arguments, and call counts with rate-limited output.
//
// # Decorating a function
//
// Decorated functions share one calling convention, Func. Arguments are
// passed as Args and the result and error come back unchanged:
//
//	logger := slogadapter.New(slog.Default())
//
//	load := calllog.Wrap(store.Load,
//		calllog.RunningTime(calllog.WithLogger(logger)),
//		calllog.LogArgs(calllog.WithLogger(logger), calllog.WithLevel(observability.LevelInfo)),
//	)
//
//	v, err := load(ctx, calllog.Args{Positional: []any{"key"}})
//
// Decorators are applied in the order given, the first being outermost.
// Wrap identifies the function by its qualified name; use WrapNamed to choose
// the name yourself.
//
// # Counting calls
//
// CallCounter stores counts in a caller-owned Registry. It logs the first
// WithMuteAfter calls (default 5) and then every WithLogEvery-th call
// (default 10):
//
//	registry := calllog.NewRegistry()
//
//	counter, err := calllog.CallCounter(registry,
//		calllog.WithLogger(logger),
//		calllog.WithMuteAfter(2),
//		calllog.WithLogEvery(5),
//	)
//	if err != nil {
//		return err // ErrInvalidMuteAfter or ErrInvalidLogEvery
//	}
//
//	handle := calllog.Wrap(handler.Handle, counter)
//	...
//	n := registry.CountFunc(handler.Handle)
//	registry.Reset()
//
// # Levels
//
// Messages are logged at WithLevel (default LevelDebug). A level outside the
// observability.Level constants is not an error: each call logs
// "Invalid log level N for function NAME." as a warning instead.
//
// # Failures
//
// Errors returned by the decorated function are never wrapped, and panics
// resume with their original value. Panics raised by the logger or metrics
// recorder are discarded.
package calllog

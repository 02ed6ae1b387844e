package calllog_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/lexfrei/go-calllog"
	"github.com/lexfrei/go-calllog/internal/testutil"
	"github.com/lexfrei/go-calllog/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errLookup = errors.New("lookup failed")

func double(_ context.Context, args calllog.Args) (any, error) {
	n, ok := args.Positional[0].(int)
	if !ok {
		return nil, errors.New("want int")
	}

	return n * 2, nil
}

func failing(context.Context, calllog.Args) (any, error) {
	return nil, errLookup
}

func noop(context.Context, calllog.Args) (any, error) {
	return nil, nil
}

func TestQualifiedName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "github.com/lexfrei/go-calllog_test.double", calllog.QualifiedName(double))
	assert.Equal(t, calllog.UnknownName, calllog.QualifiedName(nil))
	assert.Equal(t, calllog.UnknownName, calllog.QualifiedName(42))

	var nilFunc calllog.Func
	assert.Equal(t, calllog.UnknownName, calllog.QualifiedName(nilFunc))
}

func TestWrapPassesResultThrough(t *testing.T) {
	t.Parallel()

	logger := testutil.NewRecordingLogger()
	registry := calllog.NewRegistry()

	counter, err := calllog.CallCounter(registry, calllog.WithLogger(logger))
	require.NoError(t, err)

	fn := calllog.Wrap(double,
		calllog.RunningTime(calllog.WithLogger(logger)),
		calllog.LogArgs(calllog.WithLogger(logger)),
		counter,
	)

	result, err := fn(context.Background(), calllog.Args{Positional: []any{21}})
	require.NoError(t, err)
	assert.Equal(t, 42, result)

	// Outermost decorator logs last on the way out, LogArgs before the call
	messages := logger.Messages("debug")
	require.Len(t, messages, 3)
	assert.Equal(t, "Function github.com/lexfrei/go-calllog_test.double has been called with args = [21].", messages[0])
	assert.Equal(t, "Function github.com/lexfrei/go-calllog_test.double has been called 1 times.", messages[1])
	assert.True(t, strings.HasPrefix(messages[2], "The call [github.com/lexfrei/go-calllog_test.double] completed in "))

	assert.Equal(t, uint64(1), registry.CountFunc(double))
}

func TestWrapNamed(t *testing.T) {
	t.Parallel()

	logger := testutil.NewRecordingLogger()

	fn := calllog.WrapNamed("store.Load", noop, calllog.LogArgs(calllog.WithLogger(logger)))
	_, err := fn(context.Background(), calllog.Args{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Function store.Load has been called without args."}, logger.Messages(""))
}

func TestWrapNamedEmptyName(t *testing.T) {
	t.Parallel()

	logger := testutil.NewRecordingLogger()

	fn := calllog.WrapNamed("", noop, calllog.LogArgs(calllog.WithLogger(logger)))
	_, err := fn(context.Background(), calllog.Args{})
	require.NoError(t, err)

	testutil.AssertLogged(t, logger, "Function unknown has been called")
}

func TestWrapWithoutDecorators(t *testing.T) {
	t.Parallel()

	fn := calllog.Wrap(double)
	result, err := fn(context.Background(), calllog.Args{Positional: []any{4}})
	require.NoError(t, err)
	assert.Equal(t, 8, result)
}

func TestChainOrder(t *testing.T) {
	t.Parallel()

	var order []string
	trace := func(label string) calllog.Decorator {
		return func(name string, next calllog.Func) calllog.Func {
			return func(ctx context.Context, args calllog.Args) (any, error) {
				order = append(order, label+">"+name)
				return next(ctx, args)
			}
		}
	}

	fn := calllog.WrapNamed("f", noop, calllog.Chain(trace("a"), trace("b")), trace("c"))
	_, err := fn(context.Background(), calllog.Args{})
	require.NoError(t, err)

	assert.Equal(t, []string{"a>f", "b>f", "c>f"}, order)
}

func TestRunningTimeErrorPassesThroughUnchanged(t *testing.T) {
	t.Parallel()

	logger := testutil.NewRecordingLogger()
	metrics := testutil.NewRecordingMetrics()

	fn := calllog.WrapNamed("svc.Lookup", failing,
		calllog.RunningTime(calllog.WithLogger(logger), calllog.WithMetrics(metrics), calllog.WithLevel(observability.LevelError)),
	)

	result, err := fn(context.Background(), calllog.Args{})
	assert.Nil(t, result)
	require.Error(t, err)
	assert.Same(t, errLookup, err)

	messages := logger.Messages("error")
	require.Len(t, messages, 1)
	assert.True(t, strings.HasPrefix(messages[0], "The call [svc.Lookup] failed after "))
	assert.Regexp(t, `seconds: \*\w+\.\w+: lookup failed\.$`, messages[0])

	require.Len(t, metrics.Calls, 1)
	assert.Equal(t, "svc.Lookup", metrics.Calls[0].Name)
	assert.Same(t, errLookup, metrics.Calls[0].Err)
}

type notFoundError struct {
	key string
}

func (e *notFoundError) Error() string {
	return "key " + e.key + " not found"
}

func TestRunningTimeFailureIncludesErrorType(t *testing.T) {
	t.Parallel()

	logger := testutil.NewRecordingLogger()
	errNotFound := &notFoundError{key: "user:1"}

	fn := calllog.WrapNamed("svc.Get", func(context.Context, calllog.Args) (any, error) {
		return nil, errors.Wrap(errNotFound, "get")
	}, calllog.RunningTime(calllog.WithLogger(logger)))

	_, err := fn(context.Background(), calllog.Args{})
	require.ErrorIs(t, err, errNotFound)

	messages := logger.Messages("debug")
	require.Len(t, messages, 1)
	assert.True(t, strings.HasSuffix(messages[0],
		" seconds: *calllog_test.notFoundError: get: key user:1 not found."), messages[0])
}

func TestCallCounterZeroValueRegistry(t *testing.T) {
	t.Parallel()

	registry := &calllog.Registry{}

	counter, err := calllog.CallCounter(registry)
	require.NoError(t, err)

	fn := calllog.WrapNamed("f", noop, counter)
	assert.NotPanics(t, func() {
		_, err = fn(context.Background(), calllog.Args{})
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), registry.Count("f"))
}

func TestRunningTimePanicPassesThrough(t *testing.T) {
	t.Parallel()

	logger := testutil.NewRecordingLogger()

	fn := calllog.WrapNamed("svc.Explode", func(context.Context, calllog.Args) (any, error) {
		panic("kaboom")
	}, calllog.RunningTime(calllog.WithLogger(logger)))

	assert.PanicsWithValue(t, "kaboom", func() {
		_, _ = fn(context.Background(), calllog.Args{})
	})

	testutil.AssertLogged(t, logger, "seconds: panic: kaboom.")
}

func TestLogArgsLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		level      observability.Level
		wantMethod string
	}{
		{name: "debug", level: observability.LevelDebug, wantMethod: "debug"},
		{name: "info", level: observability.LevelInfo, wantMethod: "info"},
		{name: "warning", level: observability.LevelWarning, wantMethod: "warn"},
		{name: "error", level: observability.LevelError, wantMethod: "error"},
		{name: "critical", level: observability.LevelCritical, wantMethod: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logger := testutil.NewRecordingLogger()
			fn := calllog.WrapNamed("f", noop, calllog.LogArgs(calllog.WithLogger(logger), calllog.WithLevel(tt.level)))

			_, err := fn(context.Background(), calllog.Args{Named: map[string]any{"x": 1}})
			require.NoError(t, err)

			assert.Equal(t, []string{"Function f has been called with kwargs = map[x:1]."}, logger.Messages(tt.wantMethod))
		})
	}
}

func TestInvalidLevelFallsBackToWarning(t *testing.T) {
	t.Parallel()

	registry := calllog.NewRegistry()
	logger := testutil.NewRecordingLogger()
	metrics := testutil.NewRecordingMetrics()
	opts := []calllog.Option{
		calllog.WithLogger(logger),
		calllog.WithMetrics(metrics),
		calllog.WithLevel(observability.Level(15)),
	}

	counter, err := calllog.CallCounter(registry, opts...)
	require.NoError(t, err)

	fn := calllog.WrapNamed("f", double, calllog.RunningTime(opts...), calllog.LogArgs(opts...), counter)

	result, err := fn(context.Background(), calllog.Args{Positional: []any{1}})
	require.NoError(t, err)
	assert.Equal(t, 2, result)

	assert.Empty(t, logger.Messages("debug"))
	assert.Equal(t, []string{
		"Invalid log level 15 for function f.",
		"Invalid log level 15 for function f.",
		"Invalid log level 15 for function f.",
	}, logger.Messages("warn"))
	assert.Equal(t, 3, metrics.InvalidLevels["f"])
}

func TestCallCounterValidation(t *testing.T) {
	t.Parallel()

	registry := calllog.NewRegistry()

	_, err := calllog.CallCounter(registry, calllog.WithMuteAfter(-1))
	require.ErrorIs(t, err, calllog.ErrInvalidMuteAfter)

	_, err = calllog.CallCounter(registry, calllog.WithLogEvery(0))
	require.ErrorIs(t, err, calllog.ErrInvalidLogEvery)

	_, err = calllog.CallCounter(nil)
	require.ErrorIs(t, err, calllog.ErrNilRegistry)

	counter, err := calllog.CallCounter(registry, calllog.WithMuteAfter(0), calllog.WithLogEvery(1))
	require.NoError(t, err)
	assert.NotNil(t, counter)
}

func TestCallCounterEmissions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		muteAfter int
		logEvery  int
		calls     int
		want      []string
	}{
		{
			name:      "burst then periodic",
			muteAfter: 2,
			logEvery:  5,
			calls:     10,
			want:      []string{"1", "2", "5", "10"},
		},
		{
			name:      "periodic only",
			muteAfter: 0,
			logEvery:  5,
			calls:     10,
			want:      []string{"5", "10"},
		},
		{
			name:      "burst overlaps period",
			muteAfter: 10,
			logEvery:  5,
			calls:     20,
			want:      []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "15", "20"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			registry := calllog.NewRegistry()
			logger := testutil.NewRecordingLogger()

			counter, err := calllog.CallCounter(registry,
				calllog.WithLogger(logger),
				calllog.WithMuteAfter(tt.muteAfter),
				calllog.WithLogEvery(tt.logEvery),
			)
			require.NoError(t, err)

			fn := calllog.WrapNamed("f", noop, counter)
			for range tt.calls {
				_, err := fn(context.Background(), calllog.Args{})
				require.NoError(t, err)
			}

			want := make([]string, 0, len(tt.want))
			for _, n := range tt.want {
				want = append(want, "Function f has been called "+n+" times.")
			}

			assert.Equal(t, want, logger.Messages("debug"))
			assert.Equal(t, uint64(tt.calls), registry.Count("f"))
		})
	}
}

func TestCallCounterDefaults(t *testing.T) {
	t.Parallel()

	registry := calllog.NewRegistry()
	logger := testutil.NewRecordingLogger()

	counter, err := calllog.CallCounter(registry, calllog.WithLogger(logger))
	require.NoError(t, err)

	fn := calllog.WrapNamed("f", noop, counter)
	for range 20 {
		_, _ = fn(context.Background(), calllog.Args{})
	}

	// calls 1..5, then 10 and 20
	assert.Len(t, logger.Messages("debug"), 7)
}

func TestCallCounterCountsFailures(t *testing.T) {
	t.Parallel()

	registry := calllog.NewRegistry()
	counter, err := calllog.CallCounter(registry)
	require.NoError(t, err)

	fn := calllog.Wrap(failing, counter)
	for range 3 {
		_, err := fn(context.Background(), calllog.Args{})
		require.ErrorIs(t, err, errLookup)
	}

	assert.Equal(t, uint64(3), registry.CountFunc(failing))
}

func TestCallCounterMutedFailureWithInvalidLevel(t *testing.T) {
	t.Parallel()

	registry := calllog.NewRegistry()
	logger := testutil.NewRecordingLogger()

	counter, err := calllog.CallCounter(registry,
		calllog.WithLogger(logger),
		calllog.WithLevel(observability.Level(99)),
		calllog.WithMuteAfter(0),
		calllog.WithLogEvery(100),
	)
	require.NoError(t, err)

	ok := calllog.WrapNamed("ok", noop, counter)
	_, err = ok(context.Background(), calllog.Args{})
	require.NoError(t, err)
	assert.Empty(t, logger.Messages(""), "muted successful call logs nothing")

	bad := calllog.WrapNamed("bad", failing, counter)
	_, err = bad(context.Background(), calllog.Args{})
	require.ErrorIs(t, err, errLookup)
	assert.Equal(t, []string{"Invalid log level 99 for function bad."}, logger.Messages("warn"))

	boom := calllog.WrapNamed("boom", func(context.Context, calllog.Args) (any, error) {
		panic("boom")
	}, counter)
	assert.PanicsWithValue(t, "boom", func() {
		_, _ = boom(context.Background(), calllog.Args{})
	})
	assert.Equal(t, []string{
		"Invalid log level 99 for function bad.",
		"Invalid log level 99 for function boom.",
	}, logger.Messages("warn"))
	assert.Equal(t, uint64(1), registry.Count("boom"))
}

func TestCallCounterResetRestartsSequence(t *testing.T) {
	t.Parallel()

	registry := calllog.NewRegistry()
	logger := testutil.NewRecordingLogger()

	counter, err := calllog.CallCounter(registry, calllog.WithLogger(logger), calllog.WithMuteAfter(1))
	require.NoError(t, err)

	fn := calllog.WrapNamed("f", noop, counter)
	for range 3 {
		_, _ = fn(context.Background(), calllog.Args{})
	}
	assert.Equal(t, uint64(3), registry.Count("f"))

	registry.Reset()
	assert.Equal(t, uint64(0), registry.Count("f"))

	_, _ = fn(context.Background(), calllog.Args{})
	assert.Equal(t, uint64(1), registry.Count("f"))
	assert.Equal(t, []string{
		"Function f has been called 1 times.",
		"Function f has been called 1 times.",
	}, logger.Messages("debug"))
}

func TestCallCounterConcurrent(t *testing.T) {
	t.Parallel()

	const (
		goroutines = 16
		calls      = 500
	)

	registry := calllog.NewRegistry()
	metrics := testutil.NewRecordingMetrics()

	counter, err := calllog.CallCounter(registry, calllog.WithLogger(testutil.NewRecordingLogger()), calllog.WithMetrics(metrics))
	require.NoError(t, err)

	fn := calllog.WrapNamed("hot", noop, counter)

	var wg sync.WaitGroup
	for range goroutines {
		wg.Go(func() {
			for range calls {
				_, _ = fn(context.Background(), calllog.Args{})
			}
		})
	}
	wg.Wait()

	assert.Equal(t, uint64(goroutines*calls), registry.Count("hot"))
	assert.Equal(t, uint64(goroutines*calls), metrics.Counts["hot"])
}

type panickingLogger struct {
	observability.Logger
}

func (panickingLogger) Debug(string, ...observability.Field) { panic("sink down") }

func TestLoggerPanicDoesNotEscalate(t *testing.T) {
	t.Parallel()

	logger := panickingLogger{Logger: observability.NoopLogger()}

	fn := calllog.Wrap(failing, calllog.RunningTime(calllog.WithLogger(logger)), calllog.LogArgs(calllog.WithLogger(logger)))

	assert.NotPanics(t, func() {
		_, err := fn(context.Background(), calllog.Args{})
		assert.Same(t, errLookup, err)
	})
}

func TestNilOptionsIgnored(t *testing.T) {
	t.Parallel()

	fn := calllog.Wrap(double, calllog.RunningTime(nil, calllog.WithLogger(nil), calllog.WithMetrics(nil)))

	result, err := fn(context.Background(), calllog.Args{Positional: []any{3}})
	require.NoError(t, err)
	assert.Equal(t, 6, result)
}

func TestFormatArgs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "without args", calllog.FormatArgs(calllog.Args{}))
	assert.Contains(t, calllog.FormatArgs(calllog.Args{Positional: []any{1, 2}}), "args =")

	named := calllog.FormatArgs(calllog.Args{Named: map[string]any{"x": 1}})
	assert.Contains(t, named, "kwargs =")

	both := calllog.FormatArgs(calllog.Args{Positional: []any{1}, Named: map[string]any{"x": 1}})
	assert.Contains(t, both, "args =")
	assert.Contains(t, both, "kwargs =")
	assert.Contains(t, both, " and ")
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	calllog "github.com/lexfrei/go-calllog"
	"github.com/lexfrei/go-calllog/observability"
	"github.com/lexfrei/go-calllog/observability/slogadapter"
	"github.com/lexfrei/go-calllog/observability/zapadapter"
)

var (
	levelName = flag.String("level", envOr("CALLLOG_LEVEL", "debug"), "Log level: debug, info, warning, error, critical or a number (or use CALLLOG_LEVEL env)")
	backend   = flag.String("logger", envOr("CALLLOG_LOGGER", "slog"), "Logging backend: slog or zap (or use CALLLOG_LOGGER env)")
	muteAfter = flag.Int("mute-after", calllog.DefaultMuteAfter, "Number of leading calls the call counter always logs")
	logEvery  = flag.Int("log-every", calllog.DefaultLogEvery, "Interval at which the call counter logs later calls")
	calls     = flag.Int("calls", 20, "Number of calls made to the counted function")
)

var errNegative = errors.New("negative input")

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newLogger(level observability.Level) (observability.Logger, func(), error) {
	// Invalid levels still need the fallback warnings to be visible
	if !level.Valid() {
		level = observability.LevelWarning
	}

	switch strings.ToLower(*backend) {
	case "slog":
		handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slogadapter.Level(level)})
		return slogadapter.New(slog.New(handler)), func() {}, nil
	case "zap":
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapadapter.Level(level))
		logger, err := cfg.Build()
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to build zap logger")
		}
		return zapadapter.New(logger), func() { _ = logger.Sync() }, nil
	default:
		return nil, nil, errors.Newf("unknown logger backend %q", *backend)
	}
}

func factorial(_ context.Context, args calllog.Args) (any, error) {
	n, ok := args.Positional[0].(int)
	if !ok {
		return nil, errors.Newf("want int, got %T", args.Positional[0])
	}
	if n < 0 {
		return nil, errNegative
	}

	result := 1
	for i := 2; i <= n; i++ {
		result *= i
		time.Sleep(10 * time.Millisecond)
	}

	return result, nil
}

func add(_ context.Context, args calllog.Args) (any, error) {
	sum := 0
	for _, v := range args.Positional {
		n, _ := v.(int)
		sum += n
	}
	for _, v := range args.Named {
		n, _ := v.(int)
		sum += n
	}

	return sum, nil
}

func ping(context.Context, calllog.Args) (any, error) {
	return "pong", nil
}

func main() {
	flag.Parse()

	level, err := observability.ParseLevel(*levelName)
	if err != nil {
		log.Fatalf("Invalid -level: %v", err)
	}

	logger, flush, err := newLogger(level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer flush()

	ctx := context.Background()
	registry := calllog.NewRegistry()

	fmt.Println("1. RunningTime")
	timed := calllog.Wrap(factorial, calllog.RunningTime(calllog.WithLogger(logger), calllog.WithLevel(level)))
	if result, err := timed(ctx, calllog.Args{Positional: []any{5}}); err == nil {
		fmt.Printf("   factorial(5) = %v\n", result)
	}
	if _, err := timed(ctx, calllog.Args{Positional: []any{-1}}); err != nil {
		fmt.Printf("   factorial(-1) failed: %v\n", err)
	}

	fmt.Println("2. LogArgs")
	logged := calllog.Wrap(add, calllog.LogArgs(calllog.WithLogger(logger), calllog.WithLevel(level)))
	for _, args := range []calllog.Args{
		{},
		{Positional: []any{10, 20}},
		{Positional: []any{5, 15}, Named: map[string]any{"c": 10}},
		{Named: map[string]any{"a": 1, "b": 2, "c": 3}},
	} {
		_, _ = logged(ctx, args)
	}

	fmt.Println("3. CallCounter")
	counter, err := calllog.CallCounter(registry,
		calllog.WithLogger(logger),
		calllog.WithLevel(level),
		calllog.WithMuteAfter(*muteAfter),
		calllog.WithLogEvery(*logEvery),
	)
	if err != nil {
		log.Fatalf("Failed to create call counter: %v", err)
	}

	counted := calllog.Wrap(ping, counter)
	for range *calls {
		_, _ = counted(ctx, calllog.Args{})
	}
	fmt.Printf("   %s called %d times\n", calllog.QualifiedName(ping), registry.CountFunc(ping))

	registry.Reset()
	fmt.Printf("   after reset: %d\n", registry.CountFunc(ping))
}

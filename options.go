package calllog

import (
	"github.com/lexfrei/go-calllog/internal/middleware"
	"github.com/lexfrei/go-calllog/internal/ratelimit"
	"github.com/lexfrei/go-calllog/observability"
)

// Default decorator settings.
const (
	DefaultLevel     = observability.LevelDebug
	DefaultMuteAfter = ratelimit.DefaultMuteAfter
	DefaultLogEvery  = ratelimit.DefaultLogEvery
)

type config struct {
	level     observability.Level
	logger    observability.Logger
	metrics   observability.MetricsRecorder
	muteAfter int
	logEvery  int
}

func newConfig(opts []Option) *config {
	cfg := &config{
		level:     DefaultLevel,
		logger:    observability.NoopLogger(),
		metrics:   observability.NoopMetricsRecorder(),
		muteAfter: DefaultMuteAfter,
		logEvery:  DefaultLogEvery,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	return cfg
}

// Option is a functional option for configuring a decorator.
// Options that do not apply to a decorator are ignored by it.
type Option func(*config)

// WithLevel sets the severity decorators log at (default LevelDebug).
// An invalid level is not rejected: each call logs a warning instead.
func WithLevel(level observability.Level) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithLogger sets the logging sink.
// If not provided, messages are discarded.
func WithLogger(logger observability.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(metrics observability.MetricsRecorder) Option {
	return func(c *config) {
		if metrics != nil {
			c.metrics = metrics
		}
	}
}

// WithMuteAfter sets how many leading calls CallCounter always logs (default 5).
func WithMuteAfter(n int) Option {
	return func(c *config) {
		c.muteAfter = n
	}
}

// WithLogEvery sets the interval at which CallCounter logs later calls (default 10).
func WithLogEvery(n int) Option {
	return func(c *config) {
		c.logEvery = n
	}
}

func (c *config) toMiddleware() middleware.Config {
	return middleware.Config{
		Level:   c.level,
		Logger:  c.logger,
		Metrics: c.metrics,
	}
}

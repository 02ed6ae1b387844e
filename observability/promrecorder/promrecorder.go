// Package promrecorder implements observability.MetricsRecorder with Prometheus collectors.
package promrecorder

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/lexfrei/go-calllog/observability"
)

const namespace = "calllog"

// Outcome label values of the call duration histogram.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Recorder exports decorated call metrics:
//   - calllog_call_duration_seconds{function,outcome} histogram
//   - calllog_calls_total{function} counter
//   - calllog_invalid_level_total{function} counter
type Recorder struct {
	duration     *prometheus.HistogramVec
	calls        *prometheus.CounterVec
	invalidLevel *prometheus.CounterVec
}

// New creates a Recorder and registers its collectors with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	r := &Recorder{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "call_duration_seconds",
			Help:      "Wall-clock duration of decorated calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"function", "outcome"}),
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calls_total",
			Help:      "Invocations of counted functions.",
		}, []string{"function"}),
		invalidLevel: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invalid_level_total",
			Help:      "Calls that logged a warning because their configured level was invalid.",
		}, []string{"function"}),
	}

	for _, c := range []prometheus.Collector{r.duration, r.calls, r.invalidLevel} {
		if err := reg.Register(c); err != nil {
			return nil, err //nolint:wrapcheck // AlreadyRegisteredError must stay inspectable
		}
	}

	return r, nil
}

func (r *Recorder) RecordCall(name string, duration time.Duration, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}

	r.duration.WithLabelValues(name, outcome).Observe(duration.Seconds())
}

// RecordCallCount counts one invocation of name. The registry count is not
// exported directly: reports from concurrent calls can arrive out of order,
// and Prometheus counters are expected to survive registry resets.
func (r *Recorder) RecordCallCount(name string, _ uint64) {
	r.calls.WithLabelValues(name).Inc()
}

func (r *Recorder) RecordInvalidLevel(name string, _ observability.Level) {
	r.invalidLevel.WithLabelValues(name).Inc()
}

var _ observability.MetricsRecorder = (*Recorder)(nil)

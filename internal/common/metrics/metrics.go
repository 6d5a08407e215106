// internal/common/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds the code hook collectors. A nil *Recorder is valid and
// records nothing.
type Recorder struct {
	Invocations        *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec
	InvocationDuration *prometheus.HistogramVec
	PublishFailures    *prometheus.CounterVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer, namespace string) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		Invocations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "codehook_invocations_total",
				Help:      "Total number of code hook invocations by outcome",
			},
			[]string{"intent", "source", "outcome"},
		),
		ValidationFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "codehook_validation_failures_total",
				Help:      "Total number of slot validation failures",
			},
			[]string{"intent", "slot"},
		),
		InvocationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "codehook_invocation_duration_seconds",
				Help:      "Duration of code hook processing in seconds",
				Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
			},
			[]string{"intent", "source"},
		),
		PublishFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "codehook_publish_failures_total",
				Help:      "Total number of failed recommendation publications",
			},
			[]string{"intent"},
		),
	}
}

func (r *Recorder) ObserveInvocation(intent, source, outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.Invocations.WithLabelValues(intent, source, outcome).Inc()
	r.InvocationDuration.WithLabelValues(intent, source).Observe(elapsed.Seconds())
}

func (r *Recorder) ValidationFailed(intent, slot string) {
	if r == nil {
		return
	}
	r.ValidationFailures.WithLabelValues(intent, slot).Inc()
}

func (r *Recorder) PublishFailed(intent string) {
	if r == nil {
		return
	}
	r.PublishFailures.WithLabelValues(intent).Inc()
}

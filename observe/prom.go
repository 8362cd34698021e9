package observe

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dshills/dispatchkit/dispatch"
)

// Prom records dispatch outcomes as Prometheus collectors: a counter vector
// labeled by result, an error counter, a rejection counter, and a duration
// histogram. Register the sink with a registerer before scraping.
type Prom[E any] struct {
	dispatches *prometheus.CounterVec
	errors     prometheus.Counter
	rejected   prometheus.Counter
	duration   prometheus.Histogram
}

// NewProm creates a Prometheus metrics sink under the given namespace.
func NewProm[E any](namespace string) *Prom[E] {
	return &Prom[E]{
		dispatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "dispatch",
				Name:      "events_total",
				Help:      "Number of dispatched events by terminal result.",
			}, []string{"result"},
		),
		errors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "dispatch",
				Name:      "errors_total",
				Help:      "Number of failed dispatches.",
			},
		),
		rejected: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "dispatch",
				Name:      "rejected_total",
				Help:      "Number of events no target resolved for.",
			},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "dispatch",
				Name:      "duration_seconds",
				Help:      "Dispatch duration.",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}
}

// Register registers the sink's collectors with r. Already-registered
// collectors are tolerated so Register may run twice against the default
// registry.
func (s *Prom[E]) Register(r prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{s.dispatches, s.errors, s.rejected, s.duration} {
		if err := r.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}

// Record implements dispatch.MetricsSink.
func (s *Prom[E]) Record(_ E, o dispatch.Outcome) {
	s.dispatches.WithLabelValues(o.Result.String()).Inc()
	if o.Err != nil {
		s.errors.Inc()
	}
	if o.Rejected {
		s.rejected.Inc()
	}
	s.duration.Observe(o.Elapsed.Seconds())
}

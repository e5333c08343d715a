package elevation

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Request outcomes recorded in profile_requests_total.
const (
	OutcomeOK             = "ok"
	OutcomeNoData         = "no_data"
	OutcomeServiceError   = "service_error"
	OutcomeTransportError = "transport_error"
	OutcomeCanceled       = "canceled"
)

// Metrics instruments profile service calls.
type Metrics struct {
	Requests *prometheus.CounterVec
	Duration prometheus.Histogram
	Samples  prometheus.Histogram
}

// NewMetrics registers the client metrics against reg, defaulting to the global registry when nil.
// Registering twice on the same registry returns the existing collectors.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "profile_requests_total",
		Help: "Elevation profile service calls, labeled by outcome.",
	}, []string{"outcome"})
	if err := reg.Register(requests); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return nil, err
		}
		existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, fmt.Errorf("collector profile_requests_total already registered with incompatible type")
		}
		requests = existing
	}
	duration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "profile_request_duration_seconds",
		Help:    "Elevation profile service latency in seconds.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	}), "profile_request_duration_seconds")
	if err != nil {
		return nil, err
	}
	samples, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "profile_samples",
		Help:    "Number of samples returned per successful profile.",
		Buckets: prometheus.LinearBuckets(0, 50, 6),
	}), "profile_samples")
	if err != nil {
		return nil, err
	}
	return &Metrics{Requests: requests, Duration: duration, Samples: samples}, nil
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return h, nil
}

func (m *Metrics) observe(outcome string, start time.Time, samples int) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(outcome).Inc()
	m.Duration.Observe(time.Since(start).Seconds())
	if outcome == OutcomeOK {
		m.Samples.Observe(float64(samples))
	}
}

package remote

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics counts and times the requests served by a queue handler.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg; a nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fifo_queue",
			Subsystem: "remote",
			Name:      "requests_total",
			Help:      "Number of store requests served, by route and status code.",
		}, []string{"route", "code", "method"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fifo_queue",
			Subsystem: "remote",
			Name:      "request_duration_seconds",
			Help:      "Time spent serving store requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "code", "method"}),
	}

	if reg == nil {
		return m, nil
	}
	var err error
	if m.requests, err = registerOrGet(reg, m.requests); err != nil {
		return nil, err
	}
	if m.duration, err = registerOrGet(reg, m.duration); err != nil {
		return nil, err
	}
	return m, nil
}

func registerOrGet[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (m *Metrics) instrument(route string, next http.HandlerFunc) http.Handler {
	if m == nil {
		return next
	}
	labels := prometheus.Labels{"route": route}
	return promhttp.InstrumentHandlerDuration(m.duration.MustCurryWith(labels),
		promhttp.InstrumentHandlerCounter(m.requests.MustCurryWith(labels), next))
}

package queue

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Operation names used in logs and metric labels
const (
	OperationPut  = "put"
	OperationGet  = "get"
	OperationSize = "size"
)

const (
	labelQueue     = "queue"
	labelOperation = "operation"
	labelOutcome   = "outcome"

	outcomeSuccess   = "success"
	outcomeFull      = "full"
	outcomeEmpty     = "empty"
	outcomeInvalid   = "invalid"
	outcomeTransport = "transport_error"
	outcomeCanceled  = "canceled"
)

// Metrics holds the Prometheus collectors for queue calls.
// A nil *Metrics records nothing.
type Metrics struct {
	calls    *prometheus.CounterVec
	attempts *prometheus.CounterVec
	wait     *prometheus.HistogramVec
}

// NewMetrics creates the queue collectors and registers them with reg.
// Collectors already registered by another Metrics are reused, so several
// queues may share one registry. A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fifo_queue",
			Name:      "calls_total",
			Help:      "Number of completed put and get calls by outcome.",
		}, []string{labelQueue, labelOperation, labelOutcome}),
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fifo_queue",
			Name:      "store_attempts_total",
			Help:      "Number of store primitive invocations made by put and get calls.",
		}, []string{labelQueue, labelOperation}),
		wait: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fifo_queue",
			Name:      "call_duration_seconds",
			Help:      "Time spent in put and get calls, including backoff sleeps.",
			Buckets:   []float64{0.0005, 0.005, 0.02, 0.1, 0.5, 1, 5, 30},
		}, []string{labelQueue, labelOperation, labelOutcome}),
	}

	if reg == nil {
		return m, nil
	}

	var err error
	if m.calls, err = registerOrGet(reg, m.calls); err != nil {
		return nil, err
	}
	if m.attempts, err = registerOrGet(reg, m.attempts); err != nil {
		return nil, err
	}
	if m.wait, err = registerOrGet(reg, m.wait); err != nil {
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

func (m *Metrics) observe(queue, op, outcome string, attempts int, d time.Duration) {
	if m == nil {
		return
	}
	m.calls.WithLabelValues(queue, op, outcome).Inc()
	if attempts > 0 {
		m.attempts.WithLabelValues(queue, op).Add(float64(attempts))
	}
	m.wait.WithLabelValues(queue, op, outcome).Observe(d.Seconds())
}

func outcomeFor(exhausted error) string {
	if errors.Is(exhausted, ErrFull) {
		return outcomeFull
	}
	return outcomeEmpty
}

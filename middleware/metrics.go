package middleware

import (
	"context"
	"errors"
	"strconv"

	"github.com/broady/stripe"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors updated by its Hook.
type Metrics struct {
	requests *prometheus.CounterVec
	retries  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered.
//
// Labels are the method, the path template and an outcome: the final HTTP
// status, or the error kind when no response arrived.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stripe_requests_total",
			Help: "Completed API calls, after retries.",
		}, []string{"method", "path", "outcome"}),
		retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stripe_retries_total",
			Help: "Attempts that failed and were retried.",
		}, []string{"method", "path", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stripe_request_duration_seconds",
			Help:    "Wall time of API calls including retries and backoff.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.retries, m.duration)
	}
	return m
}

// Hook returns the hook that feeds m.
func (m *Metrics) Hook() stripe.Hook {
	return func(_ context.Context, ev stripe.Event) {
		switch ev.Kind {
		case stripe.EventRetry:
			m.retries.WithLabelValues(ev.Method, ev.Path, outcome(ev)).Inc()
		case stripe.EventComplete:
			m.requests.WithLabelValues(ev.Method, ev.Path, outcome(ev)).Inc()
			m.duration.WithLabelValues(ev.Method, ev.Path).Observe(ev.Elapsed.Seconds())
		}
	}
}

// MetricsHook registers a new Metrics with reg and returns its hook.
func MetricsHook(reg prometheus.Registerer) stripe.Hook {
	return NewMetrics(reg).Hook()
}

func outcome(ev stripe.Event) string {
	var e *stripe.Error
	if errors.As(ev.Err, &e) && (e.HTTPStatus == 0 || e.Kind == stripe.KindDecode) {
		return string(e.Kind)
	}
	if ev.Status != 0 {
		return strconv.Itoa(ev.Status)
	}
	if ev.Err != nil {
		return "error"
	}
	return "ok"
}

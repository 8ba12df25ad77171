// Package prometheus provides Prometheus instrumentation for formulary
// services.
package prometheus

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/fwojciec/formulary"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "formulary"

// Explain outcomes.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// Metrics owns every collector and registers them on one registry.
type Metrics struct {
	gatherer prometheus.Gatherer

	explainTotal   *prometheus.CounterVec
	explainLatency prometheus.Histogram
	httpRequests   *prometheus.CounterVec
	httpLatency    *prometheus.HistogramVec
}

// NewMetrics creates the collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	return NewMetricsWith(reg, reg)
}

// NewMetricsWith registers the collectors on reg and serves them from g.
func NewMetricsWith(reg prometheus.Registerer, g prometheus.Gatherer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		gatherer: g,
		explainTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "explain",
			Name:      "requests_total",
			Help:      "Formula explanation requests by outcome",
		}, []string{"outcome"}),
		explainLatency: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "explain",
			Name:      "duration_seconds",
			Help:      "Formula explanation latency in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		httpLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// ObserveRequest records one served HTTP request. Route is the matched
// pattern, not the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(route).Observe(d.Seconds())
}

// Ensure MetricsExplainer implements formulary.Explainer.
var _ formulary.Explainer = (*MetricsExplainer)(nil)

// MetricsExplainer wraps an Explainer with request and latency metrics.
type MetricsExplainer struct {
	next    formulary.Explainer
	metrics *Metrics
}

// NewMetricsExplainer creates a new MetricsExplainer.
func NewMetricsExplainer(next formulary.Explainer, m *Metrics) *MetricsExplainer {
	return &MetricsExplainer{next: next, metrics: m}
}

// Explain delegates to the wrapped explainer and records the outcome.
func (e *MetricsExplainer) Explain(ctx context.Context, formula string) (explanation string, err error) {
	defer func(begin time.Time) {
		e.metrics.explainLatency.Observe(time.Since(begin).Seconds())
		e.metrics.explainTotal.WithLabelValues(outcome(err)).Inc()
	}(time.Now())
	return e.next.Explain(ctx, formula)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case formulary.ErrorCode(err) == formulary.EINVALID:
		return OutcomeInvalid
	default:
		return OutcomeError
	}
}

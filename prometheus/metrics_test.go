package prometheus_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/formulary"
	"github.com/fwojciec/formulary/mock"
	fprom "github.com/fwojciec/formulary/prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsExplainer_Explain(t *testing.T) {
	t.Parallel()

	t.Run("counts requests by outcome", func(t *testing.T) {
		t.Parallel()

		reg := prometheus.NewRegistry()
		m := fprom.NewMetricsWith(reg, reg)
		calls := 0
		inner := &mock.Explainer{
			ExplainFn: func(ctx context.Context, formula string) (string, error) {
				calls++
				switch calls {
				case 1:
					return "ok", nil
				case 2:
					return "", formulary.Errorf(formulary.EINVALID, "formula required")
				default:
					return "", errors.New("boom")
				}
			},
		}
		e := fprom.NewMetricsExplainer(inner, m)

		for range 4 {
			_, _ = e.Explain(context.Background(), "=SUM(A1)")
		}

		expected := `
# HELP formulary_explain_requests_total Formula explanation requests by outcome
# TYPE formulary_explain_requests_total counter
formulary_explain_requests_total{outcome="error"} 2
formulary_explain_requests_total{outcome="invalid"} 1
formulary_explain_requests_total{outcome="ok"} 1
`
		err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "formulary_explain_requests_total")
		require.NoError(t, err)
	})

	t.Run("observes latency for every call", func(t *testing.T) {
		t.Parallel()

		reg := prometheus.NewRegistry()
		m := fprom.NewMetricsWith(reg, reg)
		inner := &mock.Explainer{
			ExplainFn: func(ctx context.Context, formula string) (string, error) {
				return "ok", nil
			},
		}
		e := fprom.NewMetricsExplainer(inner, m)

		_, _ = e.Explain(context.Background(), "=SUM(A1)")
		_, _ = e.Explain(context.Background(), "=SUM(A2)")

		count, err := testutil.GatherAndCount(reg, "formulary_explain_duration_seconds")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("passes the explanation through", func(t *testing.T) {
		t.Parallel()

		inner := &mock.Explainer{
			ExplainFn: func(ctx context.Context, formula string) (string, error) {
				return "It adds.", nil
			},
		}
		e := fprom.NewMetricsExplainer(inner, fprom.NewMetrics())

		got, err := e.Explain(context.Background(), "=SUM(A1)")
		require.NoError(t, err)
		assert.Equal(t, "It adds.", got)
	})
}

func TestMetrics_ObserveRequest(t *testing.T) {
	t.Parallel()

	t.Run("labels requests by route pattern", func(t *testing.T) {
		t.Parallel()

		reg := prometheus.NewRegistry()
		m := fprom.NewMetricsWith(reg, reg)

		m.ObserveRequest(http.MethodGet, "/api/functions/:name", http.StatusOK, 5*time.Millisecond)
		m.ObserveRequest(http.MethodGet, "/api/functions/:name", http.StatusNotFound, time.Millisecond)
		m.ObserveRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

		expected := `
# HELP formulary_http_requests_total HTTP requests by method, route and status
# TYPE formulary_http_requests_total counter
formulary_http_requests_total{method="GET",route="/api/functions/:name",status="200"} 1
formulary_http_requests_total{method="GET",route="/api/functions/:name",status="404"} 1
formulary_http_requests_total{method="GET",route="unmatched",status="404"} 1
`
		err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "formulary_http_requests_total")
		require.NoError(t, err)
	})
}

func TestMetrics_Handler(t *testing.T) {
	t.Parallel()

	t.Run("serves the exposition format", func(t *testing.T) {
		t.Parallel()

		m := fprom.NewMetrics()
		m.ObserveRequest(http.MethodGet, "/api/categories", http.StatusOK, time.Millisecond)

		rec := httptest.NewRecorder()
		m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `formulary_http_requests_total{method="GET",route="/api/categories",status="200"} 1`)
	})
}

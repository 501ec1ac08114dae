package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsHandlerExposesPrometheusMetrics(t *testing.T) {
	metrics := NewMetrics()
	metrics.Tasks().Track("posting:audit").End(nil)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)

	metrics.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}

	body := rr.Body.String()
	if !strings.Contains(body, "jobboard_tasks_total") {
		t.Fatalf("expected body to contain jobboard_tasks_total, got: %s", body)
	}
}

func TestMetricsMiddlewareRecordsRequest(t *testing.T) {
	metrics := NewMetrics()

	handler := metrics.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	routeCtx := chi.NewRouteContext()
	routeCtx.RoutePatterns = append(routeCtx.RoutePatterns, "/jobs")

	req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
	req = req.WithContext(ctx)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected status %d, got %d", http.StatusTeapot, rr.Code)
	}

	metricsRR := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(metricsRR, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	metricsBody := metricsRR.Body.String()
	if !strings.Contains(metricsBody, "jobboard_http_requests_total{code=\"418\",route=\"/jobs\"} 1") {
		t.Fatalf("expected metrics to record request, got: %s", metricsBody)
	}
	if !strings.Contains(metricsBody, "jobboard_http_request_duration_seconds_bucket{route=\"/jobs\"") {
		t.Fatalf("expected duration histogram to be present, got: %s", metricsBody)
	}
}

func TestTrackerCountsFailures(t *testing.T) {
	registry := prometheus.NewRegistry()
	tasks := NewTaskMetrics(registry)

	boom := errors.New("boom")
	if err := tasks.Track("posting:audit").End(boom); !errors.Is(err, boom) {
		t.Fatalf("expected error to pass through, got %v", err)
	}
	_ = tasks.Track("posting:audit").End(nil)

	if got := testutil.ToFloat64(tasks.failures.WithLabelValues("posting:audit")); got != 1 {
		t.Fatalf("expected 1 failure, got %v", got)
	}
	if got := testutil.ToFloat64(tasks.runs.WithLabelValues("posting:audit", "success")); got != 1 {
		t.Fatalf("expected 1 success, got %v", got)
	}
}

func TestNilTrackerIsSafe(t *testing.T) {
	var tasks *TaskMetrics
	if err := tasks.Track("x").End(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

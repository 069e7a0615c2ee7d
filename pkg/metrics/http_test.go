package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestHTTPMetricsMiddlewareRecordsRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	counter := findMetricFamily(mfs, "http_requests_total")
	if counter == nil {
		t.Fatalf("http_requests_total not registered")
	}
	if len(counter.GetMetric()) != 1 {
		t.Fatalf("expected one labeled series, got %d", len(counter.GetMetric()))
	}
	metric := counter.GetMetric()[0]
	if got := metric.GetCounter().GetValue(); got != 1 {
		t.Fatalf("expected counter 1, got %f", got)
	}
	if !hasLabel(metric.GetLabel(), "status", "418") {
		t.Fatalf("expected status label 418, got %v", metric.GetLabel())
	}

	histogram := findMetricFamily(mfs, "http_request_duration_seconds")
	if histogram == nil {
		t.Fatalf("http_request_duration_seconds not registered")
	}
}

func TestNilRegistererIsSafe(t *testing.T) {
	m := NewHTTPMetrics(nil)
	// must not panic
	m.Observe(http.MethodGet, "/x", http.StatusOK, 0)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func hasLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}

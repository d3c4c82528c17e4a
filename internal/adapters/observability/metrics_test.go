package observability_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"upahan/internal/adapters/observability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record samples so counters are non-zero
	observability.ObserveHTTP("/test", "GET", 200, 12*time.Millisecond)
	observability.ObserveReport("ok", 3*time.Millisecond)
	observability.ObserveDataQuality("bookings", "tenantId")

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	if !strings.Contains(out, "upahan_http_requests_total") {
		t.Fatalf("expected upahan_http_requests_total in output")
	}
	if !strings.Contains(out, "upahan_analytics_reports_total") {
		t.Fatalf("expected upahan_analytics_reports_total in output")
	}
	if !strings.Contains(out, "upahan_data_quality_events_total") {
		t.Fatalf("expected upahan_data_quality_events_total in output")
	}
}

package observability

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRegistryExposesMetrics(t *testing.T) {
	reg := InitRegistry()

	ObserveHTTP("/v1/uploads", "POST", 200, 120*time.Millisecond)
	ObserveBatch("committed")
	ObserveCache("redis", "hit")
	RowsProcessed.Inc()
	RowsSkipped.Inc()
	BatchDuration.Observe(1.5)

	rec := httptest.NewRecorder()
	MetricsHandler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	for _, name := range []string{
		"wandr_http_requests_total",
		"wandr_http_request_duration_seconds",
		"wandr_ingest_rows_processed_total",
		"wandr_ingest_rows_skipped_total",
		"wandr_ingest_batches_total",
		"wandr_ingest_batch_duration_seconds",
		"wandr_cache_events_total",
	} {
		if !strings.Contains(body, name) {
			t.Errorf("metric %s missing from exposition", name)
		}
	}
	if !strings.Contains(body, `outcome="committed"`) {
		t.Errorf("batch outcome label missing:\n%s", body)
	}
}

package metrics_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/logbook/internal/metrics"
	"github.com/agentstation/logbook/pkg/catalog"
	"github.com/agentstation/logbook/pkg/logging"
)

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestAttachRecordsLoads(t *testing.T) {
	m := metrics.New()
	c, err := catalog.New("logs",
		catalog.WithFS(fstest.MapFS{
			"app.log": {Data: []byte(
				"2025-05-07 10:00:00\tINFO\tAuth\tok\n" +
					"garbage\n" +
					"2025-05-07 10:00:01\tINFO\tAuth\tok again\n",
			)},
		}),
		catalog.WithLogger(logging.NewNopLogger()),
	)
	require.NoError(t, err)
	m.Attach(c)

	_, err = c.Load(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Load(ctx)
	require.Error(t, err)

	out := scrape(t, m)
	assert.Contains(t, out, "logbook_catalog_records 2")
	assert.Contains(t, out, "logbook_catalog_generation 1")
	assert.Contains(t, out, `logbook_catalog_loads_total{status="ok"} 1`)
	assert.Contains(t, out, `logbook_catalog_loads_total{status="error"} 1`)
	assert.Contains(t, out, "logbook_catalog_malformed_lines_total 1")
	assert.Contains(t, out, "logbook_catalog_unreadable_files_total 0")
	assert.Contains(t, out, "logbook_catalog_load_duration_seconds_count 1")
	assert.Contains(t, out, "go_goroutines")
}

func TestObserveRequest(t *testing.T) {
	m := metrics.New()
	m.ObserveRequest(http.MethodGet, "/api/v1/logs", http.StatusOK, 20*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/v1/logs", http.StatusBadRequest, time.Millisecond)

	out := scrape(t, m)
	assert.Contains(t, out, `logbook_http_requests_total{method="GET",route="/api/v1/logs",status="200"} 1`)
	assert.Contains(t, out, `logbook_http_requests_total{method="GET",route="/api/v1/logs",status="400"} 1`)
	assert.Contains(t, out, `logbook_http_request_duration_seconds_count{method="GET",route="/api/v1/logs"} 2`)
}

func TestInstancesAreIndependent(t *testing.T) {
	a, b := metrics.New(), metrics.New()
	a.CatalogRecords.Set(5)
	assert.Contains(t, scrape(t, a), "logbook_catalog_records 5")
	assert.Contains(t, scrape(t, b), "logbook_catalog_records 0")
}

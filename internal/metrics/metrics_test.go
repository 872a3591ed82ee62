package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/jewelry-pricing/internal/model"
)

func TestSyncFinished(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewPedanticRegistry()
	m := NewSyncMetrics(reg)

	m.SyncFinished(model.EntityTypeMetal, "partial", 3, 1, 120*time.Millisecond)
	m.SyncFinished(model.EntityTypeMetal, "ok", 2, 0, 40*time.Millisecond)
	m.SyncFinished("platinum-ish", "invalid", 0, 0, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("metal", "partial")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("metal", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("unknown", "invalid")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.products.WithLabelValues("metal", resultSynced)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.products.WithLabelValues("metal", resultFailed)))

	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
}

func TestHTTPMiddleware(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/v1/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Handle("/metrics", Handler(reg))

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products/"+id, nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/api/v1/products/{id}", "404")))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `jewelry_http_requests_total{method="GET",route="/api/v1/products/{id}",status="404"} 2`))
}

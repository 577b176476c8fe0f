package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMiddleware(t *testing.T) {
	provider, err := NewProvider()
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	r := chi.NewRouter()
	r.Use(HTTPMiddleware(provider.MeterProvider(), "horas_test"))
	r.Get("/api/admin/principals/{publicID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("1.0.0"))
	})

	for _, path := range []string{"/api/admin/principals/a", "/api/admin/principals/b", "/api/version"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	output := scrape(t, provider)

	assertMetricLine(t, output, `horas_test_http_requests_total`,
		`method="GET".*path="/api/admin/principals/\{publicID\}".*status_code="204"`, `2`)
	assertMetricLine(t, output, `horas_test_http_requests_total`,
		`method="GET".*path="/api/version".*status_code="200"`, `1`)
	assert.NotContains(t, output, `path="/api/admin/principals/a"`)
}

func TestRoutePattern_NoRouteContext(t *testing.T) {
	assert.Equal(t, "unknown", routePattern(httptest.NewRequest(http.MethodGet, "/", nil)))
}

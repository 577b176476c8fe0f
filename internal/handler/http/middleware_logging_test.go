package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanoneto/registro-horas/internal/logger"
)

// serveLogged runs a request through withTraceID and withLogging, the way
// the router chains them, and returns the decoded access log line.
func serveLogged(t *testing.T, req *http.Request, next http.HandlerFunc) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	h := &Handler{logger: logger.New(&buf, "test", "info")}

	rr := httptest.NewRecorder()
	h.withTraceID(h.withLogging(next)).ServeHTTP(rr, req)

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line), "log output: %s", buf.String())
	return line
}

func TestWithLogging(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		target     string
		status     int
		body       string
		wantPath   string
		wantStatus float64
		wantSize   float64
	}{
		{name: "me 200", method: http.MethodGet, target: "/api/auth/me", status: http.StatusOK, body: `{"username":"ana"}`, wantPath: "/api/auth/me", wantStatus: 200, wantSize: 18},
		{name: "logout 204", method: http.MethodPost, target: "/api/auth/logout", status: http.StatusNoContent, wantPath: "/api/auth/logout", wantStatus: 204},
		{name: "login 401", method: http.MethodPost, target: "/api/auth/login", status: http.StatusUnauthorized, body: `{"error":"bad"}`, wantPath: "/api/auth/login", wantStatus: 401, wantSize: 15},
		{name: "query string is dropped", method: http.MethodGet, target: "/api/version?token=secret", status: http.StatusOK, wantPath: "/api/version", wantStatus: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			line := serveLogged(t, req, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				if tt.body != "" {
					_, _ = w.Write([]byte(tt.body))
				}
			})

			assert.Equal(t, tt.method, line["method"])
			assert.Equal(t, tt.wantPath, line["path"])
			assert.Equal(t, tt.wantStatus, line["status"])
			assert.Equal(t, tt.wantSize, line["size"])
			assert.Contains(t, line, "duration")
			assert.Contains(t, line, "trace_id")
			assert.NotContains(t, line, "uri")
		})
	}
}

func TestWithLogging_NoStatusWrittenReportsOK(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	line := serveLogged(t, req, func(w http.ResponseWriter, r *http.Request) {})

	assert.Equal(t, float64(http.StatusOK), line["status"])
}

func TestWithLogging_AuthorizationHeaderNotLogged(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: logger.New(&buf, "test", "info")}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer very-secret-token")
	h.withTraceID(h.withLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))).ServeHTTP(httptest.NewRecorder(), req)

	assert.NotContains(t, buf.String(), "very-secret-token")
}

func TestWithLogging_PanicPropagates(t *testing.T) {
	h := &Handler{logger: logger.Nop()}
	mw := h.withLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	assert.Panics(t, func() {
		mw.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

package http

import (
	"net/http"
	"time"

	"github.com/sanoneto/registro-horas/internal/logger"
)

// withLogging writes one access log line per request. Only the path is
// logged; query strings and headers may carry credentials.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		start := time.Now()

		rec := newStatusRecorder(w)
		next.ServeHTTP(rec, r)

		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.Status()).
			Dur("duration", time.Since(start)).
			Int("size", rec.size).
			Send()
	})
}

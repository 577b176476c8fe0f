package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sanoneto/registro-horas/internal/metrics"
	"github.com/sanoneto/registro-horas/models"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.RealIP)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	if h.metricsProvider != nil {
		router.Use(metrics.HTTPMiddleware(h.metricsProvider.MeterProvider(), h.metricsNamespace))
		router.Method(http.MethodGet, "/metrics", h.metricsProvider.Handler())
	}

	router.Route("/api", func(r chi.Router) {
		r.Use(withGZip)

		r.Get("/version", h.getServerVersion)

		// every other route resolves the bearer token first; anonymous
		// requests pass through
		r.Group(func(r chi.Router) {
			r.Use(h.authenticate)

			r.With(h.rateLimit).Post("/auth/login", h.login)
			r.With(h.rateLimit).Post("/auth/register", h.register)

			r.Group(func(r chi.Router) {
				r.Use(requireAuthenticated)

				r.Post("/auth/logout", h.logout)
				r.Post("/auth/logout-all", h.logoutAll)
				r.Get("/auth/me", h.me)
			})

			r.Group(func(r chi.Router) {
				r.Use(requireAuthenticated)
				r.Use(requireRole(models.RoleAdmin))

				r.Post("/admin/tokens/revoke", h.revokeToken)
				r.Delete("/admin/principals/{publicID}", h.deletePrincipal)
			})
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

package http

import (
	"context"

	"github.com/sanoneto/registro-horas/internal/logger"
	"github.com/sanoneto/registro-horas/internal/metrics"
	"github.com/sanoneto/registro-horas/internal/service"
)

type Handler struct {
	services *service.Services

	// limiter throttles login and registration per client IP. Nil disables
	// rate limiting.
	limiter *ipRateLimiter

	// metricsProvider serves /metrics and feeds the HTTP metrics middleware.
	// Nil disables both.
	metricsProvider  *metrics.Provider
	metricsNamespace string

	logger *logger.Logger
}

// Option configures optional parts of a [Handler].
type Option func(*Handler)

// WithRateLimit enables per-IP rate limiting of the credential endpoints.
// Stale per-IP limiters are dropped in the background until ctx is done.
func WithRateLimit(ctx context.Context, rps float64, burst int) Option {
	return func(h *Handler) {
		h.limiter = newIPRateLimiter(rps, burst)
		go h.limiter.cleanupStale(ctx, rateLimiterCleanupInterval, rateLimiterIdleTTL)
	}
}

// WithMetrics exposes provider on /metrics and records HTTP request metrics.
func WithMetrics(provider *metrics.Provider, namespace string) Option {
	return func(h *Handler) {
		h.metricsProvider = provider
		h.metricsNamespace = namespace
	}
}

func NewHandler(services *service.Services, logger *logger.Logger, opts ...Option) *Handler {
	h := &Handler{
		services: services,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(h)
	}

	logger.Info().Bool("rate_limit", h.limiter != nil).Bool("metrics", h.metricsProvider != nil).Msg("http handler created")
	return h
}

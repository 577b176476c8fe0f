package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sanoneto/registro-horas/internal/metrics"
	"github.com/sanoneto/registro-horas/models"
)

const (
	metricsDomainAuth  = "auth"
	metricsDomainAdmin = "admin"
)

func record(ctx context.Context, m metrics.BusinessMetrics, domain, operation string, start time.Time, err error) {
	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
	}

	m.RecordOperation(ctx, domain, operation, status)
	m.RecordDuration(ctx, domain, operation, time.Since(start), status)
}

// authServiceWithMetrics decorates AuthService with business metrics.
type authServiceWithMetrics struct {
	next    AuthService
	metrics metrics.BusinessMetrics
}

func NewAuthServiceWithMetrics(next AuthService, m metrics.BusinessMetrics) AuthService {
	return &authServiceWithMetrics{next: next, metrics: m}
}

func (s *authServiceWithMetrics) Register(ctx context.Context, req models.RegisterRequest) (string, error) {
	start := time.Now()
	token, err := s.next.Register(ctx, req)
	record(ctx, s.metrics, metricsDomainAuth, "register", start, err)
	return token, err
}

func (s *authServiceWithMetrics) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	start := time.Now()
	token, err := s.next.Login(ctx, req)
	record(ctx, s.metrics, metricsDomainAuth, "login", start, err)
	return token, err
}

func (s *authServiceWithMetrics) Logout(ctx context.Context, identity models.Identity) error {
	start := time.Now()
	err := s.next.Logout(ctx, identity)
	record(ctx, s.metrics, metricsDomainAuth, "logout", start, err)
	return err
}

func (s *authServiceWithMetrics) LogoutAll(ctx context.Context, identity models.Identity) (int, error) {
	start := time.Now()
	n, err := s.next.LogoutAll(ctx, identity)
	record(ctx, s.metrics, metricsDomainAuth, "logout_all", start, err)
	return n, err
}

func (s *authServiceWithMetrics) Authenticate(ctx context.Context, rawToken string) (models.Identity, error) {
	start := time.Now()
	identity, err := s.next.Authenticate(ctx, rawToken)
	record(ctx, s.metrics, metricsDomainAuth, "authenticate", start, err)
	return identity, err
}

// adminServiceWithMetrics decorates AdminService with business metrics.
type adminServiceWithMetrics struct {
	next    AdminService
	metrics metrics.BusinessMetrics
}

func NewAdminServiceWithMetrics(next AdminService, m metrics.BusinessMetrics) AdminService {
	return &adminServiceWithMetrics{next: next, metrics: m}
}

func (s *adminServiceWithMetrics) RevokeToken(ctx context.Context, token string) error {
	start := time.Now()
	err := s.next.RevokeToken(ctx, token)
	record(ctx, s.metrics, metricsDomainAdmin, "revoke_token", start, err)
	return err
}

func (s *adminServiceWithMetrics) DeletePrincipal(ctx context.Context, publicID uuid.UUID) error {
	start := time.Now()
	err := s.next.DeletePrincipal(ctx, publicID)
	record(ctx, s.metrics, metricsDomainAdmin, "delete_principal", start, err)
	return err
}

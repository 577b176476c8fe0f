package service

import (
	"fmt"

	"github.com/sanoneto/registro-horas/internal/config"
	"github.com/sanoneto/registro-horas/internal/logger"
	"github.com/sanoneto/registro-horas/internal/metrics"
	"github.com/sanoneto/registro-horas/internal/store"
	"github.com/sanoneto/registro-horas/internal/token"
)

type Services struct {
	AuthService    AuthService
	AdminService   AdminService
	AppInfoService AppInfoService
}

// NewServices builds the services on top of storages. Operations are
// recorded to businessMetrics; pass metrics.NewNoOpBusinessMetrics() when
// metrics are disabled.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, businessMetrics metrics.BusinessMetrics, logger *logger.Logger) (*Services, error) {
	codec, err := token.NewCodec(token.Config{Secret: cfg.App.TokenSignKey})
	if err != nil {
		return nil, fmt.Errorf("error creating token codec: %w", err)
	}

	verifier, err := NewCredentialVerifier(storages.PrincipalRepository, cfg.App.BcryptCost)
	if err != nil {
		return nil, err
	}

	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	issuer := NewTokenIssuer(storages.TokenRepository, codec, cfg.App.TokenDuration)
	auth := NewAuthService(
		storages.PrincipalRepository,
		storages.TokenRepository,
		verifier,
		issuer,
		codec,
		cfg.App.BcryptCost,
		logger,
	)
	admin := NewAdminService(storages.PrincipalRepository, storages.TokenRepository, logger)

	return &Services{
		AuthService:    NewAuthServiceWithMetrics(auth, businessMetrics),
		AdminService:   NewAdminServiceWithMetrics(admin, businessMetrics),
		AppInfoService: appInfo,
	}, nil
}

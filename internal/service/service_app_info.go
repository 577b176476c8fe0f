package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/sanoneto/registro-horas/internal/config"
	"github.com/sanoneto/registro-horas/internal/logger"
)

type appInfoService struct {
	appVersion string

	logger *logger.Logger
}

// NewAppInfoService serves the version /api/version answers with. The value
// is written as a plain-text body, so it is trimmed and must be a single
// printable line.
func NewAppInfoService(cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	version := strings.TrimSpace(cfg.Version)
	if version == "" {
		return nil, ErrVersionIsNotSpecified
	}
	if strings.IndexFunc(version, func(r rune) bool { return !unicode.IsPrint(r) }) >= 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVersion, version)
	}

	logger.Debug().Str("version", version).Msg("serving app version")
	return &appInfoService{
		appVersion: version,
		logger:     logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}

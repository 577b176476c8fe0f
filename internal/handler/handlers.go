package handler

import (
	"github.com/sanoneto/registro-horas/internal/config"
	"github.com/sanoneto/registro-horas/internal/handler/http"
	"github.com/sanoneto/registro-horas/internal/logger"
	"github.com/sanoneto/registro-horas/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger, opts ...http.Option) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(services, logger, opts...),
	}, nil
}

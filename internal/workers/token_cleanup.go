// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/sanoneto/registro-horas/internal/config"
	"github.com/sanoneto/registro-horas/internal/logger"
	"github.com/sanoneto/registro-horas/internal/store"
)

type tokenCleanupWorker struct {
	tokens    store.TokenRepository
	interval  time.Duration
	retention time.Duration
	now       func() time.Time

	logger *logger.Logger
}

// NewTokenCleanupWorker returns a worker that periodically deletes tokens
// whose expiry lies further in the past than cfg.TokenRetention. Expired
// tokens are already rejected by the authenticator; the job only bounds
// table growth.
func NewTokenCleanupWorker(tokens store.TokenRepository, cfg config.Workers, logger *logger.Logger) Worker {
	return &tokenCleanupWorker{
		tokens:    tokens,
		interval:  cfg.TokenCleanupInterval,
		retention: cfg.TokenRetention,
		now:       time.Now,
		logger:    logger,
	}
}

func (w *tokenCleanupWorker) Run(ctx context.Context) {
	w.logger.Info().
		Dur("interval", w.interval).
		Dur("retention", w.retention).
		Msg("starting token cleanup worker")

	w.cleanup(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("stopping token cleanup worker")
			return
		case <-ticker.C:
			w.cleanup(ctx)
		}
	}
}

func (w *tokenCleanupWorker) cleanup(ctx context.Context) {
	before := w.now().Add(-w.retention)

	deleted, err := w.tokens.DeleteExpired(ctx, before)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		w.logger.Err(err).Str("func", "tokenCleanupWorker.cleanup").Time("before", before).Msg("error deleting expired tokens")
		return
	}

	if deleted > 0 {
		w.logger.Info().Int64("deleted", deleted).Time("before", before).Msg("expired tokens deleted")
	}
}

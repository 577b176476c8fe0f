package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sanoneto/registro-horas/internal/logger"
	"github.com/sanoneto/registro-horas/internal/store"
)

type adminService struct {
	principals store.PrincipalRepository
	tokens     store.TokenRepository

	logger *logger.Logger
}

func NewAdminService(principals store.PrincipalRepository, tokens store.TokenRepository, logger *logger.Logger) AdminService {
	return &adminService{
		principals: principals,
		tokens:     tokens,
		logger:     logger,
	}
}

func (s *adminService) RevokeToken(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidDataProvided
	}

	if err := s.tokens.Revoke(ctx, token); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*adminService.RevokeToken").Msg("error revoking token")
		return fmt.Errorf("error revoking token: %w", err)
	}

	return nil
}

// DeletePrincipal revokes the principal's tokens before deleting it so that
// cached token records are evicted as well; the rows themselves go with the
// principal by cascade.
func (s *adminService) DeletePrincipal(ctx context.Context, publicID uuid.UUID) error {
	log := logger.FromContext(ctx)

	principal, err := s.principals.FindPrincipalByPublicID(ctx, publicID)
	if err != nil {
		return fmt.Errorf("principal lookup failed: %w", err)
	}

	if _, err = s.tokens.RevokeAllForPrincipal(ctx, principal.ID); err != nil {
		log.Err(err).Str("func", "*adminService.DeletePrincipal").Msg("error revoking tokens of deleted principal")
		return fmt.Errorf("error revoking tokens: %w", err)
	}

	if err = s.principals.DeletePrincipal(ctx, publicID); err != nil {
		log.Err(err).Str("func", "*adminService.DeletePrincipal").Msg("error deleting principal")
		return fmt.Errorf("error deleting principal: %w", err)
	}

	log.Info().Str("public_id", publicID.String()).Msg("principal deleted")
	return nil
}

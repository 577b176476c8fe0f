package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sanoneto/registro-horas/internal/logger"
	"github.com/sanoneto/registro-horas/internal/store"
	"github.com/sanoneto/registro-horas/internal/token"
	"github.com/sanoneto/registro-horas/internal/utils"
	"github.com/sanoneto/registro-horas/models"
)

// tokenIssuer implements the reuse policy: repeated logins inside one token
// lifetime get the same token back.
//
// The lookup and the insert are not atomic. Two concurrent logins of the same
// principal may both mint, which leaves two active tokens; both are valid and
// the next login reuses the newer one.
type tokenIssuer struct {
	tokens store.TokenRepository
	codec  *token.Codec
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(tokens store.TokenRepository, codec *token.Codec, ttl time.Duration) TokenIssuer {
	return &tokenIssuer{
		tokens: tokens,
		codec:  codec,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (i *tokenIssuer) IssueOrReuse(ctx context.Context, principal models.Principal) (string, error) {
	log := logger.FromContext(ctx)

	existing, err := i.tokens.FindLatestActiveForPrincipal(ctx, principal.ID, i.now())
	if err == nil {
		log.Debug().Str("token_id", existing.PublicID.String()).Msg("reusing active token")
		return existing.Token, nil
	}
	if !errors.Is(err, store.ErrTokenNotFound) {
		log.Err(err).Str("func", "*tokenIssuer.IssueOrReuse").Msg("active token lookup failed")
		return "", fmt.Errorf("active token lookup failed: %w", err)
	}

	return i.Issue(ctx, principal)
}

func (i *tokenIssuer) Issue(ctx context.Context, principal models.Principal) (string, error) {
	log := logger.FromContext(ctx)

	claims := token.NewClaims(principal.Username, i.now(), i.ttl)
	signed, err := i.codec.Sign(claims)
	if err != nil {
		return "", err
	}

	saved, err := i.tokens.SaveToken(ctx, models.Token{
		PublicID:  utils.Generate(),
		Token:     signed,
		IssuedAt:  claims.IssuedAt(),
		ExpiresAt: claims.ExpiresAt(),
	}, principal.Username)
	if err != nil {
		log.Err(err).Str("func", "*tokenIssuer.Issue").Msg("error saving token")
		return "", fmt.Errorf("error saving token: %w", err)
	}

	log.Debug().Str("token_id", saved.PublicID.String()).Time("expires_at", saved.ExpiresAt).Msg("token issued")
	return signed, nil
}

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sanoneto/registro-horas/internal/logger"
	"github.com/sanoneto/registro-horas/internal/utils"
	"github.com/sanoneto/registro-horas/models"
)

const (
	tokenCacheKeyPrefix       = "horas:token:"
	tokenRevokedKeyPrefix     = "horas:token:revoked:"
	principalRevokedKeyPrefix = "horas:principal:revoked:"
)

// cachedTokenRepository is a read-through Redis cache in front of a
// [TokenRepository] for FindByTokenString, the lookup performed on every
// authenticated request.
//
// Only active records are cached, with a TTL that ends at the token's expiry.
// Revocation writes a tombstone that outlives any cached record before the
// database is touched; while a tombstone exists the cache is bypassed. A
// failed tombstone write aborts the revocation. Revoking every token of a
// principal writes a per-principal marker holding the revocation time, and
// cached records issued at or before it are bypassed too. Redis read
// failures fall back to the wrapped repository.
type cachedTokenRepository struct {
	TokenRepository
	redis     *redis.Client
	tombstone time.Duration
	now       func() time.Time
	logger    *logger.Logger
}

type cachedToken struct {
	ID          int64     `json:"id"`
	PublicID    uuid.UUID `json:"public_id"`
	Token       string    `json:"token"`
	PrincipalID int64     `json:"principal_id"`
	IssuedAt    time.Time `json:"issued_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// NewCachedTokenRepository wraps repo with a Redis cache. maxTTL must be at
// least the token lifetime; it bounds how long revocation tombstones live.
func NewCachedTokenRepository(repo TokenRepository, client *redis.Client, maxTTL time.Duration, logger *logger.Logger) TokenRepository {
	logger.Debug().Msg("creating cached token repository")
	return &cachedTokenRepository{
		TokenRepository: repo,
		redis:           client,
		tombstone:       maxTTL,
		now:             time.Now,
		logger:          logger,
	}
}

func cacheKey(token string) string {
	return tokenCacheKeyPrefix + utils.Fingerprint(token)
}

func revokedKey(token string) string {
	return tokenRevokedKeyPrefix + utils.Fingerprint(token)
}

func principalRevokedKey(principalID int64) string {
	return principalRevokedKeyPrefix + strconv.FormatInt(principalID, 10)
}

func (r *cachedTokenRepository) FindByTokenString(ctx context.Context, token string) (models.Token, error) {
	log := logger.FromContext(ctx)

	revoked, err := r.redis.Exists(ctx, revokedKey(token)).Result()
	if err != nil {
		log.Warn().Err(err).Str("func", "*cachedTokenRepository.FindByTokenString").Msg("token cache unavailable")
		return r.TokenRepository.FindByTokenString(ctx, token)
	}
	if revoked > 0 {
		return r.TokenRepository.FindByTokenString(ctx, token)
	}

	data, err := r.redis.Get(ctx, cacheKey(token)).Bytes()
	switch {
	case err == nil:
		var cached cachedToken
		if err = json.Unmarshal(data, &cached); err == nil {
			if r.revokedWithPrincipal(ctx, cached) {
				return r.TokenRepository.FindByTokenString(ctx, token)
			}
			return cached.toModel(), nil
		}
		log.Warn().Err(err).Str("func", "*cachedTokenRepository.FindByTokenString").Msg("dropping undecodable cache entry")
		r.redis.Del(ctx, cacheKey(token))
	case !errors.Is(err, redis.Nil):
		log.Warn().Err(err).Str("func", "*cachedTokenRepository.FindByTokenString").Msg("token cache unavailable")
		return r.TokenRepository.FindByTokenString(ctx, token)
	}

	found, err := r.TokenRepository.FindByTokenString(ctx, token)
	if err != nil {
		return models.Token{}, err
	}

	r.store(ctx, found)
	return found, nil
}

// revokedWithPrincipal reports whether a cached record must not be trusted
// because its principal had every token revoked after it was issued. An
// unreadable marker counts as revoked.
func (r *cachedTokenRepository) revokedWithPrincipal(ctx context.Context, cached cachedToken) bool {
	revokedAt, err := r.redis.Get(ctx, principalRevokedKey(cached.PrincipalID)).Int64()
	switch {
	case errors.Is(err, redis.Nil):
		return false
	case err != nil:
		logger.FromContext(ctx).Warn().Err(err).Str("func", "*cachedTokenRepository.revokedWithPrincipal").Msg("token cache unavailable")
		return true
	}

	return cached.IssuedAt.UnixMilli() <= revokedAt
}

func (r *cachedTokenRepository) store(ctx context.Context, t models.Token) {
	ttl := t.ExpiresAt.Sub(r.now())
	if t.Revoked || ttl <= 0 {
		return
	}

	data, err := json.Marshal(fromModel(t))
	if err != nil {
		return
	}

	if err = r.redis.Set(ctx, cacheKey(t.Token), data, ttl).Err(); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "*cachedTokenRepository.store").Msg("error caching token")
	}
}

// Revoke tombstones the cache entry, then revokes in the wrapped repository.
// When the tombstone cannot be written the database is left untouched and
// the error is returned.
func (r *cachedTokenRepository) Revoke(ctx context.Context, token string) error {
	if err := r.evict(ctx, token); err != nil {
		return err
	}

	return r.TokenRepository.Revoke(ctx, token)
}

// RevokeAllForPrincipal marks the principal as revoked in the cache before
// revoking in the wrapped repository. Per-token tombstones written afterwards
// are best effort: the principal marker already covers every cached record.
func (r *cachedTokenRepository) RevokeAllForPrincipal(ctx context.Context, principalID int64) ([]string, error) {
	err := r.redis.Set(ctx, principalRevokedKey(principalID), r.now().UnixMilli(), r.tombstone).Err()
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*cachedTokenRepository.RevokeAllForPrincipal").Msg("error marking principal as revoked in cache")
		return nil, fmt.Errorf("error marking principal as revoked in cache: %w", err)
	}

	revoked, err := r.TokenRepository.RevokeAllForPrincipal(ctx, principalID)
	if err != nil {
		return nil, err
	}

	if err = r.evict(ctx, revoked...); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "*cachedTokenRepository.RevokeAllForPrincipal").Msg("per-token tombstones not written")
	}

	return revoked, nil
}

func (r *cachedTokenRepository) evict(ctx context.Context, tokens ...string) error {
	if len(tokens) == 0 {
		return nil
	}

	_, err := r.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, token := range tokens {
			pipe.Set(ctx, revokedKey(token), 1, r.tombstone)
			pipe.Del(ctx, cacheKey(token))
		}
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*cachedTokenRepository.evict").Msg("error evicting revoked tokens from cache")
		return fmt.Errorf("error evicting revoked tokens from cache: %w", err)
	}

	return nil
}

func fromModel(t models.Token) cachedToken {
	return cachedToken{
		ID:          t.ID,
		PublicID:    t.PublicID,
		Token:       t.Token,
		PrincipalID: t.PrincipalID,
		IssuedAt:    t.IssuedAt,
		ExpiresAt:   t.ExpiresAt,
	}
}

func (c cachedToken) toModel() models.Token {
	return models.Token{
		ID:          c.ID,
		PublicID:    c.PublicID,
		Token:       c.Token,
		PrincipalID: c.PrincipalID,
		IssuedAt:    c.IssuedAt,
		ExpiresAt:   c.ExpiresAt,
	}
}

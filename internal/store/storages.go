package store

import (
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sanoneto/registro-horas/internal/logger"
)

// Storages groups the repositories used by the service layer.
type Storages struct {
	PrincipalRepository PrincipalRepository
	TokenRepository     TokenRepository
}

// NewStorages builds the repositories on top of db. When rdb is non-nil the
// token repository is fronted by the Redis cache, with tombstones living for
// tokenTTL.
func NewStorages(db *DB, rdb *redis.Client, tokenTTL time.Duration, log *logger.Logger) *Storages {
	tokens := NewTokenRepository(db, log)
	if rdb != nil {
		tokens = NewCachedTokenRepository(tokens, rdb, tokenTTL, log)
	}

	return &Storages{
		PrincipalRepository: NewPrincipalRepository(db, log),
		TokenRepository:     tokens,
	}
}

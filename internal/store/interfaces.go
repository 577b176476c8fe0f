package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sanoneto/registro-horas/models"
)

// PrincipalRepository persists principals.
type PrincipalRepository interface {
	// CreatePrincipal inserts p and returns it with server-assigned fields.
	// Returns ErrUsernameTaken when the username is already registered.
	CreatePrincipal(ctx context.Context, p models.Principal) (models.Principal, error)
	// FindPrincipalByUsername returns ErrPrincipalNotFound when absent.
	FindPrincipalByUsername(ctx context.Context, username string) (models.Principal, error)
	// FindPrincipalByPublicID returns ErrPrincipalNotFound when absent.
	FindPrincipalByPublicID(ctx context.Context, publicID uuid.UUID) (models.Principal, error)
	// DeletePrincipal removes the principal and, by cascade, its tokens.
	// Returns ErrPrincipalNotFound when nothing was deleted.
	DeletePrincipal(ctx context.Context, publicID uuid.UUID) error
}

// TokenRepository persists issued tokens.
type TokenRepository interface {
	// SaveToken stores t for the principal named username. The owner is
	// resolved inside the same statement; ErrUnknownPrincipal is returned
	// when it does not exist.
	SaveToken(ctx context.Context, t models.Token, username string) (models.Token, error)
	// FindByTokenString returns the record with exactly this token string,
	// revoked or not, or ErrTokenNotFound.
	FindByTokenString(ctx context.Context, token string) (models.Token, error)
	// FindLatestActiveForPrincipal returns the most recently issued token
	// of the principal that is not revoked and expires after now, or
	// ErrTokenNotFound.
	FindLatestActiveForPrincipal(ctx context.Context, principalID int64, now time.Time) (models.Token, error)
	// Revoke marks the token revoked. Unknown or already revoked tokens are
	// a no-op.
	Revoke(ctx context.Context, token string) error
	// RevokeAllForPrincipal revokes every active token of the principal and
	// returns the token strings it revoked.
	RevokeAllForPrincipal(ctx context.Context, principalID int64) ([]string, error)
	// DeleteExpired removes tokens that expired before the given instant and
	// returns how many rows were deleted.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

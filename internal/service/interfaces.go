package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/google/uuid"
	"github.com/sanoneto/registro-horas/models"
)

// CredentialVerifier checks a username/password pair against the stored
// password hash.
type CredentialVerifier interface {
	// Verify returns the principal owning the credentials, or
	// ErrInvalidCredentials for an unknown username or a wrong password.
	Verify(ctx context.Context, username, password string) (models.Principal, error)
}

// TokenIssuer hands out bearer tokens for authenticated principals.
type TokenIssuer interface {
	// IssueOrReuse returns the latest active token of the principal, or mints
	// and persists a new one when none exists.
	IssueOrReuse(ctx context.Context, principal models.Principal) (string, error)
	// Issue always mints and persists a new token.
	Issue(ctx context.Context, principal models.Principal) (string, error)
}

type AuthService interface {
	// Register creates a principal and returns a freshly minted token.
	Register(ctx context.Context, req models.RegisterRequest) (string, error)
	// Login verifies the credentials and returns a reused or new token.
	Login(ctx context.Context, req models.LoginRequest) (string, error)
	// Logout revokes the token the identity was bound from.
	Logout(ctx context.Context, identity models.Identity) error
	// LogoutAll revokes every active token of the identity's principal and
	// returns how many were revoked.
	LogoutAll(ctx context.Context, identity models.Identity) (int, error)
	// Authenticate resolves a raw bearer token into an identity.
	Authenticate(ctx context.Context, rawToken string) (models.Identity, error)
}

type AdminService interface {
	// RevokeToken revokes any token. Unknown tokens are a no-op.
	RevokeToken(ctx context.Context, token string) error
	// DeletePrincipal revokes all tokens of the principal and deletes it.
	DeletePrincipal(ctx context.Context, publicID uuid.UUID) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

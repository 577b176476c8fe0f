package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sanoneto/registro-horas/internal/logger"
	"github.com/sanoneto/registro-horas/internal/store"
	"github.com/sanoneto/registro-horas/internal/token"
	"github.com/sanoneto/registro-horas/internal/utils"
	"github.com/sanoneto/registro-horas/models"
	"golang.org/x/crypto/bcrypt"
)

// authService handles registration, login, logout and the resolution of
// bearer tokens into identities.
type authService struct {
	principals store.PrincipalRepository
	tokens     store.TokenRepository

	verifier CredentialVerifier
	issuer   TokenIssuer
	codec    *token.Codec

	// bcryptCost is the work factor for passwords of new principals.
	bcryptCost int

	logger *logger.Logger
}

// NewAuthService wires an AuthService. All dependencies are read-only after
// construction, so the service is safe for concurrent use.
func NewAuthService(
	principals store.PrincipalRepository,
	tokens store.TokenRepository,
	verifier CredentialVerifier,
	issuer TokenIssuer,
	codec *token.Codec,
	bcryptCost int,
	logger *logger.Logger,
) AuthService {
	return &authService{
		principals: principals,
		tokens:     tokens,
		verifier:   verifier,
		issuer:     issuer,
		codec:      codec,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates the principal and logs it in with a new token.
//
// Returns:
//   - ErrInvalidDataProvided if a field is blank or the password is longer
//     than bcrypt accepts.
//   - store.ErrUsernameTaken (wrapped) if the username is registered.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (string, error) {
	log := logger.FromContext(ctx)

	username := normalizeUsername(req.Username)
	role := strings.TrimSpace(req.Role)
	if username == "" || req.Password == "" || role == "" {
		log.Error().Str("username", username).Str("role", role).Msg("invalid registration data provided")
		return "", ErrInvalidDataProvided
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), a.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("error hashing password")
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	principal, err := a.principals.CreatePrincipal(ctx, models.Principal{
		PublicID:     utils.Generate(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		log.Err(err).Str("username", username).Msg("principal creation ended with error")
		return "", fmt.Errorf("principal creation ended with error: %w", err)
	}

	return a.issuer.Issue(ctx, principal)
}

// Login returns ErrInvalidCredentials for unknown usernames and wrong
// passwords alike.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	principal, err := a.verifier.Verify(ctx, req.Username, req.Password)
	if err != nil {
		return "", err
	}

	return a.issuer.IssueOrReuse(ctx, principal)
}

func (a *authService) Logout(ctx context.Context, identity models.Identity) error {
	if identity.Token == "" {
		return ErrInvalidDataProvided
	}

	if err := a.tokens.Revoke(ctx, identity.Token); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.Logout").Msg("error revoking token")
		return fmt.Errorf("error revoking token: %w", err)
	}

	return nil
}

func (a *authService) LogoutAll(ctx context.Context, identity models.Identity) (int, error) {
	revoked, err := a.tokens.RevokeAllForPrincipal(ctx, identity.PrincipalID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.LogoutAll").Msg("error revoking tokens")
		return 0, fmt.Errorf("error revoking tokens: %w", err)
	}

	return len(revoked), nil
}

// Authenticate verifies rawToken and loads the identity it stands for.
//
// The signature and expiry are checked first, then the stored record, then
// the owning principal. Token codec errors are returned unwrapped; the
// remaining rejections are ErrTokenNotIssued, ErrTokenRevoked and
// ErrUnknownPrincipal. Any other error is a backend failure.
func (a *authService) Authenticate(ctx context.Context, rawToken string) (models.Identity, error) {
	claims, err := a.codec.Decode(rawToken)
	if err != nil {
		return models.Identity{}, err
	}

	record, err := a.tokens.FindByTokenString(ctx, rawToken)
	if errors.Is(err, store.ErrTokenNotFound) {
		return models.Identity{}, ErrTokenNotIssued
	}
	if err != nil {
		return models.Identity{}, fmt.Errorf("token lookup failed: %w", err)
	}
	if record.Revoked {
		return models.Identity{}, ErrTokenRevoked
	}

	principal, err := a.principals.FindPrincipalByUsername(ctx, claims.Subject)
	if errors.Is(err, store.ErrPrincipalNotFound) {
		return models.Identity{}, ErrUnknownPrincipal
	}
	if err != nil {
		return models.Identity{}, fmt.Errorf("principal lookup failed: %w", err)
	}
	// a username freed by deletion and registered again must not inherit
	// the old owner's tokens
	if principal.ID != record.PrincipalID {
		return models.Identity{}, ErrUnknownPrincipal
	}

	authorities, err := resolveAuthorities(principal.Role)
	if err != nil {
		return models.Identity{}, err
	}

	return models.Identity{
		PrincipalID: principal.ID,
		PublicID:    principal.PublicID,
		Username:    principal.Username,
		Role:        principal.Role,
		Authorities: authorities,
		Token:       rawToken,
	}, nil
}

// resolveAuthorities maps a role tag to its granted authority. A role that
// already carries models.RolePrefix is kept as is.
func resolveAuthorities(role string) ([]string, error) {
	role = strings.ToUpper(strings.TrimSpace(role))
	if role == "" {
		return nil, ErrBlankRole
	}
	if strings.HasPrefix(role, models.RolePrefix) {
		return []string{role}, nil
	}

	return []string{models.RolePrefix + role}, nil
}

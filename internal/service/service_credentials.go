package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sanoneto/registro-horas/internal/logger"
	"github.com/sanoneto/registro-horas/internal/store"
	"github.com/sanoneto/registro-horas/models"
	"golang.org/x/crypto/bcrypt"
)

// credentialVerifier compares passwords with bcrypt. Lookups of unknown
// usernames still run one comparison against dummyHash so both failure
// paths take about the same time.
type credentialVerifier struct {
	principals store.PrincipalRepository
	dummyHash  []byte
}

func NewCredentialVerifier(principals store.PrincipalRepository, bcryptCost int) (CredentialVerifier, error) {
	dummyHash, err := bcrypt.GenerateFromPassword([]byte("registro-horas"), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error preparing credential verifier: %w", err)
	}

	return &credentialVerifier{
		principals: principals,
		dummyHash:  dummyHash,
	}, nil
}

func (v *credentialVerifier) Verify(ctx context.Context, username, password string) (models.Principal, error) {
	log := logger.FromContext(ctx)

	username = normalizeUsername(username)
	if username == "" || password == "" {
		return models.Principal{}, ErrInvalidCredentials
	}

	principal, err := v.principals.FindPrincipalByUsername(ctx, username)
	if errors.Is(err, store.ErrPrincipalNotFound) {
		_ = bcrypt.CompareHashAndPassword(v.dummyHash, []byte(password))
		log.Debug().Str("username", username).Msg("login attempt for unknown username")
		return models.Principal{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "*credentialVerifier.Verify").Msg("principal lookup failed")
		return models.Principal{}, fmt.Errorf("principal lookup failed: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(principal.PasswordHash), []byte(password)); err != nil {
		log.Debug().Str("username", username).Msg("wrong password")
		return models.Principal{}, ErrInvalidCredentials
	}

	return principal, nil
}

// normalizeUsername is applied both when a principal is stored and when it
// is looked up.
func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

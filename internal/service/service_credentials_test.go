package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sanoneto/registro-horas/internal/mock"
	"github.com/sanoneto/registro-horas/internal/store"
	"github.com/sanoneto/registro-horas/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func newTestVerifier(t *testing.T, ctrl *gomock.Controller) (CredentialVerifier, *mock.MockPrincipalRepository) {
	t.Helper()
	principals := mock.NewMockPrincipalRepository(ctrl)
	verifier, err := NewCredentialVerifier(principals, bcrypt.MinCost)
	require.NoError(t, err)
	return verifier, principals
}

func TestCredentialVerifier_Verify(t *testing.T) {
	ctx := context.Background()
	alice := models.Principal{ID: 1, Username: "alice", PasswordHash: hashPassword(t, "s3cret"), Role: models.RoleIntern}

	t.Run("valid credentials with unnormalized username", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		verifier, principals := newTestVerifier(t, ctrl)
		principals.EXPECT().FindPrincipalByUsername(ctx, "alice").Return(alice, nil)

		got, err := verifier.Verify(ctx, "  Alice ", "s3cret")

		require.NoError(t, err)
		assert.Equal(t, alice, got)
	})

	t.Run("wrong password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		verifier, principals := newTestVerifier(t, ctrl)
		principals.EXPECT().FindPrincipalByUsername(ctx, "alice").Return(alice, nil)

		_, err := verifier.Verify(ctx, "alice", "wrong")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown username looks like a wrong password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		verifier, principals := newTestVerifier(t, ctrl)
		principals.EXPECT().FindPrincipalByUsername(ctx, "bob").Return(models.Principal{}, store.ErrPrincipalNotFound)

		_, err := verifier.Verify(ctx, "bob", "s3cret")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.NotErrorIs(t, err, store.ErrPrincipalNotFound)
	})

	t.Run("blank input never reaches the store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		verifier, _ := newTestVerifier(t, ctrl)

		_, err := verifier.Verify(ctx, "   ", "s3cret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = verifier.Verify(ctx, "alice", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("store failure is not reported as bad credentials", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		verifier, principals := newTestVerifier(t, ctrl)
		storeErr := errors.New("connection reset")
		principals.EXPECT().FindPrincipalByUsername(ctx, "alice").Return(models.Principal{}, storeErr)

		_, err := verifier.Verify(ctx, "alice", "s3cret")

		assert.ErrorIs(t, err, storeErr)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestNewCredentialVerifier_InvalidCost(t *testing.T) {
	ctrl := gomock.NewController(t)

	_, err := NewCredentialVerifier(mock.NewMockPrincipalRepository(ctrl), bcrypt.MaxCost+1)

	assert.Error(t, err)
}

func TestNormalizeUsername(t *testing.T) {
	assert.Equal(t, "alice", normalizeUsername("  ALICE\t"))
	assert.Equal(t, "", normalizeUsername("   "))
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a client for the registro-horas HTTP API.
//
// The primary abstraction is [ServerAdapter], which hides request encoding,
// bearer-token handling and status mapping. Non-2xx responses are mapped to
// the sentinel errors of errors.go so callers can use [errors.Is]
// (e.g. [ErrUnauthorized] for 401, [ErrTooManyRequests] for 429).
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/sanoneto/registro-horas/models"
)

// ServerAdapter is a client of the authentication API.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the bearer token currently held, or "".
	Token() string

	// Register creates a principal and stores the token it receives.
	Register(ctx context.Context, req models.RegisterRequest) (string, error)

	// Login exchanges credentials for a token and stores it.
	Login(ctx context.Context, req models.LoginRequest) (string, error)

	// Logout revokes the held token and forgets it.
	Logout(ctx context.Context) error

	// LogoutAll revokes every token of the caller and returns the server's
	// acknowledgement.
	LogoutAll(ctx context.Context) (string, error)

	// Me describes the caller the held token belongs to.
	Me(ctx context.Context) (models.IdentityResponse, error)

	// RevokeToken revokes an arbitrary token. Requires the ADMIN role.
	RevokeToken(ctx context.Context, token string) error

	// DeletePrincipal removes a principal and its tokens. Requires the ADMIN
	// role.
	DeletePrincipal(ctx context.Context, publicID uuid.UUID) error

	// Version returns the server version string.
	Version(ctx context.Context) (string, error)
}

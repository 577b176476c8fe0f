// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Messages of 401 responses produced by the authentication middleware. They
// tell the client what to do next without revealing why a signature failed.
const (
	msgInvalidToken           = "invalid token"
	msgTokenExpired           = "token expired"
	msgTokenRevoked           = "token revoked"
	msgUnknownPrincipal       = "unknown principal"
	msgAuthenticationFailed   = "authentication failed"
	msgAuthenticationRequired = "authentication required"
	msgAccessDenied           = "access denied"
	msgInvalidJSON            = "invalid JSON was passed"
	msgTooManyRequests        = "too many requests"
)

// Sentinel errors of the transport layer. Callers can match against them
// with [errors.Is].
var (
	// ErrInvalidPublicID is returned when a path parameter is not a UUID.
	ErrInvalidPublicID = errors.New("invalid public id")

	// ErrNoIdentity is returned when a handler that requires an
	// authenticated caller finds no identity in the request context.
	ErrNoIdentity = errors.New("no identity bound to request")
)

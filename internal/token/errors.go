package token

import "errors"

var (
	// ErrMalformed is returned when the input is not a structurally valid
	// token or its claims are unusable.
	ErrMalformed = errors.New("malformed token")
	// ErrInvalidSignature is returned when the signature does not verify
	// under the configured secret or the signing algorithm is not HS256.
	ErrInvalidSignature = errors.New("invalid token signature")
	// ErrExpired is returned for a validly signed token whose expiry is not
	// after the current instant.
	ErrExpired = errors.New("token expired")
	// ErrEmptySecret is returned by NewCodec when no secret is configured.
	ErrEmptySecret = errors.New("token sign key is empty")
)

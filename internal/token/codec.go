package token

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Config holds the immutable parameters of a [Codec].
type Config struct {
	// Secret is the HS256 key.
	Secret string
}

// Option customizes a [Codec].
type Option func(*Codec)

// WithClock replaces time.Now as the source of the current instant used for
// expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		c.now = now
	}
}

// Codec signs and verifies tokens with a symmetric secret.
// It is safe for concurrent use.
type Codec struct {
	secret []byte
	now    func() time.Time
	parser *jwt.Parser
}

// NewCodec returns a Codec for cfg.
func NewCodec(cfg Config, opts ...Option) (*Codec, error) {
	if cfg.Secret == "" {
		return nil, ErrEmptySecret
	}

	c := &Codec{
		secret: []byte(cfg.Secret),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(c.now),
	)

	return c, nil
}

// Encode returns a signed token for subject issued at issuedAt and valid for
// ttl.
func (c *Codec) Encode(subject string, issuedAt time.Time, ttl time.Duration) (string, error) {
	return c.Sign(NewClaims(subject, issuedAt, ttl))
}

// Sign returns the compact signed form of claims.
func (c *Codec) Sign(claims Claims) (string, error) {
	if err := claims.Validate(); err != nil {
		return "", fmt.Errorf("error signing token: %w", err)
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("error signing token: %w", err)
	}

	return signed, nil
}

// Decode verifies tokenString and returns its claims.
//
// The returned error wraps exactly one of ErrMalformed, ErrInvalidSignature
// or ErrExpired. A token is expired when the current instant is at or after
// its expiry.
func (c *Codec) Decode(tokenString string) (Claims, error) {
	segments := strings.Split(tokenString, ".")
	if len(segments) != 3 {
		return Claims{}, fmt.Errorf("%w: expected 3 segments, got %d", ErrMalformed, len(segments))
	}
	if _, err := base64.RawURLEncoding.Strict().DecodeString(segments[2]); err != nil || segments[2] == "" {
		return Claims{}, fmt.Errorf("%w: undecodable signature", ErrInvalidSignature)
	}

	claims := &Claims{}
	_, err := c.parser.ParseWithClaims(tokenString, claims, c.key)
	switch {
	case err == nil:
		return *claims, nil
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return Claims{}, fmt.Errorf("%w: %w", ErrExpired, err)
	default:
		return Claims{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
}

func (c *Codec) key(t *jwt.Token) (any, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
	}
	return c.secret, nil
}

package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the payload of a token.
//
// Instants are kept as Unix milliseconds so that issue and expiry survive a
// round trip with millisecond precision.
type Claims struct {
	Subject     string `json:"sub"`
	ID          string `json:"jti,omitempty"`
	IssuedAtMs  int64  `json:"iat_ms"`
	ExpiresAtMs int64  `json:"exp_ms"`
}

var _ jwt.Claims = Claims{}

// NewClaims returns claims for subject issued at issuedAt (truncated to the
// millisecond) and expiring ttl later.
func NewClaims(subject string, issuedAt time.Time, ttl time.Duration) Claims {
	iat := issuedAt.UnixMilli()
	return Claims{
		Subject:     subject,
		ID:          uuid.NewString(),
		IssuedAtMs:  iat,
		ExpiresAtMs: iat + ttl.Milliseconds(),
	}
}

// IssuedAt returns the issue instant in UTC.
func (c Claims) IssuedAt() time.Time {
	return time.UnixMilli(c.IssuedAtMs).UTC()
}

// ExpiresAt returns the expiry instant in UTC.
func (c Claims) ExpiresAt() time.Time {
	return time.UnixMilli(c.ExpiresAtMs).UTC()
}

func (c Claims) GetExpirationTime() (*jwt.NumericDate, error) {
	if c.ExpiresAtMs == 0 {
		return nil, nil
	}
	return &jwt.NumericDate{Time: time.UnixMilli(c.ExpiresAtMs)}, nil
}

func (c Claims) GetIssuedAt() (*jwt.NumericDate, error) {
	if c.IssuedAtMs == 0 {
		return nil, nil
	}
	return &jwt.NumericDate{Time: time.UnixMilli(c.IssuedAtMs)}, nil
}

func (c Claims) GetNotBefore() (*jwt.NumericDate, error) {
	return nil, nil
}

func (c Claims) GetIssuer() (string, error) {
	return "", nil
}

func (c Claims) GetSubject() (string, error) {
	return c.Subject, nil
}

func (c Claims) GetAudience() (jwt.ClaimStrings, error) {
	return nil, nil
}

// Validate is called by the jwt validator after the standard time checks.
func (c Claims) Validate() error {
	if c.Subject == "" {
		return errors.New("empty subject")
	}
	if c.ExpiresAtMs <= c.IssuedAtMs {
		return errors.New("expiry is not after issue time")
	}
	return nil
}

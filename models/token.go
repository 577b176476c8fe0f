package models

import (
	"time"

	"github.com/google/uuid"
)

// Token is a persisted record of an issued bearer token.
//
// Records are never mutated after creation except for setting Revoked, and
// revocation is permanent.
type Token struct {
	// ID is the internal surrogate identifier.
	ID int64 `json:"-"`

	// PublicID is the externally visible identifier of the record.
	PublicID uuid.UUID `json:"public_id"`

	// Token is the compact signed token string. Unique.
	Token string `json:"-"`

	// PrincipalID references the owning [Principal].
	PrincipalID int64 `json:"-"`

	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`

	// Revoked is set once and never cleared.
	Revoked bool `json:"revoked"`
}

// IsActive reports whether the token is not revoked and has not reached its
// expiry at now.
func (t Token) IsActive(now time.Time) bool {
	return !t.Revoked && now.Before(t.ExpiresAt)
}

// TableName returns the name of the database table
// associated with the Token model.
func (t Token) TableName() string {
	return "tokens"
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// RolePrefix is prepended to a principal's role to form its authority.
const RolePrefix = "ROLE_"

// Well-known roles.
const (
	RoleAdmin  = "ADMIN"
	RoleIntern = "ESTAGIARIO"
)

// Principal represents an account that can authenticate against the server.
// Sensitive fields must never be exposed outside trusted boundaries.
type Principal struct {
	// ID is the internal unique identifier of the principal.
	// It is not exposed via JSON and is used only at the persistence layer.
	ID int64 `json:"-"`

	// PublicID is the externally visible identifier.
	PublicID uuid.UUID `json:"public_id"`

	// Username is unique, stored lower-cased and trimmed.
	Username string `json:"username"`

	// PasswordHash is the bcrypt hash of the password. Never plaintext.
	PasswordHash string `json:"-"`

	// Role is the role tag, e.g. "ADMIN" or "ESTAGIARIO".
	Role string `json:"role"`

	// CreatedAt is the timestamp when the principal was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Principal model.
func (p Principal) TableName() string {
	return "principals"
}

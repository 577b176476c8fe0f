package models

import (
	"slices"

	"github.com/google/uuid"
)

// Identity is the authenticated security context bound to a request.
type Identity struct {
	PrincipalID int64
	PublicID    uuid.UUID
	Username    string
	Role        string
	Authorities []string

	// Token is the raw bearer token the identity was bound from.
	Token string
}

// HasAuthority reports whether the identity was granted authority.
func (i Identity) HasAuthority(authority string) bool {
	return slices.Contains(i.Authorities, authority)
}

// HasRole reports whether the identity holds RolePrefix+role.
func (i Identity) HasRole(role string) bool {
	return i.HasAuthority(RolePrefix + role)
}

package models

import (
	"strings"

	validation "github.com/jellydator/validation"
)

// LoginRequest carries the credentials of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks that both credentials are present.
func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username, validation.Required, validation.By(notBlank)),
		validation.Field(&r.Password, validation.Required),
	)
}

// RegisterRequest carries the payload of POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate checks that all fields are present.
func (r *RegisterRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username, validation.Required, validation.By(notBlank), validation.Length(1, 255)),
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.Role, validation.Required, validation.By(notBlank)),
	)
}

// RevokeTokenRequest carries the token an administrator wants revoked.
type RevokeTokenRequest struct {
	Token string `json:"token"`
}

// Validate checks that the token is present.
func (r *RevokeTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Token, validation.Required),
	)
}

func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return validation.NewError("validation_not_blank", "cannot be blank")
	}
	return nil
}

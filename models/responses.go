package models

import "github.com/google/uuid"

// LoginResponse is returned by the login and register endpoints.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// MessageResponse is a plain acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// IdentityResponse describes the caller on GET /api/auth/me.
type IdentityResponse struct {
	PublicID    uuid.UUID `json:"public_id"`
	Username    string    `json:"username"`
	Role        string    `json:"role"`
	Authorities []string  `json:"authorities"`
}

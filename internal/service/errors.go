package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrInvalidCredentials  = errors.New("invalid username or password")

	ErrTokenNotIssued   = errors.New("token was not issued by this server")
	ErrTokenRevoked     = errors.New("token revoked")
	ErrUnknownPrincipal = errors.New("unknown principal")
	ErrBlankRole        = errors.New("principal has a blank role")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrInvalidVersion        = errors.New("app version must be a single printable line")
)

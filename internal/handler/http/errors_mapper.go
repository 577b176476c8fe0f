package http

import (
	"errors"
	"net/http"

	"github.com/sanoneto/registro-horas/internal/service"
	"github.com/sanoneto/registro-horas/internal/store"
	"github.com/sanoneto/registro-horas/internal/token"
)

// errorStatusMap is matched in order, first hit wins. Store errors wrap both
// a statement sentinel and, for transient failures, ErrStoreUnavailable, so
// the more specific sentinels come before the generic 500 ones.
var errorStatusMap = []struct {
	target error
	status int
}{
	{service.ErrInvalidDataProvided, http.StatusBadRequest},
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrTokenNotIssued, http.StatusUnauthorized},
	{service.ErrTokenRevoked, http.StatusUnauthorized},
	{service.ErrUnknownPrincipal, http.StatusUnauthorized},

	{token.ErrMalformed, http.StatusUnauthorized},
	{token.ErrInvalidSignature, http.StatusUnauthorized},
	{token.ErrExpired, http.StatusUnauthorized},

	{ErrInvalidPublicID, http.StatusBadRequest},
	{ErrNoIdentity, http.StatusUnauthorized},

	{store.ErrUsernameTaken, http.StatusBadRequest},
	{store.ErrPrincipalNotFound, http.StatusNotFound},
	{store.ErrStoreUnavailable, http.StatusServiceUnavailable},

	{store.ErrBuildingSQLQuery, http.StatusInternalServerError},
	{store.ErrExecutingStatement, http.StatusInternalServerError},
	{store.ErrScanningRow, http.StatusInternalServerError},
}

func statusFromError(err error) int {
	for _, e := range errorStatusMap {
		if errors.Is(err, e.target) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// messageFromError returns the text sent to the client for err. Known
// client errors use the sentinel's own message; server errors only expose
// the status text.
func messageFromError(err error, status int) string {
	if status >= http.StatusInternalServerError {
		return http.StatusText(status)
	}
	for _, e := range errorStatusMap {
		if errors.Is(err, e.target) {
			return e.target.Error()
		}
	}
	return http.StatusText(status)
}

// authFailureMessage maps an Authenticate error to its 401 message. Errors
// not listed are backend failures and get the generic message.
func authFailureMessage(err error) string {
	switch {
	case errors.Is(err, token.ErrExpired):
		return msgTokenExpired
	case errors.Is(err, token.ErrMalformed),
		errors.Is(err, token.ErrInvalidSignature),
		errors.Is(err, service.ErrTokenNotIssued):
		return msgInvalidToken
	case errors.Is(err, service.ErrTokenRevoked):
		return msgTokenRevoked
	case errors.Is(err, service.ErrUnknownPrincipal):
		return msgUnknownPrincipal
	default:
		return msgAuthenticationFailed
	}
}

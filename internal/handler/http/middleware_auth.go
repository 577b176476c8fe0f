package http

import (
	"net/http"

	"github.com/sanoneto/registro-horas/internal/logger"
	"github.com/sanoneto/registro-horas/internal/utils"
)

// authenticate resolves the bearer token of the request into an identity.
//
// Requests without an "Authorization" header, or whose header does not use
// the "Bearer " scheme, continue anonymously. A bearer token that fails any
// check ends the request with 401 and a JSON [models.ErrorResponse]; the
// protected handler never runs. An identity already bound to the context is
// never replaced.
//
// Rejections are logged with the request path. The token itself is never
// logged.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.IdentityFromContext(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}

		rawToken, ok := utils.ParseBearerToken(r.Header.Get("Authorization"))
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		identity, err := h.services.AuthService.Authenticate(r.Context(), rawToken)
		if err != nil {
			message := authFailureMessage(err)
			if message == msgAuthenticationFailed {
				log.Err(err).Str("path", r.URL.Path).Msg("error authenticating request")
			} else {
				log.Warn().Err(err).Str("path", r.URL.Path).Msg("bearer token rejected")
			}
			utils.WriteError(w, message, http.StatusUnauthorized)
			return
		}

		log.Debug().Str("username", identity.Username).Msg("request authenticated")
		next.ServeHTTP(w, r.WithContext(utils.WithIdentity(r.Context(), identity)))
	})
}

// requireAuthenticated rejects anonymous requests with 401.
func requireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.IdentityFromContext(r.Context()); !ok {
			utils.WriteError(w, msgAuthenticationRequired, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireRole rejects callers lacking the authority of role with 403. It
// must run after requireAuthenticated.
func requireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, _ := utils.IdentityFromContext(r.Context())
			if !identity.HasRole(role) {
				logger.FromRequest(r).Warn().
					Str("username", identity.Username).
					Str("path", r.URL.Path).
					Msg("access denied")
				utils.WriteError(w, msgAccessDenied, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

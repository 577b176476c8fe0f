package utils

import "strings"

// BearerPrefix is the scheme prefix of an Authorization header carrying a
// token.
const BearerPrefix = "Bearer "

// ParseBearerToken extracts the token from an Authorization header value.
//
// ok is false when the header does not start with exactly "Bearer "; such
// requests are treated as anonymous. A present but empty token is returned
// with ok == true so that callers reject it instead of ignoring it.
func ParseBearerToken(authorizationHeader string) (token string, ok bool) {
	if !strings.HasPrefix(authorizationHeader, BearerPrefix) {
		return "", false
	}

	return strings.TrimSpace(authorizationHeader[len(BearerPrefix):]), true
}

package server

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
)

var errUnauthorized = errors.New("unauthorized")

// bearerAuth rejects requests without a valid "Authorization: Bearer <api_token>" header
func (s *Server) bearerAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.authorized(r) {
			renderError(w, r, errUnauthorized, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// authorized checks the bearer token against the api token from settings
func (s *Server) authorized(r *http.Request) bool {
	return validToken(bearerToken(r.Header.Get("Authorization")), s.settings.Get(r.Context()).APIToken)
}

// bearerToken extracts the token from an Authorization header, scheme is case-insensitive
func bearerToken(header string) string {
	const prefix = "bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// validToken compares tokens in constant time, empty tokens never match
func validToken(presented, expected string) bool {
	if presented == "" || expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(expected)) == 1
}

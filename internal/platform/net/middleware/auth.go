package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	perr "warden/internal/platform/errors"
	pnet "warden/internal/platform/net"
)

// Bearer enforces a static bearer token on the wrapped routes.
// An empty configured token disables the check (local/dev)
func Bearer(token string, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			got := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				wr := perr.WireFrom(perr.Unauthorizedf("invalid or missing bearer token"))
				write(w, http.StatusUnauthorized, wr)
				return
			}
			next.ServeHTTP(w, r.WithContext(pnet.WithActor(r.Context(), "admin")))
		})
	}
}

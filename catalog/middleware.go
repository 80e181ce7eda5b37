package catalog

import (
	"errors"
	"net/http"
	"strings"
)

var errUnauthorized = errors.New("unauthorized")

// adminRequired accepts the token via the X-Admin-Token header or an
// Authorization Bearer credential.
func adminRequired(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := r.Header.Get("X-Admin-Token")
			if len(presented) == 0 {
				auth := r.Header.Get("Authorization")
				if strings.HasPrefix(auth, "Bearer ") {
					presented = strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
				}
			}
			if len(presented) == 0 || presented != token {
				respondError(w, http.StatusUnauthorized, errUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

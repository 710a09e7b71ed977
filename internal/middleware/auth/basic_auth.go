package auth

import (
	"crypto/subtle"
	"net/http"
)

// BasicAuth guards the API with a single credential pair from config.
func BasicAuth(username, password string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if !ok || !equal(user, username) || !equal(pass, password) {
				w.Header().Set("WWW-Authenticate", `Basic realm="Workload Tracker"`)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

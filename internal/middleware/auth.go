package middleware

import (
	"net/http"
	"strings"

	"github.com/alexanderramin/naqd/internal/auth"
	"github.com/alexanderramin/naqd/internal/httputil"
)

// BearerAuth requires a valid token on every request. A nil verifier
// disables the check.
func BearerAuth(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if tokens == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				w.Header().Set("WWW-Authenticate", `Bearer realm="naqd"`)
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			claims, err := tokens.ValidateToken(strings.TrimSpace(raw))
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer realm="naqd", error="invalid_token"`)
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			next.ServeHTTP(w, httputil.WithSubject(r, claims.Subject))
		})
	}
}

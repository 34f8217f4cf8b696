package middleware

import (
	"net/http"

	"github.com/threadboard/threadboard/shared/csrf"
	"github.com/threadboard/threadboard/shared/logger"
)

// RequireCSRF rejects unsafe requests that carry the session cookie without
// a matching X-CSRF-Token header. Bearer token clients are not affected
// since browsers never attach that header on their own.
func RequireCSRF() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}
			if _, err := r.Cookie(AccessTokenCookie); err != nil {
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie(csrf.CookieName)
			if err != nil {
				logger.Log.Warn("CSRF token cookie missing", "path", r.URL.Path)
				http.Error(w, "CSRF token missing", http.StatusForbidden)
				return
			}
			if !csrf.ValidateToken(cookie.Value, r.Header.Get(csrf.HeaderName)) {
				logger.Log.Warn("CSRF token validation failed", "path", r.URL.Path)
				http.Error(w, "CSRF token invalid", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

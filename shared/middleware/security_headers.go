package middleware

import (
	"net/http"
)

// apiCSP forbids everything: responses are JSON and never rendered.
const apiCSP = "default-src 'none'; frame-ancestors 'none'"

// SecurityHeaders adds the response headers every API reply carries.
// HSTS is only sent when the service is reached over HTTPS.
func SecurityHeaders(isHTTPS bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			headers := w.Header()

			headers.Set("X-Frame-Options", "DENY")
			headers.Set("X-Content-Type-Options", "nosniff")
			headers.Set("Referrer-Policy", "no-referrer")
			headers.Set("Content-Security-Policy", apiCSP)
			// votes and comments change constantly
			headers.Set("Cache-Control", "no-store")

			if isHTTPS {
				headers.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}

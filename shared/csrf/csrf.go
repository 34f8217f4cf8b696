// Package csrf implements double-submit tokens for cookie authenticated
// requests: the token lives in a script-readable cookie and must be echoed
// back in a request header.
package csrf

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
)

const (
	TokenLength = 32 // bytes
	CookieName  = "csrf_token"
	HeaderName  = "X-CSRF-Token"
)

// GenerateToken creates a cryptographically secure random token
func GenerateToken() (string, error) {
	bytes := make([]byte, TokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}

// ValidateToken compares the cookie token with the header token
func ValidateToken(cookieToken, headerToken string) bool {
	if cookieToken == "" || headerToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(cookieToken), []byte(headerToken)) == 1
}

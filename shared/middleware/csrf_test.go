package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/threadboard/threadboard/shared/csrf"
)

func TestRequireCSRF(t *testing.T) {
	handler := RequireCSRF()(okHandler)

	testCases := []struct {
		name           string
		method         string
		accessCookie   bool
		csrfCookie     string
		csrfHeader     string
		expectedStatus int
	}{
		{"Safe method passes", http.MethodGet, true, "", "", http.StatusOK},
		{"No session cookie passes", http.MethodPost, false, "", "", http.StatusOK},
		{"Matching token", http.MethodPatch, true, "tok", "tok", http.StatusOK},
		{"Missing csrf cookie", http.MethodDelete, true, "", "tok", http.StatusForbidden},
		{"Missing header", http.MethodPost, true, "tok", "", http.StatusForbidden},
		{"Mismatch", http.MethodPost, true, "tok", "other", http.StatusForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/", nil)
			if tc.accessCookie {
				req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "jwt"})
			}
			if tc.csrfCookie != "" {
				req.AddCookie(&http.Cookie{Name: csrf.CookieName, Value: tc.csrfCookie})
			}
			if tc.csrfHeader != "" {
				req.Header.Set(csrf.HeaderName, tc.csrfHeader)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
		})
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecurityHeaders(t *testing.T) {
	tests := []struct {
		name          string
		isDevelopment bool
		expectHSTS    bool
	}{
		{name: "production", isDevelopment: false, expectHSTS: true},
		{name: "development", isDevelopment: true, expectHSTS: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewSecurityHeaders(tt.isDevelopment).Middleware(okHandler())

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/ussd/charges", nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
			assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
			assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
			assert.Equal(t, apiContentSecurityPolicy, rec.Header().Get("Content-Security-Policy"))
			assert.Equal(t, tt.expectHSTS, rec.Header().Get("Strict-Transport-Security") != "")
		})
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dharmikkumbhani/khichdi-backend/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedServer(t *testing.T, authService *services.AuthService) http.Handler {
	t.Helper()
	var next http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(GetHotelID(r.Context())))
	})
	return AuthMiddleware(authService)(next)
}

func TestAuthMiddleware(t *testing.T) {
	authService := services.NewAuthService(nil, nil, services.NewSMSClient(""), "test-secret")
	handler := newProtectedServer(t, authService)

	hotelToken, err := authService.GenerateJWT("hotel-1", services.RoleHotel)
	require.NoError(t, err)
	adminToken, err := authService.GenerateJWT("hotel-1", "admin")
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"missing header", "", http.StatusUnauthorized, ""},
		{"malformed header", "Token abc", http.StatusUnauthorized, ""},
		{"garbage token", "Bearer not-a-token", http.StatusUnauthorized, ""},
		{"wrong role", "Bearer " + adminToken, http.StatusForbidden, ""},
		{"hotel role", "Bearer " + hotelToken, http.StatusOK, "hotel-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

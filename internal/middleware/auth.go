package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Dharmikkumbhani/khichdi-backend/internal/services"
)

type contextKey string

const hotelIDKey contextKey = "hotel_id"

// AuthMiddleware creates a middleware for JWT authentication. The token must
// carry the hotel role; any other role is rejected with 403.
func AuthMiddleware(authService *services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondError(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				respondError(w, "Invalid authorization header format", http.StatusUnauthorized)
				return
			}

			hotelID, role, err := authService.ValidateJWT(parts[1])
			if err != nil {
				respondError(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			if role != services.RoleHotel {
				respondError(w, "Access denied: requires hotel role", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), hotelIDKey, hotelID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetHotelID extracts the authenticated hotel ID from context
func GetHotelID(ctx context.Context) string {
	hotelID, ok := ctx.Value(hotelIDKey).(string)
	if !ok {
		return ""
	}
	return hotelID
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write([]byte(`{"success":false,"message":"` + message + `"}`))
}

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dharmikkumbhani/khichdi-backend/internal/middleware"
	"github.com/Dharmikkumbhani/khichdi-backend/internal/models"
	"github.com/Dharmikkumbhani/khichdi-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHotelTestRouter(hotels *memHotelStore) (*chi.Mux, *services.AuthService) {
	authService := services.NewAuthService(newMemOTPStore(), hotels, services.NewSMSClient(""), "test-secret")
	handler := NewHotelHandler(authService)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(authService))
		r.Get("/api/hotel/dashboard", handler.Dashboard)
	})
	return r, authService
}

func TestDashboardReturnsProfile(t *testing.T) {
	hotels := newMemHotelStore(&models.Hotel{
		ID:           "hotel-1",
		MobileNumber: "9876543210",
		HotelName:    "Annapurna",
		Role:         services.RoleHotel,
	})
	router, authService := newHotelTestRouter(hotels)

	token, err := authService.GenerateJWT("hotel-1", services.RoleHotel)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/hotel/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Success bool          `json:"success"`
		Data    *models.Hotel `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "Annapurna", resp.Data.HotelName)
}

func TestDashboardUnknownHotel(t *testing.T) {
	router, authService := newHotelTestRouter(newMemHotelStore())

	// Valid token for an account that no longer exists.
	token, err := authService.GenerateJWT("gone-hotel", services.RoleHotel)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/hotel/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

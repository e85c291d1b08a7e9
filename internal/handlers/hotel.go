package handlers

import (
	"errors"
	"net/http"

	"github.com/Dharmikkumbhani/khichdi-backend/internal/middleware"
	"github.com/Dharmikkumbhani/khichdi-backend/internal/repository"
	"github.com/Dharmikkumbhani/khichdi-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// HotelHandler handles hotel profile HTTP requests
type HotelHandler struct {
	authService *services.AuthService
}

// NewHotelHandler creates a new hotel handler
func NewHotelHandler(authService *services.AuthService) *HotelHandler {
	return &HotelHandler{
		authService: authService,
	}
}

// Dashboard handles GET /api/hotel/dashboard
func (h *HotelHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	hotelID := middleware.GetHotelID(ctx)

	hotel, err := h.authService.GetHotel(ctx, hotelID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, "Hotel not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("hotel_id", hotelID).Msg("Failed to get hotel")
		respondError(w, "Failed to get hotel", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: hotel})
}

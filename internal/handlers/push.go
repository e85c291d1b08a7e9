package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Dharmikkumbhani/khichdi-backend/internal/models"
	"github.com/Dharmikkumbhani/khichdi-backend/internal/repository"
	"github.com/Dharmikkumbhani/khichdi-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// PushHandler handles push subscription HTTP requests
type PushHandler struct {
	pushService *services.PushService
}

// NewPushHandler creates a new push handler
func NewPushHandler(pushService *services.PushService) *PushHandler {
	return &PushHandler{
		pushService: pushService,
	}
}

// VAPIDPublicKey handles GET /api/push/vapidPublicKey
func (h *PushHandler) VAPIDPublicKey(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"publicKey": h.pushService.VAPIDPublicKey(),
	})
}

// SubscribeRequest represents the request body for subscribing
type SubscribeRequest struct {
	HotelID      string               `json:"hotelId"`
	Subscription *models.Subscription `json:"subscription"`
}

// Subscribe handles POST /api/push/subscribe
func (h *PushHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.HotelID == "" || req.Subscription == nil || req.Subscription.Endpoint == "" {
		respondError(w, "hotelId and subscription are required", http.StatusBadRequest)
		return
	}

	sub, err := h.pushService.Subscribe(r.Context(), req.HotelID, *req.Subscription)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, "Hotel not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("hotel_id", req.HotelID).Msg("Failed to subscribe")
		respondError(w, "Failed to subscribe", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Subscribed successfully",
		Data:    sub,
	})
}

// UnsubscribeRequest represents the request body for unsubscribing
type UnsubscribeRequest struct {
	HotelID  string `json:"hotelId"`
	Endpoint string `json:"endpoint"`
}

// Unsubscribe handles POST /api/push/unsubscribe
func (h *PushHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req UnsubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.HotelID == "" || req.Endpoint == "" {
		respondError(w, "hotelId and endpoint are required", http.StatusBadRequest)
		return
	}

	if err := h.pushService.Unsubscribe(r.Context(), req.HotelID, req.Endpoint); err != nil {
		log.Error().Err(err).Str("hotel_id", req.HotelID).Msg("Failed to unsubscribe")
		respondError(w, "Failed to unsubscribe", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Unsubscribed successfully"})
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/Dharmikkumbhani/khichdi-backend/internal/repository"
	"github.com/Dharmikkumbhani/khichdi-backend/internal/services"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS is enforced at the HTTP layer
	},
}

// WebSocketHandler serves the live menu feed for viewers
type WebSocketHandler struct {
	wsHub       *services.WSHub
	authService *services.AuthService
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(wsHub *services.WSHub, authService *services.AuthService) *WebSocketHandler {
	return &WebSocketHandler{
		wsHub:       wsHub,
		authService: authService,
	}
}

// HandleWebSocket handles GET /ws?hotel_id=...
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	hotelID := r.URL.Query().Get("hotel_id")
	if hotelID == "" {
		respondError(w, "hotel_id is required", http.StatusBadRequest)
		return
	}

	if _, err := h.authService.GetHotel(r.Context(), hotelID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, "Hotel not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("hotel_id", hotelID).Msg("Failed to get hotel")
		respondError(w, "Failed to get hotel", http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}

	h.wsHub.Register(hotelID, conn)
	defer h.wsHub.Unregister(hotelID, conn)

	// Viewers only receive; the read loop just detects disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

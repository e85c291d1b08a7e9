package services

import (
	"encoding/json"
	"sync"

	"github.com/Dharmikkumbhani/khichdi-backend/internal/models"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// WSMessage represents a WebSocket message sent to menu viewers
type WSMessage struct {
	Type    string             `json:"type"`
	HotelID string             `json:"hotel_id,omitempty"`
	Menu    *models.MenuRecord `json:"menu,omitempty"`
	Message string             `json:"message,omitempty"`
}

// WSHub manages viewer WebSocket connections, grouped by the hotel whose
// menu feed they watch.
type WSHub struct {
	mu      sync.RWMutex
	viewers map[string]map[*websocket.Conn]bool
}

// NewWSHub creates a new WebSocket hub
func NewWSHub() *WSHub {
	return &WSHub{
		viewers: make(map[string]map[*websocket.Conn]bool),
	}
}

// Register adds a viewer connection for a hotel's feed
func (h *WSHub) Register(hotelID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.viewers[hotelID] == nil {
		h.viewers[hotelID] = make(map[*websocket.Conn]bool)
	}
	h.viewers[hotelID][conn] = true

	log.Info().Str("hotel_id", hotelID).Msg("WebSocket viewer registered")
}

// Unregister removes a viewer connection
func (h *WSHub) Unregister(hotelID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, exists := h.viewers[hotelID]; exists {
		if conns[conn] {
			conn.Close()
			delete(conns, conn)
			log.Info().Str("hotel_id", hotelID).Msg("WebSocket viewer unregistered")
		}
		if len(conns) == 0 {
			delete(h.viewers, hotelID)
		}
	}
}

// ViewerCount returns how many viewers watch a hotel's feed
func (h *WSHub) ViewerCount(hotelID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.viewers[hotelID])
}

// BroadcastMenuUpdated notifies every connected viewer of a hotel that its
// menu changed. Dead connections are dropped.
func (h *WSHub) BroadcastMenuUpdated(hotelID string, menu *models.MenuRecord) {
	data, err := json.Marshal(WSMessage{
		Type:    "menu_updated",
		HotelID: hotelID,
		Menu:    menu,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal WebSocket message")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.viewers[hotelID]
	for conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Warn().Err(err).Str("hotel_id", hotelID).Msg("Dropping dead WebSocket viewer")
			conn.Close()
			delete(conns, conn)
		}
	}
	if len(conns) == 0 {
		delete(h.viewers, hotelID)
	}
}

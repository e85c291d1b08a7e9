package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/Dharmikkumbhani/khichdi-backend/internal/middleware"
	"github.com/Dharmikkumbhani/khichdi-backend/internal/models"
	"github.com/Dharmikkumbhani/khichdi-backend/internal/services"

	"github.com/rs/zerolog/log"
)

const maxUploadBytes = 10 << 20 // 10 MiB

// MenuHandler handles menu-related HTTP requests
type MenuHandler struct {
	menuService *services.MenuService
	pushService *services.PushService
	wsHub       *services.WSHub
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menuService *services.MenuService, pushService *services.PushService, wsHub *services.WSHub) *MenuHandler {
	return &MenuHandler{
		menuService: menuService,
		pushService: pushService,
		wsHub:       wsHub,
	}
}

// MenuResponse carries one stored menu record
type MenuResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Menu    *models.MenuRecord `json:"menu"`
}

// Upload handles POST /api/menu/upload
func (h *MenuHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	hotelID := middleware.GetHotelID(ctx)

	// Fail fast on a missing file, before touching storage or the database.
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, "No image provided", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("menuImage")
	if err != nil {
		respondError(w, "No image provided", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, "Failed to read image", http.StatusBadRequest)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	note := r.FormValue("note")

	result, err := h.menuService.UploadMenu(ctx, hotelID, data, contentType, note)
	if err != nil {
		log.Error().Err(err).Str("hotel_id", hotelID).Msg("Failed to upload menu")
		respondError(w, "Server error during upload", http.StatusInternalServerError)
		return
	}

	log.Info().
		Str("hotel_id", hotelID).
		Str("menu_id", result.Menu.ID).
		Bool("updated", result.Updated).
		Bool("inline", result.Inline).
		Msg("Menu published")

	// Fire-and-forget: the response never waits on notification delivery.
	go h.pushService.NotifyMenuUpdated(context.WithoutCancel(ctx), hotelID)
	go h.wsHub.BroadcastMenuUpdated(hotelID, result.Menu)

	respondJSON(w, http.StatusOK, MenuResponse{
		Success: true,
		Message: uploadMessage(result),
		Menu:    result.Menu,
	})
}

func uploadMessage(result *services.UploadResult) string {
	switch {
	case result.Updated && result.Inline:
		return "Menu updated (inline image storage)"
	case result.Updated:
		return "Menu updated successfully"
	case result.Inline:
		return "Menu uploaded (inline image storage)"
	default:
		return "Menu uploaded successfully"
	}
}

// HistoryResponse carries a page of the caller's own menu records
type HistoryResponse struct {
	Success bool                 `json:"success"`
	Menus   []*models.MenuRecord `json:"menus"`
	Total   int                  `json:"total"`
}

// History handles GET /api/menu/history
func (h *MenuHandler) History(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	hotelID := middleware.GetHotelID(ctx)
	limit, offset := parsePagination(r)

	menus, total, err := h.menuService.GetHistory(ctx, hotelID, limit, offset)
	if err != nil {
		log.Error().Err(err).Str("hotel_id", hotelID).Msg("Failed to get menu history")
		respondError(w, "Server error fetching menus", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, HistoryResponse{Success: true, Menus: menus, Total: total})
}

// FeedResponse carries a page of menu records joined with hotel fields
type FeedResponse struct {
	Success bool                    `json:"success"`
	Menus   []*models.MenuWithHotel `json:"menus"`
	Total   int                     `json:"total"`
}

// Today handles GET /api/menu/today
func (h *MenuHandler) Today(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	menus, total, err := h.menuService.GetToday(r.Context(), limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get today's menus")
		respondError(w, "Server error fetching menus", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, FeedResponse{Success: true, Menus: menus, Total: total})
}

// Latest handles GET /api/menu/latest
func (h *MenuHandler) Latest(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	menus, total, err := h.menuService.GetLatest(r.Context(), limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get latest menus")
		respondError(w, "Server error fetching menus", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, FeedResponse{Success: true, Menus: menus, Total: total})
}

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// Response is the envelope every endpoint answers with
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// respondJSON writes a JSON body with the given status code
func respondJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// respondError sends a structured error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, statusCode, Response{Success: false, Message: message})
}

// parsePagination reads limit/offset query parameters, falling back to the
// service defaults on absence or garbage.
func parsePagination(r *http.Request) (int, int) {
	limit := 0
	offset := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil {
			limit = parsed
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if parsed, err := strconv.Atoi(offsetStr); err == nil {
			offset = parsed
		}
	}
	return limit, offset
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Dharmikkumbhani/khichdi-backend/internal/models"
	"github.com/Dharmikkumbhani/khichdi-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// SendOTPRequest represents the request body for requesting an OTP
type SendOTPRequest struct {
	MobileNumber string `json:"mobileNumber"`
}

// SendOTPResponse carries the issued code in mock mode for local development
type SendOTPResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	MockOTP string `json:"mockOtp,omitempty"`
}

// SendOTP handles POST /api/auth/send-otp
func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.MobileNumber == "" {
		respondError(w, "Mobile number is required", http.StatusBadRequest)
		return
	}

	code, mock, err := h.authService.SendOTP(r.Context(), req.MobileNumber)
	if err != nil {
		log.Error().Err(err).Str("mobile_number", req.MobileNumber).Msg("Failed to send OTP")
		respondError(w, "Failed to send OTP", http.StatusInternalServerError)
		return
	}

	resp := SendOTPResponse{Success: true, Message: "OTP sent successfully"}
	if mock {
		resp.MockOTP = code
	}
	respondJSON(w, http.StatusOK, resp)
}

// VerifyOTPRequest represents the request body for OTP verification
type VerifyOTPRequest struct {
	MobileNumber string `json:"mobileNumber"`
	OTP          string `json:"otp"`
	Name         string `json:"name"`
	HotelName    string `json:"hotelName"`
}

// TokenResponse carries an issued session token
type TokenResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Token   string        `json:"token"`
	Hotel   *models.Hotel `json:"hotel,omitempty"`
}

// VerifyOTP handles POST /api/auth/verify-otp
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.MobileNumber == "" || req.OTP == "" {
		respondError(w, "Mobile number and OTP are required", http.StatusBadRequest)
		return
	}

	token, hotel, err := h.authService.VerifyOTP(r.Context(), req.MobileNumber, req.OTP, req.Name, req.HotelName)
	if err != nil {
		if errors.Is(err, services.ErrInvalidOTP) {
			respondError(w, "Invalid or expired OTP", http.StatusBadRequest)
			return
		}
		log.Error().Err(err).Str("mobile_number", req.MobileNumber).Msg("Failed to verify OTP")
		respondError(w, "Failed to verify OTP", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, TokenResponse{
		Success: true,
		Message: "OTP verified successfully",
		Token:   token,
		Hotel:   hotel,
	})
}

// DirectLoginRequest represents the request body for OTP-less login
type DirectLoginRequest struct {
	MobileNumber string `json:"mobileNumber"`
	Name         string `json:"name"`
	HotelName    string `json:"hotelName"`
}

// DirectLogin handles POST /api/auth/direct-login
func (h *AuthHandler) DirectLogin(w http.ResponseWriter, r *http.Request) {
	var req DirectLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.MobileNumber == "" {
		respondError(w, "Mobile number is required", http.StatusBadRequest)
		return
	}

	token, hotel, err := h.authService.DirectLogin(r.Context(), req.MobileNumber, req.Name, req.HotelName)
	if err != nil {
		log.Error().Err(err).Str("mobile_number", req.MobileNumber).Msg("Failed to log in")
		respondError(w, "Failed to log in", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, TokenResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
		Hotel:   hotel,
	})
}

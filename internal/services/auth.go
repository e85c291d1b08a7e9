package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/Dharmikkumbhani/khichdi-backend/internal/models"
	"github.com/Dharmikkumbhani/khichdi-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	// RoleHotel is the only role protected routes accept
	RoleHotel = "hotel"

	otpTTL        = 5 * time.Minute
	tokenValidity = 7 * 24 * time.Hour
)

// ErrInvalidOTP is returned when a one-time code is wrong, expired or
// already consumed.
var ErrInvalidOTP = errors.New("invalid or expired OTP")

// OTPStore persists one-time codes
type OTPStore interface {
	Upsert(ctx context.Context, otp *models.OneTimeCode) error
	Consume(ctx context.Context, mobileNumber, code string, cutoff time.Time) (*models.OneTimeCode, error)
	DeleteExpired(ctx context.Context, cutoff time.Time) error
}

// HotelStore persists hotel accounts
type HotelStore interface {
	Create(ctx context.Context, hotel *models.Hotel) error
	GetByID(ctx context.Context, id string) (*models.Hotel, error)
	GetByMobileNumber(ctx context.Context, mobileNumber string) (*models.Hotel, error)
	UpdateProfile(ctx context.Context, id, name, hotelName string) error
}

// AuthService handles OTP login and session tokens
type AuthService struct {
	otpStore   OTPStore
	hotelStore HotelStore
	sms        *SMSClient
	jwtSecret  string
}

// NewAuthService creates a new auth service
func NewAuthService(otpStore OTPStore, hotelStore HotelStore, sms *SMSClient, jwtSecret string) *AuthService {
	return &AuthService{
		otpStore:   otpStore,
		hotelStore: hotelStore,
		sms:        sms,
		jwtSecret:  jwtSecret,
	}
}

// SendOTP issues a code for a mobile number, overwriting any previous one,
// and attempts delivery. Returns the code and whether delivery was mocked.
func (s *AuthService) SendOTP(ctx context.Context, mobileNumber string) (string, bool, error) {
	code := generateOTP()

	// Opportunistic cleanup; Postgres has no row TTL.
	if err := s.otpStore.DeleteExpired(ctx, time.Now().Add(-otpTTL)); err != nil {
		log.Warn().Err(err).Msg("Failed to delete expired one-time codes")
	}

	otp := &models.OneTimeCode{
		MobileNumber: mobileNumber,
		Code:         code,
		CreatedAt:    time.Now(),
	}
	if err := s.otpStore.Upsert(ctx, otp); err != nil {
		return "", false, fmt.Errorf("failed to store one-time code: %w", err)
	}

	// Delivery failures are logged, not surfaced: the code is stored and the
	// caller can retry delivery by requesting again.
	if err := s.sms.SendOTP(ctx, mobileNumber, code); err != nil {
		log.Error().Err(err).Str("mobile_number", mobileNumber).Msg("Failed to deliver OTP")
	}

	return code, !s.sms.Configured(), nil
}

// VerifyOTP validates and consumes a one-time code, then logs the hotel in
func (s *AuthService) VerifyOTP(ctx context.Context, mobileNumber, code, name, hotelName string) (string, *models.Hotel, error) {
	// Single use: Consume validates and deletes in one step, so two racing
	// verifications cannot both succeed.
	_, err := s.otpStore.Consume(ctx, mobileNumber, code, time.Now().Add(-otpTTL))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidOTP
		}
		return "", nil, fmt.Errorf("failed to consume one-time code: %w", err)
	}

	return s.login(ctx, mobileNumber, name, hotelName)
}

// DirectLogin issues a session without OTP verification
func (s *AuthService) DirectLogin(ctx context.Context, mobileNumber, name, hotelName string) (string, *models.Hotel, error) {
	return s.login(ctx, mobileNumber, name, hotelName)
}

// login creates the hotel on first sight, refreshes display fields on
// subsequent logins, and issues a session token.
func (s *AuthService) login(ctx context.Context, mobileNumber, name, hotelName string) (string, *models.Hotel, error) {
	hotel, err := s.hotelStore.GetByMobileNumber(ctx, mobileNumber)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		hotel = &models.Hotel{
			ID:           uuid.New().String(),
			MobileNumber: mobileNumber,
			Name:         name,
			HotelName:    hotelName,
			Role:         RoleHotel,
			CreatedAt:    time.Now(),
		}
		if err := s.hotelStore.Create(ctx, hotel); err != nil {
			return "", nil, fmt.Errorf("failed to create hotel: %w", err)
		}
	case err != nil:
		return "", nil, fmt.Errorf("failed to get hotel: %w", err)
	default:
		if name != "" {
			hotel.Name = name
		}
		if hotelName != "" {
			hotel.HotelName = hotelName
		}
		if name != "" || hotelName != "" {
			if err := s.hotelStore.UpdateProfile(ctx, hotel.ID, hotel.Name, hotel.HotelName); err != nil {
				return "", nil, fmt.Errorf("failed to update hotel profile: %w", err)
			}
		}
	}

	token, err := s.GenerateJWT(hotel.ID, hotel.Role)
	if err != nil {
		return "", nil, err
	}
	return token, hotel, nil
}

// GetHotel retrieves a hotel by ID
func (s *AuthService) GetHotel(ctx context.Context, id string) (*models.Hotel, error) {
	return s.hotelStore.GetByID(ctx, id)
}

// GenerateJWT generates a session token carrying the hotel identity and role
func (s *AuthService) GenerateJWT(hotelID, role string) (string, error) {
	claims := jwt.MapClaims{
		"hotel_id": hotelID,
		"role":     role,
		"exp":      time.Now().Add(tokenValidity).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateJWT validates a session token and returns the hotel ID and role
func (s *AuthService) ValidateJWT(tokenString string) (string, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return "", "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", fmt.Errorf("invalid token claims")
	}

	hotelID, ok := claims["hotel_id"].(string)
	if !ok {
		return "", "", fmt.Errorf("hotel_id not found in token")
	}
	role, _ := claims["role"].(string)

	return hotelID, role, nil
}

// generateOTP generates a random 5-digit code
func generateOTP() string {
	n, _ := rand.Int(rand.Reader, big.NewInt(90000))
	return fmt.Sprintf("%05d", n.Int64()+10000)
}

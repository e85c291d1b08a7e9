package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dharmikkumbhani/khichdi-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HotelRepository handles database operations for hotels
type HotelRepository struct {
	db *pgxpool.Pool
}

// NewHotelRepository creates a new hotel repository
func NewHotelRepository(db *pgxpool.Pool) *HotelRepository {
	return &HotelRepository{db: db}
}

// Create creates a new hotel
func (r *HotelRepository) Create(ctx context.Context, hotel *models.Hotel) error {
	query := `
		INSERT INTO hotels (id, mobile_number, name, hotel_name, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query,
		hotel.ID, hotel.MobileNumber, hotel.Name, hotel.HotelName, hotel.Role, hotel.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create hotel: %w", err)
	}
	return nil
}

// GetByID retrieves a hotel by ID
func (r *HotelRepository) GetByID(ctx context.Context, id string) (*models.Hotel, error) {
	query := `
		SELECT id, mobile_number, name, hotel_name, role, created_at
		FROM hotels
		WHERE id = $1
	`
	var hotel models.Hotel
	err := r.db.QueryRow(ctx, query, id).Scan(
		&hotel.ID, &hotel.MobileNumber, &hotel.Name, &hotel.HotelName,
		&hotel.Role, &hotel.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("hotel %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get hotel: %w", err)
	}
	return &hotel, nil
}

// GetByMobileNumber retrieves a hotel by its unique mobile number
func (r *HotelRepository) GetByMobileNumber(ctx context.Context, mobileNumber string) (*models.Hotel, error) {
	query := `
		SELECT id, mobile_number, name, hotel_name, role, created_at
		FROM hotels
		WHERE mobile_number = $1
	`
	var hotel models.Hotel
	err := r.db.QueryRow(ctx, query, mobileNumber).Scan(
		&hotel.ID, &hotel.MobileNumber, &hotel.Name, &hotel.HotelName,
		&hotel.Role, &hotel.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("hotel for %s: %w", mobileNumber, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get hotel by mobile number: %w", err)
	}
	return &hotel, nil
}

// UpdateProfile updates the display fields of a hotel
func (r *HotelRepository) UpdateProfile(ctx context.Context, id, name, hotelName string) error {
	query := `UPDATE hotels SET name = $1, hotel_name = $2 WHERE id = $3`
	result, err := r.db.Exec(ctx, query, name, hotelName, id)
	if err != nil {
		return fmt.Errorf("failed to update hotel profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("hotel %s: %w", id, ErrNotFound)
	}
	return nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dharmikkumbhani/khichdi-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MenuRepository handles database operations for menu records
type MenuRepository struct {
	db *pgxpool.Pool
}

// NewMenuRepository creates a new menu repository
func NewMenuRepository(db *pgxpool.Pool) *MenuRepository {
	return &MenuRepository{db: db}
}

// Create creates a new menu record
func (r *MenuRepository) Create(ctx context.Context, menu *models.MenuRecord) error {
	query := `
		INSERT INTO menu_records (id, hotel_id, image_url, note, date)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, menu.ID, menu.HotelID, menu.ImageURL, menu.Note, menu.Date)
	if err != nil {
		return fmt.Errorf("failed to create menu record: %w", err)
	}
	return nil
}

// Update replaces the image and note of an existing menu record.
// The record's date is left untouched (same-day replacement).
func (r *MenuRepository) Update(ctx context.Context, id, imageURL, note string) error {
	query := `UPDATE menu_records SET image_url = $1, note = $2 WHERE id = $3`
	result, err := r.db.Exec(ctx, query, imageURL, note, id)
	if err != nil {
		return fmt.Errorf("failed to update menu record: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("menu record %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetLatestByHotel retrieves a hotel's most recent menu record
func (r *MenuRepository) GetLatestByHotel(ctx context.Context, hotelID string) (*models.MenuRecord, error) {
	query := `
		SELECT id, hotel_id, image_url, note, date
		FROM menu_records
		WHERE hotel_id = $1
		ORDER BY date DESC
		LIMIT 1
	`
	var menu models.MenuRecord
	err := r.db.QueryRow(ctx, query, hotelID).Scan(
		&menu.ID, &menu.HotelID, &menu.ImageURL, &menu.Note, &menu.Date,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("menu record for hotel %s: %w", hotelID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get latest menu record: %w", err)
	}
	return &menu, nil
}

// GetByHotel retrieves a hotel's menu records newest-first with pagination
func (r *MenuRepository) GetByHotel(ctx context.Context, hotelID string, limit, offset int) ([]*models.MenuRecord, int, error) {
	countQuery := `SELECT COUNT(*) FROM menu_records WHERE hotel_id = $1`
	var total int
	if err := r.db.QueryRow(ctx, countQuery, hotelID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count menu records: %w", err)
	}

	query := `
		SELECT id, hotel_id, image_url, note, date
		FROM menu_records
		WHERE hotel_id = $1
		ORDER BY date DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, hotelID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get menu records: %w", err)
	}
	defer rows.Close()

	var menus []*models.MenuRecord
	for rows.Next() {
		var menu models.MenuRecord
		if err := rows.Scan(&menu.ID, &menu.HotelID, &menu.ImageURL, &menu.Note, &menu.Date); err != nil {
			return nil, 0, fmt.Errorf("failed to scan menu record: %w", err)
		}
		menus = append(menus, &menu)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating menu records: %w", err)
	}

	return menus, total, nil
}

// GetForWindow retrieves all hotels' menu records dated within [from, to),
// joined with hotel display fields, newest-first with pagination.
func (r *MenuRepository) GetForWindow(ctx context.Context, from, to time.Time, limit, offset int) ([]*models.MenuWithHotel, int, error) {
	countQuery := `SELECT COUNT(*) FROM menu_records WHERE date >= $1 AND date < $2`
	var total int
	if err := r.db.QueryRow(ctx, countQuery, from, to).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count menu records: %w", err)
	}

	query := `
		SELECT m.id, m.hotel_id, m.image_url, m.note, m.date, h.hotel_name, h.name
		FROM menu_records m
		JOIN hotels h ON h.id = m.hotel_id
		WHERE m.date >= $1 AND m.date < $2
		ORDER BY m.date DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.Query(ctx, query, from, to, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get menu records: %w", err)
	}
	defer rows.Close()

	menus, err := scanMenusWithHotel(rows)
	if err != nil {
		return nil, 0, err
	}
	return menus, total, nil
}

// GetLatestPerHotel retrieves the most recent menu record of each hotel,
// newest-first with pagination.
func (r *MenuRepository) GetLatestPerHotel(ctx context.Context, limit, offset int) ([]*models.MenuWithHotel, int, error) {
	countQuery := `SELECT COUNT(DISTINCT hotel_id) FROM menu_records`
	var total int
	if err := r.db.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count hotels with menus: %w", err)
	}

	query := `
		SELECT id, hotel_id, image_url, note, date, hotel_name, name
		FROM (
			SELECT DISTINCT ON (m.hotel_id)
				m.id, m.hotel_id, m.image_url, m.note, m.date, h.hotel_name, h.name
			FROM menu_records m
			JOIN hotels h ON h.id = m.hotel_id
			ORDER BY m.hotel_id, m.date DESC
		) latest
		ORDER BY date DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get latest menu records: %w", err)
	}
	defer rows.Close()

	menus, err := scanMenusWithHotel(rows)
	if err != nil {
		return nil, 0, err
	}
	return menus, total, nil
}

func scanMenusWithHotel(rows pgx.Rows) ([]*models.MenuWithHotel, error) {
	var menus []*models.MenuWithHotel
	for rows.Next() {
		var menu models.MenuWithHotel
		err := rows.Scan(
			&menu.ID, &menu.HotelID, &menu.ImageURL, &menu.Note, &menu.Date,
			&menu.HotelName, &menu.OwnerName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu record: %w", err)
		}
		menus = append(menus, &menu)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating menu records: %w", err)
	}
	return menus, nil
}

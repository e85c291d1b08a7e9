package repository

import (
	"context"
	"fmt"

	"github.com/Dharmikkumbhani/khichdi-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SubscriptionRepository handles database operations for push subscriptions
type SubscriptionRepository struct {
	db *pgxpool.Pool
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Upsert stores a subscription, replacing the keys of an existing
// (hotel_id, endpoint) pair. Returns the stored record.
func (r *SubscriptionRepository) Upsert(ctx context.Context, sub *models.PushSubscription) (*models.PushSubscription, error) {
	query := `
		INSERT INTO push_subscriptions (id, hotel_id, endpoint, expiration_time, p256dh, auth, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (hotel_id, endpoint)
		DO UPDATE SET expiration_time = EXCLUDED.expiration_time,
			p256dh = EXCLUDED.p256dh,
			auth = EXCLUDED.auth
		RETURNING id, created_at
	`
	stored := *sub
	err := r.db.QueryRow(ctx, query,
		sub.ID, sub.HotelID, sub.Subscription.Endpoint, sub.Subscription.ExpirationTime,
		sub.Subscription.Keys.P256dh, sub.Subscription.Keys.Auth, sub.CreatedAt,
	).Scan(&stored.ID, &stored.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert subscription: %w", err)
	}
	return &stored, nil
}

// GetByHotel retrieves all subscriptions registered for a hotel
func (r *SubscriptionRepository) GetByHotel(ctx context.Context, hotelID string) ([]*models.PushSubscription, error) {
	query := `
		SELECT id, hotel_id, endpoint, expiration_time, p256dh, auth, created_at
		FROM push_subscriptions
		WHERE hotel_id = $1
	`
	rows, err := r.db.Query(ctx, query, hotelID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []*models.PushSubscription
	for rows.Next() {
		var sub models.PushSubscription
		err := rows.Scan(
			&sub.ID, &sub.HotelID, &sub.Subscription.Endpoint, &sub.Subscription.ExpirationTime,
			&sub.Subscription.Keys.P256dh, &sub.Subscription.Keys.Auth, &sub.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, &sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscriptions: %w", err)
	}

	return subs, nil
}

// Delete removes a subscription by its (hotel_id, endpoint) pair
func (r *SubscriptionRepository) Delete(ctx context.Context, hotelID, endpoint string) error {
	query := `DELETE FROM push_subscriptions WHERE hotel_id = $1 AND endpoint = $2`
	_, err := r.db.Exec(ctx, query, hotelID, endpoint)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	return nil
}

// DeleteByID removes a subscription by ID (pruning a gone endpoint)
func (r *SubscriptionRepository) DeleteByID(ctx context.Context, id string) error {
	query := `DELETE FROM push_subscriptions WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	return nil
}

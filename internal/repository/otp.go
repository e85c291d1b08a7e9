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

// OTPRepository handles database operations for one-time codes
type OTPRepository struct {
	db *pgxpool.Pool
}

// NewOTPRepository creates a new one-time code repository
func NewOTPRepository(db *pgxpool.Pool) *OTPRepository {
	return &OTPRepository{db: db}
}

// Upsert stores a code for a mobile number, replacing any previous one.
// One active code per number.
func (r *OTPRepository) Upsert(ctx context.Context, otp *models.OneTimeCode) error {
	query := `
		INSERT INTO one_time_codes (mobile_number, code, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (mobile_number)
		DO UPDATE SET code = EXCLUDED.code, created_at = EXCLUDED.created_at
	`
	_, err := r.db.Exec(ctx, query, otp.MobileNumber, otp.Code, otp.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert one-time code: %w", err)
	}
	return nil
}

// Consume validates and deletes the code for a mobile number in a single
// statement, so two concurrent verifications cannot both succeed. Expired or
// mismatched codes report ErrNotFound.
func (r *OTPRepository) Consume(ctx context.Context, mobileNumber, code string, cutoff time.Time) (*models.OneTimeCode, error) {
	query := `
		DELETE FROM one_time_codes
		WHERE mobile_number = $1 AND code = $2 AND created_at > $3
		RETURNING mobile_number, code, created_at
	`
	var otp models.OneTimeCode
	err := r.db.QueryRow(ctx, query, mobileNumber, code, cutoff).Scan(
		&otp.MobileNumber, &otp.Code, &otp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("one-time code for %s: %w", mobileNumber, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to consume one-time code: %w", err)
	}
	return &otp, nil
}

// DeleteExpired removes codes created before the cutoff
func (r *OTPRepository) DeleteExpired(ctx context.Context, cutoff time.Time) error {
	query := `DELETE FROM one_time_codes WHERE created_at <= $1`
	_, err := r.db.Exec(ctx, query, cutoff)
	if err != nil {
		return fmt.Errorf("failed to delete expired one-time codes: %w", err)
	}
	return nil
}

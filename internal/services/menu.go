package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dharmikkumbhani/khichdi-backend/internal/models"
	"github.com/Dharmikkumbhani/khichdi-backend/internal/repository"

	"github.com/google/uuid"
)

// MenuStore persists menu records
type MenuStore interface {
	Create(ctx context.Context, menu *models.MenuRecord) error
	Update(ctx context.Context, id, imageURL, note string) error
	GetLatestByHotel(ctx context.Context, hotelID string) (*models.MenuRecord, error)
	GetByHotel(ctx context.Context, hotelID string, limit, offset int) ([]*models.MenuRecord, int, error)
	GetForWindow(ctx context.Context, from, to time.Time, limit, offset int) ([]*models.MenuWithHotel, int, error)
	GetLatestPerHotel(ctx context.Context, limit, offset int) ([]*models.MenuWithHotel, int, error)
}

// MenuService handles the menu publishing workflow
type MenuService struct {
	menuStore MenuStore
	sink      BlobSink
	now       func() time.Time
}

// NewMenuService creates a new menu service
func NewMenuService(menuStore MenuStore, sink BlobSink) *MenuService {
	return &MenuService{
		menuStore: menuStore,
		sink:      sink,
		now:       time.Now,
	}
}

// UploadResult is the outcome of an upload
type UploadResult struct {
	Menu *models.MenuRecord `json:"menu"`
	// Updated is true when today's existing record was replaced in place
	Updated bool `json:"updated"`
	// Inline is true when the image was embedded as a data URI instead of
	// being uploaded to the media store
	Inline bool `json:"inline"`
}

// UploadMenu publishes a menu image for a hotel. A second upload on the same
// local calendar day replaces that day's record; a new day gets a new record.
func (s *MenuService) UploadMenu(ctx context.Context, hotelID string, image []byte, contentType, note string) (*UploadResult, error) {
	latest, err := s.menuStore.GetLatestByHotel(ctx, hotelID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to get latest menu: %w", err)
	}

	imageURL, err := s.sink.Store(ctx, hotelID, image, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store menu image: %w", err)
	}

	now := s.now()
	if latest != nil && sameLocalDay(latest.Date, now) {
		if err := s.menuStore.Update(ctx, latest.ID, imageURL, note); err != nil {
			return nil, fmt.Errorf("failed to update menu record: %w", err)
		}
		latest.ImageURL = imageURL
		latest.Note = note
		return &UploadResult{Menu: latest, Updated: true, Inline: s.sink.Inline()}, nil
	}

	menu := &models.MenuRecord{
		ID:       uuid.New().String(),
		HotelID:  hotelID,
		ImageURL: imageURL,
		Note:     note,
		Date:     now,
	}
	if err := s.menuStore.Create(ctx, menu); err != nil {
		return nil, fmt.Errorf("failed to create menu record: %w", err)
	}
	return &UploadResult{Menu: menu, Updated: false, Inline: s.sink.Inline()}, nil
}

// GetHistory retrieves a hotel's own menu records, newest first
func (s *MenuService) GetHistory(ctx context.Context, hotelID string, limit, offset int) ([]*models.MenuRecord, int, error) {
	limit, offset = clampPage(limit, offset)
	return s.menuStore.GetByHotel(ctx, hotelID, limit, offset)
}

// GetToday retrieves every hotel's menu dated today (local day window)
func (s *MenuService) GetToday(ctx context.Context, limit, offset int) ([]*models.MenuWithHotel, int, error) {
	limit, offset = clampPage(limit, offset)
	now := s.now().Local()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 0, 1)
	return s.menuStore.GetForWindow(ctx, from, to, limit, offset)
}

// GetLatest retrieves the most recent menu per hotel, newest first
func (s *MenuService) GetLatest(ctx context.Context, limit, offset int) ([]*models.MenuWithHotel, int, error) {
	limit, offset = clampPage(limit, offset)
	return s.menuStore.GetLatestPerHotel(ctx, limit, offset)
}

// sameLocalDay reports calendar-day equality in the server's local timezone:
// year, month and day components match, regardless of elapsed hours.
func sameLocalDay(a, b time.Time) bool {
	a, b = a.Local(), b.Local()
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

package handlers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Dharmikkumbhani/khichdi-backend/internal/models"
	"github.com/Dharmikkumbhani/khichdi-backend/internal/repository"
)

// In-memory stores backing the real services in handler tests.

type memHotelStore struct {
	mu     sync.Mutex
	hotels map[string]*models.Hotel
}

func newMemHotelStore(hotels ...*models.Hotel) *memHotelStore {
	s := &memHotelStore{hotels: make(map[string]*models.Hotel)}
	for _, h := range hotels {
		s.hotels[h.ID] = h
	}
	return s
}

func (s *memHotelStore) Create(_ context.Context, hotel *models.Hotel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hotels[hotel.ID] = hotel
	return nil
}

func (s *memHotelStore) GetByID(_ context.Context, id string) (*models.Hotel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h, ok := s.hotels[id]; ok {
		return h, nil
	}
	return nil, fmt.Errorf("hotel %s: %w", id, repository.ErrNotFound)
}

func (s *memHotelStore) GetByMobileNumber(_ context.Context, mobileNumber string) (*models.Hotel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range s.hotels {
		if h.MobileNumber == mobileNumber {
			return h, nil
		}
	}
	return nil, fmt.Errorf("hotel for %s: %w", mobileNumber, repository.ErrNotFound)
}

func (s *memHotelStore) UpdateProfile(_ context.Context, id, name, hotelName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.hotels[id]
	if !ok {
		return fmt.Errorf("hotel %s: %w", id, repository.ErrNotFound)
	}
	h.Name = name
	h.HotelName = hotelName
	return nil
}

type memMenuStore struct {
	mu    sync.Mutex
	menus []*models.MenuRecord
}

func (s *memMenuStore) Create(_ context.Context, menu *models.MenuRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *menu
	s.menus = append(s.menus, &copied)
	return nil
}

func (s *memMenuStore) Update(_ context.Context, id, imageURL, note string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.menus {
		if m.ID == id {
			m.ImageURL = imageURL
			m.Note = note
			return nil
		}
	}
	return fmt.Errorf("menu record %s: %w", id, repository.ErrNotFound)
}

func (s *memMenuStore) GetLatestByHotel(_ context.Context, hotelID string) (*models.MenuRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *models.MenuRecord
	for _, m := range s.menus {
		if m.HotelID != hotelID {
			continue
		}
		if latest == nil || m.Date.After(latest.Date) {
			latest = m
		}
	}
	if latest == nil {
		return nil, fmt.Errorf("menu record for hotel %s: %w", hotelID, repository.ErrNotFound)
	}
	copied := *latest
	return &copied, nil
}

func (s *memMenuStore) GetByHotel(_ context.Context, hotelID string, limit, offset int) ([]*models.MenuRecord, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var menus []*models.MenuRecord
	for _, m := range s.menus {
		if m.HotelID == hotelID {
			menus = append(menus, m)
		}
	}
	return menus, len(menus), nil
}

func (s *memMenuStore) GetForWindow(_ context.Context, from, to time.Time, limit, offset int) ([]*models.MenuWithHotel, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var menus []*models.MenuWithHotel
	for _, m := range s.menus {
		if !m.Date.Before(from) && m.Date.Before(to) {
			menus = append(menus, &models.MenuWithHotel{MenuRecord: *m})
		}
	}
	return menus, len(menus), nil
}

func (s *memMenuStore) GetLatestPerHotel(_ context.Context, limit, offset int) ([]*models.MenuWithHotel, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	latest := make(map[string]*models.MenuRecord)
	for _, m := range s.menus {
		if cur, ok := latest[m.HotelID]; !ok || m.Date.After(cur.Date) {
			latest[m.HotelID] = m
		}
	}
	var menus []*models.MenuWithHotel
	for _, m := range latest {
		menus = append(menus, &models.MenuWithHotel{MenuRecord: *m})
	}
	return menus, len(menus), nil
}

type memSubStore struct {
	mu   sync.Mutex
	subs map[string]*models.PushSubscription
}

func newMemSubStore() *memSubStore {
	return &memSubStore{subs: make(map[string]*models.PushSubscription)}
}

func (s *memSubStore) Upsert(_ context.Context, sub *models.PushSubscription) (*models.PushSubscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.subs {
		if existing.HotelID == sub.HotelID && existing.Subscription.Endpoint == sub.Subscription.Endpoint {
			existing.Subscription = sub.Subscription
			return existing, nil
		}
	}
	copied := *sub
	s.subs[copied.ID] = &copied
	return &copied, nil
}

func (s *memSubStore) GetByHotel(_ context.Context, hotelID string) ([]*models.PushSubscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var subs []*models.PushSubscription
	for _, sub := range s.subs {
		if sub.HotelID == hotelID {
			subs = append(subs, sub)
		}
	}
	return subs, nil
}

func (s *memSubStore) Delete(_ context.Context, hotelID, endpoint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sub := range s.subs {
		if sub.HotelID == hotelID && sub.Subscription.Endpoint == endpoint {
			delete(s.subs, id)
		}
	}
	return nil
}

func (s *memSubStore) DeleteByID(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
	return nil
}

func (s *memSubStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// noopSender delivers nothing and never fails
type noopSender struct{}

func (noopSender) Send(_ context.Context, _ *models.Subscription, _ []byte) error {
	return nil
}

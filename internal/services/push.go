package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	appconfig "github.com/Dharmikkumbhani/khichdi-backend/internal/config"
	"github.com/Dharmikkumbhani/khichdi-backend/internal/models"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrEndpointGone is reported when the push service says a subscription
// endpoint permanently no longer exists (HTTP 404/410). Such subscriptions
// are pruned.
var ErrEndpointGone = errors.New("subscription endpoint gone")

// PushSender delivers one payload to one subscription endpoint
type PushSender interface {
	Send(ctx context.Context, sub *models.Subscription, payload []byte) error
}

// SubscriptionStore persists push subscriptions
type SubscriptionStore interface {
	Upsert(ctx context.Context, sub *models.PushSubscription) (*models.PushSubscription, error)
	GetByHotel(ctx context.Context, hotelID string) ([]*models.PushSubscription, error)
	Delete(ctx context.Context, hotelID, endpoint string) error
	DeleteByID(ctx context.Context, id string) error
}

// WebPushSender delivers notifications over the Web Push protocol with VAPID
type WebPushSender struct {
	subject    string
	publicKey  string
	privateKey string
}

// NewWebPushSender creates a web push sender from the VAPID configuration
func NewWebPushSender(cfg appconfig.PushConfig) *WebPushSender {
	subject := cfg.Subject
	if subject == "" {
		subject = "mailto:admin@example.com"
	}
	return &WebPushSender{
		subject:    subject,
		publicKey:  cfg.VAPIDPublicKey,
		privateKey: cfg.VAPIDPrivateKey,
	}
}

// Send implements PushSender
func (s *WebPushSender) Send(ctx context.Context, sub *models.Subscription, payload []byte) error {
	resp, err := webpush.SendNotificationWithContext(ctx, payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.Keys.P256dh,
			Auth:   sub.Keys.Auth,
		},
	}, &webpush.Options{
		Subscriber:      s.subject,
		VAPIDPublicKey:  s.publicKey,
		VAPIDPrivateKey: s.privateKey,
		TTL:             60,
	})
	if err != nil {
		return fmt.Errorf("failed to send push notification: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return fmt.Errorf("push service returned %d: %w", resp.StatusCode, ErrEndpointGone)
	case resp.StatusCode >= 400:
		return fmt.Errorf("push service returned %d", resp.StatusCode)
	}
	return nil
}

// notificationPayload is the JSON body delivered to subscribers
type notificationPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
}

// PushService handles the subscription registry and notification fan-out
type PushService struct {
	subStore       SubscriptionStore
	hotelStore     HotelStore
	sender         PushSender
	vapidPublicKey string
}

// NewPushService creates a new push service
func NewPushService(subStore SubscriptionStore, hotelStore HotelStore, sender PushSender, vapidPublicKey string) *PushService {
	return &PushService{
		subStore:       subStore,
		hotelStore:     hotelStore,
		sender:         sender,
		vapidPublicKey: vapidPublicKey,
	}
}

// VAPIDPublicKey returns the server's public push key
func (s *PushService) VAPIDPublicKey() string {
	return s.vapidPublicKey
}

// Subscribe registers a push subscription for a hotel. Subscribing again with
// the same (hotel, endpoint) pair refreshes the stored keys in place.
func (s *PushService) Subscribe(ctx context.Context, hotelID string, subscription models.Subscription) (*models.PushSubscription, error) {
	if _, err := s.hotelStore.GetByID(ctx, hotelID); err != nil {
		return nil, err
	}

	sub := &models.PushSubscription{
		ID:           uuid.New().String(),
		HotelID:      hotelID,
		Subscription: subscription,
		CreatedAt:    time.Now(),
	}
	return s.subStore.Upsert(ctx, sub)
}

// Unsubscribe removes a registered subscription
func (s *PushService) Unsubscribe(ctx context.Context, hotelID, endpoint string) error {
	return s.subStore.Delete(ctx, hotelID, endpoint)
}

// NotifyMenuUpdated delivers a "menu updated" notification to every
// subscription of a hotel. Sends run concurrently; the call returns once all
// of them have settled. Endpoints reported gone are pruned, other failures
// are logged and the subscription kept for the next trigger. Errors never
// propagate to the caller.
func (s *PushService) NotifyMenuUpdated(ctx context.Context, hotelID string) {
	hotel, err := s.hotelStore.GetByID(ctx, hotelID)
	if err != nil {
		log.Warn().Err(err).Str("hotel_id", hotelID).Msg("Skipping fan-out, hotel not found")
		return
	}

	subs, err := s.subStore.GetByHotel(ctx, hotelID)
	if err != nil {
		log.Error().Err(err).Str("hotel_id", hotelID).Msg("Failed to load subscriptions for fan-out")
		return
	}
	if len(subs) == 0 {
		return
	}

	hotelName := hotel.HotelName
	if hotelName == "" {
		hotelName = "Your hotel"
	}
	payload, err := json.Marshal(notificationPayload{
		Title: "Menu Updated",
		Body:  fmt.Sprintf("%s has updated today's menu!", hotelName),
		URL:   "/menu",
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal notification payload")
		return
	}

	var wg sync.WaitGroup
	for _, sub := range subs {
		wg.Add(1)
		go func(sub *models.PushSubscription) {
			defer wg.Done()

			err := s.sender.Send(ctx, &sub.Subscription, payload)
			if err == nil {
				return
			}

			if errors.Is(err, ErrEndpointGone) {
				if derr := s.subStore.DeleteByID(ctx, sub.ID); derr != nil {
					log.Error().Err(derr).Str("subscription_id", sub.ID).Msg("Failed to prune gone subscription")
					return
				}
				log.Info().
					Str("subscription_id", sub.ID).
					Str("hotel_id", hotelID).
					Msg("Pruned gone push subscription")
				return
			}

			// Transient failure, the subscription gets another chance on
			// the next trigger.
			log.Warn().Err(err).Str("subscription_id", sub.ID).Msg("Push delivery failed")
		}(sub)
	}
	wg.Wait()

	log.Info().
		Str("hotel_id", hotelID).
		Int("subscriptions", len(subs)).
		Msg("Menu update fan-out finished")
}

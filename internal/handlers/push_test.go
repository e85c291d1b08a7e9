package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dharmikkumbhani/khichdi-backend/internal/models"
	"github.com/Dharmikkumbhani/khichdi-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPushTestRouter(subs *memSubStore) *chi.Mux {
	hotels := newMemHotelStore(&models.Hotel{ID: "hotel-1", HotelName: "Annapurna"})
	pushService := services.NewPushService(subs, hotels, noopSender{}, "test-public-key")
	handler := NewPushHandler(pushService)

	r := chi.NewRouter()
	r.Get("/api/push/vapidPublicKey", handler.VAPIDPublicKey)
	r.Post("/api/push/subscribe", handler.Subscribe)
	r.Post("/api/push/unsubscribe", handler.Unsubscribe)
	return r
}

func postJSON(t *testing.T, router *chi.Mux, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestVAPIDPublicKey(t *testing.T) {
	router := newPushTestRouter(newMemSubStore())

	req := httptest.NewRequest("GET", "/api/push/vapidPublicKey", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "test-public-key", resp["publicKey"])
}

func TestSubscribeUpsertsOnce(t *testing.T) {
	subs := newMemSubStore()
	router := newPushTestRouter(subs)

	payload := SubscribeRequest{
		HotelID: "hotel-1",
		Subscription: &models.Subscription{
			Endpoint: "https://push.example.com/ep-1",
			Keys:     models.SubscriptionKeys{P256dh: "p", Auth: "a"},
		},
	}

	w := postJSON(t, router, "/api/push/subscribe", payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Same (hotel, endpoint) pair again: no duplicate row.
	w = postJSON(t, router, "/api/push/subscribe", payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	assert.Equal(t, 1, subs.count())
}

func TestSubscribeValidatesInput(t *testing.T) {
	router := newPushTestRouter(newMemSubStore())

	w := postJSON(t, router, "/api/push/subscribe", SubscribeRequest{HotelID: "hotel-1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, router, "/api/push/subscribe", SubscribeRequest{
		Subscription: &models.Subscription{Endpoint: "https://push.example.com/ep-1"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubscribeUnknownHotel(t *testing.T) {
	router := newPushTestRouter(newMemSubStore())

	w := postJSON(t, router, "/api/push/subscribe", SubscribeRequest{
		HotelID: "nope",
		Subscription: &models.Subscription{
			Endpoint: "https://push.example.com/ep-1",
			Keys:     models.SubscriptionKeys{P256dh: "p", Auth: "a"},
		},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Hotel not found")
}

func TestUnsubscribe(t *testing.T) {
	subs := newMemSubStore()
	router := newPushTestRouter(subs)

	w := postJSON(t, router, "/api/push/subscribe", SubscribeRequest{
		HotelID: "hotel-1",
		Subscription: &models.Subscription{
			Endpoint: "https://push.example.com/ep-1",
			Keys:     models.SubscriptionKeys{P256dh: "p", Auth: "a"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, 1, subs.count())

	w = postJSON(t, router, "/api/push/unsubscribe", UnsubscribeRequest{
		HotelID:  "hotel-1",
		Endpoint: "https://push.example.com/ep-1",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, subs.count())
}

func TestUnsubscribeValidatesInput(t *testing.T) {
	router := newPushTestRouter(newMemSubStore())

	w := postJSON(t, router, "/api/push/unsubscribe", UnsubscribeRequest{HotelID: "hotel-1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

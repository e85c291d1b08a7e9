package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Dharmikkumbhani/khichdi-backend/internal/models"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWSHubBroadcastMenuUpdated(t *testing.T) {
	hub := NewWSHub()
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Register("hotel-1", conn)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return hub.ViewerCount("hotel-1") == 1
	}, time.Second, 10*time.Millisecond)

	hub.BroadcastMenuUpdated("hotel-1", &models.MenuRecord{ID: "menu-1", HotelID: "hotel-1"})

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg WSMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "menu_updated", msg.Type)
	assert.Equal(t, "hotel-1", msg.HotelID)
	require.NotNil(t, msg.Menu)
	assert.Equal(t, "menu-1", msg.Menu.ID)
}

func TestWSHubUnregister(t *testing.T) {
	hub := NewWSHub()
	upgrader := websocket.Upgrader{}

	conns := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Register("hotel-1", conn)
		conns <- conn
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer client.Close()

	serverConn := <-conns
	require.Equal(t, 1, hub.ViewerCount("hotel-1"))

	hub.Unregister("hotel-1", serverConn)
	assert.Equal(t, 0, hub.ViewerCount("hotel-1"))

	// Broadcasting to an empty feed is a no-op.
	hub.BroadcastMenuUpdated("hotel-1", &models.MenuRecord{ID: "menu-1"})
}

package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pageza/recipe-tracker/backend/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T, userID uuid.UUID) (*Hub, string) {
	t.Helper()
	hub := NewHub(logging.Discard())
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Serve(userID, conn)
	}))
	t.Cleanup(srv.Close)

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestHubBroadcastReachesUser(t *testing.T) {
	userID := uuid.New()
	hub, url := startHub(t, userID)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Count(userID) == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Broadcast(context.Background(), userID, "day", map[string]int{"recipes": 2})
	hub.Broadcast(context.Background(), uuid.New(), "day", "not for you")

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg struct {
		Type string         `json:"type"`
		Data map[string]int `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "day", msg.Type)
	assert.Equal(t, 2, msg.Data["recipes"])
}

func TestHubUnregistersOnClose(t *testing.T) {
	userID := uuid.New()
	hub, url := startHub(t, userID)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.Count(userID) == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.Count(userID) == 0 }, 2*time.Second, 10*time.Millisecond)
}

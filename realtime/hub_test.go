package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func newTestHubServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.Serve(w, r)
	}))
	t.Cleanup(server.Close)
	return hub, server
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForConnections(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.GetActiveConnectionsCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("expect %d active connections, got %d", want, hub.GetActiveConnectionsCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestEmitWithoutConnections(t *testing.T) {
	hub := NewHub()

	// Nothing to deliver to; must not block or panic.
	hub.Emit("posts", map[string]string{"action": "create"})
	require.Equal(t, 0, hub.GetActiveConnectionsCount())
}

func TestEmitFansOutToAllConnections(t *testing.T) {
	hub, server := newTestHubServer(t)

	first := dial(t, server)
	second := dial(t, server)
	waitForConnections(t, hub, 2)

	hub.Emit("posts", map[string]string{"action": "create"})

	for _, conn := range []*websocket.Conn{first, second} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, payload, err := conn.ReadMessage()
		require.NoError(t, err)

		var msg struct {
			Event string            `json:"event"`
			Data  map[string]string `json:"data"`
		}
		require.NoError(t, json.Unmarshal(payload, &msg))
		require.Equal(t, "posts", msg.Event)
		require.Equal(t, "create", msg.Data["action"])
	}
}

func TestDisconnectedClientIsRemoved(t *testing.T) {
	hub, server := newTestHubServer(t)

	conn := dial(t, server)
	waitForConnections(t, hub, 1)

	conn.Close()
	waitForConnections(t, hub, 0)

	// Emitting after the disconnect is a no-op, not a failure.
	hub.Emit("posts", map[string]string{"action": "delete"})
}

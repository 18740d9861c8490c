package realtime

import (
	"encoding/json"
	"net/http"
	"sync"

	Logger "github.com/ArjunKaliyath/socials/utils/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// sendBufferSize bounds the per-connection backlog. A client that falls this
// far behind starts losing events, which is acceptable: the channel is a hint
// to refetch, not a source of truth.
const sendBufferSize = 16

// message is the wire envelope for every broadcast frame.
type message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub contains all structures that handle the server's realtime connections.
// All internal state should not be handled directly by hand but managed by its
// public receivers.
type Hub struct {
	// connectionMap maps from connection id (uuid) to the connection's send
	// channel. Keying by uuid makes deletion of a connection O(1). Each entry
	// is removed once its websocket closes.
	connectionMap map[string]chan []byte

	// Adding/Removing a connection must grab WriteLock, while all other usage
	// (e.g. emitting an event) should grab a ReadLock.
	mu sync.RWMutex

	upgrader websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		connectionMap: make(map[string]chan []byte),
		mu:            sync.RWMutex{},
		upgrader: websocket.Upgrader{
			// The REST surface already allows any origin, keep the websocket
			// endpoint consistent with it.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Thread-safe
func (h *Hub) addConnection() (chan []byte, string) {
	chId := "ws_" + uuid.New().String()
	ch := make(chan []byte, sendBufferSize)

	h.mu.Lock()
	defer h.mu.Unlock()

	h.connectionMap[chId] = ch
	return ch, chId
}

// Thread-safe
func (h *Hub) removeConnection(chId string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.connectionMap, chId)
}

// Thread-safe
func (h *Hub) GetActiveConnectionsCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.connectionMap)
}

// Emit fans the payload out to every currently connected client. Delivery is
// best-effort and at-most-once: clients whose send buffer is full are skipped,
// clients that connect later never see the event, and there is no
// acknowledgement. Emit never blocks on a slow client.
func (h *Hub) Emit(event string, data interface{}) {
	payload, err := json.Marshal(message{Event: event, Data: data})
	if err != nil {
		Logger.Log.Errorf("fail to marshal %s event: %v", event, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for chId, ch := range h.connectionMap {
		select {
		case ch <- payload:
		default:
			Logger.Log.Warnf("dropping %s event for slow connection %s", event, chId)
		}
	}
}

// Serve upgrades the incoming request to a websocket, registers it with the
// hub and pumps broadcast frames to the client until it disconnects. It
// returns once the connection is gone; connection lifecycle errors are normal
// and only logged.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		Logger.Log.Warnf("fail to upgrade websocket connection: %v", err)
		return
	}

	ch, chId := h.addConnection()
	defer func() {
		h.removeConnection(chId)
		conn.Close()
	}()

	// The client never sends application data; the read loop exists to detect
	// the close handshake or a dead peer.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case payload := <-ch:
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				Logger.Log.Infof("connection %s closed during write: %v", chId, err)
				return
			}
		case <-done:
			return
		}
	}
}

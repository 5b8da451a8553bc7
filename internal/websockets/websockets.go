// Package websockets pushes stats-update events to connected dashboard
// clients so they can refresh without polling.
package websockets

import (
	"encoding/json"
	"sync"

	"server/internal/logger"
	. "server/internal/models"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// StatsUpdateEvent is the single message type the server pushes.
type StatsUpdateEvent struct {
	Type   string    `json:"type"`
	Record *VisaStat `json:"record"`
}

type Manager struct {
	mu      sync.Mutex
	clients map[string]*websocket.Conn
	log     logger.Logger
}

func New() *Manager {
	return &Manager{
		clients: make(map[string]*websocket.Conn),
		log:     logger.New("websockets"),
	}
}

// HandleWebSocket registers the connection and blocks reading until the
// client disconnects. Incoming messages are discarded; the socket is
// push-only.
func (m *Manager) HandleWebSocket(conn *websocket.Conn) {
	log := m.log.Function("HandleWebSocket")

	id := uuid.NewString()
	m.mu.Lock()
	m.clients[id] = conn
	m.mu.Unlock()
	log.Info("websocket client connected", "clientId", id)

	defer func() {
		m.mu.Lock()
		delete(m.clients, id)
		m.mu.Unlock()
		_ = conn.Close()
		log.Info("websocket client disconnected", "clientId", id)
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// SendStatsUpdate broadcasts a freshly submitted record to every client.
// Dead connections are dropped on write failure.
func (m *Manager) SendStatsUpdate(stat *VisaStat) {
	log := m.log.Function("SendStatsUpdate")

	payload, err := json.Marshal(StatsUpdateEvent{Type: "stats_updated", Record: stat})
	if err != nil {
		log.Er("failed to marshal stats update", err)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, conn := range m.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Warn("dropping websocket client", "clientId", id, "error", err)
			_ = conn.Close()
			delete(m.clients, id)
		}
	}
}

// Close disconnects every client.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, conn := range m.clients {
		_ = conn.Close()
		delete(m.clients, id)
	}
}

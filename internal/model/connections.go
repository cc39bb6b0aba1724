package model

import (
	"sync"

	"github.com/gofiber/websocket/v2"

	"github.com/benbeisheim/pixelchess-backend/internal/ws"
)

// Conn is the part of a WebSocket connection a game writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// subscriber serialises writes; a WebSocket connection allows one
// concurrent writer.
type subscriber struct {
	mu   sync.Mutex
	conn Conn
}

func (s *subscriber) send(msg ws.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(msg)
}

func (s *subscriber) reject(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason),
	)
	_ = s.conn.Close()
}

// GameConnections are the live connections of one game, by player id.
type GameConnections struct {
	connections map[string]*subscriber
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*subscriber),
	}
}

// add keeps an existing connection and reports false for a duplicate.
func (gc *GameConnections) add(playerID string, conn Conn) bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if _, exists := gc.connections[playerID]; exists {
		return false
	}
	gc.connections[playerID] = &subscriber{conn: conn}
	return true
}

// remove drops playerID only if conn is still the registered connection.
func (gc *GameConnections) remove(playerID string, conn Conn) bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if s, exists := gc.connections[playerID]; exists && s.conn == conn {
		delete(gc.connections, playerID)
		return true
	}
	return false
}

func (gc *GameConnections) get(playerID string) (*subscriber, bool) {
	gc.mu.RLock()
	defer gc.mu.RUnlock()
	s, ok := gc.connections[playerID]
	return s, ok
}

func (gc *GameConnections) snapshot() map[string]*subscriber {
	gc.mu.RLock()
	defer gc.mu.RUnlock()
	out := make(map[string]*subscriber, len(gc.connections))
	for id, s := range gc.connections {
		out[id] = s
	}
	return out
}

func (gc *GameConnections) Len() int {
	gc.mu.RLock()
	defer gc.mu.RUnlock()
	return len(gc.connections)
}

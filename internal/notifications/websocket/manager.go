package websocket

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"sharaspot/backend/internal/notifications"
)

// Manager handles WebSocket connections and fans events out to them.
type Manager struct {
	connections map[string]*Connection
	mu          sync.RWMutex
	hub         *Hub
	upgrader    websocket.Upgrader
	logger      *zap.Logger
}

// Connection represents a WebSocket client connection.
type Connection struct {
	ID           string
	UserID       string
	Conn         *websocket.Conn
	Send         chan notifications.Event
	LastActivity time.Time
	mu           sync.Mutex
}

// Hub manages the broadcast of events to connections.
type Hub struct {
	connections map[*Connection]bool
	broadcast   chan notifications.Event
	register    chan *Connection
	unregister  chan *Connection
	stop        chan struct{}
}

var _ notifications.Publisher = (*Manager)(nil)

// NewManager creates a new WebSocket manager and starts its hub.
func NewManager(logger *zap.Logger) *Manager {
	hub := &Hub{
		connections: make(map[*Connection]bool),
		broadcast:   make(chan notifications.Event, 256),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		stop:        make(chan struct{}),
	}

	go hub.run()

	return &Manager{
		connections: make(map[string]*Connection),
		hub:         hub,
		logger:      logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// The feed carries no secrets; any origin may listen.
				return true
			},
		},
	}
}

// Publish queues an event for delivery to connected clients.
func (m *Manager) Publish(event notifications.Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case m.hub.broadcast <- event:
	default:
		m.logger.Warn("Live feed backlog full, dropping event", zap.String("type", string(event.Type)))
	}
}

// HandleConnection upgrades an HTTP request to a WebSocket connection and
// registers it with the hub. userID may be empty for anonymous listeners.
func (m *Manager) HandleConnection(w http.ResponseWriter, r *http.Request, userID string) (*Connection, error) {
	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to upgrade connection: %w", err)
	}

	connection := &Connection{
		ID:           uuid.New().String(),
		UserID:       userID,
		Conn:         conn,
		Send:         make(chan notifications.Event, 256),
		LastActivity: time.Now(),
	}

	m.hub.register <- connection

	m.mu.Lock()
	m.connections[connection.ID] = connection
	m.mu.Unlock()

	go m.readPump(connection)
	go m.writePump(connection)

	return connection, nil
}

// ConnectionCount returns the number of live connections.
func (m *Manager) ConnectionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.connections)
}

// Stop shuts down the hub and closes all connections.
func (m *Manager) Stop() {
	close(m.hub.stop)
}

// readPump drains the connection so pings/pongs and close frames are
// processed. The feed is one-way; client payloads are discarded.
func (m *Manager) readPump(conn *Connection) {
	defer func() {
		m.hub.unregister <- conn
		m.mu.Lock()
		delete(m.connections, conn.ID)
		m.mu.Unlock()
		conn.Conn.Close()
	}()

	conn.Conn.SetReadLimit(512)
	conn.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.Conn.SetPongHandler(func(string) error {
		conn.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := conn.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				m.logger.Debug("WebSocket read error", zap.Error(err))
			}
			return
		}
		conn.mu.Lock()
		conn.LastActivity = time.Now()
		conn.mu.Unlock()
	}
}

// writePump pumps events from the hub to the WebSocket connection.
func (m *Manager) writePump(conn *Connection) {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		conn.Conn.Close()
	}()

	for {
		select {
		case event, ok := <-conn.Send:
			conn.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				conn.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.Conn.WriteJSON(event); err != nil {
				return
			}

		case <-ticker.C:
			conn.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.connections[conn] = true

		case conn := <-h.unregister:
			if _, ok := h.connections[conn]; ok {
				delete(h.connections, conn)
				close(conn.Send)
			}

		case event := <-h.broadcast:
			for conn := range h.connections {
				if event.Target != "" && conn.UserID != event.Target {
					continue
				}
				select {
				case conn.Send <- event:
				default:
					delete(h.connections, conn)
					close(conn.Send)
				}
			}

		case <-h.stop:
			for conn := range h.connections {
				close(conn.Send)
				delete(h.connections, conn)
			}
			return
		}
	}
}

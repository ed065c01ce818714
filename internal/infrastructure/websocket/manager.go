package websocket

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"

	"soukly/pkg/logger"
)

// Client represents one authenticated WebSocket connection.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

// Manager keeps the presence map of userID to connection and relays payloads
// to online recipients.
type Manager struct {
	clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Start runs the manager's main loop in a goroutine.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				m.clients[client.UserID] = client
				m.mutex.Unlock()
				logger.Debug("client registered: %s", client.UserID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				if _, ok := m.clients[client.UserID]; ok {
					delete(m.clients, client.UserID)
					close(client.Send)
				}
				m.mutex.Unlock()
				logger.Debug("client unregistered: %s", client.UserID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

// IsOnline reports whether the user currently holds a connection.
func (m *Manager) IsOnline(userID string) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	_, ok := m.clients[userID]
	return ok
}

// SendToUser delivers a payload to the user's connection if present. Returns
// false when the user is offline.
func (m *Manager) SendToUser(userID string, payload []byte) bool {
	m.mutex.RLock()
	client, ok := m.clients[userID]
	m.mutex.RUnlock()

	if !ok {
		return false
	}

	select {
	case client.Send <- payload:
		return true
	default:
		// Slow consumer: drop the connection rather than block the caller.
		m.Unregister <- client
		return false
	}
}

// ReadPump drains inbound frames until the connection closes.
func (c *Client) ReadPump(m *Manager, onMessage func(senderID string, payload []byte)) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		_, payload, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("websocket read error: %v", err)
			}
			break
		}
		if onMessage != nil {
			onMessage(c.UserID, payload)
		}
	}
}

// WritePump forwards queued payloads to the connection.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		payload, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			logger.Warn("websocket write error: %v", err)
			return
		}
	}
}

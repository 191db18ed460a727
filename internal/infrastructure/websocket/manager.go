package websocket

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"

	"mentorlink/pkg/logger"
)

// Client is one connected account.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

// Manager tracks active connections by account. One connection per
// account; a newer connection replaces the previous one.
type Manager struct {
	clients      map[string]*Client
	Register     chan *Client
	Unregister   chan *Client
	mutex        sync.RWMutex
	onMessage    func(*Client, []byte)
	onDisconnect func(*Client)
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// SetMessageHandler installs the inbound frame handler. Must be called
// before Start.
func (m *Manager) SetMessageHandler(fn func(*Client, []byte)) {
	m.onMessage = fn
}

// SetDisconnectHandler installs a cleanup hook invoked when a client
// unregisters.
func (m *Manager) SetDisconnectHandler(fn func(*Client)) {
	m.onDisconnect = fn
}

func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				if previous, ok := m.clients[client.UserID]; ok {
					close(previous.Send)
				}
				m.clients[client.UserID] = client
				m.mutex.Unlock()
				logger.Debug("Client registered: %s", client.UserID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				current, ok := m.clients[client.UserID]
				active := ok && current == client
				if active {
					delete(m.clients, client.UserID)
					close(client.Send)
				}
				m.mutex.Unlock()

				// A client already replaced at Register gets no cleanup
				// hook: that would tear down the newer connection's state.
				if active {
					if m.onDisconnect != nil {
						m.onDisconnect(client)
					}
					logger.Debug("Client unregistered: %s", client.UserID)
				}

			case <-ctx.Done():
				return
			}
		}
	}()
}

// SendToUser delivers a frame to one account if connected. Slow
// consumers are dropped rather than blocking the caller.
func (m *Manager) SendToUser(userID string, message []byte) {
	m.mutex.RLock()
	client, ok := m.clients[userID]
	m.mutex.RUnlock()

	if !ok {
		return
	}

	select {
	case client.Send <- message:
	default:
		m.Unregister <- client
	}
}

func (m *Manager) IsOnline(userID string) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	_, ok := m.clients[userID]
	return ok
}

// ReadPump reads frames from the connection until it closes.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("WebSocket read error for %s: %v", c.UserID, err)
			}
			break
		}

		if m.onMessage != nil {
			m.onMessage(c, message)
		}
	}
}

// WritePump drains the Send channel into the connection.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Warn("WebSocket write error for %s: %v", c.UserID, err)
			return
		}
	}
}

package websocket

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/yatralink/bustrack/internal/pkg/constants"
	"github.com/yatralink/bustrack/internal/pkg/logger"
	"github.com/yatralink/bustrack/internal/pkg/models"
)

const writeWait = 10 * time.Second

// Client is one connected WebSocket peer. Writes are serialized.
type Client struct {
	ID     string
	UserID string

	conn *websocket.Conn
	mu   sync.Mutex
}

// Conn returns the underlying connection for reads
func (c *Client) Conn() *websocket.Conn {
	return c.conn
}

// Send writes an event envelope to the client
func (c *Client) Send(event string, data interface{}) error {
	if c == nil || c.conn == nil {
		return nil
	}

	rawData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("error marshaling message data: %v", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(models.WSMessage{Event: event, Data: rawData})
}

// SendError writes an error envelope to the client
func (c *Client) SendError(code string, message string) error {
	return c.Send(constants.EventError, models.WSErrorMessage{
		Code:    code,
		Message: message,
	})
}

func (c *Client) close(code int, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(code, text), time.Now().Add(writeWait))
	_ = c.conn.Close()
}

// Manager upgrades connections and tracks the clients currently attached
type Manager struct {
	sync.RWMutex
	clients  map[string]*Client
	upgrader websocket.Upgrader
}

// NewManager creates a new WebSocket manager
func NewManager() *Manager {
	return &Manager{
		clients: make(map[string]*Client),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleConnection upgrades the request and runs handleClient until it
// returns. The client is registered for the lifetime of the call.
func (m *Manager) HandleConnection(c echo.Context, userID string, handleClient func(*Client) error) error {
	ws, err := m.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := &Client{ID: uuid.NewString(), UserID: userID, conn: ws}
	m.addClient(client)
	defer func() {
		m.removeClient(client.ID)
		ws.Close()
	}()

	logger.Debug("WebSocket client connected",
		logger.String("client_id", client.ID),
		logger.String("user_id", userID))

	return handleClient(client)
}

func (m *Manager) addClient(client *Client) {
	m.Lock()
	defer m.Unlock()
	m.clients[client.ID] = client
}

func (m *Manager) removeClient(id string) {
	m.Lock()
	defer m.Unlock()
	delete(m.clients, id)
}

// GetClient returns a client by connection id
func (m *Manager) GetClient(id string) (*Client, bool) {
	m.RLock()
	defer m.RUnlock()
	client, exists := m.clients[id]
	return client, exists
}

// Count returns the number of connected clients
func (m *Manager) Count() int {
	m.RLock()
	defer m.RUnlock()
	return len(m.clients)
}

// CloseAll sends a going-away close frame to every client
func (m *Manager) CloseAll() {
	m.RLock()
	clients := make([]*Client, 0, len(m.clients))
	for _, client := range m.clients {
		clients = append(clients, client)
	}
	m.RUnlock()

	for _, client := range clients {
		client.close(websocket.CloseGoingAway, "server shutting down")
	}
}

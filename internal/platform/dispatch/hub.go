// Package dispatch provides real-time fan-out of help request events over
// WebSockets. It implements a hub-and-spoke pattern where each connected
// client is partitioned by staff role and receives only the events published
// to its roles.
package dispatch

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	gorillawebsocket "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/careline/careline/internal/platform/auth"
)

// AdminRole receives a copy of every event regardless of target role.
const AdminRole = "admin"

// Event represents a real-time notification sent to connected clients.
type Event struct {
	Type      string          `json:"event"`
	Role      string          `json:"role"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// Publisher defines the interface for publishing events to role partitions.
type Publisher interface {
	PublishToRole(ctx context.Context, role string, event Event) error
}

// Conn abstracts a WebSocket connection for testability.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client represents a single WebSocket connection. Roles are fixed at
// handshake time from the caller's token claims.
type Client struct {
	ID    string
	Roles []string
	Send  chan []byte
	conn  Conn
}

// Hub is the central connection manager that tracks clients by role.
// All operations are thread-safe via sync.RWMutex.
type Hub struct {
	mu     sync.RWMutex
	byRole map[string]map[*Client]struct{}
	all    map[*Client]struct{}
	logger zerolog.Logger
}

// NewHub creates a new Hub ready to manage WebSocket clients.
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		byRole: make(map[string]map[*Client]struct{}),
		all:    make(map[*Client]struct{}),
		logger: logger,
	}
}

// Register adds a client to the hub under each of its roles.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.all[client] = struct{}{}

	for _, role := range client.Roles {
		if h.byRole[role] == nil {
			h.byRole[role] = make(map[*Client]struct{})
		}
		h.byRole[role][client] = struct{}{}
	}
}

// Unregister removes a client from the hub and all role partitions, and
// closes the client's Send channel.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.all[client]; !ok {
		return
	}

	for _, role := range client.Roles {
		if members, ok := h.byRole[role]; ok {
			delete(members, client)
			if len(members) == 0 {
				delete(h.byRole, role)
			}
		}
	}

	delete(h.all, client)
	close(client.Send)
}

// PublishToRole implements the Publisher interface. The event is delivered
// to every client in the target role partition, and to admin clients so
// supervisors observe all traffic.
func (h *Hub) PublishToRole(_ context.Context, role string, event Event) error {
	event.Role = role
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	h.deliver(h.byRole[role], data)
	if role != AdminRole {
		h.deliver(h.byRole[AdminRole], data)
	}

	return nil
}

// deliver sends raw bytes to a set of clients. Callers must hold at least a
// read lock.
func (h *Hub) deliver(members map[*Client]struct{}, data []byte) {
	for client := range members {
		select {
		case client.Send <- data:
		default:
			// Client buffer full; skip to avoid blocking publishers.
			h.logger.Warn().Str("client_id", client.ID).Msg("dropping event for slow client")
		}
	}
}

// ClientCount returns the total number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.all)
}

// RoleCount returns the number of clients registered under a role.
func (h *Hub) RoleCount(role string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.byRole[role])
}

var upgrader = gorillawebsocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins; tighten in production.
	},
}

// Handler handles HTTP-to-WebSocket upgrades and connection lifecycle.
type Handler struct {
	hub *Hub
}

// NewHandler creates a new handler bound to the given Hub.
func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

// RegisterRoutes registers the WebSocket endpoint on the provided Echo group.
func (wh *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/requests", wh.HandleConnect)
}

// HandleConnect upgrades an HTTP connection to WebSocket and registers the
// client with the hub under the roles carried by its token claims.
func (wh *Handler) HandleConnect(c echo.Context) error {
	roles := auth.RolesFromContext(c.Request().Context())
	if len(roles) == 0 {
		return echo.NewHTTPError(http.StatusForbidden, "no role assigned")
	}

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := &Client{
		ID:    uuid.New().String(),
		Roles: roles,
		Send:  make(chan []byte, 256),
		conn:  &gorillaConnAdapter{ws},
	}

	wh.hub.Register(client)

	go wh.writePump(client)
	go wh.readPump(client)

	return nil
}

// readPump drains inbound frames so close and ping control frames are
// processed. Clients do not send application messages.
func (wh *Handler) readPump(client *Client) {
	defer func() {
		wh.hub.Unregister(client)
		client.conn.Close()
	}()

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			break
		}
	}
}

// writePump writes messages from the Send channel to the WebSocket connection.
func (wh *Handler) writePump(client *Client) {
	defer client.conn.Close()

	for message := range client.Send {
		if err := client.conn.WriteMessage(gorillawebsocket.TextMessage, message); err != nil {
			break
		}
	}
}

// gorillaConnAdapter wraps a gorilla/websocket.Conn to satisfy the Conn interface.
type gorillaConnAdapter struct {
	conn *gorillawebsocket.Conn
}

func (a *gorillaConnAdapter) ReadMessage() (int, []byte, error) {
	return a.conn.ReadMessage()
}

func (a *gorillaConnAdapter) WriteMessage(messageType int, data []byte) error {
	return a.conn.WriteMessage(messageType, data)
}

func (a *gorillaConnAdapter) Close() error {
	return a.conn.Close()
}

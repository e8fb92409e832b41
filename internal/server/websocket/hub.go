// Package websocket pushes session snapshots to browsers and accepts
// control commands over the same connection.
package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/stagemap/pkg/constants"
	"github.com/agentstation/stagemap/pkg/logging"
)

// CommandFunc handles one inbound text frame from a client.
type CommandFunc func(ctx context.Context, clientID string, payload []byte) error

// Hub maintains active connections and broadcasts messages.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Message
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	logger     *zerolog.Logger

	onCommand CommandFunc
	greeting  func() (Message, bool)
}

// HubOption configures a Hub.
type HubOption func(*Hub)

// WithCommandHandler sets the handler for inbound frames. Without one,
// inbound frames are read and discarded.
func WithCommandHandler(fn CommandFunc) HubOption {
	return func(h *Hub) { h.onCommand = fn }
}

// WithGreeting sets the message sent to each client right after it joins,
// typically the current snapshot.
func WithGreeting(fn func() (Message, bool)) HubOption {
	return func(h *Hub) { h.greeting = fn }
}

// NewHub creates a hub.
func NewHub(logger *zerolog.Logger, opts ...HubOption) *Hub {
	h := &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Message, constants.ChannelBufferSize),
		register:   make(chan *Client, 8),
		unregister: make(chan *Client, 8),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run serves the hub until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Info().Msg("WebSocket hub shut down")
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			n := len(h.clients)
			h.mu.Unlock()
			if h.greeting != nil {
				if msg, ok := h.greeting(); ok {
					client.trySend(msg)
				}
			}
			h.logger.Info().
				Str("client_id", client.id).
				Int("total_clients", n).
				Msg("WebSocket client connected")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			n := len(h.clients)
			h.mu.Unlock()
			h.logger.Info().
				Str("client_id", client.id).
				Int("total_clients", n).
				Msg("WebSocket client disconnected")

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// slow consumer
					close(client.send)
					delete(h.clients, client)
					h.logger.Warn().Str("client_id", client.id).Msg("WebSocket client too slow, dropped")
				}
			}
			h.mu.Unlock()
		}
	}
}

// Register adds a client. The client starts receiving broadcasts once the
// hub loop picks it up.
func (h *Hub) Register(c *Client) {
	h.register <- c
}

// Broadcast sends a message to all connected clients.
func (h *Hub) Broadcast(message Message) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn().Str("type", message.Type).Msg("Broadcast channel full, message dropped")
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Message is one frame sent to clients.
type Message struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Sequence  uint64    `json:"sequence,omitempty"`
	Data      any       `json:"data"`
}

// Client is one connection.
type Client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	send chan Message
}

// NewClient wraps conn with a fresh client id.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		id:   uuid.NewString(),
		hub:  hub,
		conn: conn,
		send: make(chan Message, constants.ChannelBufferSize),
	}
}

// ID returns the client id.
func (c *Client) ID() string {
	return c.id
}

// trySend queues a message for this client only. Callers must run on the
// hub loop or hold the hub lock, since the loop closes send.
func (c *Client) trySend(msg Message) {
	select {
	case c.send <- msg:
	default:
	}
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

// ReadPump reads command frames until the connection fails, then
// unregisters the client.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.unregister <- c
		_ = c.conn.Close()
	}()

	ctx = logging.WithClient(logging.WithLogger(ctx, c.hub.logger), c.id)
	logger := logging.FromContext(ctx)

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		kind, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Error().Err(err).Msg("WebSocket read error")
			}
			return
		}
		if kind != websocket.TextMessage || c.hub.onCommand == nil {
			continue
		}
		if err := c.hub.onCommand(ctx, c.id, payload); err != nil {
			logger.Debug().Err(err).Msg("WebSocket command rejected")
			c.reply(Message{
				Type:      "command.failed",
				Timestamp: time.Now(),
				Data:      map[string]any{"error": err.Error()},
			})
		}
	}
}

// reply queues msg for this client if it is still registered. Writes stay
// on WritePump, the connection's only writer.
func (c *Client) reply(msg Message) {
	c.hub.mu.RLock()
	defer c.hub.mu.RUnlock()
	if c.hub.clients[c] {
		c.trySend(msg)
	}
}

// WritePump writes queued messages and keepalive pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(message)
			if err != nil {
				c.hub.logger.Error().Err(err).Msg("Failed to marshal WebSocket message")
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

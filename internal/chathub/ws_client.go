package chathub

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"reelchat/backend/internal/config"
	"reelchat/backend/internal/models"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// WebSocketClient реалізує інтерфейс chathub.Client
type WebSocketClient struct {
	id       string
	identity models.Identity
	Conn     *websocket.Conn
	Hub      *Hub
	send     chan models.Event
	log      *slog.Logger

	mu     sync.Mutex
	closed bool
}

func NewWebSocketClient(hub *Hub, conn *websocket.Conn, identity models.Identity, bufferSize int, log *slog.Logger) *WebSocketClient {
	id := uuid.New().String()
	return &WebSocketClient{
		id:       id,
		identity: identity,
		Conn:     conn,
		Hub:      hub,
		send:     make(chan models.Event, bufferSize),
		log:      log.With("connection_id", id, "transport", "websocket"),
	}
}

func (c *WebSocketClient) ID() string                { return c.id }
func (c *WebSocketClient) Identity() models.Identity { return c.identity }

func (c *WebSocketClient) IsLive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed
}

// Send queues ev for the write pump. A client whose buffer is full is too slow
// to keep up and gets closed.
func (c *WebSocketClient) Send(ev models.Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- ev:
		return true
	default:
		c.log.Warn("send buffer full, closing slow client")
		c.closeLocked()
		return false
	}
}

// Close закриває Send канал (що зупинить writePump)
func (c *WebSocketClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
}

func (c *WebSocketClient) closeLocked() {
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// Run запускає 'pumps' для WebSocket
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

func (c *WebSocketClient) readPump() {
	defer func() {
		// mark the transport dead before the hub hears about it
		c.Close()
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(config.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(config.PongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(config.PongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Warn("error reading message", "error", err)
			}
			break
		}

		var ev models.InboundEvent
		if err := json.Unmarshal(message, &ev); err != nil {
			c.log.Warn("error decoding event", "error", err)
			continue
		}
		ev.ConnectionID = c.id

		if err := c.Hub.Submit(context.Background(), ev); err != nil {
			return
		}
	}
}

func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(config.PingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case ev, ok := <-c.send:
			c.Conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if !ok {
				// Канал закрито хабом, закриваємо з'єднання WS
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(ev); err != nil {
				c.log.Debug("write failed", "error", err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

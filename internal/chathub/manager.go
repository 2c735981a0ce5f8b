package chathub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"reelchat/backend/internal/models"
	"reelchat/backend/internal/pairing"

	"github.com/go-playground/validator/v10"
)

var ErrHubStopped = errors.New("chat hub stopped")

var validate = validator.New()

// Hub is the single goroutine that owns the pairing engine. Transports talk to
// it only through channels, so every queue, pair and session mutation happens
// in one place and in arrival order.
type Hub struct {
	RegisterCh   chan Client
	UnregisterCh chan Client
	IncomingCh   chan models.InboundEvent

	maintenanceCh chan bool
	queryCh       chan func(*pairing.Engine)
	done          chan struct{}

	engine  *pairing.Engine
	clients map[string]Client
	log     *slog.Logger
}

func NewHub(engine *pairing.Engine, log *slog.Logger) *Hub {
	return &Hub{
		RegisterCh:    make(chan Client),
		UnregisterCh:  make(chan Client),
		IncomingCh:    make(chan models.InboundEvent),
		maintenanceCh: make(chan bool),
		queryCh:       make(chan func(*pairing.Engine)),
		done:          make(chan struct{}),
		engine:        engine,
		clients:       make(map[string]Client),
		log:           log,
	}
}

// Run processes events until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)
	h.log.Info("chat hub started")

	for {
		select {
		case <-ctx.Done():
			for _, c := range h.clients {
				c.Close()
			}
			h.log.Info("chat hub stopped", "clients", len(h.clients))
			return nil

		case c := <-h.RegisterCh:
			h.register(c)

		case c := <-h.UnregisterCh:
			h.unregister(c)

		case ev := <-h.IncomingCh:
			h.dispatch(ev)

		case on := <-h.maintenanceCh:
			h.engine.SetMaintenance(on)

		case q := <-h.queryCh:
			q(h.engine)
		}
	}
}

// Done is closed once Run has returned.
func (h *Hub) Done() <-chan struct{} { return h.done }

func (h *Hub) register(c Client) {
	if old, ok := h.clients[c.ID()]; ok && old != c {
		h.engine.Disconnect(old.ID())
		old.Close()
	}
	h.clients[c.ID()] = c
	h.engine.Connect(c)
	if identity := c.Identity(); !identity.IsZero() {
		h.engine.Register(c.ID(), identity)
	}
}

func (h *Hub) unregister(c Client) {
	current, ok := h.clients[c.ID()]
	if !ok || current != c {
		return
	}
	delete(h.clients, c.ID())
	h.engine.Disconnect(c.ID())
	c.Close()
}

func (h *Hub) dispatch(ev models.InboundEvent) {
	log := h.log.With("connection_id", ev.ConnectionID, "event", ev.Type)
	if _, ok := h.clients[ev.ConnectionID]; !ok {
		log.Debug("event from unknown connection dropped")
		return
	}

	switch ev.Type {
	case models.EventRegister:
		var p models.RegisterPayload
		if err := decodePayload(ev.Payload, &p); err != nil {
			log.Warn("invalid register payload", "error", err)
			return
		}
		h.engine.Register(ev.ConnectionID, models.Identity{UserID: p.UserID, Username: p.Username})

	case models.EventFindPartner:
		h.engine.FindPartner(ev.ConnectionID)

	case models.EventMessage:
		var p models.TextPayload
		if err := decodePayload(ev.Payload, &p); err != nil {
			log.Warn("invalid message payload", "error", err)
			return
		}
		h.engine.Message(ev.ConnectionID, p.Text)

	case models.EventNext:
		h.engine.Next(ev.ConnectionID)

	case models.EventLeave:
		h.engine.Leave(ev.ConnectionID)

	case models.EventShareReel:
		var p models.ReelPayload
		if err := decodePayload(ev.Payload, &p); err != nil {
			log.Warn("invalid shareReel payload", "error", err)
			return
		}
		h.engine.ShareReel(ev.ConnectionID, p.ReelID)

	default:
		log.Warn("unknown event type")
	}
}

func decodePayload(raw json.RawMessage, dst any) error {
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, dst); err != nil {
			return fmt.Errorf("decode payload: %w", err)
		}
	}
	return validate.Struct(dst)
}

// Register hands a new client to the hub.
func (h *Hub) Register(ctx context.Context, c Client) error {
	select {
	case h.RegisterCh <- c:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-h.done:
		return ErrHubStopped
	}
}

// Unregister reports transport loss. It never blocks once the hub has stopped.
func (h *Hub) Unregister(c Client) {
	select {
	case h.UnregisterCh <- c:
	case <-h.done:
	}
}

// Submit queues an inbound event.
func (h *Hub) Submit(ctx context.Context, ev models.InboundEvent) error {
	select {
	case h.IncomingCh <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-h.done:
		return ErrHubStopped
	}
}

// SetMaintenance pauses or resumes matching.
func (h *Hub) SetMaintenance(ctx context.Context, on bool) error {
	select {
	case h.maintenanceCh <- on:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-h.done:
		return ErrHubStopped
	}
}

package chathub

import (
	"context"
	"fmt"

	"reelchat/backend/internal/storage"

	"github.com/redis/go-redis/v9"
)

// MaintenanceSource is the part of storage.Storage that carries the shared
// maintenance flag.
type MaintenanceSource interface {
	IsMaintenanceMode(ctx context.Context) (bool, error)
	SubscribeMaintenance(ctx context.Context) (*redis.PubSub, error)
}

// ListenMaintenance loads the current flag and then follows the Redis channel
// so toggles made from any instance reach this hub. It returns when ctx ends.
func (h *Hub) ListenMaintenance(ctx context.Context, src MaintenanceSource) error {
	pubsub, err := src.SubscribeMaintenance(ctx)
	if err != nil {
		return fmt.Errorf("subscribe maintenance: %w", err)
	}
	defer pubsub.Close()

	// read after subscribing so a toggle in between is not missed
	on, err := src.IsMaintenanceMode(ctx)
	if err != nil {
		h.log.Error("failed to read maintenance flag", "error", err)
	} else if err := h.SetMaintenance(ctx, on); err != nil {
		return err
	}

	return h.followMaintenance(ctx, pubsub.Channel())
}

func (h *Hub) followMaintenance(ctx context.Context, ch <-chan *redis.Message) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			on, err := storage.ParseMaintenance(msg.Payload)
			if err != nil {
				h.log.Warn("ignoring maintenance message", "payload", msg.Payload, "error", err)
				continue
			}
			if err := h.SetMaintenance(ctx, on); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
		}
	}
}

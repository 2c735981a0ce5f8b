package chathub

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"reelchat/backend/internal/storage"
)

const counterTimeout = 5 * time.Second

// UserCounter is the part of storage.Storage the counter needs.
type UserCounter interface {
	IncrementChatCount(ctx context.Context, userID string) error
}

// StorageCounter satisfies pairing.ChatCounter without blocking the hub: each
// increment runs in its own goroutine against the identity store.
type StorageCounter struct {
	store UserCounter
	log   *slog.Logger
}

func NewStorageCounter(store UserCounter, log *slog.Logger) *StorageCounter {
	return &StorageCounter{store: store, log: log}
}

func (c *StorageCounter) IncrementChatCount(userID string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), counterTimeout)
		defer cancel()
		err := c.store.IncrementChatCount(ctx, userID)
		switch {
		case err == nil:
		case errors.Is(err, storage.ErrUserNotFound):
			// anonymous web ids have no users row
			c.log.Debug("no user record to count chat for", "user_id", userID)
		default:
			c.log.Warn("failed to increment chat count", "user_id", userID, "error", err)
		}
	}()
}

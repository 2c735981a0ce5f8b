package chathub

import (
	"context"

	"reelchat/backend/internal/models"
	"reelchat/backend/internal/pairing"
)

// query runs fn on the hub goroutine and waits for it to finish.
func (h *Hub) query(ctx context.Context, fn func(*pairing.Engine)) error {
	finished := make(chan struct{})
	job := func(e *pairing.Engine) {
		fn(e)
		close(finished)
	}

	select {
	case h.queryCh <- job:
	case <-ctx.Done():
		return ctx.Err()
	case <-h.done:
		return ErrHubStopped
	}

	// the job runs synchronously on the hub goroutine once accepted
	<-finished
	return nil
}

func (h *Hub) History(ctx context.Context, participantID string) ([]models.Session, error) {
	var out []models.Session
	err := h.query(ctx, func(e *pairing.Engine) { out = e.History(participantID) })
	return out, err
}

func (h *Hub) LiveSessions(ctx context.Context) ([]models.LiveSession, error) {
	var out []models.LiveSession
	err := h.query(ctx, func(e *pairing.Engine) { out = e.LiveSessions() })
	return out, err
}

func (h *Hub) Stats(ctx context.Context) (models.Stats, error) {
	var out models.Stats
	err := h.query(ctx, func(e *pairing.Engine) { out = e.Stats() })
	return out, err
}

func (h *Hub) Maintenance(ctx context.Context) (bool, error) {
	var out bool
	err := h.query(ctx, func(e *pairing.Engine) { out = e.Maintenance() })
	return out, err
}

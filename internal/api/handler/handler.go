package handler

import (
	"context"
	"log/slog"

	"reelchat/backend/internal/chathub"
)

// MaintenanceStore persists and announces the maintenance flag.
type MaintenanceStore interface {
	SetMaintenanceMode(ctx context.Context, enabled bool) error
}

// Handler містить посилання на ChatHub
type Handler struct {
	Hub         *chathub.Hub
	Tokens      *TokenIssuer
	Maintenance MaintenanceStore
	log         *slog.Logger

	sendBufferSize int
	adminToken     string
}

type Options struct {
	SendBufferSize int
	AdminToken     string
}

func NewHandler(hub *chathub.Hub, tokens *TokenIssuer, maintenance MaintenanceStore, log *slog.Logger, opts Options) *Handler {
	if opts.SendBufferSize <= 0 {
		opts.SendBufferSize = 256
	}
	return &Handler{
		Hub:            hub,
		Tokens:         tokens,
		Maintenance:    maintenance,
		log:            log,
		sendBufferSize: opts.SendBufferSize,
		adminToken:     opts.AdminToken,
	}
}

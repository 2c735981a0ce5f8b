package chathub

import (
	"reelchat/backend/internal/models"
	"reelchat/backend/internal/pairing"
)

// Client is the interface for any type of connection (e.g., WebSocket, Telegram).
// It abstracts the underlying communication mechanism, allowing the hub to manage
// different client types uniformly.
type Client interface {
	pairing.Conn

	// Identity returns the identity known when the transport was opened, for
	// example from a verified token. Zero for anonymous clients.
	Identity() models.Identity

	// Run starts the client's read and write pumps.
	Run()
	// Close shuts down the outbound side. It must be idempotent and must turn
	// IsLive false.
	Close()
}

package pairing

import (
	"reelchat/backend/internal/config"
	"reelchat/backend/internal/models"
)

type registryEntry struct {
	conn     Conn
	identity models.Identity
}

// Registry tracks live connections and their optional identity binding.
type Registry struct {
	entries map[string]*registryEntry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*registryEntry)}
}

// Add records a newly connected transport. Re-adding an id replaces the conn
// but keeps the identity.
func (r *Registry) Add(conn Conn) {
	if e, ok := r.entries[conn.ID()]; ok {
		e.conn = conn
		return
	}
	r.entries[conn.ID()] = &registryEntry{conn: conn}
}

// Bind records identity for a connection, last write wins.
// It returns false for an unknown connection.
func (r *Registry) Bind(connID string, identity models.Identity) bool {
	e, ok := r.entries[connID]
	if !ok {
		return false
	}
	e.identity = identity
	return true
}

// IdentityOf returns the bound identity, with the guest name filled in when no
// username was bound.
func (r *Registry) IdentityOf(connID string) models.Identity {
	var identity models.Identity
	if e, ok := r.entries[connID]; ok {
		identity = e.identity
	}
	if identity.Username == "" {
		identity.Username = config.GuestName
	}
	return identity
}

// Participant builds the session descriptor for a connection.
func (r *Registry) Participant(connID string) models.Participant {
	identity := r.IdentityOf(connID)
	id := identity.UserID
	if id == "" {
		id = connID
	}
	return models.Participant{
		ID:           id,
		Name:         identity.Username,
		ConnectionID: connID,
		UserID:       identity.UserID,
	}
}

func (r *Registry) IsRegistered(connID string) bool {
	_, ok := r.entries[connID]
	return ok
}

// IsLive reports whether the connection is registered and its transport is open.
func (r *Registry) IsLive(connID string) bool {
	e, ok := r.entries[connID]
	return ok && e.conn.IsLive()
}

// Send delivers ev to connID. Unknown or dead connections are ignored.
func (r *Registry) Send(connID string, ev models.Event) bool {
	e, ok := r.entries[connID]
	if !ok {
		return false
	}
	return e.conn.Send(ev)
}

// Broadcast sends ev to every registered connection.
func (r *Registry) Broadcast(ev models.Event) {
	for _, e := range r.entries {
		e.conn.Send(ev)
	}
}

// Unregister drops all state for connID.
func (r *Registry) Unregister(connID string) {
	delete(r.entries, connID)
}

func (r *Registry) Len() int { return len(r.entries) }

// Package pairing is the connection-pairing and session-coordination engine.
//
// An Engine owns the Connection Registry, the Waiting Queue, the Pair Table and
// the Session Store as one unit. None of these types are safe for concurrent use:
// the engine must be driven by a single goroutine (see chathub.Hub), because the
// pairing invariants span all four structures at once.
package pairing

import "reelchat/backend/internal/models"

// Conn is the transport-facing side of a live connection.
type Conn interface {
	// ID is unique per live transport session.
	ID() string
	// Send queues an outbound event. Sending to a closed connection must be a
	// no-op that returns false.
	Send(ev models.Event) bool
	// IsLive reports whether the transport is still open. It can turn false
	// before the hub has processed the matching disconnect.
	IsLive() bool
}

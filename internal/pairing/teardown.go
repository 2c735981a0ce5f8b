package pairing

import (
	"reelchat/backend/internal/config"
	"reelchat/backend/internal/models"
)

// teardown is the single exit path out of Waiting or Paired.
// A second teardown for the same pair finds no partner entry, so the partner is
// notified at most once and the session end timestamp is written once.
func (e *Engine) teardown(connID string, rejoin bool) {
	if partner, ok := e.pairs.Unlink(connID); ok {
		e.registry.Send(partner, models.NewNotice(models.EventPartnerLeft, config.TextPartnerLeft))
		if session, ended := e.sessions.Finalize(partner); ended {
			e.log.Info("session finalized", "session_id", session.ID, "connection_id", connID, "partner_id", partner)
		}
	}
	if session, ended := e.sessions.Finalize(connID); ended {
		e.log.Info("session finalized", "session_id", session.ID, "connection_id", connID)
	}
	e.queue.Remove(connID)

	if rejoin {
		e.enqueue(connID)
	}
}

package pairing

import (
	"reelchat/backend/internal/config"
	"reelchat/backend/internal/models"
)

// enqueue appends connID to the waiting queue, tells it so and drains.
func (e *Engine) enqueue(connID string) {
	if !e.queue.Enqueue(connID) {
		return
	}
	e.registry.Send(connID, models.NewNotice(models.EventWaiting, config.TextWaiting))
	e.drain()
}

// drain pairs the two oldest entries until fewer than two remain.
// A dead entry is dropped for good; its live counterpart goes back to the head
// of the queue so it keeps its place.
func (e *Engine) drain() {
	for e.queue.Len() >= 2 {
		a, _ := e.queue.PopFront()
		b, _ := e.queue.PopFront()
		aLive, bLive := e.registry.IsLive(a), e.registry.IsLive(b)

		switch {
		case aLive && bLive:
			e.match(a, b)
		case aLive:
			e.log.Warn("dropping dead queue entry", "connection_id", b)
			e.queue.PushFront(a)
		case bLive:
			e.log.Warn("dropping dead queue entry", "connection_id", a)
			e.queue.PushFront(b)
		default:
			e.log.Warn("dropping dead queue entries", "connection_id", a, "partner_id", b)
		}
	}
}

func (e *Engine) match(a, b string) {
	pa, pb := e.registry.Participant(a), e.registry.Participant(b)
	session := e.sessions.Open(pa, pb)
	e.pairs.Link(a, b)

	for _, p := range []models.Participant{pa, pb} {
		if p.UserID != "" {
			e.counter.IncrementChatCount(p.UserID)
		}
	}

	matched := models.Event{
		Type:    models.EventMatched,
		Payload: models.MatchedPayload{Message: config.TextMatched, SessionID: session.ID},
	}
	e.registry.Send(a, matched)
	e.registry.Send(b, matched)

	e.log.Info("match found", "connection_id", a, "partner_id", b, "session_id", session.ID)
}

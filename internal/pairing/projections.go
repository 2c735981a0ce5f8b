package pairing

import "reelchat/backend/internal/models"

// History returns the most recent sessions for a participant id, newest first.
func (e *Engine) History(participantID string) []models.Session {
	return e.sessions.HistoryFor(participantID)
}

// LiveSessions lists every session that has not ended yet.
func (e *Engine) LiveSessions() []models.LiveSession {
	return e.sessions.Live()
}

func (e *Engine) Stats() models.Stats {
	return models.Stats{
		TotalSessions: e.sessions.Len(),
		ActivePairs:   e.pairs.Pairs(),
		TotalMessages: e.sessions.TotalMessages(),
		Waiting:       e.queue.Len(),
		Online:        e.registry.Len(),
	}
}

// Session returns a copy of one session by id.
func (e *Engine) Session(id string) (models.Session, bool) {
	return e.sessions.Get(id)
}

// State reports where connID is in the Idle/Waiting/Paired lifecycle.
func (e *Engine) State(connID string) State {
	switch {
	case e.pairs.Contains(connID):
		return StatePaired
	case e.queue.Contains(connID):
		return StateWaiting
	default:
		return StateIdle
	}
}

type State int

const (
	StateIdle State = iota
	StateWaiting
	StatePaired
)

func (s State) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StatePaired:
		return "paired"
	default:
		return "idle"
	}
}

package pairing

import (
	"slices"
	"time"

	"reelchat/backend/internal/models"

	"github.com/samber/lo"
)

// SessionStore keeps every session opened during the process lifetime plus the
// per-connection SessionLinks used to route messages into the right log.
// Sessions are never evicted.
type SessionStore struct {
	sessions      []*models.Session // creation order, so StartedAt is non-decreasing
	byID          map[string]*models.Session
	links         map[string]*models.Session
	totalMessages int
	historyLimit  int
	now           func() time.Time
	newID         func() string
}

func NewSessionStore(historyLimit int, now func() time.Time, newID func() string) *SessionStore {
	return &SessionStore{
		byID:         make(map[string]*models.Session),
		links:        make(map[string]*models.Session),
		historyLimit: historyLimit,
		now:          now,
		newID:        newID,
	}
}

// Open allocates a session for a and b and links both connections to it.
func (s *SessionStore) Open(a, b models.Participant) *models.Session {
	session := &models.Session{
		ID:        s.newID(),
		SideA:     a,
		SideB:     b,
		Messages:  []models.Message{},
		StartedAt: s.now(),
	}
	s.sessions = append(s.sessions, session)
	s.byID[session.ID] = session
	s.links[a.ConnectionID] = session
	s.links[b.ConnectionID] = session
	return session
}

// LinkOf returns the active session for a connection.
func (s *SessionStore) LinkOf(connID string) (*models.Session, bool) {
	session, ok := s.links[connID]
	return session, ok
}

// Append logs text from connID. It returns false when the connection has no
// SessionLink; such messages are stale and dropped.
func (s *SessionStore) Append(connID, sender, text string) (models.Message, bool) {
	session, ok := s.links[connID]
	if !ok {
		return models.Message{}, false
	}
	msg := models.Message{Sender: sender, Text: text, SentAt: s.now()}
	session.Messages = append(session.Messages, msg)
	s.totalMessages++
	return msg, true
}

// Finalize removes connID's SessionLink and ends the session if it is still
// open. It returns the session and whether this call set the end timestamp.
func (s *SessionStore) Finalize(connID string) (*models.Session, bool) {
	session, ok := s.links[connID]
	if !ok {
		return nil, false
	}
	delete(s.links, connID)
	if session.EndedAt != nil {
		return session, false
	}
	end := s.now()
	if end.Before(session.StartedAt) {
		end = session.StartedAt
	}
	session.EndedAt = &end
	return session, true
}

func (s *SessionStore) Get(id string) (models.Session, bool) {
	session, ok := s.byID[id]
	if !ok {
		return models.Session{}, false
	}
	return cloneSession(session), true
}

// HistoryFor returns up to historyLimit sessions involving participantID,
// most recent first.
func (s *SessionStore) HistoryFor(participantID string) []models.Session {
	out := make([]models.Session, 0)
	for i := len(s.sessions) - 1; i >= 0 && len(out) < s.historyLimit; i-- {
		if s.sessions[i].Involves(participantID) {
			out = append(out, cloneSession(s.sessions[i]))
		}
	}
	return out
}

// Live lists sessions that have not been finalized.
func (s *SessionStore) Live() []models.LiveSession {
	open := lo.Filter(s.sessions, func(session *models.Session, _ int) bool {
		return session.EndedAt == nil
	})
	return lo.Map(open, func(session *models.Session, _ int) models.LiveSession {
		return models.LiveSession{
			SessionID: session.ID,
			SideA:     session.SideA,
			SideB:     session.SideB,
			StartedAt: session.StartedAt,
		}
	})
}

func (s *SessionStore) Len() int           { return len(s.sessions) }
func (s *SessionStore) TotalMessages() int { return s.totalMessages }
func (s *SessionStore) Links() int         { return len(s.links) }

func cloneSession(session *models.Session) models.Session {
	out := *session
	out.Messages = slices.Clone(session.Messages)
	if session.EndedAt != nil {
		end := *session.EndedAt
		out.EndedAt = &end
	}
	return out
}

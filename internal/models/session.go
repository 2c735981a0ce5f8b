package models

import "time"

// Participant describes one side of a Session.
// ID is the user id when the connection was authenticated, else the raw connection id.
type Participant struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ConnectionID string `json:"connectionId"`
	UserID       string `json:"userId,omitempty"`
}

// Message is one line of a session log. Immutable once appended.
type Message struct {
	Sender string    `json:"sender"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sentAt"`
}

// Session is the record of one pairing's lifetime.
// EndedAt is nil while the pairing is live and is set exactly once.
type Session struct {
	ID        string      `json:"id"`
	SideA     Participant `json:"sideA"`
	SideB     Participant `json:"sideB"`
	Messages  []Message   `json:"messages"`
	StartedAt time.Time   `json:"startedAt"`
	EndedAt   *time.Time  `json:"endedAt,omitempty"`
}

// Involves reports whether participantID matches either side.
func (s Session) Involves(participantID string) bool {
	return s.SideA.ID == participantID || s.SideB.ID == participantID
}

// LiveSession is the administrative projection of an open session.
type LiveSession struct {
	SessionID string      `json:"sessionId"`
	SideA     Participant `json:"sideA"`
	SideB     Participant `json:"sideB"`
	StartedAt time.Time   `json:"startedAt"`
}

// Stats holds the counters exposed to the admin API.
type Stats struct {
	TotalSessions int `json:"totalSessions"`
	ActivePairs   int `json:"activePairs"`
	TotalMessages int `json:"totalMessages"`
	Waiting       int `json:"waiting"`
	Online        int `json:"online"`
}

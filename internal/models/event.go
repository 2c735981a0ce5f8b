package models

import "encoding/json"

// Inbound event types.
const (
	EventRegister    = "register"
	EventFindPartner = "findPartner"
	EventMessage     = "message"
	EventNext        = "next"
	EventLeave       = "leave"
	EventShareReel   = "shareReel"
)

// Outbound event types.
const (
	EventWaiting     = "waiting"
	EventMatched     = "matched"
	EventPartnerLeft = "partnerLeft"
	EventReelShared  = "reelShared"
	EventOnlineCount = "onlineCount"
	EventError       = "error"
)

// Event is the wire envelope used in both directions.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// InboundEvent is what a transport client hands to the hub.
// ConnectionID is filled in by the transport, never by the peer.
type InboundEvent struct {
	ConnectionID string          `json:"-"`
	Type         string          `json:"type"`
	Payload      json.RawMessage `json:"payload,omitempty"`
}

type RegisterPayload struct {
	UserID   string `json:"userId,omitempty" validate:"omitempty,max=64"`
	Username string `json:"username,omitempty" validate:"omitempty,max=32"`
}

type TextPayload struct {
	Text string `json:"text" validate:"required,max=2000"`
}

type ReelPayload struct {
	ReelID string `json:"reelId" validate:"required,max=128"`
}

// Error codes carried by error events.
const (
	ErrorCodeMaintenance = "maintenance"
)

type NoticePayload struct {
	Message string `json:"message"`
	// Code is set on error events only.
	Code string `json:"code,omitempty"`
}

type MatchedPayload struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

func NewNotice(eventType, message string) Event {
	return Event{Type: eventType, Payload: NoticePayload{Message: message}}
}

// NewError builds an error event a client can branch on by code.
func NewError(code, message string) Event {
	return Event{Type: EventError, Payload: NoticePayload{Message: message, Code: code}}
}

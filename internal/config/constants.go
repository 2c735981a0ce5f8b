package config

import "time"

const (
	// Identity
	GuestName = "Guest"

	// History
	DefaultHistoryLimit = 50

	// Transport
	MaxTextLength = 2000
	// A full-length text where every rune is escaped by JSON as \u00XX still
	// fits, with room for the envelope.
	MaxMessageSize = 16 << 10
	WriteWait      = 10 * time.Second
	PongWait       = 60 * time.Second
	PingPeriod     = (PongWait * 9) / 10

	// Redis
	MaintenanceKey     = "chat:maintenance"
	MaintenanceChannel = "chat:maintenance"
)

// Notice texts sent in outbound events.
const (
	TextWaiting     = "Looking for a partner..."
	TextMatched     = "Partner found! Say hi."
	TextPartnerLeft = "Your partner left the chat."
	TextMaintenance = "The service is under maintenance. Please try again later."
)

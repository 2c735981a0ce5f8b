package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq" // Необхідний для pq.StringArray
	"gorm.io/gorm"
)

// User is the identity record owned by the identity collaborator.
// The pairing core only reads its id and username and bumps ChatCount on every match.
type User struct {
	ID         string         `gorm:"primaryKey" json:"id"`
	TelegramID int64          `gorm:"uniqueIndex" json:"-"` // 0 for web-only users
	Username   string         `gorm:"type:text" json:"username"`
	Interests  pq.StringArray `gorm:"type:text[]" json:"interests"`
	ChatCount  int            `gorm:"not null;default:0" json:"chat_count"`
	CreatedAt  time.Time      `json:"created_at"`
}

// BeforeCreate is a GORM hook that assigns a UUID when ID is empty.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// Identity is the optional identity bound to a live connection.
type Identity struct {
	UserID   string `json:"userId,omitempty"`
	Username string `json:"username,omitempty"`
}

// IsZero reports whether nothing was bound.
func (i Identity) IsZero() bool { return i.UserID == "" && i.Username == "" }

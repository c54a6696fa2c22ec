package models

import (
	"time"
)

// Message senders. The set is closed: a message is authored by exactly one
// of the two.
const (
	SenderUser      = "user"
	SenderCharacter = "character"
)

// ChatMessage is one entry in a session's ordered message log. Exactly one
// of CharacterID/UserID is set, depending on the sender.
type ChatMessage struct {
	ID          string    `json:"id"`
	Content     string    `json:"content"`
	Sender      string    `json:"sender"`
	Timestamp   time.Time `json:"timestamp"`
	CharacterID string    `json:"characterId,omitempty"`
	UserID      string    `json:"userId,omitempty"`
}

// Message is the persisted form of a chat message, kept per session so a
// conversation can be replayed from the database.
type Message struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ExternalID  string    `json:"external_id" gorm:"index"`
	SessionID   string    `json:"session_id" gorm:"index"`
	CharacterID string    `json:"character_id" gorm:"index"`
	Sender      string    `json:"sender"`
	Content     string    `json:"content"`
	Timestamp   time.Time `json:"timestamp"`
	CreatedAt   time.Time `json:"created_at"`
}

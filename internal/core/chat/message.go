// Package chat defines the conversation transcript and the single-flight
// request lifecycle that feeds it.
package chat

import (
	"time"

	"github.com/google/uuid"
)

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is a single transcript entry. It is never modified after creation.
type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Sender    Sender    `json:"sender"`
	CreatedAt time.Time `json:"created_at"`
}

// NewMessage creates a message with a fresh random ID.
func NewMessage(sender Sender, content string, now time.Time) Message {
	return Message{
		ID:        uuid.NewString(),
		Content:   content,
		Sender:    sender,
		CreatedAt: now,
	}
}

// FromUser returns true if the message was typed by the local user.
func (m Message) FromUser() bool {
	return m.Sender == SenderUser
}

// Package domain contains core concepts of the chat system.
// This file defines Message entities and related rules.
// Messages are immutable once posted to a room.
package domain

import (
	"time"
)

type MessageID string

// Message represents an immutable chat event.
// Sender always resolves to a User that existed when the message was created.
type Message struct {
	ID        MessageID // unique identifier
	Text      string
	Sender    User
	Timestamp time.Time
}

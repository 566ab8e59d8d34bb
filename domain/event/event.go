package event

import (
	"roomchat/domain"
	"time"
)

// DomainEvent is what the notifier fans out to room observers.
// The payload is a tag telling observers to re-fetch room state,
// not the message content itself.
type DomainEvent interface {
	RoomID() domain.RoomID
	Kind() string
}

type MessagePosted struct {
	Room domain.RoomID
	At   time.Time
}

func (m MessagePosted) RoomID() domain.RoomID {
	return m.Room
}

func (m MessagePosted) Kind() string {
	return "new-message"
}

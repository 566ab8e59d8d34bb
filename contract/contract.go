package contract

import (
	"context"
	"roomchat/domain"
	"roomchat/domain/event"
)

// EventSink receives events fanned out by the notifier.
// Consume must not block indefinitely: a slow observer only loses
// its own events, never someone else's.
type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

type INotifier interface {
	Subscribe(observerID string, roomID domain.RoomID, sink EventSink)
	Unsubscribe(observerID string, roomID domain.RoomID)
	Disconnect(observerID string)
	Publish(ctx context.Context, e event.DomainEvent)
}

type IStore interface {
	GetOrCreateUser(name string) domain.User
	CreateRoom(name string) (domain.Room, error)
	ListRooms() []domain.Room
	RoomByName(name string) (domain.Room, error)
	RoomByID(id domain.RoomID) (domain.Room, error)
	UserByID(id domain.UserID) (domain.User, error)
	AppendMessage(roomID domain.RoomID, senderID domain.UserID, text string) (domain.Message, error)
}

type IResolver interface {
	Hello() string
	ChatRooms() []domain.Room
	ChatRoomByName(name string) (domain.Room, error)
	ChatRoomByID(id domain.RoomID) (domain.Room, error)
	CreateChatRoom(name string) (domain.Room, error)
	User(name string) domain.User
	UserByID(id domain.UserID) (domain.User, error)
	SendMessage(ctx context.Context, roomID domain.RoomID, senderID domain.UserID, text string) (domain.Message, error)
}

// Package resolver is the API surface of the chat core. Each operation
// validates input, delegates to the store, and maps store outcomes to
// result or error values returned to the transport adapters unchanged.
package resolver

import (
	"context"
	"log/slog"

	"roomchat/contract"
	"roomchat/domain"
	"roomchat/domain/event"

	"github.com/google/uuid"
)

type Resolver struct {
	store    contract.IStore
	notifier contract.INotifier
	log      *slog.Logger
}

func NewResolver(store contract.IStore, notifier contract.INotifier, log *slog.Logger) *Resolver {
	return &Resolver{store: store, notifier: notifier, log: log}
}

// Hello returns a freshly generated opaque token. Pure utility, no
// state touched.
func (r *Resolver) Hello() string {
	return uuid.NewString()
}

func (r *Resolver) ChatRooms() []domain.Room {
	return r.store.ListRooms()
}

func (r *Resolver) ChatRoomByName(name string) (domain.Room, error) {
	return r.store.RoomByName(name)
}

func (r *Resolver) ChatRoomByID(id domain.RoomID) (domain.Room, error) {
	return r.store.RoomByID(id)
}

func (r *Resolver) CreateChatRoom(name string) (domain.Room, error) {
	return r.store.CreateRoom(name)
}

// User resolves name to its user with get-or-create semantics.
func (r *Resolver) User(name string) domain.User {
	return r.store.GetOrCreateUser(name)
}

func (r *Resolver) UserByID(id domain.UserID) (domain.User, error) {
	return r.store.UserByID(id)
}

// SendMessage appends a message to a room and, only once the append is
// visible in the store, publishes a MessagePosted event so observers
// that re-read the room are guaranteed to see the new message.
// On failure nothing is published and the error propagates unchanged.
func (r *Resolver) SendMessage(ctx context.Context, roomID domain.RoomID, senderID domain.UserID, text string) (domain.Message, error) {
	message, err := r.store.AppendMessage(roomID, senderID, text)
	if err != nil {
		return domain.Message{}, err
	}

	r.notifier.Publish(ctx, event.MessagePosted{
		Room: roomID,
		At:   message.Timestamp,
	})
	return message, nil
}

// Package store owns all chat entities (users, rooms, messages) and
// enforces their invariants. It is pure in-memory state: a process
// restart clears everything.
package store

import (
	"log/slog"
	"sync"
	"time"

	"roomchat/domain"
	"roomchat/errors"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Store serializes every operation behind a single RWMutex, which gives
// the required total order: no caller can observe a room existing in
// the id index but not in the name index, and two appends to the same
// room never interleave. The state is small enough that one global lock
// beats per-room locking in both simplicity and contention.
type Store struct {
	mu        sync.RWMutex
	users     map[domain.UserID]domain.User
	userNames map[string]domain.UserID // name -> id, get-or-create identity
	rooms     map[domain.RoomID]*domain.Room
	roomNames map[string]domain.RoomID // name -> id, uniqueness check + lookup
	roomOrder []domain.RoomID          // creation order for ListRooms
	log       *slog.Logger
}

func NewStore(log *slog.Logger) *Store {
	return &Store{
		users:     make(map[domain.UserID]domain.User),
		userNames: make(map[string]domain.UserID),
		rooms:     make(map[domain.RoomID]*domain.Room),
		roomNames: make(map[string]domain.RoomID),
		log:       log,
	}
}

// GetOrCreateUser returns the user registered under name, creating it
// on first use. Repeated calls with the same name always yield the same
// user id. It never fails.
func (s *Store) GetOrCreateUser(name string) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.userNames[name]; ok {
		return s.users[id]
	}

	user := domain.User{
		ID:   domain.UserID(uuid.NewString()),
		Name: name,
	}
	s.users[user.ID] = user
	s.userNames[name] = user.ID
	s.log.Debug("user created", "user_id", user.ID, "name", name)
	return user
}

// CreateRoom registers a new empty room under name.
// The uniqueness check and the insertion happen under the same lock,
// so two concurrent creations of the same name cannot both succeed.
func (s *Store) CreateRoom(name string) (domain.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.roomNames[name]; ok {
		return domain.Room{}, errors.ErrRoomExists
	}

	room := domain.NewRoom(domain.RoomID(uuid.NewString()), name)
	s.rooms[room.ID] = room
	s.roomNames[name] = room.ID
	s.roomOrder = append(s.roomOrder, room.ID)
	s.log.Debug("room created", "room_id", room.ID, "name", name)
	return room.Snapshot(), nil
}

// ListRooms returns snapshot copies of every room, including their
// message histories, in creation order.
func (s *Store) ListRooms() []domain.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.Map(s.roomOrder, func(id domain.RoomID, _ int) domain.Room {
		return s.rooms[id].Snapshot()
	})
}

func (s *Store) RoomByName(name string) (domain.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.roomNames[name]
	if !ok {
		return domain.Room{}, errors.ErrRoomNotFound
	}
	return s.rooms[id].Snapshot(), nil
}

func (s *Store) RoomByID(id domain.RoomID) (domain.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	room, ok := s.rooms[id]
	if !ok {
		return domain.Room{}, errors.ErrRoomNotFound
	}
	return room.Snapshot(), nil
}

func (s *Store) UserByID(id domain.UserID) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return domain.User{}, errors.ErrUserNotFound
	}
	return user, nil
}

// AppendMessage posts a new message at the end of the room's history.
// Both existence checks run before any mutation, so a failed append
// leaves the store exactly as it was.
func (s *Store) AppendMessage(roomID domain.RoomID, senderID domain.UserID, text string) (domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return domain.Message{}, errors.ErrRoomNotFound
	}
	sender, ok := s.users[senderID]
	if !ok {
		return domain.Message{}, errors.ErrUserNotFound
	}

	message := domain.Message{
		ID:        domain.MessageID(uuid.NewString()),
		Text:      text,
		Sender:    sender,
		Timestamp: time.Now().UTC(),
	}
	room.PostMessage(message)
	return message, nil
}

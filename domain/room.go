package domain

type RoomID string

// Room is a named container of an ordered message history.
// Messages is append-only: entries keep the order of successful posts.
type Room struct {
	ID       RoomID
	Name     string
	Messages []Message
}

func NewRoom(id RoomID, name string) *Room {
	return &Room{
		ID:       id,
		Name:     name,
		Messages: nil,
	}
}

func (r *Room) PostMessage(message Message) {
	r.Messages = append(r.Messages, message)
}

// Snapshot returns a value copy of the room whose message slice is
// detached from the live one, so callers can never mutate owned state.
func (r *Room) Snapshot() Room {
	copied := Room{
		ID:       r.ID,
		Name:     r.Name,
		Messages: make([]Message, len(r.Messages)),
	}
	copy(copied.Messages, r.Messages)
	return copied
}

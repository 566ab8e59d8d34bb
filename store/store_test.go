package store

import (
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"roomchat/errors"

	"github.com/stretchr/testify/require"
)

func Test_CreateRoom_Duplicate_Name_Is_A_Conflict(t *testing.T) {
	req := require.New(t)
	store := NewStore(slog.Default())

	// Given a room named general
	created, err := store.CreateRoom("general")
	req.NoError(err)
	req.Equal("general", created.Name)
	req.Empty(created.Messages)

	// When the same name is created again
	_, err = store.CreateRoom("general")

	// Then it fails with a conflict and a distinct name still succeeds
	req.ErrorIs(err, errors.ErrRoomExists)
	other, err := store.CreateRoom("random")
	req.NoError(err)
	req.NotEqual(created.ID, other.ID)
	req.Len(store.ListRooms(), 2)
}

func Test_GetOrCreateUser_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	store := NewStore(slog.Default())

	// When the same name is resolved twice
	first := store.GetOrCreateUser("alice")
	second := store.GetOrCreateUser("alice")

	// Then both calls yield the same user and no duplicate exists
	req.Equal(first.ID, second.ID)
	req.Equal(first, second)

	fetched, err := store.UserByID(first.ID)
	req.NoError(err)
	req.Equal(first, fetched)
}

func Test_AppendMessage_Unknown_Room(t *testing.T) {
	req := require.New(t)
	store := NewStore(slog.Default())
	sender := store.GetOrCreateUser("alice")

	// When a message targets a room that does not exist
	_, err := store.AppendMessage("missing", sender.ID, "hi")

	// Then it fails and no room appeared as a side effect
	req.ErrorIs(err, errors.ErrRoomNotFound)
	req.Empty(store.ListRooms())
}

func Test_AppendMessage_Unknown_Sender(t *testing.T) {
	req := require.New(t)
	store := NewStore(slog.Default())
	room, err := store.CreateRoom("general")
	req.NoError(err)

	// When the sender id does not resolve to an existing user
	_, err = store.AppendMessage(room.ID, "nobody", "hi")

	// Then it fails and the room's message sequence is unchanged
	req.ErrorIs(err, errors.ErrUserNotFound)
	fetched, err := store.RoomByID(room.ID)
	req.NoError(err)
	req.Empty(fetched.Messages)
}

func Test_AppendMessage_Keeps_FIFO_Order(t *testing.T) {
	req := require.New(t)
	store := NewStore(slog.Default())
	room, err := store.CreateRoom("general")
	req.NoError(err)
	sender := store.GetOrCreateUser("alice")

	// When several messages are posted in sequence
	sends := 5
	for i := 0; i < sends; i++ {
		_, err = store.AppendMessage(room.ID, sender.ID, fmt.Sprintf("message %d", i))
		req.NoError(err)
	}

	// Then the history has one entry per successful send, in send order
	fetched, err := store.RoomByID(room.ID)
	req.NoError(err)
	req.Len(fetched.Messages, sends)
	for i, message := range fetched.Messages {
		req.Equal(fmt.Sprintf("message %d", i), message.Text)
		req.Equal(sender, message.Sender)
	}
}

func Test_ListRooms_Returns_Creation_Order(t *testing.T) {
	req := require.New(t)
	store := NewStore(slog.Default())

	names := []string{"general", "random", "dev"}
	for _, name := range names {
		_, err := store.CreateRoom(name)
		req.NoError(err)
	}

	rooms := store.ListRooms()
	req.Len(rooms, len(names))
	for i, room := range rooms {
		req.Equal(names[i], room.Name)
	}
}

func Test_Lookups_Return_Detached_Snapshots(t *testing.T) {
	req := require.New(t)
	store := NewStore(slog.Default())
	room, err := store.CreateRoom("general")
	req.NoError(err)
	sender := store.GetOrCreateUser("alice")
	_, err = store.AppendMessage(room.ID, sender.ID, "hi")
	req.NoError(err)

	// When a caller mutates the slice it got back
	fetched, err := store.RoomByID(room.ID)
	req.NoError(err)
	fetched.Messages[0].Text = "tampered"

	// Then the store-owned history is untouched
	again, err := store.RoomByID(room.ID)
	req.NoError(err)
	req.Equal("hi", again.Messages[0].Text)
}

func Test_Concurrent_CreateRoom_Same_Name_Single_Winner(t *testing.T) {
	req := require.New(t)
	store := NewStore(slog.Default())

	// When many goroutines race to create the same name
	workers := 16
	results := make(chan error, workers)
	var start sync.WaitGroup
	start.Add(1)
	for i := 0; i < workers; i++ {
		go func() {
			start.Wait()
			_, err := store.CreateRoom("general")
			results <- err
		}()
	}
	start.Done()

	// Then exactly one wins
	var created int
	for i := 0; i < workers; i++ {
		if err := <-results; err == nil {
			created++
		} else {
			req.ErrorIs(err, errors.ErrRoomExists)
		}
	}
	req.Equal(1, created)
	req.Len(store.ListRooms(), 1)
}

func Test_Concurrent_Appends_Never_Lose_Messages(t *testing.T) {
	req := require.New(t)
	store := NewStore(slog.Default())
	room, err := store.CreateRoom("general")
	req.NoError(err)
	sender := store.GetOrCreateUser("alice")

	workers := 8
	perWorker := 25
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				_, err := store.AppendMessage(room.ID, sender.ID, fmt.Sprintf("%d-%d", worker, j))
				if err != nil {
					t.Error(err)
				}
			}
		}(i)
	}
	wg.Wait()

	fetched, err := store.RoomByID(room.ID)
	req.NoError(err)
	req.Len(fetched.Messages, workers*perWorker)
}

func Test_RoomByName_And_UserByID_Not_Found(t *testing.T) {
	req := require.New(t)
	store := NewStore(slog.Default())

	_, err := store.RoomByName("missing")
	req.ErrorIs(err, errors.ErrRoomNotFound)

	_, err = store.RoomByID("missing")
	req.ErrorIs(err, errors.ErrRoomNotFound)

	_, err = store.UserByID("missing")
	req.ErrorIs(err, errors.ErrUserNotFound)
}

// Package ws maps notifier publishes onto the live-push channel: one
// WebSocket connection per (observer, room), carrying opaque event tags
// that tell the client to re-fetch room state.
package ws

import (
	"fmt"
	"log/slog"
	"net/http"

	"roomchat/contract"
	"roomchat/domain"
	"roomchat/errors"
	"roomchat/sink"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

type Handler struct {
	resolver   contract.IResolver
	notifier   contract.INotifier
	upgrader   websocket.Upgrader
	bufferSize int
	log        *slog.Logger
}

func NewHandler(resolver contract.IResolver, notifier contract.INotifier, bufferSize int, log *slog.Logger) *Handler {
	return &Handler{
		resolver: resolver,
		notifier: notifier,
		upgrader: websocket.Upgrader{
			// Origin policy is out of scope here, the adapter accepts anyone.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		bufferSize: bufferSize,
		log:        log,
	}
}

func (h *Handler) Register(router *mux.Router) {
	router.HandleFunc("/rooms/{id}/events", h.ServeRoomEvents).Methods(http.MethodGet)
}

type roomEvent struct {
	Event string `json:"event"`
}

// ServeRoomEvents establishes a long-lived connection for real-time
// delivery. It registers a dedicated sink in the notifier and blocks
// until the client disconnects or a write fails. Cleanup goes through
// Disconnect, so a dying connection always triggers unsubscribe-all
// without affecting other observers.
func (h *Handler) ServeRoomEvents(w http.ResponseWriter, r *http.Request) {
	roomID := domain.RoomID(mux.Vars(r)["id"])

	// Reject unknown rooms before upgrading, while we can still answer
	// with a plain HTTP status.
	if _, err := h.resolver.ChatRoomByID(roomID); err != nil {
		http.Error(w, err.Error(), errors.MapToStatusCode(err))
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("websocket upgrade failed", "room_id", roomID, "error", err)
		return
	}
	defer conn.Close()

	observerID := uuid.NewString()
	wsSink := sink.NewWsSink(h.bufferSize)
	h.notifier.Subscribe(observerID, roomID, wsSink)
	defer h.notifier.Disconnect(observerID)

	// Read pump: we ignore client frames, but reading is the only way
	// to learn the peer is gone.
	disconnected := make(chan struct{})
	go func() {
		defer close(disconnected)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-disconnected:
			h.log.Debug(fmt.Sprintf("Observer %s disconnected from room %s", observerID, roomID))
			return
		case <-r.Context().Done():
			return
		case evt := <-wsSink.Events:
			if err := conn.WriteJSON(roomEvent{Event: evt.Kind()}); err != nil {
				h.log.Error("failed to push event to connection",
					"observer_id", observerID,
					"room_id", roomID,
					"error", err)
				return
			}
		}
	}
}

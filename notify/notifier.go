// Package notify is the per-room publish/subscribe registry.
// It is decoupled from the store: the resolver explicitly triggers a
// publish after a successful mutation that affects a room.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"roomchat/contract"
	"roomchat/domain"
	"roomchat/domain/event"
)

type Set map[string]struct{}

type Notifier struct {
	mu          sync.RWMutex
	sessions    map[string]contract.EventSink // map observer -> Sink
	roomMembers map[domain.RoomID]Set         // map room -> observers
	log         *slog.Logger
}

func NewNotifier(log *slog.Logger) *Notifier {
	return &Notifier{
		sessions:    make(map[string]contract.EventSink),
		roomMembers: make(map[domain.RoomID]Set),
		log:         log,
	}
}

// SinksForRoom retrieves all active communication channels for a specific room.
// It performs a two-step lookup:
// 1. Identifies observer IDs associated with the room via roomMembers.
// 2. Resolves those IDs into actual EventSinks using the sessions map.
//
// This decoupled approach ensures that even if an observer watches
// multiple rooms, its connection (Sink) is managed in a single place.
// Returns nil if the room doesn't exist or has no observers.
func (n *Notifier) SinksForRoom(roomID domain.RoomID) []contract.EventSink {
	n.mu.RLock()
	defer n.mu.RUnlock()

	members, ok := n.roomMembers[roomID]
	if !ok {
		return nil
	}
	var activeSinks []contract.EventSink
	for observerID := range members {
		if sink, exists := n.sessions[observerID]; exists {
			activeSinks = append(activeSinks, sink)
		}
	}
	return activeSinks
}

// Subscribe registers an observer's active connection and assigns it to
// a specific room. Subscribing the same (room, observer) pair twice is
// a no-op: membership is a set, so the observer still receives exactly
// one copy of each publish.
func (n *Notifier) Subscribe(observerID string, roomID domain.RoomID, sink contract.EventSink) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.sessions[observerID] = sink

	if _, ok := n.roomMembers[roomID]; !ok {
		n.roomMembers[roomID] = make(Set)
	}
	n.roomMembers[roomID][observerID] = struct{}{}
}

// Unsubscribe removes an observer from a single room; a no-op if the
// registration is absent. It ensures no empty sets are left in the room
// map to prevent memory leaks over time.
func (n *Notifier) Unsubscribe(observerID string, roomID domain.RoomID) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.removeMember(observerID, roomID)

	if !n.isMemberAnywhere(observerID) {
		delete(n.sessions, observerID)
	}
}

// Disconnect removes every registration held by an observer.
// Transport adapters call it when the observer's connection dies, so
// subscription lifetime is tied to connection lifetime.
func (n *Notifier) Disconnect(observerID string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for roomID := range n.roomMembers {
		n.removeMember(observerID, roomID)
	}
	delete(n.sessions, observerID)
}

// Publish delivers the event to every sink currently subscribed to the
// event's room, best-effort: a sink that fails to consume only loses
// its own copy. Observers that subscribe afterwards never receive this
// event. The sink list is snapshotted first so an unsubscribe during
// delivery does not affect other in-flight deliveries.
func (n *Notifier) Publish(ctx context.Context, e event.DomainEvent) {
	for _, sink := range n.SinksForRoom(e.RoomID()) {
		if err := sink.Consume(ctx, e); err != nil {
			n.log.Warn(fmt.Sprintf("Dropping %s event for room %s", e.Kind(), e.RoomID()),
				"error", err)
		}
	}
}

// caller must hold n.mu
func (n *Notifier) removeMember(observerID string, roomID domain.RoomID) {
	members, ok := n.roomMembers[roomID]
	if !ok {
		return
	}
	delete(members, observerID)

	// If no one is left in the room, remove the room entry entirely
	if len(members) == 0 {
		delete(n.roomMembers, roomID)
	}
}

// caller must hold n.mu
func (n *Notifier) isMemberAnywhere(observerID string) bool {
	for _, members := range n.roomMembers {
		if _, ok := members[observerID]; ok {
			return true
		}
	}
	return false
}

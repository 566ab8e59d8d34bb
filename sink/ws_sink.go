package sink

import (
	"context"

	"roomchat/domain/event"
)

// WsSink bridges the notifier to a single WebSocket connection.
// Events land in a buffered channel owned by the connection handler.
type WsSink struct {
	Events chan event.DomainEvent
}

func NewWsSink(bufferSize int) *WsSink {
	return &WsSink{Events: make(chan event.DomainEvent, bufferSize)}
}

// Consume is called by the notifier during a publish.
// Redirect the event through the concerned owner of the channel;
// the WebSocket handler will take it from now. If the buffer is full
// the event is dropped: delivery is best-effort and the observer is
// expected to re-fetch room state anyway.
func (s *WsSink) Consume(ctx context.Context, e event.DomainEvent) error {
	select {
	case s.Events <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

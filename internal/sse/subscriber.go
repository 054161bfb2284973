package sse

import (
	"context"
	"log/slog"

	"github.com/osse101/FrameCraft_Go/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{hub: hub, bus: bus}
}

var itemEventTypes = map[event.Type]string{
	event.CartItemAdded:   EventTypeItemAdded,
	event.CartItemUpdated: EventTypeItemUpdated,
	event.CartItemRemoved: EventTypeItemRemoved,
}

// Subscribe registers handlers for every cart event type
func (s *Subscriber) Subscribe() {
	types := make([]string, 0, len(itemEventTypes)+3)
	for t := range itemEventTypes {
		s.bus.Subscribe(t, s.handleItem)
		types = append(types, string(t))
	}
	s.bus.Subscribe(event.CartCleared, s.handleCleared)
	s.bus.Subscribe(event.CartSynced, s.handleSync)
	s.bus.Subscribe(event.CartSyncFailed, s.handleSync)

	slog.Info(LogMsgSubscribed, "types", append(types,
		string(event.CartCleared), string(event.CartSynced), string(event.CartSyncFailed)))
}

func (s *Subscriber) handleItem(_ context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.CartItemPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgInvalidPayload, "event_type", evt.Type, "error", err)
		return nil
	}
	t := itemEventTypes[evt.Type]
	s.hub.Broadcast(t, p.StoreID, CartItemPayload{
		StoreID:   p.StoreID,
		ItemID:    p.ItemID,
		VariantID: p.VariantID,
		Quantity:  p.Quantity,
		Price:     p.Price,
		Estimated: p.Estimated,
	})
	slog.Debug(LogMsgEventBroadcast, "event_type", t, "store_id", p.StoreID, "item_id", p.ItemID)
	return nil
}

func (s *Subscriber) handleCleared(_ context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.CartClearedPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgInvalidPayload, "event_type", evt.Type, "error", err)
		return nil
	}
	s.hub.Broadcast(EventTypeCleared, p.StoreID, CartClearedPayload{StoreID: p.StoreID, Items: p.Items})
	return nil
}

func (s *Subscriber) handleSync(_ context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.CartSyncPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgInvalidPayload, "event_type", evt.Type, "error", err)
		return nil
	}
	t := EventTypeSynced
	if evt.Type == event.CartSyncFailed {
		t = EventTypeSyncFailed
	}
	s.hub.Broadcast(t, p.StoreID, CartSyncPayload{
		StoreID:    p.StoreID,
		CartID:     p.CartID,
		Operations: p.Operations,
		Lines:      p.Lines,
		Error:      p.Error,
	})
	slog.Debug(LogMsgEventBroadcast, "event_type", t, "store_id", p.StoreID)
	return nil
}

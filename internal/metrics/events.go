package metrics

import (
	"context"

	"github.com/osse101/FrameCraft_Go/internal/event"
	"github.com/osse101/FrameCraft_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all cart and pricing events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.CartItemAdded,
		event.CartItemRemoved,
		event.CartItemUpdated,
		event.CartCleared,
		event.CartSynced,
		event.CartSyncFailed,
		event.QuoteCalculated,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.CartItemAdded, event.CartItemRemoved, event.CartItemUpdated, event.CartCleared:
		CartMutations.WithLabelValues(string(evt.Type)).Inc()

	case event.CartSynced:
		payload, err := event.DecodePayload[event.CartSyncPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadUnexpected, "type", evt.Type, "error", err)
			return nil
		}
		CartSyncs.WithLabelValues(ResultSuccess).Inc()
		CartSyncDuration.Observe(float64(payload.DurationMs) / 1000)

	case event.CartSyncFailed:
		CartSyncs.WithLabelValues(ResultFailure).Inc()

	case event.QuoteCalculated:
		payload, err := event.DecodePayload[event.QuoteCalculatedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadUnexpected, "type", evt.Type, "error", err)
			return nil
		}
		QuotesCalculated.WithLabelValues(payload.Kind).Inc()
		QuoteTotal.WithLabelValues(payload.Kind).Observe(payload.Total)
		if payload.Estimated {
			QuotesEstimated.WithLabelValues(payload.Kind).Inc()
		}
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

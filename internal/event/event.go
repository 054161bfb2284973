package event

import (
	"time"

	"github.com/osse101/FrameCraft_Go/internal/domain"
)

// Type names an event; subscribers register per type.
type Type string

// Metadata carries optional context that is not part of the payload, such as
// the source of a replayed event.
type Metadata map[string]any

// Event is what travels over the bus. Payload is one of the *PayloadV1
// structs below, or a generic map once an event has round-tripped through
// JSON (the dead-letter file, the event log).
type Event struct {
	Version  string   `json:"version"`
	Type     Type     `json:"type"`
	Payload  any      `json:"payload"`
	Metadata Metadata `json:"metadata,omitempty"`
}

func newEvent(t Type, payload any) Event {
	return Event{Version: EventSchemaVersion, Type: t, Payload: payload}
}

// Cart and pricing event types
const (
	CartItemAdded   Type = domain.EventTypeCartItemAdded
	CartItemRemoved Type = domain.EventTypeCartItemRemoved
	CartItemUpdated Type = domain.EventTypeCartItemUpdated
	CartCleared     Type = domain.EventTypeCartCleared
	CartSynced      Type = domain.EventTypeCartSynced
	CartSyncFailed  Type = domain.EventTypeCartSyncFailed
	QuoteCalculated Type = domain.EventTypeQuoteCalculated
)

// CartItemPayloadV1 describes a single local cart mutation.
type CartItemPayloadV1 struct {
	StoreID   string  `json:"store_id"`
	ItemID    string  `json:"item_id"`
	VariantID string  `json:"variant_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Specialty string  `json:"specialty,omitempty"`
	Estimated bool    `json:"estimated,omitempty"`
	Timestamp int64   `json:"timestamp"`
}

// CartClearedPayloadV1 is sent when a cart is emptied.
type CartClearedPayloadV1 struct {
	StoreID   string `json:"store_id"`
	Items     int    `json:"items"`
	Timestamp int64  `json:"timestamp"`
}

// CartSyncPayloadV1 serves both sync outcomes; Error is set on failure.
type CartSyncPayloadV1 struct {
	StoreID    string `json:"store_id"`
	CartID     string `json:"cart_id,omitempty"`
	Operations int    `json:"operations"`
	Lines      int    `json:"lines"`
	DurationMs int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
	Timestamp  int64  `json:"timestamp"`
}

// QuoteCalculatedPayloadV1 is the payload for pricing events. Kind is
// "standard" or a specialty type.
type QuoteCalculatedPayloadV1 struct {
	Kind      string  `json:"kind"`
	Total     float64 `json:"total"`
	Estimated bool    `json:"estimated,omitempty"`
	TooLarge  bool    `json:"too_large,omitempty"`
	Timestamp int64   `json:"timestamp"`
}

// NewCartItemEvent builds an item added, removed or updated event from the
// item as it stands after the change.
func NewCartItemEvent(t Type, storeID string, item domain.CartItem) Event {
	payload := CartItemPayloadV1{
		StoreID:   storeID,
		ItemID:    item.ID,
		VariantID: item.VariantID,
		Quantity:  item.Quantity,
		Price:     item.Price,
		Estimated: item.PriceEstimated,
		Timestamp: time.Now().Unix(),
	}
	if item.SpecialtyConfig != nil {
		payload.Specialty = string(item.SpecialtyConfig.Type)
	}
	return newEvent(t, payload)
}

// NewCartClearedEvent reports how many items a clear dropped.
func NewCartClearedEvent(storeID string, items int) Event {
	return newEvent(CartCleared, CartClearedPayloadV1{
		StoreID:   storeID,
		Items:     items,
		Timestamp: time.Now().Unix(),
	})
}

// NewCartSyncedEvent reports a reconciliation pass that left the remote
// cart matching the local one.
func NewCartSyncedEvent(storeID, cartID string, operations, lines int, took time.Duration) Event {
	return newEvent(CartSynced, CartSyncPayloadV1{
		StoreID:    storeID,
		CartID:     cartID,
		Operations: operations,
		Lines:      lines,
		DurationMs: took.Milliseconds(),
		Timestamp:  time.Now().Unix(),
	})
}

// NewCartSyncFailedEvent reports a pass that gave up; err may be nil.
func NewCartSyncFailedEvent(storeID, cartID string, operations int, err error) Event {
	payload := CartSyncPayloadV1{
		StoreID:    storeID,
		CartID:     cartID,
		Operations: operations,
		Timestamp:  time.Now().Unix(),
	}
	if err != nil {
		payload.Error = err.Error()
	}
	return newEvent(CartSyncFailed, payload)
}

// NewQuoteCalculatedEvent records one priced configuration.
func NewQuoteCalculatedEvent(kind string, total float64, estimated, tooLarge bool) Event {
	return newEvent(QuoteCalculated, QuoteCalculatedPayloadV1{
		Kind:      kind,
		Total:     total,
		Estimated: estimated,
		TooLarge:  tooLarge,
		Timestamp: time.Now().Unix(),
	})
}

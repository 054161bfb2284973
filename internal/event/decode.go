package event

import (
	"encoding/json"
	"fmt"
)

// DecodePayload returns input as T. In-process publishers hand over the
// typed struct directly; anything else, such as a payload read back from the
// dead-letter file, goes through a JSON round trip.
func DecodePayload[T any](input interface{}) (T, error) {
	if v, ok := input.(T); ok {
		return v, nil
	}
	var result T
	data, err := json.Marshal(input)
	if err != nil {
		return result, fmt.Errorf("failed to encode %T payload: %w", input, err)
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("failed to decode payload as %T: %w", result, err)
	}
	return result, nil
}

// StoreIDOf returns the tenant an event concerns, or "" for events that are
// not scoped to a store.
func StoreIDOf(evt Event) string {
	switch p := evt.Payload.(type) {
	case CartItemPayloadV1:
		return p.StoreID
	case CartClearedPayloadV1:
		return p.StoreID
	case CartSyncPayloadV1:
		return p.StoreID
	}
	scoped, err := DecodePayload[struct {
		StoreID string `json:"store_id"`
	}](evt.Payload)
	if err != nil {
		return ""
	}
	return scoped.StoreID
}

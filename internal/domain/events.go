package domain

// Event type constants used for event bus subscriptions and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "cart.item_added")
const (
	EventTypeCartItemAdded   = "cart.item_added"
	EventTypeCartItemRemoved = "cart.item_removed"
	EventTypeCartItemUpdated = "cart.item_updated"
	EventTypeCartCleared     = "cart.cleared"

	// EventTypeCartSynced is published after a reconciliation pass succeeds
	EventTypeCartSynced = "cart.synced"

	// EventTypeCartSyncFailed is published when a background or explicit sync
	// fails. Rollbacks have already been applied when it fires.
	EventTypeCartSyncFailed = "cart.sync_failed"

	EventTypeQuoteCalculated = "pricing.quote_calculated"
)

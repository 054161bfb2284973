package eventlog

import (
	"time"

	"github.com/osse101/FrameCraft_Go/internal/event"
)

// LoggedTypes are the event types written to the audit log.
var LoggedTypes = []event.Type{
	event.CartItemAdded,
	event.CartItemRemoved,
	event.CartItemUpdated,
	event.CartCleared,
	event.CartSynced,
	event.CartSyncFailed,
	event.QuoteCalculated,
}

const (
	DefaultRetention      = 30 * 24 * time.Hour
	DefaultMemoryCapacity = 5000
	DefaultPageSize       = 50
	MaxPageSize           = 1000
)

const (
	LogMsgEventPayloadNotObject = "Event payload is not a JSON object, skipping log"
	LogMsgFailedToLogEvent      = "Failed to write event to audit log"
	LogMsgEventLogged           = "Event written to audit log"
)

const (
	LogMsgCleanupJobStarting  = "Starting event log cleanup job"
	LogMsgCleanupJobFailed    = "Event log cleanup failed"
	LogMsgCleanupJobCompleted = "Event log cleanup completed"
)

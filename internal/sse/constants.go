package sse

import (
	"time"

	"github.com/osse101/FrameCraft_Go/internal/domain"
)

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50

	// ClientChannelBuffer is the buffer size for register/unregister channels
	ClientChannelBuffer = 10
)

// Stream settings
const (
	// KeepaliveInterval is how often an idle stream gets a ping.
	KeepaliveInterval = 30 * time.Second

	// ReconnectDelay is sent to browsers with the first event.
	ReconnectDelay = 3 * time.Second

	ContentTypeEventStream = "text/event-stream"
)

// Event types for SSE
const (
	EventTypeItemAdded   = domain.EventTypeCartItemAdded
	EventTypeItemUpdated = domain.EventTypeCartItemUpdated
	EventTypeItemRemoved = domain.EventTypeCartItemRemoved
	EventTypeCleared     = domain.EventTypeCartCleared
	EventTypeSynced      = domain.EventTypeCartSynced
	EventTypeSyncFailed  = domain.EventTypeCartSyncFailed

	// EventTypeConnected is the first event every client receives
	EventTypeConnected = "connected"

	// EventTypeKeepalive is the keepalive ping event type
	EventTypeKeepalive = "keepalive"
)

// Query parameters accepted by Handler
const (
	QueryParamTypes = "types"
	QueryParamStore = "store"
)

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventBroadcast     = "Broadcasting SSE event"
	LogMsgEventDropped       = "SSE broadcast buffer full, event dropped"
	LogMsgWriteError         = "Failed to write SSE event"
	LogMsgInvalidPayload     = "Invalid cart event payload"
	LogMsgSubscribed         = "SSE subscriber registered for event types"
)

// ErrMsgStreamingUnsupported is returned when the writer cannot flush
const ErrMsgStreamingUnsupported = "SSE not supported"

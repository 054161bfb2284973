package sse

import (
	"net/http"
	"strings"
	"time"

	"github.com/osse101/FrameCraft_Go/internal/logger"
)

// Handler streams hub events. ?types= narrows by event type and ?store= by
// store id.
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, ErrMsgStreamingUnsupported, http.StatusInternalServerError)
			return
		}

		h := w.Header()
		h.Set("Content-Type", ContentTypeEventStream)
		h.Set("Cache-Control", "no-cache")
		h.Set("Connection", "keep-alive")
		// stops nginx from buffering the stream
		h.Set("X-Accel-Buffering", "no")

		q := r.URL.Query()
		var eventTypes []string
		if raw := q.Get(QueryParamTypes); raw != "" {
			for _, t := range strings.Split(raw, ",") {
				if t = strings.TrimSpace(t); t != "" {
					eventTypes = append(eventTypes, t)
				}
			}
		}
		storeID := q.Get(QueryParamStore)

		ctx := r.Context()
		if storeID != "" {
			ctx = logger.WithAttrs(ctx, logger.AttrKeyStoreID, storeID)
		}
		log := logger.FromContext(ctx)

		client := hub.Register(eventTypes, storeID)
		log.Info(LogMsgClientConnected,
			"client_id", client.ID,
			"filters", eventTypes,
			"total_clients", hub.ClientCount())
		defer func() {
			hub.Unregister(client.ID)
			log.Info(LogMsgClientDisconnected, "client_id", client.ID, "dropped", client.Dropped())
		}()

		send := func(e Event, retry time.Duration) bool {
			msg, err := FormatSSEMessage(e, retry)
			if err != nil {
				log.Error(LogMsgWriteError, "event_type", e.Type, "error", err)
				return true
			}
			if _, err := w.Write(msg); err != nil {
				log.Warn(LogMsgWriteError, "event_type", e.Type, "error", err)
				return false
			}
			flusher.Flush()
			return true
		}

		connected := Event{
			ID:        client.ID,
			Type:      EventTypeConnected,
			StoreID:   storeID,
			Timestamp: time.Now().Unix(),
			Payload: map[string]interface{}{
				"client_id": client.ID,
				"filters":   eventTypes,
			},
		}
		if !send(connected, ReconnectDelay) {
			return
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-client.EventChannel:
				if !ok || !send(e, 0) {
					return
				}
			case now := <-ticker.C:
				if !send(Event{Type: EventTypeKeepalive, Timestamp: now.Unix()}, 0) {
					return
				}
			}
		}
	}
}

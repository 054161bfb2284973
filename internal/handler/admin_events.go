package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/osse101/FrameCraft_Go/internal/eventlog"
)

// AdminEventsHandler serves the audit log to operators.
type AdminEventsHandler struct {
	events eventlog.Service
}

func NewAdminEventsHandler(events eventlog.Service) *AdminEventsHandler {
	return &AdminEventsHandler{events: events}
}

// EventsResponse is one page of the audit log. Pass NextBefore back as
// ?before= to fetch the next page.
type EventsResponse struct {
	Events     []EventLogEntry `json:"events"`
	NextBefore int64           `json:"next_before,omitempty"`
}

// EventLogEntry is a single audit record.
type EventLogEntry struct {
	ID        int64           `json:"id"`
	Type      string          `json:"type"`
	StoreID   string          `json:"store_id,omitempty"`
	Payload   json.RawMessage `json:"payload"`
	Metadata  map[string]any  `json:"metadata,omitempty"`
	CreatedAt string          `json:"created_at"`
}

// HandleGetEvents pages through logged cart and pricing events
// @Summary Query the event log
// @Description Newest first. Filters by store, one or more event types and an RFC3339 time window (admin only)
// @Tags admin
// @Produce json
// @Param store_id query string false "Store id"
// @Param type query []string false "Event type, repeatable, e.g. cart.sync_failed"
// @Param since query string false "RFC3339 lower bound"
// @Param until query string false "RFC3339 upper bound"
// @Param before query int false "Cursor from next_before"
// @Param limit query int false "1-1000, default 50"
// @Success 200 {object} EventsResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/events [get]
func (h *AdminEventsHandler) HandleGetEvents(w http.ResponseWriter, r *http.Request) {
	q, msg := parseEventsQuery(r)
	if msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	page, err := h.events.Events(r.Context(), q)
	if err != nil {
		respondServiceError(w, r, ErrMsgEventsQueryFailed, err)
		return
	}

	resp := EventsResponse{
		Events:     make([]EventLogEntry, len(page.Records)),
		NextBefore: page.NextBefore,
	}
	for i, rec := range page.Records {
		resp.Events[i] = EventLogEntry{
			ID:        rec.ID,
			Type:      rec.Type,
			StoreID:   rec.StoreID,
			Payload:   rec.Payload,
			Metadata:  rec.Metadata,
			CreatedAt: rec.CreatedAt.Format(time.RFC3339),
		}
	}
	respondJSON(w, http.StatusOK, resp)
}

// parseEventsQuery returns the query or a client-facing reason it is invalid.
func parseEventsQuery(r *http.Request) (eventlog.Query, string) {
	values := r.URL.Query()
	q := eventlog.Query{
		StoreID: values.Get("store_id"),
		Types:   values["type"],
	}

	for name, dst := range map[string]*time.Time{"since": &q.Since, "until": &q.Until} {
		raw := values.Get(name)
		if raw == "" {
			continue
		}
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return q, "Invalid '" + name + "' timestamp (use RFC3339)"
		}
		*dst = ts
	}
	if !q.Since.IsZero() && !q.Until.IsZero() && q.Until.Before(q.Since) {
		return q, "'until' is before 'since'"
	}

	if raw := values.Get("before"); raw != "" {
		before, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || before < 1 {
			return q, "Invalid 'before' cursor"
		}
		q.Before = before
	}

	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > eventlog.MaxPageSize {
			return q, "Invalid 'limit' (must be 1-1000)"
		}
		q.Limit = limit
	}
	return q, ""
}

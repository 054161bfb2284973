package eventlog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/osse101/FrameCraft_Go/internal/event"
	"github.com/osse101/FrameCraft_Go/internal/logger"
)

// Page is one slice of query results. NextBefore is the cursor for the
// following page, zero when there is none.
type Page struct {
	Records    []Record
	NextBefore int64
}

// Service writes cart and pricing events to the audit log and reads them
// back for operators.
type Service interface {
	// Subscribe registers the audit writer for every logged type
	Subscribe(bus event.Bus) error

	// Events returns one page of records, newest first
	Events(ctx context.Context, q Query) (Page, error)

	// Purge removes records older than retention
	Purge(ctx context.Context, retention time.Duration) (int64, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new event logging service
func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Subscribe(bus event.Bus) error {
	for _, eventType := range LoggedTypes {
		bus.Subscribe(eventType, s.handleEvent)
	}
	return nil
}

// handleEvent stores the payload as received. Payloads that do not encode
// to a JSON object are skipped.
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	raw, err := json.Marshal(evt.Payload)
	if err != nil || !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		log.Debug(LogMsgEventPayloadNotObject, "type", evt.Type)
		return nil
	}

	rec := Record{
		Type:     string(evt.Type),
		StoreID:  event.StoreIDOf(evt),
		Payload:  raw,
		Metadata: evt.Metadata,
	}
	if err := s.repo.Append(ctx, rec); err != nil {
		log.Error(LogMsgFailedToLogEvent, "error", err, "type", evt.Type)
		return fmt.Errorf("append %s: %w", evt.Type, err)
	}

	log.Debug(LogMsgEventLogged, "type", evt.Type, "store_id", rec.StoreID)
	return nil
}

// Events fetches one extra row to learn whether another page follows.
func (s *service) Events(ctx context.Context, q Query) (Page, error) {
	switch {
	case q.Limit <= 0:
		q.Limit = DefaultPageSize
	case q.Limit > MaxPageSize:
		q.Limit = MaxPageSize
	}
	limit := q.Limit
	q.Limit++

	records, err := s.repo.Query(ctx, q)
	if err != nil {
		return Page{}, fmt.Errorf("query event log: %w", err)
	}

	page := Page{Records: records}
	if len(records) > limit {
		page.Records = records[:limit]
		page.NextBefore = page.Records[limit-1].ID
	}
	return page, nil
}

func (s *service) Purge(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return s.repo.PurgeBefore(ctx, s.now().Add(-retention))
}

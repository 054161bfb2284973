package eventlog

import (
	"context"
	"encoding/json"
	"time"
)

// Record is one stored event.
type Record struct {
	ID        int64           `json:"id"`
	Type      string          `json:"type"`
	StoreID   string          `json:"store_id,omitempty"`
	Payload   json.RawMessage `json:"payload"`
	Metadata  map[string]any  `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Query selects records newest first. Zero fields do not filter. Before is
// a cursor: only records with a smaller ID are returned.
type Query struct {
	StoreID string
	Types   []string
	Since   time.Time
	Until   time.Time
	Before  int64
	Limit   int
}

// matches applies every filter except Before and Limit.
func (q Query) matches(r Record) bool {
	if q.StoreID != "" && r.StoreID != q.StoreID {
		return false
	}
	if len(q.Types) > 0 {
		found := false
		for _, t := range q.Types {
			if t == r.Type {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if !q.Since.IsZero() && r.CreatedAt.Before(q.Since) {
		return false
	}
	if !q.Until.IsZero() && r.CreatedAt.After(q.Until) {
		return false
	}
	return true
}

// Repository stores audit records.
type Repository interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	// PurgeBefore deletes records created before cutoff and reports how many
	// went.
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

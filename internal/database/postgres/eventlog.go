package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/FrameCraft_Go/internal/eventlog"
)

const appendEventSQL = `
	INSERT INTO events (event_type, store_id, payload, metadata, created_at)
	VALUES (@event_type, NULLIF(@store_id, ''), @payload, @metadata, COALESCE(@created_at, NOW()))`

const selectEventsSQL = `
	SELECT id, event_type, COALESCE(store_id, '') AS store_id, payload, metadata, created_at
	FROM events`

// EventLogRepository stores the audit log in the events table.
type EventLogRepository struct {
	db *pgxpool.Pool
}

func NewEventLogRepository(db *pgxpool.Pool) *EventLogRepository {
	return &EventLogRepository{db: db}
}

var _ eventlog.Repository = (*EventLogRepository)(nil)

type eventRow struct {
	ID        int64          `db:"id"`
	EventType string         `db:"event_type"`
	StoreID   string         `db:"store_id"`
	Payload   []byte         `db:"payload"`
	Metadata  map[string]any `db:"metadata"`
	CreatedAt time.Time      `db:"created_at"`
}

func (r *EventLogRepository) Append(ctx context.Context, rec eventlog.Record) error {
	var meta []byte
	if len(rec.Metadata) > 0 {
		var err error
		if meta, err = json.Marshal(rec.Metadata); err != nil {
			return fmt.Errorf("encode metadata: %w", err)
		}
	}
	var created *time.Time
	if !rec.CreatedAt.IsZero() {
		created = &rec.CreatedAt
	}

	_, err := r.db.Exec(ctx, appendEventSQL, pgx.NamedArgs{
		"event_type": rec.Type,
		"store_id":   rec.StoreID,
		"payload":    []byte(rec.Payload),
		"metadata":   meta,
		"created_at": created,
	})
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// Query pages by id so the cursor stays stable while new rows arrive.
func (r *EventLogRepository) Query(ctx context.Context, q eventlog.Query) ([]eventlog.Record, error) {
	var where []string
	args := pgx.NamedArgs{}

	if q.StoreID != "" {
		where = append(where, "store_id = @store_id")
		args["store_id"] = q.StoreID
	}
	if len(q.Types) > 0 {
		where = append(where, "event_type = ANY(@types)")
		args["types"] = q.Types
	}
	if !q.Since.IsZero() {
		where = append(where, "created_at >= @since")
		args["since"] = q.Since
	}
	if !q.Until.IsZero() {
		where = append(where, "created_at <= @until")
		args["until"] = q.Until
	}
	if q.Before > 0 {
		where = append(where, "id < @before")
		args["before"] = q.Before
	}

	var sql strings.Builder
	sql.WriteString(selectEventsSQL)
	if len(where) > 0 {
		sql.WriteString(" WHERE ")
		sql.WriteString(strings.Join(where, " AND "))
	}
	sql.WriteString(" ORDER BY id DESC")
	if q.Limit > 0 {
		sql.WriteString(" LIMIT @limit")
		args["limit"] = q.Limit
	}

	rows, err := r.db.Query(ctx, sql.String(), args)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[eventRow])
	if err != nil {
		return nil, fmt.Errorf("scan events: %w", err)
	}

	out := make([]eventlog.Record, len(found))
	for i, row := range found {
		out[i] = eventlog.Record{
			ID:        row.ID,
			Type:      row.EventType,
			StoreID:   row.StoreID,
			Payload:   json.RawMessage(row.Payload),
			Metadata:  row.Metadata,
			CreatedAt: row.CreatedAt,
		}
	}
	return out, nil
}

func (r *EventLogRepository) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM events WHERE created_at < @cutoff`, pgx.NamedArgs{"cutoff": cutoff})
	if err != nil {
		return 0, fmt.Errorf("purge events: %w", err)
	}
	return tag.RowsAffected(), nil
}

package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/FrameCraft_Go/internal/cart"
	"github.com/osse101/FrameCraft_Go/internal/database/generated"
)

// CartStorage keeps cart snapshots in the cart_snapshots table.
type CartStorage struct {
	db *pgxpool.Pool
	q  *generated.Queries
}

// NewCartStorage creates a Postgres-backed cart.Storage.
func NewCartStorage(db *pgxpool.Pool) *CartStorage {
	return &CartStorage{db: db, q: generated.New(db)}
}

var _ cart.Storage = (*CartStorage)(nil)

func (s *CartStorage) Save(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	var expires pgtype.Timestamptz
	if ttl > 0 {
		expires = pgtype.Timestamptz{Time: time.Now().Add(ttl).UTC(), Valid: true}
	}
	return s.q.UpsertCartSnapshot(ctx, generated.UpsertCartSnapshotParams{
		CartKey:   key,
		StoreID:   storeIDFromKey(key),
		Data:      data,
		ExpiresAt: expires,
	})
}

func (s *CartStorage) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.q.GetCartSnapshot(ctx, key)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, cart.ErrNotFound
	}
	return data, err
}

func (s *CartStorage) Delete(ctx context.Context, key string) error {
	return s.q.DeleteCartSnapshot(ctx, key)
}

// Keys lists live keys starting with prefix. LIKE treats _ as a wildcard so
// the result is filtered again in Go.
func (s *CartStorage) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys, err := s.q.ListCartKeys(ctx, prefix)
	if err != nil {
		return nil, err
	}
	out := keys[:0]
	for _, k := range keys {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	return out, nil
}

func (s *CartStorage) Available(ctx context.Context) bool {
	return s.db.Ping(ctx) == nil
}

// PurgeExpired deletes expired snapshots and reports how many were removed.
func (s *CartStorage) PurgeExpired(ctx context.Context) (int64, error) {
	return s.q.DeleteExpiredCartSnapshots(ctx)
}

// storeIDFromKey extracts the tenant from "framecraft:cart:<store>[:<session>]".
func storeIDFromKey(key string) string {
	rest := strings.TrimPrefix(key, cart.StorageKeyPrefix+":")
	if i := strings.IndexByte(rest, ':'); i >= 0 {
		return rest[:i]
	}
	return rest
}

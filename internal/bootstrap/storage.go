package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/FrameCraft_Go/internal/cart"
	"github.com/osse101/FrameCraft_Go/internal/config"
	"github.com/osse101/FrameCraft_Go/internal/database"
	"github.com/osse101/FrameCraft_Go/internal/database/kv"
	"github.com/osse101/FrameCraft_Go/internal/database/postgres"
)

// CartStorage is the snapshot backend chosen by CART_STORAGE plus the
// resources it owns.
type CartStorage struct {
	Storage cart.Storage
	// Pool is set only for the postgres backend. The event log reuses it.
	Pool *pgxpool.Pool
	// Purger deletes expired snapshots when the backend cannot expire
	// them natively.
	Purger interface {
		PurgeExpired(ctx context.Context) (int64, error)
	}
	close func() error
}

// Close releases the backend's connections.
func (s *CartStorage) Close() error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close()
}

// OpenCartStorage opens the configured backend. Postgres is migrated before
// use. A backend that is unreachable at startup is still returned: the cart
// store keeps working in memory and persists once it recovers.
func OpenCartStorage(ctx context.Context, cfg *config.Config) (*CartStorage, error) {
	var out *CartStorage

	switch cfg.CartStorage {
	case config.StorageMemory:
		out = &CartStorage{Storage: cart.NewMemoryStorage()}
	case config.StorageFile:
		out = &CartStorage{Storage: cart.NewFileStorage(cfg.CartStorageDir)}
	case config.StorageRedis:
		rs, err := kv.Open(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenRedis, err)
		}
		out = &CartStorage{Storage: rs, close: rs.Close}
	case config.StoragePostgres:
		pool, err := database.NewPool(ctx, database.PoolConfig{
			ConnString:  cfg.GetDBConnString(),
			MaxConns:    cfg.DBMaxConns,
			MaxIdle:     cfg.DBMaxIdle,
			MaxLifetime: cfg.DBMaxLifetime,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenDatabase, err)
		}
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		pg := postgres.NewCartStorage(pool)
		out = &CartStorage{
			Storage: pg,
			Pool:    pool,
			Purger:  pg,
			close: func() error {
				pool.Close()
				return nil
			},
		}
	default:
		return nil, fmt.Errorf(ErrMsgUnknownStorage, cfg.CartStorage)
	}

	slog.Info(LogMsgCartStorageSelected, "backend", cfg.CartStorage)
	if !out.Storage.Available(ctx) {
		slog.Warn(LogMsgCartStorageDegraded, "backend", cfg.CartStorage)
	}
	return out, nil
}

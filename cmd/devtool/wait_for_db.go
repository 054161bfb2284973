package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/FrameCraft_Go/internal/config"
	"github.com/osse101/FrameCraft_Go/internal/database"
)

type WaitForDBCommand struct{}

func (c *WaitForDBCommand) Name() string {
	return "wait-for-db"
}

func (c *WaitForDBCommand) Description() string {
	return "Wait for Postgres to accept connections"
}

func (c *WaitForDBCommand) Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	attempts := fs.Int("attempts", 30, "connection attempts before giving up")
	interval := fs.Duration("interval", 2*time.Second, "pause between attempts")
	if err := fs.Parse(args); err != nil {
		return err
	}

	PrintHeader("Waiting for database")
	pool, err := connectWithRetry(ctx, config.DatabaseFromEnv(), *attempts, *interval)
	if err != nil {
		return err
	}
	pool.Close()
	PrintSuccess("Database is ready")
	return nil
}

func connectWithRetry(ctx context.Context, cfg *config.Config, attempts int, interval time.Duration) (*pgxpool.Pool, error) {
	var lastErr error
	for i := 1; i <= attempts; i++ {
		pool, err := database.NewPool(ctx, database.PoolConfig{
			ConnString:  cfg.GetDBConnString(),
			MaxConns:    1,
			MaxIdle:     cfg.DBMaxIdle,
			MaxLifetime: cfg.DBMaxLifetime,
		})
		if err == nil {
			return pool, nil
		}
		lastErr = err
		PrintInfo("Database not ready (%d/%d): %v", i, attempts, err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(interval):
		}
	}
	return nil, fmt.Errorf("database not ready after %d attempts: %w", attempts, lastErr)
}

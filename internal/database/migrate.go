package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

// MigrationState is one embedded migration and whether it has run.
type MigrationState struct {
	Version int64
	Source  string
	Applied bool
}

func newProvider(pool *pgxpool.Pool) (*goose.Provider, *sql.DB, error) {
	db := stdlib.OpenDBFromPool(pool)
	fsys, err := fsSub()
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	p, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return p, db, nil
}

// Migrate applies every pending migration.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	p, db, err := newProvider(pool)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
	}
	defer db.Close()

	results, err := p.Up(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
	}
	slog.Default().Info(LogMsgMigrationsApplied, "applied", len(results))
	return nil
}

// RollbackLast undoes the most recent migration and returns its version, or
// 0 when nothing was applied.
func RollbackLast(ctx context.Context, pool *pgxpool.Pool) (int64, error) {
	p, db, err := newProvider(pool)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToRollback, err)
	}
	defer db.Close()

	res, err := p.Down(ctx)
	if errors.Is(err, goose.ErrNoNextVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToRollback, err)
	}
	if res == nil || res.Source == nil {
		return 0, nil
	}
	slog.Default().Info(LogMsgMigrationRolledBack, "version", res.Source.Version)
	return res.Source.Version, nil
}

// MigrationStatus lists the embedded migrations in version order.
func MigrationStatus(ctx context.Context, pool *pgxpool.Pool) ([]MigrationState, error) {
	p, db, err := newProvider(pool)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	statuses, err := p.Status(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]MigrationState, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, MigrationState{
			Version: s.Source.Version,
			Source:  s.Source.Path,
			Applied: s.State == goose.StateApplied,
		})
	}
	return out, nil
}

func fsSub() (fs.FS, error) {
	return fs.Sub(migrations, migrationsDir)
}

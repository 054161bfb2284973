package main

import (
	"context"
	"fmt"
	"path"

	"github.com/osse101/FrameCraft_Go/internal/config"
	"github.com/osse101/FrameCraft_Go/internal/database"
)

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Apply, roll back or list the embedded migrations (up, down, status)"
}

func (c *MigrateCommand) Run(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("subcommand required: up, down, status")
	}

	pool, err := connectWithRetry(ctx, config.DatabaseFromEnv(), 1, 0)
	if err != nil {
		return err
	}
	defer pool.Close()

	switch args[0] {
	case "up":
		if err := database.Migrate(ctx, pool); err != nil {
			return err
		}
		PrintSuccess("Migrations applied")
	case "down":
		version, err := database.RollbackLast(ctx, pool)
		if err != nil {
			return err
		}
		if version == 0 {
			PrintWarning("Nothing to roll back")
			return nil
		}
		PrintSuccess("Rolled back %d", version)
	case "status":
		states, err := database.MigrationStatus(ctx, pool)
		if err != nil {
			return err
		}
		printMigrationStates(states)
	default:
		return fmt.Errorf("unknown subcommand %q", args[0])
	}
	return nil
}

func printMigrationStates(states []database.MigrationState) {
	PrintHeader("Migrations")
	for _, s := range states {
		name := path.Base(s.Source)
		if s.Applied {
			PrintSuccess("%05d %s", s.Version, name)
		} else {
			PrintWarning("%05d %s (pending)", s.Version, name)
		}
	}
}

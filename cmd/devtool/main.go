// Command devtool bundles operator chores: waiting for Postgres, running
// migrations, checking a deployment's health and linting the environment.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

func newRegistry() *Registry {
	r := NewRegistry()
	r.Register(&WaitForDBCommand{})
	r.Register(&MigrateCommand{})
	r.Register(&HealthCheckCommand{})
	r.Register(&CheckEnvCommand{})
	return r
}

func main() {
	_ = godotenv.Load()

	registry := newRegistry()
	if len(os.Args) < 2 {
		registry.PrintHelp(os.Stdout)
		os.Exit(1)
	}

	cmd, ok := registry.Get(os.Args[1])
	if !ok {
		PrintError("unknown command %q", os.Args[1])
		registry.PrintHelp(os.Stdout)
		os.Exit(1)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.Run(ctx, os.Args[2:])
	stop()
	if err != nil {
		PrintError("%s: %v", cmd.Name(), err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/osse101/FrameCraft_Go/docs"
	"github.com/osse101/FrameCraft_Go/internal/alert"
	"github.com/osse101/FrameCraft_Go/internal/bootstrap"
	"github.com/osse101/FrameCraft_Go/internal/cart"
	"github.com/osse101/FrameCraft_Go/internal/config"
	"github.com/osse101/FrameCraft_Go/internal/database/postgres"
	"github.com/osse101/FrameCraft_Go/internal/eventlog"
	"github.com/osse101/FrameCraft_Go/internal/handler"
	"github.com/osse101/FrameCraft_Go/internal/matcatalog"
	"github.com/osse101/FrameCraft_Go/internal/pricing"
	"github.com/osse101/FrameCraft_Go/internal/scheduler"
	"github.com/osse101/FrameCraft_Go/internal/server"
	"github.com/osse101/FrameCraft_Go/internal/sse"
	"github.com/osse101/FrameCraft_Go/internal/validation"
	"github.com/osse101/FrameCraft_Go/internal/worker"
)

const (
	shutdownTimeout      = 30 * time.Second
	eventCleanupInterval = 24 * time.Hour
	snapshotPurgeEvery   = time.Hour
	alertCooldown        = 10 * time.Minute
)

// @title                      FrameCraft API
// @version                    1.0
// @description                Custom framing pricing, line-item serialization and Shopify cart reconciliation.
// @BasePath                   /
// @securityDefinitions.apikey ApiKeyAuth
// @in                         header
// @name                       X-API-Key
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Failed to set up logging", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	warnings, err := config.ValidateEnv()
	if err != nil {
		slog.Error("Environment check failed", "error", err)
		os.Exit(1)
	}
	for _, w := range warnings {
		slog.Warn(w)
	}

	if err := run(cfg); err != nil {
		slog.Error("FrameCraft exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	bus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}

	schemas := validation.NewSchemaValidator()
	if err := schemas.Preload(validation.AllSchemas...); err != nil {
		return fmt.Errorf("compile schemas: %w", err)
	}
	catalog, err := bootstrap.LoadPricingCatalog(cfg, schemas)
	if err != nil {
		return err
	}
	pricingService := pricing.NewService(pricing.NewCalculator(catalog), publisher)

	registry, err := bootstrap.BuildStoreRegistry(cfg)
	if err != nil {
		return err
	}

	storage, err := bootstrap.OpenCartStorage(ctx, cfg)
	if err != nil {
		return err
	}

	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)
	pool.Start()

	cartService, err := cart.NewService(cart.ServiceConfig{
		Resolver:    cart.RegistryResolver{Registry: registry},
		Persistence: cart.NewPersistence(storage.Storage, schemas, cfg.CartTTL),
		Runner:      pool,
		Publisher:   publisher,
		Pricer:      pricingService,
		MaxCarts:    cfg.MaxCarts,
	})
	if err != nil {
		return err
	}

	reconciler := worker.NewReconcileWorker(cartService, cfg.ReconcileInterval)
	reconciler.Start()

	sched := scheduler.New(pool)
	healthChecks := map[string]handler.HealthChecker{
		"cart_storage": handler.AvailabilityCheck(storage.Storage.Available),
	}

	var eventRepo eventlog.Repository = eventlog.NewMemoryRepository(cfg.EventLogCapacity)
	if storage.Pool != nil {
		eventRepo = postgres.NewEventLogRepository(storage.Pool)
		healthChecks["database"] = handler.DatabaseCheck(storage.Pool)
	}
	eventLogService := eventlog.NewService(eventRepo)
	retention := time.Duration(cfg.EventRetentionDays) * 24 * time.Hour
	sched.Schedule("eventlog_cleanup", eventCleanupInterval, eventlog.NewCleanupJob(eventLogService, retention), false)
	if storage.Purger != nil {
		sched.Schedule("snapshot_purge", snapshotPurgeEvery, worker.JobFunc(func(ctx context.Context) error {
			n, err := storage.Purger.PurgeExpired(ctx)
			if err == nil && n > 0 {
				slog.Info("Expired cart snapshots purged", "count", n)
			}
			return err
		}), true)
	}

	var notifier *alert.Notifier
	if cfg.DiscordWebhookURL != "" {
		notifier, err = alert.NewNotifier(cfg.DiscordWebhookURL, cfg.ServiceName, alertCooldown)
		if err != nil {
			return err
		}
	}

	hub := sse.NewHub()
	hub.Start()

	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:        bus,
		EventLogService: eventLogService,
		Notifier:        notifier,
		SSEHub:          hub,
	}); err != nil {
		return err
	}

	matService := matcatalog.NewService(matcatalog.NewClient(cfg.MatCatalogURL), cfg.MatCacheTTL)

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		RateLimit: server.DetectorConfig{
			Window:      cfg.RateLimitWindow,
			MaxRequests: cfg.RateLimitRequests,
		},
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
	}, server.Services{
		Pricing:      pricingService,
		Carts:        cartService,
		Mats:         matService,
		EventLog:     eventLogService,
		Events:       hub,
		HealthChecks: healthChecks,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-stop:
		slog.Info("Shutdown signal received", "signal", sig.String())
	case err, ok := <-serverErr:
		if ok {
			runErr = err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		ReconcileWorker:    reconciler,
		Scheduler:          sched,
		CartService:        cartService,
		WorkerPool:         pool,
		SSEHub:             hub,
		ResilientPublisher: publisher,
		Storage:            storage,
	})
	return runErr
}

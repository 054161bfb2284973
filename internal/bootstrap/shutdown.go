package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/FrameCraft_Go/internal/cart"
	"github.com/osse101/FrameCraft_Go/internal/event"
	"github.com/osse101/FrameCraft_Go/internal/scheduler"
	"github.com/osse101/FrameCraft_Go/internal/server"
	"github.com/osse101/FrameCraft_Go/internal/sse"
	"github.com/osse101/FrameCraft_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Server             *server.Server
	ReconcileWorker    *worker.ReconcileWorker
	Scheduler          *scheduler.Scheduler
	CartService        cart.Service
	WorkerPool         *worker.Pool
	SSEHub             *sse.Hub
	ResilientPublisher *event.ResilientPublisher
	Storage            *CartStorage
}

// GracefulShutdown stops components in dependency order: the HTTP server
// first so no new mutations arrive, then the background producers, then the
// carts are flushed before the pool that runs their syncs is drained. The
// publisher and storage go last. Errors are logged and shutdown continues.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShutdownBegin)
	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerStopFailed, "error", err)
		}
	}

	if c.ReconcileWorker != nil {
		if err := c.ReconcileWorker.Shutdown(ctx); err != nil {
			slog.Error(LogMsgReconcileStopFailed, "error", err)
		}
	}
	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}

	if c.CartService != nil {
		c.CartService.Flush(ctx)
		slog.Info(LogMsgCartsFlushed)
	}
	if c.WorkerPool != nil {
		if err := c.WorkerPool.Stop(ctx); err != nil {
			slog.Error(LogMsgWorkerPoolStopFailed, "error", err)
		}
	}
	if c.SSEHub != nil {
		c.SSEHub.Stop()
	}

	if c.ResilientPublisher != nil {
		slog.Info(LogMsgPublisherDraining)
		if err := c.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgPublisherStopFailed, "error", err)
		}
	}

	if err := c.Storage.Close(); err != nil {
		slog.Error(LogMsgStorageCloseFailed, "error", err)
	}

	slog.Info(LogMsgShutdownDone)
}

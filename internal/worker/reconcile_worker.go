package worker

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/FrameCraft_Go/internal/logger"
)

// CartSyncer is the part of cart.Service the reconcile worker drives.
type CartSyncer interface {
	SyncAll(ctx context.Context) (int, error)
}

// ReconcileWorker periodically retries queued cart mutations so carts whose
// background sync failed converge without user action.
type ReconcileWorker struct {
	carts    CartSyncer
	interval time.Duration
	timer    *time.Timer
	shutdown chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
	running  bool
}

// NewReconcileWorker creates a worker. A non-positive interval uses
// DefaultReconcileInterval.
func NewReconcileWorker(carts CartSyncer, interval time.Duration) *ReconcileWorker {
	if interval <= 0 {
		interval = DefaultReconcileInterval
	}
	return &ReconcileWorker{
		carts:    carts,
		interval: interval,
		shutdown: make(chan struct{}),
	}
}

// Start schedules the first pass.
func (w *ReconcileWorker) Start() {
	w.scheduleNext()
}

func (w *ReconcileWorker) scheduleNext() {
	w.mu.Lock()
	defer w.mu.Unlock()
	select {
	case <-w.shutdown:
		return
	default:
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.interval, func() {
		select {
		case <-w.shutdown:
			return
		default:
		}
		w.RunOnce(context.Background())
		w.scheduleNext()
	})
}

// RunOnce performs one pass and blocks until it finished. Overlapping calls
// are skipped.
func (w *ReconcileWorker) RunOnce(ctx context.Context) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.wg.Add(1)
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		w.wg.Done()
	}()

	log := logger.FromContext(ctx)
	log.Debug(LogMsgReconcileStarting)
	start := time.Now()

	synced, err := w.carts.SyncAll(ctx)
	if err != nil {
		log.Warn(LogMsgReconcileFailed, "carts_synced", synced, "error", err)
		return
	}
	if synced > 0 {
		log.Info(LogMsgReconcileCompleted, "carts_synced", synced, "duration_ms", time.Since(start).Milliseconds())
	}
}

// Shutdown cancels the pending timer and waits for an in-flight pass.
func (w *ReconcileWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)

	w.mu.Lock()
	select {
	case <-w.shutdown:
	default:
		close(w.shutdown)
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(LogMsgReconcileStopped)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

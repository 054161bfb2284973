// Package scheduler runs maintenance jobs (event log retention, expired cart
// snapshot purges) on the worker pool at fixed intervals.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/FrameCraft_Go/internal/logger"
	"github.com/osse101/FrameCraft_Go/internal/worker"
)

// Log messages
const (
	LogMsgJobScheduled = "Maintenance job scheduled"
	LogMsgJobSkipped   = "Maintenance job not enqueued, pool stopped"
)

// Enqueuer is the part of worker.Pool the scheduler needs.
type Enqueuer interface {
	Enqueue(job worker.Job) bool
}

// Scheduler manages scheduled jobs
type Scheduler struct {
	pool     Enqueuer
	quit     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a new scheduler
func New(pool Enqueuer) *Scheduler {
	return &Scheduler{
		pool: pool,
		quit: make(chan struct{}),
	}
}

// Schedule enqueues job every interval until Stop. With runNow the first
// run is enqueued immediately instead of after one interval.
func (s *Scheduler) Schedule(name string, interval time.Duration, job worker.Job, runNow bool) {
	log := logger.FromContext(context.Background())
	log.Info(LogMsgJobScheduled, "job", name, "interval", interval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		if runNow && !s.pool.Enqueue(job) {
			log.Warn(LogMsgJobSkipped, "job", name)
		}

		for {
			select {
			case <-ticker.C:
				// blocks while the pool queue is full
				if !s.pool.Enqueue(job) {
					log.Warn(LogMsgJobSkipped, "job", name)
					return
				}
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop stops all scheduled jobs. Safe to call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
	s.wg.Wait()
}

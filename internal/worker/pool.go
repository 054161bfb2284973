package worker

import (
	"context"
	"sync"

	"github.com/osse101/FrameCraft_Go/internal/logger"
)

// Job represents a task to be executed by a worker
type Job interface {
	Process(ctx context.Context) error
}

// JobFunc adapts a function to Job.
type JobFunc func(ctx context.Context) error

func (f JobFunc) Process(ctx context.Context) error { return f(ctx) }

// Pool represents a worker pool. Jobs still queued at Stop are drained
// before Stop returns.
type Pool struct {
	workers  int
	jobQueue chan Job
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc

	mu      sync.RWMutex
	stopped bool
}

// NewPool creates a new worker pool
func NewPool(workers int, queueSize int) *Pool {
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		workers:  workers,
		jobQueue: make(chan Job, queueSize),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start starts the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for job := range p.jobQueue {
		if err := job.Process(p.ctx); err != nil {
			// Log error but don't crash worker
			logger.FromContext(p.ctx).Error(LogMsgWorkerJobFailed, "error", err)
		}
	}
}

// Enqueue adds a job to the queue, blocking while it is full. It returns
// false once the pool is stopped.
func (p *Pool) Enqueue(job Job) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		logger.FromContext(p.ctx).Warn(LogMsgPoolStopped)
		return false
	}
	p.jobQueue <- job
	return true
}

// Go runs fn on the pool.
func (p *Pool) Go(fn func(ctx context.Context)) {
	p.Enqueue(JobFunc(func(ctx context.Context) error {
		fn(ctx)
		return nil
	}))
}

// Stop stops accepting jobs, drains the queue and waits for the workers.
// Contexts handed to jobs are cancelled once ctx expires.
func (p *Pool) Stop(ctx context.Context) error {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return nil
	}
	p.stopped = true
	close(p.jobQueue)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()
		return nil
	case <-ctx.Done():
		p.cancel()
		<-done
		return ctx.Err()
	}
}

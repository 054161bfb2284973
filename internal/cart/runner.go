package cart

import (
	"context"
	"sync"
)

// Runner executes background sync work. worker.Pool satisfies it.
type Runner interface {
	Go(fn func(ctx context.Context))
}

// InlineRunner runs work on the calling goroutine. Mutations then return
// only after their sync settled, which keeps tests deterministic.
type InlineRunner struct{}

func (InlineRunner) Go(fn func(ctx context.Context)) { fn(context.Background()) }

// GoroutineRunner starts one goroutine per job.
type GoroutineRunner struct {
	wg sync.WaitGroup
}

func (r *GoroutineRunner) Go(fn func(ctx context.Context)) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		fn(context.Background())
	}()
}

// Wait blocks until every started job returned.
func (r *GoroutineRunner) Wait() { r.wg.Wait() }

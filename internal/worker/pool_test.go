package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testWorkers   = 2
	testQueueSize = 10
)

type testJob struct {
	executed *int32
}

func (j *testJob) Process(ctx context.Context) error {
	atomic.AddInt32(j.executed, 1)
	return nil
}

func TestPool(t *testing.T) {
	var executed int32
	pool := NewPool(testWorkers, testQueueSize)
	pool.Start()

	job := &testJob{executed: &executed}
	require.True(t, pool.Enqueue(job))
	require.True(t, pool.Enqueue(job))

	require.NoError(t, pool.Stop(context.Background()))
	assert.Equal(t, int32(2), atomic.LoadInt32(&executed))
}

func TestPool_StopDrainsQueue(t *testing.T) {
	var executed int32
	pool := NewPool(1, testQueueSize)

	// queued before any worker runs
	for i := 0; i < 5; i++ {
		require.True(t, pool.Enqueue(&testJob{executed: &executed}))
	}
	pool.Start()

	require.NoError(t, pool.Stop(context.Background()))
	assert.Equal(t, int32(5), atomic.LoadInt32(&executed))
}

func TestPool_EnqueueAfterStop(t *testing.T) {
	pool := NewPool(1, 1)
	pool.Start()
	require.NoError(t, pool.Stop(context.Background()))

	var executed int32
	assert.False(t, pool.Enqueue(&testJob{executed: &executed}))
	// second stop is a no-op
	assert.NoError(t, pool.Stop(context.Background()))
}

func TestPool_FailingJobDoesNotKillWorker(t *testing.T) {
	var executed int32
	pool := NewPool(1, testQueueSize)
	pool.Start()

	pool.Enqueue(JobFunc(func(ctx context.Context) error { return errors.New("boom") }))
	pool.Go(func(ctx context.Context) { atomic.AddInt32(&executed, 1) })

	require.NoError(t, pool.Stop(context.Background()))
	assert.Equal(t, int32(1), atomic.LoadInt32(&executed))
}

func TestPool_StopTimeoutCancelsJobs(t *testing.T) {
	pool := NewPool(1, 1)
	pool.Start()

	cancelled := make(chan struct{})
	pool.Go(func(ctx context.Context) {
		<-ctx.Done()
		close(cancelled)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, pool.Stop(ctx), context.DeadlineExceeded)

	select {
	case <-cancelled:
	default:
		t.Fatal("job context was not cancelled")
	}
}

package event

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FrameCraft_Go/internal/domain"
	"github.com/osse101/FrameCraft_Go/internal/testing/leaktest"
)

var errBusDown = errors.New("bus down")

// flakyBus fails every publish for which fail returns true and records each
// attempt time.
type flakyBus struct {
	mu       sync.Mutex
	attempts []time.Time
	fail     func(attempt int) bool
}

func (b *flakyBus) Publish(_ context.Context, _ Event) error {
	b.mu.Lock()
	b.attempts = append(b.attempts, time.Now())
	n := len(b.attempts)
	b.mu.Unlock()
	if b.fail != nil && b.fail(n) {
		return errBusDown
	}
	return nil
}

func (b *flakyBus) Subscribe(Type, Handler) {}

func (b *flakyBus) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.attempts)
}

func (b *flakyBus) gaps() []time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []time.Duration
	for i := 1; i < len(b.attempts); i++ {
		out = append(out, b.attempts[i].Sub(b.attempts[i-1]))
	}
	return out
}

func syncFailed(store string) Event {
	return NewCartSyncFailedEvent(store, "gid://shopify/Cart/1", 2, errors.New("throttled"))
}

func newPublisher(t *testing.T, bus Bus, retries int, delay time.Duration) (*ResilientPublisher, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	rp, err := NewResilientPublisher(bus, retries, delay, path)
	require.NoError(t, err)
	return rp, path
}

func readDeadLetters(t *testing.T, path string) []DeadLetterEntry {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	entries, err := ReadDeadLetters(f)
	require.NoError(t, err)
	return entries
}

func TestResilientPublisher_DeliversWithoutRetry(t *testing.T) {
	bus := &flakyBus{}
	rp, path := newPublisher(t, bus, 3, 10*time.Millisecond)

	rp.PublishWithRetry(context.Background(), syncFailed("acme"))
	require.NoError(t, rp.Shutdown(context.Background()))

	assert.Equal(t, 1, bus.count())
	assert.Empty(t, readDeadLetters(t, path))
}

func TestResilientPublisher_RetrySucceeds(t *testing.T) {
	bus := &flakyBus{fail: func(n int) bool { return n == 1 }}
	rp, path := newPublisher(t, bus, 3, 10*time.Millisecond)

	rp.PublishWithRetry(context.Background(), syncFailed("acme"))
	assert.Eventually(t, func() bool { return bus.count() == 2 }, time.Second, 5*time.Millisecond)

	require.NoError(t, rp.Shutdown(context.Background()))
	assert.Empty(t, readDeadLetters(t, path))
}

func TestResilientPublisher_ExhaustedEventIsDeadLettered(t *testing.T) {
	bus := &flakyBus{fail: func(int) bool { return true }}
	rp, path := newPublisher(t, bus, 2, 5*time.Millisecond)

	rp.PublishWithRetry(context.Background(), syncFailed("acme"))
	// initial attempt plus two retries
	assert.Eventually(t, func() bool { return bus.count() == 3 }, time.Second, 5*time.Millisecond)
	require.NoError(t, rp.Shutdown(context.Background()))

	entries := readDeadLetters(t, path)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, DeadLetterSchemaVersion, e.SchemaVersion)
	assert.Equal(t, "acme", e.StoreID)
	assert.Equal(t, CartSyncFailed, e.Event.Type)
	assert.Equal(t, 3, e.Attempts)
	assert.Equal(t, errBusDown.Error(), e.LastError)

	payload, err := DecodePayload[CartSyncPayloadV1](e.Event.Payload)
	require.NoError(t, err)
	assert.Equal(t, "throttled", payload.Error)
}

func TestResilientPublisher_QueueOverflowDeadLetters(t *testing.T) {
	bus := &flakyBus{fail: func(int) bool { return true }}
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	dl, err := NewDeadLetterWriter(path)
	require.NoError(t, err)

	// no worker drains the queue, so the second failure overflows
	rp := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, 1),
		maxRetries: 3,
		retryDelay: time.Hour,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}
	rp.PublishWithRetry(context.Background(), syncFailed("acme"))
	rp.PublishWithRetry(context.Background(), syncFailed("beta"))
	require.NoError(t, dl.Close())

	entries := readDeadLetters(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, "beta", entries[0].StoreID)
}

func TestResilientPublisher_ShutdownFlushesPending(t *testing.T) {
	bus := &flakyBus{fail: func(n int) bool { return n == 1 }}
	rp, path := newPublisher(t, bus, 5, time.Hour)

	leaktest.Verify(t, func() {
		rp.PublishWithRetry(context.Background(), syncFailed("acme"))

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		require.NoError(t, rp.Shutdown(ctx))
	})

	// the hour-long backoff was cut short by one final attempt
	assert.Equal(t, 2, bus.count())
	assert.Empty(t, readDeadLetters(t, path))
}

func TestResilientPublisher_PublishAfterShutdown(t *testing.T) {
	bus := &flakyBus{fail: func(int) bool { return true }}
	rp, path := newPublisher(t, bus, 3, time.Millisecond)
	require.NoError(t, rp.Shutdown(context.Background()))

	rp.PublishWithRetry(context.Background(), syncFailed("acme"))
	// the file is closed, so the write fails and is only logged
	assert.Equal(t, 1, bus.count())
	assert.Empty(t, readDeadLetters(t, path))
}

func TestResilientPublisher_BackoffDoubles(t *testing.T) {
	bus := &flakyBus{fail: func(n int) bool { return n < 4 }}
	base := 40 * time.Millisecond
	rp, _ := newPublisher(t, bus, 5, base)
	defer rp.Shutdown(context.Background())

	rp.PublishWithRetry(context.Background(), syncFailed("acme"))
	require.Eventually(t, func() bool { return bus.count() == 4 }, 2*time.Second, 5*time.Millisecond)

	gaps := bus.gaps()
	require.Len(t, gaps, 3)
	assert.GreaterOrEqual(t, gaps[0], base)
	assert.GreaterOrEqual(t, gaps[1], 2*base)
	assert.GreaterOrEqual(t, gaps[2], 4*base)
}

func TestResilientPublisher_ConcurrentPublishes(t *testing.T) {
	bus := &flakyBus{}
	rp, _ := newPublisher(t, bus, 3, time.Millisecond)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				rp.PublishWithRetry(context.Background(),
					NewCartItemEvent(CartItemAdded, "acme", domain.CartItem{ID: "i", Quantity: 1}))
			}
		}()
	}
	wg.Wait()
	require.NoError(t, rp.Shutdown(context.Background()))

	assert.Equal(t, 50, bus.count())
}

func TestCalculateRetryDelay(t *testing.T) {
	base := 2 * time.Second
	assert.Equal(t, base, CalculateRetryDelay(base, 0))
	assert.Equal(t, base, CalculateRetryDelay(base, 1))
	assert.Equal(t, 8*time.Second, CalculateRetryDelay(base, 3))
	assert.Equal(t, RetryMaxDelay, CalculateRetryDelay(base, 10))
	assert.Equal(t, RetryMaxDelay, CalculateRetryDelay(base, 64))
}

func TestStoreIDOf(t *testing.T) {
	assert.Equal(t, "acme", StoreIDOf(syncFailed("acme")))
	assert.Equal(t, "beta", StoreIDOf(NewCartClearedEvent("beta", 2)))
	assert.Equal(t, "gamma", StoreIDOf(Event{Payload: map[string]interface{}{"store_id": "gamma"}}))
	assert.Empty(t, StoreIDOf(NewQuoteCalculatedEvent("standard", 10, false, false)))
}

func TestReadDeadLetters_BadLine(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "dl")
	require.NoError(t, err)
	_, err = f.WriteString("{\"attempts\":1}\n\nnot json\n")
	require.NoError(t, err)
	_, err = f.Seek(0, 0)
	require.NoError(t, err)
	defer f.Close()

	entries, err := ReadDeadLetters(f)
	assert.ErrorContains(t, err, "line 3")
	assert.Len(t, entries, 1)
}

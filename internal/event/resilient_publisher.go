package event

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/osse101/FrameCraft_Go/internal/logger"
)

type retryEntry struct {
	event     Event
	attempts  int
	lastError error
}

// ResilientPublisher wraps a Bus with asynchronous retry and a dead-letter
// file. A failed publish is queued and retried with exponential backoff by a
// single worker; exhausted or overflowing events are dead-lettered.
type ResilientPublisher struct {
	bus        Bus
	retryQueue chan retryEntry
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter

	shutdown     chan struct{}
	shutdownOnce sync.Once
	wg           sync.WaitGroup
}

// NewResilientPublisher creates a publisher and starts its retry worker.
func NewResilientPublisher(bus Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dl, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}

	p := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, RetryQueueBufferSize),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}
	p.wg.Add(1)
	go p.retryWorker()
	return p, nil
}

// PublishWithRetry publishes once and queues the event for retry on failure.
// It never blocks on the retry queue.
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, event Event) {
	err := p.bus.Publish(ctx, event)
	if err == nil {
		return
	}

	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "event_type", event.Type, "error", err)
	p.enqueue(retryEntry{event: event, attempts: 1, lastError: err})
}

// Publish implements Bus. Delivery failures are handled asynchronously.
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	p.PublishWithRetry(ctx, event)
	return nil
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.bus.Subscribe(eventType, handler)
}

func (p *ResilientPublisher) enqueue(entry retryEntry) {
	select {
	case <-p.shutdown:
		logger.Warn(LogMsgEventDroppedShutdown, "event_type", entry.event.Type)
		p.writeDeadLetter(entry)
		return
	default:
	}

	select {
	case p.retryQueue <- entry:
	default:
		logger.Warn(LogMsgRetryQueueFull, "event_type", entry.event.Type)
		p.writeDeadLetter(entry)
	}
}

func (p *ResilientPublisher) retryWorker() {
	defer p.wg.Done()

	for {
		select {
		case entry := <-p.retryQueue:
			p.retry(entry)
		case <-p.shutdown:
			p.drain()
			return
		}
	}
}

// retry runs the backoff schedule for one entry until it succeeds, exhausts
// its attempts or the publisher shuts down.
func (p *ResilientPublisher) retry(entry retryEntry) {
	ctx := context.Background()
	for {
		if entry.attempts > p.maxRetries {
			logger.Warn(LogMsgEventRetryExhausted, "event_type", entry.event.Type, "attempts", entry.attempts)
			p.writeDeadLetter(entry)
			return
		}

		timer := time.NewTimer(CalculateRetryDelay(p.retryDelay, entry.attempts))
		select {
		case <-timer.C:
		case <-p.shutdown:
			timer.Stop()
			p.finalAttempt(entry)
			return
		}

		err := p.bus.Publish(ctx, entry.event)
		if err == nil {
			logger.Info(LogMsgEventRetrySucceeded, "event_type", entry.event.Type, "attempt", entry.attempts)
			return
		}
		logger.Warn(LogMsgEventRetryFailed, "event_type", entry.event.Type, "attempt", entry.attempts, "error", err)
		entry.attempts++
		entry.lastError = err
	}
}

func (p *ResilientPublisher) drain() {
	drained := 0
	for {
		select {
		case entry := <-p.retryQueue:
			p.finalAttempt(entry)
			drained++
		default:
			if drained > 0 {
				logger.Info(LogMsgQueueDrainedShutdown, "events", drained)
			}
			return
		}
	}
}

func (p *ResilientPublisher) finalAttempt(entry retryEntry) {
	err := p.bus.Publish(context.Background(), entry.event)
	if err == nil {
		return
	}
	entry.attempts++
	entry.lastError = err
	p.writeDeadLetter(entry)
}

func (p *ResilientPublisher) writeDeadLetter(entry retryEntry) {
	if p.deadLetter == nil {
		return
	}
	if err := p.deadLetter.Write(entry.event, entry.attempts, entry.lastError); err != nil {
		logger.Error(LogMsgDeadLetterWriteFailed, "event_type", entry.event.Type, "error", err)
	}
}

// Shutdown stops the worker after it drains the queue, then closes the
// dead-letter file.
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.shutdownOnce.Do(func() { close(p.shutdown) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logger.Warn(LogMsgShutdownTimeout)
		return errors.Join(ctx.Err(), p.closeDeadLetter())
	}
	return p.closeDeadLetter()
}

func (p *ResilientPublisher) closeDeadLetter() error {
	if p.deadLetter == nil {
		return nil
	}
	return p.deadLetter.Close()
}

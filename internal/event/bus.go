package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Handler reacts to one event. A returned error is reported to the
// publisher but does not stop the remaining handlers.
type Handler func(ctx context.Context, event Event) error

// Bus delivers events to the handlers subscribed to their type.
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus dispatches in process, on the publisher's goroutine.
type MemoryBus struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{handlers: map[Type][]Handler{}}
}

// Publish publishes an event to all subscribers. Handlers run synchronously
// in subscription order.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	subs := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, h := range subs {
		if err := h(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf(ErrFmtHandlersFailed, len(errs), event.Type, errors.Join(errs...))
}

// Subscribe appends handler to eventType's list.
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
	b.mu.Unlock()
}

package eventlog

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/FrameCraft_Go/internal/event"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Append(ctx context.Context, rec Record) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *MockRepository) Query(ctx context.Context, q Query) ([]Record, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Record), args.Error(1)
}

func (m *MockRepository) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, evt event.Event) error {
	return m.Called(ctx, evt).Error(0)
}

func (m *MockEventBus) Subscribe(eventType event.Type, handler event.Handler) {
	m.Called(eventType, handler)
}

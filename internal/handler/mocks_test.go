package handler

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/FrameCraft_Go/internal/cart"
	"github.com/osse101/FrameCraft_Go/internal/domain"
	"github.com/osse101/FrameCraft_Go/internal/eventlog"
	"github.com/osse101/FrameCraft_Go/internal/matcatalog"
	"github.com/osse101/FrameCraft_Go/internal/pricing"
)

// MockCartService mocks cart.Service
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) AddItem(ctx context.Context, storeID, sessionID string, in domain.NewCartItem) (*domain.CartItem, error) {
	args := m.Called(ctx, storeID, sessionID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CartItem), args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, storeID, sessionID, itemID string) error {
	return m.Called(ctx, storeID, sessionID, itemID).Error(0)
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, storeID, sessionID, itemID string, quantity int) error {
	return m.Called(ctx, storeID, sessionID, itemID, quantity).Error(0)
}

func (m *MockCartService) Clear(ctx context.Context, storeID, sessionID string) error {
	return m.Called(ctx, storeID, sessionID).Error(0)
}

func (m *MockCartService) Sync(ctx context.Context, storeID, sessionID string) (*cart.State, error) {
	args := m.Called(ctx, storeID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.State), args.Error(1)
}

func (m *MockCartService) Checkout(ctx context.Context, storeID, sessionID string) (string, error) {
	args := m.Called(ctx, storeID, sessionID)
	return args.String(0), args.Error(1)
}

func (m *MockCartService) GetState(ctx context.Context, storeID, sessionID string) (*cart.State, error) {
	args := m.Called(ctx, storeID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.State), args.Error(1)
}

func (m *MockCartService) SyncAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockCartService) Flush(ctx context.Context) {
	m.Called(ctx)
}

// MockPricingService mocks pricing.Service
type MockPricingService struct {
	mock.Mock
}

func (m *MockPricingService) Quote(ctx context.Context, cfg domain.FrameConfiguration) (*pricing.Breakdown, error) {
	args := m.Called(ctx, cfg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.Breakdown), args.Error(1)
}

func (m *MockPricingService) SpecialtyQuote(ctx context.Context, req pricing.SpecialtyRequest) (*pricing.SpecialtyBreakdown, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.SpecialtyBreakdown), args.Error(1)
}

func (m *MockPricingService) QuoteItem(ctx context.Context, cfg domain.FrameConfiguration, s *domain.SpecialtyConfig) (float64, bool, error) {
	args := m.Called(ctx, cfg, s)
	return args.Get(0).(float64), args.Bool(1), args.Error(2)
}

func (m *MockPricingService) Catalog() *pricing.Catalog {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*pricing.Catalog)
}

// MockMatService mocks matcatalog.Service
type MockMatService struct {
	mock.Mock
}

func (m *MockMatService) GetMatsBySize(ctx context.Context, width, height float64) (*matcatalog.Palette, error) {
	args := m.Called(ctx, width, height)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*matcatalog.Palette), args.Error(1)
}

func (m *MockMatService) GetMatByID(ctx context.Context, id string) (*domain.MatBoard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MatBoard), args.Error(1)
}

func (m *MockMatService) GetMatByColorName(ctx context.Context, name string) (*domain.MatBoard, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MatBoard), args.Error(1)
}

func (m *MockMatService) Catalog(ctx context.Context, f domain.MatFilter) (*domain.MatCatalog, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MatCatalog), args.Error(1)
}

// MockDBPool mocks the database.Pool interface
type MockDBPool struct {
	mock.Mock
}

func (m *MockDBPool) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockDBPool) Close() {
	m.Called()
}

// mockEventRepository mocks eventlog.Repository
type mockEventRepository struct {
	mock.Mock
}

func (m *mockEventRepository) Append(ctx context.Context, rec eventlog.Record) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *mockEventRepository) Query(ctx context.Context, q eventlog.Query) ([]eventlog.Record, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]eventlog.Record), args.Error(1)
}

func (m *mockEventRepository) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

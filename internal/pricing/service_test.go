package pricing

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FrameCraft_Go/internal/domain"
	"github.com/osse101/FrameCraft_Go/internal/event"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) PublishWithRetry(_ context.Context, evt event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

func TestService_QuotePublishesEvent(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewService(NewCalculator(testCatalog(t)), pub)

	b, err := svc.Quote(context.Background(), frameOnly(8, 10, "oak-classic"))
	require.NoError(t, err)
	assert.InDelta(t, 31.99, b.Total, 1e-9)

	require.Len(t, pub.events, 1)
	assert.Equal(t, event.QuoteCalculated, pub.events[0].Type)
	payload := pub.events[0].Payload.(event.QuoteCalculatedPayloadV1)
	assert.Equal(t, QuoteKindStandard, payload.Kind)
}

func TestService_QuoteValidatesFirst(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewService(NewCalculator(testCatalog(t)), pub)

	cfg := frameOnly(8, 10, "oak-classic")
	cfg.MatType = domain.MatSingle
	cfg.MatBorderWidth = -1
	_, err := svc.Quote(context.Background(), cfg)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, pub.events)
}

func TestService_QuoteItem(t *testing.T) {
	svc := NewService(NewCalculator(testCatalog(t)), nil)
	ctx := context.Background()

	total, estimated, err := svc.QuoteItem(ctx, frameOnly(8, 10, "oak-classic"), nil)
	require.NoError(t, err)
	assert.False(t, estimated)
	assert.InDelta(t, 31.99, total, 1e-9)

	comic := domain.NewComicBookSpecialty(domain.ComicBookConfig{ComicLayout: "single", ComicFormat: "modern-age"})
	total, estimated, err = svc.QuoteItem(ctx, frameOnly(8, 10, "retired-style"), comic)
	require.NoError(t, err)
	assert.True(t, estimated)
	assert.Equal(t, ComicFallbackPrice, total)

	_, _, err = svc.QuoteItem(ctx, frameOnly(50, 60, "oak-classic"), nil)
	assert.ErrorIs(t, err, domain.ErrTooLarge)
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$31.99", FormatPrice(31.99))
	assert.Equal(t, "$1,234.50", FormatPrice(1234.5))
	assert.Equal(t, "$0.00", FormatPrice(0))
}

func TestFormatAmount(t *testing.T) {
	s, err := FormatAmount(12.5, "USD")
	require.NoError(t, err)
	assert.Contains(t, s, "$")
	assert.Contains(t, s, "12.5")

	_, err = FormatAmount(1, "DOLLARS")
	assert.Error(t, err)
}

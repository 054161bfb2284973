package pricing

import (
	"context"

	"github.com/osse101/FrameCraft_Go/internal/domain"
	"github.com/osse101/FrameCraft_Go/internal/event"
	"github.com/osse101/FrameCraft_Go/internal/logger"
	"github.com/osse101/FrameCraft_Go/internal/serialization"
)

// QuoteKindStandard labels quotes for plain configurations.
const QuoteKindStandard = "standard"

// Publisher is the subset of event.ResilientPublisher the service needs.
type Publisher interface {
	PublishWithRetry(ctx context.Context, evt event.Event)
}

// Service prices configurations for callers outside the package.
type Service interface {
	Quote(ctx context.Context, cfg domain.FrameConfiguration) (*Breakdown, error)
	SpecialtyQuote(ctx context.Context, req SpecialtyRequest) (*SpecialtyBreakdown, error)
	// QuoteItem prices a stored configuration, dispatching to the specialty
	// pipeline when s is set.
	QuoteItem(ctx context.Context, cfg domain.FrameConfiguration, s *domain.SpecialtyConfig) (total float64, estimated bool, err error)
	Catalog() *Catalog
}

type service struct {
	calc      *Calculator
	publisher Publisher
}

// NewService creates a pricing service. publisher may be nil.
func NewService(calc *Calculator, publisher Publisher) Service {
	return &service{calc: calc, publisher: publisher}
}

func (s *service) Catalog() *Catalog {
	return s.calc.Catalog()
}

func (s *service) Quote(ctx context.Context, cfg domain.FrameConfiguration) (*Breakdown, error) {
	log := logger.FromContext(ctx)

	if err := serialization.Validate(cfg); err != nil {
		return nil, err
	}
	b, err := s.calc.Calculate(cfg)
	if err != nil {
		log.Warn("Quote failed", "frame_style", cfg.FrameStyleID, "error", err)
		return nil, err
	}

	log.Debug(LogMsgQuoteCalculated, "kind", QuoteKindStandard, "total", b.Total, "too_large", b.IsTooLarge)
	s.publish(ctx, event.NewQuoteCalculatedEvent(QuoteKindStandard, b.Total, false, b.IsTooLarge))
	return b, nil
}

func (s *service) SpecialtyQuote(ctx context.Context, req SpecialtyRequest) (*SpecialtyBreakdown, error) {
	b, err := s.calc.SpecialtyQuote(ctx, req)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Debug(LogMsgQuoteCalculated,
		"kind", req.Type, "total", b.Total, "estimated", b.Estimated)
	s.publish(ctx, event.NewQuoteCalculatedEvent(string(req.Type), b.Total, b.Estimated, false))
	return b, nil
}

func (s *service) QuoteItem(ctx context.Context, cfg domain.FrameConfiguration, sc *domain.SpecialtyConfig) (float64, bool, error) {
	if sc != nil && sc.Type != "" {
		b, err := s.SpecialtyQuote(ctx, SpecialtyRequestFor(cfg, sc))
		if err != nil {
			return 0, false, err
		}
		return b.Total, b.Estimated, nil
	}
	b, err := s.Quote(ctx, cfg)
	if err != nil {
		return 0, false, err
	}
	if b.IsTooLarge {
		return 0, false, domain.ErrTooLarge
	}
	return b.Total, false, nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, evt)
	}
}

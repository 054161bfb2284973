package matcatalog

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/FrameCraft_Go/internal/domain"
	"github.com/osse101/FrameCraft_Go/internal/logger"
	"github.com/osse101/FrameCraft_Go/internal/metrics"
)

// Fetcher is implemented by Client.
type Fetcher interface {
	Fetch(ctx context.Context, f domain.MatFilter) (*domain.MatCatalog, error)
}

// Service answers palette questions against the remote catalog.
type Service interface {
	GetMatsBySize(ctx context.Context, width, height float64) (*Palette, error)
	GetMatByID(ctx context.Context, id string) (*domain.MatBoard, error)
	GetMatByColorName(ctx context.Context, name string) (*domain.MatBoard, error)
	Catalog(ctx context.Context, f domain.MatFilter) (*domain.MatCatalog, error)
}

type service struct {
	fetcher Fetcher
	cache   *expirable.LRU[string, *domain.MatCatalog]
}

// NewService wraps fetcher with a per-query cache. A ttl of zero disables
// caching.
func NewService(fetcher Fetcher, ttl time.Duration) Service {
	s := &service{fetcher: fetcher}
	if ttl > 0 {
		s.cache = expirable.NewLRU[string, *domain.MatCatalog](DefaultCacheSize, nil, ttl)
	}
	return s
}

func (s *service) Catalog(ctx context.Context, f domain.MatFilter) (*domain.MatCatalog, error) {
	log := logger.FromContext(ctx)
	key := Query(f).Encode()

	if s.cache != nil {
		if c, ok := s.cache.Get(key); ok {
			metrics.MatCacheLookups.WithLabelValues(metrics.ResultHit).Inc()
			log.Debug(LogMsgCatalogCached, "query", key)
			return c, nil
		}
		metrics.MatCacheLookups.WithLabelValues(metrics.ResultMiss).Inc()
	}

	c, err := s.fetcher.Fetch(ctx, f)
	if err != nil {
		log.Warn(ErrMsgFetchFailed, "query", key, "error", err)
		return nil, err
	}
	log.Debug(LogMsgCatalogFetched, "query", key, "mats", len(c.Mats), "version", c.Version)

	if s.cache != nil {
		s.cache.Add(key, c)
	}
	return c, nil
}

func (s *service) GetMatsBySize(ctx context.Context, width, height float64) (*Palette, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: mat dimensions must be positive", domain.ErrInvalidInput)
	}
	size := RequiredSheetSize(width, height)
	c, err := s.Catalog(ctx, domain.MatFilter{RequiredSize: size})
	if err != nil {
		return nil, err
	}
	return newPalette(size, c.Mats), nil
}

// GetMatByID returns domain.ErrMatNotFound when no board has the id.
func (s *service) GetMatByID(ctx context.Context, id string) (*domain.MatBoard, error) {
	return s.find(ctx, func(m domain.MatBoard) bool { return m.ID == id }, id)
}

func (s *service) GetMatByColorName(ctx context.Context, name string) (*domain.MatBoard, error) {
	return s.find(ctx, func(m domain.MatBoard) bool { return m.ColorName == name }, name)
}

func (s *service) find(ctx context.Context, match func(domain.MatBoard) bool, what string) (*domain.MatBoard, error) {
	c, err := s.Catalog(ctx, domain.MatFilter{})
	if err != nil {
		return nil, err
	}
	for i := range c.Mats {
		if match(c.Mats[i]) {
			m := c.Mats[i]
			return &m, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrMatNotFound, what)
}

// IsAvailableForSize reports whether m is stocked in size.
func IsAvailableForSize(m domain.MatBoard, size domain.MatSheetSize) bool {
	return m.AvailableFor(size)
}

// SkuForSize returns the SKU of m for size, or "" when it has none.
func SkuForSize(m domain.MatBoard, size domain.MatSheetSize) string {
	return m.SKUFor(size)
}

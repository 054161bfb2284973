package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/osse101/FrameCraft_Go/internal/concurrency"
	"github.com/osse101/FrameCraft_Go/internal/domain"
	"github.com/osse101/FrameCraft_Go/internal/logger"
	"github.com/osse101/FrameCraft_Go/internal/shopify"
)

// DefaultMaxCarts bounds the number of carts kept in memory.
const DefaultMaxCarts = 1024

// RemoteResolver maps a store id to its remote cart API.
type RemoteResolver interface {
	Remote(storeID string) (RemoteCart, error)
}

// RegistryResolver resolves stores through a shopify.Registry.
type RegistryResolver struct {
	Registry *shopify.Registry
}

func (r RegistryResolver) Remote(storeID string) (RemoteCart, error) {
	c, err := r.Registry.Client(storeID)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Pricer re-prices configured items. pricing.Service satisfies it.
type Pricer interface {
	QuoteItem(ctx context.Context, cfg domain.FrameConfiguration, s *domain.SpecialtyConfig) (float64, bool, error)
}

// Service manages the carts of many stores and sessions.
type Service interface {
	AddItem(ctx context.Context, storeID, sessionID string, in domain.NewCartItem) (*domain.CartItem, error)
	RemoveItem(ctx context.Context, storeID, sessionID, itemID string) error
	UpdateQuantity(ctx context.Context, storeID, sessionID, itemID string, quantity int) error
	Clear(ctx context.Context, storeID, sessionID string) error
	Sync(ctx context.Context, storeID, sessionID string) (*State, error)
	// Checkout reconciles the cart and returns the checkout URL. Carts holding
	// estimated prices are rejected.
	Checkout(ctx context.Context, storeID, sessionID string) (string, error)
	GetState(ctx context.Context, storeID, sessionID string) (*State, error)
	// SyncAll runs a reconciliation pass on every loaded cart with queued
	// mutations and returns how many carts were synced.
	SyncAll(ctx context.Context) (int, error)
	// Flush persists every loaded cart.
	Flush(ctx context.Context)
}

// ServiceConfig wires a Service. Resolver is required.
type ServiceConfig struct {
	Resolver    RemoteResolver
	Persistence *Persistence
	Runner      Runner
	Publisher   Publisher
	Pricer      Pricer
	MaxCarts    int
}

type service struct {
	cfg      ServiceConfig
	validate *validator.Validate
	locks    *concurrency.LockManager

	mu     sync.Mutex
	stores *lru.Cache[string, *Store]
	// parked holds evicted carts that still had remote work running. They
	// go back into stores on next use so one key never has two live carts.
	parked map[string]*Store
}

// NewService creates a cart service. Carts evicted from memory are persisted
// first and reloaded from storage on next use; a cart evicted mid-sync is
// kept aside until its work settles.
func NewService(cfg ServiceConfig) (Service, error) {
	if cfg.Resolver == nil {
		return nil, errors.New("cart service requires a remote resolver")
	}
	if cfg.MaxCarts <= 0 {
		cfg.MaxCarts = DefaultMaxCarts
	}
	if cfg.Persistence == nil {
		cfg.Persistence = NewPersistence(nil, nil, DefaultTTL)
	}
	svc := &service{
		cfg:      cfg,
		validate: validator.New(),
		locks:    concurrency.NewLockManager(),
		parked:   make(map[string]*Store),
	}
	// evictions only happen inside stores.Add, which runs with mu held
	stores, err := lru.NewWithEvict[string, *Store](cfg.MaxCarts, func(key string, st *Store) {
		if !st.release(context.Background()) {
			svc.parked[key] = st
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cart cache: %w", err)
	}
	svc.stores = stores
	return svc, nil
}

// store returns the cart for storeID and sessionID, loading it from storage
// on first use.
func (s *service) store(ctx context.Context, storeID, sessionID string) (*Store, error) {
	if storeID == "" {
		storeID = DefaultStoreID
	}
	key := StorageKey(storeID, sessionID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.stores.Get(key); ok {
		return st, nil
	}
	if st, ok := s.parked[key]; ok {
		delete(s.parked, key)
		s.stores.Add(key, st)
		return st, nil
	}
	remote, err := s.cfg.Resolver.Remote(storeID)
	if err != nil {
		return nil, err
	}
	st := NewStore(Options{
		StoreID:     storeID,
		SessionID:   sessionID,
		Remote:      remote,
		Persistence: s.cfg.Persistence,
		Runner:      s.cfg.Runner,
		Locks:       s.locks,
		Publisher:   s.cfg.Publisher,
	})
	st.LoadFromStorage(ctx)
	s.stores.Add(key, st)
	return st, nil
}

func (s *service) AddItem(ctx context.Context, storeID, sessionID string, in domain.NewCartItem) (*domain.CartItem, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if in.Configuration != nil && s.cfg.Pricer != nil {
		price, estimated, err := s.cfg.Pricer.QuoteItem(ctx, *in.Configuration, in.SpecialtyConfig)
		if err != nil {
			return nil, err
		}
		in.Price = price
		in.PriceEstimated = estimated
	}
	st, err := s.store(ctx, storeID, sessionID)
	if err != nil {
		return nil, err
	}
	item := st.AddItem(ctx, in)
	return &item, nil
}

func (s *service) RemoveItem(ctx context.Context, storeID, sessionID, itemID string) error {
	st, err := s.store(ctx, storeID, sessionID)
	if err != nil {
		return err
	}
	return st.RemoveItem(ctx, itemID)
}

func (s *service) UpdateQuantity(ctx context.Context, storeID, sessionID, itemID string, quantity int) error {
	st, err := s.store(ctx, storeID, sessionID)
	if err != nil {
		return err
	}
	return st.UpdateQuantity(ctx, itemID, quantity)
}

func (s *service) Clear(ctx context.Context, storeID, sessionID string) error {
	st, err := s.store(ctx, storeID, sessionID)
	if err != nil {
		return err
	}
	st.ClearCart(ctx)
	return nil
}

func (s *service) Sync(ctx context.Context, storeID, sessionID string) (*State, error) {
	st, err := s.store(ctx, storeID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := st.SyncWithAPI(ctx); err != nil {
		return nil, err
	}
	state := st.State()
	return &state, nil
}

func (s *service) Checkout(ctx context.Context, storeID, sessionID string) (string, error) {
	st, err := s.store(ctx, storeID, sessionID)
	if err != nil {
		return "", err
	}
	if st.IsEmpty() {
		return "", domain.ErrCartEmpty
	}
	if st.HasEstimatedPrices() {
		return "", domain.ErrEstimatedPrice
	}
	if err := st.SyncWithAPI(ctx); err != nil {
		return "", err
	}
	url := st.CheckoutURL()
	if url == "" || !st.IsSynced() {
		return "", fmt.Errorf("%w: %s", domain.ErrCartNotSynced, st.Err())
	}
	logger.FromContext(ctx).Info(LogMsgCheckout, "store_id", st.StoreID(), "key", st.Key())
	return url, nil
}

func (s *service) GetState(ctx context.Context, storeID, sessionID string) (*State, error) {
	st, err := s.store(ctx, storeID, sessionID)
	if err != nil {
		return nil, err
	}
	state := st.State()
	return &state, nil
}

func (s *service) SyncAll(ctx context.Context) (int, error) {
	var (
		synced int
		errs   []error
	)
	for _, st := range s.loaded() {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		if !st.HasPendingSyncs() && len(st.PendingItems()) == 0 && len(st.ErrorItems()) == 0 {
			continue
		}
		if err := st.SyncWithAPI(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", st.Key(), err))
			continue
		}
		synced++
	}
	return synced, errors.Join(errs...)
}

func (s *service) Flush(ctx context.Context) {
	for _, st := range s.loaded() {
		st.SaveToStorage(ctx)
	}
}

// loaded returns the cached carts and the parked ones still busy. Parked
// carts that have settled are detached and forgotten.
func (s *service) loaded() []*Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.stores.Values()
	for key, st := range s.parked {
		if st.release(context.Background()) {
			delete(s.parked, key)
			continue
		}
		out = append(out, st)
	}
	return out
}

package cart

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/FrameCraft_Go/internal/concurrency"
	"github.com/osse101/FrameCraft_Go/internal/domain"
	"github.com/osse101/FrameCraft_Go/internal/event"
	"github.com/osse101/FrameCraft_Go/internal/logger"
)

// RemoteCart is the commerce cart API. shopify.Client satisfies it.
type RemoteCart interface {
	CreateCart(ctx context.Context, lines []domain.CartLineInput) (*domain.RemoteCart, error)
	AddLines(ctx context.Context, cartID string, lines []domain.CartLineInput) (*domain.RemoteCart, error)
	UpdateLines(ctx context.Context, cartID string, lines []domain.CartLineUpdate) (*domain.RemoteCart, error)
	RemoveLines(ctx context.Context, cartID string, lineIDs []string) (*domain.RemoteCart, error)
	GetCart(ctx context.Context, cartID string) (*domain.RemoteCart, error)
}

// Publisher is the subset of event.ResilientPublisher the store needs.
type Publisher interface {
	PublishWithRetry(ctx context.Context, evt event.Event)
}

// State is a consistent copy of a cart.
type State struct {
	Items    []domain.CartItem   `json:"items"`
	Metadata domain.CartMetadata `json:"metadata"`
	Loading  bool                `json:"isLoading"`
	Error    string              `json:"error,omitempty"`
}

// Options wires a Store. Remote is required; everything else has a default.
type Options struct {
	StoreID     string
	SessionID   string
	Remote      RemoteCart
	Persistence *Persistence
	Runner      Runner
	Locks       *concurrency.LockManager
	Publisher   Publisher
	Now         func() time.Time
}

// Store is one cart. Mutations apply locally at once and reconcile with the
// remote cart in the background: a failed add leaves the item visible with
// status error, a failed remove or quantity change is rolled back.
//
// Every item carries a Version bumped on each local mutation. A sync result
// is applied only while the item still has the version the sync started
// from; otherwise the item is re-queued so the newer state gets pushed.
type Store struct {
	mu      sync.Mutex
	items   []domain.CartItem
	meta    domain.CartMetadata
	loading bool
	err     string

	// inflight counts background jobs not yet finished. A detached store
	// has been dropped by its Service and never touches the remote cart or
	// the snapshot again.
	inflight int
	detached bool

	key       string
	remote    RemoteCart
	persist   *Persistence
	runner    Runner
	locks     *concurrency.LockManager
	publisher Publisher
	now       func() time.Time

	// serializes reconciliation passes
	syncMu sync.Mutex
}

func NewStore(opts Options) *Store {
	if opts.StoreID == "" {
		opts.StoreID = DefaultStoreID
	}
	if opts.Runner == nil {
		opts.Runner = &GoroutineRunner{}
	}
	if opts.Locks == nil {
		opts.Locks = concurrency.NewLockManager()
	}
	if opts.Persistence == nil {
		opts.Persistence = NewPersistence(nil, nil, DefaultTTL)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	now := opts.Now().UTC()
	return &Store{
		meta: domain.CartMetadata{
			StoreID:      opts.StoreID,
			CreatedAt:    now,
			UpdatedAt:    now,
			PendingSyncs: []domain.PendingSync{},
		},
		key:       StorageKey(opts.StoreID, opts.SessionID),
		remote:    opts.Remote,
		persist:   opts.Persistence,
		runner:    opts.Runner,
		locks:     opts.Locks,
		publisher: opts.Publisher,
		now:       opts.Now,
	}
}

// Key is the storage key of this cart.
func (s *Store) Key() string { return s.key }

func (s *Store) StoreID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meta.StoreID
}

// LoadFromStorage replaces local state with the persisted snapshot, if any.
// Absent, expired or unreadable snapshots leave the cart as it is.
func (s *Store) LoadFromStorage(ctx context.Context) {
	snap := s.persist.Load(ctx, s.key)
	if snap == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = snap.Items
	s.meta = snap.Metadata
	// nothing is in flight after a restart
	for i := range s.items {
		if s.items[i].SyncStatus == domain.SyncSyncing {
			s.items[i].SyncStatus = domain.SyncPending
		}
	}
	if s.meta.PendingSyncs == nil {
		s.meta.PendingSyncs = []domain.PendingSync{}
	}
	logger.FromContext(ctx).Debug(LogMsgCartLoaded, "key", s.key, "items", len(s.items))
}

// SaveToStorage persists the current state.
func (s *Store) SaveToStorage(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx)
}

func (s *Store) saveLocked(ctx context.Context) bool {
	if s.detached {
		return false
	}
	items := make([]domain.CartItem, len(s.items))
	for i, it := range s.items {
		items[i] = it.Clone()
	}
	meta := s.meta
	meta.PendingSyncs = append([]domain.PendingSync(nil), s.meta.PendingSyncs...)
	return s.persist.Save(ctx, s.key, items, meta)
}

// AddItem inserts a new pending item and starts its background sync. It
// never fails; a failed sync marks the item error instead.
func (s *Store) AddItem(ctx context.Context, in domain.NewCartItem) domain.CartItem {
	log := logger.FromContext(ctx)
	now := s.now().UTC()

	item := domain.CartItem{
		ID:              "item_" + uuid.NewString(),
		VariantID:       in.VariantID,
		ProductHandle:   in.ProductHandle,
		Title:           in.Title,
		VariantTitle:    in.VariantTitle,
		ImageURL:        in.ImageURL,
		Price:           in.Price,
		Currency:        in.Currency,
		Quantity:        in.Quantity,
		Configuration:   in.Configuration,
		SpecialtyConfig: in.SpecialtyConfig,
		PriceEstimated:  in.PriceEstimated,
		SyncStatus:      domain.SyncPending,
		Version:         1,
		AddedAt:         now,
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	s.mu.Lock()
	s.items = append(s.items, item)
	s.enqueueLocked(domain.SyncAdd, item.ID, "")
	s.err = ""
	s.saveLocked(ctx)
	storeID := s.meta.StoreID
	out := item.Clone()
	s.mu.Unlock()

	log.Info(LogMsgItemAdded, "item_id", item.ID, "variant_id", item.VariantID, "quantity", item.Quantity)
	s.publish(ctx, event.NewCartItemEvent(event.CartItemAdded, storeID, out))

	s.background(ctx, func(ctx context.Context) {
		// SyncItem has already marked the item error and set the store error
		if err := s.SyncItem(ctx, item.ID); err != nil {
			logger.FromContext(ctx).Warn(LogMsgSyncFailed, "item_id", item.ID, "operation", domain.SyncAdd, "error", err)
		}
	})
	return out
}

// RemoveItem drops the item at once. If the remote cart already holds it,
// the line removal runs in the background and a failure re-inserts the item.
func (s *Store) RemoveItem(ctx context.Context, itemID string) error {
	s.mu.Lock()
	idx := s.indexLocked(itemID)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}
	removed := s.items[idx]
	s.items = append(s.items[:idx:idx], s.items[idx+1:]...)
	if removed.Confirmed() {
		s.enqueueLocked(domain.SyncRemove, itemID, removed.LineItemID)
	} else {
		s.dropPendingLocked(itemID, domain.SyncAdd, domain.SyncUpdate)
	}
	s.err = ""
	s.saveLocked(ctx)
	storeID := s.meta.StoreID
	s.mu.Unlock()

	logger.FromContext(ctx).Info(LogMsgItemRemoved, "item_id", itemID, "confirmed", removed.Confirmed())
	s.publish(ctx, event.NewCartItemEvent(event.CartItemRemoved, storeID, removed))

	if removed.Confirmed() {
		s.background(ctx, func(ctx context.Context) {
			if err := s.syncRemoval(ctx, removed); err != nil {
				s.rollbackRemove(ctx, removed, idx, err)
			}
		})
	}
	return nil
}

// UpdateQuantity sets an item's quantity. A quantity of zero or less removes
// the item.
func (s *Store) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(ctx, itemID)
	}

	s.mu.Lock()
	idx := s.indexLocked(itemID)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}
	item := &s.items[idx]
	previous := item.Quantity
	item.Quantity = quantity
	// an in-flight add or update keeps ownership; its result is stale now
	// and requeues the new quantity
	if item.SyncStatus != domain.SyncSyncing {
		item.SyncStatus = domain.SyncPending
	}
	item.Version++
	version := item.Version
	confirmed := item.Confirmed()
	if confirmed {
		s.enqueueLocked(domain.SyncUpdate, itemID, "")
	}
	s.err = ""
	s.saveLocked(ctx)
	storeID := s.meta.StoreID
	updated := item.Clone()
	s.mu.Unlock()

	logger.FromContext(ctx).Info(LogMsgItemUpdated, "item_id", itemID, "from", previous, "to", quantity)
	s.publish(ctx, event.NewCartItemEvent(event.CartItemUpdated, storeID, updated))

	// unconfirmed items carry the new quantity in their pending add
	if confirmed {
		s.background(ctx, func(ctx context.Context) {
			if err := s.SyncItem(ctx, itemID); err != nil {
				s.rollbackQuantity(ctx, itemID, version, previous, err)
			}
		})
	}
	return nil
}

// ClearCart empties the cart, forgets the remote cart and deletes the
// snapshot before returning. Removing the remote lines is best effort and
// runs in the background.
func (s *Store) ClearCart(ctx context.Context) {
	s.mu.Lock()
	cartID := s.meta.CartID
	var lineIDs []string
	for _, it := range s.items {
		if it.Confirmed() {
			lineIDs = append(lineIDs, it.LineItemID)
		}
	}
	count := len(s.items)
	s.items = nil
	s.meta.CartID = ""
	s.meta.CheckoutURL = ""
	s.meta.PendingSyncs = []domain.PendingSync{}
	s.meta.UpdatedAt = s.now().UTC()
	s.err = ""
	s.persist.Clear(ctx, s.key)
	storeID := s.meta.StoreID
	s.mu.Unlock()

	logger.FromContext(ctx).Info(LogMsgCartCleared, "items", count, "had_remote_cart", cartID != "")
	s.publish(ctx, event.NewCartClearedEvent(storeID, count))

	if cartID != "" && len(lineIDs) > 0 {
		s.background(ctx, func(ctx context.Context) {
			if _, err := s.remote.RemoveLines(ctx, cartID, lineIDs); err != nil {
				logger.FromContext(ctx).Warn(LogMsgRemoteClearFail, "cart_id", cartID, "error", err)
			}
		})
	}
}

func (s *Store) rollbackRemove(ctx context.Context, removed domain.CartItem, idx int, cause error) {
	s.mu.Lock()
	s.dropPendingLocked(removed.ID, domain.SyncRemove)
	if s.indexLocked(removed.ID) < 0 {
		if idx > len(s.items) {
			idx = len(s.items)
		}
		s.items = append(s.items[:idx], append([]domain.CartItem{removed}, s.items[idx:]...)...)
	}
	s.err = ErrMsgRemoveFailed + cause.Error()
	s.saveLocked(ctx)
	s.mu.Unlock()

	logger.FromContext(ctx).Warn(LogMsgRemoveRolledBack, "item_id", removed.ID, "error", cause)
}

func (s *Store) rollbackQuantity(ctx context.Context, itemID string, version uint64, previous int, cause error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ErrMsgUpdateFailed + cause.Error()
	idx := s.indexLocked(itemID)
	if idx < 0 {
		return
	}
	item := &s.items[idx]
	// a newer mutation owns the quantity now
	if item.Version == version {
		item.Quantity = previous
		item.SyncStatus = domain.SyncError
		item.Version++
		s.dropPendingLocked(itemID, domain.SyncUpdate)
	}
	s.saveLocked(ctx)
	logger.FromContext(ctx).Warn(LogMsgUpdateRolledBack, "item_id", itemID, "quantity", previous, "error", cause)
}

// background runs fn on the runner with the log scope of ctx but without
// its cancellation.
func (s *Store) background(ctx context.Context, fn func(ctx context.Context)) {
	s.mu.Lock()
	s.inflight++
	s.mu.Unlock()
	s.runner.Go(func(bg context.Context) {
		defer func() {
			s.mu.Lock()
			s.inflight--
			s.mu.Unlock()
		}()
		fn(logger.Inherit(bg, ctx))
	})
}

// release detaches the store unless remote work is queued or in flight, in
// which case it reports false and the store stays usable.
func (s *Store) release(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detached {
		return true
	}
	if s.inflight > 0 || s.loading {
		return false
	}
	for _, it := range s.items {
		if it.SyncStatus == domain.SyncSyncing {
			return false
		}
	}
	s.saveLocked(ctx)
	s.detached = true
	return true
}

func (s *Store) publish(ctx context.Context, evt event.Event) {
	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, evt)
	}
}

func (s *Store) indexLocked(itemID string) int {
	for i := range s.items {
		if s.items[i].ID == itemID {
			return i
		}
	}
	return -1
}

func (s *Store) enqueueLocked(op domain.SyncOperation, itemID, lineID string) {
	now := s.now().UTC()
	s.meta.PendingSyncs = append(s.meta.PendingSyncs, domain.PendingSync{
		Type:      op,
		ItemID:    itemID,
		LineID:    lineID,
		Timestamp: now,
	})
	s.meta.UpdatedAt = now
}

// dropPendingLocked removes queue entries for itemID with one of ops.
func (s *Store) dropPendingLocked(itemID string, ops ...domain.SyncOperation) {
	kept := s.meta.PendingSyncs[:0]
	for _, p := range s.meta.PendingSyncs {
		if p.ItemID == itemID && containsOp(ops, p.Type) {
			continue
		}
		kept = append(kept, p)
	}
	s.meta.PendingSyncs = kept
}

func containsOp(ops []domain.SyncOperation, op domain.SyncOperation) bool {
	for _, o := range ops {
		if o == op {
			return true
		}
	}
	return false
}

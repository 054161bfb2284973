package cart

import (
	"github.com/osse101/FrameCraft_Go/internal/domain"
)

// State returns a deep copy of the cart.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]domain.CartItem, len(s.items))
	for i, it := range s.items {
		items[i] = it.Clone()
	}
	meta := s.meta
	meta.PendingSyncs = append([]domain.PendingSync{}, s.meta.PendingSyncs...)
	if s.meta.LastSyncedAt != nil {
		t := *s.meta.LastSyncedAt
		meta.LastSyncedAt = &t
	}
	return State{Items: items, Metadata: meta, Loading: s.loading, Error: s.err}
}

// Err is the last user-visible sync error, empty when none.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// ClearError dismisses the store error.
func (s *Store) ClearError() {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
}

func (s *Store) GetItem(itemID string) (domain.CartItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexLocked(itemID); idx >= 0 {
		return s.items[idx].Clone(), true
	}
	return domain.CartItem{}, false
}

// FindItemByVariant returns the first item for variantID. With a non-nil cfg
// the item's configuration must also be equal.
func (s *Store) FindItemByVariant(variantID string, cfg *domain.FrameConfiguration) (domain.CartItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.VariantID != variantID {
			continue
		}
		if cfg != nil && (it.Configuration == nil || *it.Configuration != *cfg) {
			continue
		}
		return it.Clone(), true
	}
	return domain.CartItem{}, false
}

func (s *Store) TotalQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// TotalPrice sums price times quantity over all items.
func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0.0
	for _, it := range s.items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) IsEmpty() bool { return s.ItemCount() == 0 }

func (s *Store) HasPendingSyncs() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.meta.PendingSyncs) > 0
}

// IsSynced reports whether every item is synced and nothing is queued.
func (s *Store) IsSynced() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.meta.PendingSyncs) > 0 {
		return false
	}
	for _, it := range s.items {
		if it.SyncStatus != domain.SyncSynced {
			return false
		}
	}
	return true
}

func (s *Store) ErrorItems() []domain.CartItem {
	return s.itemsWithStatus(domain.SyncError)
}

// PendingItems returns items waiting for or undergoing a sync.
func (s *Store) PendingItems() []domain.CartItem {
	return s.itemsWithStatus(domain.SyncPending, domain.SyncSyncing)
}

// HasEstimatedPrices reports whether any item carries a fallback price.
func (s *Store) HasEstimatedPrices() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.PriceEstimated {
			return true
		}
	}
	return false
}

func (s *Store) CheckoutURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meta.CheckoutURL
}

func (s *Store) itemsWithStatus(statuses ...domain.SyncStatus) []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.CartItem
	for _, it := range s.items {
		for _, st := range statuses {
			if it.SyncStatus == st {
				out = append(out, it.Clone())
				break
			}
		}
	}
	return out
}

package domain

import "time"

// SyncStatus tracks a cart item's reconciliation with the remote cart.
type SyncStatus string

const (
	SyncPending SyncStatus = "pending"
	SyncSyncing SyncStatus = "syncing"
	SyncSynced  SyncStatus = "synced"
	SyncError   SyncStatus = "error"
)

// SyncOperation is the kind of local mutation awaiting remote confirmation.
type SyncOperation string

const (
	SyncAdd    SyncOperation = "add"
	SyncUpdate SyncOperation = "update"
	SyncRemove SyncOperation = "remove"
)

// CartItem is one locally owned cart line. LineItemID stays empty until the
// remote cart has confirmed the line. Version increases on every local
// mutation and guards against applying stale sync results.
type CartItem struct {
	ID              string              `json:"id"`
	VariantID       string              `json:"variantId"`
	ProductHandle   string              `json:"productHandle"`
	Title           string              `json:"title"`
	VariantTitle    string              `json:"variantTitle,omitempty"`
	ImageURL        string              `json:"imageUrl,omitempty"`
	Price           float64             `json:"price"`
	Currency        string              `json:"currency"`
	Quantity        int                 `json:"quantity"`
	Configuration   *FrameConfiguration `json:"configuration,omitempty"`
	SpecialtyConfig *SpecialtyConfig    `json:"specialtyConfig,omitempty"`
	PriceEstimated  bool                `json:"priceEstimated,omitempty"`
	LineItemID      string              `json:"lineItemId,omitempty"`
	SyncStatus      SyncStatus          `json:"syncStatus"`
	Version         uint64              `json:"version"`
	AddedAt         time.Time           `json:"addedAt"`
}

// Confirmed reports whether the remote cart has acknowledged the item.
func (i CartItem) Confirmed() bool {
	return i.LineItemID != ""
}

// Clone returns a deep copy safe to hand out of the store.
func (i CartItem) Clone() CartItem {
	out := i
	if i.Configuration != nil {
		cfg := *i.Configuration
		out.Configuration = &cfg
	}
	if i.SpecialtyConfig != nil {
		out.SpecialtyConfig = i.SpecialtyConfig.Clone()
	}
	return out
}

// NewCartItem is the caller-supplied part of a cart item.
type NewCartItem struct {
	VariantID       string              `json:"variantId" validate:"required"`
	ProductHandle   string              `json:"productHandle"`
	Title           string              `json:"title" validate:"required"`
	VariantTitle    string              `json:"variantTitle"`
	ImageURL        string              `json:"imageUrl"`
	Price           float64             `json:"price" validate:"gte=0"`
	Currency        string              `json:"currency"`
	Quantity        int                 `json:"quantity" validate:"gte=1"`
	Configuration   *FrameConfiguration `json:"configuration,omitempty"`
	SpecialtyConfig *SpecialtyConfig    `json:"specialtyConfig,omitempty"`
	PriceEstimated  bool                `json:"priceEstimated,omitempty"`
}

// PendingSync is one queued mutation not yet reflected remotely. LineID is
// carried for removals since the item is already gone from local state.
type PendingSync struct {
	Type      SyncOperation `json:"type"`
	ItemID    string        `json:"itemId"`
	LineID    string        `json:"lineId,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// CartMetadata holds cart identity and the pending-sync queue.
type CartMetadata struct {
	CartID       string        `json:"cartId,omitempty"`
	CheckoutURL  string        `json:"checkoutUrl,omitempty"`
	StoreID      string        `json:"storeId"`
	LastSyncedAt *time.Time    `json:"lastSyncedAt,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
	PendingSyncs []PendingSync `json:"pendingSyncs"`
}

// CartLineInput is a line sent to the remote cart.
type CartLineInput struct {
	MerchandiseID string      `json:"merchandiseId"`
	Quantity      int         `json:"quantity"`
	Attributes    []Attribute `json:"attributes,omitempty"`
}

// CartLineUpdate changes the quantity of an existing remote line.
type CartLineUpdate struct {
	ID         string      `json:"id"`
	Quantity   int         `json:"quantity"`
	Attributes []Attribute `json:"attributes,omitempty"`
}

// Money is an amount in a currency as returned by the commerce API.
type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// RemoteCartLine is a line of the remote cart.
type RemoteCartLine struct {
	ID            string      `json:"id"`
	Quantity      int         `json:"quantity"`
	MerchandiseID string      `json:"merchandiseId"`
	Title         string      `json:"title"`
	ProductHandle string      `json:"productHandle"`
	TotalAmount   Money       `json:"totalAmount"`
	Attributes    []Attribute `json:"attributes"`
}

// RemoteCart mirrors the commerce API cart object.
type RemoteCart struct {
	ID             string           `json:"id"`
	CheckoutURL    string           `json:"checkoutUrl"`
	TotalQuantity  int              `json:"totalQuantity"`
	TotalAmount    Money            `json:"totalAmount"`
	SubtotalAmount Money            `json:"subtotalAmount"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
	Lines          []RemoteCartLine `json:"lines"`
}

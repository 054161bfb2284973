package sse

// CartItemPayload is sent for local item mutations.
type CartItemPayload struct {
	StoreID   string  `json:"store_id"`
	ItemID    string  `json:"item_id"`
	VariantID string  `json:"variant_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Estimated bool    `json:"estimated,omitempty"`
}

// CartClearedPayload is sent when a cart is emptied.
type CartClearedPayload struct {
	StoreID string `json:"store_id"`
	Items   int    `json:"items"`
}

// CartSyncPayload is sent after every reconcile with the remote cart.
type CartSyncPayload struct {
	StoreID    string `json:"store_id"`
	CartID     string `json:"cart_id,omitempty"`
	Operations int    `json:"operations"`
	Lines      int    `json:"lines"`
	Error      string `json:"error,omitempty"`
}

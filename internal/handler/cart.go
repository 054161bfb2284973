package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/FrameCraft_Go/internal/cart"
	"github.com/osse101/FrameCraft_Go/internal/domain"
	"github.com/osse101/FrameCraft_Go/internal/logger"
)

// Route parameters shared by every cart endpoint.
const (
	paramStoreID   = "storeId"
	paramSessionID = "sessionId"
	paramItemID    = "itemId"
)

// AddItemRequest is the body of an add-to-cart call. Price is replaced by a
// fresh quote whenever a configuration is present.
type AddItemRequest struct {
	VariantID       string                     `json:"variantId" validate:"required,shopifygid"`
	ProductHandle   string                     `json:"productHandle"`
	Title           string                     `json:"title" validate:"required,max=255"`
	VariantTitle    string                     `json:"variantTitle"`
	ImageURL        string                     `json:"imageUrl" validate:"omitempty,url"`
	Price           float64                    `json:"price" validate:"gte=0"`
	Currency        string                     `json:"currency" validate:"omitempty,len=3"`
	Quantity        int                        `json:"quantity" validate:"gte=1,lte=100"`
	Configuration   *domain.FrameConfiguration `json:"configuration,omitempty"`
	SpecialtyConfig *domain.SpecialtyConfig    `json:"specialtyConfig,omitempty"`
}

// UpdateQuantityRequest sets an item's quantity. Zero or less removes it.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"lte=100"`
}

// CheckoutResponse carries the remote checkout URL.
type CheckoutResponse struct {
	CheckoutURL string `json:"checkoutUrl"`
}

// CartResponse is a cart plus its derived totals.
type CartResponse struct {
	cart.State
	TotalQuantity int     `json:"totalQuantity"`
	TotalPrice    float64 `json:"totalPrice"`
	HasPending    bool    `json:"hasPendingSyncs"`
	HasEstimates  bool    `json:"hasEstimatedPrices"`
}

func newCartResponse(s *cart.State) CartResponse {
	resp := CartResponse{State: *s}
	for _, it := range s.Items {
		resp.TotalQuantity += it.Quantity
		resp.TotalPrice += it.Price * float64(it.Quantity)
		if it.PriceEstimated {
			resp.HasEstimates = true
		}
		if it.SyncStatus != domain.SyncSynced {
			resp.HasPending = true
		}
	}
	if len(s.Metadata.PendingSyncs) > 0 {
		resp.HasPending = true
	}
	return resp
}

// CartHandler serves the cart endpoints.
type CartHandler struct {
	carts cart.Service
}

// NewCartHandler creates a cart handler.
func NewCartHandler(carts cart.Service) *CartHandler {
	return &CartHandler{carts: carts}
}

func cartIDs(r *http.Request) (storeID, sessionID string) {
	return chi.URLParam(r, paramStoreID), chi.URLParam(r, paramSessionID)
}

// CartLogScope tags the request's logger with the store and session from
// the route, so sync logs can be traced back to a cart.
func CartLogScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		storeID, sessionID := cartIDs(r)
		next.ServeHTTP(w, r.WithContext(logger.WithCart(r.Context(), storeID, sessionID)))
	})
}

// HandleGetCart returns the cart
// @Summary Get cart
// @Tags carts
// @Produce json
// @Param storeId path string true "Store id"
// @Param sessionId path string true "Session id"
// @Success 200 {object} CartResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/carts/{storeId}/{sessionId} [get]
func (h *CartHandler) HandleGetCart(w http.ResponseWriter, r *http.Request) {
	storeID, sessionID := cartIDs(r)
	state, err := h.carts.GetState(r.Context(), storeID, sessionID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetCartFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, newCartResponse(state))
}

// HandleAddItem adds an item and starts a background sync
// @Summary Add item
// @Description The item is visible at once; remote sync happens in the background
// @Tags carts
// @Accept json
// @Produce json
// @Param storeId path string true "Store id"
// @Param sessionId path string true "Session id"
// @Param request body AddItemRequest true "Item"
// @Success 201 {object} domain.CartItem
// @Failure 400 {object} ValidationErrorResponse
// @Router /api/v1/carts/{storeId}/{sessionId}/items [post]
func (h *CartHandler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest[AddItemRequest](w, r, "add item")
	if !ok {
		return
	}

	storeID, sessionID := cartIDs(r)
	item, err := h.carts.AddItem(r.Context(), storeID, sessionID, domain.NewCartItem{
		VariantID:       req.VariantID,
		ProductHandle:   req.ProductHandle,
		Title:           req.Title,
		VariantTitle:    req.VariantTitle,
		ImageURL:        req.ImageURL,
		Price:           req.Price,
		Currency:        req.Currency,
		Quantity:        req.Quantity,
		Configuration:   req.Configuration,
		SpecialtyConfig: req.SpecialtyConfig,
	})
	if err != nil {
		respondServiceError(w, r, ErrMsgAddItemFailed, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

// HandleUpdateQuantity changes an item's quantity
// @Summary Update quantity
// @Tags carts
// @Accept json
// @Produce json
// @Param storeId path string true "Store id"
// @Param sessionId path string true "Session id"
// @Param itemId path string true "Item id"
// @Param request body UpdateQuantityRequest true "Quantity"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/carts/{storeId}/{sessionId}/items/{itemId} [patch]
func (h *CartHandler) HandleUpdateQuantity(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest[UpdateQuantityRequest](w, r, "update quantity")
	if !ok {
		return
	}

	storeID, sessionID := cartIDs(r)
	if err := h.carts.UpdateQuantity(r.Context(), storeID, sessionID, chi.URLParam(r, paramItemID), req.Quantity); err != nil {
		respondServiceError(w, r, ErrMsgUpdateItemFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgItemUpdated})
}

// HandleRemoveItem removes an item
// @Summary Remove item
// @Tags carts
// @Produce json
// @Param storeId path string true "Store id"
// @Param sessionId path string true "Session id"
// @Param itemId path string true "Item id"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/carts/{storeId}/{sessionId}/items/{itemId} [delete]
func (h *CartHandler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	storeID, sessionID := cartIDs(r)
	if err := h.carts.RemoveItem(r.Context(), storeID, sessionID, chi.URLParam(r, paramItemID)); err != nil {
		respondServiceError(w, r, ErrMsgRemoveItemFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgItemRemoved})
}

// HandleSync reconciles queued mutations with the remote cart
// @Summary Sync cart
// @Tags carts
// @Produce json
// @Param storeId path string true "Store id"
// @Param sessionId path string true "Session id"
// @Success 200 {object} CartResponse
// @Failure 502 {object} ErrorResponse
// @Router /api/v1/carts/{storeId}/{sessionId}/sync [post]
func (h *CartHandler) HandleSync(w http.ResponseWriter, r *http.Request) {
	storeID, sessionID := cartIDs(r)
	state, err := h.carts.Sync(r.Context(), storeID, sessionID)
	if err != nil {
		respondServiceError(w, r, ErrMsgSyncCartFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, newCartResponse(state))
}

// HandleCheckout syncs the cart and returns its checkout URL
// @Summary Checkout
// @Description Rejected while the cart holds estimated prices
// @Tags carts
// @Produce json
// @Param storeId path string true "Store id"
// @Param sessionId path string true "Session id"
// @Success 200 {object} CheckoutResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/carts/{storeId}/{sessionId}/checkout [post]
func (h *CartHandler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	storeID, sessionID := cartIDs(r)
	url, err := h.carts.Checkout(r.Context(), storeID, sessionID)
	if err != nil {
		respondServiceError(w, r, ErrMsgCheckoutFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, CheckoutResponse{CheckoutURL: url})
}

// HandleClearCart empties the cart
// @Summary Clear cart
// @Tags carts
// @Produce json
// @Param storeId path string true "Store id"
// @Param sessionId path string true "Session id"
// @Success 200 {object} SuccessResponse
// @Router /api/v1/carts/{storeId}/{sessionId} [delete]
func (h *CartHandler) HandleClearCart(w http.ResponseWriter, r *http.Request) {
	storeID, sessionID := cartIDs(r)
	if err := h.carts.Clear(r.Context(), storeID, sessionID); err != nil {
		respondServiceError(w, r, ErrMsgClearCartFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgCartCleared})
}

package handler

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FrameCraft_Go/internal/cart"
	"github.com/osse101/FrameCraft_Go/internal/domain"
	"github.com/osse101/FrameCraft_Go/internal/logger"
)

const (
	testVariantGID = "gid://shopify/ProductVariant/42"
	cartPath       = "/carts/acme/s1"
)

func cartRoutes(h *CartHandler) func(chi.Router) {
	return func(r chi.Router) {
		r.Route("/carts/{storeId}/{sessionId}", func(r chi.Router) {
			r.Get("/", h.HandleGetCart)
			r.Delete("/", h.HandleClearCart)
			r.Post("/items", h.HandleAddItem)
			r.Patch("/items/{itemId}", h.HandleUpdateQuantity)
			r.Delete("/items/{itemId}", h.HandleRemoveItem)
			r.Post("/sync", h.HandleSync)
			r.Post("/checkout", h.HandleCheckout)
		})
	}
}

func validAddRequest() AddItemRequest {
	return AddItemRequest{
		VariantID: testVariantGID,
		Title:     "Custom Frame",
		Price:     89.5,
		Currency:  "USD",
		Quantity:  1,
	}
}

func TestHandleAddItem(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := new(MockCartService)
		svc.On("AddItem", mock.Anything, "acme", "s1", mock.MatchedBy(func(in domain.NewCartItem) bool {
			return in.VariantID == testVariantGID && in.Quantity == 1
		})).Return(&domain.CartItem{ID: "item_1", VariantID: testVariantGID, Quantity: 1, SyncStatus: domain.SyncPending}, nil)

		w := serve(t, cartRoutes(NewCartHandler(svc)), http.MethodPost, cartPath+"/items", validAddRequest())

		assert.Equal(t, http.StatusCreated, w.Code)
		item := decode[domain.CartItem](t, w)
		assert.Equal(t, "item_1", item.ID)
		svc.AssertExpectations(t)
	})

	t.Run("variant must be a global id", func(t *testing.T) {
		svc := new(MockCartService)
		req := validAddRequest()
		req.VariantID = "42"

		w := serve(t, cartRoutes(NewCartHandler(svc)), http.MethodPost, cartPath+"/items", req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decode[ValidationErrorResponse](t, w)
		assert.Contains(t, resp.Fields, "variantId")
		svc.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("quantity bounds", func(t *testing.T) {
		svc := new(MockCartService)
		req := validAddRequest()
		req.Quantity = 0

		w := serve(t, cartRoutes(NewCartHandler(svc)), http.MethodPost, cartPath+"/items", req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown store", func(t *testing.T) {
		svc := new(MockCartService)
		svc.On("AddItem", mock.Anything, "acme", "s1", mock.Anything).Return(nil, fmt.Errorf("%w: acme", domain.ErrStoreNotFound))

		w := serve(t, cartRoutes(NewCartHandler(svc)), http.MethodPost, cartPath+"/items", validAddRequest())
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgStoreNotFoundError)
	})
}

func TestHandleGetCart_Totals(t *testing.T) {
	svc := new(MockCartService)
	svc.On("GetState", mock.Anything, "acme", "s1").Return(&cart.State{
		Items: []domain.CartItem{
			{ID: "a", Price: 10, Quantity: 2, SyncStatus: domain.SyncSynced},
			{ID: "b", Price: 5.5, Quantity: 1, SyncStatus: domain.SyncPending, PriceEstimated: true},
		},
	}, nil)

	w := serve(t, cartRoutes(NewCartHandler(svc)), http.MethodGet, cartPath+"/", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[CartResponse](t, w)
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, 3, resp.TotalQuantity)
	assert.InDelta(t, 25.5, resp.TotalPrice, 0.001)
	assert.True(t, resp.HasPending)
	assert.True(t, resp.HasEstimates)
}

func TestHandleUpdateQuantity(t *testing.T) {
	svc := new(MockCartService)
	svc.On("UpdateQuantity", mock.Anything, "acme", "s1", "item_1", 4).Return(nil)

	w := serve(t, cartRoutes(NewCartHandler(svc)), http.MethodPatch, cartPath+"/items/item_1", UpdateQuantityRequest{Quantity: 4})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), MsgItemUpdated)
	svc.AssertExpectations(t)
}

func TestHandleRemoveItem_NotFound(t *testing.T) {
	svc := new(MockCartService)
	svc.On("RemoveItem", mock.Anything, "acme", "s1", "ghost").Return(domain.ErrItemNotFound)

	w := serve(t, cartRoutes(NewCartHandler(svc)), http.MethodDelete, cartPath+"/items/ghost", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgItemNotFoundError)
}

func TestHandleCheckout(t *testing.T) {
	t.Run("returns url", func(t *testing.T) {
		svc := new(MockCartService)
		svc.On("Checkout", mock.Anything, "acme", "s1").Return("https://acme.myshopify.com/cart/c/1", nil)

		w := serve(t, cartRoutes(NewCartHandler(svc)), http.MethodPost, cartPath+"/checkout", nil)

		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[CheckoutResponse](t, w)
		assert.Equal(t, "https://acme.myshopify.com/cart/c/1", resp.CheckoutURL)
	})

	t.Run("estimated prices conflict", func(t *testing.T) {
		svc := new(MockCartService)
		svc.On("Checkout", mock.Anything, "acme", "s1").Return("", domain.ErrEstimatedPrice)

		w := serve(t, cartRoutes(NewCartHandler(svc)), http.MethodPost, cartPath+"/checkout", nil)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgEstimatedPriceError)
	})
}

func TestHandleSyncAndClear(t *testing.T) {
	svc := new(MockCartService)
	svc.On("Sync", mock.Anything, "acme", "s1").Return(&cart.State{
		Items:    []domain.CartItem{{ID: "a", Price: 1, Quantity: 1, SyncStatus: domain.SyncSynced}},
		Metadata: domain.CartMetadata{CartID: "gid://shopify/Cart/1", StoreID: "acme"},
	}, nil)
	svc.On("Clear", mock.Anything, "acme", "s1").Return(nil)
	h := NewCartHandler(svc)

	w := serve(t, cartRoutes(h), http.MethodPost, cartPath+"/sync", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[CartResponse](t, w)
	assert.False(t, resp.HasPending)
	assert.Equal(t, "gid://shopify/Cart/1", resp.Metadata.CartID)

	w = serve(t, cartRoutes(h), http.MethodDelete, cartPath+"/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), MsgCartCleared)
	svc.AssertExpectations(t)
}

func TestCartLogScope(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	w := serve(t, func(r chi.Router) {
		r.With(CartLogScope).Get("/carts/{storeId}/{sessionId}", func(w http.ResponseWriter, r *http.Request) {
			logger.FromContext(r.Context()).Info("probe")
			w.WriteHeader(http.StatusNoContent)
		})
	}, http.MethodGet, cartPath, nil)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, buf.String(), `"store_id":"acme"`)
	assert.Contains(t, buf.String(), `"session_id":"s1"`)
}

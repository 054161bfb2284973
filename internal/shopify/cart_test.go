package shopify

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FrameCraft_Go/internal/domain"
)

func cartJSON(id string, lineIDs ...string) map[string]any {
	edges := make([]map[string]any, 0, len(lineIDs))
	for i, l := range lineIDs {
		edges = append(edges, map[string]any{"node": map[string]any{
			"id":       l,
			"quantity": i + 1,
			"cost":     map[string]any{"totalAmount": map[string]any{"amount": "39.99", "currencyCode": "USD"}},
			"merchandise": map[string]any{
				"id":      "gid://shopify/ProductVariant/" + l,
				"title":   "Default",
				"product": map[string]any{"handle": "custom-frame", "title": "Custom Frame"},
			},
			"attributes": []map[string]any{{"key": "Frame Style", "value": "black-classic"}},
		}})
	}
	return map[string]any{
		"id":            id,
		"checkoutUrl":   "https://store-a.myshopify.com/cart/c/" + id,
		"createdAt":     "2026-01-02T03:04:05Z",
		"updatedAt":     "2026-01-02T03:04:05Z",
		"totalQuantity": len(lineIDs),
		"cost": map[string]any{
			"totalAmount":    map[string]any{"amount": "39.99", "currencyCode": "USD"},
			"subtotalAmount": map[string]any{"amount": "39.99", "currencyCode": "USD"},
		},
		"lines": map[string]any{"edges": edges},
	}
}

func TestCreateCart(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req graphQLRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Query, "mutation CartCreate")
		input := req.Variables["input"].(map[string]any)
		lines := input["lines"].([]any)
		require.Len(t, lines, 2)
		first := lines[0].(map[string]any)
		assert.Equal(t, "gid://v/1", first["merchandiseId"])

		writeJSON(w, map[string]any{"data": map[string]any{
			OpCartCreate: map[string]any{"cart": cartJSON("cart-1", "line-1", "line-2"), "userErrors": []any{}},
		}})
	})

	cart, err := c.CreateCart(context.Background(), []domain.CartLineInput{
		{MerchandiseID: "gid://v/1", Quantity: 1, Attributes: []domain.Attribute{{Key: "Frame Style", Value: "black-classic"}}},
		{MerchandiseID: "gid://v/2", Quantity: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, "cart-1", cart.ID)
	assert.Equal(t, "https://store-a.myshopify.com/cart/c/cart-1", cart.CheckoutURL)
	require.Len(t, cart.Lines, 2)
	assert.Equal(t, "line-1", cart.Lines[0].ID)
	assert.Equal(t, "custom-frame", cart.Lines[0].ProductHandle)
	assert.Equal(t, "39.99", cart.TotalAmount.Amount)
	assert.Equal(t, 2, cart.Lines[1].Quantity)
}

func TestCartMutations_UserErrorsFailOn200(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"data": map[string]any{
			OpCartLinesAdd: map[string]any{
				"cart":       nil,
				"userErrors": []map[string]any{{"code": "INVALID", "field": []string{"lines", "0"}, "message": "Merchandise does not exist"}},
			},
		}})
	})

	_, err := c.AddLines(context.Background(), "cart-1", []domain.CartLineInput{{MerchandiseID: "x", Quantity: 1}})
	var userErr *UserError
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, OpCartLinesAdd, userErr.Operation)
	assert.Contains(t, err.Error(), "Merchandise does not exist")
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestCartMutations_NoCartReturned(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"data": map[string]any{OpCartLinesRemove: map[string]any{"cart": nil}}})
	})

	_, err := c.RemoveLines(context.Background(), "cart-1", []string{"line-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgNoCartReturned)
}

func TestCartMutations_InputValidation(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	ctx := context.Background()
	line := []domain.CartLineInput{{MerchandiseID: "x", Quantity: 1}}

	_, err := c.CreateCart(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = c.AddLines(ctx, "", line)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = c.AddLines(ctx, "cart-1", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = c.UpdateLines(ctx, "cart-1", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = c.RemoveLines(ctx, "cart-1", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = c.GetCart(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, atomic.LoadInt32(calls))
}

func TestUpdateAndRemoveLines(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req graphQLRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "cart-1", req.Variables["cartId"])
		switch {
		case req.Variables["lineIds"] != nil:
			assert.Equal(t, []any{"line-1", "line-2"}, req.Variables["lineIds"])
			writeJSON(w, map[string]any{"data": map[string]any{OpCartLinesRemove: map[string]any{"cart": cartJSON("cart-1")}}})
		default:
			lines := req.Variables["lines"].([]any)
			assert.Equal(t, "line-1", lines[0].(map[string]any)["id"])
			writeJSON(w, map[string]any{"data": map[string]any{OpCartLinesUpdate: map[string]any{"cart": cartJSON("cart-1", "line-1")}}})
		}
	})
	ctx := context.Background()

	cart, err := c.UpdateLines(ctx, "cart-1", []domain.CartLineUpdate{{ID: "line-1", Quantity: 3}})
	require.NoError(t, err)
	assert.Len(t, cart.Lines, 1)

	cart, err = c.RemoveLines(ctx, "cart-1", []string{"line-1", "line-2"})
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)
}

func TestGetCart(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req graphQLRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Variables["id"] == "gone" {
			writeJSON(w, map[string]any{"data": map[string]any{"cart": nil}})
			return
		}
		writeJSON(w, map[string]any{"data": map[string]any{"cart": cartJSON("cart-1", "line-1")}})
	})

	cart, err := c.GetCart(context.Background(), "cart-1")
	require.NoError(t, err)
	assert.Equal(t, "cart-1", cart.ID)
	assert.Equal(t, []domain.Attribute{{Key: "Frame Style", Value: "black-classic"}}, cart.Lines[0].Attributes)

	_, err = c.GetCart(context.Background(), "gone")
	assert.ErrorIs(t, err, domain.ErrCartNotFound)
}

package shopify

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/FrameCraft_Go/internal/domain"
)

type moneyV2 = domain.Money

type cartNode struct {
	ID            string    `json:"id"`
	CheckoutURL   string    `json:"checkoutUrl"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	TotalQuantity int       `json:"totalQuantity"`
	Cost          struct {
		TotalAmount    moneyV2 `json:"totalAmount"`
		SubtotalAmount moneyV2 `json:"subtotalAmount"`
	} `json:"cost"`
	Lines struct {
		Edges []struct {
			Node lineNode `json:"node"`
		} `json:"edges"`
	} `json:"lines"`
}

type lineNode struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
	Cost     struct {
		TotalAmount moneyV2 `json:"totalAmount"`
	} `json:"cost"`
	Merchandise struct {
		ID      string `json:"id"`
		Title   string `json:"title"`
		Product struct {
			Handle string `json:"handle"`
			Title  string `json:"title"`
		} `json:"product"`
	} `json:"merchandise"`
	Attributes []domain.Attribute `json:"attributes"`
}

func (n *cartNode) toDomain() *domain.RemoteCart {
	cart := &domain.RemoteCart{
		ID:             n.ID,
		CheckoutURL:    n.CheckoutURL,
		TotalQuantity:  n.TotalQuantity,
		TotalAmount:    n.Cost.TotalAmount,
		SubtotalAmount: n.Cost.SubtotalAmount,
		CreatedAt:      n.CreatedAt,
		UpdatedAt:      n.UpdatedAt,
		Lines:          make([]domain.RemoteCartLine, 0, len(n.Lines.Edges)),
	}
	for _, e := range n.Lines.Edges {
		l := e.Node
		cart.Lines = append(cart.Lines, domain.RemoteCartLine{
			ID:            l.ID,
			Quantity:      l.Quantity,
			MerchandiseID: l.Merchandise.ID,
			Title:         l.Merchandise.Product.Title,
			ProductHandle: l.Merchandise.Product.Handle,
			TotalAmount:   l.Cost.TotalAmount,
			Attributes:    l.Attributes,
		})
	}
	return cart
}

type cartPayload struct {
	Cart       *cartNode       `json:"cart"`
	UserErrors []CartUserError `json:"userErrors"`
}

// mutateCart runs a cart mutation whose payload sits under field op.
func (c *Client) mutateCart(ctx context.Context, op, query string, vars map[string]any) (*domain.RemoteCart, error) {
	var data map[string]cartPayload
	if err := c.Do(ctx, op, query, vars, &data); err != nil {
		return nil, err
	}
	payload := data[op]
	if len(payload.UserErrors) > 0 {
		return nil, &UserError{Operation: op, Errors: payload.UserErrors}
	}
	if payload.Cart == nil {
		return nil, &APIError{Message: fmt.Sprintf("%s: %s", op, ErrMsgNoCartReturned)}
	}
	return payload.Cart.toDomain(), nil
}

// CreateCart creates a remote cart holding lines. The returned lines are in
// input order.
func (c *Client) CreateCart(ctx context.Context, lines []domain.CartLineInput) (*domain.RemoteCart, error) {
	if len(lines) == 0 {
		return nil, invalid(ErrMsgLinesRequired)
	}
	return c.mutateCart(ctx, OpCartCreate, mutationCartCreate, map[string]any{
		"input": map[string]any{"lines": lines},
	})
}

func (c *Client) AddLines(ctx context.Context, cartID string, lines []domain.CartLineInput) (*domain.RemoteCart, error) {
	if cartID == "" {
		return nil, invalid(ErrMsgCartIDRequired)
	}
	if len(lines) == 0 {
		return nil, invalid(ErrMsgLinesRequired)
	}
	return c.mutateCart(ctx, OpCartLinesAdd, mutationCartLinesAdd, map[string]any{
		"cartId": cartID,
		"lines":  lines,
	})
}

func (c *Client) UpdateLines(ctx context.Context, cartID string, lines []domain.CartLineUpdate) (*domain.RemoteCart, error) {
	if cartID == "" {
		return nil, invalid(ErrMsgCartIDRequired)
	}
	if len(lines) == 0 {
		return nil, invalid(ErrMsgLinesRequired)
	}
	return c.mutateCart(ctx, OpCartLinesUpdate, mutationCartLinesUpdate, map[string]any{
		"cartId": cartID,
		"lines":  lines,
	})
}

func (c *Client) RemoveLines(ctx context.Context, cartID string, lineIDs []string) (*domain.RemoteCart, error) {
	if cartID == "" {
		return nil, invalid(ErrMsgCartIDRequired)
	}
	if len(lineIDs) == 0 {
		return nil, invalid(ErrMsgLineIDsRequired)
	}
	return c.mutateCart(ctx, OpCartLinesRemove, mutationCartLinesRemove, map[string]any{
		"cartId":  cartID,
		"lineIds": lineIDs,
	})
}

// GetCart returns domain.ErrCartNotFound when the cart has expired or never
// existed.
func (c *Client) GetCart(ctx context.Context, cartID string) (*domain.RemoteCart, error) {
	if cartID == "" {
		return nil, invalid(ErrMsgCartIDRequired)
	}
	var data struct {
		Cart *cartNode `json:"cart"`
	}
	if err := c.Do(ctx, OpCartGet, queryCart, map[string]any{"id": cartID}, &data); err != nil {
		return nil, err
	}
	if data.Cart == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrCartNotFound, cartID)
	}
	return data.Cart.toDomain(), nil
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, msg)
}

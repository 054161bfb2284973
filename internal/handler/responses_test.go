package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/FrameCraft_Go/internal/domain"
	"github.com/osse101/FrameCraft_Go/internal/matcatalog"
	"github.com/osse101/FrameCraft_Go/internal/shopify"
)

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation keeps detail", fmt.Errorf("%w: artwork width must be positive", domain.ErrValidation), http.StatusBadRequest, "artwork width must be positive"},
		{"unknown catalog item", fmt.Errorf("%w: teak", domain.ErrFrameStyleNotFound), http.StatusBadRequest, ErrMsgCatalogItemError},
		{"too large", domain.ErrTooLarge, http.StatusUnprocessableEntity, ErrMsgTooLargeError},
		{"item not found", domain.ErrItemNotFound, http.StatusNotFound, ErrMsgItemNotFoundError},
		{"store not found", domain.ErrStoreNotFound, http.StatusNotFound, ErrMsgStoreNotFoundError},
		{"empty cart", domain.ErrCartEmpty, http.StatusConflict, ErrMsgCartEmptyError},
		{"not synced", domain.ErrCartNotSynced, http.StatusConflict, ErrMsgNotSyncedError},
		{"user error", &shopify.UserError{Operation: "cartLinesAdd", Errors: []shopify.CartUserError{{Message: "out of stock"}}}, http.StatusUnprocessableEntity, "out of stock"},
		{"rate limited", fmt.Errorf("sync: %w", &shopify.RateLimitError{}), http.StatusTooManyRequests, ErrMsgTooManyRequestsErr},
		{"mat catalog", fmt.Errorf("%w: boom", matcatalog.ErrFetchFailed), http.StatusBadGateway, ErrMsgGetMatsFailed},
		{"storefront down", &shopify.APIError{StatusCode: 503}, http.StatusBadGateway, ErrMsgUnavailableError},
		{"network", &shopify.NetworkError{Err: errors.New("dial tcp")}, http.StatusBadGateway, ErrMsgUnavailableError},
		{"unknown", errors.New("kaboom"), http.StatusInternalServerError, ErrMsgGenericServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := mapServiceErrorToUserMessage(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Contains(t, msg, tt.msg)
		})
	}
}

func TestMapServiceErrorToUserMessage_HidesInternalDetail(t *testing.T) {
	_, msg := mapServiceErrorToUserMessage(errors.New("pq: password authentication failed"))
	assert.NotContains(t, msg, "password")
}

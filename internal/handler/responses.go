package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/FrameCraft_Go/internal/domain"
	"github.com/osse101/FrameCraft_Go/internal/logger"
	"github.com/osse101/FrameCraft_Go/internal/matcatalog"
	"github.com/osse101/FrameCraft_Go/internal/shopify"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// bufferPool is a pool of bytes.Buffer to reduce allocations during JSON encoding
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	// Encode first so an encoding failure can still become a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs err under opName and writes the mapped status
// and message.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(opName, "error", err)
	} else {
		log.Warn(opName, "error", err, "status", status)
	}
	respondError(w, status, msg)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgUnavailableError    = "Shop is temporarily unavailable. Please try again later."
	ErrMsgTooManyRequestsErr  = "Too many requests. Please try again later."
	ErrMsgItemNotFoundError   = "Item not in cart"
	ErrMsgCartEmptyError      = "Your cart is empty"
	ErrMsgEstimatedPriceError = "This cart contains estimated prices. Please contact us for a final quote."
	ErrMsgStoreNotFoundError  = "Unknown store"
	ErrMsgCatalogItemError    = "Selected option is not available"
	ErrMsgTooLargeError       = "Artwork exceeds the maximum framing size"
	ErrMsgNotSyncedError      = "Your cart could not be prepared for checkout. Please try again."
)

// mapServiceErrorToUserMessage maps domain and remote errors to HTTP statuses
// and messages users can act on.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	var userErr *shopify.UserError
	var rateErr *shopify.RateLimitError
	var apiErr *shopify.APIError
	var netErr *shopify.NetworkError

	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidSpecialty):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrFrameStyleNotFound),
		errors.Is(err, domain.ErrMatColorNotFound),
		errors.Is(err, domain.ErrGlassTypeNotFound),
		errors.Is(err, domain.ErrLayoutNotFound):
		return http.StatusBadRequest, ErrMsgCatalogItemError
	case errors.Is(err, domain.ErrTooLarge):
		return http.StatusUnprocessableEntity, ErrMsgTooLargeError
	case errors.Is(err, domain.ErrItemNotFound), errors.Is(err, domain.ErrMatNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrStoreNotFound):
		return http.StatusNotFound, ErrMsgStoreNotFoundError
	case errors.Is(err, domain.ErrCartEmpty):
		return http.StatusConflict, ErrMsgCartEmptyError
	case errors.Is(err, domain.ErrEstimatedPrice):
		return http.StatusConflict, ErrMsgEstimatedPriceError
	case errors.Is(err, domain.ErrCartNotSynced):
		return http.StatusConflict, ErrMsgNotSyncedError
	case errors.As(err, &userErr):
		return http.StatusUnprocessableEntity, userErr.Error()
	case errors.As(err, &rateErr):
		return http.StatusTooManyRequests, ErrMsgTooManyRequestsErr
	case errors.Is(err, matcatalog.ErrFetchFailed):
		return http.StatusBadGateway, ErrMsgGetMatsFailed
	case errors.As(err, &apiErr), errors.As(err, &netErr):
		return http.StatusBadGateway, ErrMsgUnavailableError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

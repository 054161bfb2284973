package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgBodyTooLarge          = "Request body too large"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidQueryParam = "Invalid %s query parameter"

	// Pricing error messages
	ErrMsgQuoteFailed       = "Failed to price configuration"
	ErrMsgUnknownSpecialty  = "Unknown specialty type '%s'"
	ErrMsgSerializeFailed   = "Failed to serialize configuration"
	ErrMsgDeserializeFailed = "Failed to deserialize attributes"

	// Mat catalog error messages
	ErrMsgGetMatsFailed = "Failed to load mat catalog"

	// Cart error messages
	ErrMsgAddItemFailed    = "Failed to add item"
	ErrMsgUpdateItemFailed = "Failed to update item"
	ErrMsgRemoveItemFailed = "Failed to remove item"
	ErrMsgGetCartFailed    = "Failed to load cart"
	ErrMsgClearCartFailed  = "Failed to clear cart"
	ErrMsgSyncCartFailed   = "Failed to sync cart"
	ErrMsgCheckoutFailed   = "Failed to start checkout"

	ErrMsgEventsQueryFailed   = "Failed to retrieve events"
	ErrMsgGatherMetricsFailed = "Failed to gather metrics"
)

// Success messages for API responses
const (
	MsgCartCleared = "Cart cleared"
	MsgItemRemoved = "Item removed"
	MsgItemUpdated = "Item updated"
)

// Log messages for request decoding.
const (
	LogMsgDecodeFailed     = "Request body did not decode"
	LogMsgBodyTooLarge     = "Request body over size limit"
	LogMsgValidationFailed = "Request failed validation"
)

package shopify

import "time"

const (
	DefaultAPIVersion = "2024-01"
	DefaultDeadline   = 30 * time.Second

	// AccessTokenHeader carries the public Storefront API token.
	AccessTokenHeader = "X-Shopify-Storefront-Access-Token"
	endpointFormat    = "https://%s/api/%s/graphql.json"
)

// Retry defaults. Attempt n (0-based) waits InitialDelay * Multiplier^n,
// capped at MaxDelay.
const (
	DefaultMaxRetries   = 3
	DefaultInitialDelay = 1 * time.Second
	DefaultMaxDelay     = 10 * time.Second
	DefaultMultiplier   = 2.0
)

// Operation names, used for logs and metrics labels.
const (
	OpCartCreate      = "cartCreate"
	OpCartLinesAdd    = "cartLinesAdd"
	OpCartLinesUpdate = "cartLinesUpdate"
	OpCartLinesRemove = "cartLinesRemove"
	OpCartGet         = "cart"
)

// Log messages
const (
	LogMsgRequestSucceeded = "Storefront request succeeded"
	LogMsgRequestFailed    = "Storefront request failed"
	LogMsgRetrying         = "Retrying Storefront request"
)

// Error messages
const (
	ErrMsgCartIDRequired   = "cart id is required"
	ErrMsgLinesRequired    = "at least one line is required"
	ErrMsgLineIDsRequired  = "at least one line id is required"
	ErrMsgNoCartReturned   = "no cart returned"
	ErrMsgNoDataReturned   = "no data returned from Storefront API"
	ErrMsgRateLimited      = "Storefront API rate limit exceeded"
	ErrMsgInvalidStoreConf = "invalid store configuration"
)

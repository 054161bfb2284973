package shopify

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// GraphQLError is one entry of a GraphQL errors array.
type GraphQLError struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// CartUserError is a business rule failure reported in a mutation payload.
type CartUserError struct {
	Code    string   `json:"code,omitempty"`
	Field   []string `json:"field,omitempty"`
	Message string   `json:"message"`
}

// NetworkError means the request never produced an HTTP response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("storefront network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// APIError is a non-2xx response or a GraphQL errors array. StatusCode is
// zero when the transport succeeded but GraphQL reported errors.
type APIError struct {
	StatusCode int
	Message    string
	Errors     []GraphQLError
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		msgs := make([]string, len(e.Errors))
		for i, g := range e.Errors {
			msgs[i] = g.Message
		}
		return fmt.Sprintf("storefront GraphQL errors: %s", strings.Join(msgs, "; "))
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("storefront API error: %d %s", e.StatusCode, e.Message)
	}
	return "storefront API error: " + e.Message
}

// RateLimitError is a 429. RetryAfter is zero when the server sent none.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s (retry after %s)", ErrMsgRateLimited, e.RetryAfter)
	}
	return ErrMsgRateLimited
}

// UserError carries cart userErrors. They arrive with HTTP 200 and are never
// retried.
type UserError struct {
	Operation string
	Errors    []CartUserError
}

func (e *UserError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, u := range e.Errors {
		msgs[i] = u.Message
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, strings.Join(msgs, "; "))
}

// IsRetryable reports whether err may succeed on a later attempt: network
// errors, rate limits and 5xx responses.
func IsRetryable(err error) bool {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return true
	}
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	return false
}

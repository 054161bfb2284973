package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/osse101/FrameCraft_Go/internal/logger"
	"github.com/osse101/FrameCraft_Go/internal/metrics"
)

// RetryConfig controls backoff for retryable failures.
type RetryConfig struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// DefaultRetryConfig returns three retries starting at one second, doubling,
// capped at ten seconds.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:   DefaultMaxRetries,
		InitialDelay: DefaultInitialDelay,
		MaxDelay:     DefaultMaxDelay,
		Multiplier:   DefaultMultiplier,
	}
}

// Delay returns the wait before retry number attempt (0-based).
func (r RetryConfig) Delay(attempt int) time.Duration {
	d := float64(r.InitialDelay) * math.Pow(r.Multiplier, float64(attempt))
	if d > float64(r.MaxDelay) {
		return r.MaxDelay
	}
	return time.Duration(d)
}

// Option configures a Client.
type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithRetryConfig(r RetryConfig) Option {
	return func(c *Client) { c.retry = r }
}

// WithDeadline bounds a whole call, retries and waits included.
func WithDeadline(d time.Duration) Option {
	return func(c *Client) { c.deadline = d }
}

// Client talks GraphQL to one store's Storefront API.
type Client struct {
	store    StoreConfig
	endpoint string
	http     *http.Client
	retry    RetryConfig
	deadline time.Duration
}

func NewClient(store StoreConfig, opts ...Option) *Client {
	c := &Client{
		store:    store,
		endpoint: store.GraphQLEndpoint(),
		http:     &http.Client{},
		retry:    DefaultRetryConfig(),
		deadline: DefaultDeadline,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) StoreID() string  { return c.store.StoreID }
func (c *Client) Endpoint() string { return c.endpoint }

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors"`
}

// Do runs one GraphQL operation and decodes its data into out. Retryable
// failures are retried with backoff until the retry budget or the deadline
// runs out.
func (c *Client) Do(ctx context.Context, op, query string, vars map[string]any, out any) error {
	if c.deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.deadline)
		defer cancel()
	}
	log := logger.FromContext(ctx).With("store_id", c.store.StoreID, "operation", op)

	body, err := json.Marshal(graphQLRequest{Query: query, Variables: vars})
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", op, err)
	}

	start := time.Now()
	var lastErr error
	for attempt := 0; attempt <= c.retry.MaxRetries; attempt++ {
		lastErr = c.send(ctx, body, out)
		if lastErr == nil || !IsRetryable(lastErr) || attempt == c.retry.MaxRetries {
			break
		}

		delay := c.retry.Delay(attempt)
		var rl *RateLimitError
		if errors.As(lastErr, &rl) && rl.RetryAfter > 0 {
			delay = rl.RetryAfter
		}
		log.Info(LogMsgRetrying, "attempt", attempt+1, "delay", delay, "error", lastErr)
		metrics.StorefrontRetries.WithLabelValues(op).Inc()

		if err := sleep(ctx, delay); err != nil {
			lastErr = fmt.Errorf("%w (last error: %v)", err, lastErr)
			break
		}
	}

	metrics.StorefrontDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if lastErr != nil {
		metrics.StorefrontRequests.WithLabelValues(op, metrics.ResultFailure).Inc()
		log.Warn(LogMsgRequestFailed, "error", lastErr, "duration", time.Since(start))
		return lastErr
	}
	metrics.StorefrontRequests.WithLabelValues(op, metrics.ResultSuccess).Inc()
	if c.store.EnableLogging {
		log.Info(LogMsgRequestSucceeded, "duration", time.Since(start))
	}
	return nil
}

func (c *Client) send(ctx context.Context, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(AccessTokenHeader, c.store.AccessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &RateLimitError{RetryAfter: retryAfter(resp.Header.Get("Retry-After"))}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	var gql graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&gql); err != nil {
		return &NetworkError{Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if len(gql.Errors) > 0 {
		return &APIError{Errors: gql.Errors}
	}
	if len(gql.Data) == 0 || string(gql.Data) == "null" {
		return &APIError{Message: ErrMsgNoDataReturned}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(gql.Data, out); err != nil {
		return &APIError{Message: fmt.Sprintf("failed to decode data: %v", err)}
	}
	return nil
}

// retryAfter parses a Retry-After header given in seconds.
func retryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

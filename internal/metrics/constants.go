package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Pricing metric names
const (
	MetricNameQuotesCalculated = "framecraft_quotes_calculated_total"
	MetricNameQuotesEstimated  = "framecraft_quotes_estimated_total"
	MetricNameQuoteTotal       = "framecraft_quote_total_dollars"
)

// Cart metric names
const (
	MetricNameCartMutations    = "framecraft_cart_mutations_total"
	MetricNameCartSyncs        = "framecraft_cart_syncs_total"
	MetricNameCartSyncDuration = "framecraft_cart_sync_duration_seconds"
	MetricNameCartStaleResults = "framecraft_cart_stale_sync_results_total"
)

// Storefront client and mat catalog metric names
const (
	MetricNameStorefrontRequests = "framecraft_storefront_requests_total"
	MetricNameStorefrontDuration = "framecraft_storefront_request_duration_seconds"
	MetricNameStorefrontRetries  = "framecraft_storefront_retries_total"
	MetricNameMatCacheLookups    = "framecraft_mat_cache_lookups_total"
)

// Security metric names
const (
	MetricNameSecurityEvents = "framecraft_security_events_total"
)

// Event stream metric names
const (
	MetricNameStreamClients       = "framecraft_stream_clients"
	MetricNameStreamEventsDropped = "framecraft_stream_events_dropped_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextQuotesCalculated   = "Total number of price quotes calculated"
	HelpTextQuotesEstimated    = "Total number of specialty quotes that fell back to an estimate"
	HelpTextQuoteTotal         = "Distribution of quoted totals in dollars"
	HelpTextCartMutations      = "Total number of local cart mutations"
	HelpTextCartSyncs          = "Total number of cart reconciliation passes"
	HelpTextCartSyncDuration   = "Cart reconciliation latency in seconds"
	HelpTextCartStaleResults   = "Sync results discarded because the item changed meanwhile"
	HelpTextStorefrontRequests = "Total number of Storefront API requests"
	HelpTextStorefrontDuration = "Storefront API request latency in seconds"
	HelpTextStorefrontRetries  = "Storefront API attempts retried after a retryable failure"
	HelpTextMatCacheLookups    = "Mat catalog cache lookups"
	HelpTextSecurityEvents     = "Rejected requests by reason"

	HelpTextStreamClients       = "Connected event stream clients"
	HelpTextStreamEventsDropped = "Stream events dropped before reaching a client"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelKind      = "kind"
	LabelOperation = "operation"
	LabelResult    = "result"
	LabelReason    = "reason"
)

// Label values
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultHit     = "hit"
	ResultMiss    = "miss"

	SecurityKindAuthFailed  = "auth_failed"
	SecurityKindRateLimited = "rate_limited"

	DropReasonHubFull    = "hub_full"
	DropReasonClientSlow = "client_slow"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// QuoteTotalBuckets spans small single frames to large multi-opening pieces.
var QuoteTotalBuckets = []float64{25, 50, 100, 150, 250, 400, 600, 1000, 2000}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadUnexpected = "Event payload has unexpected shape"
	LogMsgMetricsRecorded        = "Metrics recorded for event"
)

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Pricing Metrics
var (
	QuotesCalculated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameQuotesCalculated,
			Help: HelpTextQuotesCalculated,
		},
		[]string{LabelKind},
	)

	QuotesEstimated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameQuotesEstimated,
			Help: HelpTextQuotesEstimated,
		},
		[]string{LabelKind},
	)

	QuoteTotal = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameQuoteTotal,
			Help:    HelpTextQuoteTotal,
			Buckets: QuoteTotalBuckets,
		},
		[]string{LabelKind},
	)
)

// Cart Metrics
var (
	CartMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCartMutations,
			Help: HelpTextCartMutations,
		},
		[]string{LabelOperation},
	)

	CartSyncs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCartSyncs,
			Help: HelpTextCartSyncs,
		},
		[]string{LabelResult},
	)

	CartSyncDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameCartSyncDuration,
			Help:    HelpTextCartSyncDuration,
			Buckets: HTTPLatencyBuckets,
		},
	)

	CartStaleResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCartStaleResults,
			Help: HelpTextCartStaleResults,
		},
		[]string{LabelOperation},
	)
)

// Storefront and catalog Metrics
var (
	StorefrontRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStorefrontRequests,
			Help: HelpTextStorefrontRequests,
		},
		[]string{LabelOperation, LabelResult},
	)

	StorefrontDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameStorefrontDuration,
			Help:    HelpTextStorefrontDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelOperation},
	)

	StorefrontRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStorefrontRetries,
			Help: HelpTextStorefrontRetries,
		},
		[]string{LabelOperation},
	)

	MatCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMatCacheLookups,
			Help: HelpTextMatCacheLookups,
		},
		[]string{LabelResult},
	)
)

// Security Metrics
var (
	SecurityEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSecurityEvents,
			Help: HelpTextSecurityEvents,
		},
		[]string{LabelKind},
	)
)

// Event stream metrics
var (
	StreamClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameStreamClients,
			Help: HelpTextStreamClients,
		},
	)

	StreamEventsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStreamEventsDropped,
			Help: HelpTextStreamEventsDropped,
		},
		[]string{LabelReason},
	)
)

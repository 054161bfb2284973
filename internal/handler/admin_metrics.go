package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/osse101/FrameCraft_Go/internal/metrics"
	"github.com/osse101/FrameCraft_Go/internal/sse"
)

// AdminMetricsResponse contains JSON-formatted metrics for the admin dashboard
type AdminMetricsResponse struct {
	HTTP       HTTPMetrics       `json:"http"`
	Events     EventMetrics      `json:"events"`
	Business   BusinessMetrics   `json:"business"`
	Storefront StorefrontMetrics `json:"storefront"`
	SSE        SSEMetrics        `json:"sse"`
	Security   SecurityMetrics   `json:"security"`
}

type HTTPMetrics struct {
	RequestsTotalByStatus map[string]float64 `json:"requests_total_by_status"`
	AvgLatencyMs          float64            `json:"avg_latency_ms"`
	P95LatencyMs          float64            `json:"p95_latency_ms"`
	InFlight              float64            `json:"in_flight"`
}

type EventMetrics struct {
	PublishedTotalByType map[string]float64 `json:"published_total_by_type"`
	HandlerErrorsByType  map[string]float64 `json:"handler_errors_by_type"`
}

type BusinessMetrics struct {
	QuotesByKind      map[string]float64 `json:"quotes_by_kind"`
	EstimatedByKind   map[string]float64 `json:"estimated_quotes_by_kind"`
	CartMutationsByOp map[string]float64 `json:"cart_mutations_by_operation"`
	CartSyncsByResult map[string]float64 `json:"cart_syncs_by_result"`
	StaleSyncResults  float64            `json:"stale_sync_results"`
}

type StorefrontMetrics struct {
	RequestsByResult map[string]float64 `json:"requests_by_result"`
	Retries          float64            `json:"retries"`
	MatCacheByResult map[string]float64 `json:"mat_cache_by_result"`
}

type SSEMetrics struct {
	ClientCount     int                `json:"client_count"`
	DroppedByReason map[string]float64 `json:"dropped_by_reason"`
}

type SecurityMetrics struct {
	RejectedByKind map[string]float64 `json:"rejected_by_kind"`
}

// AdminMetricsHandler serves a JSON digest of the Prometheus registry.
type AdminMetricsHandler struct {
	hub      *sse.Hub
	gatherer prometheus.Gatherer
}

// NewAdminMetricsHandler reads the default registry. hub may be nil when the
// event stream is disabled.
func NewAdminMetricsHandler(hub *sse.Hub) *AdminMetricsHandler {
	return &AdminMetricsHandler{hub: hub, gatherer: prometheus.DefaultGatherer}
}

// HandleGetMetrics returns the metrics digest
// @Summary Admin metrics summary
// @Description Aggregates the Prometheus registry into a dashboard-friendly shape (admin only)
// @Tags admin
// @Produce json
// @Success 200 {object} AdminMetricsResponse
// @Router /api/v1/admin/metrics [get]
func (h *AdminMetricsHandler) HandleGetMetrics(w http.ResponseWriter, r *http.Request) {
	resp, err := gatherMetrics(h.gatherer)
	if err != nil {
		respondServiceError(w, r, ErrMsgGatherMetricsFailed, err)
		return
	}
	if h.hub != nil {
		resp.SSE.ClientCount = h.hub.ClientCount()
	}
	respondJSON(w, http.StatusOK, resp)
}

func newAdminMetricsResponse() *AdminMetricsResponse {
	return &AdminMetricsResponse{
		HTTP:   HTTPMetrics{RequestsTotalByStatus: map[string]float64{}},
		Events: EventMetrics{PublishedTotalByType: map[string]float64{}, HandlerErrorsByType: map[string]float64{}},
		Business: BusinessMetrics{
			QuotesByKind:      map[string]float64{},
			EstimatedByKind:   map[string]float64{},
			CartMutationsByOp: map[string]float64{},
			CartSyncsByResult: map[string]float64{},
		},
		Storefront: StorefrontMetrics{RequestsByResult: map[string]float64{}, MatCacheByResult: map[string]float64{}},
		SSE:        SSEMetrics{DroppedByReason: map[string]float64{}},
		Security:   SecurityMetrics{RejectedByKind: map[string]float64{}},
	}
}

// gatherMetrics folds each known family into the response. Unknown families
// are ignored.
func gatherMetrics(g prometheus.Gatherer) (*AdminMetricsResponse, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, err
	}

	resp := newAdminMetricsResponse()
	byLabel := map[string]struct {
		label string
		into  map[string]float64
	}{
		metrics.MetricNameHTTPRequestsTotal:   {metrics.LabelStatus, resp.HTTP.RequestsTotalByStatus},
		metrics.MetricNameEventsPublished:     {metrics.LabelType, resp.Events.PublishedTotalByType},
		metrics.MetricNameEventHandlerErrors:  {metrics.LabelType, resp.Events.HandlerErrorsByType},
		metrics.MetricNameQuotesCalculated:    {metrics.LabelKind, resp.Business.QuotesByKind},
		metrics.MetricNameQuotesEstimated:     {metrics.LabelKind, resp.Business.EstimatedByKind},
		metrics.MetricNameCartMutations:       {metrics.LabelOperation, resp.Business.CartMutationsByOp},
		metrics.MetricNameCartSyncs:           {metrics.LabelResult, resp.Business.CartSyncsByResult},
		metrics.MetricNameStorefrontRequests:  {metrics.LabelResult, resp.Storefront.RequestsByResult},
		metrics.MetricNameMatCacheLookups:     {metrics.LabelResult, resp.Storefront.MatCacheByResult},
		metrics.MetricNameStreamEventsDropped: {metrics.LabelReason, resp.SSE.DroppedByReason},
		metrics.MetricNameSecurityEvents:      {metrics.LabelKind, resp.Security.RejectedByKind},
	}

	for _, mf := range families {
		name := mf.GetName()
		if t, ok := byLabel[name]; ok {
			sumCounterBy(mf, t.label, t.into)
			continue
		}
		switch name {
		case metrics.MetricNameHTTPRequestDuration:
			resp.HTTP.AvgLatencyMs, resp.HTTP.P95LatencyMs = latencySummary(mf)
		case metrics.MetricNameHTTPRequestsInFlight:
			for _, m := range mf.GetMetric() {
				resp.HTTP.InFlight += m.GetGauge().GetValue()
			}
		case metrics.MetricNameCartStaleResults:
			resp.Business.StaleSyncResults = sumCounter(mf)
		case metrics.MetricNameStorefrontRetries:
			resp.Storefront.Retries = sumCounter(mf)
		}
	}
	return resp, nil
}

func sumCounterBy(mf *dto.MetricFamily, label string, into map[string]float64) {
	for _, m := range mf.GetMetric() {
		for _, lp := range m.GetLabel() {
			if lp.GetName() == label && lp.GetValue() != "" {
				into[lp.GetValue()] += m.GetCounter().GetValue()
			}
		}
	}
}

func sumCounter(mf *dto.MetricFamily) float64 {
	var total float64
	for _, m := range mf.GetMetric() {
		total += m.GetCounter().GetValue()
	}
	return total
}

// latencySummary merges every route's histogram and returns the mean and
// the 95th percentile bucket bound, both in milliseconds. Routes share one
// bucket layout.
func latencySummary(mf *dto.MetricFamily) (avgMs, p95Ms float64) {
	var (
		count  uint64
		sum    float64
		bounds []float64
		cum    []uint64
	)
	for _, m := range mf.GetMetric() {
		h := m.GetHistogram()
		count += h.GetSampleCount()
		sum += h.GetSampleSum()
		for i, b := range h.GetBucket() {
			if i == len(bounds) {
				bounds = append(bounds, b.GetUpperBound())
				cum = append(cum, 0)
			}
			cum[i] += b.GetCumulativeCount()
		}
	}
	if count == 0 || len(bounds) == 0 {
		return 0, 0
	}

	target := float64(count) * 0.95
	p95 := bounds[len(bounds)-1]
	for i, c := range cum {
		if float64(c) >= target {
			p95 = bounds[i]
			break
		}
	}
	return sum / float64(count) * 1000, p95 * 1000
}

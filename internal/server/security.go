package server

import (
	"crypto/subtle"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/FrameCraft_Go/internal/logger"
	"github.com/osse101/FrameCraft_Go/internal/metrics"
)

// isPublicPath reports whether path skips the API key check. Entries ending
// in "/" match as prefixes, the rest only match exactly.
func isPublicPath(path string) bool {
	for _, p := range PublicPaths {
		if strings.HasSuffix(p, "/") {
			if strings.HasPrefix(path, p) {
				return true
			}
			continue
		}
		if path == p {
			return true
		}
	}
	return false
}

// AuthMiddleware rejects requests to non-public paths that do not carry the
// configured key in X-API-Key.
func AuthMiddleware(apiKey string, proxies ProxyTrust, detector *AbuseDetector) func(http.Handler) http.Handler {
	want := []byte(apiKey)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			got := r.Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(got), want) == 1 {
				next.ServeHTTP(w, r)
				return
			}

			ip := proxies.ClientIP(r)
			detector.RecordFailedAuth(r, ip)
			logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
				"ip", ip,
				"path", r.URL.Path,
				"has_key", got != "")
			http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
		})
	}
}

// RequestSizeLimitMiddleware caps request bodies at maxBytes.
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitMiddleware answers 429 once a client exceeds its request budget
// for the current window.
func RateLimitMiddleware(proxies ProxyTrust, detector *AbuseDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !detector.Allow(r, proxies.ClientIP(r)) {
				w.Header().Set(HeaderRetryAfter, detector.retryAfter())
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeadersMiddleware sets the response headers every route shares.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for name, value := range securityHeaders {
				h.Set(name, value)
			}
			next.ServeHTTP(w, r)
		})
	}
}

var securityHeaders = map[string]string{
	HeaderContentType:    HeaderValueNoSniff,
	HeaderFrameOptions:   HeaderValueDeny,
	HeaderReferrerPolicy: HeaderValueReferrerStrictOrigin,
	HeaderCacheControl:   HeaderValueNoStore,
}

// clientWindow holds one client's counters for a fixed window.
type clientWindow struct {
	started    time.Time
	requests   int
	failedAuth int
}

// AbuseDetector counts requests and failed logins per client IP in fixed
// windows. Clients are tracked in a bounded LRU so a flood of distinct
// addresses cannot grow memory without limit.
type AbuseDetector struct {
	mu          sync.Mutex
	clients     *expirable.LRU[string, *clientWindow]
	window      time.Duration
	maxRequests int
	alertAfter  int
	now         func() time.Time
}

// DetectorConfig tunes an AbuseDetector. Zero fields take the package
// defaults.
type DetectorConfig struct {
	Window      time.Duration
	MaxRequests int
	AlertAfter  int
	MaxClients  int
}

// NewAbuseDetector creates a detector.
func NewAbuseDetector(cfg DetectorConfig) *AbuseDetector {
	if cfg.Window <= 0 {
		cfg.Window = DetectionWindow
	}
	if cfg.MaxRequests <= 0 {
		cfg.MaxRequests = MaxRequestsPerWindow
	}
	if cfg.AlertAfter <= 0 {
		cfg.AlertAfter = FailedAuthAlertCount
	}
	if cfg.MaxClients <= 0 {
		cfg.MaxClients = MaxTrackedClients
	}
	return &AbuseDetector{
		clients:     expirable.NewLRU[string, *clientWindow](cfg.MaxClients, nil, cfg.Window),
		window:      cfg.Window,
		maxRequests: cfg.MaxRequests,
		alertAfter:  cfg.AlertAfter,
		now:         time.Now,
	}
}

// windowFor returns ip's current window, opening a fresh one when the old
// one has run out. Caller holds mu.
func (d *AbuseDetector) windowFor(ip string) *clientWindow {
	now := d.now()
	cw, ok := d.clients.Get(ip)
	if !ok || now.Sub(cw.started) >= d.window {
		cw = &clientWindow{started: now}
		d.clients.Add(ip, cw)
	}
	return cw
}

// RecordFailedAuth counts a rejected key and logs an alert each time the
// client reaches another multiple of the alert threshold.
func (d *AbuseDetector) RecordFailedAuth(r *http.Request, ip string) {
	d.mu.Lock()
	cw := d.windowFor(ip)
	cw.failedAuth++
	count := cw.failedAuth
	d.mu.Unlock()

	metrics.SecurityEvents.WithLabelValues(metrics.SecurityKindAuthFailed).Inc()
	if count%d.alertAfter == 0 {
		logger.FromContext(r.Context()).Warn(SecurityAlertFailedAuth, "ip", ip, "count", count)
	}
}

// Allow counts a request and reports whether ip is still within budget.
func (d *AbuseDetector) Allow(r *http.Request, ip string) bool {
	d.mu.Lock()
	cw := d.windowFor(ip)
	cw.requests++
	count := cw.requests
	d.mu.Unlock()

	if count <= d.maxRequests {
		return true
	}
	metrics.SecurityEvents.WithLabelValues(metrics.SecurityKindRateLimited).Inc()
	if (count-d.maxRequests)%HighRateLogEveryNth == 1 {
		logger.FromContext(r.Context()).Warn(SecurityAlertHighRate, "ip", ip, "count", count, "window", d.window)
	}
	return false
}

func (d *AbuseDetector) retryAfter() string {
	secs := int(d.window / time.Second)
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

// ProxyTrust decides which peers may report the client address through
// X-Forwarded-For.
type ProxyTrust struct {
	prefixes []netip.Prefix
}

// ParseTrustedProxies accepts bare addresses and CIDR ranges. Entries that
// parse as neither are returned in invalid.
func ParseTrustedProxies(entries []string) (trust ProxyTrust, invalid []string) {
	for _, raw := range entries {
		entry := strings.TrimSpace(raw)
		if entry == "" {
			continue
		}
		if p, err := netip.ParsePrefix(entry); err == nil {
			trust.prefixes = append(trust.prefixes, p.Masked())
			continue
		}
		if a, err := netip.ParseAddr(entry); err == nil {
			a = a.Unmap()
			trust.prefixes = append(trust.prefixes, netip.PrefixFrom(a, a.BitLen()))
			continue
		}
		invalid = append(invalid, entry)
	}
	return trust, invalid
}

func (t ProxyTrust) trusts(addr string) bool {
	a, err := netip.ParseAddr(addr)
	if err != nil {
		return false
	}
	a = a.Unmap()
	for _, p := range t.prefixes {
		if p.Contains(a) {
			return true
		}
	}
	return false
}

// ClientIP returns the address the request came from. When the direct peer
// is a trusted proxy, the last X-Forwarded-For hop is used instead, since
// that is the address the proxy itself saw.
func (t ProxyTrust) ClientIP(r *http.Request) string {
	peer, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		peer = r.RemoteAddr
	}
	if !t.trusts(peer) {
		return peer
	}
	fwd := r.Header.Get(HeaderForwardedFor)
	if fwd == "" {
		return peer
	}
	hops := strings.Split(fwd, ",")
	if last := strings.TrimSpace(hops[len(hops)-1]); last != "" {
		return last
	}
	return peer
}

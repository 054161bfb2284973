package server

import "time"

// Server limits
const (
	DefaultMaxBodyBytes = 1 << 20
	ReadHeaderTimeout   = 5 * time.Second
)

// Abuse detection thresholds, counted per client IP within one window
const (
	DetectionWindow      = 5 * time.Minute
	FailedAuthAlertCount = 5
	MaxRequestsPerWindow = 1000
	HighRateLogEveryNth  = 100
	MaxTrackedClients    = 10000
)

// HTTP error messages for middleware responses
const (
	ErrMsgUnauthorized    = "Unauthorized"
	ErrMsgTooManyRequests = "Too Many Requests"
)

// Abuse alerts
const (
	SecurityAlertFailedAuth = "Repeated API key failures from client"
	SecurityAlertHighRate   = "Client over request budget, rejecting"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgAuthFailed       = "Authentication failed"
	LogMsgInvalidProxy     = "Ignoring invalid trusted proxy entry"
)

// HTTP header names
const (
	HeaderAPIKey         = "X-API-Key"
	HeaderRequestID      = "X-Request-ID"
	HeaderAuthorization  = "Authorization"
	HeaderForwardedFor   = "X-Forwarded-For"
	HeaderContentType    = "X-Content-Type-Options"
	HeaderFrameOptions   = "X-Frame-Options"
	HeaderReferrerPolicy = "Referrer-Policy"
	HeaderCacheControl   = "Cache-Control"
	HeaderRetryAfter     = "Retry-After"
)

// Security header values
const (
	HeaderValueNoSniff              = "nosniff"
	HeaderValueDeny                 = "DENY"
	HeaderValueNoStore              = "no-store"
	HeaderValueReferrerStrictOrigin = "strict-origin-when-cross-origin"
)

// PublicPaths skip the API key check. A trailing slash marks a prefix.
var PublicPaths = []string{
	"/swagger/",
	"/healthz",
	"/readyz",
	"/version",
	"/metrics",
}

// Header redaction marker
const (
	RedactedValue = "[REDACTED]"
)

package logger

// Accepted LOG_LEVEL values. "warning" is an alias for "warn".
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

// Accepted LOG_FORMAT values
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

const (
	DefaultServiceName = "framecraft"
	DefaultVersion     = "dev"
	DefaultEnvironment = "dev"
)

// Attribute keys attached to records
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
	AttrKeyStoreID     = "store_id"
	AttrKeySessionID   = "session_id"
)

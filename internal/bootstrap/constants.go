package bootstrap

// Permissions for directories and session log files created at startup.
const (
	DirPermission     = 0755
	LogFilePermission = 0644
)

// Session log files are named session_<timestamp>.log so that lexical order
// is age order. LogFileRetentionCount includes the file being opened.
const (
	LogFileTimestampFormat = "2006-01-02_15-04-05"
	LogFileNamePattern     = "session_%s.log"
	LogFileExtension       = ".log"
	LogFileRetentionCount  = 10
)

const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingService     = "Starting FrameCraft"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
	LogMsgEventSystemReady    = "Event system ready"
	LogMsgCartStorageSelected = "Cart storage selected"
	LogMsgCartStorageDegraded = "Cart storage unreachable at startup, carts stay memory-only until it recovers"
	LogMsgCatalogLoaded       = "Pricing catalog loaded"
	LogMsgStoresRegistered    = "Shopify stores registered"

	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgEventLoggerInitialized     = "Event logger initialized"
	LogMsgAlertNotifierInitialized   = "Sync failure alerts enabled"
	LogMsgSSESubscriberInitialized   = "Cart event stream enabled"
)

// Wrapped into returned errors.
const (
	ErrMsgCreateLogsDir              = "create log directory"
	ErrMsgOpenLogFile                = "open log file"
	ErrMsgCreateDeadLetterDir        = "create dead-letter directory"
	ErrMsgCreatePublisher            = "create event publisher"
	ErrMsgFailedOpenDatabase         = "failed to open database"
	ErrMsgFailedOpenRedis            = "failed to open redis"
	ErrMsgUnknownStorage             = "unknown cart storage %q"
	ErrMsgFailedLoadCatalog          = "failed to load pricing catalog"
	ErrMsgFailedRegisterShop         = "failed to register shopify store"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
	ErrMsgFailedSubscribeEventLogger = "failed to subscribe event logger"
)

// Shutdown runs in a fixed order; each step logs its own failure.
const (
	LogMsgShutdownBegin        = "Shutting down"
	LogMsgShutdownDone         = "Shutdown complete"
	LogMsgServerStopFailed     = "HTTP server did not stop cleanly"
	LogMsgReconcileStopFailed  = "Reconcile worker did not stop cleanly"
	LogMsgCartsFlushed         = "Carts flushed to storage"
	LogMsgWorkerPoolStopFailed = "Worker pool did not drain"
	LogMsgPublisherDraining    = "Draining event publisher"
	LogMsgPublisherStopFailed  = "Event publisher did not drain"
	LogMsgStorageCloseFailed   = "Cart storage close failed"
)

package config

import "time"

const (
	// ConfigPathPricingCatalog holds frames.json, mats.json, glass.json and pricing.json.
	ConfigPathPricingCatalog = "configs/pricing"
)

// Cart storage backends
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

// Defaults
const (
	DefaultDBMaxConns         = 10
	DefaultDBMaxIdle          = 5 * time.Minute
	DefaultDBMaxLifetime      = time.Hour
	DefaultCartTTL            = 30 * 24 * time.Hour
	DefaultMaxCarts           = 1024
	DefaultMatCacheTTL        = 10 * time.Minute
	DefaultShopifyDeadline    = 30 * time.Second
	DefaultReconcileInterval  = 5 * time.Minute
	DefaultWorkerCount        = 4
	DefaultWorkerQueueSize    = 256
	DefaultEventRetentionDays = 30
	DefaultEventLogCapacity   = 5000
	DefaultEventMaxRetries    = 5
	DefaultEventRetryDelay    = 2 * time.Second
	DefaultDeadLetterPath     = "logs/event_deadletter.jsonl"
	DefaultRateLimitRequests  = 1000
	DefaultRateLimitWindow    = 5 * time.Minute
)

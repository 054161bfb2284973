package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/osse101/FrameCraft_Go/internal/shopify"
)

// Config holds the application configuration
type Config struct {
	Port        int    `validate:"min=0,max=65535"`
	APIKey      string `validate:"required"` // API key for authentication
	LogLevel    string `validate:"oneof=debug info warn error"`
	LogFormat   string `validate:"oneof=json text"`
	LogDir      string
	ServiceName string
	Version     string
	Environment string
	// TrustedProxies lists proxy IPs whose X-Forwarded-For is honoured.
	TrustedProxies []string

	DBUser        string
	DBPassword    string
	DBHost        string
	DBPort        string
	DBName        string
	DBMaxConns    int `validate:"min=1"`
	DBMaxIdle     time.Duration
	DBMaxLifetime time.Duration

	// CartStorage selects the snapshot backend.
	CartStorage    string        `validate:"oneof=memory file redis postgres"`
	CartStorageDir string        `validate:"required_if=CartStorage file"`
	RedisURL       string        `validate:"required_if=CartStorage redis"`
	CartTTL        time.Duration `validate:"gt=0"`
	MaxCarts       int           `validate:"min=1"`

	CatalogDir        string `validate:"required"`
	MatCatalogURL     string `validate:"omitempty,url"`
	MatCacheTTL       time.Duration
	ShopifyDeadline   time.Duration `validate:"gt=0"`
	ReconcileInterval time.Duration `validate:"gt=0"`
	WorkerCount       int           `validate:"min=1"`
	WorkerQueueSize   int           `validate:"min=1"`

	EventRetentionDays int `validate:"min=1"`
	EventLogCapacity   int `validate:"min=1"`
	DeadLetterPath     string
	// EventMaxRetries and EventRetryDelay drive the publisher's backoff.
	EventMaxRetries int           `validate:"min=0"`
	EventRetryDelay time.Duration `validate:"gt=0"`

	// RateLimitRequests caps requests per client IP within RateLimitWindow.
	RateLimitRequests int           `validate:"min=1"`
	RateLimitWindow   time.Duration `validate:"gt=0"`

	// DiscordWebhookURL receives cart sync failure alerts when set.
	DiscordWebhookURL string `validate:"omitempty,url"`

	DefaultStoreID string
	Stores         []shopify.StoreConfig `validate:"dive"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:      getEnv("API_KEY", ""),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", "text")),
		LogDir:      getEnv("LOG_DIR", "logs"),
		ServiceName: getEnv("SERVICE_NAME", "framecraft"),
		Version:     getEnv("VERSION", "dev"),
		Environment: getEnv("ENVIRONMENT", "dev"),

		CartStorage:    strings.ToLower(getEnv("CART_STORAGE", StorageMemory)),
		CartStorageDir: getEnv("CART_STORAGE_DIR", "data/carts"),
		RedisURL:       getEnv("REDIS_URL", ""),
		CartTTL:        getEnvAsDuration("CART_TTL", DefaultCartTTL),
		MaxCarts:       getEnvAsInt("CART_MAX_IN_MEMORY", DefaultMaxCarts),

		CatalogDir:        getEnv("CATALOG_DIR", ConfigPathPricingCatalog),
		MatCatalogURL:     getEnv("MAT_CATALOG_URL", ""),
		MatCacheTTL:       getEnvAsDuration("MAT_CACHE_TTL", DefaultMatCacheTTL),
		ShopifyDeadline:   getEnvAsDuration("SHOPIFY_DEADLINE", DefaultShopifyDeadline),
		ReconcileInterval: getEnvAsDuration("RECONCILE_INTERVAL", DefaultReconcileInterval),
		WorkerCount:       getEnvAsInt("WORKER_COUNT", DefaultWorkerCount),
		WorkerQueueSize:   getEnvAsInt("WORKER_QUEUE_SIZE", DefaultWorkerQueueSize),

		EventRetentionDays: getEnvAsInt("EVENT_RETENTION_DAYS", DefaultEventRetentionDays),
		EventLogCapacity:   getEnvAsInt("EVENT_LOG_MEMORY_CAPACITY", DefaultEventLogCapacity),
		DeadLetterPath:     getEnv("EVENT_DEAD_LETTER_PATH", DefaultDeadLetterPath),
		EventMaxRetries:    getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries),
		EventRetryDelay:    getEnvAsDuration("EVENT_RETRY_DELAY", DefaultEventRetryDelay),
		RateLimitRequests:  getEnvAsInt("RATE_LIMIT_REQUESTS", DefaultRateLimitRequests),
		RateLimitWindow:    getEnvAsDuration("RATE_LIMIT_WINDOW", DefaultRateLimitWindow),
		DiscordWebhookURL:  getEnv("DISCORD_WEBHOOK_URL", ""),
		DefaultStoreID:     getEnv("SHOPIFY_DEFAULT_STORE", ""),
	}

	cfg.loadDatabase()

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	cfg.Stores = loadStores(getEnv("SHOPIFY_STORES", ""))
	cfg.TrustedProxies = splitList(getEnv("TRUSTED_PROXIES", ""))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DatabaseFromEnv reads only the DB_* settings, for tools that reach the
// database without running the service.
func DatabaseFromEnv() *Config {
	_ = godotenv.Load()
	cfg := &Config{}
	cfg.loadDatabase()
	return cfg
}

func (c *Config) loadDatabase() {
	c.DBUser = getEnv("DB_USER", "postgres")
	c.DBPassword = getEnv("DB_PASSWORD", "postgres")
	c.DBHost = getEnv("DB_HOST", "localhost")
	c.DBPort = getEnv("DB_PORT", "5432")
	c.DBName = getEnv("DB_NAME", "framecraft")
	c.DBMaxConns = getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns)
	c.DBMaxIdle = getEnvAsDuration("DB_MAX_IDLE", DefaultDBMaxIdle)
	c.DBMaxLifetime = getEnvAsDuration("DB_MAX_LIFETIME", DefaultDBMaxLifetime)
}

var validate = validator.New()

// Validate checks field constraints and cross-field rules.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.DefaultStoreID != "" && !c.hasStore(c.DefaultStoreID) {
		return fmt.Errorf("SHOPIFY_DEFAULT_STORE %q is not listed in SHOPIFY_STORES", c.DefaultStoreID)
	}
	return nil
}

func (c *Config) hasStore(id string) bool {
	for _, s := range c.Stores {
		if s.StoreID == id {
			return true
		}
	}
	return false
}

// loadStores reads SHOPIFY_<ID>_DOMAIN, _TOKEN, _API_VERSION and _ENDPOINT
// for every comma separated id in list.
func loadStores(list string) []shopify.StoreConfig {
	var stores []shopify.StoreConfig
	for _, id := range strings.Split(list, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		prefix := "SHOPIFY_" + envKey(id) + "_"
		stores = append(stores, shopify.StoreConfig{
			StoreID:       id,
			Domain:        getEnv(prefix+"DOMAIN", ""),
			AccessToken:   getEnv(prefix+"TOKEN", ""),
			APIVersion:    getEnv(prefix+"API_VERSION", ""),
			Endpoint:      getEnv(prefix+"ENDPOINT", ""),
			EnableLogging: getEnvAsBool(prefix+"LOGGING", false),
		})
	}
	return stores
}

func splitList(list string) []string {
	var out []string
	for _, v := range strings.Split(list, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// envKey upper-cases id and maps anything outside [A-Z0-9] to '_'.
func envKey(id string) string {
	b := []byte(strings.ToUpper(id))
	for i, c := range b {
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			b[i] = '_'
		}
	}
	return string(b)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

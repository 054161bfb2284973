package shopify

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/FrameCraft_Go/internal/domain"
)

// StoreConfig binds a tenant to its Shopify store.
type StoreConfig struct {
	StoreID     string `json:"storeId" validate:"required"`
	Domain      string `json:"domain" validate:"required,contains=."`
	AccessToken string `json:"accessToken" validate:"required"`
	APIVersion  string `json:"apiVersion,omitempty"`
	// Endpoint overrides the GraphQL URL derived from Domain.
	Endpoint      string `json:"endpoint,omitempty" validate:"omitempty,url"`
	EnableLogging bool   `json:"enableLogging,omitempty"`
}

// GraphQLEndpoint returns the URL requests for this store are sent to.
func (c StoreConfig) GraphQLEndpoint() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	version := c.APIVersion
	if version == "" {
		version = DefaultAPIVersion
	}
	return fmt.Sprintf(endpointFormat, c.Domain, version)
}

var storeValidator = validator.New()

// ValidateConfig checks that cfg names a store, a dotted domain and a token.
func ValidateConfig(cfg StoreConfig) error {
	if err := storeValidator.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %s %q: %v", domain.ErrInvalidInput, ErrMsgInvalidStoreConf, cfg.StoreID, err)
	}
	return nil
}

// Registry maps store ids to configurations and lazily built clients. It is
// built once at startup and passed to whatever needs a storefront client.
type Registry struct {
	mu      sync.RWMutex
	configs map[string]StoreConfig
	def     *StoreConfig
	clients map[string]*Client
	opts    []Option
}

// NewRegistry returns an empty registry. opts apply to every client it builds.
func NewRegistry(opts ...Option) *Registry {
	return &Registry{
		configs: make(map[string]StoreConfig),
		clients: make(map[string]*Client),
		opts:    opts,
	}
}

func (r *Registry) Register(cfg StoreConfig) error {
	if err := ValidateConfig(cfg); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configs[cfg.StoreID] = cfg
	delete(r.clients, cfg.StoreID)
	return nil
}

// SetDefault sets the configuration returned for unknown store ids.
func (r *Registry) SetDefault(cfg StoreConfig) error {
	if err := ValidateConfig(cfg); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.def = &cfg
	return nil
}

// Config returns the store's configuration, falling back to the default.
func (r *Registry) Config(storeID string) (StoreConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if cfg, ok := r.configs[storeID]; ok {
		return cfg, nil
	}
	if r.def != nil {
		return *r.def, nil
	}
	return StoreConfig{}, fmt.Errorf("%w: %s", domain.ErrStoreNotFound, storeID)
}

func (r *Registry) Has(storeID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.configs[storeID]
	return ok || (r.def != nil && r.def.StoreID == storeID)
}

// StoreIDs returns the explicitly registered ids, sorted.
func (r *Registry) StoreIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.configs))
	for id := range r.configs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Client returns the storefront client for storeID, building it on first use.
func (r *Registry) Client(storeID string) (*Client, error) {
	r.mu.RLock()
	c, ok := r.clients[storeID]
	r.mu.RUnlock()
	if ok {
		return c, nil
	}

	cfg, err := r.Config(storeID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.clients[storeID]; ok {
		return c, nil
	}
	c = NewClient(cfg, r.opts...)
	r.clients[storeID] = c
	return c, nil
}

// ResolveStoreID extracts the tenant from a host name's first label, as in
// "store-a.example.com". It returns "" for bare hosts and "www".
func ResolveStoreID(host string) string {
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	label, rest, ok := strings.Cut(host, ".")
	if !ok || rest == "" || label == "www" {
		return ""
	}
	return label
}

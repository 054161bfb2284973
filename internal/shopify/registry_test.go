package shopify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FrameCraft_Go/internal/domain"
)

func storeA() StoreConfig {
	return StoreConfig{StoreID: "store-a", Domain: "store-a.myshopify.com", AccessToken: "token-a"}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*StoreConfig)
		wantErr bool
	}{
		{"valid", func(*StoreConfig) {}, false},
		{"missing store id", func(c *StoreConfig) { c.StoreID = "" }, true},
		{"missing domain", func(c *StoreConfig) { c.Domain = "" }, true},
		{"undotted domain", func(c *StoreConfig) { c.Domain = "localhost" }, true},
		{"missing token", func(c *StoreConfig) { c.AccessToken = "" }, true},
		{"bad endpoint", func(c *StoreConfig) { c.Endpoint = "not a url" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := storeA()
			tt.mutate(&cfg)
			err := ValidateConfig(cfg)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRegistry_LookupAndDefault(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(storeA()))

	cfg, err := r.Config("store-a")
	require.NoError(t, err)
	assert.Equal(t, "token-a", cfg.AccessToken)

	_, err = r.Config("store-b")
	assert.ErrorIs(t, err, domain.ErrStoreNotFound)
	assert.False(t, r.Has("store-b"))

	def := StoreConfig{StoreID: "default", Domain: "main.myshopify.com", AccessToken: "d"}
	require.NoError(t, r.SetDefault(def))
	cfg, err = r.Config("store-b")
	require.NoError(t, err)
	assert.Equal(t, "default", cfg.StoreID)
	assert.True(t, r.Has("default"))
	assert.Equal(t, []string{"store-a"}, r.StoreIDs())
}

func TestRegistry_RejectsInvalid(t *testing.T) {
	r := NewRegistry()
	assert.Error(t, r.Register(StoreConfig{StoreID: "x"}))
	assert.Error(t, r.SetDefault(StoreConfig{}))
	assert.Empty(t, r.StoreIDs())
}

func TestRegistry_ClientIsReusedUntilReregistered(t *testing.T) {
	r := NewRegistry(WithRetryConfig(fastRetry()))
	require.NoError(t, r.Register(storeA()))

	c1, err := r.Client("store-a")
	require.NoError(t, err)
	c2, err := r.Client("store-a")
	require.NoError(t, err)
	assert.Same(t, c1, c2)
	assert.Equal(t, "https://store-a.myshopify.com/api/2024-01/graphql.json", c1.Endpoint())

	updated := storeA()
	updated.APIVersion = "2025-01"
	require.NoError(t, r.Register(updated))
	c3, err := r.Client("store-a")
	require.NoError(t, err)
	assert.NotSame(t, c1, c3)

	_, err = r.Client("unknown")
	assert.ErrorIs(t, err, domain.ErrStoreNotFound)
}

func TestResolveStoreID(t *testing.T) {
	assert.Equal(t, "store-a", ResolveStoreID("store-a.example.com"))
	assert.Equal(t, "store-b", ResolveStoreID("store-b.example.com:8443"))
	assert.Empty(t, ResolveStoreID("www.example.com"))
	assert.Empty(t, ResolveStoreID("localhost"))
}

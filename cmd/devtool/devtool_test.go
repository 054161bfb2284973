package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FrameCraft_Go/internal/config"
	"github.com/osse101/FrameCraft_Go/internal/handler"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := out
	out = &buf
	t.Cleanup(func() { out = prev })
	return &buf
}

func TestRegistry(t *testing.T) {
	r := newRegistry()

	names := make([]string, 0)
	for _, cmd := range r.List() {
		names = append(names, cmd.Name())
	}
	assert.Equal(t, []string{"check-env", "health-check", "migrate", "wait-for-db"}, names)

	_, ok := r.Get("deploy")
	assert.False(t, ok)

	var help bytes.Buffer
	r.PrintHelp(&help)
	assert.Contains(t, help.String(), "  health-check  Probe /healthz")
	assert.Contains(t, help.String(), "  migrate       Apply")
}

func TestCheckHealth(t *testing.T) {
	readyz := handler.HandleReadyz(map[string]handler.HealthChecker{
		"storage": handler.HealthCheckFunc(func(context.Context) error { return nil }),
	})
	mux := http.NewServeMux()
	mux.Handle("/healthz", handler.HandleHealthz())
	mux.Handle("/readyz", readyz)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	buf := captureOutput(t)
	require.NoError(t, checkHealth(context.Background(), srv.Client(), srv.URL))
	assert.Contains(t, buf.String(), "storage: ok")
	assert.Contains(t, buf.String(), "Service ready")
}

func TestCheckHealth_NotReady(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/healthz" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"status":"unavailable","checks":{"storage":"unavailable"}}`))
	}))
	defer srv.Close()

	buf := captureOutput(t)
	err := checkHealth(context.Background(), srv.Client(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, buf.String(), "storage: unavailable")
}

func TestCheckHealth_Down(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	captureOutput(t)
	assert.ErrorContains(t, checkHealth(context.Background(), http.DefaultClient, srv.URL), "liveness")
}

func TestReportEnv(t *testing.T) {
	env := map[string]string{
		"ENV_SCHEMA_VERSION":  config.ExpectedEnvSchemaVersion,
		"API_KEY":             "a-long-random-key",
		"CART_STORAGE":        "redis",
		"SHOPIFY_STORES":      "acme",
		"SHOPIFY_ACME_DOMAIN": "acme.myshopify.com",
		"SHOPIFY_ACME_TOKEN":  "storefront-token",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	buf := captureOutput(t)
	err := reportEnv(lookup)
	require.ErrorIs(t, err, config.ErrEnvMissing)
	assert.Contains(t, buf.String(), "missing REDIS_URL")
	assert.NotContains(t, buf.String(), "missing SHOPIFY")

	env["REDIS_URL"] = "redis://localhost:6379/0"
	buf.Reset()
	require.NoError(t, reportEnv(lookup))
	assert.Contains(t, buf.String(), "Environment looks complete")
}

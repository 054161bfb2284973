package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/osse101/FrameCraft_Go/internal/handler"
)

type HealthCheckCommand struct{}

func (c *HealthCheckCommand) Name() string {
	return "health-check"
}

func (c *HealthCheckCommand) Description() string {
	return "Probe /healthz and /readyz of a running service"
}

// slowResponse marks a probe as sluggish.
const slowResponse = time.Second

func (c *HealthCheckCommand) Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	baseURL := fs.String("url", "http://localhost:8080", "service base URL")
	timeout := fs.Duration("timeout", 5*time.Second, "per request timeout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	PrintHeader(fmt.Sprintf("Health Check (%s)", *baseURL))
	return checkHealth(ctx, &http.Client{Timeout: *timeout}, strings.TrimRight(*baseURL, "/"))
}

func checkHealth(ctx context.Context, client *http.Client, baseURL string) error {
	start := time.Now()
	resp, err := get(ctx, client, baseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("liveness: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("liveness: status %d", resp.StatusCode)
	}
	if took := time.Since(start); took > slowResponse {
		PrintWarning("Liveness slow (%v)", took)
	} else {
		PrintSuccess("Liveness ok (%v)", took)
	}

	resp, err = get(ctx, client, baseURL+"/readyz")
	if err != nil {
		return fmt.Errorf("readiness: %w", err)
	}
	defer resp.Body.Close()

	var body handler.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("readiness: decode: %w", err)
	}

	names := make([]string, 0, len(body.Checks))
	for name := range body.Checks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if state := body.Checks[name]; state == "ok" {
			PrintSuccess("%s: %s", name, state)
		} else {
			PrintError("%s: %s", name, state)
		}
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("readiness: status %d", resp.StatusCode)
	}
	PrintSuccess("Service ready")
	return nil
}

func get(ctx context.Context, client *http.Client, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return client.Do(req)
}

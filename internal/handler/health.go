package handler

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/osse101/FrameCraft_Go/internal/database"
	"github.com/osse101/FrameCraft_Go/internal/logger"
)

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// HealthChecker defines the interface for components that can report health
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// HealthCheckFunc adapts a function to HealthChecker.
type HealthCheckFunc func(ctx context.Context) error

func (f HealthCheckFunc) CheckHealth(ctx context.Context) error { return f(ctx) }

// DatabaseCheck reports the pool's ping result.
func DatabaseCheck(pool database.Pool) HealthChecker {
	return HealthCheckFunc(pool.Ping)
}

// AvailabilityCheck turns a boolean probe such as cart.Storage.Available
// into a HealthChecker.
func AvailabilityCheck(available func(ctx context.Context) bool) HealthChecker {
	return HealthCheckFunc(func(ctx context.Context) error {
		if !available(ctx) {
			return errors.New("unavailable")
		}
		return nil
	})
}

// HandleHealthz provides a basic liveness check
// @Summary Liveness check
// @Description Returns OK if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}

// HandleReadyz runs every named check and fails if any of them does
// @Summary Readiness check
// @Description Returns OK if cart storage and other dependencies are reachable
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(checks map[string]HealthChecker) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := HealthResponse{Status: "ok", Checks: make(map[string]string, len(names))}
		status := http.StatusOK
		for _, name := range names {
			if err := checks[name].CheckHealth(ctx); err != nil {
				logger.FromContext(ctx).Error("Readiness check failed", "check", name, "error", err)
				resp.Checks[name] = "unavailable"
				resp.Status = "unavailable"
				resp.Message = name + " check failed"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
		respondJSON(w, status, resp)
	}
}

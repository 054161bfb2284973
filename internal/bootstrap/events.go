package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/FrameCraft_Go/internal/config"
	"github.com/osse101/FrameCraft_Go/internal/event"
)

// InitializeEventSystem creates the in-process bus and the publisher that
// retries failed deliveries before appending them to the dead-letter file.
// Unset retry settings fall back to the config defaults.
func InitializeEventSystem(cfg *config.Config) (event.Bus, *event.ResilientPublisher, error) {
	path := cfg.DeadLetterPath
	if path == "" {
		path = config.DefaultDeadLetterPath
	}
	retries := cfg.EventMaxRetries
	if retries <= 0 {
		retries = config.DefaultEventMaxRetries
	}
	delay := cfg.EventRetryDelay
	if delay <= 0 {
		delay = config.DefaultEventRetryDelay
	}

	if err := os.MkdirAll(filepath.Dir(path), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgCreateDeadLetterDir, err)
	}

	bus := event.NewMemoryBus()
	publisher, err := event.NewResilientPublisher(bus, retries, delay, path)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgCreatePublisher, err)
	}

	slog.Info(LogMsgEventSystemReady, "max_retries", retries, "retry_delay", delay, "dead_letter", path)
	return bus, publisher, nil
}

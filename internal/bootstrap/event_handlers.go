package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/FrameCraft_Go/internal/alert"
	"github.com/osse101/FrameCraft_Go/internal/event"
	"github.com/osse101/FrameCraft_Go/internal/eventlog"
	"github.com/osse101/FrameCraft_Go/internal/metrics"
	"github.com/osse101/FrameCraft_Go/internal/sse"
)

// EventHandlerDependencies holds the dependencies needed for event handler
// registration. Everything except EventBus is optional.
type EventHandlerDependencies struct {
	EventBus        event.Bus
	EventLogService eventlog.Service
	Notifier        *alert.Notifier
	SSEHub          *sse.Hub
}

// RegisterEventHandlers subscribes the metrics collector, the event log, the
// Discord notifier and the SSE bridge to the cart event bus.
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	if deps.EventLogService != nil {
		if err := deps.EventLogService.Subscribe(deps.EventBus); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedSubscribeEventLogger, err)
		}
		slog.Info(LogMsgEventLoggerInitialized)
	}

	if deps.Notifier != nil {
		deps.Notifier.Subscribe(deps.EventBus)
		slog.Info(LogMsgAlertNotifierInitialized)
	}

	if deps.SSEHub != nil {
		sse.NewSubscriber(deps.SSEHub, deps.EventBus).Subscribe()
		slog.Info(LogMsgSSESubscriberInitialized)
	}

	return nil
}

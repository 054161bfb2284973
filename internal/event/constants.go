package event

import "time"

// EventSchemaVersion is stamped on every published event.
const EventSchemaVersion = "1.0"

const (
	// RetryQueueBufferSize bounds events waiting for another attempt.
	RetryQueueBufferSize = 1000

	// RetryMaxDelay caps a single backoff step.
	RetryMaxDelay = time.Minute
)

const (
	DeadLetterFilePermissions = 0644

	// DeadLetterMaxLineBytes is the longest entry ReadDeadLetters accepts.
	DeadLetterMaxLineBytes = 1 << 20
)

const (
	LogMsgEventPublishFailed    = "Event publish failed, queuing for retry"
	LogMsgRetryQueueFull        = "Retry queue full, event dropped to dead-letter"
	LogMsgDeadLetterWriteFailed = "Failed to write to dead letter"
	LogMsgEventRetryExhausted   = "Event retry exhausted, writing to dead-letter"
	LogMsgEventRetryFailed      = "Event retry failed, scheduling next attempt"
	LogMsgEventRetrySucceeded   = "Event retry succeeded"
	LogMsgEventDroppedShutdown  = "Event dropped during shutdown"
	LogMsgQueueDrainedShutdown  = "Drained retry queue during shutdown"
	LogMsgShutdownTimeout       = "Resilient publisher shutdown timed out"
	LogMsgEventDeadLettered     = "Event written to dead letter"
)

// ErrFmtHandlersFailed wraps the joined handler errors of one publish.
const ErrFmtHandlersFailed = "%d handler(s) failed for %s: %w"

// CalculateRetryDelay returns baseDelay * 2^(attempt-1), capped at
// RetryMaxDelay. Attempts below 1 count as the first.
func CalculateRetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if attempt > 31 {
		return RetryMaxDelay
	}
	d := baseDelay * time.Duration(1<<(attempt-1))
	if d > RetryMaxDelay || d < 0 {
		return RetryMaxDelay
	}
	return d
}

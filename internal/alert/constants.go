package alert

import "time"

// DefaultCooldown is the minimum gap between two alerts for the same store.
const DefaultCooldown = 10 * time.Minute

const (
	EmbedTitleSyncFailed = "Cart sync failed"
	EmbedColorError      = 0xE74C3C
	maxErrorLength       = 1024
)

const ErrMsgInvalidWebhookURL = "invalid discord webhook url"

// Log messages
const (
	LogMsgAlertSent       = "Sync failure alert sent"
	LogMsgAlertFailed     = "Failed to send sync failure alert"
	LogMsgAlertSuppressed = "Sync failure alert suppressed by cooldown"
)

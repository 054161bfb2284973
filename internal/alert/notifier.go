// Package alert posts cart sync failures to a Discord channel webhook.
package alert

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/FrameCraft_Go/internal/event"
	"github.com/osse101/FrameCraft_Go/internal/logger"
)

// Notifier sends one embed per failed sync, at most once per store per
// cooldown window.
type Notifier struct {
	session   *discordgo.Session
	webhookID string
	token     string
	service   string
	cooldown  time.Duration

	mu   sync.Mutex
	last map[string]time.Time
	now  func() time.Time
}

// NewNotifier parses a Discord webhook URL of the form
// https://discord.com/api/webhooks/{id}/{token}.
func NewNotifier(webhookURL, service string, cooldown time.Duration) (*Notifier, error) {
	id, token, err := parseWebhookURL(webhookURL)
	if err != nil {
		return nil, err
	}
	// Webhook execution is authorized by the token in the path.
	s, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Notifier{
		session:   s,
		webhookID: id,
		token:     token,
		service:   service,
		cooldown:  cooldown,
		last:      make(map[string]time.Time),
		now:       time.Now,
	}, nil
}

func parseWebhookURL(raw string) (id, token string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", ErrMsgInvalidWebhookURL, err)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+2 < len(parts); i++ {
		if parts[i] == "webhooks" && parts[i+1] != "" && parts[i+2] != "" {
			return parts[i+1], parts[i+2], nil
		}
	}
	return "", "", fmt.Errorf("%s: %q", ErrMsgInvalidWebhookURL, raw)
}

// Subscribe registers the notifier for sync failure events.
func (n *Notifier) Subscribe(bus event.Bus) {
	bus.Subscribe(event.CartSyncFailed, n.HandleEvent)
}

// HandleEvent posts the failure unless the store was alerted recently.
func (n *Notifier) HandleEvent(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.CartSyncPayloadV1](evt.Payload)
	if err != nil {
		return fmt.Errorf("failed to decode sync payload: %w", err)
	}
	if !n.allow(payload.StoreID) {
		logger.FromContext(ctx).Debug(LogMsgAlertSuppressed, "store_id", payload.StoreID)
		return nil
	}

	params := &discordgo.WebhookParams{
		Username: n.service,
		Embeds:   []*discordgo.MessageEmbed{n.embed(payload)},
	}
	if _, err := n.session.WebhookExecute(n.webhookID, n.token, false, params); err != nil {
		logger.FromContext(ctx).Warn(LogMsgAlertFailed, "store_id", payload.StoreID, "error", err)
		return err
	}
	logger.FromContext(ctx).Info(LogMsgAlertSent, "store_id", payload.StoreID)
	return nil
}

func (n *Notifier) allow(storeID string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	now := n.now()
	if last, ok := n.last[storeID]; ok && now.Sub(last) < n.cooldown {
		return false
	}
	n.last[storeID] = now
	return true
}

func (n *Notifier) embed(p event.CartSyncPayloadV1) *discordgo.MessageEmbed {
	fields := []*discordgo.MessageEmbedField{
		{Name: "Store", Value: p.StoreID, Inline: true},
		{Name: "Queued operations", Value: fmt.Sprintf("%d", p.Operations), Inline: true},
	}
	if p.CartID != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Cart", Value: p.CartID})
	}
	msg := p.Error
	if len(msg) > maxErrorLength {
		msg = msg[:maxErrorLength] + "..."
	}
	return &discordgo.MessageEmbed{
		Title:       EmbedTitleSyncFailed,
		Description: msg,
		Color:       EmbedColorError,
		Fields:      fields,
		Timestamp:   time.Unix(p.Timestamp, 0).UTC().Format(time.RFC3339),
	}
}

package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FrameCraft_Go/internal/event"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

const testWebhook = "https://discord.com/api/webhooks/123/secret-token"

// newTestNotifier intercepts Discord API calls and records the posted bodies.
func newTestNotifier(t *testing.T) (*Notifier, *[]*http.Request, *[]discordgo.WebhookParams) {
	t.Helper()
	n, err := NewNotifier(testWebhook, "framecraft", time.Minute)
	require.NoError(t, err)

	var reqs []*http.Request
	var bodies []discordgo.WebhookParams
	n.session.Client = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		reqs = append(reqs, req)
		var body discordgo.WebhookParams
		if req.Body != nil {
			_ = json.NewDecoder(req.Body).Decode(&body)
		}
		bodies = append(bodies, body)
		return &http.Response{
			StatusCode: http.StatusNoContent,
			Body:       io.NopCloser(bytes.NewBufferString("")),
			Header:     make(http.Header),
		}, nil
	})}
	return n, &reqs, &bodies
}

func TestParseWebhookURL(t *testing.T) {
	id, token, err := parseWebhookURL(testWebhook)
	require.NoError(t, err)
	assert.Equal(t, "123", id)
	assert.Equal(t, "secret-token", token)

	_, _, err = parseWebhookURL("https://discord.com/api/channels/1")
	assert.Error(t, err)
}

func TestNotifier_PostsFailure(t *testing.T) {
	n, reqs, bodies := newTestNotifier(t)

	evt := event.NewCartSyncFailedEvent("acme", "gid://shopify/Cart/1", 3, errors.New("remote down"))
	require.NoError(t, n.HandleEvent(context.Background(), evt))

	require.Len(t, *reqs, 1)
	assert.True(t, strings.HasSuffix((*reqs)[0].URL.Path, "/webhooks/123/secret-token"))
	require.Len(t, (*bodies)[0].Embeds, 1)
	embed := (*bodies)[0].Embeds[0]
	assert.Equal(t, EmbedTitleSyncFailed, embed.Title)
	assert.Equal(t, "remote down", embed.Description)
	assert.Equal(t, "acme", embed.Fields[0].Value)
	assert.Equal(t, "3", embed.Fields[1].Value)
}

func TestNotifier_Cooldown(t *testing.T) {
	n, reqs, _ := newTestNotifier(t)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	n.now = func() time.Time { return now }
	ctx := context.Background()

	fail := event.NewCartSyncFailedEvent("acme", "", 1, errors.New("x"))
	require.NoError(t, n.HandleEvent(ctx, fail))
	require.NoError(t, n.HandleEvent(ctx, fail))
	require.NoError(t, n.HandleEvent(ctx, event.NewCartSyncFailedEvent("other", "", 1, errors.New("x"))))
	assert.Len(t, *reqs, 2, "second alert for acme suppressed")

	now = now.Add(2 * time.Minute)
	require.NoError(t, n.HandleEvent(ctx, fail))
	assert.Len(t, *reqs, 3)
}

func TestNotifier_Subscribe(t *testing.T) {
	n, reqs, _ := newTestNotifier(t)
	bus := event.NewMemoryBus()
	n.Subscribe(bus)

	require.NoError(t, bus.Publish(context.Background(), event.NewCartSyncFailedEvent("acme", "", 1, errors.New("x"))))
	require.NoError(t, bus.Publish(context.Background(), event.NewCartClearedEvent("acme", 2)))
	assert.Len(t, *reqs, 1)
}

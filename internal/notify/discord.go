package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"unicode/utf8"

	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/internal/config"
)

// discordMaxContentLength is the webhook content limit.
const discordMaxContentLength = config.DiscordMaxMessageLength

// DiscordTransport posts plain-content messages to a Discord webhook.
type DiscordTransport struct {
	webhookURL string
	client     *http.Client
}

// DiscordOption configures a DiscordTransport.
type DiscordOption func(*DiscordTransport)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordTransport) {
		d.client = c
	}
}

// NewDiscordTransport creates a new DiscordTransport.
func NewDiscordTransport(webhookURL string, opts ...DiscordOption) *DiscordTransport {
	d := &DiscordTransport{
		webhookURL: webhookURL,
		client:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// discordWebhookPayload is the Discord webhook JSON structure.
type discordWebhookPayload struct {
	Content string `json:"content"`
}

type discordMessage struct {
	ID string `json:"id"`
}

// Send posts body and returns the created message id.
func (d *DiscordTransport) Send(ctx context.Context, body string) (string, error) {
	if n := utf8.RuneCountInString(body); n > discordMaxContentLength {
		return "", fmt.Errorf("%w: %d characters exceeds %d", ErrMessageTooLong, n, discordMaxContentLength)
	}

	payload, err := json.Marshal(discordWebhookPayload{Content: body})
	if err != nil {
		return "", fmt.Errorf("marshaling discord payload: %w", err)
	}

	endpoint, err := url.Parse(d.webhookURL)
	if err != nil {
		return "", fmt.Errorf("parsing discord webhook url: %w", err)
	}
	// wait=true makes Discord return the created message.
	q := endpoint.Query()
	q.Set("wait", "true")
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		endpoint.String(),
		bytes.NewReader(payload),
	)
	if err != nil {
		return "", fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", fmt.Errorf("discord rate limited (429)")
	}

	respBody, readErr := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if readErr != nil {
			return "", fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return "", fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	var msg discordMessage
	if readErr == nil && len(respBody) > 0 {
		_ = json.Unmarshal(respBody, &msg)
	}
	return msg.ID, nil
}

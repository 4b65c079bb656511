package notify

import (
	"fmt"
	"log/slog"

	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/internal/config"
)

// NewTransport builds the transport selected by cfg.Backend.
func NewTransport(cfg *config.NotificationsConfig, log *slog.Logger) (Transport, error) {
	switch cfg.Backend {
	case config.BackendTwilio:
		tw := cfg.Twilio
		return NewTwilioTransport(tw.AccountSID, tw.AuthToken, tw.From, tw.To,
			WithTwilioBaseURL(tw.BaseURL),
		), nil
	case config.BackendDiscord:
		return NewDiscordTransport(cfg.Discord.WebhookURL), nil
	case config.BackendNoop, "":
		return NewNoOpTransport(log), nil
	default:
		return nil, fmt.Errorf("unknown notification backend %q", cfg.Backend)
	}
}

// New builds an OfferNotifier over the transport selected by cfg. The part
// length never exceeds what the transport accepts.
func New(cfg *config.NotificationsConfig, log *slog.Logger) (*OfferNotifier, error) {
	t, err := NewTransport(cfg, log)
	if err != nil {
		return nil, err
	}

	maxLen := cfg.MaxMessageLength
	if limit := config.BackendMessageLimit(cfg.Backend); limit > 0 && (maxLen <= 0 || maxLen > limit) {
		log.Warn("clamping notification message length to backend limit",
			"backend", cfg.Backend,
			"configured", maxLen,
			"limit", limit,
		)
		maxLen = limit
	}

	return NewOfferNotifier(t,
		WithHeader(cfg.Header),
		WithMaxMessageLength(maxLen),
		WithLogger(log),
	), nil
}

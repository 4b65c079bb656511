package notify

import (
	"context"
	"log/slog"
	"unicode/utf8"
)

// NoOpTransport implements Transport by logging discarded messages. It is used
// when no notification backend is configured.
type NoOpTransport struct {
	log *slog.Logger
}

// NewNoOpTransport creates a transport that discards messages with a log line.
func NewNoOpTransport(log *slog.Logger) *NoOpTransport {
	return &NoOpTransport{log: log}
}

// Send logs and discards body.
func (n *NoOpTransport) Send(_ context.Context, body string) (string, error) {
	n.log.Debug("notification discarded (no backend configured)",
		"length", utf8.RuneCountInString(body),
	)
	return "", nil
}

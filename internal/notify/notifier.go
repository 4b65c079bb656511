// Package notify formats new-offer announcements and delivers them through a
// pluggable message transport.
package notify

import (
	"context"
	"errors"

	domain "github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/pkg/types"
)

// ErrMessageTooLong is wrapped by transport errors when the body exceeds the
// transport's length limit. Callers match it with errors.Is.
var ErrMessageTooLong = errors.New("message too long")

// Transport delivers a single text message and returns the provider's
// message id.
type Transport interface {
	Send(ctx context.Context, body string) (string, error)
}

// Notifier announces newly discovered offers.
type Notifier interface {
	Notify(ctx context.Context, offers []domain.Offer) error
}

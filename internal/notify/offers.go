package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/internal/metrics"
	domain "github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/pkg/types"
)

// Message defaults.
const (
	DefaultHeader           = "New offers found:\n"
	DefaultMaxMessageLength = 1600
)

// OfferNotifier sends one message listing new offers, falling back to
// several smaller messages when the transport rejects it as too long.
type OfferNotifier struct {
	transport Transport
	header    string
	maxLen    int
	log       *slog.Logger
}

// Option configures an OfferNotifier.
type Option func(*OfferNotifier)

// WithHeader sets the first line(s) of every announcement.
func WithHeader(h string) Option {
	return func(n *OfferNotifier) {
		n.header = h
	}
}

// WithMaxMessageLength sets the per-part limit, in characters, used when
// splitting. Non-positive values are ignored.
func WithMaxMessageLength(l int) Option {
	return func(n *OfferNotifier) {
		if l > 0 {
			n.maxLen = l
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(n *OfferNotifier) {
		n.log = l
	}
}

// NewOfferNotifier creates an OfferNotifier sending through t.
func NewOfferNotifier(t Transport, opts ...Option) *OfferNotifier {
	n := &OfferNotifier{
		transport: t,
		header:    DefaultHeader,
		maxLen:    DefaultMaxMessageLength,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// MaxMessageLength returns the per-part limit used when splitting.
func (n *OfferNotifier) MaxMessageLength() int {
	return n.maxLen
}

// FormatBlock renders one offer as it appears in an announcement.
func FormatBlock(o *domain.Offer) string {
	return fmt.Sprintf("- %s for $%s\n%s\n\n",
		o.Title, strconv.FormatFloat(o.Price, 'f', -1, 64), o.Permalink)
}

// Pack groups blocks into messages of at most limit characters. The first
// message starts with header. A block is never split; a block longer than
// limit on its own becomes its own message.
func Pack(header string, blocks []string, limit int) []string {
	var (
		parts []string
		cur   strings.Builder
		size  int
	)

	cur.WriteString(header)
	size = utf8.RuneCountInString(header)

	for _, b := range blocks {
		n := utf8.RuneCountInString(b)
		if size+n > limit && cur.Len() > 0 {
			parts = append(parts, cur.String())
			cur.Reset()
			size = 0
		}
		cur.WriteString(b)
		size += n
	}

	if cur.Len() > 0 {
		parts = append(parts, cur.String())
	}
	return parts
}

// Notify announces offers. An empty list sends nothing. Failures are logged
// and returned; they are never retried.
func (n *OfferNotifier) Notify(ctx context.Context, offers []domain.Offer) error {
	if len(offers) == 0 {
		n.log.Debug("no new offers to notify")
		return nil
	}

	start := time.Now()
	defer func() {
		metrics.NotificationDuration.Observe(time.Since(start).Seconds())
	}()

	blocks := make([]string, len(offers))
	for i := range offers {
		blocks[i] = FormatBlock(&offers[i])
	}
	body := n.header + strings.Join(blocks, "")

	sid, err := n.transport.Send(ctx, body)
	if err == nil {
		metrics.NotificationsSentTotal.Inc()
		n.log.Info("notification sent", "sid", sid, "offers", len(offers))
		return nil
	}

	if !errors.Is(err, ErrMessageTooLong) {
		metrics.NotificationFailuresTotal.Inc()
		n.log.Error("sending notification", "error", err)
		return fmt.Errorf("sending notification: %w", err)
	}

	parts := Pack(n.header, blocks, n.maxLen)
	metrics.NotificationSplitsTotal.Inc()
	n.log.Warn("message exceeds length limit, splitting",
		"length", utf8.RuneCountInString(body),
		"limit", n.maxLen,
		"parts", len(parts),
	)

	var errs []error
	for i, part := range parts {
		sid, err := n.transport.Send(ctx, part)
		if err != nil {
			metrics.NotificationFailuresTotal.Inc()
			n.log.Error("sending notification part", "part", i+1, "of", len(parts), "error", err)
			errs = append(errs, fmt.Errorf("sending part %d/%d: %w", i+1, len(parts), err))
			continue
		}
		metrics.NotificationsSentTotal.Inc()
		n.log.Info("notification part sent", "part", i+1, "of", len(parts), "sid", sid)
	}

	return errors.Join(errs...)
}

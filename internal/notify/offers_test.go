package notify_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/internal/metrics"
	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/internal/notify"
	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/internal/notify/mocks"
	domain "github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/pkg/types"
)

const header = "New offers found:\n"

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func offers(n int) []domain.Offer {
	out := make([]domain.Offer, n)
	for i := range out {
		id := fmt.Sprintf("MLU%04d", i)
		out[i] = domain.Offer{
			ID:        id,
			Title:     "Placa de video RTX 3060 Ti usada en caja " + id,
			Price:     float64(9000 + i),
			Permalink: "https://articulo.mercadolibre.com.uy/" + id + "-rtx-3060-ti-usada",
		}
	}
	return out
}

func tooLong() error {
	return fmt.Errorf("%w: exceeds 1600", notify.ErrMessageTooLong)
}

func TestFormatBlock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		offer domain.Offer
		want  string
	}{
		{
			name:  "integer price",
			offer: domain.Offer{Title: "RTX 3060", Price: 12000, Permalink: "https://x/1"},
			want:  "- RTX 3060 for $12000\nhttps://x/1\n\n",
		},
		{
			name:  "fractional price",
			offer: domain.Offer{Title: "GTX 1660", Price: 4500.5, Permalink: "https://x/2"},
			want:  "- GTX 1660 for $4500.5\nhttps://x/2\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, notify.FormatBlock(&tt.offer))
		})
	}
}

func TestPack(t *testing.T) {
	t.Parallel()

	block := strings.Repeat("a", 9) + "\n" // 10 characters

	tests := []struct {
		name   string
		header string
		blocks []string
		limit  int
		want   []string
	}{
		{
			name:   "everything fits",
			header: "H\n",
			blocks: []string{block, block},
			limit:  100,
			want:   []string{"H\n" + block + block},
		},
		{
			name:   "exact fit stays in one part",
			header: "H\n",
			blocks: []string{block, block},
			limit:  22,
			want:   []string{"H\n" + block + block},
		},
		{
			name:   "overflow starts new part with the block",
			header: "H\n",
			blocks: []string{block, block, block},
			limit:  22,
			want:   []string{"H\n" + block + block, block},
		},
		{
			name:   "header alone when first block does not fit",
			header: "HEADER\n",
			blocks: []string{block},
			limit:  10,
			want:   []string{"HEADER\n", block},
		},
		{
			name:   "oversized block is never split",
			header: "",
			blocks: []string{strings.Repeat("b", 30), block},
			limit:  20,
			want:   []string{strings.Repeat("b", 30), block},
		},
		{
			name:   "parts filled exactly to the limit",
			header: "H\n",
			blocks: []string{
				strings.Repeat("a", 799), strings.Repeat("b", 799),
				strings.Repeat("c", 800), strings.Repeat("d", 800),
				strings.Repeat("e", 50),
			},
			limit: 1600,
			want: []string{
				"H\n" + strings.Repeat("a", 799) + strings.Repeat("b", 799),
				strings.Repeat("c", 800) + strings.Repeat("d", 800),
				strings.Repeat("e", 50),
			},
		},
		{
			name:   "limit counts characters not bytes",
			header: "",
			blocks: []string{"ñññññ", "ñññññ"},
			limit:  10,
			want:   []string{"ññññññññññ"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, notify.Pack(tt.header, tt.blocks, tt.limit))
		})
	}
}

func TestOfferNotifier_Notify_EmptyListSendsNothing(t *testing.T) {
	t.Parallel()

	tr := mocks.NewMockTransport(t)
	n := notify.NewOfferNotifier(tr, notify.WithLogger(quietLogger()))

	require.NoError(t, n.Notify(context.Background(), nil))
	tr.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestOfferNotifier_Notify_SingleMessage(t *testing.T) {
	t.Parallel()

	list := []domain.Offer{
		{ID: "MLU1", Title: "RTX 3060", Price: 12000, Permalink: "https://x/1"},
		{ID: "MLU2", Title: "GTX 1660", Price: 4500.5, Permalink: "https://x/2"},
	}
	want := header +
		"- RTX 3060 for $12000\nhttps://x/1\n\n" +
		"- GTX 1660 for $4500.5\nhttps://x/2\n\n"

	tr := mocks.NewMockTransport(t)
	tr.EXPECT().Send(mock.Anything, want).Return("SM1", nil).Once()

	n := notify.NewOfferNotifier(tr, notify.WithLogger(quietLogger()))
	require.NoError(t, n.Notify(context.Background(), list))
}

func TestOfferNotifier_Notify_SplitsWhenTooLong(t *testing.T) {
	t.Parallel()

	list := offers(30)
	var full strings.Builder
	full.WriteString(header)
	for i := range list {
		full.WriteString(notify.FormatBlock(&list[i]))
	}
	require.Greater(t, utf8.RuneCountInString(full.String()), 3000)

	var parts []string
	tr := mocks.NewMockTransport(t)
	tr.EXPECT().Send(mock.Anything, full.String()).Return("", tooLong()).Once()
	tr.EXPECT().Send(mock.Anything, mock.MatchedBy(func(b string) bool { return b != full.String() })).
		RunAndReturn(func(_ context.Context, body string) (string, error) {
			parts = append(parts, body)
			return fmt.Sprintf("SM%d", len(parts)), nil
		})

	n := notify.NewOfferNotifier(tr, notify.WithLogger(quietLogger()))
	require.NoError(t, n.Notify(context.Background(), list))

	// 125-character blocks: 12 fit after the header, then 12, then the last 6.
	require.Len(t, parts, 3)
	assert.Equal(t, 18+12*125, utf8.RuneCountInString(parts[0]))
	assert.Equal(t, 12*125, utf8.RuneCountInString(parts[1]))
	assert.Equal(t, 6*125, utf8.RuneCountInString(parts[2]))
	assert.True(t, strings.HasPrefix(parts[0], header))
	for i, p := range parts {
		assert.LessOrEqual(t, utf8.RuneCountInString(p), 1600, "part %d", i+1)
		if i > 0 {
			assert.False(t, strings.HasPrefix(p, header), "part %d", i+1)
			assert.True(t, strings.HasPrefix(p, "- "), "part %d starts mid-block", i+1)
		}
	}
	assert.Equal(t, full.String(), strings.Join(parts, ""))
}

func TestOfferNotifier_Notify_PartFailureDoesNotStopLaterParts(t *testing.T) {
	t.Parallel()

	list := offers(30)
	calls := 0
	tr := mocks.NewMockTransport(t)
	tr.EXPECT().Send(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, _ string) (string, error) {
			calls++
			switch calls {
			case 1:
				return "", tooLong()
			case 2:
				return "", errors.New("twilio unavailable")
			default:
				return "SM", nil
			}
		})

	n := notify.NewOfferNotifier(tr,
		notify.WithLogger(quietLogger()),
		notify.WithMaxMessageLength(500),
	)
	err := n.Notify(context.Background(), list)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "twilio unavailable")
	assert.Contains(t, err.Error(), "sending part 1/")
	assert.Greater(t, calls, 3)
}

func TestOfferNotifier_Notify_OtherErrorIsNotRetried(t *testing.T) {
	t.Parallel()

	tr := mocks.NewMockTransport(t)
	tr.EXPECT().Send(mock.Anything, mock.Anything).
		Return("", errors.New("authentication failed")).Once()

	n := notify.NewOfferNotifier(tr, notify.WithLogger(quietLogger()))
	err := n.Notify(context.Background(), offers(3))

	require.Error(t, err)
	assert.NotErrorIs(t, err, notify.ErrMessageTooLong)
	assert.Contains(t, err.Error(), "authentication failed")
}

func TestOfferNotifier_Notify_CustomHeader(t *testing.T) {
	t.Parallel()

	tr := mocks.NewMockTransport(t)
	tr.EXPECT().Send(mock.Anything, mock.MatchedBy(func(b string) bool {
		return strings.HasPrefix(b, "New 'Usado' offers found:\n- ")
	})).Return("SM1", nil).Once()

	n := notify.NewOfferNotifier(tr,
		notify.WithLogger(quietLogger()),
		notify.WithHeader("New 'Usado' offers found:\n"),
	)
	require.NoError(t, n.Notify(context.Background(), offers(1)))
}

// Not parallel: measures global counter deltas.
func TestOfferNotifier_Notify_Metrics(t *testing.T) {
	sentBefore := testutil.ToFloat64(metrics.NotificationsSentTotal)
	splitsBefore := testutil.ToFloat64(metrics.NotificationSplitsTotal)
	failuresBefore := testutil.ToFloat64(metrics.NotificationFailuresTotal)

	calls := 0
	tr := mocks.NewMockTransport(t)
	tr.EXPECT().Send(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, _ string) (string, error) {
			calls++
			if calls == 1 {
				return "", tooLong()
			}
			return "SM", nil
		})

	n := notify.NewOfferNotifier(tr,
		notify.WithLogger(quietLogger()),
		notify.WithMaxMessageLength(200),
	)
	require.NoError(t, n.Notify(context.Background(), offers(4)))

	assert.InDelta(t, float64(calls-1), testutil.ToFloat64(metrics.NotificationsSentTotal)-sentBefore, 0.001)
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.NotificationSplitsTotal)-splitsBefore, 0.001)
	assert.InDelta(t, 0.0, testutil.ToFloat64(metrics.NotificationFailuresTotal)-failuresBefore, 0.001)
}

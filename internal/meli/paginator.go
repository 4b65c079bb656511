package meli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/internal/metrics"
	domain "github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/pkg/types"
)

const (
	defaultPageSize  = 50
	defaultMaxOffset = 1000
)

// Reasons pagination stopped.
const (
	StopEmptyPage = "empty_page"
	StopShortPage = "short_page"
	StopMaxOffset = "max_offset"
	StopError     = "error"
)

// Paginator walks the search results of one term page by page.
type Paginator struct {
	client    SearchClient
	log       *slog.Logger
	pageSize  int
	maxOffset int
}

// PaginatorOption configures the Paginator.
type PaginatorOption func(*Paginator)

// WithPageSize overrides the default page size.
func WithPageSize(size int) PaginatorOption {
	return func(p *Paginator) {
		p.pageSize = size
	}
}

// WithMaxOffset overrides the largest offset requested (inclusive).
func WithMaxOffset(n int) PaginatorOption {
	return func(p *Paginator) {
		p.maxOffset = n
	}
}

// WithPaginatorLogger sets the logger.
func WithPaginatorLogger(l *slog.Logger) PaginatorOption {
	return func(p *Paginator) {
		p.log = l
	}
}

// NewPaginator creates a new Paginator.
func NewPaginator(client SearchClient, opts ...PaginatorOption) *Paginator {
	p := &Paginator{
		client:    client,
		log:       slog.Default(),
		pageSize:  defaultPageSize,
		maxOffset: defaultMaxOffset,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FetchResult holds the outcome of paginating one term.
type FetchResult struct {
	Term      string
	Offers    []domain.Offer
	PagesUsed int
	StoppedAt string
	// Err is the page failure that cut pagination short, if any. Offers
	// still holds everything gathered before it.
	Err error
}

// FetchOffers returns the unique offers for term, in the order they were
// first seen. Offsets run from 0 to the max offset inclusive in page-size
// steps. Pagination stops at the first empty page, the first short page or
// the first failed page; a failure never discards offers already gathered.
func (p *Paginator) FetchOffers(ctx context.Context, term string) *FetchResult {
	result := &FetchResult{Term: term}
	seen := make(domain.IDSet)

	defer func() {
		metrics.SearchStopsTotal.WithLabelValues(result.StoppedAt).Inc()
		p.log.Info("term fetched",
			"term", term,
			"offers", len(result.Offers),
			"pages_used", result.PagesUsed,
			"stopped_at", result.StoppedAt,
		)
	}()

	for offset := 0; offset <= p.maxOffset; offset += p.pageSize {
		p.log.Debug("fetching page", "term", term, "offset", offset)

		resp, err := p.client.Search(ctx, SearchRequest{
			Query:  term,
			Offset: offset,
			Limit:  p.pageSize,
		})
		if err != nil {
			metrics.SearchErrorsTotal.Inc()
			p.log.Error("search page failed", "term", term, "offset", offset, "error", err)
			result.StoppedAt = StopError
			result.Err = fmt.Errorf("searching %q at offset %d: %w", term, offset, err)
			return result
		}

		result.PagesUsed++

		n := len(resp.Results)
		p.log.Debug("page fetched", "term", term, "offset", offset, "results", n)

		if n == 0 {
			result.StoppedAt = StopEmptyPage
			return result
		}

		for i := range resp.Results {
			r := &resp.Results[i]
			if r.ID == "" || seen.Has(r.ID) {
				continue
			}
			seen.Add(r.ID)
			result.Offers = append(result.Offers, ToOffer(r))
		}

		if n < p.pageSize {
			result.StoppedAt = StopShortPage
			return result
		}
	}

	result.StoppedAt = StopMaxOffset
	return result
}

package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	domain "github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/pkg/types"
)

// OffersPage is one page of tracked offers.
type OffersPage struct {
	Offers []domain.Offer `json:"offers"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// RunReport is the outcome of a triggered run.
type RunReport struct {
	RunID          string         `json:"run_id"`
	Status         string         `json:"status"`
	Fetched        int            `json:"fetched"`
	NewOffers      []domain.Offer `json:"new_offers"`
	DisappearedIDs []string       `json:"disappeared_ids"`
}

// ListOffers returns a page of tracked offers. Zero values use server defaults.
func (c *Client) ListOffers(ctx context.Context, limit, offset int) (*OffersPage, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}

	path := "/api/v1/offers"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var page OffersPage
	if err := c.get(ctx, path, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetOffer returns one tracked offer.
func (c *Client) GetOffer(ctx context.Context, id string) (*domain.Offer, error) {
	var o domain.Offer
	if err := c.get(ctx, "/api/v1/offers/"+url.PathEscape(id), &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// TriggerRun asks the server to run a reconciliation cycle now.
func (c *Client) TriggerRun(ctx context.Context) (*RunReport, error) {
	var r RunReport
	if err := c.post(ctx, "/api/v1/run", nil, &r); err != nil {
		return nil, fmt.Errorf("triggering run: %w", err)
	}
	return &r, nil
}

// ReportFromResult converts an in-process run result to the report shape the
// server returns, so local and remote runs print the same way.
func ReportFromResult(res *domain.RunResult) *RunReport {
	r := &RunReport{
		RunID:          res.RunID,
		Status:         string(domain.RunCompleted),
		Fetched:        res.Fetched,
		NewOffers:      res.NewOffers,
		DisappearedIDs: res.DisappearedIDs.Sorted(),
	}
	if res.Skipped {
		r.Status = string(domain.RunSkipped)
	}
	if r.NewOffers == nil {
		r.NewOffers = []domain.Offer{}
	}
	return r
}

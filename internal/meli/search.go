package meli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/internal/metrics"
)

const (
	defaultBaseURL = "https://api.mercadolibre.com"
	defaultSite    = "MLU"

	// maxErrorBody caps how much of an error response ends up in the error text.
	maxErrorBody = 512
)

// ErrRateLimited is returned when the API answers 429.
var ErrRateLimited = errors.New("search API rate limited")

// HTTPClient implements SearchClient against the MercadoLibre sites search API.
type HTTPClient struct {
	baseURL     string
	site        string
	accessToken string
	client      *http.Client
	rateLimiter *RateLimiter
}

// Option configures the HTTPClient.
type Option func(*HTTPClient)

// WithBaseURL overrides the default API host.
func WithBaseURL(u string) Option {
	return func(c *HTTPClient) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithSite overrides the default site (country) id.
func WithSite(site string) Option {
	return func(c *HTTPClient) {
		c.site = site
	}
}

// WithAccessToken sends the token as a bearer Authorization header.
func WithAccessToken(token string) Option {
	return func(c *HTTPClient) {
		c.accessToken = token
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		c.client = hc
	}
}

// WithRateLimiter makes every Search call wait on r first.
func WithRateLimiter(r *RateLimiter) Option {
	return func(c *HTTPClient) {
		c.rateLimiter = r
	}
}

// NewHTTPClient creates a new search API client.
func NewHTTPClient(opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: defaultBaseURL,
		site:    defaultSite,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search fetches one page of results.
func (c *HTTPClient) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	metrics.SearchRequestsTotal.Inc()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildSearchURL(req), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if c.accessToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing search request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}

	if resp.StatusCode != http.StatusOK {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, fmt.Errorf("search API error (status %d): %s", resp.StatusCode, string(body))
	}

	var apiResp searchAPIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}

	return &SearchResponse{
		Results: apiResp.Results,
		Total:   apiResp.Paging.Total,
		Offset:  apiResp.Paging.Offset,
		Limit:   apiResp.Paging.Limit,
	}, nil
}

func (c *HTTPClient) buildSearchURL(req SearchRequest) string {
	params := url.Values{}
	params.Set("q", req.Query)
	params.Set("offset", strconv.Itoa(req.Offset))

	if req.Limit > 0 {
		params.Set("limit", strconv.Itoa(req.Limit))
	}

	return fmt.Sprintf("%s/sites/%s/search?%s", c.baseURL, url.PathEscape(c.site), params.Encode())
}

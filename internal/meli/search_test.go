package meli_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/internal/meli"
)

func TestHTTPClient_Search(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		req         meli.SearchRequest
		token       string
		handler     http.HandlerFunc
		wantErr     bool
		errContain  string
		wantResults int
		wantTotal   int
	}{
		{
			name:  "successful search with results",
			req:   meli.SearchRequest{Query: "RTX Usado", Offset: 50, Limit: 50},
			token: "test-token",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/sites/MLU/search", r.URL.Path)
				assert.Equal(t, "RTX Usado", r.URL.Query().Get("q"))
				assert.Equal(t, "50", r.URL.Query().Get("offset"))
				assert.Equal(t, "50", r.URL.Query().Get("limit"))
				assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{
					"site_id": "MLU",
					"query": "RTX Usado",
					"paging": {"total": 120, "offset": 50, "limit": 50},
					"results": [
						{"id": "MLU1", "title": "RTX 3060", "price": 9500, "permalink": "https://articulo.mercadolibre.com.uy/MLU-1"},
						{"id": "MLU2", "title": "RTX 2070", "price": 7200.5, "permalink": "https://articulo.mercadolibre.com.uy/MLU-2"}
					]
				}`))
			},
			wantResults: 2,
			wantTotal:   120,
		},
		{
			name: "no authorization header without token",
			req:  meli.SearchRequest{Query: "GTX Usado"},
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Empty(t, r.Header.Get("Authorization"))
				assert.Equal(t, "0", r.URL.Query().Get("offset"))
				_, _ = w.Write([]byte(`{"paging": {"total": 0}, "results": []}`))
			},
			wantResults: 0,
		},
		{
			name: "429 rate limited response",
			req:  meli.SearchRequest{Query: "test"},
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
			wantErr:    true,
			errContain: "rate limited",
		},
		{
			name: "403 forbidden response",
			req:  meli.SearchRequest{Query: "test"},
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"message": "forbidden"}`))
			},
			wantErr:    true,
			errContain: "status 403",
		},
		{
			name: "invalid JSON response",
			req:  meli.SearchRequest{Query: "test"},
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("not valid json"))
			},
			wantErr:    true,
			errContain: "parsing search response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := meli.NewHTTPClient(
				meli.WithBaseURL(srv.URL+"/"),
				meli.WithAccessToken(tt.token),
			)

			resp, err := c.Search(context.Background(), tt.req)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContain)
				return
			}

			require.NoError(t, err)
			assert.Len(t, resp.Results, tt.wantResults)
			assert.Equal(t, tt.wantTotal, resp.Total)
		})
	}
}

func TestHTTPClient_Search_DecodesFields(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results": [
			{"id": "MLU9", "title": "GTX 1080", "price": 5400, "permalink": "https://x/MLU9", "currency_id": "UYU"}
		]}`))
	}))
	defer srv.Close()

	c := meli.NewHTTPClient(meli.WithBaseURL(srv.URL))
	resp, err := c.Search(context.Background(), meli.SearchRequest{Query: "GTX"})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)

	offer := meli.ToOffer(&resp.Results[0])
	assert.Equal(t, "MLU9", offer.ID)
	assert.Equal(t, "GTX 1080", offer.Title)
	assert.InDelta(t, 5400.0, offer.Price, 0.001)
	assert.Equal(t, "https://x/MLU9", offer.Permalink)
	assert.True(t, offer.SeenAt.IsZero())
}

func TestHTTPClient_Search_CustomSite(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sites/MLA/search", r.URL.Path)
		_, _ = w.Write([]byte(`{"results": []}`))
	}))
	defer srv.Close()

	c := meli.NewHTTPClient(meli.WithBaseURL(srv.URL), meli.WithSite("MLA"))
	_, err := c.Search(context.Background(), meli.SearchRequest{Query: "x"})
	require.NoError(t, err)
}

func TestHTTPClient_Search_NetworkError(t *testing.T) {
	t.Parallel()

	c := meli.NewHTTPClient(
		meli.WithBaseURL("http://127.0.0.1:1"), // nothing listening
		meli.WithHTTPClient(&http.Client{Timeout: time.Second}),
	)
	_, err := c.Search(context.Background(), meli.SearchRequest{Query: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "executing search request")
}

func TestHTTPClient_Search_RateLimiterCanceled(t *testing.T) {
	t.Parallel()

	rl := meli.NewRateLimiter(0.001, 1)
	require.NoError(t, rl.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := meli.NewHTTPClient(meli.WithBaseURL("http://127.0.0.1:1"), meli.WithRateLimiter(rl))
	_, err := c.Search(ctx, meli.SearchRequest{Query: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
	assert.Equal(t, int64(1), rl.Calls())
}

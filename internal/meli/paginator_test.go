package meli_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/internal/meli"
	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/internal/meli/mocks"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// page builds n results with ids prefix-start .. prefix-(start+n-1).
func page(prefix string, start, n int) *meli.SearchResponse {
	results := make([]meli.Result, n)
	for i := range results {
		id := fmt.Sprintf("%s%d", prefix, start+i)
		results[i] = meli.Result{
			ID:        id,
			Title:     "Title " + id,
			Price:     float64(100 + start + i),
			Permalink: "https://articulo.mercadolibre.com.uy/" + id,
		}
	}
	return &meli.SearchResponse{Results: results}
}

func atOffset(offset int) any {
	return mock.MatchedBy(func(r meli.SearchRequest) bool {
		return r.Offset == offset
	})
}

func TestPaginator_FetchOffers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		pageSize    int
		maxOffset   int
		setupMocks  func(*mocks.MockSearchClient)
		wantIDs     []string
		wantPages   int
		wantStopped string
		wantErr     bool
	}{
		{
			name: "stops on empty first page",
			setupMocks: func(c *mocks.MockSearchClient) {
				c.EXPECT().Search(mock.Anything, atOffset(0)).
					Return(&meli.SearchResponse{}, nil).Once()
			},
			wantIDs:     nil,
			wantPages:   1,
			wantStopped: meli.StopEmptyPage,
		},
		{
			name: "short page ends pagination before max offset",
			setupMocks: func(c *mocks.MockSearchClient) {
				c.EXPECT().Search(mock.Anything, atOffset(0)).Return(page("A", 0, 50), nil).Once()
				c.EXPECT().Search(mock.Anything, atOffset(50)).Return(page("A", 50, 49), nil).Once()
			},
			wantPages:   2,
			wantStopped: meli.StopShortPage,
		},
		{
			name: "full pages continue until an empty page",
			setupMocks: func(c *mocks.MockSearchClient) {
				c.EXPECT().Search(mock.Anything, atOffset(0)).Return(page("A", 0, 50), nil).Once()
				c.EXPECT().Search(mock.Anything, atOffset(50)).Return(page("A", 50, 50), nil).Once()
				c.EXPECT().Search(mock.Anything, atOffset(100)).Return(&meli.SearchResponse{}, nil).Once()
			},
			wantPages:   3,
			wantStopped: meli.StopEmptyPage,
		},
		{
			name:      "max offset is inclusive",
			pageSize:  2,
			maxOffset: 4,
			setupMocks: func(c *mocks.MockSearchClient) {
				c.EXPECT().Search(mock.Anything, atOffset(0)).Return(page("A", 0, 2), nil).Once()
				c.EXPECT().Search(mock.Anything, atOffset(2)).Return(page("A", 2, 2), nil).Once()
				c.EXPECT().Search(mock.Anything, atOffset(4)).Return(page("A", 4, 2), nil).Once()
			},
			wantIDs:     []string{"A0", "A1", "A2", "A3", "A4", "A5"},
			wantPages:   3,
			wantStopped: meli.StopMaxOffset,
		},
		{
			name:     "error keeps offers already gathered",
			pageSize: 2,
			setupMocks: func(c *mocks.MockSearchClient) {
				c.EXPECT().Search(mock.Anything, atOffset(0)).Return(page("A", 0, 2), nil).Once()
				c.EXPECT().Search(mock.Anything, atOffset(2)).
					Return(nil, errors.New("connection reset")).Once()
			},
			wantIDs:     []string{"A0", "A1"},
			wantPages:   1,
			wantStopped: meli.StopError,
			wantErr:     true,
		},
		{
			name: "error on first page returns nothing",
			setupMocks: func(c *mocks.MockSearchClient) {
				c.EXPECT().Search(mock.Anything, atOffset(0)).
					Return(nil, errors.New("status 500")).Once()
			},
			wantIDs:     nil,
			wantPages:   0,
			wantStopped: meli.StopError,
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := mocks.NewMockSearchClient(t)
			tt.setupMocks(c)

			opts := []meli.PaginatorOption{meli.WithPaginatorLogger(quietLogger())}
			if tt.pageSize > 0 {
				opts = append(opts, meli.WithPageSize(tt.pageSize))
			}
			if tt.maxOffset > 0 {
				opts = append(opts, meli.WithMaxOffset(tt.maxOffset))
			}

			p := meli.NewPaginator(c, opts...)
			res := p.FetchOffers(context.Background(), "RTX Usado")

			assert.Equal(t, "RTX Usado", res.Term)
			assert.Equal(t, tt.wantPages, res.PagesUsed)
			assert.Equal(t, tt.wantStopped, res.StoppedAt)
			if tt.wantErr {
				require.Error(t, res.Err)
			} else {
				require.NoError(t, res.Err)
			}

			if tt.wantIDs != nil {
				ids := make([]string, 0, len(res.Offers))
				for _, o := range res.Offers {
					ids = append(ids, o.ID)
				}
				assert.Equal(t, tt.wantIDs, ids)
			}
		})
	}
}

func TestPaginator_FetchOffers_DedupKeepsFirstSeen(t *testing.T) {
	t.Parallel()

	c := mocks.NewMockSearchClient(t)

	first := &meli.SearchResponse{Results: []meli.Result{
		{ID: "MLU1", Title: "first copy", Price: 10},
		{ID: "MLU2", Title: "two", Price: 20},
	}}
	second := &meli.SearchResponse{Results: []meli.Result{
		{ID: "MLU2", Title: "second copy", Price: 99},
		{ID: "MLU1", Title: "second copy", Price: 99},
		{ID: "MLU3", Title: "three", Price: 30},
	}}

	c.EXPECT().Search(mock.Anything, atOffset(0)).Return(first, nil).Once()
	c.EXPECT().Search(mock.Anything, atOffset(2)).Return(second, nil).Once()
	c.EXPECT().Search(mock.Anything, atOffset(4)).Return(&meli.SearchResponse{}, nil).Once()

	p := meli.NewPaginator(c, meli.WithPageSize(2), meli.WithPaginatorLogger(quietLogger()))
	res := p.FetchOffers(context.Background(), "GTX Usado")

	require.Len(t, res.Offers, 3)
	assert.Equal(t, "MLU1", res.Offers[0].ID)
	assert.Equal(t, "first copy", res.Offers[0].Title)
	assert.InDelta(t, 10.0, res.Offers[0].Price, 0.001)
	assert.Equal(t, "two", res.Offers[1].Title)
	assert.Equal(t, "MLU3", res.Offers[2].ID)
}

func TestPaginator_FetchOffers_SkipsEmptyIDs(t *testing.T) {
	t.Parallel()

	c := mocks.NewMockSearchClient(t)
	c.EXPECT().Search(mock.Anything, mock.Anything).Return(&meli.SearchResponse{Results: []meli.Result{
		{ID: "", Title: "no id"},
		{ID: "MLU5", Title: "ok"},
	}}, nil).Once()

	p := meli.NewPaginator(c, meli.WithPaginatorLogger(quietLogger()))
	res := p.FetchOffers(context.Background(), "x")

	require.Len(t, res.Offers, 1)
	assert.Equal(t, "MLU5", res.Offers[0].ID)
	assert.Equal(t, meli.StopShortPage, res.StoppedAt)
}

func TestPaginator_FetchOffers_MaxTwentyOnePages(t *testing.T) {
	t.Parallel()

	c := mocks.NewMockSearchClient(t)
	c.EXPECT().Search(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, r meli.SearchRequest) (*meli.SearchResponse, error) {
			assert.Equal(t, 50, r.Limit)
			return page("X", r.Offset, 50), nil
		}).Times(21)

	p := meli.NewPaginator(c, meli.WithPaginatorLogger(quietLogger()))
	res := p.FetchOffers(context.Background(), "x")

	assert.Equal(t, 21, res.PagesUsed)
	assert.Len(t, res.Offers, 21*50)
	assert.Equal(t, meli.StopMaxOffset, res.StoppedAt)
}

// Package meli provides a MercadoLibre search API client abstracted behind
// interfaces for testability, plus the paginator that turns a search term into
// a deduplicated list of offers.
package meli

import (
	"context"
)

// SearchRequest defines the parameters for a single search page.
type SearchRequest struct {
	Query  string
	Offset int
	Limit  int
}

// SearchResponse holds one page of search results.
type SearchResponse struct {
	Results []Result
	Total   int
	Offset  int
	Limit   int
}

// SearchClient defines the interface for querying one page of the search API.
type SearchClient interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)
}

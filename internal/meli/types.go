package meli

// Result represents a single item from the search response.
type Result struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Permalink string  `json:"permalink"`
	Currency  string  `json:"currency_id,omitempty"`
	Condition string  `json:"condition,omitempty"`
}

// Paging holds the pagination block of a search response.
type Paging struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type searchAPIResponse struct {
	SiteID  string   `json:"site_id"`
	Query   string   `json:"query"`
	Paging  Paging   `json:"paging"`
	Results []Result `json:"results"`
}

// Package main implements a mock MercadoLibre and Twilio API server for local
// development. It serves search results from a JSON fixture and accepts
// Twilio message posts so a full run can be exercised without real
// credentials or network access.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"
)

// twilioMaxBody mirrors the Messages API body limit.
const twilioMaxBody = 1600

type searchFixture struct {
	Results []json.RawMessage `json:"results"`
}

type searchPaging struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type searchAPIResponse struct {
	SiteID  string            `json:"site_id"`
	Query   string            `json:"query"`
	Paging  searchPaging      `json:"paging"`
	Results []json.RawMessage `json:"results"`
}

type resultSummary struct {
	Title string `json:"title"`
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-server/testdata/search_response.json", "path to search results fixture")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fixture, err := loadFixture(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixture", "results", len(fixture.Results))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, newMux(logger, fixture)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newMux(logger *slog.Logger, fixture *searchFixture) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /sites/{site}/search", searchHandler(logger, fixture))
	mux.HandleFunc("POST /2010-04-01/Accounts/{sid}/Messages.json", messagesHandler(logger))
	return mux
}

func loadFixture(path string) (*searchFixture, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var f searchFixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &f, nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}

func searchHandler(logger *slog.Logger, fixture *searchFixture) http.HandlerFunc {
	type indexedResult struct {
		raw   json.RawMessage
		title string
	}
	results := make([]indexedResult, 0, len(fixture.Results))
	for _, raw := range fixture.Results {
		var s resultSummary
		//nolint:errcheck,gosec // fixture data is trusted; title extraction is best-effort
		json.Unmarshal(raw, &s)
		results = append(results, indexedResult{raw: raw, title: strings.ToLower(s.Title)})
	}

	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		words := strings.Fields(strings.ToLower(query))

		limit := 50
		if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
			limit = v
		}
		offset := 0
		if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v >= 0 {
			offset = v
		}

		// Every word of the query must appear in the title.
		var matched []json.RawMessage
		for _, res := range results {
			if matchesAll(res.title, words) {
				matched = append(matched, res.raw)
			}
		}
		total := len(matched)

		if offset >= len(matched) {
			matched = nil
		} else {
			matched = matched[offset:min(offset+limit, len(matched))]
		}
		if matched == nil {
			matched = []json.RawMessage{}
		}

		writeJSON(w, http.StatusOK, searchAPIResponse{
			SiteID:  r.PathValue("site"),
			Query:   query,
			Paging:  searchPaging{Total: total, Offset: offset, Limit: limit},
			Results: matched,
		})
		logger.Info("search", "query", query, "matched", total, "returned", len(matched), "offset", offset)
	}
}

func matchesAll(title string, words []string) bool {
	for _, w := range words {
		if !strings.Contains(title, w) {
			return false
		}
	}
	return true
}

func messagesHandler(logger *slog.Logger) http.HandlerFunc {
	var seq atomic.Int64

	return func(w http.ResponseWriter, r *http.Request) {
		if _, _, ok := r.BasicAuth(); !ok {
			logger.Warn("message request missing Basic Auth header")
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"status":  http.StatusUnauthorized,
				"code":    20003,
				"message": "Authenticate",
			})
			return
		}

		if err := r.ParseForm(); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"status": http.StatusBadRequest, "code": 21602, "message": err.Error(),
			})
			return
		}

		body := r.PostForm.Get("Body")
		if n := utf8.RuneCountInString(body); n > twilioMaxBody {
			logger.Warn("message too long", "length", n)
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"status":    http.StatusBadRequest,
				"code":      21617,
				"message":   "The concatenated message body exceeds the 1600 character limit.",
				"more_info": "https://www.twilio.com/docs/errors/21617",
			})
			return
		}

		sid := fmt.Sprintf("SM%032d", seq.Add(1))
		writeJSON(w, http.StatusCreated, map[string]any{
			"sid":    sid,
			"status": "queued",
			"to":     r.PostForm.Get("To"),
			"from":   r.PostForm.Get("From"),
		})
		logger.Info("message accepted", "sid", sid, "to", r.PostForm.Get("To"), "length", utf8.RuneCountInString(body))
		logger.Debug("message body", "sid", sid, "body", body)
	}
}

package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func loadTestFixture(t *testing.T) *searchFixture {
	t.Helper()
	f, err := loadFixture(filepath.Join("testdata", "search_response.json"))
	if err != nil {
		t.Fatalf("loading fixture: %v", err)
	}
	return f
}

func TestLoadFixture(t *testing.T) {
	fixture := loadTestFixture(t)
	if len(fixture.Results) == 0 {
		t.Fatal("expected results in fixture")
	}
}

func TestLoadFixture_Missing(t *testing.T) {
	if _, err := loadFixture(filepath.Join("testdata", "nope.json")); err == nil {
		t.Fatal("expected error for missing fixture")
	}
}

func search(t *testing.T, mux http.Handler, rawQuery string) searchAPIResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/sites/MLU/search?"+rawQuery, http.NoBody)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
	}
	var resp searchAPIResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return resp
}

func TestSearchHandler_MatchesAllWords(t *testing.T) {
	mux := newMux(testLogger(), loadTestFixture(t))

	resp := search(t, mux, "q=RTX+Usado")
	if resp.Paging.Total != 4 {
		t.Errorf("total=%d, want 4", resp.Paging.Total)
	}
	if resp.SiteID != "MLU" {
		t.Errorf("site_id=%q, want MLU", resp.SiteID)
	}
	for _, raw := range resp.Results {
		var s resultSummary
		if err := json.Unmarshal(raw, &s); err != nil {
			t.Fatalf("decoding result: %v", err)
		}
		title := strings.ToLower(s.Title)
		if !strings.Contains(title, "rtx") || !strings.Contains(title, "usado") {
			t.Errorf("unexpected match %q", s.Title)
		}
	}
}

func TestSearchHandler_Pagination(t *testing.T) {
	mux := newMux(testLogger(), loadTestFixture(t))

	first := search(t, mux, "q=Usado&limit=3&offset=0")
	if len(first.Results) != 3 {
		t.Fatalf("page 1 len=%d, want 3", len(first.Results))
	}
	if first.Paging.Offset != 0 || first.Paging.Limit != 3 {
		t.Errorf("paging=%+v", first.Paging)
	}

	past := search(t, mux, "q=Usado&offset=500")
	if len(past.Results) != 0 {
		t.Errorf("past end len=%d, want 0", len(past.Results))
	}
	if past.Results == nil {
		t.Error("expected empty array, got null")
	}
}

func TestSearchHandler_NoMatches(t *testing.T) {
	mux := newMux(testLogger(), loadTestFixture(t))

	resp := search(t, mux, "q=Radeon")
	if resp.Paging.Total != 0 || len(resp.Results) != 0 {
		t.Errorf("total=%d len=%d, want 0", resp.Paging.Total, len(resp.Results))
	}
}

func postMessage(mux http.Handler, body string, auth bool) *httptest.ResponseRecorder {
	form := url.Values{"To": {"whatsapp:+1"}, "From": {"whatsapp:+2"}, "Body": {body}}
	req := httptest.NewRequest(http.MethodPost, "/2010-04-01/Accounts/AC123/Messages.json",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if auth {
		req.SetBasicAuth("AC123", "token")
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestMessagesHandler_Success(t *testing.T) {
	mux := newMux(testLogger(), &searchFixture{})

	w := postMessage(mux, "New offers found:\n", true)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusCreated)
	}

	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	sid, _ := resp["sid"].(string)
	if !strings.HasPrefix(sid, "SM") {
		t.Errorf("sid=%q, want SM prefix", sid)
	}
}

func TestMessagesHandler_MissingAuth(t *testing.T) {
	mux := newMux(testLogger(), &searchFixture{})

	w := postMessage(mux, "hi", false)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestMessagesHandler_TooLong(t *testing.T) {
	mux := newMux(testLogger(), &searchFixture{})

	w := postMessage(mux, strings.Repeat("é", twilioMaxBody+1), true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusBadRequest)
	}

	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["code"] != float64(21617) {
		t.Errorf("code=%v, want 21617", resp["code"])
	}
}

func TestMessagesHandler_AtLimit(t *testing.T) {
	mux := newMux(testLogger(), &searchFixture{})

	w := postMessage(mux, strings.Repeat("é", twilioMaxBody), true)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusCreated)
	}
}

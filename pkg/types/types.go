// Package domain defines the core business types for the offer tracker.
package domain

import (
	"slices"
	"time"
)

// Offer represents one marketplace listing as tracked by the store.
type Offer struct {
	ID        string    `json:"id"        db:"id"`
	Title     string    `json:"title"     db:"title"`
	Price     float64   `json:"price"     db:"price"`
	Permalink string    `json:"permalink" db:"permalink"`
	SeenAt    time.Time `json:"seen_at"   db:"timestamp"`
}

// IDSet is a set of offer IDs.
type IDSet map[string]struct{}

// NewIDSet returns a set holding ids.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts id into the set.
func (s IDSet) Add(id string) {
	s[id] = struct{}{}
}

// Has reports whether id is in the set.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of ids in the set.
func (s IDSet) Len() int {
	return len(s)
}

// Difference returns the ids in s that are not in other.
func (s IDSet) Difference(other IDSet) IDSet {
	out := make(IDSet)
	for id := range s {
		if !other.Has(id) {
			out.Add(id)
		}
	}
	return out
}

// Sorted returns the ids in lexical order.
func (s IDSet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// RunStatus is the outcome of a reconciliation run.
type RunStatus string

// Run status constants.
const (
	RunCompleted RunStatus = "completed"
	RunSkipped   RunStatus = "skipped"
	RunFailed    RunStatus = "failed"
)

// Run records a single reconciliation run.
type Run struct {
	ID          string    `json:"id"              db:"id"`
	StartedAt   time.Time `json:"started_at"      db:"started_at"`
	FinishedAt  time.Time `json:"finished_at"     db:"finished_at"`
	Status      RunStatus `json:"status"          db:"status"`
	Fetched     int       `json:"fetched"         db:"fetched"`
	New         int       `json:"new"             db:"new_offers"`
	Disappeared int       `json:"disappeared"     db:"disappeared"`
	Error       string    `json:"error,omitempty" db:"error_text"`
}

// RunResult is the outcome of one reconciliation pass, before notification.
type RunResult struct {
	RunID          string
	Fetched        int
	NewOffers      []Offer
	DisappearedIDs IDSet
	// Skipped is set when every term came back empty and the store was left untouched.
	Skipped bool
}

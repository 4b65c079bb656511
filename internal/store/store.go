// Package store defines the persistence abstraction for tracked offers.
// Business logic depends on the Store interface, never on a concrete backend,
// so the engine can be tested against mocks without a running database.
package store

import (
	"context"
	"errors"

	domain "github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/pkg/types"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

const (
	defaultListLimit = 50
	maxListLimit     = 1000
)

// Store defines all data access operations for the offer tracker.
type Store interface {
	// Init creates the schema if it does not exist. Safe to call repeatedly.
	Init(ctx context.Context) error

	// Offers
	ExistingIDs(ctx context.Context) (domain.IDSet, error)
	// InsertOffer is idempotent: an existing id is left untouched. On return
	// o.SeenAt holds the stored first-seen time.
	InsertOffer(ctx context.Context, o *domain.Offer) error
	// RemoveOffer is a no-op when id is absent.
	RemoveOffer(ctx context.Context, id string) error
	GetOffer(ctx context.Context, id string) (*domain.Offer, error)
	ListOffers(ctx context.Context, limit, offset int) ([]domain.Offer, int, error)

	// Runs
	RecordRun(ctx context.Context, r *domain.Run) error
	ListRuns(ctx context.Context, limit int) ([]domain.Run, error)

	// Health
	Ping(ctx context.Context) error
	Close() error
}

// normalizeLimit clamps a caller supplied page size.
func normalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultListLimit
	case limit > maxListLimit:
		return maxListLimit
	default:
		return limit
	}
}

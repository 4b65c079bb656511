package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// sqlite3 driver registers itself with database/sql.
	_ "github.com/mattn/go-sqlite3"

	domain "github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/pkg/types"
)

// SQLiteStore implements Store on a single SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path. The schema is
// created by Init.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// One writer at a time; also keeps ":memory:" databases on one connection.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging sqlite database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Init creates the offers and runs tables if they do not exist.
func (s *SQLiteStore) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("creating sqlite schema: %w", err)
	}
	return nil
}

// withTx runs fn inside a transaction that is committed when fn returns nil
// and rolled back otherwise.
func (s *SQLiteStore) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rolling back: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ExistingIDs returns the ids of every stored offer.
func (s *SQLiteStore) ExistingIDs(ctx context.Context) (domain.IDSet, error) {
	rows, err := s.db.QueryContext(ctx, sqliteSelectOfferIDs)
	if err != nil {
		return nil, fmt.Errorf("querying offer ids: %w", err)
	}
	defer func() { _ = rows.Close() }()

	ids := domain.NewIDSet()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning offer id: %w", err)
		}
		ids.Add(id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating offer ids: %w", err)
	}
	return ids, nil
}

// InsertOffer inserts o unless its id is already stored.
func (s *SQLiteStore) InsertOffer(ctx context.Context, o *domain.Offer) error {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, sqliteInsertOffer, o.ID, o.Title, o.Price, o.Permalink); err != nil {
			return err
		}
		return tx.QueryRowContext(ctx, sqliteSelectOfferTimestamp, o.ID).Scan(&o.SeenAt)
	})
	if err != nil {
		return fmt.Errorf("inserting offer %s: %w", o.ID, err)
	}
	return nil
}

// RemoveOffer deletes the offer with id, if present.
func (s *SQLiteStore) RemoveOffer(ctx context.Context, id string) error {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, sqliteDeleteOffer, id)
		return err
	})
	if err != nil {
		return fmt.Errorf("removing offer %s: %w", id, err)
	}
	return nil
}

// GetOffer retrieves one offer by id.
func (s *SQLiteStore) GetOffer(ctx context.Context, id string) (*domain.Offer, error) {
	o := &domain.Offer{}
	err := scanOffer(s.db.QueryRowContext(ctx, sqliteGetOffer, id), o)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting offer %s: %w", id, err)
	}
	return o, nil
}

// ListOffers returns a page of offers, newest first, and the total count.
func (s *SQLiteStore) ListOffers(ctx context.Context, limit, offset int) ([]domain.Offer, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, sqliteCountOffers).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting offers: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, sqliteListOffers, normalizeLimit(limit), max(offset, 0))
	if err != nil {
		return nil, 0, fmt.Errorf("querying offers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var offers []domain.Offer
	for rows.Next() {
		var o domain.Offer
		if err := scanOffer(rows, &o); err != nil {
			return nil, 0, fmt.Errorf("scanning offer: %w", err)
		}
		offers = append(offers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating offers: %w", err)
	}

	return offers, total, nil
}

// RecordRun stores a finished run.
func (s *SQLiteStore) RecordRun(ctx context.Context, r *domain.Run) error {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, sqliteInsertRun,
			r.ID, r.StartedAt.UTC(), r.FinishedAt.UTC(), string(r.Status),
			r.Fetched, r.New, r.Disappeared, r.Error,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("recording run %s: %w", r.ID, err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]domain.Run, error) {
	rows, err := s.db.QueryContext(ctx, sqliteListRuns, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []domain.Run
	for rows.Next() {
		var r domain.Run
		if err := scanRun(rows, &r); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

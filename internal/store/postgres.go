package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/pkg/types"
)

const defaultPoolSize = 4

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
// poolSize <= 0 falls back to the default.
func NewPostgresStore(ctx context.Context, connString string, poolSize int) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}
	cfg.MaxConns = int32(poolSize) //nolint:gosec // bounded by config validation

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close shuts down the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Init applies pending schema migrations.
func (s *PostgresStore) Init(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// ExistingIDs returns the ids of every stored offer.
func (s *PostgresStore) ExistingIDs(ctx context.Context) (domain.IDSet, error) {
	rows, err := s.pool.Query(ctx, pgSelectOfferIDs)
	if err != nil {
		return nil, fmt.Errorf("querying offer ids: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scanning offer ids: %w", err)
	}

	return domain.NewIDSet(ids...), nil
}

// InsertOffer inserts o unless its id is already stored.
func (s *PostgresStore) InsertOffer(ctx context.Context, o *domain.Offer) error {
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, pgInsertOffer, o.ID, o.Title, o.Price, o.Permalink); err != nil {
			return err
		}
		return tx.QueryRow(ctx, pgSelectOfferTimestamp, o.ID).Scan(&o.SeenAt)
	})
	if err != nil {
		return fmt.Errorf("inserting offer %s: %w", o.ID, err)
	}
	return nil
}

// RemoveOffer deletes the offer with id, if present.
func (s *PostgresStore) RemoveOffer(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, pgDeleteOffer, id); err != nil {
		return fmt.Errorf("removing offer %s: %w", id, err)
	}
	return nil
}

// GetOffer retrieves one offer by id.
func (s *PostgresStore) GetOffer(ctx context.Context, id string) (*domain.Offer, error) {
	o := &domain.Offer{}
	err := scanOffer(s.pool.QueryRow(ctx, pgGetOffer, id), o)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting offer %s: %w", id, err)
	}
	return o, nil
}

// ListOffers returns a page of offers, newest first, and the total count.
func (s *PostgresStore) ListOffers(ctx context.Context, limit, offset int) ([]domain.Offer, int, error) {
	var total int
	if err := s.pool.QueryRow(ctx, pgCountOffers).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting offers: %w", err)
	}

	rows, err := s.pool.Query(ctx, pgListOffers, normalizeLimit(limit), max(offset, 0))
	if err != nil {
		return nil, 0, fmt.Errorf("querying offers: %w", err)
	}
	defer rows.Close()

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
func (s *PostgresStore) RecordRun(ctx context.Context, r *domain.Run) error {
	_, err := s.pool.Exec(ctx, pgInsertRun, pgx.NamedArgs{
		"id":          r.ID,
		"started_at":  r.StartedAt,
		"finished_at": r.FinishedAt,
		"status":      string(r.Status),
		"fetched":     r.Fetched,
		"new_offers":  r.New,
		"disappeared": r.Disappeared,
		"error_text":  r.Error,
	})
	if err != nil {
		return fmt.Errorf("recording run %s: %w", r.ID, err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *PostgresStore) ListRuns(ctx context.Context, limit int) ([]domain.Run, error) {
	rows, err := s.pool.Query(ctx, pgListRuns, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

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

// scannable abstracts pgx.Row, pgx.Rows and *sql.Row/*sql.Rows for reuse.
type scannable interface {
	Scan(dest ...any) error
}

func scanOffer(row scannable, o *domain.Offer) error {
	return row.Scan(&o.ID, &o.Title, &o.Price, &o.Permalink, &o.SeenAt)
}

func scanRun(row scannable, r *domain.Run) error {
	return row.Scan(
		&r.ID, &r.StartedAt, &r.FinishedAt, &r.Status,
		&r.Fetched, &r.New, &r.Disappeared, &r.Error,
	)
}

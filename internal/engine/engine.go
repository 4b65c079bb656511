// Package engine reconciles marketplace search results against the offer
// store and announces new offers.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/internal/meli"
	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/internal/metrics"
	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/internal/notify"
	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/internal/store"
	domain "github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/pkg/types"
)

const tracerName = "github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/internal/engine"

// ErrRunInProgress is returned when a run is requested while another is
// still executing.
var ErrRunInProgress = errors.New("a run is already in progress")

// Fetcher returns every offer listed for one search term. A failed fetch
// still carries the offers gathered before the failure.
type Fetcher interface {
	FetchOffers(ctx context.Context, term string) *meli.FetchResult
}

// Engine orchestrates fetching, reconciliation, and notification.
type Engine struct {
	store    store.Store
	fetcher  Fetcher
	notifier notify.Notifier
	terms    []string
	log      *slog.Logger
	tracer   trace.Tracer

	// mu serializes runs; scheduled and API triggered runs never overlap.
	mu sync.Mutex
}

// NewEngine creates a new Engine with injected dependencies.
func NewEngine(
	s store.Store,
	f Fetcher,
	n notify.Notifier,
	terms []string,
	opts ...EngineOption,
) *Engine {
	eng := &Engine{
		store:    s,
		fetcher:  f,
		notifier: n,
		terms:    terms,
		log:      slog.Default(),
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(eng)
	}
	return eng
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithTracerProvider sets the provider spans are created from. The global
// provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) EngineOption {
	return func(e *Engine) {
		e.tracer = tp.Tracer(tracerName)
	}
}

// Terms returns the configured search terms.
func (eng *Engine) Terms() []string {
	return eng.terms
}

// RunOnce fetches every term and brings the store in line with the merged
// results. It does not notify or record the run.
func (eng *Engine) RunOnce(ctx context.Context) (*domain.RunResult, error) {
	if !eng.mu.TryLock() {
		return nil, ErrRunInProgress
	}
	defer eng.mu.Unlock()

	return eng.reconcile(ctx, eng.log)
}

// RunCycle performs one full job: reconcile, announce new offers, and record
// the run. Notification failures are logged and never fail the run.
func (eng *Engine) RunCycle(ctx context.Context) (*domain.RunResult, error) {
	if !eng.mu.TryLock() {
		return nil, ErrRunInProgress
	}
	defer eng.mu.Unlock()

	start := time.Now()
	run := &domain.Run{
		ID:        uuid.NewString(),
		StartedAt: start.UTC(),
	}

	ctx, span := eng.tracer.Start(ctx, "engine.RunCycle", trace.WithAttributes(
		attribute.String("run.id", run.ID),
		attribute.Int("run.terms", len(eng.terms)),
	))
	defer span.End()

	log := eng.log.With("run_id", run.ID)
	log.Info("run started", "terms", len(eng.terms))

	res, err := eng.reconcile(ctx, log)

	switch {
	case err != nil:
		run.Status = domain.RunFailed
		run.Error = err.Error()
	case res.Skipped:
		run.Status = domain.RunSkipped
	default:
		run.Status = domain.RunCompleted
		run.Fetched = res.Fetched
		run.New = len(res.NewOffers)
		run.Disappeared = res.DisappearedIDs.Len()
	}

	if err == nil {
		if len(res.NewOffers) > 0 {
			if nErr := eng.notifier.Notify(ctx, res.NewOffers); nErr != nil {
				log.Error("notification failed", "error", nErr)
			}
		} else {
			log.Info("no new offers to send notification for")
		}
	}

	run.FinishedAt = time.Now().UTC()

	metrics.RunDuration.Observe(time.Since(start).Seconds())
	metrics.RunsTotal.WithLabelValues(string(run.Status)).Inc()
	metrics.LastRunTimestamp.SetToCurrentTime()

	// Record even when ctx was canceled mid-run.
	if recErr := eng.store.RecordRun(context.WithoutCancel(ctx), run); recErr != nil {
		log.Error("recording run", "error", recErr)
	}

	span.SetAttributes(attribute.String("run.status", string(run.Status)))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "run failed")
		log.Error("run failed", "error", err, "duration", time.Since(start))
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("run.fetched", run.Fetched),
		attribute.Int("run.new", run.New),
		attribute.Int("run.disappeared", run.Disappeared),
	)

	res.RunID = run.ID
	log.Info("run finished",
		"status", run.Status,
		"fetched", run.Fetched,
		"new", run.New,
		"disappeared", run.Disappeared,
		"duration", time.Since(start),
	)
	return res, nil
}

// reconcile implements the fetch, merge, and diff pass. Callers hold mu.
func (eng *Engine) reconcile(ctx context.Context, log *slog.Logger) (*domain.RunResult, error) {
	merged := make(map[string]domain.Offer)
	var order []string

	for _, term := range eng.terms {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run canceled: %w", err)
		}

		res := eng.fetchTerm(ctx, term)
		if res.Err != nil {
			log.Warn("term fetch incomplete, keeping partial results",
				"term", term,
				"offers", len(res.Offers),
				"error", res.Err,
			)
		}
		log.Info("term returned offers", "term", term, "offers", len(res.Offers))

		// A later term's copy of a shared id replaces the earlier one.
		for _, o := range res.Offers {
			if _, seen := merged[o.ID]; !seen {
				order = append(order, o.ID)
			}
			merged[o.ID] = o
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run canceled: %w", err)
	}

	if len(merged) == 0 {
		log.Warn("no offers fetched for any term, skipping this run")
		return &domain.RunResult{Skipped: true, DisappearedIDs: domain.NewIDSet()}, nil
	}

	existing, err := eng.store.ExistingIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading existing offers: %w", err)
	}

	current := domain.NewIDSet(order...)

	var newOffers []domain.Offer
	for _, id := range order {
		if !existing.Has(id) {
			newOffers = append(newOffers, merged[id])
		}
	}
	disappeared := existing.Difference(current)

	log.Info("offers diffed",
		"current", current.Len(),
		"existing", existing.Len(),
		"new", len(newOffers),
		"disappeared", disappeared.Len(),
	)

	for i := range newOffers {
		if err := eng.store.InsertOffer(ctx, &newOffers[i]); err != nil {
			return nil, fmt.Errorf("adding new offers: %w", err)
		}
	}
	metrics.OffersNewTotal.Add(float64(len(newOffers)))

	for _, id := range disappeared.Sorted() {
		if err := eng.store.RemoveOffer(ctx, id); err != nil {
			return nil, fmt.Errorf("removing disappeared offers: %w", err)
		}
	}
	metrics.OffersDisappearedTotal.Add(float64(disappeared.Len()))
	metrics.OffersTracked.Set(float64(current.Len()))

	return &domain.RunResult{
		Fetched:        len(merged),
		NewOffers:      newOffers,
		DisappearedIDs: disappeared,
	}, nil
}

func (eng *Engine) fetchTerm(ctx context.Context, term string) *meli.FetchResult {
	ctx, span := eng.tracer.Start(ctx, "engine.fetchTerm", trace.WithAttributes(
		attribute.String("search.term", term),
	))
	defer span.End()

	res := eng.fetcher.FetchOffers(ctx, term)
	span.SetAttributes(
		attribute.Int("search.offers", len(res.Offers)),
		attribute.Int("search.pages", res.PagesUsed),
	)
	if res.Err != nil {
		span.RecordError(res.Err)
		span.SetStatus(codes.Error, "fetch incomplete")
	}
	return res
}

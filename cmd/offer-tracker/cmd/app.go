package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/internal/config"
	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/internal/engine"
	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/internal/meli"
	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/internal/notify"
	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/internal/store"
	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/internal/tracing"
	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/pkg/logger"
)

// app holds the wired components shared by serve and run.
type app struct {
	cfg      *config.Config
	log      *slog.Logger
	store    store.Store
	engine   *engine.Engine
	shutdown tracing.ShutdownFunc
}

func newLogger(cfg *config.Config) *slog.Logger {
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(log)
	return log
}

// openStore connects to the configured backend and ensures the schema.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (store.Store, error) {
	s, err := store.Open(ctx, &cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", cfg.Store.Driver, err)
	}
	if err := s.Init(ctx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("initializing %s store: %w", cfg.Store.Driver, err)
	}
	log.Info("store ready", "driver", cfg.Store.Driver)
	return s, nil
}

func newSearchClient(cfg *config.SearchConfig) *meli.HTTPClient {
	opts := []meli.Option{
		meli.WithBaseURL(cfg.BaseURL),
		meli.WithSite(cfg.Site),
		meli.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	}
	if cfg.AccessToken != "" {
		opts = append(opts, meli.WithAccessToken(cfg.AccessToken))
	}
	if cfg.RateLimit.PerSecond > 0 {
		opts = append(opts, meli.WithRateLimiter(
			meli.NewRateLimiter(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst),
		))
	}
	return meli.NewHTTPClient(opts...)
}

// newApp builds the full pipeline from cfg. Close must be called when done.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	log := newLogger(cfg)

	shutdown, err := tracing.Setup(ctx, &cfg.Tracing, Version, log)
	if err != nil {
		return nil, err
	}

	s, err := openStore(ctx, cfg, log)
	if err != nil {
		_ = shutdown(context.WithoutCancel(ctx))
		return nil, err
	}

	n, err := notify.New(&cfg.Notifications, log)
	if err != nil {
		_ = s.Close()
		_ = shutdown(context.WithoutCancel(ctx))
		return nil, fmt.Errorf("creating notifier: %w", err)
	}
	log.Info("notifier ready", "backend", cfg.Notifications.Backend)

	paginator := meli.NewPaginator(newSearchClient(&cfg.Search),
		meli.WithPageSize(cfg.Search.PageSize),
		meli.WithMaxOffset(cfg.Search.MaxOffset),
		meli.WithPaginatorLogger(log),
	)

	eng := engine.NewEngine(s, paginator, n, cfg.Search.Terms, engine.WithLogger(log))

	return &app{cfg: cfg, log: log, store: s, engine: eng, shutdown: shutdown}, nil
}

// Close flushes traces and closes the store.
func (a *app) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return errors.Join(a.shutdown(ctx), a.store.Close())
}

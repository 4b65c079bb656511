package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/api/openapi"
	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/internal/api/handlers"
	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/internal/api/middleware"
	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/internal/engine"
	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/internal/store"
)

const shutdownTimeout = 10 * time.Second

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the scheduler and, when enabled, the API server",
		Long: "Run a reconciliation cycle immediately and then every schedule.interval\n" +
			"until interrupted. With server.enabled the HTTP API is served as well.",
		RunE: runServe,
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	sched, err := engine.NewScheduler(a.engine, cfg.Schedule.Interval, a.log,
		engine.WithRunOnStart(*cfg.Schedule.RunOnStart),
	)
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}

	var e *echo.Echo
	if cfg.Server.Enabled {
		e = newServer(a.engine, a.store, a.log)
		e.Server.ReadTimeout = cfg.Server.ReadTimeout
		e.Server.WriteTimeout = cfg.Server.WriteTimeout

		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		a.log.Info("starting server", "addr", addr)

		go func() {
			if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.log.Error("server error", "error", err)
				stop()
			}
		}()
	}

	a.log.Info("scheduler configured",
		"interval", cfg.Schedule.Interval,
		"terms", len(cfg.Search.Terms),
	)
	sched.Start()

	<-ctx.Done()
	a.log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if e != nil {
		if err := e.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("shutting down server: %w", err))
		}
	}

	select {
	case <-sched.Stop().Done():
	case <-shutdownCtx.Done():
		errs = append(errs, errors.New("timed out waiting for the running cycle to stop"))
	}

	a.log.Info("stopped")
	return errors.Join(errs...)
}

// newServer builds the echo instance with middleware, probes, metrics and
// the huma API routes.
func newServer(eng *engine.Engine, s store.Store, log *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(log))
	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Metrics())

	health := handlers.NewHealthHandler(s)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("offer-tracker", Version))
	handlers.RegisterTriggerRoutes(api, handlers.NewRunHandler(eng))
	handlers.RegisterOfferRoutes(api, handlers.NewOffersHandler(s))
	handlers.RegisterRunRoutes(api, handlers.NewRunsHandler(s))
	openapi.RegisterRoutes(e, api)

	return e
}

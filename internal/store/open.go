package store

import (
	"context"
	"fmt"

	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/internal/config"
)

// Open connects to the backend selected by cfg.Driver. The caller is
// responsible for calling Init and Close.
func Open(ctx context.Context, cfg *config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		return NewSQLiteStore(ctx, cfg.SQLite.Path)
	case config.DriverPostgres:
		return NewPostgresStore(ctx, cfg.Postgres.DSN(), cfg.Postgres.PoolSize)
	case config.DriverRedis:
		return NewRedisStore(ctx, cfg.Redis.URL, cfg.Redis.KeyPrefix)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// Package dbx builds the shared pgx connection pool used by the API and
// the background workers.
package dbx

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"farm-management-system/shared/config"
)

// NewPool parses DATABASE_URL and applies the pool limits from config.
// The pool connects lazily; use Ping to verify connectivity.
func NewPool(cfg config.Config) (*pgxpool.Pool, error) {
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	applyLimits(poolCfg, cfg)

	return pgxpool.NewWithConfig(context.Background(), poolCfg)
}

func applyLimits(poolCfg *pgxpool.Config, cfg config.Config) {
	poolCfg.MaxConns = int32(cfg.DBMaxConns)
	poolCfg.MinConns = int32(cfg.DBMinConns)
	poolCfg.MaxConnIdleTime = time.Duration(cfg.DBConnMaxIdleSec) * time.Second
	poolCfg.MaxConnLifetime = time.Duration(cfg.DBConnMaxLifeSec) * time.Second
	poolCfg.HealthCheckPeriod = 30 * time.Second
}

// Ping acquires a connection and round-trips it. Backs /readyz.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	if pool == nil {
		return errors.New("db pool is nil")
	}
	return pool.Ping(ctx)
}

// Package postgres stores combatant records in PostgreSQL using pgx v5, with
// the schema shipped as embedded golang-migrate migrations.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/cory-johannsen/clash/internal/config"
)

// Options tunes Open.
type Options struct {
	// AutoMigrate applies pending migrations before the pool is created.
	AutoMigrate bool
	// Logger receives migration and pool records. Nil disables logging.
	Logger *zap.Logger
}

// Pool is the connection pool behind the combatant store.
type Pool struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// Open connects to the database described by cfg, migrating it first when
// opts.AutoMigrate is set.
//
// Precondition: cfg must contain valid database connection parameters.
// Postcondition: Returns a pinged Pool or a non-nil error. A failed
// migration leaves no pool open.
func Open(ctx context.Context, cfg config.DatabaseConfig, opts Options) (*Pool, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if opts.AutoMigrate {
		res, err := Migrate(cfg.DSN(), 0)
		if err != nil {
			return nil, err
		}
		logger.Info("schema migrated",
			zap.Uint("version", res.Version),
			zap.Bool("changed", res.Changed),
		)
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.ConnConfig.RuntimeParams["application_name"] = "clash"

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	logger.Info("database connected",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Name),
		zap.Int32("max_conns", cfg.MaxConns),
	)
	return &Pool{pool: pool, logger: logger}, nil
}

// Health pings the database and logs pool saturation.
//
// Precondition: The pool must not be closed.
// Postcondition: Returns nil if the database responds within timeout.
func (p *Pool) Health(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := p.pool.Ping(ctx); err != nil {
		return err
	}
	stat := p.pool.Stat()
	p.logger.Debug("database healthy",
		zap.Int32("total_conns", stat.TotalConns()),
		zap.Int32("idle_conns", stat.IdleConns()),
		zap.Int32("acquired_conns", stat.AcquiredConns()),
	)
	return nil
}

// Combatants returns a repository over this pool.
func (p *Pool) Combatants() *CombatantRepository {
	return NewCombatantRepository(p.pool)
}

// Close releases all pool resources.
func (p *Pool) Close() {
	p.pool.Close()
}

// DB returns the underlying pgxpool.Pool.
func (p *Pool) DB() *pgxpool.Pool {
	return p.pool
}

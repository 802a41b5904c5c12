package postgres

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"route-engine/internal/pkg/config"
	"route-engine/pkg/logger"
	retrierconfig "route-engine/pkg/retrier"
	"route-engine/pkg/retrier/backoff_adapter"
)

const (
	applicationName = "route-engine"

	maxConnLifetime = time.Hour
	maxConnIdleTime = 10 * time.Minute

	// claim и завершение маршрута берут блокировку строки маршрута,
	// конкурирующий запрос не должен висеть на ней дольше этого
	lockTimeout = "3s"

	pingInitialInterval = 2 * time.Second
	pingMaxInterval     = 30 * time.Second
	pingMaxElapsedTime  = 2 * time.Minute
)

func NewConnPool(ctx context.Context, log logger.Logger, cfg *config.Database) (*pgxpool.Pool, error) {
	poolCfg, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connection pool: %w", err)
	}

	dbLog := log.With(
		logger.NewField("host", cfg.Host),
		logger.NewField("db", cfg.DBName),
	)

	if err := ping(ctx, dbLog, pool); err != nil {
		pool.Close()
		return nil, err
	}

	if cfg.Migrate {
		if err := Migrate(ctx, dbLog, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("database migrations: %w", err)
		}
	}

	return pool, nil
}

// poolConfig все времена в сессии UTC: дедлайны claim и окна доставки хранятся как timestamptz.
func poolConfig(cfg *config.Database) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = maxConnLifetime
	poolCfg.MaxConnIdleTime = maxConnIdleTime

	params := poolCfg.ConnConfig.RuntimeParams
	params["application_name"] = applicationName
	params["timezone"] = "UTC"
	params["lock_timeout"] = lockTimeout

	return poolCfg, nil
}

func dsn(cfg *config.Database) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   cfg.Host + ":" + cfg.Port,
		Path:   "/" + cfg.DBName,
	}
	if cfg.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {cfg.SSLMode}}.Encode()
	}
	return u.String()
}

func ping(ctx context.Context, log logger.Logger, pool *pgxpool.Pool) error {
	retrier := backoff_adapter.New(retrierconfig.Config{
		InitialInterval: pingInitialInterval,
		MaxInterval:     pingMaxInterval,
		MaxElapsedTime:  pingMaxElapsedTime,
		Randomization:   0.5,
		Multiplier:      2,
		OnRetry: func(err error, wait time.Duration) {
			log.Warn("database not ready, retrying",
				logger.NewField("error", err),
				logger.NewField("wait", wait.String()),
			)
		},
	})

	err := retrier.ExecuteWithContext(ctx, pool.Ping)
	if err != nil {
		log.Error("database connection failed", logger.NewField("error", err))
		return fmt.Errorf("ping database: %w", err)
	}

	log.Info("database connection established")
	return nil
}

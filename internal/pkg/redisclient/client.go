package redisclient

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"route-engine/internal/pkg/config"
	"route-engine/pkg/logger"
	retrierconfig "route-engine/pkg/retrier"
	"route-engine/pkg/retrier/backoff_adapter"
)

const (
	dialTimeout  = 2 * time.Second
	readTimeout  = 200 * time.Millisecond
	writeTimeout = 200 * time.Millisecond

	initialInterval = 500 * time.Millisecond
	maxInterval     = 5 * time.Second
	maxElapsedTime  = 30 * time.Second
	randomization   = 0.5
	multiplier      = 2
)

// NewClient клиент кэша расстояний. Перед возвратом проверяет соединение с ретраями.
func NewClient(ctx context.Context, log logger.Logger, cfg *config.Redis) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  dialTimeout,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	})

	redisLog := log.With(
		logger.NewField("addr", cfg.Addr),
		logger.NewField("db", cfg.DB),
	)

	if err := ping(ctx, redisLog, client); err != nil {
		closeErr := client.Close()
		if closeErr != nil {
			redisLog.Error("failed to close redis client", logger.NewField("error", closeErr))
		}
		return nil, fmt.Errorf("redis connection: %w", err)
	}
	return client, nil
}

func ping(ctx context.Context, log logger.Logger, client *redis.Client) error {
	retrier := backoff_adapter.New(retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
	})

	var attempt uint64
	err := retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		return client.Ping(ctx).Err()
	})
	if err != nil {
		log.With(
			logger.NewField("error", err),
			logger.NewField("attempts", attempt),
		).Error("redis connection failed after retries")
		return err
	}

	log.With(
		logger.NewField("attempts", attempt),
	).Info("redis connection established")
	return nil
}

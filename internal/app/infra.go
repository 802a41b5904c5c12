package app

import (
	"context"
	"fmt"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"route-engine/internal/gateway/distance"
	"route-engine/internal/gateway/notifier"
	"route-engine/internal/pkg/config"
	"route-engine/internal/pkg/kafka"
	"route-engine/internal/pkg/postgres"
	"route-engine/internal/pkg/redisclient"
	"route-engine/pkg/logger"
)

// NewStorage выбирает драйвер хранения по конфигу. Возвращаемая функция
// освобождает соединения.
func NewStorage(ctx context.Context, log logger.Logger, cfg *config.Config) (*Storage, func(), error) {
	if cfg.Storage.Driver == config.StorageMemory {
		log.Warn("using in-memory storage, data is lost on restart")
		return NewMemoryStorage(), func() {}, nil
	}

	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("database: %w", err)
	}
	return NewPostgresStorage(log, pool, pgxv5.DefaultCtxGetter), pool.Close, nil
}

// NewDistance собирает цепочку: оценка по координатам, кэш в Redis
// (если задан REDIS_ADDR), таймаут и фоллбэк.
func NewDistance(ctx context.Context, log logger.Logger, cfg *config.Config) (*distance.Gateway, func(), error) {
	var (
		provider distance.Provider = distance.NewEstimator(cfg.Distance.RoadFactor)
		cleanup                    = func() {}
	)

	if cfg.Redis.Addr != "" {
		client, err := redisclient.NewClient(ctx, log, &cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("distance cache: %w", err)
		}
		provider = distance.NewCache(client, provider, cfg.Redis.CacheTTL)
		cleanup = func() {
			if err := client.Close(); err != nil {
				log.Error("failed to close redis client", logger.NewField("error", err))
			}
		}
	}

	return distance.New(log, provider, cfg.Distance.Timeout, cfg.Distance.DefaultMiles), cleanup, nil
}

// NewNotifier публикует события в Kafka, если задан топик уведомлений,
// иначе только пишет их в лог.
func NewNotifier(ctx context.Context, log logger.Logger, cfg *config.Config) (Notifier, func(), error) {
	if cfg.Kafka.NotificationsTopic == "" || cfg.Kafka.Brokers == "" {
		return notifier.NewLog(log), func() {}, nil
	}

	producer, err := kafka.NewSyncProducer(ctx, log, &cfg.Kafka, kafka.Brokers(cfg.Kafka.Brokers))
	if err != nil {
		return nil, nil, fmt.Errorf("notifications producer: %w", err)
	}

	cleanup := func() {
		if err := producer.Close(); err != nil {
			log.Error("failed to close kafka producer", logger.NewField("error", err))
		}
	}
	return notifier.NewKafka(log, producer, cfg.Kafka.NotificationsTopic), cleanup, nil
}

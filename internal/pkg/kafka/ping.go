package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"route-engine/pkg/logger"
	retrierconfig "route-engine/pkg/retrier"
	"route-engine/pkg/retrier/backoff_adapter"
)

const (
	pingInitialInterval = time.Second
	pingMaxInterval     = 30 * time.Second
	pingMaxElapsedTime  = 2 * time.Minute
	pingRandomization   = 0.5
	pingMultiplier      = 2
)

// pingKafka ждет, пока брокеры ответят метаданными по нужным топикам.
// Топики без метаданных считаются недоступностью и ретраятся.
func pingKafka(ctx context.Context, log logger.Logger, brokers, topics []string, cfg *sarama.Config) error {
	retrier := backoff_adapter.New(retrierconfig.Config{
		InitialInterval: pingInitialInterval,
		MaxInterval:     pingMaxInterval,
		MaxElapsedTime:  pingMaxElapsedTime,
		Randomization:   pingRandomization,
		Multiplier:      pingMultiplier,
		OnRetry: func(err error, wait time.Duration) {
			log.Warn("kafka not ready, retrying",
				logger.NewField("error", err),
				logger.NewField("wait", wait.String()),
			)
		},
	})

	var attempt uint64
	err := retrier.ExecuteWithContext(ctx, func(context.Context) error {
		attempt++
		client, err := sarama.NewClient(brokers, cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := client.Close(); err != nil {
				log.Error("failed to close kafka ping client", logger.NewField("error", err))
			}
		}()
		return client.RefreshMetadata(topics...)
	})
	if err != nil {
		log.With(
			logger.NewField("error", err),
			logger.NewField("attempts", attempt),
		).Error("Kafka connection failed after retries")
		return fmt.Errorf("failed to connect to Kafka: %w", err)
	}

	log.With(
		logger.NewField("attempts", attempt),
	).Info("Kafka connection established")
	return nil
}

func parseVersion(raw string) (sarama.KafkaVersion, error) {
	version, err := sarama.ParseKafkaVersion(raw)
	if err != nil {
		return sarama.KafkaVersion{}, fmt.Errorf("parse kafka version %q: %w", raw, err)
	}
	return version, nil
}

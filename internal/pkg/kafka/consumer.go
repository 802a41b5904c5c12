package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"route-engine/internal/pkg/config"
	"route-engine/pkg/logger"
)

const (
	sessionTimeout    = 20 * time.Second
	heartbeatInterval = 3 * time.Second
	// пауза перед повторным Consume после ошибки группы (ребаланс, потеря координатора)
	consumeRetryDelay = 2 * time.Second
)

// Consumer группа потребителей событий заказов. Оффсет коммитит хендлер
// через MarkMessage, поэтому сообщение, упавшее по таймауту, будет прочитано снова.
type Consumer struct {
	log     logger.Logger
	group   sarama.ConsumerGroup
	topics  []string
	handler sarama.ConsumerGroupHandler
}

func newConsumerConfig(cfg *config.Kafka) (*sarama.Config, error) {
	version, err := parseVersion(cfg.Sarama.Version)
	if err != nil {
		return nil, err
	}

	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = version
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = cfg.Sarama.ConsumerOffsetsAutocommit
	saramaConfig.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategySticky()}
	saramaConfig.Consumer.Group.Session.Timeout = sessionTimeout
	saramaConfig.Consumer.Group.Heartbeat.Interval = heartbeatInterval
	saramaConfig.Consumer.Return.Errors = true
	return saramaConfig, nil
}

func NewConsumer(ctx context.Context, log logger.Logger, cfg *config.Kafka, brokers []string, groupID string, topics []string, handler sarama.ConsumerGroupHandler) (*Consumer, error) {
	saramaConfig, err := newConsumerConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("consumer config: %w", err)
	}

	kafkaLog := log.With(
		logger.NewField("brokers", brokers),
		logger.NewField("group", groupID),
		logger.NewField("topics", topics),
	)

	if err := pingKafka(ctx, kafkaLog, brokers, topics, saramaConfig); err != nil {
		return nil, fmt.Errorf("kafka connection: %w", err)
	}

	group, err := sarama.NewConsumerGroup(brokers, groupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &Consumer{
		log:     kafkaLog,
		group:   group,
		topics:  topics,
		handler: handler,
	}, nil
}

// Start блокирует до отмены ctx или закрытия группы. Ошибки сессии
// логируются и Consume запускается заново.
func (c *Consumer) Start(ctx context.Context) error {
	go c.drainErrors()

	for {
		err := c.group.Consume(ctx, c.topics, c.handler)
		switch {
		case errors.Is(err, sarama.ErrClosedConsumerGroup):
			return err
		case ctx.Err() != nil:
			return ctx.Err()
		case err != nil:
			c.log.Warn("consumer session ended with error, rejoining",
				logger.NewField("error", err),
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(consumeRetryDelay):
			}
		}
	}
}

func (c *Consumer) drainErrors() {
	for err := range c.group.Errors() {
		c.log.Error("consumer group error", logger.NewField("error", err))
	}
}

func (c *Consumer) Close() error {
	return c.group.Close()
}

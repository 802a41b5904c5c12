package notifier

import (
	"context"
	"encoding/json"

	"github.com/IBM/sarama"
	"route-engine/internal/entities"
	"route-engine/pkg/logger"
)

// Kafka публикует события в топик уведомлений. Ошибка отправки только
// логируется и не отменяет переход состояния.
type Kafka struct {
	producer producer
	topic    string
	log      notifierLogger
}

func NewKafka(log logger.Logger, producer producer, topic string) *Kafka {
	return &Kafka{
		producer: producer,
		topic:    topic,
		log:      log.With(logger.NewField("notifier", "kafka"), logger.NewField("topic", topic)),
	}
}

func (k *Kafka) Publish(_ context.Context, events ...entities.Event) {
	for _, ev := range events {
		payload, err := json.Marshal(toMessage(ev))
		if err != nil {
			k.log.Warn("encode event", logger.NewField("type", string(ev.Type)), logger.NewField("error", err))
			EventsPublishedTotal.WithLabelValues(string(ev.Type), "error").Inc()
			continue
		}

		msg := &sarama.ProducerMessage{
			Topic: k.topic,
			Key:   sarama.StringEncoder(partitionKey(ev)),
			Value: sarama.ByteEncoder(payload),
		}
		if _, _, err := k.producer.SendMessage(msg); err != nil {
			k.log.Warn("publish event",
				logger.NewField("type", string(ev.Type)),
				logger.NewField("route", ev.RouteID),
				logger.NewField("order", ev.OrderID),
				logger.NewField("error", err),
			)
			EventsPublishedTotal.WithLabelValues(string(ev.Type), "error").Inc()
			continue
		}
		EventsPublishedTotal.WithLabelValues(string(ev.Type), "ok").Inc()
	}
}

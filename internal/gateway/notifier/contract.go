package notifier

import (
	"github.com/IBM/sarama"
	"route-engine/pkg/logger"
)

type notifierLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
}

// producer подмножество sarama.SyncProducer.
type producer interface {
	SendMessage(msg *sarama.ProducerMessage) (partition int32, offset int64, err error)
}

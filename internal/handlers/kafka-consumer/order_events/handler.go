package order_events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/IBM/sarama"
	"route-engine/internal/apperr"
	"route-engine/internal/entities"
	"route-engine/pkg/logger"
)

// outcome итог обработки сообщения. Все, кроме outcomeRetry, коммитят оффсет.
type outcome string

const (
	outcomeProcessed outcome = "processed"
	outcomeMalformed outcome = "malformed"
	outcomeUnknown   outcome = "unknown_event"
	outcomeRejected  outcome = "rejected"
	outcomeRetry     outcome = "retry"
)

// Handler потребитель топика заказов маркетплейса.
// Ошибки домена (заказ уже отменен, невалидный заказ) не блокируют партицию.
// Отмена контекста оставляет сообщение непрочитанным до следующей сессии.
type Handler struct {
	factory HandlerFactory
	log     handlerLogger
	timeout time.Duration
}

func New(log handlerLogger, factory HandlerFactory, timeout time.Duration) *Handler {
	return &Handler{
		factory: factory,
		log:     log.With(logger.NewField("handler", "order_events")),
		timeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	messages := claim.Messages()
	for {
		select {
		case <-sess.Context().Done():
			h.log.Info("session done, leaving partition",
				logger.NewField("partition", claim.Partition()),
			)
			return nil

		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			if h.handle(sess.Context(), msg) == outcomeRetry {
				return nil
			}
			sess.MarkMessage(msg, "")
		}
	}
}

func (h *Handler) handle(parent context.Context, msg *sarama.ConsumerMessage) outcome {
	msgLog := h.log.With(logger.NewField("offset", msg.Offset))

	var event orderEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		msgLog.Error("malformed order event", logger.NewField("error", err))
		processedTotal.WithLabelValues("", string(outcomeMalformed)).Inc()
		return outcomeMalformed
	}

	order := event.toOrder()
	msgLog = msgLog.With(
		logger.NewField("event", event.Event),
		logger.NewField("order", order.ID),
	)

	res := h.execute(parent, msgLog, event.Event, order)
	processedTotal.WithLabelValues(event.Event, string(res)).Inc()
	return res
}

func (h *Handler) execute(parent context.Context, log logger.Logger, event string, order entities.Order) outcome {
	fn, err := h.factory.GetHandler(event)
	if err != nil {
		log.Warn("order event skipped", logger.NewField("error", err))
		return outcomeUnknown
	}

	ctx, cancel := context.WithTimeout(parent, h.timeout)
	defer cancel()

	err = fn(ctx, order)
	switch {
	case err == nil:
		log.Info("order event processed")
		return outcomeProcessed

	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		log.Warn("order event interrupted, will be redelivered", logger.NewField("error", err))
		return outcomeRetry

	default:
		log.Warn("order event rejected",
			logger.NewField("error", err),
			logger.NewField("kind", apperr.Kind(err)),
		)
		return outcomeRejected
	}
}

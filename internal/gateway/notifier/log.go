package notifier

import (
	"context"

	"route-engine/internal/entities"
	"route-engine/pkg/logger"
)

// Log пишет события в лог, когда топик уведомлений не настроен.
type Log struct {
	log notifierLogger
}

func NewLog(log logger.Logger) *Log {
	return &Log{log: log.With(logger.NewField("notifier", "log"))}
}

func (l *Log) Publish(_ context.Context, events ...entities.Event) {
	for _, ev := range events {
		l.log.Info("event",
			logger.NewField("type", string(ev.Type)),
			logger.NewField("route", ev.RouteID),
			logger.NewField("stop", ev.StopID),
			logger.NewField("order", ev.OrderID),
			logger.NewField("driver", ev.DriverID),
			logger.NewField("status", ev.Status),
			logger.NewField("message", ev.Message),
		)
		EventsPublishedTotal.WithLabelValues(string(ev.Type), "logged").Inc()
	}
}

package order_events

import (
	"route-engine/internal/pkg/factory/order_handle"
	"route-engine/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type HandlerFactory interface {
	GetHandler(event string) (order_handle.ExecuteFn, error)
}

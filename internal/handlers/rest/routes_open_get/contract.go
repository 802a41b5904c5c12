//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=routes_open_get_test
package routes_open_get

import (
	"context"

	"route-engine/internal/entities"
	"route-engine/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	ListOpenRoutes(ctx context.Context, driverID string, window *entities.TimeWindow, near *entities.Location) ([]entities.RouteSummary, error)
}

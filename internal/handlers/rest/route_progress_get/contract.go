//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=route_progress_get_test
package route_progress_get

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
	GetRouteProgress(ctx context.Context, routeID string) (*entities.RouteProgress, error)
}

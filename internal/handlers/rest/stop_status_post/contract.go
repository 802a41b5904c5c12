//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=stop_status_post_test
package stop_status_post

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
	ReportStopStatus(ctx context.Context, stopID string, driverID string, status entities.StopStatus, reason string) (*entities.Stop, error)
}

//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=driver_earnings_get_test
package driver_earnings_get

import (
	"context"
	"time"

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
	GetEarnings(ctx context.Context, driverID string, from time.Time, to time.Time) (*entities.DriverEarnings, error)
}

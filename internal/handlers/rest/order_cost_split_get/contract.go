//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_cost_split_get_test
package order_cost_split_get

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
	GetCostSplit(ctx context.Context, orderID string) (*entities.CostSplit, error)
}

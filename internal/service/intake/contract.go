//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=intake_test
package intake

import (
	"context"
	"time"

	"route-engine/internal/entities"
	"route-engine/pkg/logger"
)

type serviceLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type OrderRepository interface {
	Create(ctx context.Context, order *entities.Order) error
}

type StopRepository interface {
	CreateBatch(ctx context.Context, stops []entities.Stop) error
}

// Windows подбирает окно доставки заказа.
type Windows interface {
	Resolve(requested *entities.TimeWindow, now time.Time) (entities.TimeWindow, bool)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type Notifier interface {
	Publish(ctx context.Context, events ...entities.Event)
}

type Clock interface {
	Now() time.Time
}

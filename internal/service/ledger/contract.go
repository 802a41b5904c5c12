//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=ledger_test
package ledger

import (
	"context"
	"time"

	"route-engine/internal/entities"
	"route-engine/pkg/logger"
)

type serviceLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type RouteRepository interface {
	GetByID(ctx context.Context, id string) (*entities.Route, error)
	Update(ctx context.Context, route *entities.Route) error
	List(ctx context.Context, filter entities.RouteFilter) ([]entities.Route, error)
}

type StopRepository interface {
	ListByRoute(ctx context.Context, routeID string) ([]entities.Stop, error)
}

// Pool возвращает стопы в пул ожидания.
type Pool interface {
	Defer(ctx context.Context, stops []entities.Stop) (int, error)
}

type Earnings interface {
	FinalizeEarnings(ctx context.Context, routeID string) (*entities.EarningsRecord, error)
	Estimate(route entities.Route, stops []entities.Stop) entities.Cents
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

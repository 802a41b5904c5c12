//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=tracking_test
package tracking

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

type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*entities.Order, error)
	Update(ctx context.Context, order *entities.Order) error
}

type StopRepository interface {
	GetByID(ctx context.Context, id string) (*entities.Stop, error)
	ListByOrder(ctx context.Context, orderID string) ([]entities.Stop, error)
	ListByRoute(ctx context.Context, routeID string) ([]entities.Stop, error)
	Update(ctx context.Context, stop *entities.Stop) error
}

type RouteRepository interface {
	GetByID(ctx context.Context, id string) (*entities.Route, error)
	Update(ctx context.Context, route *entities.Route) error
}

type Earnings interface {
	CreditStop(ctx context.Context, routeID string, stop entities.Stop) (entities.Cents, error)
	DropCostSplit(ctx context.Context, orderID string) error
}

type Sequencer interface {
	Resequence(ctx context.Context, routeID string) (*entities.Route, error)
}

// RouteCanceller снимает маршрут, в котором не осталось живых стопов.
type RouteCanceller interface {
	Cancel(ctx context.Context, routeID, reason string) (*entities.Route, error)
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

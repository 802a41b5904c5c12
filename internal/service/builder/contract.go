//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=builder_test
package builder

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
	Create(ctx context.Context, route *entities.Route) error
	GetByID(ctx context.Context, id string) (*entities.Route, error)
	Update(ctx context.Context, route *entities.Route) error
	List(ctx context.Context, filter entities.RouteFilter) ([]entities.Route, error)
}

type StopRepository interface {
	GetByID(ctx context.Context, id string) (*entities.Stop, error)
	ListByRoute(ctx context.Context, routeID string) ([]entities.Stop, error)
	ListPooled(ctx context.Context, key entities.PoolKey) ([]entities.Stop, error)
	ListPoolKeys(ctx context.Context) ([]entities.PoolKey, error)
	Update(ctx context.Context, stop *entities.Stop) error
}

type Sequencer interface {
	Sequence(ctx context.Context, routeID string) (*entities.Route, error)
}

// Windows расписание окон доставки.
type Windows interface {
	Cutoff(w entities.TimeWindow) time.Time
	Containing(t time.Time) (entities.TimeWindow, bool)
	NextOpen(now time.Time) entities.TimeWindow
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

type Notifier interface {
	Publish(ctx context.Context, events ...entities.Event)
}

type Clock interface {
	Now() time.Time
}

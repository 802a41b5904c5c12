//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=earnings_test
package earnings

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
}

type StopRepository interface {
	ListByRoute(ctx context.Context, routeID string) ([]entities.Stop, error)
}

type Repository interface {
	CreateRecord(ctx context.Context, record *entities.EarningsRecord) error
	GetSettlement(ctx context.Context, routeID string) (*entities.EarningsRecord, error)
	ListRecordsByRoute(ctx context.Context, routeID string) ([]entities.EarningsRecord, error)
	ListRecordsByDriver(ctx context.Context, driverID string, from, to time.Time) ([]entities.EarningsRecord, error)
	CreateTip(ctx context.Context, tip *entities.Tip) error
	ListTipsByRoute(ctx context.Context, routeID string) ([]entities.Tip, error)
	MarkTipsSettled(ctx context.Context, tipIDs []string, recordID string) error
	SaveCostSplit(ctx context.Context, split entities.CostSplit) error
	GetCostSplit(ctx context.Context, orderID string) (*entities.CostSplit, error)
	DeleteCostSplit(ctx context.Context, orderID string) error
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

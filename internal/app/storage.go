package app

import (
	"context"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
	"route-engine/internal/entities"
	earningsRepo "route-engine/internal/repository/earnings"
	lockRepo "route-engine/internal/repository/lock"
	"route-engine/internal/repository/memory"
	orderRepo "route-engine/internal/repository/order"
	routeRepo "route-engine/internal/repository/route"
	stopRepo "route-engine/internal/repository/stop"
	"route-engine/pkg/logger"
	"route-engine/pkg/querier"
	"route-engine/pkg/tx"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entities.Order) error
	GetByID(ctx context.Context, id string) (*entities.Order, error)
	Update(ctx context.Context, order *entities.Order) error
}

type StopRepository interface {
	CreateBatch(ctx context.Context, stops []entities.Stop) error
	GetByID(ctx context.Context, id string) (*entities.Stop, error)
	ListByOrder(ctx context.Context, orderID string) ([]entities.Stop, error)
	ListByRoute(ctx context.Context, routeID string) ([]entities.Stop, error)
	ListPooled(ctx context.Context, key entities.PoolKey) ([]entities.Stop, error)
	ListPoolKeys(ctx context.Context) ([]entities.PoolKey, error)
	Update(ctx context.Context, stop *entities.Stop) error
}

type RouteRepository interface {
	Create(ctx context.Context, route *entities.Route) error
	GetByID(ctx context.Context, id string) (*entities.Route, error)
	Update(ctx context.Context, route *entities.Route) error
	List(ctx context.Context, filter entities.RouteFilter) ([]entities.Route, error)
}

type EarningsRepository interface {
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

// Storage набор репозиториев одного драйвера хранения.
type Storage struct {
	Orders    OrderRepository
	Stops     StopRepository
	Routes    RouteRepository
	Earnings  EarningsRepository
	TxManager TxManager
	Locker    Locker
}

// NewMemoryStorage хранилище в памяти процесса, для разработки и тестов.
func NewMemoryStorage() *Storage {
	return &Storage{
		Orders:    memory.NewOrderRepository(),
		Stops:     memory.NewStopRepository(),
		Routes:    memory.NewRouteRepository(),
		Earnings:  memory.NewEarningsRepository(),
		TxManager: memory.NewTxManager(),
		Locker:    memory.NewLocker(),
	}
}

// NewPostgresStorage репозитории поверх пула. Запросы внутри txManager.Do
// выполняются в транзакции из контекста.
func NewPostgresStorage(log logger.Logger, pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *Storage {
	q := querier.New(pool, getter)

	return &Storage{
		Orders:    orderRepo.New(q),
		Stops:     stopRepo.New(q),
		Routes:    routeRepo.New(q),
		Earnings:  earningsRepo.New(q),
		TxManager: tx.New(pool),
		Locker:    lockRepo.New(pool, log),
	}
}

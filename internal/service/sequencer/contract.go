//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=sequencer_test
package sequencer

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
	Update(ctx context.Context, stop *entities.Stop) error
}

type DistanceProvider interface {
	Measure(ctx context.Context, a, b entities.Location) entities.Distance
}

type CostSplitter interface {
	ComputeSplits(ctx context.Context, route entities.Route, stops []entities.Stop, legMiles map[string]float64) ([]entities.CostSplit, error)
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

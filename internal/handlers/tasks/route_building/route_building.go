package route_building

import (
	"context"
	"fmt"
	"time"

	"route-engine/internal/service/builder"
	"route-engine/pkg/logger"
)

type Builder interface {
	SweepAll(ctx context.Context) (builder.Result, error)
}

type Expirer interface {
	ExpireUnclaimedRoutes(ctx context.Context) (int, error)
}

// RouteBuilding раскладывает пул по маршрутам, закрывает окна после отсечки
// и снимает маршруты, которые никто не взял до срока.
type RouteBuilding struct {
	log      logger.Logger
	builder  Builder
	expirer  Expirer
	interval time.Duration
}

func NewRouteBuilding(log logger.Logger, builder Builder, expirer Expirer, interval time.Duration) *RouteBuilding {
	return &RouteBuilding{
		log:      log,
		builder:  builder,
		expirer:  expirer,
		interval: interval,
	}
}

func (t *RouteBuilding) TTL() time.Duration {
	return t.interval
}

func (t *RouteBuilding) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, t.interval)
	defer cancel()

	res, err := t.builder.SweepAll(ctxWithTimeout)
	if err != nil {
		return fmt.Errorf("sweep: %w", err)
	}
	if res.Assigned > 0 || res.Deferred > 0 || len(res.Sealed) > 0 {
		t.log.With(
			logger.NewField("assigned", res.Assigned),
			logger.NewField("waiting", res.Waiting),
			logger.NewField("deferred", res.Deferred),
			logger.NewField("opened", len(res.Opened)),
			logger.NewField("sealed", len(res.Sealed)),
		).Info("route building")
	}

	expired, err := t.expirer.ExpireUnclaimedRoutes(ctxWithTimeout)
	if expired > 0 {
		t.log.With(
			logger.NewField("expired_routes", expired),
		).Info("route building")
	}
	if err != nil {
		return fmt.Errorf("expire unclaimed: %w", err)
	}

	return nil
}

func (t *RouteBuilding) Info() string {
	return "route building"
}

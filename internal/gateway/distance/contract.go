//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=distance_test
package distance

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"route-engine/internal/entities"
	"route-engine/pkg/logger"
)

// Provider источник расстояний между точками, в милях.
type Provider interface {
	Distance(ctx context.Context, a, b entities.Location) (float64, error)
}

type retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}

type cacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

type gatewayLogger interface {
	Warn(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

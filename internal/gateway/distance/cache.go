package distance

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"route-engine/internal/entities"
	"route-engine/internal/pkg/geo"
)

const (
	cacheKeyPrefix = "distance:"
	// ~4.8 м, точнее координаты адреса не бывают
	cacheKeyPrecision = 9
)

// Cache кэширует ответы провайдера в Redis. Ошибки Redis не мешают
// получить расстояние, запрос просто уходит дальше.
type Cache struct {
	client cacheClient
	next   Provider
	ttl    time.Duration
}

func NewCache(client cacheClient, next Provider, ttl time.Duration) *Cache {
	return &Cache{client: client, next: next, ttl: ttl}
}

func (c *Cache) Distance(ctx context.Context, a, b entities.Location) (float64, error) {
	key := cacheKey(a, b)

	raw, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		if miles, perr := strconv.ParseFloat(raw, 64); perr == nil {
			CacheRequestsTotal.WithLabelValues("hit").Inc()
			return miles, nil
		}
		CacheRequestsTotal.WithLabelValues("error").Inc()
	case errors.Is(err, redis.Nil):
		CacheRequestsTotal.WithLabelValues("miss").Inc()
	default:
		CacheRequestsTotal.WithLabelValues("error").Inc()
	}

	miles, err := c.next.Distance(ctx, a, b)
	if err != nil {
		return 0, err
	}

	if err := c.client.Set(ctx, key, strconv.FormatFloat(miles, 'f', -1, 64), c.ttl).Err(); err != nil {
		CacheRequestsTotal.WithLabelValues("error").Inc()
	}
	return miles, nil
}

// cacheKey не зависит от порядка точек.
func cacheKey(a, b entities.Location) string {
	ha := geo.Cell(a, cacheKeyPrecision)
	hb := geo.Cell(b, cacheKeyPrecision)
	if hb < ha {
		ha, hb = hb, ha
	}
	return fmt.Sprintf("%s%s:%s", cacheKeyPrefix, ha, hb)
}

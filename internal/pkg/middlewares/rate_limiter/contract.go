package rate_limiter

import "route-engine/pkg/logger"

// Limiter решает по ключу клиента, пропускать ли запрос.
type Limiter interface {
	Allow(key string) bool
}

type handlerLogger interface {
	Warn(msg string, fields ...logger.Field)
}

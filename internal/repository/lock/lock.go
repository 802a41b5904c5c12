package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"route-engine/pkg/logger"
)

const unlockTimeout = 5 * time.Second

// Locker сессионная advisory блокировка Postgres по строковому ключу.
// Сериализует свипы билдера и финализацию маршрута между репликами.
type Locker struct {
	pool *pgxpool.Pool
	log  logger.Logger
}

func New(pool *pgxpool.Pool, log logger.Logger) *Locker {
	return &Locker{
		pool: pool,
		log:  log,
	}
}

func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("lock %s: acquire connection: %w", key, err)
	}

	_, err = conn.Exec(ctx, `SELECT pg_advisory_lock(hashtextextended($1, 0))`, key)
	if err != nil {
		conn.Release()
		return nil, fmt.Errorf("lock %s: %w", key, err)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			unlockCtx, cancel := context.WithTimeout(context.Background(), unlockTimeout)
			defer cancel()

			_, err := conn.Exec(unlockCtx, `SELECT pg_advisory_unlock(hashtextextended($1, 0))`, key)
			if err != nil {
				l.log.Error("advisory unlock failed, closing connection",
					logger.NewField("key", key),
					logger.NewField("error", err),
				)
				// закрытие сессии снимает все ее блокировки
				_ = conn.Conn().Close(unlockCtx)
			}
			conn.Release()
		})
	}, nil
}

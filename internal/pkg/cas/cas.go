// Package cas повторяет read-modify-write при конфликте версий.
package cas

import (
	"context"
	"errors"
	"time"

	"route-engine/internal/apperr"
	"route-engine/pkg/retrier"
	"route-engine/pkg/retrier/backoff_adapter"
)

const DefaultAttempts = 5

// New ретраер, повторяющий только apperr.VersionConflict.
// attempts - общее число попыток, включая первую.
func New(attempts int) retrier.Retrier {
	if attempts < 1 {
		attempts = DefaultAttempts
	}
	return backoff_adapter.New(retrier.Config{
		InitialInterval: time.Millisecond,
		MaxInterval:     20 * time.Millisecond,
		MaxElapsedTime:  time.Second,
		Randomization:   0.5,
		Multiplier:      2,
		MaxRetries:      uint64(attempts - 1),
		ShouldRetry: func(err error) bool {
			return errors.Is(err, apperr.VersionConflict)
		},
	})
}

// Do выполняет fn с повтором при конфликте версий.
func Do(ctx context.Context, r retrier.Retrier, fn func(ctx context.Context) error) error {
	return r.ExecuteWithContext(ctx, fn)
}

package distance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"route-engine/internal/apperr"
	"route-engine/internal/entities"
	"route-engine/pkg/logger"
	retrierconfig "route-engine/pkg/retrier"
	"route-engine/pkg/retrier/backoff_adapter"
)

const (
	initialInterval = 20 * time.Millisecond
	maxInterval     = 200 * time.Millisecond
	maxElapsedTime  = time.Second
	randomization   = 0.5
	multiplier      = 2.0
	maxRetries      = 2
)

// Gateway обращается к провайдеру с таймаутом и повторами. Если провайдер
// так и не ответил, Measure отдает расстояние по умолчанию с флагом Degraded.
type Gateway struct {
	provider Provider
	retrier  retrier
	timeout  time.Duration
	fallback float64
	log      gatewayLogger
}

func New(log gatewayLogger, provider Provider, timeout time.Duration, fallbackMiles float64) *Gateway {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		MaxRetries:      maxRetries,
		ShouldRetry:     isRetryable,
	}

	return &Gateway{
		provider: provider,
		retrier:  backoff_adapter.New(retryConfig),
		timeout:  timeout,
		fallback: fallbackMiles,
		log:      log.With(logger.NewField("gateway", "distance")),
	}
}

// Distance расстояние от провайдера или ErrUnavailable.
func (g *Gateway) Distance(ctx context.Context, a, b entities.Location) (float64, error) {
	if a.SameAs(b) {
		return 0, nil
	}

	var miles float64
	err := g.executeWithMetrics(ctx, func(ctx context.Context) error {
		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()

		var err error
		miles, err = g.provider.Distance(callCtx, a, b)
		if err == nil && miles < 0 {
			return fmt.Errorf("negative distance %f", miles)
		}
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return miles, nil
}

// Measure никогда не падает: при недоступности провайдера подставляется
// расстояние по умолчанию.
func (g *Gateway) Measure(ctx context.Context, a, b entities.Location) entities.Distance {
	miles, err := g.Distance(ctx, a, b)
	if err != nil {
		FallbacksTotal.Inc()
		g.log.Warn("distance provider unavailable, using default distance",
			logger.NewField("from", a.Address),
			logger.NewField("to", b.Address),
			logger.NewField("default_miles", g.fallback),
			logger.NewField("error", err),
		)
		return entities.Distance{Miles: g.fallback, Degraded: true}
	}
	return entities.Distance{Miles: miles}
}

func (g *Gateway) executeWithMetrics(ctx context.Context, fn func(context.Context) error) error {
	var attempt uint64
	start := time.Now()

	err := g.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		return fn(ctx)
	})

	RequestDuration.WithLabelValues(resultLabel(err)).Observe(time.Since(start).Seconds())
	if attempt > 1 {
		RetriesTotal.WithLabelValues(resultLabel(err)).Inc()
	}
	return err
}

// isRetryable отмена вызывающим не повторяется, таймаут попытки - да.
func isRetryable(err error) bool {
	return err != nil && !errors.Is(err, context.Canceled)
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "error"
	}
}

var ErrUnavailable = fmt.Errorf("%w: distance provider unavailable", apperr.DistanceProviderUnavailable)

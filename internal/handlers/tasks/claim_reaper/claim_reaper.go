package claim_reaper

import (
	"context"
	"time"

	"route-engine/pkg/logger"
)

type Service interface {
	ReapExpiredClaims(ctx context.Context) (int, error)
}

// ClaimReaper возвращает в открытые маршруты, захват которых истек до старта.
type ClaimReaper struct {
	log      logger.Logger
	service  Service
	interval time.Duration
}

func NewClaimReaper(log logger.Logger, service Service, interval time.Duration) *ClaimReaper {
	return &ClaimReaper{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (c *ClaimReaper) TTL() time.Duration {
	return c.interval
}

func (c *ClaimReaper) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, c.interval)
	defer cancel()

	reopened, err := c.service.ReapExpiredClaims(ctxWithTimeout)

	if reopened > 0 {
		c.log.With(
			logger.NewField("reopened_routes", reopened),
		).Info("claim reaper")
	}

	return err
}

func (c *ClaimReaper) Info() string {
	return "claim reaper"
}

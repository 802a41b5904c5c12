package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"route-engine/internal/entities"
	"route-engine/pkg/logger"
)

// ReapExpiredClaims открывает маршруты, захват которых истек без старта.
func (s *Service) ReapExpiredClaims(ctx context.Context) (int, error) {
	claimed, err := s.routes.List(ctx, entities.RouteFilter{Statuses: []entities.RouteStatus{entities.RouteClaimed}})
	if err != nil {
		return 0, fmt.Errorf("list claimed routes: %w", err)
	}

	var (
		reopened int
		errs     []error
		now      = s.clock.Now()
	)
	for _, r := range claimed {
		if !r.ClaimExpired(now) {
			continue
		}

		var changed bool
		var driverID string
		route, err := s.transition(ctx, r.ID, func(_ context.Context, r *entities.Route, now time.Time) (bool, error) {
			changed = r.ClaimExpired(now)
			if changed {
				if r.DriverID != nil {
					driverID = *r.DriverID
				}
				r.Reopen()
			}
			return changed, nil
		}, nil)
		if err != nil {
			errs = append(errs, fmt.Errorf("reopen %s: %w", r.ID, err))
			continue
		}
		if !changed {
			continue
		}

		reopened++
		TransitionsTotal.WithLabelValues(route.Status.String()).Inc()
		s.log.Info("expired claim reaped", logger.NewField("route", route.ID), logger.NewField("driver", driverID))
		s.notifier.Publish(ctx, entities.Event{
			Type:       entities.EventRouteReleased,
			RouteID:    route.ID,
			DriverID:   driverID,
			Status:     route.Status.String(),
			Message:    "claim expired",
			OccurredAt: s.clock.Now(),
		})
	}
	return reopened, errors.Join(errs...)
}

// ExpireUnclaimedRoutes архивирует маршруты, которые никто не взял до
// срока. Их ожидающие стопы уходят в следующее окно.
func (s *Service) ExpireUnclaimedRoutes(ctx context.Context) (int, error) {
	routes, err := s.routes.List(ctx, entities.RouteFilter{
		Statuses: []entities.RouteStatus{entities.RouteOpen, entities.RouteClaimed},
	})
	if err != nil {
		return 0, fmt.Errorf("list open routes: %w", err)
	}

	var (
		expired int
		errs    []error
	)
	expirable := func(r entities.Route, now time.Time) bool {
		return r.EffectiveStatus(now) == entities.RouteOpen && !now.Before(s.claimDeadline(r))
	}

	now := s.clock.Now()
	for _, r := range routes {
		if !expirable(r, now) {
			continue
		}

		var changed bool
		route, err := s.transition(ctx, r.ID, func(_ context.Context, r *entities.Route, now time.Time) (bool, error) {
			changed = expirable(*r, now)
			if changed {
				r.Reopen()
				r.Status = entities.RouteExpired
				r.Sealed = true
			}
			return changed, nil
		}, s.returnPending)
		if err != nil {
			errs = append(errs, fmt.Errorf("expire %s: %w", r.ID, err))
			continue
		}
		if !changed {
			continue
		}

		expired++
		TransitionsTotal.WithLabelValues(route.Status.String()).Inc()
		s.log.Warn("route expired unclaimed",
			logger.NewField("route", route.ID),
			logger.NewField("window", route.Window.Key()),
		)
		s.publish(ctx, entities.EventRouteExpired, route, "not claimed before deadline")
	}
	return expired, errors.Join(errs...)
}

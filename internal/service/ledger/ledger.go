package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"route-engine/internal/apperr"
	"route-engine/internal/entities"
	"route-engine/internal/pkg/cas"
	"route-engine/pkg/logger"
	"route-engine/pkg/retrier"
)

type Service struct {
	routes    RouteRepository
	stops     StopRepository
	pool      Pool
	earnings  Earnings
	txManager TxManager
	notifier  Notifier
	clock     Clock
	config    Config
	cas       retrier.Retrier
	log       serviceLogger
}

func New(
	log serviceLogger,
	config Config,
	routes RouteRepository,
	stops StopRepository,
	pool Pool,
	earnings Earnings,
	txManager TxManager,
	notifier Notifier,
	clock Clock,
) (*Service, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &Service{
		routes:    routes,
		stops:     stops,
		pool:      pool,
		earnings:  earnings,
		txManager: txManager,
		notifier:  notifier,
		clock:     clock,
		config:    config,
		cas:       cas.New(cas.DefaultAttempts),
		log:       log.With(logger.NewField("service", "ledger")),
	}, nil
}

type mutation func(ctx context.Context, route *entities.Route, now time.Time) (save bool, outcome error)

// transition читает маршрут, применяет fn и сохраняет маршрут с проверкой
// версии, если fn вернула save. after выполняется в той же транзакции после
// сохранения. outcome возвращается вызывающему уже после записи.
func (s *Service) transition(ctx context.Context, routeID string, fn mutation, after func(ctx context.Context, route *entities.Route) error) (*entities.Route, error) {
	var (
		route   *entities.Route
		outcome error
	)
	err := cas.Do(ctx, s.cas, func(ctx context.Context) error {
		return s.txManager.Do(ctx, func(ctx context.Context) error {
			r, err := s.routes.GetByID(ctx, routeID)
			if err != nil {
				return fmt.Errorf("get route: %w", err)
			}

			save, out := fn(ctx, r, s.clock.Now())
			if save {
				if err := s.routes.Update(ctx, r); err != nil {
					return fmt.Errorf("update route: %w", err)
				}
				if after != nil {
					if err := after(ctx, r); err != nil {
						return err
					}
				}
			}
			route, outcome = r, out
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return route, outcome
}

// Claim из N одновременных захватов одного маршрута успешен ровно один.
// Повторный захват тем же водителем ничего не меняет.
func (s *Service) Claim(ctx context.Context, routeID, driverID string) (*entities.Route, error) {
	if !isValidID(routeID) || !isValidID(driverID) {
		return nil, ErrInvalidID
	}

	var won bool
	route, err := s.transition(ctx, routeID, func(_ context.Context, r *entities.Route, now time.Time) (bool, error) {
		won = false
		if r.Status == entities.RouteClaimed && r.HeldBy(driverID) && !r.ClaimExpired(now) {
			return false, nil
		}

		switch status := r.EffectiveStatus(now); status {
		case entities.RouteOpen:
		case entities.RouteClaimed, entities.RouteInProgress:
			return false, ErrRouteAlreadyClaimed
		default:
			return false, fmt.Errorf("%w: status %s", ErrRouteNotOpen, status)
		}
		if !r.Sealed || !r.Sequenced {
			return false, ErrRouteNotReady
		}
		if !now.Before(s.claimDeadline(*r)) {
			return false, ErrClaimWindowClosed
		}

		expires := now.Add(s.config.ClaimGracePeriod)
		r.Status = entities.RouteClaimed
		r.DriverID = &driverID
		r.ClaimedAt = &now
		r.ClaimExpiresAt = &expires
		won = true
		return true, nil
	}, nil)
	if errors.Is(err, apperr.VersionConflict) {
		err = fmt.Errorf("%w: %w", ErrRouteAlreadyClaimed, err)
	}
	if err != nil {
		ClaimsTotal.WithLabelValues(apperr.Kind(err)).Inc()
		return route, err
	}

	if !won {
		ClaimsTotal.WithLabelValues("repeat").Inc()
		return route, nil
	}
	ClaimsTotal.WithLabelValues("won").Inc()
	TransitionsTotal.WithLabelValues(route.Status.String()).Inc()
	s.log.Info("route claimed",
		logger.NewField("route", routeID),
		logger.NewField("driver", driverID),
		logger.NewField("expires_at", route.ClaimExpiresAt),
	)
	s.publish(ctx, entities.EventRouteClaimed, route, "")
	return route, nil
}

// Release возвращает захваченный маршрут в открытые.
func (s *Service) Release(ctx context.Context, routeID, driverID string) (*entities.Route, error) {
	if !isValidID(routeID) || !isValidID(driverID) {
		return nil, ErrInvalidID
	}

	route, err := s.transition(ctx, routeID, func(_ context.Context, r *entities.Route, _ time.Time) (bool, error) {
		if r.Status != entities.RouteClaimed {
			return false, fmt.Errorf("%w: status %s", ErrRouteNotClaimed, r.Status)
		}
		if !r.HeldBy(driverID) {
			return false, ErrNotClaimHolder
		}
		r.Reopen()
		return true, nil
	}, nil)
	if err != nil {
		return route, err
	}

	TransitionsTotal.WithLabelValues(route.Status.String()).Inc()
	s.log.Info("route released", logger.NewField("route", routeID), logger.NewField("driver", driverID))
	s.publish(ctx, entities.EventRouteReleased, route, "released by driver")
	return route, nil
}

// Start переводит маршрут в работу. Если захват истек, маршрут открывается
// заново и возвращается ErrClaimExpired. Чужой водитель маршрут не меняет.
func (s *Service) Start(ctx context.Context, routeID, driverID string) (*entities.Route, error) {
	if !isValidID(routeID) || !isValidID(driverID) {
		return nil, ErrInvalidID
	}

	var started bool
	route, err := s.transition(ctx, routeID, func(_ context.Context, r *entities.Route, now time.Time) (bool, error) {
		started = false
		switch {
		case r.Status == entities.RouteInProgress && r.HeldBy(driverID):
			return false, nil
		case r.Status != entities.RouteClaimed:
			return false, fmt.Errorf("%w: status %s", ErrRouteNotClaimed, r.Status)
		case !r.HeldBy(driverID):
			return false, ErrNotClaimHolder
		case r.ClaimExpired(now):
			r.Reopen()
			return true, ErrClaimExpired
		}

		r.Status = entities.RouteInProgress
		r.StartedAt = &now
		r.ClaimExpiresAt = nil
		started = true
		return true, nil
	}, nil)

	switch {
	case errors.Is(err, ErrClaimExpired):
		TransitionsTotal.WithLabelValues(entities.RouteOpen.String()).Inc()
		s.log.Warn("start after claim expiry, route reopened",
			logger.NewField("route", routeID),
			logger.NewField("driver", driverID),
		)
		s.publish(ctx, entities.EventRouteReleased, route, "claim expired")
		return route, err
	case err != nil:
		return route, err
	}

	if started {
		TransitionsTotal.WithLabelValues(route.Status.String()).Inc()
		s.log.Info("route started", logger.NewField("route", routeID), logger.NewField("driver", driverID))
		s.publish(ctx, entities.EventRouteStarted, route, "")
	}
	return route, nil
}

// Complete закрывает маршрут, когда все стопы завершены или провалены,
// и фиксирует заработок водителя.
func (s *Service) Complete(ctx context.Context, routeID string) (*entities.Route, *entities.EarningsRecord, error) {
	if !isValidID(routeID) {
		return nil, nil, ErrInvalidID
	}

	var completed bool
	route, err := s.transition(ctx, routeID, func(ctx context.Context, r *entities.Route, now time.Time) (bool, error) {
		completed = false
		if r.Status == entities.RouteCompleted {
			return false, nil
		}
		if r.Status != entities.RouteInProgress {
			return false, fmt.Errorf("%w: status %s", ErrRouteNotStarted, r.Status)
		}

		stops, err := s.stops.ListByRoute(ctx, r.ID)
		if err != nil {
			return false, fmt.Errorf("list stops: %w", err)
		}
		for _, st := range stops {
			if !st.Status.Terminal() {
				return false, fmt.Errorf("%w: stop %s is %s", ErrStopsNotTerminal, st.ID, st.Status)
			}
		}

		r.Status = entities.RouteCompleted
		r.CompletedAt = &now
		completed = true
		return true, nil
	}, nil)
	if err != nil {
		return route, nil, err
	}

	if completed {
		TransitionsTotal.WithLabelValues(route.Status.String()).Inc()
		s.log.Info("route completed", logger.NewField("route", routeID))
		s.publish(ctx, entities.EventRouteCompleted, route, "")
	}

	record, err := s.earnings.FinalizeEarnings(ctx, routeID)
	if errors.Is(err, apperr.AlreadySettled) {
		return route, nil, nil
	}
	if err != nil {
		s.log.Error("finalize earnings", logger.NewField("route", routeID), logger.NewField("error", err))
		return route, nil, fmt.Errorf("finalize earnings: %w", err)
	}
	return route, record, nil
}

// Cancel отменяет маршрут до начала работы. Ожидающие стопы возвращаются в пул.
func (s *Service) Cancel(ctx context.Context, routeID, reason string) (*entities.Route, error) {
	if !isValidID(routeID) {
		return nil, ErrInvalidID
	}

	route, err := s.transition(ctx, routeID, func(_ context.Context, r *entities.Route, _ time.Time) (bool, error) {
		switch r.Status {
		case entities.RouteOpen, entities.RouteClaimed, entities.RouteUnderReview:
		case entities.RouteCancelled:
			return false, nil
		default:
			return false, fmt.Errorf("%w: status %s", ErrNotCancellable, r.Status)
		}
		r.Reopen()
		r.Status = entities.RouteCancelled
		r.Sealed = true
		r.ReviewReason = reason
		return true, nil
	}, s.returnPending)
	if err != nil {
		return route, err
	}

	TransitionsTotal.WithLabelValues(route.Status.String()).Inc()
	s.log.Warn("route cancelled", logger.NewField("route", routeID), logger.NewField("reason", reason))
	s.publish(ctx, entities.EventRouteCancelled, route, reason)
	return route, nil
}

// returnPending возвращает ожидающие стопы снятого маршрута в пул. Конфликт
// версий стопа повторяется здесь же со свежим списком: in-memory хранилище
// не откатывает уже сохраненный статус маршрута, и внешний повтор hook не вызовет.
func (s *Service) returnPending(ctx context.Context, route *entities.Route) error {
	return cas.Do(ctx, s.cas, func(ctx context.Context) error {
		stops, err := s.stops.ListByRoute(ctx, route.ID)
		if err != nil {
			return fmt.Errorf("list stops: %w", err)
		}
		var pending []entities.Stop
		for _, st := range stops {
			if st.Status == entities.StopPending {
				pending = append(pending, st)
			}
		}
		if len(pending) == 0 {
			return nil
		}
		if _, err := s.pool.Defer(ctx, pending); err != nil {
			return fmt.Errorf("return stops to pool: %w", err)
		}
		return nil
	})
}

func (s *Service) claimDeadline(route entities.Route) time.Time {
	return route.Window.Start.Add(s.config.ClaimDeadlineOffset)
}

func (s *Service) publish(ctx context.Context, t entities.EventType, route *entities.Route, msg string) {
	ev := entities.Event{
		Type:       t,
		RouteID:    route.ID,
		Status:     route.Status.String(),
		Message:    msg,
		OccurredAt: s.clock.Now(),
	}
	if route.DriverID != nil {
		ev.DriverID = *route.DriverID
	}
	s.notifier.Publish(ctx, ev)
}

package tracking

import (
	"context"
	"fmt"
	"time"

	"route-engine/internal/entities"
	"route-engine/internal/pkg/cas"
	"route-engine/pkg/logger"
	"route-engine/pkg/retrier"
)

const (
	reasonPickupFailed   = "pickup failed"
	reasonOrderCancelled = "order cancelled"
)

type Service struct {
	orders    OrderRepository
	stops     StopRepository
	routes    RouteRepository
	earnings  Earnings
	sequencer Sequencer
	canceller RouteCanceller
	txManager TxManager
	notifier  Notifier
	clock     Clock
	cas       retrier.Retrier
	log       serviceLogger
}

func New(
	log serviceLogger,
	orders OrderRepository,
	stops StopRepository,
	routes RouteRepository,
	earnings Earnings,
	sequencer Sequencer,
	canceller RouteCanceller,
	txManager TxManager,
	notifier Notifier,
	clock Clock,
) *Service {
	return &Service{
		orders:    orders,
		stops:     stops,
		routes:    routes,
		earnings:  earnings,
		sequencer: sequencer,
		canceller: canceller,
		txManager: txManager,
		notifier:  notifier,
		clock:     clock,
		cas:       cas.New(cas.DefaultAttempts),
		log:       log.With(logger.NewField("service", "tracking")),
	}
}

// ReportStopStatus применяет отчет водителя о стопе. Повтор текущего или уже
// пройденного статуса ничего не меняет. Проваленный забор проваливает и
// доставку того же заказа.
func (s *Service) ReportStopStatus(ctx context.Context, stopID, driverID string, status entities.StopStatus, reason string) (*entities.Stop, error) {
	if !isValidID(stopID) || !isValidID(driverID) {
		return nil, ErrInvalidID
	}
	if !isReportable(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	var (
		stop    *entities.Stop
		changed []entities.Stop
	)
	err := cas.Do(ctx, s.cas, func(ctx context.Context) error {
		changed = nil
		return s.txManager.Do(ctx, func(ctx context.Context) error {
			st, err := s.stops.GetByID(ctx, stopID)
			if err != nil {
				return fmt.Errorf("get stop: %w", err)
			}
			stop = st

			if st.RouteID == "" {
				return ErrStopNotRouted
			}
			route, err := s.routes.GetByID(ctx, st.RouteID)
			if err != nil {
				return fmt.Errorf("get route: %w", err)
			}
			if !route.HeldBy(driverID) {
				return ErrNotRouteDriver
			}
			if route.Status != entities.RouteInProgress {
				return fmt.Errorf("%w: status %s", ErrRouteNotActive, route.Status)
			}

			if st.Status.Reached(status) {
				return nil
			}
			if st.Status.Terminal() {
				return fmt.Errorf("%w: %s -> %s", ErrStopTransition, st.Status, status)
			}
			if st.Kind == entities.StopDropoff && status != entities.StopFailed {
				if err := s.checkPickup(ctx, *st); err != nil {
					return err
				}
			}

			now := s.clock.Now()
			applyStatus(st, status, reason, now)
			if err := s.stops.Update(ctx, st); err != nil {
				return fmt.Errorf("update stop: %w", err)
			}
			changed = append(changed, *st)

			if status == entities.StopCompleted {
				if _, err := s.earnings.CreditStop(ctx, route.ID, *st); err != nil {
					return fmt.Errorf("credit stop: %w", err)
				}
			}
			if status == entities.StopFailed && st.Kind == entities.StopPickup {
				dropoffs, err := s.failSiblings(ctx, *st, reasonPickupFailed, now)
				if err != nil {
					return err
				}
				changed = append(changed, dropoffs...)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	for _, st := range changed {
		StopTransitionsTotal.WithLabelValues(st.Status.String()).Inc()
		s.log.Info("stop status changed",
			logger.NewField("stop", st.ID),
			logger.NewField("route", st.RouteID),
			logger.NewField("status", st.Status.String()),
		)
	}
	s.publishStops(ctx, driverID, changed...)
	return stop, nil
}

func (s *Service) checkPickup(ctx context.Context, dropoff entities.Stop) error {
	siblings, err := s.stops.ListByOrder(ctx, dropoff.OrderID)
	if err != nil {
		return fmt.Errorf("list order stops: %w", err)
	}
	for _, sib := range siblings {
		if sib.Kind == entities.StopPickup && sib.Status != entities.StopCompleted {
			return fmt.Errorf("%w: order %s pickup is %s", ErrPickupNotCompleted, dropoff.OrderID, sib.Status)
		}
	}
	return nil
}

// failSiblings проваливает незавершенные стопы того же заказа.
func (s *Service) failSiblings(ctx context.Context, stop entities.Stop, reason string, now time.Time) ([]entities.Stop, error) {
	siblings, err := s.stops.ListByOrder(ctx, stop.OrderID)
	if err != nil {
		return nil, fmt.Errorf("list order stops: %w", err)
	}

	var failed []entities.Stop
	for i := range siblings {
		sib := &siblings[i]
		if sib.ID == stop.ID || sib.Status.Terminal() {
			continue
		}
		applyStatus(sib, entities.StopFailed, reason, now)
		if err := s.stops.Update(ctx, sib); err != nil {
			return nil, fmt.Errorf("update stop: %w", err)
		}
		failed = append(failed, *sib)
	}
	return failed, nil
}

func applyStatus(st *entities.Stop, status entities.StopStatus, reason string, now time.Time) {
	st.Status = status
	switch status {
	case entities.StopArrived:
		st.ArrivedAt = &now
	case entities.StopCompleted:
		if st.ArrivedAt == nil {
			st.ArrivedAt = &now
		}
		st.CompletedAt = &now
	case entities.StopFailed:
		st.FailedAt = &now
		st.FailureReason = reason
	}
}

func (s *Service) publishStops(ctx context.Context, driverID string, stops ...entities.Stop) {
	if len(stops) == 0 {
		return
	}
	events := make([]entities.Event, 0, len(stops))
	for _, st := range stops {
		events = append(events, entities.Event{
			Type:       entities.EventStopStatusChanged,
			RouteID:    st.RouteID,
			StopID:     st.ID,
			OrderID:    st.OrderID,
			DriverID:   driverID,
			Status:     st.Status.String(),
			Message:    st.FailureReason,
			OccurredAt: s.clock.Now(),
		})
	}
	s.notifier.Publish(ctx, events...)
}

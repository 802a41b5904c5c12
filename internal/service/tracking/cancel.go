package tracking

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"

	"route-engine/internal/entities"
	"route-engine/pkg/logger"
)

const reasonAllCancelled = "all orders cancelled"

// CancelOrder отменяет заказ. До упорядочивания стопы просто снимаются с
// пула или строящегося маршрута. После упорядочивания незавершенные стопы
// проваливаются, а маршрут с оставшимися ожидающими стопами упорядочивается
// заново.
func (s *Service) CancelOrder(ctx context.Context, orderID string) (*entities.Order, error) {
	if !isValidID(orderID) {
		return nil, ErrInvalidID
	}

	var (
		order    *entities.Order
		failed   []entities.Stop
		affected map[string]bool
		repeat   bool
	)
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		failed, affected, repeat = nil, make(map[string]bool), false

		o, err := s.orders.GetByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}
		order = o
		if o.Cancelled() {
			repeat = true
			return nil
		}

		now := s.clock.Now()
		o.Status = entities.OrderCancelled
		o.CancelledAt = &now
		if err := s.orders.Update(ctx, o); err != nil {
			return fmt.Errorf("update order: %w", err)
		}
		if err := s.earnings.DropCostSplit(ctx, orderID); err != nil {
			return err
		}

		stops, err := s.stops.ListByOrder(ctx, orderID)
		if err != nil {
			return fmt.Errorf("list order stops: %w", err)
		}
		for i := range stops {
			st := &stops[i]
			if st.Status.Terminal() {
				continue
			}

			if st.RouteID != "" {
				sequenced, err := s.detach(ctx, st)
				if err != nil {
					return err
				}
				if sequenced {
					affected[st.RouteID] = true
				}
			}

			applyStatus(st, entities.StopFailed, reasonOrderCancelled, now)
			if err := s.stops.Update(ctx, st); err != nil {
				return fmt.Errorf("update stop: %w", err)
			}
			failed = append(failed, *st)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if repeat {
		return order, nil
	}

	stage := "pool"
	if len(affected) > 0 {
		stage = "sequenced"
	}
	OrdersCancelledTotal.WithLabelValues(stage).Inc()
	s.log.Info("order cancelled",
		logger.NewField("order", orderID),
		logger.NewField("stage", stage),
		logger.NewField("stops", len(failed)),
	)
	s.notifier.Publish(ctx, entities.Event{
		Type:       entities.EventOrderCancelled,
		OrderID:    orderID,
		Status:     order.Status.String(),
		OccurredAt: s.clock.Now(),
	})
	s.publishStops(ctx, "", failed...)

	routeIDs := make([]string, 0, len(affected))
	for id := range affected {
		routeIDs = append(routeIDs, id)
	}
	sort.Strings(routeIDs)

	var errs []error
	for _, id := range routeIDs {
		if err := s.settleRoute(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("route %s: %w", id, err))
		}
	}
	return order, errors.Join(errs...)
}

// detach снимает стоп со строящегося маршрута. Для уже упорядоченного
// маршрута стоп остается на месте, результат true.
func (s *Service) detach(ctx context.Context, st *entities.Stop) (bool, error) {
	route, err := s.routes.GetByID(ctx, st.RouteID)
	if err != nil {
		return false, fmt.Errorf("get route: %w", err)
	}
	if route.Sequenced {
		return true, nil
	}

	route.StopIDs = slices.DeleteFunc(route.StopIDs, func(id string) bool { return id == st.ID })
	large, err := s.carriesLargeItem(ctx, route)
	if err != nil {
		return false, err
	}
	route.HasLargeItem = large
	if len(route.StopIDs) == 0 && !route.Status.Archived() {
		route.Status = entities.RouteCancelled
		route.Sealed = true
		route.ReviewReason = reasonAllCancelled
	}
	if err := s.routes.Update(ctx, route); err != nil {
		return false, fmt.Errorf("update route: %w", err)
	}
	st.RouteID = ""
	st.Position = nil
	return false, nil
}

// carriesLargeItem пересчитывает флаг по стопам, оставшимся в route.StopIDs.
func (s *Service) carriesLargeItem(ctx context.Context, route *entities.Route) (bool, error) {
	if len(route.StopIDs) == 0 {
		return false, nil
	}
	stops, err := s.stops.ListByRoute(ctx, route.ID)
	if err != nil {
		return false, fmt.Errorf("list route stops: %w", err)
	}
	for _, st := range stops {
		if st.LargeItem && st.Status != entities.StopFailed && slices.Contains(route.StopIDs, st.ID) {
			return true, nil
		}
	}
	return false, nil
}

// settleRoute приводит упорядоченный маршрут в порядок после отмены заказа.
func (s *Service) settleRoute(ctx context.Context, routeID string) error {
	route, err := s.routes.GetByID(ctx, routeID)
	if err != nil {
		return fmt.Errorf("get route: %w", err)
	}
	if route.Status.Archived() {
		return nil
	}
	stops, err := s.stops.ListByRoute(ctx, routeID)
	if err != nil {
		return fmt.Errorf("list stops: %w", err)
	}

	var live, pending int
	for _, st := range stops {
		if st.Status != entities.StopFailed {
			live++
		}
		if st.Status == entities.StopPending {
			pending++
		}
	}

	switch {
	case live == 0 && route.Status != entities.RouteInProgress:
		if _, err := s.canceller.Cancel(ctx, routeID, reasonAllCancelled); err != nil {
			return fmt.Errorf("cancel route: %w", err)
		}
	case pending > 0:
		if _, err := s.sequencer.Resequence(ctx, routeID); err != nil {
			s.log.Error("resequence after order cancel",
				logger.NewField("route", routeID),
				logger.NewField("error", err),
			)
			return fmt.Errorf("resequence: %w", err)
		}
	}
	return nil
}

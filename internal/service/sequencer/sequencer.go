package sequencer

import (
	"context"
	"fmt"
	"time"

	"route-engine/internal/entities"
	"route-engine/internal/pkg/cas"
	"route-engine/internal/pkg/geo"
	"route-engine/pkg/logger"
	"route-engine/pkg/retrier"
)

type Service struct {
	routes    RouteRepository
	stops     StopRepository
	distance  DistanceProvider
	splitter  CostSplitter
	txManager TxManager
	notifier  Notifier
	clock     Clock
	cas       retrier.Retrier
	log       serviceLogger
}

func New(
	log serviceLogger,
	routes RouteRepository,
	stops StopRepository,
	distance DistanceProvider,
	splitter CostSplitter,
	txManager TxManager,
	notifier Notifier,
	clock Clock,
) *Service {
	return &Service{
		routes:    routes,
		stops:     stops,
		distance:  distance,
		splitter:  splitter,
		txManager: txManager,
		notifier:  notifier,
		clock:     clock,
		cas:       cas.New(cas.DefaultAttempts),
		log:       log.With(logger.NewField("service", "sequencer")),
	}
}

// Sequence строит порядок обхода всего маршрута от депо ячейки.
func (s *Service) Sequence(ctx context.Context, routeID string) (*entities.Route, error) {
	return s.sequence(ctx, routeID, false)
}

// Resequence оставляет пройденные и проваленные стопы на месте и заново
// планирует ожидающие от последней посещенной точки.
func (s *Service) Resequence(ctx context.Context, routeID string) (*entities.Route, error) {
	return s.sequence(ctx, routeID, true)
}

type outcome struct {
	route     *entities.Route
	ordered   []entities.Stop
	legMiles  map[string]float64
	violation error
}

func (s *Service) sequence(ctx context.Context, routeID string, keepVisited bool) (*entities.Route, error) {
	if !isValidID(routeID) {
		return nil, ErrInvalidID
	}
	start := time.Now()
	defer func() {
		SequenceDuration.Observe(time.Since(start).Seconds())
	}()

	var res outcome
	err := cas.Do(ctx, s.cas, func(ctx context.Context) error {
		return s.txManager.Do(ctx, func(ctx context.Context) error {
			var err error
			res, err = s.apply(ctx, routeID, keepVisited)
			return err
		})
	})
	if err != nil {
		return nil, err
	}

	route := res.route
	now := s.clock.Now()
	if res.violation != nil {
		SequencedTotal.WithLabelValues("violation").Inc()
		s.log.Error("route sequence violates precedence, route sent to review",
			logger.NewField("route", route.ID),
			logger.NewField("error", res.violation),
		)
		s.notifier.Publish(ctx, entities.Event{
			Type:       entities.EventRouteUnderReview,
			RouteID:    route.ID,
			Status:     route.Status.String(),
			Message:    route.ReviewReason,
			OccurredAt: now,
		})
		return route, res.violation
	}

	SequencedTotal.WithLabelValues("ok").Inc()
	if route.DistanceDegraded {
		s.log.Warn("route sequenced with default distances",
			logger.NewField("route", route.ID),
		)
	}

	if _, err := s.splitter.ComputeSplits(ctx, *route, res.ordered, res.legMiles); err != nil {
		return route, fmt.Errorf("compute cost splits: %w", err)
	}

	s.log.Info("route sequenced",
		logger.NewField("route", route.ID),
		logger.NewField("stops", len(res.ordered)),
		logger.NewField("miles", route.TotalMiles),
	)
	s.notifier.Publish(ctx, entities.Event{
		Type:       entities.EventRouteSequenced,
		RouteID:    route.ID,
		Status:     route.Status.String(),
		OccurredAt: now,
	})
	return route, nil
}

func (s *Service) apply(ctx context.Context, routeID string, keepVisited bool) (outcome, error) {
	route, err := s.routes.GetByID(ctx, routeID)
	if err != nil {
		return outcome{}, fmt.Errorf("get route: %w", err)
	}
	if route.Status.Archived() {
		return outcome{}, fmt.Errorf("%w: %s is %s", ErrRouteArchived, routeID, route.Status)
	}

	stops, err := s.stops.ListByRoute(ctx, routeID)
	if err != nil {
		return outcome{}, fmt.Errorf("list stops: %w", err)
	}

	var fixed, candidates []entities.Stop
	for _, st := range stops {
		if keepVisited && st.Status != entities.StopPending {
			fixed = append(fixed, st)
			continue
		}
		candidates = append(candidates, st)
	}

	startKey, startLoc := "depot", geo.CellCenter(route.Cell)
	placed := make(map[string]bool)
	for _, st := range fixed {
		if st.Status == entities.StopFailed {
			continue
		}
		startKey, startLoc = st.ID, st.Location
		if st.Kind == entities.StopPickup {
			placed[st.OrderID] = true
		}
	}

	m := newMeter(s.distance)
	planned, _ := plan(ctx, m, startKey, startLoc, candidates, placed)
	ordered := append(fixed, planned...)

	total, legMiles := mileage(ctx, m, ordered)

	ids := make([]string, 0, len(ordered))
	for i := range ordered {
		pos := i
		ids = append(ids, ordered[i].ID)
		if ordered[i].Position != nil && *ordered[i].Position == pos {
			continue
		}
		ordered[i].Position = &pos
		if err := s.stops.Update(ctx, &ordered[i]); err != nil {
			return outcome{}, fmt.Errorf("update stop %s: %w", ordered[i].ID, err)
		}
	}

	route.StopIDs = ids
	route.TotalMiles = total
	route.DistanceDegraded = m.degraded
	route.Sequenced = true

	violation := ValidatePrecedence(ordered)
	if violation != nil {
		route.Status = entities.RouteUnderReview
		route.ReviewReason = violation.Error()
	}

	if err := s.routes.Update(ctx, route); err != nil {
		return outcome{}, fmt.Errorf("update route: %w", err)
	}
	return outcome{route: route, ordered: ordered, legMiles: legMiles, violation: violation}, nil
}

// mileage пробег маршрута между посещаемыми стопами, без подъезда от депо,
// и пробег каждого заказа от забора до доставки.
func mileage(ctx context.Context, m *meter, ordered []entities.Stop) (float64, map[string]float64) {
	var (
		total   float64
		prev    *entities.Stop
		reached = make(map[string]float64)
		legs    = make(map[string]float64)
	)
	for i := range ordered {
		st := ordered[i]
		if st.Status == entities.StopFailed {
			continue
		}
		if prev != nil {
			total += m.measure(ctx, prev.ID, prev.Location, st)
		}
		prev = &ordered[i]

		switch st.Kind {
		case entities.StopPickup:
			reached[st.OrderID] = total
		case entities.StopDropoff:
			if at, ok := reached[st.OrderID]; ok {
				legs[st.OrderID] = total - at
			}
		}
	}
	return total, legs
}

package ledger

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/AlekSi/pointer"
	"route-engine/internal/entities"
	"route-engine/internal/pkg/geo"
)

const (
	bufferMinutes  = 5
	minutesPerStop = 3
	minutesPerMile = 2
)

// ListOpenRoutes маршруты, доступные водителю: упорядоченные открытые до
// срока захвата и его собственные активные. С точкой near - ближайшие первыми.
func (s *Service) ListOpenRoutes(ctx context.Context, driverID string, window *entities.TimeWindow, near *entities.Location) ([]entities.RouteSummary, error) {
	now := s.clock.Now()

	filter := entities.RouteFilter{
		Statuses: []entities.RouteStatus{entities.RouteOpen, entities.RouteClaimed},
		Sealed:   pointer.To(true),
	}
	if window != nil {
		filter.WindowStart = &window.Start
	}
	candidates, err := s.routes.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list open routes: %w", err)
	}

	var own []entities.Route
	if isValidID(driverID) {
		own, err = s.routes.List(ctx, entities.RouteFilter{
			Statuses: []entities.RouteStatus{entities.RouteClaimed, entities.RouteInProgress},
			DriverID: &driverID,
		})
		if err != nil {
			return nil, fmt.Errorf("list driver routes: %w", err)
		}
	}

	seen := make(map[string]bool)
	var res []entities.RouteSummary
	add := func(r entities.Route) error {
		if seen[r.ID] {
			return nil
		}
		seen[r.ID] = true

		stops, err := s.stops.ListByRoute(ctx, r.ID)
		if err != nil {
			return fmt.Errorf("list stops: %w", err)
		}
		res = append(res, s.summary(r, stops, near))
		return nil
	}

	for _, r := range own {
		if r.ClaimExpired(now) {
			continue
		}
		if err := add(r); err != nil {
			return nil, err
		}
	}
	for _, r := range candidates {
		if r.EffectiveStatus(now) != entities.RouteOpen || !r.Sequenced || !now.Before(s.claimDeadline(r)) {
			continue
		}
		if err := add(r); err != nil {
			return nil, err
		}
	}

	sort.SliceStable(res, func(i, j int) bool {
		a, b := res[i], res[j]
		if a.DistanceToStart != nil && b.DistanceToStart != nil && *a.DistanceToStart != *b.DistanceToStart {
			return *a.DistanceToStart < *b.DistanceToStart
		}
		if !a.Route.Window.Start.Equal(b.Route.Window.Start) {
			return a.Route.Window.Start.Before(b.Route.Window.Start)
		}
		if !a.Route.CreatedAt.Equal(b.Route.CreatedAt) {
			return a.Route.CreatedAt.Before(b.Route.CreatedAt)
		}
		return a.Route.ID < b.Route.ID
	})
	return res, nil
}

func (s *Service) summary(r entities.Route, stops []entities.Stop, near *entities.Location) entities.RouteSummary {
	sum := entities.RouteSummary{
		Route:            r,
		StopCount:        len(stops),
		EstimatedMinutes: estimateMinutes(len(stops), r.TotalMiles),
		EstimatedPayout:  s.earnings.Estimate(r, stops),
	}
	if near != nil && len(stops) > 0 {
		d := geo.Haversine(*near, stops[0].Location)
		sum.DistanceToStart = &d
	}
	return sum
}

func estimateMinutes(stops int, miles float64) int {
	return bufferMinutes + minutesPerStop*stops + int(math.Ceil(minutesPerMile*miles))
}

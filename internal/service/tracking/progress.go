package tracking

import (
	"context"
	"fmt"

	"route-engine/internal/entities"
)

// GetRouteProgress прогресс маршрута выводится из стопов и не хранится.
func (s *Service) GetRouteProgress(ctx context.Context, routeID string) (*entities.RouteProgress, error) {
	if !isValidID(routeID) {
		return nil, ErrInvalidID
	}

	route, err := s.routes.GetByID(ctx, routeID)
	if err != nil {
		return nil, fmt.Errorf("get route: %w", err)
	}
	stops, err := s.stops.ListByRoute(ctx, routeID)
	if err != nil {
		return nil, fmt.Errorf("list stops: %w", err)
	}

	res := &entities.RouteProgress{
		RouteID: route.ID,
		Status:  route.EffectiveStatus(s.clock.Now()),
		Total:   len(stops),
		Stops:   make([]entities.StopProgress, 0, len(stops)),
	}
	for i, st := range stops {
		switch st.Status {
		case entities.StopCompleted:
			res.Completed++
		case entities.StopFailed:
			res.Failed++
		}
		res.Stops = append(res.Stops, entities.StopProgress{
			StopID:   st.ID,
			OrderID:  st.OrderID,
			Kind:     st.Kind,
			Status:   st.Status,
			Position: i + 1,
			Total:    len(stops),
		})
	}
	if res.Total > 0 {
		res.Percent = float64(res.Completed) / float64(res.Total) * 100
	}
	return res, nil
}

package stop

import (
	"route-engine/internal/entities"
)

func ToDomain(s *StopDB) *entities.Stop {
	if s == nil {
		return nil
	}

	stop := &entities.Stop{
		ID:             s.ID,
		OrderID:        s.OrderID,
		Kind:           entities.StopKind(s.Kind),
		Location:       entities.Location{Lat: s.Lat, Lon: s.Lon, Address: s.Address},
		Position:       s.Position,
		Status:         entities.StopStatus(s.Status),
		Window:         entities.TimeWindow{Start: s.WindowStart.UTC(), End: s.WindowEnd.UTC()},
		Cell:           s.Cell,
		LargeItem:      s.LargeItem,
		Delayed:        s.Delayed,
		FailureReason:  s.FailureReason,
		OrderCreatedAt: s.OrderCreatedAt.UTC(),
		CreatedAt:      s.CreatedAt.UTC(),
		ArrivedAt:      s.ArrivedAt,
		CompletedAt:    s.CompletedAt,
		FailedAt:       s.FailedAt,
		Version:        s.Version,
	}
	if s.RouteID != nil {
		stop.RouteID = *s.RouteID
	}
	return stop
}

func FromDomain(s *entities.Stop) *StopDB {
	if s == nil {
		return nil
	}

	stopDB := &StopDB{
		ID:             s.ID,
		OrderID:        s.OrderID,
		Kind:           s.Kind.String(),
		Lat:            s.Location.Lat,
		Lon:            s.Location.Lon,
		Address:        s.Location.Address,
		Position:       s.Position,
		Status:         s.Status.String(),
		WindowStart:    s.Window.Start,
		WindowEnd:      s.Window.End,
		Cell:           s.Cell,
		LargeItem:      s.LargeItem,
		Delayed:        s.Delayed,
		FailureReason:  s.FailureReason,
		OrderCreatedAt: s.OrderCreatedAt,
		CreatedAt:      s.CreatedAt,
		ArrivedAt:      s.ArrivedAt,
		CompletedAt:    s.CompletedAt,
		FailedAt:       s.FailedAt,
		Version:        s.Version,
	}
	// пустой маршрут хранится как NULL, стоп в пуле
	if s.RouteID != "" {
		routeID := s.RouteID
		stopDB.RouteID = &routeID
	}
	return stopDB
}

func ToDomainList(stopsDB []StopDB) []entities.Stop {
	result := make([]entities.Stop, len(stopsDB))
	for i := range stopsDB {
		result[i] = *ToDomain(&stopsDB[i])
	}
	return result
}

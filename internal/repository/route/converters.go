package route

import (
	"route-engine/internal/entities"
)

func ToDomain(r *RouteDB) *entities.Route {
	if r == nil {
		return nil
	}

	return &entities.Route{
		ID:               r.ID,
		Window:           entities.TimeWindow{Start: r.WindowStart.UTC(), End: r.WindowEnd.UTC()},
		Cell:             r.Cell,
		StopIDs:          r.StopIDs,
		MaxStops:         r.MaxStops,
		Sealed:           r.Sealed,
		Sequenced:        r.Sequenced,
		Status:           entities.RouteStatus(r.Status),
		DriverID:         r.DriverID,
		ClaimExpiresAt:   r.ClaimExpiresAt,
		TotalMiles:       r.TotalMiles,
		DistanceDegraded: r.DistanceDegraded,
		HasLargeItem:     r.HasLargeItem,
		AccruedCents:     entities.Cents(r.AccruedCents),
		ReviewReason:     r.ReviewReason,
		CreatedAt:        r.CreatedAt.UTC(),
		ClaimedAt:        r.ClaimedAt,
		StartedAt:        r.StartedAt,
		CompletedAt:      r.CompletedAt,
		Version:          r.Version,
	}
}

func FromDomain(r *entities.Route) *RouteDB {
	if r == nil {
		return nil
	}

	stopIDs := r.StopIDs
	if stopIDs == nil {
		stopIDs = []string{}
	}

	return &RouteDB{
		ID:               r.ID,
		WindowStart:      r.Window.Start,
		WindowEnd:        r.Window.End,
		Cell:             r.Cell,
		StopIDs:          stopIDs,
		MaxStops:         r.MaxStops,
		Sealed:           r.Sealed,
		Sequenced:        r.Sequenced,
		Status:           r.Status.String(),
		DriverID:         r.DriverID,
		ClaimExpiresAt:   r.ClaimExpiresAt,
		TotalMiles:       r.TotalMiles,
		DistanceDegraded: r.DistanceDegraded,
		HasLargeItem:     r.HasLargeItem,
		AccruedCents:     int64(r.AccruedCents),
		ReviewReason:     r.ReviewReason,
		CreatedAt:        r.CreatedAt,
		ClaimedAt:        r.ClaimedAt,
		StartedAt:        r.StartedAt,
		CompletedAt:      r.CompletedAt,
		Version:          r.Version,
	}
}

func ToDomainList(routesDB []RouteDB) []entities.Route {
	result := make([]entities.Route, len(routesDB))
	for i := range routesDB {
		result[i] = *ToDomain(&routesDB[i])
	}
	return result
}

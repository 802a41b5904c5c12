package dto

import (
	"route-engine/internal/entities"
)

func ToLocation(l Location) entities.Location {
	return entities.Location{Lat: l.Lat, Lon: l.Lon, Address: l.Address}
}

func FromLocation(l entities.Location) Location {
	return Location{Lat: l.Lat, Lon: l.Lon, Address: l.Address}
}

func FromWindow(w entities.TimeWindow) TimeWindow {
	return TimeWindow{Start: w.Start, End: w.End}
}

func (o OrderCreate) ToDomain() entities.Order {
	order := entities.Order{
		ID:                   o.ID,
		Kind:                 entities.OrderKind(o.Kind),
		BuyerID:              o.BuyerID,
		SellerID:             o.SellerID,
		Origin:               ToLocation(o.Origin),
		Destination:          ToLocation(o.Destination),
		ItemCount:            o.ItemCount,
		RequiresLargeVehicle: o.RequiresLargeVehicle,
		Fragile:              o.Fragile,
	}
	if o.RequestedWindow != nil {
		order.RequestedWindow = &entities.TimeWindow{
			Start: o.RequestedWindow.Start,
			End:   o.RequestedWindow.End,
		}
	}
	return order
}

func FromOrder(o entities.Order) Order {
	order := Order{
		ID:                   o.ID,
		Kind:                 o.Kind.String(),
		BuyerID:              o.BuyerID,
		SellerID:             o.SellerID,
		Origin:               FromLocation(o.Origin),
		Destination:          FromLocation(o.Destination),
		ItemCount:            o.ItemCount,
		RequiresLargeVehicle: o.RequiresLargeVehicle,
		Fragile:              o.Fragile,
		Window:               FromWindow(o.Window),
		Cell:                 o.Cell,
		Status:               o.Status.String(),
		CreatedAt:            o.CreatedAt,
		CancelledAt:          o.CancelledAt,
	}
	if o.RequestedWindow != nil {
		w := FromWindow(*o.RequestedWindow)
		order.RequestedWindow = &w
	}
	return order
}

func FromIntake(in entities.Intake) OrderCreateResponse {
	return OrderCreateResponse{
		Order:         FromOrder(in.Order),
		PickupStopID:  in.Pickup.ID,
		DropoffStopID: in.Dropoff.ID,
		Rescheduled:   in.Rescheduled,
	}
}

func FromRoute(r entities.Route) Route {
	stopIDs := r.StopIDs
	if stopIDs == nil {
		stopIDs = []string{}
	}
	return Route{
		ID:               r.ID,
		Window:           FromWindow(r.Window),
		Cell:             r.Cell,
		StopIDs:          stopIDs,
		Status:           r.Status.String(),
		DriverID:         r.DriverID,
		ClaimExpiresAt:   r.ClaimExpiresAt,
		Sealed:           r.Sealed,
		Sequenced:        r.Sequenced,
		TotalMiles:       r.TotalMiles,
		DistanceDegraded: r.DistanceDegraded,
		HasLargeItem:     r.HasLargeItem,
		AccruedCents:     int64(r.AccruedCents),
		ReviewReason:     r.ReviewReason,
		Version:          r.Version,
	}
}

func FromRouteSummaries(summaries []entities.RouteSummary) []RouteSummary {
	res := make([]RouteSummary, len(summaries))
	for i, s := range summaries {
		res[i] = RouteSummary{
			Route:                FromRoute(s.Route),
			StopCount:            s.StopCount,
			DistanceToStartMiles: s.DistanceToStart,
			EstimatedMinutes:     s.EstimatedMinutes,
			EstimatedPayoutCents: int64(s.EstimatedPayout),
		}
	}
	return res
}

func FromRouteProgress(p entities.RouteProgress) RouteProgress {
	stops := make([]StopProgress, len(p.Stops))
	for i, s := range p.Stops {
		stops[i] = StopProgress{
			StopID:   s.StopID,
			OrderID:  s.OrderID,
			Kind:     s.Kind.String(),
			Status:   s.Status.String(),
			Position: s.Position,
			Total:    s.Total,
		}
	}
	return RouteProgress{
		RouteID:   p.RouteID,
		Status:    p.Status.String(),
		Completed: p.Completed,
		Failed:    p.Failed,
		Total:     p.Total,
		Percent:   p.Percent,
		Stops:     stops,
	}
}

func FromStop(s entities.Stop) Stop {
	return Stop{
		ID:            s.ID,
		OrderID:       s.OrderID,
		Kind:          s.Kind.String(),
		Location:      FromLocation(s.Location),
		RouteID:       s.RouteID,
		Position:      s.Position,
		Status:        s.Status.String(),
		Delayed:       s.Delayed,
		FailureReason: s.FailureReason,
		ArrivedAt:     s.ArrivedAt,
		CompletedAt:   s.CompletedAt,
		FailedAt:      s.FailedAt,
	}
}

func FromEarningsRecord(r entities.EarningsRecord) EarningsRecord {
	lines := make([]EarningsLine, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = EarningsLine{
			Kind:        string(l.Kind),
			Quantity:    l.Quantity.String(),
			RateCents:   int64(l.Rate),
			AmountCents: int64(l.Amount),
		}
	}
	return EarningsRecord{
		ID:          r.ID,
		RouteID:     r.RouteID,
		DriverID:    r.DriverID,
		Kind:        r.Kind.String(),
		Lines:       lines,
		TotalCents:  int64(r.Total),
		ReferenceID: r.ReferenceID,
		Reason:      r.Reason,
		SettledAt:   r.SettledAt,
	}
}

func FromEarningsRecords(records []entities.EarningsRecord) []EarningsRecord {
	res := make([]EarningsRecord, len(records))
	for i, r := range records {
		res[i] = FromEarningsRecord(r)
	}
	return res
}

func FromTip(t entities.Tip) Tip {
	return Tip{
		ID:          t.ID,
		RouteID:     t.RouteID,
		OrderID:     t.OrderID,
		DriverID:    t.DriverID,
		AmountCents: int64(t.Amount),
		RecordID:    t.RecordID,
		RecordedAt:  t.RecordedAt,
	}
}

func FromCostSplit(s entities.CostSplit) CostSplit {
	return CostSplit{
		OrderID:          s.OrderID,
		RouteID:          s.RouteID,
		LegMiles:         s.LegMiles,
		TotalCents:       int64(s.Total),
		BuyerShareCents:  int64(s.BuyerShare),
		SellerShareCents: int64(s.SellerShare),
		ComputedAt:       s.ComputedAt,
	}
}

func FromDriverEarnings(e entities.DriverEarnings) DriverEarnings {
	res := DriverEarnings{
		DriverID:   e.DriverID,
		Records:    FromEarningsRecords(e.Records),
		TotalCents: int64(e.Total),
	}
	if !e.From.IsZero() {
		from := e.From
		res.From = &from
	}
	if !e.To.IsZero() {
		to := e.To
		res.To = &to
	}
	return res
}
